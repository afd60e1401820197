package token

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{EOF, "EOF"},
		{Name, "Name"},
		{VariableName, "VariableName"},
		{Class, "class"},
		{Public, "public"},
		{Static, "static"},
		{Final, "final"},
		{LParen, "("},
		{RParen, ")"},
		{Semicolon, ";"},
		{Arrow, "->"},
		{NullsafeArrow, "?->"},
		{ColonColon, "::"},
		{StarStar, "**"},
		{Coalesce, "??"},
		{Kind(99999), "Kind(99999)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestLookupKeywordCaseInsensitive(t *testing.T) {
	tests := []struct {
		literal string
		want    Kind
	}{
		{"class", Class},
		{"Class", Class},
		{"CLASS", Class},
		{"FuNcTiOn", Function},
		{"echo", Echo},
		{"foo", Name},
		{"_bar123", Name},
		{"array", Array},
		{"unset", Unset},
	}
	for _, tt := range tests {
		if got := LookupKeyword(tt.literal); got != tt.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.literal, got, tt.want)
		}
	}
}

func TestIsCastKeyword(t *testing.T) {
	tests := []struct {
		literal string
		want    bool
	}{
		{"int", true},
		{"integer", true},
		{"bool", true},
		{"float", true},
		{"string", true},
		{"array", true},
		{"object", true},
		{"unset", true},
		{"binary", true},
		{"Foo", false},
		{"class", false},
	}
	for _, tt := range tests {
		if got := IsCastKeyword(tt.literal); got != tt.want {
			t.Errorf("IsCastKeyword(%q) = %v, want %v", tt.literal, got, tt.want)
		}
	}
}

func TestTokenTextAndMissing(t *testing.T) {
	src := []byte("  $foo")
	tok := Token{Kind: VariableName, FullStart: 0, Start: 2, Length: 4}
	if got := tok.Text(src); got != "$foo" {
		t.Errorf("Text() = %q, want %q", got, "$foo")
	}
	if got := tok.FullText(src); got != "  $foo" {
		t.Errorf("FullText() = %q, want %q", got, "  $foo")
	}

	missing := NewMissing(Semicolon, 6)
	if !missing.Missing || missing.Length != 0 || missing.Start != 6 {
		t.Errorf("NewMissing produced unexpected token: %+v", missing)
	}
	if got := missing.Text(src); got != "" {
		t.Errorf("Text() of a missing token = %q, want empty", got)
	}
}

package lexer

import (
	"testing"

	"github.com/scriptcst/parser/token"
)

func scanAll(src string) []token.Token {
	l := New([]byte(src))
	var toks []token.Token
	for {
		tok := l.ScanNext()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func assertKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	got := kinds(scanAll(src))
	if len(got) != len(want) {
		t.Fatalf("scanAll(%q) = %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("scanAll(%q)[%d] = %v, want %v (full: %v)", src, i, got[i], want[i], got)
		}
	}
}

func TestLeadingInlineHTML(t *testing.T) {
	assertKinds(t, "<html>\n<?php echo 1; ?>\ntail",
		token.InlineHTML, token.ScriptSectionStart, token.Echo, token.IntegerLiteral,
		token.Semicolon, token.ScriptSectionEnd, token.InlineHTML, token.EOF)
}

func TestNoLeadingHTMLWhenSourceStartsWithTag(t *testing.T) {
	assertKinds(t, "<?php $x = 1;",
		token.ScriptSectionStart, token.VariableName, token.Assign, token.IntegerLiteral,
		token.Semicolon, token.EOF)
}

func TestShortEchoTag(t *testing.T) {
	assertKinds(t, "<?= $x ?>",
		token.ScriptSectionStartEcho, token.VariableName, token.ScriptSectionEnd, token.EOF)
}

func TestOperators(t *testing.T) {
	assertKinds(t, "<?php $a <=> $b ?? $c ?-> $d",
		token.ScriptSectionStart, token.VariableName, token.Spaceship, token.VariableName,
		token.Coalesce, token.VariableName, token.NullsafeArrow, token.VariableName, token.EOF)
}

func TestPowAndPowAssign(t *testing.T) {
	assertKinds(t, "<?php $a **= 2; $b ** 2;",
		token.ScriptSectionStart, token.VariableName, token.StarStarAssign, token.IntegerLiteral,
		token.Semicolon, token.VariableName, token.StarStar, token.IntegerLiteral, token.Semicolon,
		token.EOF)
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	assertKinds(t, "<?php CLASS Function",
		token.ScriptSectionStart, token.Class, token.Function, token.EOF)
}

func TestLineCommentStopsAtScriptEnd(t *testing.T) {
	toks := scanAll("<?php $a; // trailing ?>html")
	// $a ; then the line comment must not swallow "?>": next real token
	// is ScriptSectionEnd, then the trailing HTML.
	var gotKinds []token.Kind
	for _, tok := range toks {
		gotKinds = append(gotKinds, tok.Kind)
	}
	want := []token.Kind{token.ScriptSectionStart, token.VariableName, token.Semicolon,
		token.ScriptSectionEnd, token.InlineHTML, token.EOF}
	if len(gotKinds) != len(want) {
		t.Fatalf("got %v, want %v", gotKinds, want)
	}
	for i := range want {
		if gotKinds[i] != want[i] {
			t.Fatalf("got %v, want %v", gotKinds, want)
		}
	}
}

func TestDoubleQuotedStringWithSimpleInterpolation(t *testing.T) {
	assertKinds(t, `<?php "hi $name!";`,
		token.ScriptSectionStart, token.DoubleQuote, token.TemplateStringMiddle,
		token.VariableName, token.TemplateStringMiddle, token.DoubleQuote, token.Semicolon, token.EOF)
}

func TestDoubleQuotedStringWithCurlyDollarExpression(t *testing.T) {
	assertKinds(t, `<?php "hi {$obj->name}!";`,
		token.ScriptSectionStart, token.DoubleQuote, token.TemplateStringMiddle,
		token.CurlyDollarOpen, token.VariableName, token.Arrow, token.Name, token.RBrace,
		token.TemplateStringMiddle, token.DoubleQuote, token.Semicolon, token.EOF)
}

func TestDollarOpenBraceExpression(t *testing.T) {
	assertKinds(t, `<?php "${name}";`,
		token.ScriptSectionStart, token.DoubleQuote, token.DollarOpenBrace, token.Name,
		token.RBrace, token.DoubleQuote, token.Semicolon, token.EOF)
}

func TestSingleQuotedStringHasNoInterpolation(t *testing.T) {
	assertKinds(t, `<?php 'hi $name!';`,
		token.ScriptSectionStart, token.SingleQuote, token.TemplateStringMiddle,
		token.SingleQuote, token.Semicolon, token.EOF)
}

func TestHeredocRoundTrip(t *testing.T) {
	src := "<?php $x = <<<EOT\nhello $name\nEOT;\n"
	assertKinds(t, src,
		token.ScriptSectionStart, token.VariableName, token.Assign, token.HeredocStart,
		token.TemplateStringMiddle, token.VariableName, token.TemplateStringMiddle,
		token.HeredocEnd, token.Semicolon, token.EOF)
}

func TestNowdocHasNoInterpolation(t *testing.T) {
	src := "<?php $x = <<<'EOT'\nhello $name\nEOT;\n"
	assertKinds(t, src,
		token.ScriptSectionStart, token.VariableName, token.Assign, token.HeredocStart,
		token.TemplateStringMiddle, token.HeredocEnd, token.Semicolon, token.EOF)
}

func TestPositionSeekRoundTrip(t *testing.T) {
	l := New([]byte("<?php $a + $b;"))
	l.ScanNext() // ScriptSectionStart
	l.ScanNext() // $a
	mark := l.Position()
	first := l.ScanNext() // +
	l.Seek(mark)
	second := l.ScanNext() // + again, identical
	if first.Kind != second.Kind || first.Start != second.Start || first.Length != second.Length {
		t.Fatalf("Seek did not restore scan position: %+v vs %+v", first, second)
	}
}

func TestEOFIsStableAfterEnd(t *testing.T) {
	l := New([]byte("<?php ;"))
	l.ScanNext()
	l.ScanNext()
	if tok := l.ScanNext(); tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", tok.Kind)
	}
	if tok := l.ScanNext(); tok.Kind != token.EOF {
		t.Fatalf("expected EOF again, got %v", tok.Kind)
	}
}

func TestUnterminatedStringReachesEOF(t *testing.T) {
	toks := scanAll(`<?php "unterminated`)
	last := toks[len(toks)-1]
	if last.Kind != token.EOF {
		t.Fatalf("expected final token to be EOF, got %v", last.Kind)
	}
}

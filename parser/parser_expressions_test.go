package parser

import (
	"testing"

	"github.com/scriptcst/parser/ast"
	"github.com/scriptcst/parser/token"
)

func parseExpr(t *testing.T, src string) *ast.Node {
	t.Helper()
	p := New([]byte("<?php " + src + ";"))
	p.advance() // past ScriptSectionStart
	return p.ParseExpression()
}

func TestPowRightAssociative(t *testing.T) {
	n := parseExpr(t, "2 ** 3 ** 2")
	if n.Kind != ast.BinaryExpression {
		t.Fatalf("kind = %v, want BinaryExpression", n.Kind)
	}
	right := n.Children[2].Node
	if right.Kind != ast.BinaryExpression {
		t.Fatalf("right operand should itself be the nested '**': tree:\n%s", n)
	}
}

func TestPowBindsTighterThanUnaryMinus(t *testing.T) {
	// "-2 ** 2" parses as "-(2 ** 2)", not "(-2) ** 2": spec.md's documented
	// quirk where "**" outranks a leading unary operator.
	n := parseExpr(t, "-2 ** 2")
	if n.Kind != ast.UnaryOpExpression {
		t.Fatalf("kind = %v, want UnaryOpExpression", n.Kind)
	}
	operand := n.Children[1].Node
	if operand.Kind != ast.BinaryExpression {
		t.Fatalf("unary operand should be the '**' expression, got %v:\n%s", operand.Kind, n)
	}
}

func TestComparisonOperatorsDoNotChain(t *testing.T) {
	// "$a < $b < $c" stops folding after the first "<": the second "<"
	// is left dangling rather than chained into a three-way comparison.
	p := New([]byte("<?php $a < $b < $c;"))
	p.advance() // past ScriptSectionStart
	n := p.ParseExpression()
	if n.Kind != ast.BinaryExpression {
		t.Fatalf("kind = %v, want BinaryExpression", n.Kind)
	}
	if p.cur.Kind != token.Lt {
		t.Fatalf("expected the second '<' to be left unconsumed, cur = %v", p.cur.Kind)
	}
}

func TestOrXorAndBindLooserThanAssignment(t *testing.T) {
	// "$a = $b or $c" must group as "($a = $b) or $c": or/xor/and sit
	// outside (looser than) the assignment/ternary layer entirely.
	n := parseExpr(t, "$a = $b or $c")
	if n.Kind != ast.BinaryExpression {
		t.Fatalf("kind = %v, want BinaryExpression (the 'or')", n.Kind)
	}
	if n.Children[1].Tok == nil || n.Children[1].Tok.Kind != token.Or {
		t.Fatalf("outermost operator should be 'or':\n%s", n)
	}
	left := n.Children[0].Node
	if left.Kind != ast.AssignmentExpression {
		t.Fatalf("left side of 'or' should be the assignment '$a = $b':\n%s", n)
	}

	x := parseExpr(t, "$a and $b xor $c")
	if x.Children[1].Tok == nil || x.Children[1].Tok.Kind != token.Xor {
		t.Fatalf("outermost operator should be 'xor' (looser than 'and'):\n%s", x)
	}
	andSide := x.Children[0].Node
	if andSide.Children[1].Tok == nil || andSide.Children[1].Tok.Kind != token.And {
		t.Fatalf("left side of 'xor' should be the 'and' expression:\n%s", x)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	n := parseExpr(t, "$a = $b = 1")
	if n.Kind != ast.AssignmentExpression {
		t.Fatalf("kind = %v, want AssignmentExpression", n.Kind)
	}
	right := n.Children[2].Node
	if right.Kind != ast.AssignmentExpression {
		t.Fatalf("right side of '=' should be the nested assignment:\n%s", n)
	}
}

func TestTernaryAndShortTernary(t *testing.T) {
	full := parseExpr(t, "$a ? $b : $c")
	if full.Kind != ast.ConditionalExpression {
		t.Fatalf("kind = %v, want ConditionalExpression", full.Kind)
	}
	if len(full.Children) != 5 {
		t.Fatalf("full ternary should have 5 children (cond, '?', then, ':', else), got %d:\n%s",
			len(full.Children), full)
	}
	short := parseExpr(t, "$a ?: $c")
	if short.Kind != ast.ConditionalExpression {
		t.Fatalf("kind = %v, want ConditionalExpression", short.Kind)
	}
	if len(short.Children) != 3 {
		t.Fatalf("short ternary should have exactly 3 children (cond, '?:' token, else), got %d:\n%s",
			len(short.Children), short)
	}
}

func TestCoalesceIsRightAssociative(t *testing.T) {
	n := parseExpr(t, "$a ?? $b ?? $c")
	if n.Kind != ast.BinaryExpression {
		t.Fatalf("kind = %v, want BinaryExpression", n.Kind)
	}
	right := n.Children[2].Node
	if right.Kind != ast.BinaryExpression {
		t.Fatalf("right side of '??' should itself be the nested '??':\n%s", n)
	}
}

func TestCallThenCallChain(t *testing.T) {
	// "f()()" wraps the first CallExpression in a ParenthesizedExpression,
	// which becomes the callee of a second CallExpression.
	n := parseExpr(t, "f()()")
	if n.Kind != ast.CallExpression {
		t.Fatalf("kind = %v, want CallExpression", n.Kind)
	}
	callee := n.Children[0].Node
	if callee.Kind != ast.ParenthesizedExpression {
		t.Fatalf("outer call's callee should be a ParenthesizedExpression:\n%s", n)
	}
	if callee.FirstChildOfKind(ast.CallExpression) == nil {
		t.Fatalf("parenthesized callee should wrap the inner CallExpression:\n%s", n)
	}
}

func TestMemberAccessThenCall(t *testing.T) {
	n := parseExpr(t, "$obj->method()")
	if n.Kind != ast.CallExpression {
		t.Fatalf("kind = %v, want CallExpression", n.Kind)
	}
	callee := n.Children[0].Node
	if callee.Kind != ast.MemberAccessExpression {
		t.Fatalf("callee should be the MemberAccessExpression:\n%s", n)
	}
}

func TestNullsafeMemberAccess(t *testing.T) {
	n := parseExpr(t, "$obj?->prop")
	if n.Kind != ast.MemberAccessExpression {
		t.Fatalf("kind = %v, want MemberAccessExpression", n.Kind)
	}
	if n.Children[1].Tok == nil || n.Children[1].Tok.Kind != token.NullsafeArrow {
		t.Fatalf("expected a NullsafeArrow operator token:\n%s", n)
	}
}

func TestScopedAccessClassConstant(t *testing.T) {
	n := parseExpr(t, "Foo::BAR")
	if n.Kind != ast.ScopedPropertyAccessExpression {
		t.Fatalf("kind = %v, want ScopedPropertyAccessExpression", n.Kind)
	}
}

func TestScopedAccessClassConstKeyword(t *testing.T) {
	n := parseExpr(t, "Foo::class")
	if n.Kind != ast.ScopedPropertyAccessExpression {
		t.Fatalf("kind = %v, want ScopedPropertyAccessExpression", n.Kind)
	}
}

func TestCastExpressionChildOrder(t *testing.T) {
	n := parseExpr(t, "(int) $x")
	if n.Kind != ast.CastExpression {
		t.Fatalf("kind = %v, want CastExpression", n.Kind)
	}
	if len(n.Children) != 4 {
		t.Fatalf("expected 4 children (lparen, cast-keyword token, rparen, operand), got %d:\n%s",
			len(n.Children), n)
	}
	if n.Children[0].Node == nil || n.Children[0].Node.Kind != ast.Token_ {
		t.Fatalf("child 0 should be the '(' token node:\n%s", n)
	}
	if n.Children[1].Tok == nil || n.Children[1].Tok.Kind != token.CastInt {
		t.Fatalf("child 1 should be the cast-keyword token, got %+v:\n%s", n.Children[1], n)
	}
	if n.Children[2].Node == nil || n.Children[2].Node.Kind != ast.Token_ {
		t.Fatalf("child 2 should be the ')' token node:\n%s", n)
	}
	if n.Children[3].Node == nil || n.Children[3].Node.Kind != ast.VariableNameNode {
		t.Fatalf("child 3 should be the cast operand:\n%s", n)
	}
}

func TestParenthesizedExpressionIsNotMistakenForCast(t *testing.T) {
	n := parseExpr(t, "($x)")
	if n.Kind != ast.ParenthesizedExpression {
		t.Fatalf("kind = %v, want ParenthesizedExpression", n.Kind)
	}
}

func TestNewThenCallChain(t *testing.T) {
	n := parseExpr(t, "(new Foo())->bar()")
	if n.Kind != ast.CallExpression {
		t.Fatalf("kind = %v, want CallExpression", n.Kind)
	}
}

func TestArrayCreationShortSyntax(t *testing.T) {
	n := parseExpr(t, "[1, 2, $k => $v]")
	if n.Kind != ast.ArrayCreationExpression {
		t.Fatalf("kind = %v, want ArrayCreationExpression", n.Kind)
	}
	list := n.FirstChildOfKind(ast.ArrayElementListNode)
	if len(list.ListElements()) != 3 {
		t.Fatalf("expected 3 array elements, got %d:\n%s", len(list.ListElements()), n)
	}
	keyed := list.ListElements()[2]
	if len(keyed.Children) < 3 {
		t.Fatalf("keyed element should carry key, '=>' token, value: %s", keyed)
	}
}

func TestArrayCreationKeywordSyntax(t *testing.T) {
	n := parseExpr(t, "array(1, 2)")
	if n.Kind != ast.ArrayCreationExpression {
		t.Fatalf("kind = %v, want ArrayCreationExpression", n.Kind)
	}
}

func TestListIntrinsicDestructuring(t *testing.T) {
	n := parseExpr(t, "list($a, $b)")
	if n.Kind != ast.ListIntrinsicExpression {
		t.Fatalf("kind = %v, want ListIntrinsicExpression", n.Kind)
	}
}

func TestIssetAndEmptyIntrinsics(t *testing.T) {
	n := parseExpr(t, "isset($a, $b)")
	if n.Kind != ast.IssetIntrinsicExpression {
		t.Fatalf("kind = %v, want IssetIntrinsicExpression", n.Kind)
	}
	n2 := parseExpr(t, "empty($a)")
	if n2.Kind != ast.EmptyIntrinsicExpression {
		t.Fatalf("kind = %v, want EmptyIntrinsicExpression", n2.Kind)
	}
}

func TestExitWithAndWithoutArguments(t *testing.T) {
	n := parseExpr(t, "exit(1)")
	if n.Kind != ast.ExitIntrinsicExpression {
		t.Fatalf("kind = %v, want ExitIntrinsicExpression", n.Kind)
	}
	n2 := parseExpr(t, "die")
	if n2.Kind != ast.ExitIntrinsicExpression {
		t.Fatalf("kind = %v, want ExitIntrinsicExpression", n2.Kind)
	}
}

func TestNamedArgument(t *testing.T) {
	n := parseExpr(t, "f(x: 1, 2)")
	if n.Kind != ast.CallExpression {
		t.Fatalf("kind = %v, want CallExpression", n.Kind)
	}
	args := n.Children[1].Node
	first := args.ListElements()[0]
	if first.Kind != ast.ConstElement {
		t.Fatalf("named argument should use the reused label:value shape, got %v:\n%s", first.Kind, n)
	}
}

func TestSpreadArgument(t *testing.T) {
	n := parseExpr(t, "f(...$xs)")
	if n.Kind != ast.CallExpression {
		t.Fatalf("kind = %v, want CallExpression", n.Kind)
	}
}

func TestYieldBareAndKeyValue(t *testing.T) {
	bare := parseExpr(t, "yield")
	if bare.Kind != ast.YieldExpression {
		t.Fatalf("kind = %v, want YieldExpression", bare.Kind)
	}
	kv := parseExpr(t, "yield $k => $v")
	if kv.Kind != ast.YieldExpression || len(kv.Children) != 4 {
		t.Fatalf("kind = %v children = %d, want YieldExpression with 4 children:\n%s",
			kv.Kind, len(kv.Children), kv)
	}
}

func TestDoubleQuotedStringWithSimpleInterpolation(t *testing.T) {
	n := parseExpr(t, `"hello $name!"`)
	if n.Kind != ast.TemplateExpression {
		t.Fatalf("kind = %v, want TemplateExpression", n.Kind)
	}
	if len(n.ChildrenOfKind(ast.VariableNameNode)) != 1 {
		t.Fatalf("expected one interpolated VariableName:\n%s", n)
	}
}

func TestDoubleQuotedStringWithBracedExpression(t *testing.T) {
	n := parseExpr(t, `"value: {$obj->name}"`)
	if n.Kind != ast.TemplateExpression {
		t.Fatalf("kind = %v, want TemplateExpression", n.Kind)
	}
}

func TestSingleQuotedStringHasNoInterpolationNode(t *testing.T) {
	n := parseExpr(t, `'hello $name'`)
	if n.Kind != ast.TemplateExpression {
		t.Fatalf("kind = %v, want TemplateExpression", n.Kind)
	}
	if len(n.ChildrenOfKind(ast.VariableNameNode)) != 0 {
		t.Fatalf("single-quoted string must not interpolate: %s", n)
	}
}

func TestAnonymousFunctionExpressionWithUseClause(t *testing.T) {
	n := parseExpr(t, "function ($x) use ($y) { return $x + $y; }")
	if n.Kind != ast.AnonymousFunctionExpressionNode {
		t.Fatalf("kind = %v, want AnonymousFunctionExpressionNode", n.Kind)
	}
	if n.FirstChildOfKind(ast.ClosureUseClause) == nil {
		t.Fatalf("missing ClosureUseClause:\n%s", n)
	}
}

func TestArrowFunctionExpression(t *testing.T) {
	n := parseExpr(t, "fn ($x) => $x * 2")
	if n.Kind != ast.ArrowFunctionExpression {
		t.Fatalf("kind = %v, want ArrowFunctionExpression", n.Kind)
	}
}

func TestAnonymousClassExpression(t *testing.T) {
	n := parseExpr(t, "new class extends Base implements Iface { public function run() {} }")
	if n.Kind != ast.ObjectCreationExpression {
		t.Fatalf("kind = %v, want ObjectCreationExpression", n.Kind)
	}
	anon := n.FirstChildOfKind(ast.AnonymousClassExpression)
	if anon == nil {
		t.Fatalf("missing AnonymousClassExpression:\n%s", n)
	}
	if anon.FirstChildOfKind(ast.ClassBaseClause) == nil {
		t.Fatalf("missing ClassBaseClause on anonymous class:\n%s", anon)
	}
}

func TestInstanceOfExpression(t *testing.T) {
	n := parseExpr(t, "$x instanceof Foo")
	if n.Kind != ast.InstanceOfExpression {
		t.Fatalf("kind = %v, want InstanceOfExpression", n.Kind)
	}
}

func TestPrintAndCloneAndErrorSuppress(t *testing.T) {
	p := parseExpr(t, "print $x")
	if p.Kind != ast.PrintIntrinsicExpression {
		t.Fatalf("kind = %v, want PrintIntrinsicExpression", p.Kind)
	}
	c := parseExpr(t, "clone $x")
	if c.Kind != ast.CloneExpression {
		t.Fatalf("kind = %v, want CloneExpression", c.Kind)
	}
	s := parseExpr(t, "@$x")
	if s.Kind != ast.ErrorSuppressExpression {
		t.Fatalf("kind = %v, want ErrorSuppressExpression", s.Kind)
	}
}

func TestPrefixAndPostfixIncrement(t *testing.T) {
	pre := parseExpr(t, "++$x")
	if pre.Kind != ast.PrefixUpdateExpression {
		t.Fatalf("kind = %v, want PrefixUpdateExpression", pre.Kind)
	}
	post := parseExpr(t, "$x++")
	if post.Kind != ast.PostfixUpdateExpression {
		t.Fatalf("kind = %v, want PostfixUpdateExpression", post.Kind)
	}
}

func TestUnknownTokenBecomesMissingExpressionWithSkippedChild(t *testing.T) {
	p := New([]byte("<?php );"))
	p.advance()
	n := p.ParseExpression()
	if n.Kind != ast.MissingExpression {
		t.Fatalf("kind = %v, want MissingExpression", n.Kind)
	}
	if len(n.Children) != 1 || n.Children[0].Node.Kind != ast.SkippedToken_ {
		t.Fatalf("expected a single SkippedToken_ child: %s", n)
	}
}

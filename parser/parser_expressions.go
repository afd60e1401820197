package parser

import (
	"github.com/scriptcst/parser/ast"
	"github.com/scriptcst/parser/token"
)

// Precedence levels, low to high. Assignment and the ternary/coalesce
// operators are handled by their own functions rather than this table,
// since their associativity and short-circuit shape (and, for "?:", a
// three-way rather than two-way arity) do not fit the uniform binary
// climb below them.
const (
	precLogicalOr = 1 + iota // ||
	precLogicalAnd           // &&
	precBitOr
	precBitXor
	precBitAnd
	precEquality   // == != === !== <> <=>
	precComparison // < <= > >=
	precShift      // << >>
	precAdditive   // + -
	precMultiplicative
	precInstanceOf
	precUnary // !, ~, unary +/-, cast, @ — the slot ** is parsed looser than
	precPow   // ** (right-assoc, binds tighter than a leading unary operator)
)

// or/xor/and sit outside this table entirely: spec.md's precedence table
// puts them looser than assignment and the ternary (rows 6-8 against
// assignment's row 9 and "?"'s row 10), so they are climbed above
// parseAssignmentExpression instead of folded into the uniform binary
// climb below it, which starts no looser than "||" (row 12).
var binaryPrec = map[token.Kind]int{
	token.PipePipe:     precLogicalOr,
	token.AmpAmp:       precLogicalAnd,
	token.Pipe:         precBitOr,
	token.Caret:        precBitXor,
	token.Amp:          precBitAnd,
	token.Eq:           precEquality,
	token.NotEq:        precEquality,
	token.Identical:    precEquality,
	token.NotIdentical: precEquality,
	token.AngleNotEq:   precEquality,
	token.Spaceship:    precEquality,
	token.Lt:           precComparison,
	token.LtEq:         precComparison,
	token.Gt:           precComparison,
	token.GtEq:         precComparison,
	token.Shl:          precShift,
	token.Shr:          precShift,
	token.Plus:         precAdditive,
	token.Minus:        precAdditive,
	token.Dot:          precAdditive,
	token.Star:         precMultiplicative,
	token.Slash:        precMultiplicative,
	token.Percent:      precMultiplicative,
	token.InstanceOf:   precInstanceOf,
	token.StarStar:     precPow,
}

// precCoalesce marks where "??" sits: between the assignment/ternary
// layer and the || climb. The climb does not read it; "??" is handled
// inside parseCoalesceExpression rather than the table above because it
// is right-associative.
const precCoalesce = precLogicalOr

var rightAssoc = map[token.Kind]bool{
	token.StarStar: true,
}

// nonAssocChain holds the comparison-family operators that cannot be
// chained: "$a < $b < $c" is not "($a < $b) < $c", it is a grammar error
// spec.md's precedence table calls out as non-associative. The climb
// below stops after consuming one of these at a given level rather than
// continuing to fold further ones in.
var nonAssocChain = map[token.Kind]bool{
	token.Eq: true, token.NotEq: true, token.Identical: true, token.NotIdentical: true,
	token.AngleNotEq: true, token.Spaceship: true,
	token.Lt: true, token.LtEq: true, token.Gt: true, token.GtEq: true,
}

var assignmentOps = map[token.Kind]bool{
	token.Assign: true, token.PlusAssign: true, token.MinusAssign: true, token.StarAssign: true,
	token.SlashAssign: true, token.PercentAssign: true, token.DotAssign: true, token.StarStarAssign: true,
	token.ShlAssign: true, token.ShrAssign: true, token.AmpAssign: true, token.CaretAssign: true,
	token.PipeAssign: true, token.CoalesceAssign: true,
}

// ParseExpression is the entry point spec.md names for expression-only
// callers (e.g. parsing a single default-value expression); the normal
// statement grammar reaches the same production through parseExpression.
func (p *Parser) ParseExpression() *ast.Node {
	return p.parseExpression()
}

func (p *Parser) parseExpression() *ast.Node {
	return p.parseLogicalOrKeywordExpression()
}

// parseLogicalOrKeywordExpression, parseLogicalXorKeywordExpression, and
// parseLogicalAndKeywordExpression climb spec.md's rows 6/7/8 — "or",
// "xor", "and" — as three left-associative levels sitting above
// assignment and the ternary, the loosest operators in the grammar. "$a
// = $b or $c" must group as "($a = $b) or $c", so each level's operand
// is parseAssignmentExpression (or the next-tighter keyword level), not
// the other way around.
func (p *Parser) parseLogicalOrKeywordExpression() *ast.Node {
	left := p.parseLogicalXorKeywordExpression()
	for p.cur.Kind == token.Or {
		op := p.cur
		p.advance()
		right := p.parseLogicalXorKeywordExpression()
		n := ast.New(ast.BinaryExpression)
		n.AddChild(left)
		n.AddToken(op)
		n.AddChild(right)
		left = n
	}
	return left
}

func (p *Parser) parseLogicalXorKeywordExpression() *ast.Node {
	left := p.parseLogicalAndKeywordExpression()
	for p.cur.Kind == token.Xor {
		op := p.cur
		p.advance()
		right := p.parseLogicalAndKeywordExpression()
		n := ast.New(ast.BinaryExpression)
		n.AddChild(left)
		n.AddToken(op)
		n.AddChild(right)
		left = n
	}
	return left
}

func (p *Parser) parseLogicalAndKeywordExpression() *ast.Node {
	left := p.parseAssignmentExpression()
	for p.cur.Kind == token.And {
		op := p.cur
		p.advance()
		right := p.parseAssignmentExpression()
		n := ast.New(ast.BinaryExpression)
		n.AddChild(left)
		n.AddToken(op)
		n.AddChild(right)
		left = n
	}
	return left
}

func (p *Parser) parseAssignmentExpression() *ast.Node {
	left := p.parseConditionalExpression()
	if !assignmentOps[p.cur.Kind] {
		return left
	}
	opTok := p.cur
	p.advance()
	right := p.parseAssignmentExpression() // right-associative
	n := ast.New(ast.AssignmentExpression)
	n.AddChild(left)
	n.AddToken(opTok)
	n.AddChild(right)
	return n
}

func (p *Parser) parseConditionalExpression() *ast.Node {
	cond := p.parseCoalesceExpression()

	if opTok, ok := p.eatOptionalToken2(token.QuestionColon); ok {
		elseExpr := p.parseAssignmentExpression()
		n := ast.New(ast.ConditionalExpression)
		n.AddChild(cond)
		n.AddToken(opTok)
		n.AddChild(elseExpr)
		return n
	}
	if p.cur.Kind != token.Question {
		return cond
	}
	q := p.cur
	p.advance()
	thenExpr := p.parseAssignmentExpression()
	colon := p.eat(token.Colon)
	elseExpr := p.parseAssignmentExpression()
	n := ast.New(ast.ConditionalExpression)
	n.AddChild(cond)
	n.AddToken(q)
	n.AddChild(thenExpr)
	n.AddChild(colon)
	n.AddChild(elseExpr)
	return n
}

// parseCoalesceExpression handles "??", right-associative, sitting
// between the ternary and the "||" climb.
func (p *Parser) parseCoalesceExpression() *ast.Node {
	left := p.parseBinaryExpression(precLogicalOr)
	if p.cur.Kind != token.Coalesce {
		return left
	}
	op := p.cur
	p.advance()
	right := p.parseCoalesceExpression() // right-assoc
	n := ast.New(ast.BinaryExpression)
	n.AddChild(left)
	n.AddToken(op)
	n.AddChild(right)
	return n
}

func (p *Parser) eatOptionalToken2(kind token.Kind) (token.Token, bool) {
	return p.eatOptionalToken(kind)
}

// parseBinaryExpression is the Pratt precedence-climbing loop over the
// binaryPrec table. minPrec is the lowest precedence this call is
// willing to fold into its left operand.
func (p *Parser) parseBinaryExpression(minPrec int) *ast.Node {
	left := p.parseUnaryExpression()
	usedNonAssoc := false

	for {
		kind := p.cur.Kind
		prec, ok := binaryPrec[kind]
		if !ok || prec < minPrec || kind == token.Coalesce {
			return left
		}
		if nonAssocChain[kind] {
			if usedNonAssoc {
				return left
			}
			usedNonAssoc = true
		}

		op := p.cur
		p.advance()
		nextMin := prec + 1
		if rightAssoc[kind] {
			nextMin = prec
		}
		right := p.parseBinaryExpression(nextMin)

		kindOfNode := ast.BinaryExpression
		if kind == token.InstanceOf {
			kindOfNode = ast.InstanceOfExpression
		}
		n := ast.New(kindOfNode)
		n.AddChild(left)
		n.AddToken(op)
		n.AddChild(right)
		left = n
	}
}

var castKeywordKinds = map[token.Kind]bool{
	token.CastInt: true, token.CastInteger: true, token.CastBool: true, token.CastBoolean: true,
	token.CastFloat: true, token.CastDouble: true, token.CastReal: true, token.CastString: true,
	token.Array: true, token.CastObject: true, token.Unset: true, token.CastBinary: true,
}

// parseUnaryExpression handles every prefix operator. A cast is
// recognised only by lookahead: "(" immediately followed by a cast
// keyword and then ")" — otherwise "(" starts a parenthesised
// expression, handled in parsePrimaryExpression.
func (p *Parser) parseUnaryExpression() *ast.Node {
	switch p.cur.Kind {
	case token.Not, token.Tilde, token.Plus, token.Minus, token.At:
		op := p.cur
		p.advance()
		operand := p.parseBinaryExpression(precUnary)
		n := ast.New(unaryNodeKind(op.Kind))
		n.AddToken(op)
		n.AddChild(operand)
		return n
	case token.Increment, token.Decrement:
		op := p.cur
		p.advance()
		operand := p.parseUnaryExpression()
		n := ast.New(ast.PrefixUpdateExpression)
		n.AddToken(op)
		n.AddChild(operand)
		return n
	case token.Print:
		kw := p.cur
		p.advance()
		operand := p.parseAssignmentExpression()
		n := ast.New(ast.PrintIntrinsicExpression)
		n.AddToken(kw)
		n.AddChild(operand)
		return n
	case token.Clone:
		kw := p.cur
		p.advance()
		operand := p.parseUnaryExpression()
		n := ast.New(ast.CloneExpression)
		n.AddToken(kw)
		n.AddChild(operand)
		return n
	case token.New:
		return p.parsePostfixChain(p.parseObjectCreationExpression())
	case token.Yield:
		return p.parseYieldExpression()
	case token.LParen:
		if lparen, kw, rparen, ok := p.tryParseCast(); ok {
			operand := p.parseBinaryExpression(precUnary)
			n := ast.New(ast.CastExpression)
			n.AddChild(lparen)
			n.AddToken(kw)
			n.AddChild(rparen)
			n.AddChild(operand)
			return n
		}
	}
	return p.parsePostfixChain(p.parsePrimaryExpression())
}

func unaryNodeKind(op token.Kind) ast.Kind {
	if op == token.At {
		return ast.ErrorSuppressExpression
	}
	return ast.UnaryOpExpression
}

// tryParseCast probes for "(" CastKeyword ")" without committing: on a
// mismatch it rewinds completely and lets the caller fall through to
// ordinary parenthesised-expression parsing.
func (p *Parser) tryParseCast() (lparen *ast.Node, kw token.Token, rparen *ast.Node, ok bool) {
	s := p.save()
	lparen = p.eat(token.LParen)
	if !castKeywordKinds[p.cur.Kind] {
		p.restore(s)
		return nil, token.Token{}, nil, false
	}
	kw = p.cur
	p.advance()
	if p.cur.Kind != token.RParen {
		p.restore(s)
		return nil, token.Token{}, nil, false
	}
	rparen = p.eat(token.RParen)
	return lparen, kw, rparen, true
}

func (p *Parser) parseYieldExpression() *ast.Node {
	kw := p.cur
	p.advance()
	n := ast.New(ast.YieldExpression)
	n.AddToken(kw)
	if p.checkAny(token.Semicolon, token.RParen, token.RBracket, token.RBrace, token.Comma, token.EOF) {
		return n // bare "yield;"
	}
	first := p.parseAssignmentExpression()
	if p.cur.Kind == token.DoubleArrow {
		arrow := p.cur
		p.advance()
		value := p.parseAssignmentExpression()
		n.AddChild(first)
		n.AddToken(arrow)
		n.AddChild(value)
		return n
	}
	n.AddChild(first)
	return n
}

// parsePostfixChain wraps base with any trailing "(", "[", "->", "?->",
// "::", "++", "--" it finds, left to right. The "f()()" quirk is the one
// special case: when the current base already is a CallExpression, a
// further "(" first wraps it in a ParenthesizedExpression, and that
// wrapper becomes the callee of the new outer CallExpression.
func (p *Parser) parsePostfixChain(base *ast.Node) *ast.Node {
	for {
		switch p.cur.Kind {
		case token.LParen:
			if base.Kind == ast.CallExpression {
				wrap := ast.New(ast.ParenthesizedExpression)
				wrap.AddChild(base)
				base = wrap
			}
			base = p.parseCallExpression(base)
		case token.LBracket:
			base = p.parseSubscriptExpression(base, token.LBracket, token.RBracket)
		case token.LBrace:
			// Legacy curly-brace subscript "$a{0}" is not carried forward;
			// a "{" here ends the postfix chain.
			return base
		case token.Arrow, token.NullsafeArrow:
			base = p.parseMemberAccess(base)
		case token.ColonColon:
			base = p.parseScopedAccess(base)
		case token.Increment, token.Decrement:
			op := p.cur
			p.advance()
			n := ast.New(ast.PostfixUpdateExpression)
			n.AddChild(base)
			n.AddToken(op)
			base = n
		default:
			return base
		}
	}
}

func (p *Parser) parseCallExpression(callee *ast.Node) *ast.Node {
	n := ast.New(ast.CallExpression)
	n.AddChild(callee)
	n.AddChild(p.parseArgumentList())
	return n
}

// parseArgumentList parses "(" a comma-delimited argument list ")",
// folding the parens onto the list itself as leading/trailing bare-token
// children rather than through a separate wrapper node of the same kind.
func (p *Parser) parseArgumentList() *ast.Node {
	lparen := p.eatToken(token.LParen)
	args := p.parseList(listSpec{
		ctx:          ContextArguments,
		listKind:     ast.ArgumentListNode,
		isTerminator: p.atKind(token.RParen),
		isValidStart: p.isArgumentStart,
		parseElement: p.parseArgument,
		delimiter:    token.Comma,
	})
	rparen := p.eatToken(token.RParen)
	args.Children = append([]ast.Child{{Tok: &lparen}}, args.Children...)
	args.AddToken(rparen)
	return args
}

func (p *Parser) isArgumentStart() bool {
	return p.isExpressionStart() || p.cur.Kind == token.Ellipsis
}

func (p *Parser) parseArgument() *ast.Node {
	if p.cur.Kind == token.Ellipsis {
		ellipsis := p.cur
		p.advance()
		n := ast.New(ast.ArrayElement) // spread argument reuses the spread-marker slot shape
		n.AddToken(ellipsis)
		n.AddChild(p.parseAssignmentExpression())
		return n
	}
	// Named-argument form "name: expr": only committed to on seeing the
	// colon, otherwise it is an ordinary expression (a bare Name is a
	// valid constant-reference expression too).
	if p.cur.Kind == token.Name {
		s := p.save()
		nameTok := p.cur
		p.advance()
		if p.cur.Kind == token.Colon {
			colon := p.cur
			p.advance()
			n := ast.New(ast.ConstElement) // reused as a generic "label: value" pair shape
			n.AddChild(ast.NewLeaf(ast.NameNode, nameTok))
			n.AddToken(colon)
			n.AddChild(p.parseAssignmentExpression())
			return n
		}
		p.restore(s)
	}
	return p.parseAssignmentExpression()
}

func (p *Parser) parseSubscriptExpression(base *ast.Node, open, close token.Kind) *ast.Node {
	n := ast.New(ast.SubscriptExpression)
	n.AddChild(base)
	n.AddChild(p.eat(open))
	if p.cur.Kind != close {
		n.AddChild(p.parseExpression())
	}
	n.AddChild(p.eat(close))
	return n
}

func (p *Parser) parseMemberAccess(base *ast.Node) *ast.Node {
	n := ast.New(ast.MemberAccessExpression)
	n.AddChild(base)
	n.AddToken(p.cur) // -> or ?->
	p.advance()
	n.AddChild(p.parseMemberName())
	if p.cur.Kind == token.LParen {
		return p.parseCallExpression(n)
	}
	return n
}

// parseMemberName accepts the three shapes spec.md's grammar allows
// after "->"/"::": a bare Name, a braced expression "{expr}", or a
// variable (for "$obj->$prop").
func (p *Parser) parseMemberName() *ast.Node {
	switch p.cur.Kind {
	case token.LBrace:
		lbrace := p.cur
		p.advance()
		inner := p.parseExpression()
		rbrace := p.eat(token.RBrace)
		n := ast.New(ast.ParenthesizedExpression)
		n.AddChild(ast.NewLeaf(ast.Token_, lbrace))
		n.AddChild(inner)
		n.AddChild(rbrace)
		return n
	case token.VariableName:
		return p.wrapLeaf(ast.VariableNameNode)
	default:
		return p.eatName()
	}
}

func (p *Parser) eatName() *ast.Node {
	if p.cur.Kind == token.Name {
		return p.wrapLeaf(ast.NameNode)
	}
	return ast.NewMissing(token.Name, p.cur.Start)
}

// parseScopedAccess handles "::": the disambiguation between a static
// property ("Foo::$bar"), a class constant ("Foo::BAR"), and a static
// method call ("Foo::bar(...)") all share this entry point and only
// diverge on what follows.
func (p *Parser) parseScopedAccess(base *ast.Node) *ast.Node {
	n := ast.New(ast.ScopedPropertyAccessExpression)
	n.AddChild(base)
	n.AddToken(p.cur) // ::
	p.advance()

	if p.cur.Kind == token.Class {
		n.AddChild(p.wrapLeaf(ast.NameNode)) // "Foo::class" constant-reference form
		return n
	}
	n.AddChild(p.parseMemberName())
	if p.cur.Kind == token.LParen {
		return p.parseCallExpression(n)
	}
	return n
}

// parsePrimaryExpression parses everything that can start an expression
// and is not itself a prefix operator: literals, names, variables,
// parenthesised/array/intrinsic expressions, and interpolated strings.
// A token that starts nothing valid here is consumed as a SkippedToken_
// wrapped inside a MissingExpression, guaranteeing progress.
func (p *Parser) parsePrimaryExpression() *ast.Node {
	switch p.cur.Kind {
	case token.EOF:
		return ast.NewMissing(token.Expression, p.cur.Start)

	case token.VariableName:
		return p.wrapLeaf(ast.VariableNameNode)

	case token.IntegerLiteral, token.FloatLiteral, token.True, token.False, token.Null:
		return p.wrapLeaf(ast.LiteralExpression)

	case token.StringLiteral:
		return p.wrapLeaf(ast.LiteralExpression)

	case token.SingleQuote, token.DoubleQuote, token.Backtick, token.HeredocStart:
		return p.parseTemplateExpression()

	case token.Name, token.Backslash, token.Namespace, token.Static:
		if p.cur.Kind == token.Static {
			return p.parseStaticReferenceExpression()
		}
		return p.parseQualifiedNameExpression()

	case token.LParen:
		lparen := p.cur
		p.advance()
		inner := p.parseExpression()
		rparen := p.eat(token.RParen)
		n := ast.New(ast.ParenthesizedExpression)
		n.AddChild(ast.NewLeaf(ast.Token_, lparen))
		n.AddChild(inner)
		n.AddChild(rparen)
		return n

	case token.LBracket:
		return p.parseArrayCreationExpression(token.LBracket, token.RBracket)
	case token.Array:
		if p.peekAfter() == token.LParen {
			kw := p.cur
			p.advance()
			return p.parseArrayCreationExpressionKeyword(kw)
		}

	case token.List:
		return p.parseListIntrinsic()
	case token.IsSet:
		return p.parseIntrinsicCallLike(ast.IssetIntrinsicExpression)
	case token.Empty:
		return p.parseIntrinsicCallLike(ast.EmptyIntrinsicExpression)
	case token.Exit, token.Die:
		return p.parseExitIntrinsic()
	case token.Function:
		return p.parseAnonymousFunctionExpression(nil)
	case token.Fn:
		return p.parseArrowFunctionExpression(nil)
	}

	bad := p.cur
	p.advance()
	mx := ast.New(ast.MissingExpression)
	mx.AddChild(ast.NewSkipped(bad))
	return mx
}

// parseStaticReferenceExpression resolves spec.md's static::/static(/
// static $x disambiguation: "static" followed immediately by "::" is the
// late-static-binding class reference; followed by "(" it is a call to a
// (dynamically named) function literally called "static", which PHP
// does not otherwise special-case as an expression keyword here.
// "static function"/"static fn" are handled here too: the "static" becomes
// the modifier of an anonymous or arrow function. "static $x" (a
// declaration keyword only legal at statement level) is never reached
// from here.
func (p *Parser) parseStaticReferenceExpression() *ast.Node {
	switch p.peekAfter() {
	case token.Function:
		static := p.wrapLeaf(ast.Token_)
		return p.parseAnonymousFunctionExpression([]*ast.Node{static})
	case token.Fn:
		static := p.wrapLeaf(ast.Token_)
		return p.parseArrowFunctionExpression([]*ast.Node{static})
	}
	return p.wrapLeaf(ast.NameNode)
}

func (p *Parser) parseQualifiedNameExpression() *ast.Node {
	n := ast.New(ast.QualifiedNameNode)
	if lead, ok := p.eatOptional(token.Backslash); ok {
		n.AddChild(lead)
	} else if p.cur.Kind == token.Namespace {
		n.AddChild(p.wrapLeaf(ast.Token_))
		if back, ok := p.eatOptional(token.Backslash); ok {
			n.AddChild(back)
		}
	}
	n.AddChild(p.eatName())
	for p.cur.Kind == token.Backslash {
		n.AddChild(p.wrapLeaf(ast.Token_))
		n.AddChild(p.eatName())
	}
	return n
}

func (p *Parser) parseObjectCreationExpression() *ast.Node {
	kw := p.cur
	p.advance()
	n := ast.New(ast.ObjectCreationExpression)
	n.AddToken(kw)
	if p.cur.Kind == token.Class {
		n.AddChild(p.parseAnonymousClassExpression())
		return n
	}
	n.AddChild(p.parseQualifiedNameExpression())
	if p.cur.Kind == token.LParen {
		n.AddChild(p.parseArgumentList())
	}
	return n
}

func (p *Parser) parseAnonymousClassExpression() *ast.Node {
	n := ast.New(ast.AnonymousClassExpression)
	n.AddToken(p.cur) // class
	p.advance()
	if p.cur.Kind == token.LParen {
		n.AddChild(p.parseArgumentList())
	}
	n.AddChild(p.parseClassHeritage())
	n.AddChild(p.parseClassBody())
	return n
}

func (p *Parser) isExpressionStart() bool {
	switch p.cur.Kind {
	case token.Semicolon, token.RParen, token.RBracket, token.RBrace, token.Comma, token.EOF,
		token.Colon, token.DoubleArrow:
		return false
	default:
		return true
	}
}

func (p *Parser) parseArrayCreationExpression(open, close token.Kind) *ast.Node {
	n := ast.New(ast.ArrayCreationExpression)
	n.AddChild(p.eat(open))
	n.AddChild(p.parseArrayElementList(close))
	n.AddChild(p.eat(close))
	return n
}

func (p *Parser) parseArrayCreationExpressionKeyword(kw token.Token) *ast.Node {
	n := ast.New(ast.ArrayCreationExpression)
	n.AddToken(kw)
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.parseArrayElementList(token.RParen))
	n.AddChild(p.eat(token.RParen))
	return n
}

func (p *Parser) parseArrayElementList(close token.Kind) *ast.Node {
	return p.parseList(listSpec{
		ctx:          ContextArrayElements,
		listKind:     ast.ArrayElementListNode,
		isTerminator: p.atKind(close),
		isValidStart: func() bool { return p.isExpressionStart() || p.cur.Kind == token.Ellipsis },
		parseElement: p.parseArrayElement,
		delimiter:    token.Comma,
	})
}

func (p *Parser) parseArrayElement() *ast.Node {
	if ellipsis, ok := p.eatOptional(token.Ellipsis); ok {
		n := ast.New(ast.ArrayElement)
		n.AddChild(ellipsis)
		n.AddChild(p.parseAssignmentExpression())
		return n
	}
	byRef1, hasRef1 := p.eatOptional(token.Amp)
	first := p.parseAssignmentExpression()
	if p.cur.Kind == token.DoubleArrow {
		arrow := p.cur
		p.advance()
		byRef2, hasRef2 := p.eatOptional(token.Amp)
		value := p.parseAssignmentExpression()
		n := ast.New(ast.ArrayElement)
		if hasRef1 {
			n.AddChild(byRef1)
		}
		n.AddChild(first)
		n.AddToken(arrow)
		if hasRef2 {
			n.AddChild(byRef2)
		}
		n.AddChild(value)
		return n
	}
	n := ast.New(ast.ArrayElement)
	if hasRef1 {
		n.AddChild(byRef1)
	}
	n.AddChild(first)
	return n
}

func (p *Parser) parseListIntrinsic() *ast.Node {
	kw := p.cur
	p.advance()
	n := ast.New(ast.ListIntrinsicExpression)
	n.AddToken(kw)
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.parseArrayElementList(token.RParen))
	n.AddChild(p.eat(token.RParen))
	return n
}

func (p *Parser) parseIntrinsicCallLike(kind ast.Kind) *ast.Node {
	kw := p.cur
	p.advance()
	n := ast.New(kind)
	n.AddToken(kw)
	n.AddChild(p.parseArgumentList())
	return n
}

func (p *Parser) parseExitIntrinsic() *ast.Node {
	kw := p.cur
	p.advance()
	n := ast.New(ast.ExitIntrinsicExpression)
	n.AddToken(kw)
	if p.cur.Kind == token.LParen {
		n.AddChild(p.parseArgumentList())
	}
	return n
}

// parseTemplateExpression parses the quote/heredoc-delimited string
// family described in spec.md §4.6: an opener, a run of literal-text and
// embedded-expression children, and a matching closer. "${"/"{$" each
// open a nested expression parse; a bare "$name" is appended as a
// VariableName child directly, rescanned under string lexical mode first
// so its extent is exactly the variable, nothing more.
func (p *Parser) parseTemplateExpression() *ast.Node {
	opener := p.cur
	p.advance()
	n := ast.New(ast.TemplateExpression)
	n.AddToken(opener)

	closer := closingKindFor(opener.Kind)
	for p.cur.Kind != closer && p.cur.Kind != token.EOF {
		switch p.cur.Kind {
		case token.TemplateStringMiddle:
			n.AddChild(p.wrapLeaf(ast.Token_))
		case token.VariableName:
			rescanned := p.lex.RescanTemplate(p.cur)
			p.cur = rescanned
			v := p.wrapLeaf(ast.VariableNameNode)
			n.AddChild(p.parsePostfixChain(v))
		case token.DollarOpenBrace, token.CurlyDollarOpen:
			open := p.cur
			p.advance()
			inner := p.parseExpression()
			close := p.eat(token.RBrace)
			wrapper := ast.New(ast.ParenthesizedExpression)
			wrapper.AddChild(ast.NewLeaf(ast.Token_, open))
			wrapper.AddChild(inner)
			wrapper.AddChild(close)
			n.AddChild(wrapper)
		default:
			n.AddChild(p.skipAsGarbage())
		}
	}
	n.AddChild(p.eat(closer))
	return n
}

func closingKindFor(opener token.Kind) token.Kind {
	switch opener {
	case token.SingleQuote:
		return token.SingleQuote
	case token.DoubleQuote:
		return token.DoubleQuote
	case token.Backtick:
		return token.Backtick
	case token.HeredocStart:
		return token.HeredocEnd
	default:
		return token.EOF
	}
}

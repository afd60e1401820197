package parser

import (
	"github.com/scriptcst/parser/ast"
	"github.com/scriptcst/parser/token"
)

// parseStatement is the statement dispatch table. It decides purely by
// looking at the current token (and, for a handful of keywords, a
// bounded lookahead) which production to hand off to.
func (p *Parser) parseStatement() *ast.Node {
	switch p.cur.Kind {
	case token.LBrace:
		return p.parseBlockStatement()
	case token.Semicolon:
		return p.parseEmptyStatement()
	case token.If:
		return p.parseIfStatement()
	case token.While:
		return p.parseWhileStatement()
	case token.Do:
		return p.parseDoWhileStatement()
	case token.For:
		return p.parseForStatement()
	case token.Foreach:
		return p.parseForeachStatement()
	case token.Switch:
		return p.parseSwitchStatement()
	case token.Break:
		return p.parseBreakContinueStatement(ast.BreakStatement)
	case token.Continue:
		return p.parseBreakContinueStatement(ast.ContinueStatement)
	case token.Return:
		return p.parseReturnStatement()
	case token.Global:
		return p.parseGlobalStatement()
	case token.Static:
		return p.parseStaticLedStatement()
	case token.Echo:
		return p.parseEchoStatement()
	case token.Unset:
		return p.parseUnsetStatement()
	case token.Throw:
		return p.parseThrowStatement()
	case token.Try:
		return p.parseTryStatement()
	case token.Goto:
		return p.parseGotoStatement()
	case token.Declare:
		return p.parseDeclareStatement()
	case token.Namespace:
		return p.parseNamespaceStatement()
	case token.Use:
		return p.parseNamespaceUseStatement()
	case token.Const:
		return p.parseConstDeclaration()
	case token.Function:
		if p.isFunctionDeclarationStart() {
			return p.parseFunctionDeclaration()
		}
	case token.Abstract, token.Final:
		if p.isClassDeclarationStart() {
			return p.parseClassDeclaration()
		}
		return ast.NewSkipped(p.consumeRaw())
	case token.Class:
		return p.parseClassDeclaration()
	case token.Interface:
		return p.parseInterfaceDeclaration()
	case token.Trait:
		return p.parseTraitDeclaration()
	case token.ScriptSectionEnd:
		// A "?>" left unconsumed by parseExpressionStatement's semicolon
		// check (spec §4.8's trailing-semicolon quirk) surfaces here as the
		// next statement-list element: parse it as the inline-HTML island
		// it opens, rather than treating it as an empty statement.
		return p.parseInlineHTMLIsland()
	case token.Name:
		if p.peekAfter() == token.Colon {
			return p.parseLabelStatement()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) consumeRaw() token.Token {
	tok := p.cur
	p.advance()
	return tok
}

// isFunctionDeclarationStart distinguishes "function foo(...) {...}"
// from "function (...) {...}" (an anonymous function used as the start
// of an expression statement): a declaration requires a Name (or "&"
// marking a by-reference return, then a Name) right after "function".
func (p *Parser) isFunctionDeclarationStart() bool {
	return p.lookahead(func() bool {
		p.advance() // function
		if p.cur.Kind == token.Amp {
			p.advance()
		}
		return p.cur.Kind == token.Name
	})
}

// isClassDeclarationStart resolves spec.md's "final/abstract not
// followed by class at statement level becomes a SkippedToken" rule:
// these modifiers only start a statement-level declaration when they are
// actually followed (after any further modifiers) by "class".
func (p *Parser) isClassDeclarationStart() bool {
	return p.lookahead(func() bool {
		for p.cur.Kind == token.Abstract || p.cur.Kind == token.Final {
			p.advance()
		}
		return p.cur.Kind == token.Class
	})
}

func (p *Parser) parseBlockStatement() *ast.Node {
	n := ast.New(ast.BlockStatement)
	n.AddChild(p.eat(token.LBrace))
	n.AddChild(p.parseStatementList())
	n.AddChild(p.eat(token.RBrace))
	return n
}

func (p *Parser) parseStatementList() *ast.Node {
	return p.parseList(listSpec{
		ctx:          ContextStatements,
		listKind:     ast.StatementListNode,
		isTerminator: p.atKind(token.RBrace),
		isValidStart: p.isStatementStart,
		parseElement: p.parseStatement,
		delimiter:    token.EOF,
	})
}

func (p *Parser) isStatementStart() bool {
	switch p.cur.Kind {
	case token.RBrace, token.EOF, token.EndIf, token.EndWhile, token.EndFor, token.EndForeach,
		token.EndSwitch, token.EndDeclare, token.Else, token.ElseIf, token.Case, token.Default,
		token.Catch, token.Finally:
		return false
	default:
		return true
	}
}

func (p *Parser) parseEmptyStatement() *ast.Node {
	n := ast.New(ast.EmptyStatement)
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) parseExpressionStatement() *ast.Node {
	n := ast.New(ast.ExpressionStatement)
	n.AddChild(p.parseExpression())
	if p.cur.Kind == token.ScriptSectionEnd {
		// spec §4.8: a script-end tag satisfies the trailing semicolon in
		// its place; leave it unconsumed for the next statement-list
		// element to parse as the inline-HTML island it opens.
		return n
	}
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) parseIfStatement() *ast.Node {
	n := ast.New(ast.IfStatement)
	n.AddToken(p.cur) // if
	p.advance()
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.parseExpression())
	n.AddChild(p.eat(token.RParen))
	if p.cur.Kind == token.Colon {
		return p.parseIfColonForm(n)
	}
	n.AddChild(p.parseStatement())
	if p.cur.Kind == token.ElseIf {
		n.AddChild(p.parseElseIfClause())
	} else if p.cur.Kind == token.Else {
		n.AddChild(p.parseElseClause())
	}
	return n
}

// parseColonBody parses a colon-delimited statement list for the
// while/for/foreach/if/declare alternate body syntax (spec §4.3), one of
// the terminators stopping it rather than a close-brace. isStatementStart
// already excludes every such terminator keyword, so no separate
// isValidStart is needed per caller.
func (p *Parser) parseColonBody(terminators ...token.Kind) *ast.Node {
	return p.parseList(listSpec{
		ctx:          ContextStatements,
		listKind:     ast.StatementListNode,
		isTerminator: p.atKind(terminators...),
		isValidStart: p.isStatementStart,
		parseElement: p.parseStatement,
		delimiter:    token.EOF,
	})
}

// parseIfColonForm continues an "if (...) :" header already consumed up
// to the colon, parsing its body, any colon-form "elseif"/"else"
// clauses as flat siblings (unlike the brace form, where each
// successive elseif/else nests inside the previous one, a colon-form
// "if" is terminated by a single "endif", so all its clauses sit
// directly under the IfStatement), and the trailing "endif;".
func (p *Parser) parseIfColonForm(n *ast.Node) *ast.Node {
	n.AddToken(p.cur) // :
	p.advance()
	n.AddChild(p.parseColonBody(token.ElseIf, token.Else, token.EndIf))
	for p.cur.Kind == token.ElseIf {
		n.AddChild(p.parseElseIfColonClause())
	}
	if p.cur.Kind == token.Else {
		n.AddChild(p.parseElseColonClause())
	}
	n.AddChild(p.eat(token.EndIf))
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) parseElseIfColonClause() *ast.Node {
	n := ast.New(ast.ElseIfClause)
	n.AddToken(p.cur) // elseif
	p.advance()
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.parseExpression())
	n.AddChild(p.eat(token.RParen))
	n.AddChild(p.eat(token.Colon))
	n.AddChild(p.parseColonBody(token.ElseIf, token.Else, token.EndIf))
	return n
}

func (p *Parser) parseElseColonClause() *ast.Node {
	n := ast.New(ast.ElseClause)
	n.AddToken(p.cur) // else
	p.advance()
	n.AddChild(p.eat(token.Colon))
	n.AddChild(p.parseColonBody(token.EndIf))
	return n
}

func (p *Parser) parseElseIfClause() *ast.Node {
	n := ast.New(ast.ElseIfClause)
	n.AddToken(p.cur)
	p.advance()
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.parseExpression())
	n.AddChild(p.eat(token.RParen))
	n.AddChild(p.parseStatement())
	if p.cur.Kind == token.ElseIf {
		n.AddChild(p.parseElseIfClause())
	} else if p.cur.Kind == token.Else {
		n.AddChild(p.parseElseClause())
	}
	return n
}

func (p *Parser) parseElseClause() *ast.Node {
	n := ast.New(ast.ElseClause)
	n.AddToken(p.cur)
	p.advance()
	n.AddChild(p.parseStatement())
	return n
}

func (p *Parser) parseWhileStatement() *ast.Node {
	n := ast.New(ast.WhileStatement)
	n.AddToken(p.cur)
	p.advance()
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.parseExpression())
	n.AddChild(p.eat(token.RParen))
	if p.cur.Kind == token.Colon {
		n.AddToken(p.cur)
		p.advance()
		n.AddChild(p.parseColonBody(token.EndWhile))
		n.AddChild(p.eat(token.EndWhile))
		n.AddChild(p.eat(token.Semicolon))
		return n
	}
	n.AddChild(p.parseStatement())
	return n
}

func (p *Parser) parseDoWhileStatement() *ast.Node {
	n := ast.New(ast.DoWhileStatement)
	n.AddToken(p.cur) // do
	p.advance()
	n.AddChild(p.parseStatement())
	n.AddChild(p.eat(token.While))
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.parseExpression())
	n.AddChild(p.eat(token.RParen))
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) parseForStatement() *ast.Node {
	n := ast.New(ast.ForStatement)
	n.AddToken(p.cur) // for
	p.advance()
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.parseForExpressionList(token.Semicolon))
	n.AddChild(p.eat(token.Semicolon))
	n.AddChild(p.parseForExpressionList(token.Semicolon))
	n.AddChild(p.eat(token.Semicolon))
	n.AddChild(p.parseForExpressionList(token.RParen))
	n.AddChild(p.eat(token.RParen))
	if p.cur.Kind == token.Colon {
		n.AddToken(p.cur)
		p.advance()
		n.AddChild(p.parseColonBody(token.EndFor))
		n.AddChild(p.eat(token.EndFor))
		n.AddChild(p.eat(token.Semicolon))
		return n
	}
	n.AddChild(p.parseStatement())
	return n
}

func (p *Parser) parseForExpressionList(close token.Kind) *ast.Node {
	return p.parseList(listSpec{
		ctx:          ContextForClauses,
		listKind:     ast.ForClauseList,
		isTerminator: p.atKind(close),
		isValidStart: p.isExpressionStart,
		parseElement: p.parseExpression,
		delimiter:    token.Comma,
	})
}

func (p *Parser) parseForeachStatement() *ast.Node {
	n := ast.New(ast.ForeachStatement)
	n.AddToken(p.cur) // foreach
	p.advance()
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.parseExpression())
	n.AddChild(p.eat(token.As))
	if byRef, ok := p.eatOptional(token.Amp); ok {
		n.AddChild(byRef)
	}
	key := p.parseExpression()
	if p.cur.Kind == token.DoubleArrow {
		n.AddChild(key)
		n.AddToken(p.cur)
		p.advance()
		if byRef, ok := p.eatOptional(token.Amp); ok {
			n.AddChild(byRef)
		}
		n.AddChild(p.parseExpression())
	} else {
		n.AddChild(key)
	}
	n.AddChild(p.eat(token.RParen))
	if p.cur.Kind == token.Colon {
		n.AddToken(p.cur)
		p.advance()
		n.AddChild(p.parseColonBody(token.EndForeach))
		n.AddChild(p.eat(token.EndForeach))
		n.AddChild(p.eat(token.Semicolon))
		return n
	}
	n.AddChild(p.parseStatement())
	return n
}

func (p *Parser) parseSwitchStatement() *ast.Node {
	n := ast.New(ast.SwitchStatement)
	n.AddToken(p.cur) // switch
	p.advance()
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.parseExpression())
	n.AddChild(p.eat(token.RParen))
	if p.cur.Kind == token.Colon {
		n.AddToken(p.cur)
		p.advance()
		n.AddChild(p.parseSwitchCaseList(token.EndSwitch))
		n.AddChild(p.eat(token.EndSwitch))
		n.AddChild(p.eat(token.Semicolon))
		return n
	}
	n.AddChild(p.eat(token.LBrace))
	n.AddChild(p.parseSwitchCaseList(token.RBrace))
	n.AddChild(p.eat(token.RBrace))
	return n
}

func (p *Parser) parseSwitchCaseList(terminator token.Kind) *ast.Node {
	return p.parseList(listSpec{
		ctx:          ContextStatements,
		listKind:     ast.StatementListNode,
		isTerminator: p.atKind(terminator),
		isValidStart: func() bool { return p.cur.Kind == token.Case || p.cur.Kind == token.Default },
		parseElement: p.parseCaseOrDefaultClause,
		delimiter:    token.EOF,
	})
}

func (p *Parser) parseCaseOrDefaultClause() *ast.Node {
	if p.cur.Kind == token.Default {
		n := ast.New(ast.DefaultClause)
		n.AddToken(p.cur)
		p.advance()
		n.AddChild(p.eat(token.Colon))
		n.AddChild(p.parseStatementList())
		return n
	}
	n := ast.New(ast.CaseClause)
	n.AddToken(p.cur) // case
	p.advance()
	n.AddChild(p.parseExpression())
	n.AddChild(p.eat(token.Colon))
	n.AddChild(p.parseStatementList())
	return n
}

func (p *Parser) parseBreakContinueStatement(kind ast.Kind) *ast.Node {
	n := ast.New(kind)
	n.AddToken(p.cur)
	p.advance()
	if p.cur.Kind != token.Semicolon {
		n.AddChild(p.parseExpression())
	}
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) parseReturnStatement() *ast.Node {
	n := ast.New(ast.ReturnStatement)
	n.AddToken(p.cur)
	p.advance()
	if p.cur.Kind != token.Semicolon {
		n.AddChild(p.parseExpression())
	}
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) parseGlobalStatement() *ast.Node {
	n := ast.New(ast.GlobalStatement)
	n.AddToken(p.cur)
	p.advance()
	n.AddChild(p.parseList(listSpec{
		ctx:          ContextStaticVariables,
		listKind:     ast.NameListNode,
		isTerminator: p.atKind(token.Semicolon),
		isValidStart: func() bool { return p.cur.Kind == token.VariableName },
		parseElement: func() *ast.Node { return p.wrapLeaf(ast.VariableNameNode) },
		delimiter:    token.Comma,
	}))
	n.AddChild(p.eat(token.Semicolon))
	return n
}

// parseStaticLedStatement resolves spec.md's "static::" / "static(" /
// "static function" / "static $x" disambiguation (DESIGN.md open
// question #2): a bounded lookahead past "static" decides between a
// static-variable declaration and an expression statement that merely
// starts with the "static" keyword (late static binding, or a static
// closure).
func (p *Parser) parseStaticLedStatement() *ast.Node {
	next := p.peekAfter()
	if next == token.VariableName {
		return p.parseStaticVariableStatement()
	}
	if next == token.Function || next == token.Fn {
		return p.parseExpressionStatement()
	}
	// "static::" or "static(" or anything else: treat as an expression.
	return p.parseExpressionStatement()
}

func (p *Parser) parseStaticVariableStatement() *ast.Node {
	n := ast.New(ast.StaticVariableStatement)
	n.AddToken(p.cur) // static
	p.advance()
	n.AddChild(p.parseList(listSpec{
		ctx:          ContextStaticVariables,
		listKind:     ast.StaticVariableListNode,
		isTerminator: p.atKind(token.Semicolon),
		isValidStart: func() bool { return p.cur.Kind == token.VariableName },
		parseElement: p.parseStaticVariableDeclarator,
		delimiter:    token.Comma,
	}))
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) parseStaticVariableDeclarator() *ast.Node {
	n := ast.New(ast.StaticVariableDeclarator)
	n.AddChild(p.wrapLeaf(ast.VariableNameNode))
	if eq, ok := p.eatOptional(token.Assign); ok {
		n.AddChild(eq)
		n.AddChild(p.parseAssignmentExpression())
	}
	return n
}

func (p *Parser) parseEchoStatement() *ast.Node {
	n := ast.New(ast.EchoStatement)
	n.AddToken(p.cur)
	p.advance()
	n.AddChild(p.parseList(listSpec{
		ctx:          ContextArguments,
		listKind:     ast.ArgumentListNode,
		isTerminator: p.atKind(token.Semicolon),
		isValidStart: p.isExpressionStart,
		parseElement: p.parseAssignmentExpression,
		delimiter:    token.Comma,
	}))
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) parseUnsetStatement() *ast.Node {
	n := ast.New(ast.UnsetStatement)
	n.AddToken(p.cur)
	p.advance()
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.parseList(listSpec{
		ctx:          ContextArguments,
		listKind:     ast.ArgumentListNode,
		isTerminator: p.atKind(token.RParen),
		isValidStart: p.isExpressionStart,
		parseElement: p.parseAssignmentExpression,
		delimiter:    token.Comma,
	}))
	n.AddChild(p.eat(token.RParen))
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) parseThrowStatement() *ast.Node {
	n := ast.New(ast.ThrowStatement)
	n.AddToken(p.cur)
	p.advance()
	n.AddChild(p.parseExpression())
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) parseTryStatement() *ast.Node {
	n := ast.New(ast.TryStatement)
	n.AddToken(p.cur) // try
	p.advance()
	n.AddChild(p.parseBlockStatement())
	n.AddChild(p.parseList(listSpec{
		ctx:          ContextCatchClauses,
		listKind:     ast.CatchClauseListNode,
		isTerminator: func() bool { return p.cur.Kind != token.Catch },
		isValidStart: func() bool { return p.cur.Kind == token.Catch },
		parseElement: p.parseCatchClause,
		delimiter:    token.EOF,
	}))
	if p.cur.Kind == token.Finally {
		n.AddChild(p.parseFinallyClause())
	}
	return n
}

func (p *Parser) parseCatchClause() *ast.Node {
	n := ast.New(ast.CatchClause)
	n.AddToken(p.cur) // catch
	p.advance()
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.parseList(listSpec{
		ctx:          ContextUseClauses,
		listKind:     ast.NameListNode,
		isTerminator: func() bool { return p.cur.Kind == token.VariableName || p.cur.Kind == token.RParen },
		isValidStart: func() bool { return p.cur.Kind == token.Name || p.cur.Kind == token.Backslash },
		parseElement: p.parseQualifiedNameExpression,
		delimiter:    token.Pipe,
	}))
	if v, ok := p.eatOptional(token.VariableName); ok {
		n.AddChild(v)
	}
	n.AddChild(p.eat(token.RParen))
	n.AddChild(p.parseBlockStatement())
	return n
}

func (p *Parser) parseFinallyClause() *ast.Node {
	n := ast.New(ast.FinallyClause)
	n.AddToken(p.cur)
	p.advance()
	n.AddChild(p.parseBlockStatement())
	return n
}

func (p *Parser) parseGotoStatement() *ast.Node {
	n := ast.New(ast.GotoStatement)
	n.AddToken(p.cur)
	p.advance()
	n.AddChild(p.eatName())
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) parseLabelStatement() *ast.Node {
	n := ast.New(ast.LabelStatement)
	n.AddChild(p.wrapLeaf(ast.NameNode))
	n.AddChild(p.eat(token.Colon))
	return n
}

func (p *Parser) parseDeclareStatement() *ast.Node {
	n := ast.New(ast.DeclareStatement)
	n.AddToken(p.cur)
	p.advance()
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.eatName())
	n.AddChild(p.eat(token.Assign))
	n.AddChild(p.parseAssignmentExpression())
	n.AddChild(p.eat(token.RParen))
	switch p.cur.Kind {
	case token.Colon:
		n.AddToken(p.cur)
		p.advance()
		n.AddChild(p.parseColonBody(token.EndDeclare))
		n.AddChild(p.eat(token.EndDeclare))
		n.AddChild(p.eat(token.Semicolon))
	case token.Semicolon:
		n.AddChild(p.eat(token.Semicolon))
	default:
		n.AddChild(p.parseStatement())
	}
	return n
}

// parseNamespaceStatement resolves spec.md's "namespace\Foo" (an
// expression starting with a namespace-relative name) vs. "namespace
// Foo;" (a namespace declaration) ambiguity (DESIGN.md open question
// #4): a namespace declaration's name, if present, is never preceded by
// a backslash, so checking for one after "namespace" disambiguates the
// two without needing unbounded lookahead.
func (p *Parser) parseNamespaceStatement() *ast.Node {
	if p.peekAfter() == token.Backslash {
		return p.parseExpressionStatement()
	}
	n := ast.New(ast.NamespaceStatement)
	n.AddToken(p.cur)
	p.advance()
	if p.cur.Kind == token.Name {
		n.AddChild(p.parseQualifiedNameExpression())
	}
	if p.cur.Kind == token.LBrace {
		n.AddChild(p.parseBlockStatement())
	} else {
		n.AddChild(p.eat(token.Semicolon))
	}
	return n
}

func (p *Parser) parseNamespaceUseStatement() *ast.Node {
	n := ast.New(ast.NamespaceUseStatement)
	n.AddToken(p.cur) // use
	p.advance()
	if kind, ok := p.eatOptionalAny(token.Function, token.Const); ok {
		n.AddChild(kind)
	}
	n.AddChild(p.parseList(listSpec{
		ctx:          ContextUseClauses,
		listKind:     ast.UseClauseListNode,
		isTerminator: p.atKind(token.Semicolon),
		isValidStart: func() bool { return p.cur.Kind == token.Name || p.cur.Kind == token.Backslash },
		parseElement: p.parseNamespaceUseClause,
		delimiter:    token.Comma,
	}))
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) eatOptionalAny(kinds ...token.Kind) (*ast.Node, bool) {
	for _, k := range kinds {
		if p.cur.Kind == k {
			return p.eatOptional(k)
		}
	}
	return nil, false
}

// parseConstDeclaration parses a top-level "const NAME = expr, ...;"
// declaration, distinct from a class's ClassConstDeclaration only in
// that it carries no modifier list.
func (p *Parser) parseConstDeclaration() *ast.Node {
	n := ast.New(ast.ConstDeclaration)
	n.AddToken(p.cur) // const
	p.advance()
	n.AddChild(p.parseList(listSpec{
		ctx:          ContextConstElements,
		listKind:     ast.ConstElementListNode,
		isTerminator: p.atKind(token.Semicolon),
		isValidStart: func() bool { return p.cur.Kind == token.Name },
		parseElement: p.parseConstElement,
		delimiter:    token.Comma,
	}))
	n.AddChild(p.eat(token.Semicolon))
	return n
}

// parseNamespaceUseClause parses one element of a "use" list: either an
// ordinary "Name [as Alias]" clause, or a grouped form
// "Prefix\{Name [as Alias], ...}" (PHP's group-use syntax), disambiguated
// by whether the qualified name is immediately followed by "{".
func (p *Parser) parseNamespaceUseClause() *ast.Node {
	name := p.parseQualifiedNameExpression()
	if p.cur.Kind == token.LBrace {
		n := ast.New(ast.NamespaceUseGroupClause)
		n.AddChild(name)
		n.AddChild(p.eat(token.LBrace))
		n.AddChild(p.parseList(listSpec{
			ctx:          ContextUseClauses,
			listKind:     ast.UseClauseListNode,
			isTerminator: p.atKind(token.RBrace),
			isValidStart: func() bool { return p.cur.Kind == token.Name || p.cur.Kind == token.Backslash },
			parseElement: p.parseNamespaceUseClause,
			delimiter:    token.Comma,
		}))
		n.AddChild(p.eat(token.RBrace))
		return n
	}
	n := ast.New(ast.NamespaceUseClause)
	n.AddChild(name)
	if as, ok := p.eatOptional(token.As); ok {
		n.AddChild(as)
		n.AddChild(p.eatName())
	}
	return n
}

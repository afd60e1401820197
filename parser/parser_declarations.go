package parser

import (
	"github.com/scriptcst/parser/ast"
	"github.com/scriptcst/parser/token"
)

var memberModifiers = map[token.Kind]bool{
	token.Public: true, token.Protected: true, token.Private: true,
	token.Static: true, token.Abstract: true, token.Final: true, token.Var: true,
}

func (p *Parser) parseModifierList() []*ast.Node {
	var mods []*ast.Node
	for memberModifiers[p.cur.Kind] || p.isReadOnlyModifier() {
		mods = append(mods, p.wrapLeaf(ast.Token_))
	}
	return mods
}

func (p *Parser) isReadOnlyModifier() bool {
	return p.cur.Kind == token.Name && p.textOf(p.cur) == "readonly"
}

func (p *Parser) textOf(tok token.Token) string {
	return tok.Text(p.source)
}

func (p *Parser) parseFunctionDeclaration() *ast.Node {
	n := ast.New(ast.FunctionDeclaration)
	n.AddToken(p.cur) // function
	p.advance()
	if amp, ok := p.eatOptional(token.Amp); ok {
		n.AddChild(amp)
	}
	n.AddChild(p.eatName())
	n.AddChild(p.parseParameterList())
	if colon, ok := p.eatOptional(token.Colon); ok {
		n.AddChild(colon)
		n.AddChild(p.parseTypeExpression())
	}
	n.AddChild(p.parseBlockStatement())
	return n
}

// parseParameterList parses "(" a comma-delimited parameter list ")". The
// parens are folded onto the returned list itself as leading/trailing
// bare-token children (rather than built into a separate wrapper node of
// the same kind), so a caller can walk straight from ListElements to the
// actual Parameter nodes without an extra hop through a shell node.
func (p *Parser) parseParameterList() *ast.Node {
	lparen := p.eatToken(token.LParen)
	list := p.parseList(listSpec{
		ctx:          ContextParameters,
		listKind:     ast.ParameterListNode,
		isTerminator: p.atKind(token.RParen),
		isValidStart: p.isParameterStart,
		parseElement: p.parseParameter,
		delimiter:    token.Comma,
	})
	rparen := p.eatToken(token.RParen)
	list.Children = append([]ast.Child{{Tok: &lparen}}, list.Children...)
	list.AddToken(rparen)
	return list
}

func (p *Parser) isParameterStart() bool {
	switch p.cur.Kind {
	case token.VariableName, token.Amp, token.Ellipsis, token.Question, token.Name, token.Backslash,
		token.Array, token.Callable, token.Static, token.Public, token.Protected, token.Private:
		return true
	default:
		return p.isReadOnlyModifier() || p.isTypeStart()
	}
}

func (p *Parser) parseParameter() *ast.Node {
	n := ast.New(ast.Parameter)
	for p.isParameterModifier() {
		n.AddChild(p.wrapLeaf(ast.Token_))
	}
	if p.isTypeStart() {
		n.AddChild(p.parseTypeExpression())
	}
	if byRef, ok := p.eatOptional(token.Amp); ok {
		n.AddChild(byRef)
	}
	if variadic, ok := p.eatOptional(token.Ellipsis); ok {
		n.AddChild(variadic)
	}
	n.AddChild(p.wrapLeafOrMissing(token.VariableName, ast.VariableNameNode))
	if eq, ok := p.eatOptional(token.Assign); ok {
		n.AddChild(eq)
		n.AddChild(p.parseAssignmentExpression())
	}
	return n
}

func (p *Parser) isParameterModifier() bool {
	switch p.cur.Kind {
	case token.Public, token.Protected, token.Private, token.Static:
		return true
	default:
		return p.isReadOnlyModifier()
	}
}

func (p *Parser) wrapLeafOrMissing(want token.Kind, kind ast.Kind) *ast.Node {
	if p.cur.Kind == want {
		return p.wrapLeaf(kind)
	}
	return ast.NewMissing(want, p.cur.Start)
}

// isTypeStart recognises the start of a (possibly nullable, possibly
// union/intersection) type declaration in parameter, property, and
// return-type position.
func (p *Parser) isTypeStart() bool {
	switch p.cur.Kind {
	case token.Question, token.Name, token.Backslash, token.Array, token.Callable, token.Static, token.Null:
		return true
	default:
		return castKeywordKinds[p.cur.Kind]
	}
}

// parseTypeExpression parses a nullable/union/intersection type: spec.md
// treats a type declaration as a name list joined by "|" or "&", with an
// optional leading "?" shorthand for "|null". It is not a full
// expression grammar production; types never flow through
// parseAssignmentExpression.
func (p *Parser) parseTypeExpression() *ast.Node {
	n := ast.New(ast.NameListNode)
	if q, ok := p.eatOptional(token.Question); ok {
		n.AddChild(q)
	}
	n.AddChild(p.parseTypeAtom())
	for p.cur.Kind == token.Pipe || p.cur.Kind == token.Amp {
		n.AddToken(p.cur)
		p.advance()
		n.AddChild(p.parseTypeAtom())
	}
	return n
}

func (p *Parser) parseTypeAtom() *ast.Node {
	if castKeywordKinds[p.cur.Kind] {
		return p.wrapLeaf(ast.NameNode)
	}
	switch p.cur.Kind {
	case token.Array, token.Callable, token.Static, token.Null:
		return p.wrapLeaf(ast.NameNode)
	default:
		return p.parseQualifiedNameExpression()
	}
}

// parseAnonymousFunctionExpression parses "function (...) use (...) {...}".
// modifiers carries any leading "static" already consumed by the caller
// (an anonymous function can be declared "static function (...) {...}").
func (p *Parser) parseAnonymousFunctionExpression(modifiers []*ast.Node) *ast.Node {
	n := ast.New(ast.AnonymousFunctionExpressionNode)
	for _, m := range modifiers {
		n.AddChild(m)
	}
	n.AddToken(p.cur) // function
	p.advance()
	if amp, ok := p.eatOptional(token.Amp); ok {
		n.AddChild(amp)
	}
	n.AddChild(p.parseParameterList())
	if p.cur.Kind == token.Use {
		n.AddChild(p.parseClosureUseClause())
	}
	if colon, ok := p.eatOptional(token.Colon); ok {
		n.AddChild(colon)
		n.AddChild(p.parseTypeExpression())
	}
	n.AddChild(p.parseBlockStatement())
	return n
}

func (p *Parser) parseClosureUseClause() *ast.Node {
	n := ast.New(ast.ClosureUseClause)
	n.AddToken(p.cur) // use
	p.advance()
	n.AddChild(p.eat(token.LParen))
	n.AddChild(p.parseList(listSpec{
		ctx:          ContextParameters,
		listKind:     ast.ParameterListNode,
		isTerminator: p.atKind(token.RParen),
		isValidStart: func() bool { return p.cur.Kind == token.Amp || p.cur.Kind == token.VariableName },
		parseElement: func() *ast.Node {
			el := ast.New(ast.Parameter)
			if byRef, ok := p.eatOptional(token.Amp); ok {
				el.AddChild(byRef)
			}
			el.AddChild(p.wrapLeaf(ast.VariableNameNode))
			return el
		},
		delimiter: token.Comma,
	}))
	n.AddChild(p.eat(token.RParen))
	return n
}

// parseArrowFunctionExpression parses "fn (...) => expr".
func (p *Parser) parseArrowFunctionExpression(modifiers []*ast.Node) *ast.Node {
	n := ast.New(ast.ArrowFunctionExpression)
	for _, m := range modifiers {
		n.AddChild(m)
	}
	n.AddToken(p.cur) // fn
	p.advance()
	if amp, ok := p.eatOptional(token.Amp); ok {
		n.AddChild(amp)
	}
	n.AddChild(p.parseParameterList())
	if colon, ok := p.eatOptional(token.Colon); ok {
		n.AddChild(colon)
		n.AddChild(p.parseTypeExpression())
	}
	n.AddChild(p.eat(token.DoubleArrow))
	n.AddChild(p.parseAssignmentExpression())
	return n
}

// ---- class/interface/trait declarations ----

func (p *Parser) parseClassDeclaration() *ast.Node {
	n := ast.New(ast.ClassDeclaration)
	for p.cur.Kind == token.Abstract || p.cur.Kind == token.Final {
		n.AddChild(p.wrapLeaf(ast.Token_))
	}
	n.AddToken(p.cur) // class
	p.advance()
	n.AddChild(p.eatName())
	n.AddChild(p.parseClassHeritage())
	n.AddChild(p.parseClassBody())
	return n
}

func (p *Parser) parseClassHeritage() *ast.Node {
	n := ast.New(ast.ClassBaseClause)
	if p.cur.Kind == token.Extends {
		n.AddToken(p.cur)
		p.advance()
		n.AddChild(p.parseQualifiedNameExpression())
	}
	if p.cur.Kind == token.Implements {
		impl := ast.New(ast.ClassInterfaceClause)
		impl.AddToken(p.cur)
		p.advance()
		impl.AddChild(p.parseList(listSpec{
			ctx:          ContextUseClauses,
			listKind:     ast.NameListNode,
			isTerminator: p.atKind(token.LBrace),
			isValidStart: func() bool { return p.cur.Kind == token.Name || p.cur.Kind == token.Backslash },
			parseElement: p.parseQualifiedNameExpression,
			delimiter:    token.Comma,
		}))
		n.AddChild(impl)
	}
	return n
}

func (p *Parser) parseInterfaceDeclaration() *ast.Node {
	n := ast.New(ast.InterfaceDeclaration)
	n.AddToken(p.cur)
	p.advance()
	n.AddChild(p.eatName())
	if p.cur.Kind == token.Extends {
		ext := ast.New(ast.ClassBaseClause)
		ext.AddToken(p.cur)
		p.advance()
		ext.AddChild(p.parseList(listSpec{
			ctx:          ContextUseClauses,
			listKind:     ast.NameListNode,
			isTerminator: p.atKind(token.LBrace),
			isValidStart: func() bool { return p.cur.Kind == token.Name || p.cur.Kind == token.Backslash },
			parseElement: p.parseQualifiedNameExpression,
			delimiter:    token.Comma,
		}))
		n.AddChild(ext)
	}
	n.AddChild(p.parseClassBody())
	return n
}

func (p *Parser) parseTraitDeclaration() *ast.Node {
	n := ast.New(ast.TraitDeclaration)
	n.AddToken(p.cur)
	p.advance()
	n.AddChild(p.eatName())
	n.AddChild(p.parseClassBody())
	return n
}

func (p *Parser) parseClassBody() *ast.Node {
	lbrace := p.eatToken(token.LBrace)
	list := p.parseList(listSpec{
		ctx:          ContextClassMembers,
		listKind:     ast.ClassMemberListNode,
		isTerminator: p.atKind(token.RBrace),
		isValidStart: p.isClassMemberStart,
		parseElement: p.parseClassMember,
		delimiter:    token.EOF,
	})
	rbrace := p.eatToken(token.RBrace)
	list.Children = append([]ast.Child{{Tok: &lbrace}}, list.Children...)
	list.AddToken(rbrace)
	return list
}

func (p *Parser) isClassMemberStart() bool {
	switch p.cur.Kind {
	case token.Public, token.Protected, token.Private, token.Static, token.Abstract, token.Final,
		token.Var, token.Const, token.Function, token.Use, token.VariableName, token.Question,
		token.Name, token.Backslash, token.Array, token.Callable:
		return true
	}
	return p.isReadOnlyModifier()
}

func (p *Parser) parseClassMember() *ast.Node {
	if p.cur.Kind == token.Use {
		return p.parseTraitUseClause()
	}
	mods := p.parseModifierList()
	switch p.cur.Kind {
	case token.Const:
		return p.parseClassConstDeclaration(mods)
	case token.Function:
		return p.parseMethodDeclaration(mods)
	default:
		return p.parsePropertyDeclaration(mods)
	}
}

func (p *Parser) parseTraitUseClause() *ast.Node {
	n := ast.New(ast.TraitUseClause)
	n.AddToken(p.cur) // use
	p.advance()
	n.AddChild(p.parseList(listSpec{
		ctx:          ContextUseClauses,
		listKind:     ast.NameListNode,
		isTerminator: func() bool { return p.cur.Kind == token.Semicolon || p.cur.Kind == token.LBrace },
		isValidStart: func() bool { return p.cur.Kind == token.Name || p.cur.Kind == token.Backslash },
		parseElement: p.parseQualifiedNameExpression,
		delimiter:    token.Comma,
	}))
	if p.cur.Kind == token.LBrace {
		n.AddChild(p.parseTraitAdaptationClause())
	} else {
		n.AddChild(p.eat(token.Semicolon))
	}
	return n
}

func (p *Parser) parseTraitAdaptationClause() *ast.Node {
	n := ast.New(ast.TraitAdaptationClause)
	n.AddChild(p.eat(token.LBrace))
	n.AddChild(p.parseList(listSpec{
		ctx:          ContextClassMembers,
		listKind:     ast.StatementListNode,
		isTerminator: p.atKind(token.RBrace),
		isValidStart: func() bool { return p.cur.Kind == token.Name || p.cur.Kind == token.Backslash },
		parseElement: p.parseTraitAdaptationRule,
		delimiter:    token.EOF,
	}))
	n.AddChild(p.eat(token.RBrace))
	return n
}

func (p *Parser) parseTraitAdaptationRule() *ast.Node {
	n := ast.New(ast.TraitAdaptationClause)
	n.AddChild(p.parseQualifiedNameExpression())
	if p.cur.Kind == token.ColonColon {
		n.AddToken(p.cur)
		p.advance()
		n.AddChild(p.eatName())
	}
	if p.cur.Kind == token.As {
		n.AddToken(p.cur)
		p.advance()
		n.AddChild(p.eatName())
	} else if p.cur.Kind == token.InsteadOf {
		n.AddToken(p.cur)
		p.advance()
		n.AddChild(p.parseQualifiedNameExpression())
	}
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) parseClassConstDeclaration(mods []*ast.Node) *ast.Node {
	n := ast.New(ast.ClassConstDeclaration)
	for _, m := range mods {
		n.AddChild(m)
	}
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

func (p *Parser) parseConstElement() *ast.Node {
	n := ast.New(ast.ConstElement)
	n.AddChild(p.eatName())
	n.AddChild(p.eat(token.Assign))
	n.AddChild(p.parseAssignmentExpression())
	return n
}

func (p *Parser) parseMethodDeclaration(mods []*ast.Node) *ast.Node {
	n := ast.New(ast.MethodDeclaration)
	for _, m := range mods {
		n.AddChild(m)
	}
	n.AddToken(p.cur) // function
	p.advance()
	if amp, ok := p.eatOptional(token.Amp); ok {
		n.AddChild(amp)
	}
	n.AddChild(p.eatName())
	n.AddChild(p.parseParameterList())
	if colon, ok := p.eatOptional(token.Colon); ok {
		n.AddChild(colon)
		n.AddChild(p.parseTypeExpression())
	}
	if p.cur.Kind == token.LBrace {
		n.AddChild(p.parseBlockStatement())
	} else {
		n.AddChild(p.eat(token.Semicolon)) // abstract/interface method has no body
	}
	return n
}

func (p *Parser) parsePropertyDeclaration(mods []*ast.Node) *ast.Node {
	n := ast.New(ast.PropertyDeclaration)
	for _, m := range mods {
		n.AddChild(m)
	}
	if p.isTypeStart() && p.cur.Kind != token.VariableName {
		n.AddChild(p.parseTypeExpression())
	}
	n.AddChild(p.parseList(listSpec{
		ctx:          ContextConstElements,
		listKind:     ast.ConstElementListNode,
		isTerminator: p.atKind(token.Semicolon),
		isValidStart: func() bool { return p.cur.Kind == token.VariableName },
		parseElement: p.parsePropertyDeclarator,
		delimiter:    token.Comma,
	}))
	n.AddChild(p.eat(token.Semicolon))
	return n
}

func (p *Parser) parsePropertyDeclarator() *ast.Node {
	n := ast.New(ast.PropertyDeclarator)
	n.AddChild(p.wrapLeaf(ast.VariableNameNode))
	if eq, ok := p.eatOptional(token.Assign); ok {
		n.AddChild(eq)
		n.AddChild(p.parseAssignmentExpression())
	}
	return n
}

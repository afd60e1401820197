package parser

import (
	"github.com/scriptcst/parser/ast"
	"github.com/scriptcst/parser/token"
)

// ListContext identifies one nested list-parsing context. The active set
// is a stack, not just a mask: enclosing-context recovery walks it from
// the innermost enclosing context outward so a token that makes sense to
// an ancestor list (e.g. a "}"
// closing a surrounding block while parsing a malformed parameter list)
// lets the inner list terminate instead of swallowing it as garbage.
type ListContext int

const (
	ContextStatements ListContext = iota
	ContextClassMembers
	ContextParameters
	ContextArguments
	ContextArrayElements
	ContextCatchClauses
	ContextUseClauses
	ContextConstElements
	ContextStaticVariables
	ContextForClauses
)

func (c ListContext) String() string {
	switch c {
	case ContextStatements:
		return "ContextStatements"
	case ContextClassMembers:
		return "ContextClassMembers"
	case ContextParameters:
		return "ContextParameters"
	case ContextArguments:
		return "ContextArguments"
	case ContextArrayElements:
		return "ContextArrayElements"
	case ContextCatchClauses:
		return "ContextCatchClauses"
	case ContextUseClauses:
		return "ContextUseClauses"
	case ContextConstElements:
		return "ContextConstElements"
	case ContextStaticVariables:
		return "ContextStaticVariables"
	case ContextForClauses:
		return "ContextForClauses"
	default:
		panic("parser: unknown ListContext")
	}
}

type activeContext struct {
	ctx          ListContext
	isTerminator func() bool
	isValidStart func() bool
}

// listSpec is everything parseList needs to drive one list production.
// delimiter is token.EOF when the list has no separator token between
// elements (e.g. a statement list).
type listSpec struct {
	ctx          ListContext
	listKind     ast.Kind
	isTerminator func() bool
	isValidStart func() bool
	parseElement func() *ast.Node
	delimiter    token.Kind
}

// parseList is the generic recovery-driven list parser spec §4.2
// describes: at each position it tries, in order, (1) the local
// terminator, (2) a local element start, (3) whether an enclosing
// context would rather have this token, and only then (4) discards the
// token as a SkippedToken_ and tries again. It always terminates: every
// iteration either parses an element (which must itself consume at
// least one token, enforced by mustProgress) or skips exactly one token.
func (p *Parser) parseList(spec listSpec) *ast.Node {
	list := ast.New(spec.listKind)
	p.contexts = append(p.contexts, activeContext{ctx: spec.ctx, isTerminator: spec.isTerminator, isValidStart: spec.isValidStart})
	defer func() { p.contexts = p.contexts[:len(p.contexts)-1] }()

	for {
		if p.cur.Kind == token.EOF || spec.isTerminator() {
			return list
		}
		if spec.isValidStart() {
			mark := p.save()
			elem := spec.parseElement()
			p.mustProgress(mark)
			list.AddChild(elem)
			if spec.delimiter != token.EOF {
				if tok, ok := p.eatOptionalToken(spec.delimiter); ok {
					list.AddToken(tok)
				}
			}
			continue
		}
		if p.enclosingContextWants() {
			return list
		}
		list.AddChild(p.skipAsGarbage())
	}
}

// enclosingContextWants reports whether any context other than the
// innermost (currently being parsed) would treat the current token as
// either its own terminator or a valid element start. It excludes the
// innermost context itself, which has already rejected this token as
// both in the caller.
func (p *Parser) enclosingContextWants() bool {
	for i := len(p.contexts) - 2; i >= 0; i-- {
		c := p.contexts[i]
		if c.isTerminator() || c.isValidStart() {
			return true
		}
	}
	return false
}

func (p *Parser) eatOptionalToken(kind token.Kind) (token.Token, bool) {
	if p.cur.Kind != kind {
		return token.Token{}, false
	}
	tok := p.cur
	p.advance()
	return tok, true
}

// isTerminator helpers shared across list() call sites.
func (p *Parser) atKind(kinds ...token.Kind) func() bool {
	return func() bool { return p.checkAny(kinds...) }
}

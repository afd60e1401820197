// Package parser implements the error-tolerant recursive-descent parser:
// token consumption primitives, the generic list-parse recovery driver,
// and (in the sibling files in this package) the statement, declaration,
// and Pratt expression grammars built on top of them.
package parser

import (
	"reflect"

	"github.com/scriptcst/parser/ast"
	"github.com/scriptcst/parser/lexer"
	"github.com/scriptcst/parser/token"
)

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithFile records the source file name on the Parser. The parser never
// reports errors out of band and does not read the name back; nothing in
// the cstdump CLI's output shows it either.
func WithFile(name string) Option {
	return func(p *Parser) { p.file = name }
}

// WithRecoveryTrace makes the parser append a short description of each
// token it skips through skipAsGarbage (list recovery and stray tokens in
// an interpolated string) to trace. SkippedTokens made elsewhere (a stray
// statement-level "abstract"/"final", or the token inside a
// MissingExpression) are not recorded. Nil by default: the parser runs with
// no observability overhead unless a caller asks for it, the same
// posture the teacher's own Parser.Option set takes.
func WithRecoveryTrace(trace *[]string) Option {
	return func(p *Parser) { p.trace = trace }
}

// Parser turns a token stream into a Node tree. It never errors or
// panics on malformed input — only on a programmer error such as an
// unrecognised ListContext (spec's error-handling table: "no input can
// make the parser crash").
type Parser struct {
	source []byte
	file   string
	lex    *lexer.Lexer
	cur    token.Token
	trace  *[]string

	contexts []activeContext // currently active list contexts, innermost last
}

// New creates a Parser over a complete source text.
func New(source []byte, opts ...Option) *Parser {
	p := &Parser{source: source, lex: lexer.New(source)}
	for _, opt := range opts {
		opt(p)
	}
	p.cur = p.lex.ScanNext()
	return p
}

// ParseCompilationUnit parses the whole source as the top-level
// production: an optional leading inline-HTML island followed by the
// source-elements list, repeated as the lexer's inline-HTML/script mode
// switches back and forth across "<?php"/"?>" boundaries.
func (p *Parser) ParseCompilationUnit() *ast.Node {
	root := ast.New(ast.CompilationUnit)
	list := ast.New(ast.StatementListNode)
	root.AddChild(list)

	for p.cur.Kind != token.EOF {
		list.AddChild(p.parseSourceElement())
	}
	return root
}

// parseSourceElement parses one element of the top-level list: either an
// inline-HTML island or one script statement. Because the lexer starts in
// inline-HTML mode, the very first call of a non-empty source naturally
// sees one of the island-starting kinds below and emits the leading
// island spec §4.8 requires, with no separate top-of-file special case.
func (p *Parser) parseSourceElement() *ast.Node {
	if p.isInlineHTMLIslandStart() {
		return p.parseInlineHTMLIsland()
	}
	return p.parseStatement()
}

// isInlineHTMLIslandStart reports whether the current token is one of
// spec §4.8's three inline-HTML island slots: the script-end tag closing
// a script section, the literal HTML text between script sections, or
// the script-start tag opening the next one.
func (p *Parser) isInlineHTMLIslandStart() bool {
	switch p.cur.Kind {
	case token.InlineHTML, token.ScriptSectionEnd, token.ScriptSectionStart, token.ScriptSectionStartEcho:
		return true
	default:
		return false
	}
}

// parseInlineHTMLIsland consumes spec §4.8's three optional slots, in the
// only order the lexer can ever produce them in: the tag closing the
// previous script section, the HTML text it exposes, and the tag opening
// the next script section. Every caller reaches this only after
// isInlineHTMLIslandStart reports true, so at least one slot is present
// and the call is guaranteed to advance the stream.
func (p *Parser) parseInlineHTMLIsland() *ast.Node {
	n := ast.New(ast.InlineHTMLNode)
	if p.cur.Kind == token.ScriptSectionEnd {
		n.AddToken(p.cur)
		p.advance()
	}
	if p.cur.Kind == token.InlineHTML {
		n.AddToken(p.cur)
		p.advance()
	}
	if p.cur.Kind == token.ScriptSectionStart || p.cur.Kind == token.ScriptSectionStartEcho {
		n.AddToken(p.cur)
		p.advance()
	}
	return n
}

func (p *Parser) advance() {
	p.cur = p.lex.ScanNext()
}

// savedPos is the O(1) snapshot lookahead saves and restores: the lexer
// cursor plus the one-token window the parser holds onto.
type savedPos struct {
	cursor lexer.Cursor
	cur    token.Token
}

func (p *Parser) save() savedPos {
	return savedPos{cursor: p.lex.Position(), cur: p.cur}
}

func (p *Parser) restore(s savedPos) {
	p.lex.Seek(s.cursor)
	p.cur = s.cur
}

// lookahead probes the token stream with probe, then always rewinds to
// where it started: probe's return value reports what it found, it is
// never responsible for leaving state consumed.
func (p *Parser) lookahead(probe func() bool) bool {
	s := p.save()
	ok := probe()
	p.restore(s)
	return ok
}

// peekAfter reports the kind of the token that follows the current one,
// without moving the parser off the current token.
func (p *Parser) peekAfter() token.Kind {
	s := p.save()
	p.advance()
	next := p.cur.Kind
	p.restore(s)
	return next
}

// check reports whether the current token has the given kind, without
// consuming it.
func (p *Parser) check(kind token.Kind) bool {
	return p.cur.Kind == kind
}

func (p *Parser) checkAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.cur.Kind == k {
			return true
		}
	}
	return false
}

// eat consumes the current token if it has the expected kind, wrapping
// it as a Token_ leaf. If the current token has the wrong kind, it is
// left in place (the caller/driver decides whether to treat it as
// garbage or as the start of something else) and a MissingToken_ leaf is
// synthesized in its place, per spec §4.1.
func (p *Parser) eat(kind token.Kind) *ast.Node {
	if p.cur.Kind == kind {
		tok := p.cur
		p.advance()
		return ast.NewLeaf(ast.Token_, tok)
	}
	return ast.NewMissing(kind, p.cur.Start)
}

// eatOptional consumes the current token and returns (leaf, true) if it
// has the given kind; otherwise returns (nil, false) and consumes
// nothing.
func (p *Parser) eatOptional(kind token.Kind) (*ast.Node, bool) {
	if p.cur.Kind != kind {
		return nil, false
	}
	tok := p.cur
	p.advance()
	return ast.NewLeaf(ast.Token_, tok), true
}

// eatToken is eat's bare-token counterpart, for callers building a
// DelimitedList that stores delimiters as Child{Tok: ...} rather than as
// wrapper Nodes.
func (p *Parser) eatToken(kind token.Kind) token.Token {
	if p.cur.Kind == kind {
		tok := p.cur
		p.advance()
		return tok
	}
	return token.NewMissing(kind, p.cur.Start)
}

// wrapLeaf consumes the current token unconditionally and wraps it as a
// node of the given kind (used for single-token productions like
// InlineHTML, VariableName, and literals, where the token's own Kind
// already identifies the production — eat's mismatch handling does not
// apply).
func (p *Parser) wrapLeaf(kind ast.Kind) *ast.Node {
	tok := p.cur
	p.advance()
	return ast.NewLeaf(kind, tok)
}

// mustProgress panics if the parser's position did not advance since
// mark, which would otherwise manifest as an infinite loop. It exists to
// catch a programmer error in a new production, never a malformed input:
// every element-parsing function is required to consume at least one
// token or delegate to something that does.
func (p *Parser) mustProgress(mark savedPos) {
	if p.cur.Kind == mark.cur.Kind && reflect.DeepEqual(p.lex.Position(), mark.cursor) {
		panic("parser: parseElement made no progress")
	}
}

// skipAsGarbage records the current token as a SkippedToken_ and
// advances past it. This is the list-parse driver's last resort, used
// once local-starter and enclosing-context recovery have both failed
// (spec §4.2); parseTemplateExpression also uses it for a token that
// cannot start a template part.
func (p *Parser) skipAsGarbage() *ast.Node {
	tok := p.cur
	if p.trace != nil {
		*p.trace = append(*p.trace, "skipped "+tok.Kind.String()+" at "+itoa(tok.Start))
	}
	p.advance()
	return ast.NewSkipped(tok)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

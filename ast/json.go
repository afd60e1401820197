package ast

import "encoding/json"

// jsonNode is the wire shape the cstdump CLI's "json" output format emits:
// one object per Node, with line/column positions resolved against the
// source buffer rather than raw byte offsets, and bare tokens folded in as
// children with no further nesting.
type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Token    string      `json:"token,omitempty"`
	Missing  bool        `json:"missing,omitempty"`
	Skipped  bool        `json:"skipped,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// EncodeJSON renders n and its subtree for the cstdump CLI, resolving
// every leaf's byte offsets against source into 1-based line/column pairs.
func (n *Node) EncodeJSON(source []byte) ([]byte, error) {
	return json.MarshalIndent(toJSONNode(n, source), "", "  ")
}

func toJSONNode(n *Node, source []byte) *jsonNode {
	jn := &jsonNode{Kind: n.Kind.String()}

	if fullStart, end := n.Span(); end > fullStart || end > 0 {
		jn.Span = &jsonSpan{
			Start: positionAt(source, fullStart),
			End:   positionAt(source, end),
		}
	}

	if n.Token != nil {
		jn.Token = n.Token.Text(source)
		jn.Missing = n.IsMissing()
		jn.Skipped = n.IsSkipped()
	}

	for _, c := range n.Children {
		switch {
		case c.Node != nil:
			jn.Children = append(jn.Children, toJSONNode(c.Node, source))
		case c.Tok != nil:
			jn.Children = append(jn.Children, &jsonNode{
				Kind:    "Token",
				Token:   c.Tok.Text(source),
				Missing: c.Tok.Missing,
				Span: &jsonSpan{
					Start: positionAt(source, c.Tok.FullStart),
					End:   positionAt(source, c.Tok.End()),
				},
			})
		}
	}

	return jn
}

// positionAt resolves a byte offset into a 1-based line and column,
// counting columns in bytes rather than runes, matching the offsets the
// lexer itself already works in.
func positionAt(source []byte, offset int) jsonPosition {
	if offset > len(source) {
		offset = len(source)
	}
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return jsonPosition{Line: line, Column: col}
}

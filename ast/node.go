// Package ast defines the concrete syntax tree the parser builds: a
// closed Kind enumeration, a generic Node carrying typed and untyped
// children alike, and the MissingToken/SkippedToken leaf conventions that
// make the tree lossless and error-tolerant.
package ast

import (
	"fmt"
	"strings"

	"github.com/scriptcst/parser/token"
)

// Kind tags the grammar production (or token wrapper) a Node represents.
type Kind int

const (
	// CompilationUnit is the root. Its Parent is always nil; every other
	// node's Parent is non-nil.
	CompilationUnit Kind = iota

	// Leaves that wrap a single token rather than a list of children.
	Token_        // wraps any ordinary token verbatim (punctuation, keywords used as leaves)
	MissingToken_ // wraps a token.NewMissing token
	SkippedToken_ // wraps a real token the parser could not place anywhere

	InlineHTMLNode

	// Names.
	NameNode
	QualifiedNameNode
	VariableNameNode

	// Lists (spec §2 DelimitedList: alternating element/delimiter children).
	StatementListNode
	ParameterListNode
	ArgumentListNode
	ArrayElementListNode
	ClassMemberListNode
	CatchClauseListNode
	UseClauseListNode
	ConstElementListNode
	StaticVariableListNode
	NameListNode

	// Statements.
	ExpressionStatement
	BlockStatement
	EmptyStatement
	IfStatement
	ElseClause
	ElseIfClause
	WhileStatement
	DoWhileStatement
	ForStatement
	ForClauseList
	ForeachStatement
	SwitchStatement
	CaseClause
	DefaultClause
	BreakStatement
	ContinueStatement
	ReturnStatement
	GlobalStatement
	StaticVariableStatement
	StaticVariableDeclarator
	EchoStatement
	UnsetStatement
	ThrowStatement
	TryStatement
	CatchClause
	FinallyClause
	GotoStatement
	LabelStatement
	DeclareStatement
	NamespaceStatement
	NamespaceUseStatement
	NamespaceUseClause
	NamespaceUseGroupClause

	// Declarations.
	FunctionDeclaration
	Parameter
	AnonymousFunctionExpressionNode
	ArrowFunctionExpression
	ClosureUseClause
	ClassDeclaration
	InterfaceDeclaration
	TraitDeclaration
	ClassBaseClause
	ClassInterfaceClause
	TraitUseClause
	TraitAdaptationClause
	MethodDeclaration
	PropertyDeclaration
	PropertyDeclarator
	ClassConstDeclaration
	ConstDeclaration
	ConstElement

	// Expressions.
	MissingExpression // synthesized when no expression is present at all
	ParenthesizedExpression
	BinaryExpression
	UnaryOpExpression
	PrefixUpdateExpression
	PostfixUpdateExpression
	AssignmentExpression
	ConditionalExpression
	CallExpression
	MemberAccessExpression
	ScopedPropertyAccessExpression
	SubscriptExpression
	ArrayCreationExpression
	ArrayElement
	ListIntrinsicExpression
	CastExpression
	InstanceOfExpression
	ObjectCreationExpression
	CloneExpression
	PrintIntrinsicExpression
	ExitIntrinsicExpression
	IssetIntrinsicExpression
	EmptyIntrinsicExpression
	ErrorSuppressExpression
	YieldExpression
	AnonymousClassExpression

	// Interpolated strings (spec §4.6).
	TemplateExpression

	LiteralExpression // integer/float/non-interpolated string/true/false/null
)

var kindNames = map[Kind]string{
	CompilationUnit:                 "CompilationUnit",
	Token_:                          "Token",
	MissingToken_:                   "MissingToken",
	SkippedToken_:                   "SkippedToken",
	InlineHTMLNode:                  "InlineHTML",
	NameNode:                        "Name",
	QualifiedNameNode:               "QualifiedName",
	VariableNameNode:                "VariableName",
	StatementListNode:               "StatementList",
	ParameterListNode:               "ParameterList",
	ArgumentListNode:                "ArgumentList",
	ArrayElementListNode:            "ArrayElementList",
	ClassMemberListNode:             "ClassMemberList",
	CatchClauseListNode:             "CatchClauseList",
	UseClauseListNode:               "UseClauseList",
	ConstElementListNode:            "ConstElementList",
	StaticVariableListNode:          "StaticVariableList",
	NameListNode:                    "NameList",
	ExpressionStatement:             "ExpressionStatement",
	BlockStatement:                  "BlockStatement",
	EmptyStatement:                  "EmptyStatement",
	IfStatement:                     "IfStatement",
	ElseClause:                      "ElseClause",
	ElseIfClause:                    "ElseIfClause",
	WhileStatement:                  "WhileStatement",
	DoWhileStatement:                "DoWhileStatement",
	ForStatement:                    "ForStatement",
	ForClauseList:                   "ForClauseList",
	ForeachStatement:                "ForeachStatement",
	SwitchStatement:                 "SwitchStatement",
	CaseClause:                      "CaseClause",
	DefaultClause:                   "DefaultClause",
	BreakStatement:                  "BreakStatement",
	ContinueStatement:               "ContinueStatement",
	ReturnStatement:                 "ReturnStatement",
	GlobalStatement:                 "GlobalStatement",
	StaticVariableStatement:         "StaticVariableStatement",
	StaticVariableDeclarator:        "StaticVariableDeclarator",
	EchoStatement:                   "EchoStatement",
	UnsetStatement:                  "UnsetStatement",
	ThrowStatement:                  "ThrowStatement",
	TryStatement:                    "TryStatement",
	CatchClause:                     "CatchClause",
	FinallyClause:                   "FinallyClause",
	GotoStatement:                   "GotoStatement",
	LabelStatement:                  "LabelStatement",
	DeclareStatement:                "DeclareStatement",
	NamespaceStatement:              "NamespaceStatement",
	NamespaceUseStatement:           "NamespaceUseStatement",
	NamespaceUseClause:              "NamespaceUseClause",
	NamespaceUseGroupClause:         "NamespaceUseGroupClause",
	FunctionDeclaration:             "FunctionDeclaration",
	Parameter:                       "Parameter",
	AnonymousFunctionExpressionNode: "AnonymousFunctionExpression",
	ArrowFunctionExpression:         "ArrowFunctionExpression",
	ClosureUseClause:                "ClosureUseClause",
	ClassDeclaration:                "ClassDeclaration",
	InterfaceDeclaration:            "InterfaceDeclaration",
	TraitDeclaration:                "TraitDeclaration",
	ClassBaseClause:                 "ClassBaseClause",
	ClassInterfaceClause:            "ClassInterfaceClause",
	TraitUseClause:                  "TraitUseClause",
	TraitAdaptationClause:           "TraitAdaptationClause",
	MethodDeclaration:               "MethodDeclaration",
	PropertyDeclaration:             "PropertyDeclaration",
	PropertyDeclarator:              "PropertyDeclarator",
	ClassConstDeclaration:           "ClassConstDeclaration",
	ConstDeclaration:                "ConstDeclaration",
	ConstElement:                    "ConstElement",
	MissingExpression:               "MissingExpression",
	ParenthesizedExpression:         "ParenthesizedExpression",
	BinaryExpression:                "BinaryExpression",
	UnaryOpExpression:               "UnaryOpExpression",
	PrefixUpdateExpression:          "PrefixUpdateExpression",
	PostfixUpdateExpression:         "PostfixUpdateExpression",
	AssignmentExpression:            "AssignmentExpression",
	ConditionalExpression:           "ConditionalExpression",
	CallExpression:                  "CallExpression",
	MemberAccessExpression:          "MemberAccessExpression",
	ScopedPropertyAccessExpression:  "ScopedPropertyAccessExpression",
	SubscriptExpression:             "SubscriptExpression",
	ArrayCreationExpression:         "ArrayCreationExpression",
	ArrayElement:                    "ArrayElement",
	ListIntrinsicExpression:         "ListIntrinsicExpression",
	CastExpression:                  "CastExpression",
	InstanceOfExpression:            "InstanceOfExpression",
	ObjectCreationExpression:        "ObjectCreationExpression",
	CloneExpression:                 "CloneExpression",
	PrintIntrinsicExpression:        "PrintIntrinsicExpression",
	ExitIntrinsicExpression:         "ExitIntrinsicExpression",
	IssetIntrinsicExpression:        "IssetIntrinsicExpression",
	EmptyIntrinsicExpression:        "EmptyIntrinsicExpression",
	ErrorSuppressExpression:         "ErrorSuppressExpression",
	YieldExpression:                 "YieldExpression",
	AnonymousClassExpression:        "AnonymousClassExpression",
	TemplateExpression:              "TemplateExpression",
	LiteralExpression:               "LiteralExpression",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Child is a tagged union: exactly one of Node or Tok is set. A
// DelimitedList's alternating element/delimiter children are ordinary
// Children where the delimiter entries wrap a token (typically Comma)
// directly rather than a wrapper Node, matching spec §2.
type Child struct {
	Node *Node
	Tok  *token.Token
}

// IsToken reports whether this child is a bare token rather than a Node.
func (c Child) IsToken() bool { return c.Tok != nil }

// Node is one non-leaf (or token-wrapping leaf) member of the tree.
// Parent is nil only for the CompilationUnit root. Children is ordered
// and, for list kinds, densely covers the source the way spec §2
// requires: every byte belongs to some leaf token's full span.
type Node struct {
	Kind     Kind
	Parent   *Node
	Children []Child
	Token    *token.Token // set only for leaf kinds: Token_, MissingToken_, SkippedToken_
}

// New creates a detached node of the given kind with no children yet.
func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

// NewLeaf wraps tok as a leaf node of kind (normally Token_).
func NewLeaf(kind Kind, tok token.Token) *Node {
	return &Node{Kind: kind, Token: &tok}
}

// NewMissing synthesizes a MissingToken_ leaf standing in for an absent
// required token, per spec §4.1 ("eat" on a miss).
func NewMissing(k token.Kind, pos int) *Node {
	tok := token.NewMissing(k, pos)
	return &Node{Kind: MissingToken_, Token: &tok}
}

// NewSkipped wraps a real token the parser could not place in the tree
// shape it was building, per spec §4.2's recovery contract.
func NewSkipped(tok token.Token) *Node {
	return &Node{Kind: SkippedToken_, Token: &tok}
}

// AddChild appends child as a Node-shaped child of n and sets its
// Parent. child must not already have a parent.
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		panic("ast: AddChild: child already has a parent")
	}
	child.Parent = n
	n.Children = append(n.Children, Child{Node: child})
}

// AddToken appends tok as a bare-token child of n (used for delimiters
// in a DelimitedList, and for leaf keywords/punctuation a production
// consumes but does not wrap in their own Node).
func (n *Node) AddToken(tok token.Token) {
	n.Children = append(n.Children, Child{Tok: &tok})
}

// Reparent detaches child from wherever it currently sits (if anywhere)
// and re-homes it as the last child of newParent. The parser itself does
// not call it: its postfix loop builds each wrapper node before attaching
// the operand, so an operand is attached only once.
func Reparent(child *Node, newParent *Node) {
	if child.Parent != nil {
		removeChild(child.Parent, child)
	}
	child.Parent = newParent
	newParent.Children = append(newParent.Children, Child{Node: child})
}

func removeChild(parent *Node, child *Node) {
	for i, c := range parent.Children {
		if c.Node == child {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return
		}
	}
}

// IsMissing reports whether n is a MissingToken_ leaf.
func (n *Node) IsMissing() bool {
	return n.Kind == MissingToken_
}

// IsSkipped reports whether n is a SkippedToken_ leaf.
func (n *Node) IsSkipped() bool {
	return n.Kind == SkippedToken_
}

// FirstChildOfKind returns the first Node-shaped child of the given kind,
// or nil if there is none.
func (n *Node) FirstChildOfKind(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Node != nil && c.Node.Kind == kind {
			return c.Node
		}
	}
	return nil
}

// ChildrenOfKind returns every Node-shaped child of the given kind, in
// order.
func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Node != nil && c.Node.Kind == kind {
			out = append(out, c.Node)
		}
	}
	return out
}

// ListElements returns the Node-shaped children of a DelimitedList node,
// skipping the delimiter tokens interleaved between them.
func (n *Node) ListElements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Node != nil {
			out = append(out, c.Node)
		}
	}
	return out
}

// TokenLiteral returns the significant text of n's Token, or "" if n is
// not a leaf.
func (n *Node) TokenLiteral(source []byte) string {
	if n.Token == nil {
		return ""
	}
	return n.Token.Text(source)
}

// Span returns the full byte range n covers: the leading trivia of its
// first leaf through the end of its last leaf's significant text. A node
// with no children (should not normally occur outside a malformed tree)
// returns (0, 0).
func (n *Node) Span() (fullStart, end int) {
	first := n.firstLeaf()
	last := n.lastLeaf()
	if first == nil || last == nil {
		return 0, 0
	}
	return first.FullStart, last.End()
}

func (n *Node) firstLeaf() *token.Token {
	if n.Token != nil {
		return n.Token
	}
	for _, c := range n.Children {
		if c.Tok != nil {
			return c.Tok
		}
		if c.Node != nil {
			if t := c.Node.firstLeaf(); t != nil {
				return t
			}
		}
	}
	return nil
}

func (n *Node) lastLeaf() *token.Token {
	if n.Token != nil {
		return n.Token
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		c := n.Children[i]
		if c.Tok != nil {
			return c.Tok
		}
		if c.Node != nil {
			if t := c.Node.lastLeaf(); t != nil {
				return t
			}
		}
	}
	return nil
}

// String renders n as an indented tree, primarily for tests and the
// cstdump CLI's text output mode.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.Token != nil {
		fmt.Fprintf(b, "%s%s %q\n", indent, n.Kind, n.Token.Kind)
		return
	}
	fmt.Fprintf(b, "%s%s\n", indent, n.Kind)
	for _, c := range n.Children {
		if c.Tok != nil {
			fmt.Fprintf(b, "%s  %s\n", indent, c.Tok.Kind)
			continue
		}
		c.Node.write(b, depth+1)
	}
}

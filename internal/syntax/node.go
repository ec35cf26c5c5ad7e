package syntax

import "github.com/dumbbrain-lang/dumbbrain/internal/object"

// Node is the read-only view tree printers walk. Tokens are leaves;
// expressions list their tokens and sub-expressions in source order.
type Node interface {
	NodeKind() Kind
	Children() []Node
	// LiteralValue returns the literal carried by the node, if any
	LiteralValue() object.Object
}

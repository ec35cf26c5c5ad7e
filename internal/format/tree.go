// Package format renders syntax trees, bound trees and token streams as
// text for tests and tooling.
package format

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dumbbrain-lang/dumbbrain/internal/binder"
	"github.com/dumbbrain-lang/dumbbrain/internal/lexer"
	"github.com/dumbbrain-lang/dumbbrain/internal/syntax"
)

const (
	branchMid  = "├─ "
	branchLast = "└─ "
	indentBar  = "│  "
	indentNone = "   "
)

// Branch is one labelled node of a printable tree.
type Branch interface {
	Label() string
	Branches() []Branch
}

// Render prints root followed by its branches, one node per line.
func Render(root string, branches ...Branch) string {
	var sb strings.Builder
	sb.WriteString(root)
	sb.WriteByte('\n')
	writeBranches(&sb, "", branches)
	return sb.String()
}

func writeBranches(sb *strings.Builder, prefix string, branches []Branch) {
	for i, b := range branches {
		last := i == len(branches)-1
		sb.WriteString(prefix)
		if last {
			sb.WriteString(branchLast)
		} else {
			sb.WriteString(branchMid)
		}
		sb.WriteString(b.Label())
		sb.WriteByte('\n')

		next := prefix + indentBar
		if last {
			next = prefix + indentNone
		}
		writeBranches(sb, next, b.Branches())
	}
}

// Tree renders a syntax node under a root label. A nil node renders the
// root alone.
func Tree(root string, node syntax.Node) string {
	if node == nil {
		return Render(root)
	}
	return Render(root, Syntax(node))
}

// BoundTree renders a bound expression with the static type of each node.
func BoundTree(root string, expr binder.BoundExpression) string {
	if expr == nil {
		return Render(root)
	}
	return Render(root, Bound(expr))
}

type syntaxBranch struct{ node syntax.Node }

// Syntax adapts a syntax node. Its label is the node kind, followed by
// the literal value when the node carries one.
func Syntax(node syntax.Node) Branch { return syntaxBranch{node} }

func (s syntaxBranch) Label() string {
	label := s.node.NodeKind().String()
	if v := s.node.LiteralValue(); v != nil {
		label += " " + v.String()
	}
	return label
}

func (s syntaxBranch) Branches() []Branch {
	children := s.node.Children()
	branches := make([]Branch, len(children))
	for i, c := range children {
		branches[i] = Syntax(c)
	}
	return branches
}

type boundBranch struct{ expr binder.BoundExpression }

// Bound adapts a bound expression.
func Bound(expr binder.BoundExpression) Branch { return boundBranch{expr} }

func (b boundBranch) Label() string {
	switch e := b.expr.(type) {
	case *binder.BoundLiteral:
		if e.Value == nil {
			return fmt.Sprintf("Literal : %s", e.Type())
		}
		return fmt.Sprintf("Literal %s : %s", e.Value, e.Type())
	case *binder.BoundBinary:
		return fmt.Sprintf("Binary %s : %s", e.Op, e.Type())
	case *binder.BoundUnary:
		return fmt.Sprintf("Unary %s : %s", e.Op, e.Type())
	default:
		return fmt.Sprintf("%T", b.expr)
	}
}

func (b boundBranch) Branches() []Branch {
	switch e := b.expr.(type) {
	case *binder.BoundBinary:
		return []Branch{Bound(e.Left), Bound(e.Right)}
	case *binder.BoundUnary:
		return []Branch{Bound(e.Operand)}
	default:
		return nil
	}
}

// Tokens renders a token table with one token per row.
func Tokens(tokens []lexer.Token) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tTEXT\tSPAN\tVALUE")
	for _, tok := range tokens {
		value := ""
		if tok.Value != nil {
			value = tok.Value.String()
		}
		fmt.Fprintf(w, "%s\t%q\t%s\t%s\n", tok.Kind, tok.Text, tok.Span, value)
	}
	w.Flush()
	return sb.String()
}

package docgen

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// definitionNode unwraps a decorated_definition to the definition it wraps.
// Any other node is returned as-is.
func definitionNode(node *sitter.Node) *sitter.Node {
	if node.Type() == "decorated_definition" {
		if def := node.ChildByFieldName("definition"); def != nil {
			return def
		}
	}
	return node
}

// outermostNode returns the node whose source text represents the whole
// definition: the enclosing decorated_definition when decorators are present.
func outermostNode(node *sitter.Node) *sitter.Node {
	if parent := node.Parent(); parent != nil && parent.Type() == "decorated_definition" {
		return parent
	}
	return node
}

// nodePath computes the sequence of child indices from the tree root down to
// node. The same indexing is used when re-resolving, so extraction and
// splicing agree on addressing within one tree shape.
func nodePath(node *sitter.Node) []int {
	var rev []int
	for cur := node; cur.Parent() != nil; cur = cur.Parent() {
		parent := cur.Parent()
		idx := -1
		for i := 0; i < int(parent.ChildCount()); i++ {
			child := parent.Child(i)
			if child != nil && child.StartByte() == cur.StartByte() && child.EndByte() == cur.EndByte() && child.Type() == cur.Type() {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil
		}
		rev = append(rev, idx)
	}
	path := make([]int, len(rev))
	for i, idx := range rev {
		path[len(rev)-1-i] = idx
	}
	return path
}

// resolvePath walks the child-index path from root. Returns nil if the path
// no longer fits the tree shape.
func resolvePath(root *sitter.Node, path []int) *sitter.Node {
	cur := root
	for _, idx := range path {
		if idx < 0 || idx >= int(cur.ChildCount()) {
			return nil
		}
		cur = cur.Child(idx)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// docstringNode returns the string node of a definition's docstring: the
// first statement of the body, if it is a bare string literal expression.
// Returns nil when the definition has no docstring.
func docstringNode(def *sitter.Node) *sitter.Node {
	body := def.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	// Comments are named nodes in the block but are not statements; the
	// docstring convention looks at the first real statement.
	var first *sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		first = child
		break
	}
	if first == nil || first.Type() != "expression_statement" {
		return nil
	}
	str := first.NamedChild(0)
	if str == nil || str.Type() != "string" {
		return nil
	}
	return str
}

// stringLiteralText strips the quoting syntax from a Python string literal
// and returns its inner text, trimmed of surrounding whitespace. Prefix
// characters (r, b, u, f in any case or combination) are removed first.
func stringLiteralText(literal string) string {
	s := literal
	for len(s) > 0 {
		switch s[0] {
		case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
			s = s[1:]
			continue
		}
		break
	}
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			s = s[len(q) : len(s)-len(q)]
			break
		}
	}
	return strings.TrimSpace(s)
}

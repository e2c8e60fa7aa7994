package docgen

import (
	"bytes"
	"errors"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/julianshen/aidocgen/internal/parser"
)

// ErrTargetNotFound is returned by Splice when no definition in the source
// matches the target by path or by name and kind.
var ErrTargetNotFound = errors.New("target definition not found")

// Target identifies one definition to splice a generated docstring into.
type Target struct {
	Name      string
	Kind      Kind
	Path      []int  // structural path from the extraction parse; may be nil
	Docstring string // generated summary to insert
}

// Splicer inserts generated docstrings into source text. Every call
// re-parses the input; earlier splices may have mutated the text, so the
// previous parse is never trusted. Edits are byte-range replacements: bytes
// outside the edited region are preserved exactly.
type Splicer struct {
	parser *parser.Parser
}

// NewSplicer creates a new Splicer.
func NewSplicer() *Splicer {
	return &Splicer{parser: parser.NewParser()}
}

// Splice locates target's definition in a fresh parse of source and makes
// the generated summary its first body statement, replacing any existing
// docstring. The node is resolved by structural path first; when the tree
// shape has drifted the lookup falls back to the first node in traversal
// order matching name and kind.
//
// When the located definition already has a non-empty docstring and
// overwrite is false the input is returned unchanged; when no definition
// matches at all the input is returned with ErrTargetNotFound. The second
// return value reports whether the source was edited.
func (s *Splicer) Splice(filename string, source []byte, target Target, overwrite bool) ([]byte, bool, error) {
	tree, err := s.parser.Parse(filename, source)
	if err != nil {
		return source, false, err
	}

	wantType := tree.FuncNodeType()
	if target.Kind == KindClass {
		wantType = tree.TypeNodeType()
	}

	node := s.locate(tree, target, wantType)
	if node == nil {
		return source, false, ErrTargetNotFound
	}

	if existing := docstringNode(node); existing != nil {
		if stringLiteralText(existing.Content(source)) != "" && !overwrite {
			return source, false, nil
		}
		return replaceDocstring(source, existing, target.Docstring), true, nil
	}

	updated, ok := insertDocstring(source, node, target.Docstring)
	return updated, ok, nil
}

// locate resolves the target node, preferring the structural path captured
// at extraction time. A path hit must still carry the expected kind and
// name: our own earlier splices shift child indices inside edited bodies,
// in which case the name-based fallback takes over.
func (s *Splicer) locate(tree *parser.Tree, target Target, wantType string) *sitter.Node {
	source := tree.Source()

	if len(target.Path) > 0 {
		if node := resolvePath(tree.RootNode(), target.Path); node != nil {
			if node.Type() == wantType && nodeName(node, source) == target.Name {
				return node
			}
		}
	}

	// First match in traversal order wins; same-named definitions beyond it
	// are not disambiguated.
	var found *sitter.Node
	parser.Walk(tree.RootNode(), func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == wantType && nodeName(n, source) == target.Name {
			found = n
			return false
		}
		return true
	})
	return found
}

// nodeName returns the definition's name identifier text, or "".
func nodeName(node *sitter.Node, source []byte) string {
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return nameNode.Content(source)
	}
	return ""
}

// replaceDocstring swaps the existing docstring literal's statement for a
// new literal, leaving every other byte alone.
func replaceDocstring(source []byte, str *sitter.Node, summary string) []byte {
	stmt := str
	if parent := str.Parent(); parent != nil && parent.Type() == "expression_statement" {
		stmt = parent
	}
	indent := lineIndent(source, int(stmt.StartByte()))
	literal := formatDocstring(summary, indent)
	return spliceBytes(source, int(stmt.StartByte()), int(stmt.EndByte()), literal)
}

// insertDocstring adds a docstring literal as the first statement of the
// definition body. Inline bodies ("def f(): pass") are expanded to an
// indented block first.
func insertDocstring(source []byte, def *sitter.Node, summary string) ([]byte, bool) {
	body := def.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return source, false
	}
	anchor := body.NamedChild(0)

	defRow := def.StartPoint().Row
	if body.StartPoint().Row == defRow {
		return expandInlineBody(source, def, body, summary), true
	}

	indent := lineIndent(source, int(anchor.StartByte()))
	literal := formatDocstring(summary, indent)
	insertion := literal + "\n" + indent
	at := int(anchor.StartByte())
	return spliceBytes(source, at, at, insertion), true
}

// expandInlineBody rewrites a single-line definition body onto its own
// indented lines with the docstring first.
func expandInlineBody(source []byte, def, body *sitter.Node, summary string) []byte {
	indent := lineIndent(source, int(def.StartByte())) + "    "

	bodyText := string(source[body.StartByte():body.EndByte()])
	literal := formatDocstring(summary, indent)

	replacement := "\n" + indent + literal + "\n" + indent + bodyText

	// The body follows the ":" token; rewrite everything from just after the
	// colon through the end of the inline body.
	start := colonEnd(def, int(body.StartByte()))
	return spliceBytes(source, start, int(body.EndByte()), replacement)
}

// colonEnd finds the byte offset just past the ":" introducing the body,
// falling back to the body start if the grammar hides the token.
func colonEnd(def *sitter.Node, bodyStart int) int {
	for i := 0; i < int(def.ChildCount()); i++ {
		child := def.Child(i)
		if child != nil && child.Type() == ":" && int(child.EndByte()) <= bodyStart {
			return int(child.EndByte())
		}
	}
	return bodyStart
}

// formatDocstring renders a summary as a triple-quoted literal. Continuation
// lines and the closing quotes carry the statement's exact leading
// whitespace. Embedded quote runs are escaped, and a trailing quote gets a
// separating space so it cannot run into the closing delimiter.
func formatDocstring(summary string, indent string) string {
	text := strings.TrimSpace(summary)
	text = strings.ReplaceAll(text, `"""`, `\"\"\"`)

	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		if strings.HasSuffix(text, `"`) {
			text += " "
		}
		return `"""` + text + `"""`
	}

	var b strings.Builder
	b.WriteString(`"""`)
	b.WriteString(strings.TrimRight(lines[0], " \t"))
	for _, line := range lines[1:] {
		b.WriteString("\n")
		trimmed := strings.TrimRight(line, " \t")
		if trimmed != "" {
			b.WriteString(indent)
			b.WriteString(trimmed)
		}
	}
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(`"""`)
	return b.String()
}

// lineIndent returns the leading whitespace of the line containing offset,
// byte for byte, so tab-indented files keep their tabs.
func lineIndent(source []byte, offset int) string {
	start := offset
	for start > 0 && source[start-1] != '\n' {
		start--
	}
	end := start
	for end < offset && (source[end] == ' ' || source[end] == '\t') {
		end++
	}
	return string(source[start:end])
}

// spliceBytes replaces source[start:end] with text, returning a new slice.
func spliceBytes(source []byte, start, end int, text string) []byte {
	var buf bytes.Buffer
	buf.Grow(len(source) - (end - start) + len(text))
	buf.Write(source[:start])
	buf.WriteString(text)
	buf.Write(source[end:])
	return buf.Bytes()
}

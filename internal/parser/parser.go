// Package parser provides tree-sitter-based parsing of Python source files.
// Unlike tree-sitter's usual error-tolerant mode, Parse rejects source that
// contains syntax errors, because downstream splicing must never operate on a
// partially recovered tree.
package parser

import (
	"context"
	"fmt"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// langInfo holds tree-sitter language metadata for a supported grammar.
type langInfo struct {
	lang     *sitter.Language
	name     string
	funcNode string
	typeNode string
}

// registry maps file extensions to language info. Only Python is registered;
// the splice semantics are tied to its docstring convention.
var registry = map[string]langInfo{
	".py": {
		lang:     python.GetLanguage(),
		name:     "python",
		funcNode: "function_definition",
		typeNode: "class_definition",
	},
}

// ParseError reports a syntax error in the source text. It aborts processing
// of the whole file.
type ParseError struct {
	Filename string
	Line     int // 1-indexed line of the first error node
	Column   int // 0-indexed column of the first error node
}

func (e *ParseError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("syntax error at line %d, column %d", e.Line, e.Column)
	}
	return fmt.Sprintf("%s: syntax error at line %d, column %d", e.Filename, e.Line, e.Column)
}

// Parser wraps a tree-sitter parser with language detection by file extension.
type Parser struct {
	inner *sitter.Parser
}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{
		inner: sitter.NewParser(),
	}
}

// Parse parses source code, detecting the language from the filename
// extension. It returns a *ParseError if the source is not syntactically
// valid, and an error for unsupported extensions.
func (p *Parser) Parse(filename string, source []byte) (*Tree, error) {
	ext := filepath.Ext(filename)
	info, ok := registry[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file extension %q: language not in registry", ext)
	}

	p.inner.SetLanguage(info.lang)
	sitterTree, err := p.inner.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	root := sitterTree.RootNode()
	if root.HasError() {
		perr := &ParseError{Filename: filename, Line: 1}
		if bad := firstErrorNode(root); bad != nil {
			perr.Line = int(bad.StartPoint().Row) + 1
			perr.Column = int(bad.StartPoint().Column)
		}
		return nil, perr
	}

	return &Tree{
		tree:   sitterTree,
		source: source,
		info:   info,
	}, nil
}

// Tree wraps a parsed syntax tree together with the source it was parsed from.
type Tree struct {
	tree   *sitter.Tree
	source []byte
	info   langInfo
}

// RootNode returns the root node of the parsed syntax tree.
func (t *Tree) RootNode() *sitter.Node {
	return t.tree.RootNode()
}

// Source returns the source text the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// FuncNodeType returns the grammar's node kind for function definitions.
func (t *Tree) FuncNodeType() string {
	return t.info.funcNode
}

// TypeNodeType returns the grammar's node kind for type (class) definitions.
func (t *Tree) TypeNodeType() string {
	return t.info.typeNode
}

// Walk performs a depth-first traversal of the syntax tree, calling fn for
// each node. If fn returns false the node's children are not visited.
func Walk(node *sitter.Node, fn func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil {
			Walk(child, fn)
		}
	}
}

// firstErrorNode locates the first ERROR or missing node in traversal order.
func firstErrorNode(root *sitter.Node) *sitter.Node {
	var found *sitter.Node
	Walk(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return false
		}
		// Error nodes are only reachable through subtrees that carry them.
		return n.HasError()
	})
	return found
}

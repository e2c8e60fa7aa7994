package docgen

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/julianshen/aidocgen/internal/parser"
)

// Extractor produces structural records for every function and class
// definition in a source file. It is a pure function of the input text; the
// records never alias the parse tree.
type Extractor struct {
	parser *parser.Parser
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{parser: parser.NewParser()}
}

// Extract parses the source text and walks the tree once, recording every
// function-like definition at any nesting depth (methods included) and every
// class definition with its direct methods. The traversal order is
// depth-first and stable for a given source text. A *parser.ParseError is
// returned when the source is not valid Python; there is no partial
// extraction.
func (e *Extractor) Extract(filename string, source []byte) ([]Function, []Class, error) {
	tree, err := e.parser.Parse(filename, source)
	if err != nil {
		return nil, nil, err
	}

	var functions []Function
	var classes []Class

	parser.Walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case tree.FuncNodeType():
			functions = append(functions, extractFunction(node, source))
		case tree.TypeNodeType():
			classes = append(classes, extractClass(node, source))
		}
		return true
	})

	return functions, classes, nil
}

// extractFunction builds a Function record from a function_definition node.
func extractFunction(node *sitter.Node, source []byte) Function {
	fn := Function{
		Code: outermostNode(node).Content(source),
		Path: nodePath(node),
	}

	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		fn.Name = nameNode.Content(source)
	}
	fn.Params = extractParams(node.ChildByFieldName("parameters"), source)
	if retNode := node.ChildByFieldName("return_type"); retNode != nil {
		fn.Returns = retNode.Content(source)
	}
	if str := docstringNode(node); str != nil {
		fn.Docstring = stringLiteralText(str.Content(source))
	}

	return fn
}

// extractClass builds a Class record from a class_definition node. The
// method list is populated only from the direct class body, one nesting
// level down.
func extractClass(node *sitter.Node, source []byte) Class {
	cls := Class{
		Code: outermostNode(node).Content(source),
		Path: nodePath(node),
	}

	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		cls.Name = nameNode.Content(source)
	}
	if str := docstringNode(node); str != nil {
		cls.Docstring = stringLiteralText(str.Content(source))
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			child := body.Child(i)
			if child == nil {
				continue
			}
			def := definitionNode(child)
			if def.Type() == "function_definition" {
				cls.Methods = append(cls.Methods, extractFunction(def, source))
			}
		}
	}

	return cls
}

// extractParams captures positional parameter names. Default values,
// annotations, and variadic or keyword-only markers are dropped; only the
// names survive.
func extractParams(params *sitter.Node, source []byte) []string {
	if params == nil {
		return nil
	}

	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p == nil {
			continue
		}
		switch p.Type() {
		case "identifier":
			names = append(names, p.Content(source))
		case "typed_parameter":
			// typed_parameter has no name field; the identifier is its
			// first named child.
			if id := p.NamedChild(0); id != nil && id.Type() == "identifier" {
				names = append(names, id.Content(source))
			}
		case "default_parameter", "typed_default_parameter":
			if nameNode := p.ChildByFieldName("name"); nameNode != nil && nameNode.Type() == "identifier" {
				names = append(names, nameNode.Content(source))
			}
		}
	}
	return names
}

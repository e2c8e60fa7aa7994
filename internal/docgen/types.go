// Package docgen implements the docstring generation pipeline: structural
// extraction of function and class definitions from Python source, summary
// synthesis through an LLM backend, and format-preserving splicing of the
// generated docstrings back into the source text.
package docgen

import "context"

// Kind identifies what sort of definition a code fragment is.
type Kind string

const (
	KindFunction Kind = "function"
	KindClass    Kind = "class"
)

// Function is a structural snapshot of a single function or method
// definition. Records are created by Extract, have their Docstring and
// DocstringGenerated fields set once by the synthesis step, and are
// discarded when the file's pipeline run finishes.
type Function struct {
	Name    string
	Params  []string // positional parameter names only
	Returns string   // serialized return annotation, "" if absent
	Code    string   // exact source text of the definition, decorators included

	// Path is the sequence of child indices from the module root to the
	// definition node, captured at extraction time. The splicer re-resolves
	// the node by this path and falls back to name lookup only when the
	// tree shape has changed.
	Path []int

	Docstring          string // existing docstring at extraction, then the generated one
	DocstringGenerated bool
	CodeUpdated        bool
}

// Class is a structural snapshot of a class definition. Methods holds the
// functions declared directly in the class body; they derive from the same
// parse pass as the class itself.
type Class struct {
	Name    string
	Methods []Function
	Code    string
	Path    []int

	Docstring          string
	DocstringGenerated bool
	CodeUpdated        bool
}

// LLMCompleter abstracts LLM completion for testability.
type LLMCompleter interface {
	Complete(ctx context.Context, req CompletionSpec) (string, error)
}

// CompletionSpec carries the backend parameters for one synthesis request.
type CompletionSpec struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
	Stop        []string
}

// Cache is an optional lookaside store for synthesized summaries, keyed by a
// content hash of the code fragment. A nil Cache disables caching.
type Cache interface {
	Get(kind Kind, fragment string) (string, bool, error)
	Put(kind Kind, name, fragment, summary string) error
}

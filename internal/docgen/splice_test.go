package docgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpliceInsertsDocstring(t *testing.T) {
	source := []byte("def add(a, b):\n    return a + b\n")

	out, changed, err := NewSplicer().Splice("add.py", source, Target{
		Name:      "add",
		Kind:      KindFunction,
		Docstring: "Add two numbers.",
	}, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "def add(a, b):\n    \"\"\"Add two numbers.\"\"\"\n    return a + b\n", string(out))
}

func TestSpliceSkipsExistingDocstring(t *testing.T) {
	source := []byte("def add(a, b):\n    \"\"\"Old summary.\"\"\"\n    return a + b\n")

	out, changed, err := NewSplicer().Splice("add.py", source, Target{
		Name:      "add",
		Kind:      KindFunction,
		Docstring: "New summary.",
	}, false)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, source, out)
}

func TestSpliceOverwriteReplacesDocstring(t *testing.T) {
	source := []byte("def add(a, b):\n    \"\"\"Old summary.\"\"\"\n    return a + b\n")

	out, changed, err := NewSplicer().Splice("add.py", source, Target{
		Name:      "add",
		Kind:      KindFunction,
		Docstring: "New summary.",
	}, true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "def add(a, b):\n    \"\"\"New summary.\"\"\"\n    return a + b\n", string(out))
	assert.NotContains(t, string(out), "Old summary.")
}

func TestSpliceExpandsInlineBody(t *testing.T) {
	source := []byte("def noop(): pass\n")

	out, changed, err := NewSplicer().Splice("noop.py", source, Target{
		Name:      "noop",
		Kind:      KindFunction,
		Docstring: "Does nothing.",
	}, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "def noop():\n    \"\"\"Does nothing.\"\"\"\n    pass\n", string(out))
}

func TestSpliceClassDocstring(t *testing.T) {
	source := []byte("class Greeter:\n    def greet(self):\n        return \"hi\"\n")

	out, changed, err := NewSplicer().Splice("greeter.py", source, Target{
		Name:      "Greeter",
		Kind:      KindClass,
		Docstring: "Greets people.",
	}, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "class Greeter:\n    \"\"\"Greets people.\"\"\"\n    def greet(self):\n        return \"hi\"\n", string(out))
}

func TestSpliceMultilineDocstringAlignment(t *testing.T) {
	source := []byte("def add(a, b):\n    return a + b\n")

	out, changed, err := NewSplicer().Splice("add.py", source, Target{
		Name:      "add",
		Kind:      KindFunction,
		Docstring: "Add two numbers.\n\nArgs:\n    a: first operand.\n    b: second operand.\n\nReturns:\n    The sum.",
	}, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, string(out), "    \"\"\"Add two numbers.\n")
	assert.Contains(t, string(out), "    Args:\n")
	// Closing quotes land on their own line at statement indent.
	assert.Contains(t, string(out), "\n    \"\"\"\n    return a + b\n")
}

func TestSplicePreservesUnrelatedText(t *testing.T) {
	source := []byte("import os   # odd   spacing\n\n\ndef add(a, b):\n    return a + b\n\n\nX = {  'a' :1 }\n")

	out, changed, err := NewSplicer().Splice("mod.py", source, Target{
		Name:      "add",
		Kind:      KindFunction,
		Docstring: "Add two numbers.",
	}, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, string(out), "import os   # odd   spacing\n")
	assert.Contains(t, string(out), "X = {  'a' :1 }\n")
}

func TestSpliceNameCollisionFirstMatchWins(t *testing.T) {
	source := []byte("def f():\n    return 1\n\n\ndef f():\n    return 2\n")

	out, changed, err := NewSplicer().Splice("dup.py", source, Target{
		Name:      "f",
		Kind:      KindFunction,
		Docstring: "First definition.",
	}, false)
	require.NoError(t, err)
	assert.True(t, changed)

	text := string(out)
	assert.Equal(t, 1, strings.Count(text, "First definition."))
	assert.Less(t, strings.Index(text, "First definition."), strings.Index(text, "return 1"))
}

func TestSplicePathDisambiguatesCollision(t *testing.T) {
	source := []byte("def f():\n    return 1\n\n\ndef f():\n    return 2\n")

	functions, _, err := NewExtractor().Extract("dup.py", source)
	require.NoError(t, err)
	require.Len(t, functions, 2)

	out, changed, err := NewSplicer().Splice("dup.py", source, Target{
		Name:      "f",
		Kind:      KindFunction,
		Path:      functions[1].Path,
		Docstring: "Second definition.",
	}, false)
	require.NoError(t, err)
	assert.True(t, changed)

	text := string(out)
	assert.Greater(t, strings.Index(text, "Second definition."), strings.Index(text, "return 1"))
	assert.Less(t, strings.Index(text, "Second definition."), strings.Index(text, "return 2"))
}

func TestSpliceUnknownTargetReportsNotFound(t *testing.T) {
	source := []byte("def add(a, b):\n    return a + b\n")

	out, changed, err := NewSplicer().Splice("add.py", source, Target{
		Name:      "missing",
		Kind:      KindFunction,
		Docstring: "Never used.",
	}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTargetNotFound)
	assert.False(t, changed)
	assert.Equal(t, source, out)
}

func TestSpliceEscapesTripleQuotes(t *testing.T) {
	source := []byte("def add(a, b):\n    return a + b\n")

	out, changed, err := NewSplicer().Splice("add.py", source, Target{
		Name:      "add",
		Kind:      KindFunction,
		Docstring: `Sums values, see """ notes.`,
	}, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, string(out), `\"\"\"`)

	// The emitted literal must still tokenize.
	_, _, err = NewExtractor().Extract("add.py", out)
	require.NoError(t, err)
}

func TestSpliceTrailingQuoteStillParses(t *testing.T) {
	source := []byte("def get(key):\n    return data[key]\n")

	out, changed, err := NewSplicer().Splice("get.py", source, Target{
		Name:      "get",
		Kind:      KindFunction,
		Docstring: `Returns the value for "key"`,
	}, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotContains(t, string(out), `""""`)

	functions, _, err := NewExtractor().Extract("get.py", out)
	require.NoError(t, err)
	require.Len(t, functions, 1)
	assert.Equal(t, `Returns the value for "key"`, functions[0].Docstring)
}

func TestSpliceKeepsTabIndentation(t *testing.T) {
	source := []byte("def get(key):\n\treturn data[key]\n")

	out, changed, err := NewSplicer().Splice("get.py", source, Target{
		Name:      "get",
		Kind:      KindFunction,
		Docstring: "Returns a value.",
	}, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "def get(key):\n\t\"\"\"Returns a value.\"\"\"\n\treturn data[key]\n", string(out))
}

func TestSpliceTabIndentedMultiline(t *testing.T) {
	source := []byte("def get(key):\n\treturn data[key]\n")

	out, changed, err := NewSplicer().Splice("get.py", source, Target{
		Name:      "get",
		Kind:      KindFunction,
		Docstring: "Returns a value.\n\nArgs:\n    key: lookup key.",
	}, false)
	require.NoError(t, err)
	assert.True(t, changed)

	text := string(out)
	// Continuation lines and the closing quotes reuse the tab, not spaces.
	assert.Contains(t, text, "\n\tArgs:\n")
	assert.Contains(t, text, "\n\t\"\"\"\n\treturn data[key]\n")
	assert.NotContains(t, text, "\n    ")
}

func TestSpliceOverwriteKeepsTabIndentation(t *testing.T) {
	source := []byte("def get(key):\n\t\"\"\"Old.\"\"\"\n\treturn data[key]\n")

	out, changed, err := NewSplicer().Splice("get.py", source, Target{
		Name:      "get",
		Kind:      KindFunction,
		Docstring: "New summary.",
	}, true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "def get(key):\n\t\"\"\"New summary.\"\"\"\n\treturn data[key]\n", string(out))
}

func TestSpliceInlineBodyKeepsTabIndentation(t *testing.T) {
	source := []byte("class Box:\n\tdef noop(self): pass\n")

	out, changed, err := NewSplicer().Splice("box.py", source, Target{
		Name:      "noop",
		Kind:      KindFunction,
		Docstring: "Does nothing.",
	}, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "class Box:\n\tdef noop(self):\n\t    \"\"\"Does nothing.\"\"\"\n\t    pass\n", string(out))
}

package docgen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/aidocgen/internal/parser"
)

func TestExtractFunction(t *testing.T) {
	source := []byte(`def add(a, b):
    return a + b
`)

	functions, classes, err := NewExtractor().Extract("add.py", source)
	require.NoError(t, err)
	require.Len(t, functions, 1)
	assert.Empty(t, classes)

	fn := functions[0]
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	assert.Empty(t, fn.Returns)
	assert.Empty(t, fn.Docstring)
	assert.Equal(t, "def add(a, b):\n    return a + b", fn.Code)
	assert.NotEmpty(t, fn.Path)
}

func TestExtractParamVariants(t *testing.T) {
	source := []byte(`def send(host: str, port=80, retries: int = 3) -> bool:
    return True
`)

	functions, _, err := NewExtractor().Extract("send.py", source)
	require.NoError(t, err)
	require.Len(t, functions, 1)

	fn := functions[0]
	assert.Equal(t, []string{"host", "port", "retries"}, fn.Params)
	assert.Equal(t, "bool", fn.Returns)
}

func TestExtractExistingDocstring(t *testing.T) {
	source := []byte(`def greet(name):
    """Say hello."""
    print(name)
`)

	functions, _, err := NewExtractor().Extract("greet.py", source)
	require.NoError(t, err)
	require.Len(t, functions, 1)
	assert.Equal(t, "Say hello.", functions[0].Docstring)
}

func TestExtractClassWithMethods(t *testing.T) {
	source := []byte(`class Greeter:
    def __init__(self, name):
        self.name = name

    def greet(self):
        return "hi " + self.name
`)

	functions, classes, err := NewExtractor().Extract("greeter.py", source)
	require.NoError(t, err)

	require.Len(t, classes, 1)
	cls := classes[0]
	assert.Equal(t, "Greeter", cls.Name)
	require.Len(t, cls.Methods, 2)
	assert.Equal(t, "__init__", cls.Methods[0].Name)
	assert.Equal(t, "greet", cls.Methods[1].Name)

	// Methods are also visible in the flat function list.
	names := make([]string, 0, len(functions))
	for _, fn := range functions {
		names = append(names, fn.Name)
	}
	assert.Equal(t, []string{"__init__", "greet"}, names)
}

func TestExtractNestedFunction(t *testing.T) {
	source := []byte(`def outer():
    def inner():
        pass
    return inner
`)

	functions, _, err := NewExtractor().Extract("nested.py", source)
	require.NoError(t, err)
	require.Len(t, functions, 2)
	assert.Equal(t, "outer", functions[0].Name)
	assert.Equal(t, "inner", functions[1].Name)
}

func TestExtractDecoratedFunctionCode(t *testing.T) {
	source := []byte(`@staticmethod
def helper(x):
    return x
`)

	functions, _, err := NewExtractor().Extract("helper.py", source)
	require.NoError(t, err)
	require.Len(t, functions, 1)
	assert.Contains(t, functions[0].Code, "@staticmethod")
}

func TestExtractSyntaxErrorNoPartialResults(t *testing.T) {
	source := []byte("def good():\n    pass\n\ndef bad(:\n    pass\n")

	functions, classes, err := NewExtractor().Extract("bad.py", source)
	require.Error(t, err)

	var perr *parser.ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Nil(t, functions)
	assert.Nil(t, classes)
}

package docgen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeFunctionRequest(t *testing.T) {
	llm := &fakeCompleter{reply: func(CompletionSpec) (string, error) {
		return "  Add two numbers.  \n", nil
	}}

	summary, err := NewSynthesizer(llm).Synthesize(context.Background(), "def add(a, b):\n    return a + b", KindFunction)
	require.NoError(t, err)
	assert.Equal(t, "Add two numbers.", summary)

	require.Len(t, llm.calls, 1)
	spec := llm.calls[0]
	assert.Equal(t, 250, spec.MaxTokens)
	assert.Zero(t, spec.Temperature)
	assert.Equal(t, []string{"#", `"""`}, spec.Stop)
	assert.Contains(t, spec.Prompt, "def add(a, b):")
	assert.Contains(t, spec.Prompt, "Google style")
	assert.Contains(t, spec.Prompt, "'Args' and 'Returns'")
	assert.Contains(t, spec.Prompt, "function")
}

func TestSynthesizeClassPrompt(t *testing.T) {
	llm := &fakeCompleter{reply: func(CompletionSpec) (string, error) {
		return "A greeter.", nil
	}}

	_, err := NewSynthesizer(llm).Synthesize(context.Background(), "class Greeter:\n    pass", KindClass)
	require.NoError(t, err)

	require.Len(t, llm.calls, 1)
	prompt := llm.calls[0].Prompt
	assert.Contains(t, prompt, "class Greeter:")
	assert.Contains(t, prompt, "only have a one liner about the class")
	assert.NotContains(t, prompt, "'Args' and 'Returns'")
}

func TestSynthesizeBackendError(t *testing.T) {
	backendErr := errors.New("rate limited")
	llm := &fakeCompleter{reply: func(CompletionSpec) (string, error) {
		return "", backendErr
	}}

	_, err := NewSynthesizer(llm).Synthesize(context.Background(), "def f():\n    pass", KindFunction)
	require.Error(t, err)
	assert.ErrorIs(t, err, backendErr)
	assert.Len(t, llm.calls, 1)
}

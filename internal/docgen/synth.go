package docgen

import (
	"context"
	"fmt"
	"strings"
	"text/template"
)

// Backend parameters for one synthesis request. Generation is deterministic
// (temperature 0) and bounded; the stop markers cut the completion off at a
// comment or a closing docstring delimiter.
const (
	synthMaxTokens = 250
)

var synthStop = []string{"#", `"""`}

// ---------- prompt templates ----------

var functionPromptTmpl = template.Must(template.New("function").Parse(
	`# Python 3.7

{{.Code}}

# write a concise, high-quality docstring for the above {{.Kind}} in Google style.  It must have one liner about the {{.Kind}}, 'Args' and 'Returns' (only if it's a function/method):
"""`))

var classPromptTmpl = template.Must(template.New("class").Parse(
	`# Python 3.7

{{.Code}}

# write a concise, high-quality docstring for the above {{.Kind}} in Google style.  It must only have a one liner about the {{.Kind}}:
"""`))

// ---------- synthesis ----------

// Synthesizer turns a code fragment into a natural-language summary by
// delegating to an LLM backend through a fixed prompt template. It never
// retries: at most one request is issued per definition per run.
type Synthesizer struct {
	llm LLMCompleter
}

// NewSynthesizer creates a Synthesizer backed by the given completer.
func NewSynthesizer(llm LLMCompleter) *Synthesizer {
	return &Synthesizer{llm: llm}
}

// Synthesize requests a docstring for the code fragment. Backend failures
// are returned as errors; the caller decides how to degrade (the pipeline
// skips the affected definition and continues).
func (s *Synthesizer) Synthesize(ctx context.Context, code string, kind Kind) (string, error) {
	prompt, err := buildPrompt(code, kind)
	if err != nil {
		return "", err
	}

	summary, err := s.llm.Complete(ctx, CompletionSpec{
		Prompt:      prompt,
		MaxTokens:   synthMaxTokens,
		Temperature: 0,
		Stop:        synthStop,
	})
	if err != nil {
		return "", fmt.Errorf("synthesize %s docstring: %w", kind, err)
	}

	return strings.TrimSpace(summary), nil
}

// buildPrompt renders the prompt template for the definition kind.
func buildPrompt(code string, kind Kind) (string, error) {
	tmpl := functionPromptTmpl
	if kind == KindClass {
		tmpl = classPromptTmpl
	}

	var b strings.Builder
	data := struct {
		Code string
		Kind Kind
	}{Code: code, Kind: kind}
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", kind, err)
	}
	return b.String(), nil
}

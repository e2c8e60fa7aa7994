package docgen

import (
	"bytes"
	"context"
	"errors"
	"log"
)

// constructorName is the conventional constructor, excluded from synthesis.
// Fixed policy, not configurable.
const constructorName = "__init__"

// Summary reports the per-file outcome: partial success is the expected,
// non-error result.
type Summary struct {
	Documented int // definitions whose docstring was spliced in
	Skipped    int // definitions left alone (existing docstring, no overwrite)
	Failed     int // definitions whose synthesis failed or came back empty
}

// Pipeline sequences extraction, synthesis, and splicing across all
// definitions of one file. It is strictly sequential: each splice mutates
// the running source text that the next lookup depends on.
type Pipeline struct {
	extractor *Extractor
	synth     *Synthesizer
	splicer   *Splicer
	cache     Cache
}

// NewPipeline creates a Pipeline backed by the given completer. cache may be
// nil to disable summary caching.
func NewPipeline(llm LLMCompleter, cache Cache) *Pipeline {
	return &Pipeline{
		extractor: NewExtractor(),
		synth:     NewSynthesizer(llm),
		splicer:   NewSplicer(),
		cache:     cache,
	}
}

// Run extracts all records from the original text once, then for each
// record synthesizes a summary and splices it into the current running
// source, threading mutations forward. Constructors are never sent for
// synthesis. A synthesis failure skips only the affected definition.
//
// Returns the final source text, whether it differs from the input, and the
// per-file outcome counts. The only error is a ParseError from extraction,
// which is fatal for the whole file.
func (p *Pipeline) Run(ctx context.Context, filename string, source []byte, overwrite bool) ([]byte, bool, Summary, error) {
	functions, classes, err := p.extractor.Extract(filename, source)
	if err != nil {
		return source, false, Summary{}, err
	}

	current := source
	var sum Summary

	for i := range functions {
		fn := &functions[i]
		if fn.Name == constructorName {
			continue
		}

		summary, err := p.summarize(ctx, fn.Name, fn.Code, KindFunction)
		if err != nil {
			log.Printf("unable to generate docstring for %s: %v", fn.Name, err)
			sum.Failed++
			continue
		}
		fn.Docstring = summary
		fn.DocstringGenerated = true
		if summary == "" {
			sum.Failed++
			continue
		}

		current = p.spliceRecord(filename, current, Target{
			Name:      fn.Name,
			Kind:      KindFunction,
			Path:      fn.Path,
			Docstring: summary,
		}, overwrite, &fn.CodeUpdated, &sum)
	}

	for i := range classes {
		cls := &classes[i]

		summary, err := p.summarize(ctx, cls.Name, cls.Code, KindClass)
		if err != nil {
			log.Printf("unable to generate docstring for %s: %v", cls.Name, err)
			sum.Failed++
			continue
		}
		cls.Docstring = summary
		cls.DocstringGenerated = true
		if summary == "" {
			sum.Failed++
			continue
		}

		current = p.spliceRecord(filename, current, Target{
			Name:      cls.Name,
			Kind:      KindClass,
			Path:      cls.Path,
			Docstring: summary,
		}, overwrite, &cls.CodeUpdated, &sum)
	}

	return current, !bytes.Equal(current, source), sum, nil
}

// spliceRecord applies one splice and updates the outcome counters. A
// lookup miss counts as a failure, not a skip: the summary was generated
// but never applied.
func (p *Pipeline) spliceRecord(filename string, source []byte, target Target, overwrite bool, updated *bool, sum *Summary) []byte {
	next, spliced, err := p.splicer.Splice(filename, source, target, overwrite)
	if err != nil {
		if errors.Is(err, ErrTargetNotFound) {
			log.Printf("no definition named %s found. Skipping...", target.Name)
		} else {
			log.Printf("unable to splice docstring for %s: %v", target.Name, err)
		}
		sum.Failed++
		return source
	}
	if !spliced {
		log.Printf("%s's docstring already exists. Skipping...", target.Name)
		sum.Skipped++
		return source
	}
	*updated = true
	sum.Documented++
	return next
}

// summarize consults the cache before delegating to the synthesizer, so
// unchanged definitions skip the network round trip on repeat runs.
func (p *Pipeline) summarize(ctx context.Context, name, code string, kind Kind) (string, error) {
	if p.cache != nil {
		if cached, ok, err := p.cache.Get(kind, code); err != nil {
			log.Printf("docstring cache read failed for %s: %v", name, err)
		} else if ok {
			return cached, nil
		}
	}

	summary, err := p.synth.Synthesize(ctx, code, kind)
	if err != nil {
		return "", err
	}

	if p.cache != nil && summary != "" {
		if err := p.cache.Put(kind, name, code, summary); err != nil {
			log.Printf("docstring cache write failed for %s: %v", name, err)
		}
	}
	return summary, nil
}

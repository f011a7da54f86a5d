// Package analysis is the core of the Structurizr-DSL analyser: a best-effort
// structural extractor, a block-context tracker, and a diagnostic engine made
// of independent checks over the same line snapshot.
package analysis

import (
	"context"
	"errors"

	"github.com/xerian-dev/xerian-structurizr/lsp"
)

// FileContext is the per-document snapshot handed to every diagnostic check:
// the raw body, its line split, and the extracted structure. Checks never
// mutate it.
type FileContext struct {
	Body     []byte
	Lines    []string
	Document ParsedDocument
}

type AnalysisEngine struct {
	fileContexts map[string]FileContext
	language     Language
}

func New(lang Language) *AnalysisEngine {
	return &AnalysisEngine{
		fileContexts: map[string]FileContext{},
		language:     lang,
	}
}

func (s *AnalysisEngine) Language() Language {
	return s.language
}

// SetFileContext re-parses content and replaces the stored snapshot for uri.
// The previous snapshot is discarded wholesale; there is no incremental
// update.
func (s *AnalysisEngine) SetFileContext(uri string, content []byte) error {
	text := string(content)
	s.fileContexts[uri] = FileContext{
		Body:     content,
		Lines:    SplitLines(text),
		Document: Parse(s.language, text),
	}
	return nil
}

func (s *AnalysisEngine) GetFileContext(uri string) (FileContext, error) {
	fctx, ok := s.fileContexts[uri]
	if !ok {
		return FileContext{}, errors.New("file context not found")
	}
	return fctx, nil
}

func (s *AnalysisEngine) DeleteFileContext(uri string) {
	delete(s.fileContexts, uri)
}

// Diagnostics runs every registered check over the stored snapshot for uri
// and returns the combined, ordered findings.
func (s *AnalysisEngine) Diagnostics(ctx context.Context, uri string) ([]lsp.Diagnostic, error) {
	fctx, err := s.GetFileContext(uri)
	if err != nil {
		return nil, err
	}

	var diags []lsp.Diagnostic
	for _, check := range DefaultDiagnostics {
		diags = append(diags, check.Analyze(ctx, uri, fctx, s)...)
	}
	return diags, nil
}

// ComputeDiagnostics is the pure-function form of the diagnostic engine: text
// in, positioned findings out, no state kept anywhere.
func ComputeDiagnostics(ctx context.Context, lang Language, text string) []lsp.Diagnostic {
	eng := New(lang)
	eng.SetFileContext("", []byte(text))

	diags, _ := eng.Diagnostics(ctx, "")
	return diags
}

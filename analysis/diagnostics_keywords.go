package analysis

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/xerian-dev/xerian-structurizr/lsp"
)

// DiagnosticsKeywords catches near-miss keyword spellings and identifiers
// that collide with reserved words. Unknown words with no close keyword are
// left alone — a bare identifier at the start of a line is not necessarily
// wrong, and guessing would drown real findings in noise.
type DiagnosticsKeywords struct{}

var leadingWord = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_-]*)`)

func (DiagnosticsKeywords) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *AnalysisEngine) (diags []lsp.Diagnostic) {
	lang := engine.Language()
	decls := declaredIdentifiers(lang, fctx.Lines)

	for i, raw := range fctx.Lines {
		line := trimCode(raw)
		if line == "" || strings.Contains(line, "->") {
			continue
		}

		candidate := ""
		if m := lang.assignment.FindStringSubmatch(line); m != nil {
			if lang.IsReserved(m[1]) {
				diags = append(diags, lsp.Diagnostic{
					Range:    tokenRange(fctx.Lines, i, m[1]),
					Severity: lsp.SeverityError,
					Source:   "keyword lint",
					Message:  fmt.Sprintf("%q is a reserved keyword and cannot be used as an identifier", m[1]),
				})
			}
			candidate = m[2]
		} else if m := leadingWord.FindStringSubmatch(line); m != nil {
			candidate = m[1]
		}

		if candidate == "" {
			continue
		}
		if _, known := lang.Lookup(candidate); known {
			continue
		}
		if _, declared := decls[candidate]; declared {
			continue
		}

		if suggestion, ok := lang.SuggestKeyword(candidate); ok {
			diags = append(diags, lsp.Diagnostic{
				Range:    tokenRange(fctx.Lines, i, candidate),
				Severity: lsp.SeverityError,
				Source:   "keyword lint",
				Message:  fmt.Sprintf("Unknown keyword %q. Did you mean %q?", candidate, suggestion),
			})
		}
	}

	return diags
}

package analysis

import (
	"context"
	"strings"

	"github.com/xerian-dev/xerian-structurizr/lsp"
)

// DiagnosticsStrings reports string literals left open at the end of a line.
// A trailing backslash on the trimmed line is the one permitted continuation.
// The scan mirrors the one in DiagnosticsBraces on purpose (see there).
type DiagnosticsStrings struct{}

func (DiagnosticsStrings) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *AnalysisEngine) (diags []lsp.Diagnostic) {
	inBlockComment := false

	for lineIdx, line := range fctx.Lines {
		inString := false
		openQuote := 0

		for i := 0; i < len(line); i++ {
			c := line[i]

			if inBlockComment {
				if c == '*' && i+1 < len(line) && line[i+1] == '/' {
					inBlockComment = false
					i++
				}
				continue
			}

			if inString {
				if c == '\\' {
					i++
				} else if c == '"' {
					inString = false
				}
				continue
			}

			switch c {
			case '/':
				if i+1 < len(line) {
					if line[i+1] == '/' {
						i = len(line)
					} else if line[i+1] == '*' {
						inBlockComment = true
						i++
					}
				}
			case '"':
				inString = true
				openQuote = i
			}
		}

		if inString && !strings.HasSuffix(strings.TrimSpace(line), `\`) {
			diags = append(diags, lsp.Diagnostic{
				Range:    lineRange(lineIdx, openQuote, len(line)),
				Severity: lsp.SeverityError,
				Source:   "string lint",
				Message:  "Unterminated string literal",
			})
		}
	}

	return diags
}

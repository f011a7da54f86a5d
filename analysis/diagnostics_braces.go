package analysis

import (
	"context"
	"fmt"

	"github.com/xerian-dev/xerian-structurizr/lsp"
)

// DiagnosticsBraces checks brace balance and block-comment termination. It
// owns its character scan; DiagnosticsStrings carries an equivalent one, and
// any change to the escaping rules must be mirrored there.
type DiagnosticsBraces struct{}

func (DiagnosticsBraces) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *AnalysisEngine) (diags []lsp.Diagnostic) {
	depth := 0
	inBlockComment := false

	for lineIdx, line := range fctx.Lines {
		inString := false

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
			case '{':
				depth++
			case '}':
				depth--
				if depth < 0 {
					diags = append(diags, lsp.Diagnostic{
						Range:    lineRange(lineIdx, i, i+1),
						Severity: lsp.SeverityError,
						Source:   "brace lint",
						Message:  "Unexpected closing brace",
					})
					// reset so one stray brace doesn't cascade into a
					// spurious unclosed-brace report at end of document
					depth = 0
				}
			}
		}
	}

	last := len(fctx.Lines) - 1
	if last < 0 {
		last = 0
	}

	if depth > 0 {
		plural := ""
		if depth > 1 {
			plural = "s"
		}
		diags = append(diags, lsp.Diagnostic{
			Range:    fullLineRange(fctx.Lines, last),
			Severity: lsp.SeverityError,
			Source:   "brace lint",
			Message:  fmt.Sprintf("Document has %d unclosed brace%s", depth, plural),
		})
	}

	if inBlockComment {
		diags = append(diags, lsp.Diagnostic{
			Range:    fullLineRange(fctx.Lines, last),
			Severity: lsp.SeverityError,
			Source:   "brace lint",
			Message:  "Unterminated block comment",
		})
	}

	return diags
}

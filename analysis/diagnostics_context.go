package analysis

import (
	"context"
	"fmt"
	"regexp"

	"github.com/xerian-dev/xerian-structurizr/lsp"
)

// DiagnosticsContext flags constructs that are valid in isolation but wrong
// for their enclosing block: relationships directly inside views or styles,
// style rules outside styles, include/exclude outside a view body.
type DiagnosticsContext struct{}

var includeDirective = regexp.MustCompile(`(?i)^(include|exclude)\b`)

func (DiagnosticsContext) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *AnalysisEngine) (diags []lsp.Diagnostic) {
	lang := engine.Language()
	var stack []BlockContext

	for i, raw := range fctx.Lines {
		line := trimCode(raw)

		if line != "" {
			top := ContextRoot
			if len(stack) > 0 {
				top = stack[len(stack)-1]
			}

			if _, isElement := lang.MatchElement(line); !isElement {
				if _, ok := lang.MatchRelationship(line); ok && (top == ContextViews || top == ContextStyles) {
					diags = append(diags, lsp.Diagnostic{
						Range:    fullLineRange(fctx.Lines, i),
						Severity: lsp.SeverityError,
						Source:   "context lint",
						Message:  fmt.Sprintf("Relationships cannot be declared inside the %s block", top),
					})
				}
			}

			if lang.styleRule.MatchString(line) && top != ContextStyles {
				diags = append(diags, lsp.Diagnostic{
					Range:    fullLineRange(fctx.Lines, i),
					Severity: lsp.SeverityError,
					Source:   "context lint",
					Message:  "Style rules are only allowed inside the styles block",
				})
			}

			if m := includeDirective.FindStringSubmatch(line); m != nil && top != ContextView {
				diags = append(diags, lsp.Diagnostic{
					Range:    fullLineRange(fctx.Lines, i),
					Severity: lsp.SeverityError,
					Source:   "context lint",
					Message:  fmt.Sprintf("%q is only allowed inside a view body", m[1]),
				})
			}
		}

		stack = pushContext(lang, stack, raw)
	}

	return diags
}

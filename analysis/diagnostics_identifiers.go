package analysis

import (
	"context"
	"fmt"

	"github.com/xerian-dev/xerian-structurizr/lsp"
)

// DiagnosticsIdentifiers warns when the same identifier is bound to an
// element twice. The later binding is flagged; the message points back at the
// first declaration so the reader doesn't have to hunt for it.
type DiagnosticsIdentifiers struct{}

func (DiagnosticsIdentifiers) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *AnalysisEngine) (diags []lsp.Diagnostic) {
	lang := engine.Language()
	firstSeen := map[string]int{}

	for i, raw := range fctx.Lines {
		line := trimCode(raw)
		if line == "" {
			continue
		}

		m := lang.identifierDecl.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		id := m[1]
		if first, ok := firstSeen[id]; ok {
			diags = append(diags, lsp.Diagnostic{
				Range:    tokenRange(fctx.Lines, i, id),
				Severity: lsp.SeverityWarning,
				Source:   "identifier lint",
				Message:  fmt.Sprintf("Identifier %q is already declared at line %d", id, first+1),
			})
			continue
		}
		firstSeen[id] = i
	}

	return diags
}

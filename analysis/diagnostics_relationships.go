package analysis

import (
	"context"
	"fmt"

	"github.com/xerian-dev/xerian-structurizr/lsp"
)

// DiagnosticsRelationships resolves relationship endpoints against the
// engine's identifier map. Forward references are fine — the map covers the
// whole document before any line is judged.
type DiagnosticsRelationships struct{}

func (DiagnosticsRelationships) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *AnalysisEngine) (diags []lsp.Diagnostic) {
	lang := engine.Language()
	decls := declaredIdentifiers(lang, fctx.Lines)

	for i, raw := range fctx.Lines {
		line := trimCode(raw)
		if line == "" {
			continue
		}
		if _, ok := lang.MatchElement(line); ok {
			continue
		}

		rel, ok := lang.MatchRelationship(line)
		if !ok {
			continue
		}

		if rel.Source == rel.Target {
			diags = append(diags, lsp.Diagnostic{
				Range:    fullLineRange(fctx.Lines, i),
				Severity: lsp.SeverityWarning,
				Source:   "relationship lint",
				Message:  fmt.Sprintf("Relationship is self-referencing: %q points at itself", rel.Source),
			})
			continue
		}

		if _, ok := decls[rel.Source]; !ok {
			diags = append(diags, lsp.Diagnostic{
				Range:    tokenRange(fctx.Lines, i, rel.Source),
				Severity: lsp.SeverityError,
				Source:   "relationship lint",
				Message:  fmt.Sprintf("Undefined identifier %q in relationship", rel.Source),
			})
		}
		if _, ok := decls[rel.Target]; !ok {
			diags = append(diags, lsp.Diagnostic{
				Range:    tokenRange(fctx.Lines, i, rel.Target),
				Severity: lsp.SeverityError,
				Source:   "relationship lint",
				Message:  fmt.Sprintf("Undefined identifier %q in relationship", rel.Target),
			})
		}
	}

	return diags
}

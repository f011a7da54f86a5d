package analysis

import (
	"context"
	"fmt"

	"github.com/xerian-dev/xerian-structurizr/lsp"
)

// DiagnosticsViewScopes checks view scope identifiers: present where the view
// type demands one, declared somewhere, and declared with the element type
// the view type expects. The scope rules come from the language catalog.
type DiagnosticsViewScopes struct{}

func (DiagnosticsViewScopes) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *AnalysisEngine) (diags []lsp.Diagnostic) {
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

		view, ok := lang.MatchView(line)
		if !ok {
			continue
		}
		kw, ok := lang.LookupKind(view.Type, KeywordView)
		if !ok {
			continue
		}

		if view.Scope == "" {
			if kw.RequiresScope {
				diags = append(diags, lsp.Diagnostic{
					Range:    fullLineRange(fctx.Lines, i),
					Severity: lsp.SeverityError,
					Source:   "view lint",
					Message:  fmt.Sprintf("A %s view requires a scope identifier", view.Type),
				})
			}
			continue
		}

		decl, ok := decls[view.Scope]
		if !ok {
			diags = append(diags, lsp.Diagnostic{
				Range:    tokenRange(fctx.Lines, i, view.Scope),
				Severity: lsp.SeverityError,
				Source:   "view lint",
				Message:  fmt.Sprintf("Undefined identifier %q used as view scope", view.Scope),
			})
			continue
		}

		if kw.ScopeType != "" && decl.typ != kw.ScopeType {
			diags = append(diags, lsp.Diagnostic{
				Range:    tokenRange(fctx.Lines, i, view.Scope),
				Severity: lsp.SeverityError,
				Source:   "view lint",
				Message: fmt.Sprintf("A %s view requires a %s scope, but %q is declared as %s",
					view.Type, kw.ScopeType, view.Scope, decl.typ),
			})
		}
	}

	return diags
}

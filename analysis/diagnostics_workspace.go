package analysis

import (
	"context"
	"regexp"

	"github.com/xerian-dev/xerian-structurizr/lsp"
)

// DiagnosticsWorkspace validates the coarse document skeleton: exactly one
// workspace, exactly one model, and a views block.
type DiagnosticsWorkspace struct{}

var (
	workspaceLine = regexp.MustCompile(`(?i)^workspace\b`)
	modelLine     = regexp.MustCompile(`(?i)^model\b`)
	viewsLine     = regexp.MustCompile(`(?i)^views\b`)
)

func (DiagnosticsWorkspace) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *AnalysisEngine) (diags []lsp.Diagnostic) {
	var workspaces, models, views []int

	for i, raw := range fctx.Lines {
		line := trimCode(raw)
		if line == "" {
			continue
		}
		switch {
		case workspaceLine.MatchString(line):
			workspaces = append(workspaces, i)
		case modelLine.MatchString(line):
			models = append(models, i)
		case viewsLine.MatchString(line):
			views = append(views, i)
		}
	}

	if len(workspaces) == 0 {
		diags = append(diags, lsp.Diagnostic{
			Range:    fullLineRange(fctx.Lines, 0),
			Severity: lsp.SeverityError,
			Source:   "structure lint",
			Message:  "Missing workspace declaration",
		})
	}
	for _, line := range duplicates(workspaces) {
		diags = append(diags, lsp.Diagnostic{
			Range:    fullLineRange(fctx.Lines, line),
			Severity: lsp.SeverityError,
			Source:   "structure lint",
			Message:  "Duplicate workspace declaration",
		})
	}

	if len(models) == 0 {
		diags = append(diags, lsp.Diagnostic{
			Range:    fullLineRange(fctx.Lines, firstOr(workspaces, 0)),
			Severity: lsp.SeverityError,
			Source:   "structure lint",
			Message:  "Missing model block",
		})
	}
	for _, line := range duplicates(models) {
		diags = append(diags, lsp.Diagnostic{
			Range:    fullLineRange(fctx.Lines, line),
			Severity: lsp.SeverityError,
			Source:   "structure lint",
			Message:  "Duplicate model block",
		})
	}

	if len(views) == 0 {
		diags = append(diags, lsp.Diagnostic{
			Range:    fullLineRange(fctx.Lines, firstOr(workspaces, 0)),
			Severity: lsp.SeverityWarning,
			Source:   "structure lint",
			Message:  "Missing views block",
		})
	}

	return diags
}

func duplicates(lines []int) []int {
	if len(lines) < 2 {
		return nil
	}
	return lines[1:]
}

func firstOr(lines []int, fallback int) int {
	if len(lines) == 0 {
		return fallback
	}
	return lines[0]
}

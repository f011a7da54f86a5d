package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/xerian-dev/xerian-structurizr/lsp"
)

// maxNestingDepth is how deep blocks may nest before we warn. Legitimate
// documents top out around workspace/model/system/container/component.
const maxNestingDepth = 6

var autoLayoutDirections = map[string]bool{"tb": true, "bt": true, "lr": true, "rl": true}

// DiagnosticsSyntax is the grab bag of shallow syntactic checks: excessive
// nesting, relationships with no target, bad autoLayout directions, and view
// keys used twice.
type DiagnosticsSyntax struct{}

func (DiagnosticsSyntax) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *AnalysisEngine) (diags []lsp.Diagnostic) {
	lang := engine.Language()

	depth := 0
	depthWarned := false
	viewKeys := map[string]int{}

	for i, raw := range fctx.Lines {
		line := trimCode(raw)
		if line == "" {
			continue
		}

		opens, closes := countCodeBraces(line)
		depth += opens
		if depth > maxNestingDepth && !depthWarned {
			diags = append(diags, lsp.Diagnostic{
				Range:    fullLineRange(fctx.Lines, i),
				Severity: lsp.SeverityWarning,
				Source:   "syntax lint",
				Message:  fmt.Sprintf("Nesting depth exceeds %d levels", maxNestingDepth),
			})
			depthWarned = true
		}
		depth -= closes
		if depth < 0 {
			depth = 0
		}

		if strings.HasSuffix(strings.TrimSpace(stripLineComment(line)), "->") {
			diags = append(diags, lsp.Diagnostic{
				Range:    fullLineRange(fctx.Lines, i),
				Severity: lsp.SeverityError,
				Source:   "syntax lint",
				Message:  "Incomplete relationship: missing target identifier",
			})
		}

		if m := lang.autoLayout.FindStringSubmatch(line); m != nil && m[1] != "" {
			if !autoLayoutDirections[strings.ToLower(m[1])] {
				diags = append(diags, lsp.Diagnostic{
					Range:    tokenRange(fctx.Lines, i, m[1]),
					Severity: lsp.SeverityError,
					Source:   "syntax lint",
					Message:  fmt.Sprintf("Invalid autoLayout direction %q (expected one of tb, bt, lr, rl)", m[1]),
				})
			}
		}

		if _, isElement := lang.MatchElement(line); !isElement {
			if view, ok := lang.MatchView(line); ok && view.Key != "" {
				if first, seen := viewKeys[view.Key]; seen {
					diags = append(diags, lsp.Diagnostic{
						Range:    tokenRange(fctx.Lines, i, view.Key),
						Severity: lsp.SeverityWarning,
						Source:   "syntax lint",
						Message:  fmt.Sprintf("Duplicate view key %q (first used at line %d)", view.Key, first+1),
					})
				} else {
					viewKeys[view.Key] = i
				}
			}
		}
	}

	return diags
}

// stripLineComment drops a trailing // comment, ignoring markers inside
// string literals.
func stripLineComment(line string) string {
	inString := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inString {
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
		} else if c == '/' && i+1 < len(line) && line[i+1] == '/' {
			return line[:i]
		}
	}
	return line
}

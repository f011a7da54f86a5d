package analysis

import (
	"context"
	"strings"

	"github.com/xerian-dev/xerian-structurizr/lsp"
)

// Diagnostics is one validation pass over a document snapshot. Checks are
// pure functions of the snapshot: they share no state with each other or with
// the extractor, so each can be run and tested in isolation.
type Diagnostics interface {
	Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *AnalysisEngine) (diags []lsp.Diagnostic)
}

// identifierDecl is one entry of the diagnostic engine's identifier map.
type identifierDecl struct {
	line int
	typ  string
}

// declaredIdentifiers scans for explicit `ident = elementKeyword` bindings.
// This map is deliberately separate from the extractor's element list: the
// extractor also synthesises identifiers from names, and the reference checks
// must not inherit that permissiveness.
func declaredIdentifiers(lang Language, lines []string) map[string]identifierDecl {
	decls := map[string]identifierDecl{}
	for i, raw := range lines {
		line := trimCode(raw)
		if line == "" {
			continue
		}
		m := lang.identifierDecl.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if _, ok := decls[m[1]]; ok {
			continue
		}
		typ, _ := lang.ElementType(m[2])
		decls[m[1]] = identifierDecl{line: i, typ: typ}
	}
	return decls
}

// trimCode trims a raw line and blanks it when it is a comment line. Only
// lines starting with a comment marker count; block-comment interiors are the
// lexical checks' concern.
func trimCode(raw string) string {
	line := strings.TrimSpace(raw)
	if strings.HasPrefix(line, "//") || strings.HasPrefix(line, "/*") {
		return ""
	}
	return line
}

// lineRange spans [startCol, endCol) on a single line.
func lineRange(line, startCol, endCol int) lsp.Range {
	return lsp.Range{
		Start: lsp.Position{Line: uint32(line), Character: uint32(startCol)},
		End:   lsp.Position{Line: uint32(line), Character: uint32(endCol)},
	}
}

// fullLineRange spans the whole width of a line.
func fullLineRange(lines []string, line int) lsp.Range {
	width := 0
	if line >= 0 && line < len(lines) {
		width = len(lines[line])
	}
	return lineRange(line, 0, width)
}

// tokenRange locates token inside the trimmed portion of a raw line and spans
// it; when the token cannot be located the whole line is spanned instead.
func tokenRange(lines []string, line int, token string) lsp.Range {
	if line >= 0 && line < len(lines) && token != "" {
		if col := strings.Index(lines[line], token); col >= 0 {
			return lineRange(line, col, col+len(token))
		}
	}
	return fullLineRange(lines, line)
}

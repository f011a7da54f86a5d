package analysis

import (
	"context"
	"fmt"

	"github.com/xerian-dev/xerian-structurizr/lsp"
)

// DiagnosticsPlacement checks that element declarations sit in a block that
// may contain them: containers under a softwareSystem, components under a
// container, and no element declarations at all inside the views block.
//
// It keeps its own stack rather than using the shared context tracker because
// it needs to know the *element types* of enclosing blocks, which the tracker
// deliberately does not record.
type DiagnosticsPlacement struct{}

type placementFrame struct {
	tag         BlockContext
	elementType string
}

func (DiagnosticsPlacement) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *AnalysisEngine) (diags []lsp.Diagnostic) {
	lang := engine.Language()
	var stack []placementFrame

	for i, raw := range fctx.Lines {
		line := trimCode(raw)

		var pushed *placementFrame
		if line != "" {
			if el, ok := lang.MatchElement(line); ok {
				diags = append(diags, checkPlacement(lang, fctx.Lines, i, line, el, stack)...)
				if opens, _ := countCodeBraces(line); opens > 0 {
					pushed = &placementFrame{elementType: el.Type}
				}
			} else if tag, ok := blockTag(lang, line); ok {
				pushed = &placementFrame{tag: tag}
			}
		}

		if pushed != nil {
			stack = append(stack, *pushed)
		}
		_, closes := countCodeBraces(line)
		for ; closes > 0 && len(stack) > 0; closes-- {
			stack = stack[:len(stack)-1]
		}
	}

	return diags
}

func checkPlacement(lang Language, lines []string, lineIdx int, line string, el Element, stack []placementFrame) (diags []lsp.Diagnostic) {
	if tag := innermostTag(stack); tag == ContextViews {
		diags = append(diags, lsp.Diagnostic{
			Range:    fullLineRange(lines, lineIdx),
			Severity: lsp.SeverityError,
			Source:   "placement lint",
			Message:  fmt.Sprintf("%s declarations are not allowed inside the views block", el.Type),
		})
		return diags
	}

	required := ""
	switch el.Type {
	case "container":
		required = "softwareSystem"
	case "component":
		required = "container"
	}
	if required != "" && !enclosedBy(stack, required) {
		diags = append(diags, lsp.Diagnostic{
			Range:    fullLineRange(lines, lineIdx),
			Severity: lsp.SeverityError,
			Source:   "placement lint",
			Message:  fmt.Sprintf("A %s can only be declared inside a %s", el.Type, required),
		})
	}

	return diags
}

func innermostTag(stack []placementFrame) BlockContext {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].tag != "" {
			return stack[i].tag
		}
	}
	return ContextRoot
}

func enclosedBy(stack []placementFrame, elementType string) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].elementType == elementType {
			return true
		}
	}
	return false
}

// countCodeBraces counts braces outside string literals and line comments.
func countCodeBraces(line string) (opens, closes int) {
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
		switch c {
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return opens, closes
			}
		case '"':
			inString = true
		case '{':
			opens++
		case '}':
			closes++
		}
	}
	return opens, closes
}

package analysis

import (
	"regexp"
	"strings"
)

// BlockContext is the innermost enclosing structural block at a position.
type BlockContext string

const (
	ContextRoot      BlockContext = "root"
	ContextWorkspace BlockContext = "workspace"
	ContextModel     BlockContext = "model"
	ContextViews     BlockContext = "views"
	ContextStyles    BlockContext = "styles"
	ContextView      BlockContext = "view"
	ContextElement   BlockContext = "element"
)

var blockKeyword = regexp.MustCompile(`(?i)^(workspace|model|views|styles)\b`)

// ContextAt replays the document from the top and returns the block context
// enclosing the given line. The replay is deliberately permissive: a tag is
// pushed when a trimmed line starts with a block-opening keyword, and one tag
// is popped for every } seen anywhere in a line, bounded at zero. Style rules
// report as ContextElement.
//
// Cost is O(lines) per query, which is fine for the cursor-interaction
// callers (hover, completion) this exists for; the diagnostic checks keep
// their own running stack instead of calling this per line.
func ContextAt(lang Language, text string, line int) BlockContext {
	lines := SplitLines(text)
	if line > len(lines) {
		line = len(lines)
	}

	var stack []BlockContext
	for i := 0; i < line && i < len(lines); i++ {
		stack = pushContext(lang, stack, lines[i])
	}
	if len(stack) == 0 {
		return ContextRoot
	}
	return stack[len(stack)-1]
}

// pushContext advances the context stack across one line.
func pushContext(lang Language, stack []BlockContext, raw string) []BlockContext {
	line := strings.TrimSpace(raw)

	if line != "" && !strings.HasPrefix(line, "//") && !strings.HasPrefix(line, "/*") {
		if tag, ok := blockTag(lang, line); ok {
			stack = append(stack, tag)
		}
	}

	for _, c := range raw {
		if c == '}' && len(stack) > 0 {
			stack = stack[:len(stack)-1]
		}
	}
	return stack
}

func blockTag(lang Language, line string) (BlockContext, bool) {
	if m := blockKeyword.FindStringSubmatch(line); m != nil {
		return BlockContext(strings.ToLower(m[1])), true
	}
	if lang.styleRule.MatchString(line) {
		return ContextElement, true
	}
	// element declarations share keywords with view headers; the element
	// shape (quoted name right after the keyword) is checked first so that
	// `container "Web App"` never opens a view context.
	if _, ok := lang.MatchElement(line); ok {
		return "", false
	}
	if _, ok := lang.MatchView(line); ok {
		return ContextView, true
	}
	return "", false
}

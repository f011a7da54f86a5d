package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type KeywordKind string

const (
	KeywordElement   KeywordKind = "element"
	KeywordView      KeywordKind = "view"
	KeywordBlock     KeywordKind = "block"
	KeywordDirective KeywordKind = "directive"
	KeywordProperty  KeywordKind = "property"
	KeywordStyle     KeywordKind = "style"
)

// Keyword is one entry of the language catalog. Aliases carry the canonical
// name of the keyword they stand for; everything else has Canonical == Name.
type Keyword struct {
	Name      string
	Kind      KeywordKind
	Canonical string
	Doc       string

	// view keywords only
	RequiresScope bool
	ScopeType     string
}

// Language is the keyword catalog plus the line matchers compiled from it.
// It is immutable once built; one instance is shared by the extractor, the
// context tracker and every diagnostic check.
type Language struct {
	keywords []Keyword
	byName   map[string][]Keyword

	workspaceName  *regexp.Regexp
	element        *regexp.Regexp
	relationship   *regexp.Regexp
	view           *regexp.Regexp
	autoLayout     *regexp.Regexp
	assignment     *regexp.Regexp
	styleRule      *regexp.Regexp
	identifierDecl *regexp.Regexp
}

func NewLanguage(keywords []Keyword) (Language, error) {
	l := Language{
		keywords: keywords,
		byName:   map[string][]Keyword{},
	}

	var elementNames, viewNames []string
	for i := range keywords {
		kw := keywords[i]
		if kw.Canonical == "" {
			kw.Canonical = kw.Name
			l.keywords[i].Canonical = kw.Name
		}
		key := strings.ToLower(kw.Name)
		l.byName[key] = append(l.byName[key], kw)

		switch kw.Kind {
		case KeywordElement:
			elementNames = append(elementNames, kw.Name)
		case KeywordView:
			viewNames = append(viewNames, kw.Name)
		}
	}

	if len(elementNames) == 0 || len(viewNames) == 0 {
		return Language{}, fmt.Errorf("language catalog needs at least one element and one view keyword, got %d/%d", len(elementNames), len(viewNames))
	}

	quoted := `"((?:[^"\\]|\\.)*)"`
	ident := `[a-zA-Z_][a-zA-Z0-9_.-]*`

	var err error
	l.workspaceName, err = regexp.Compile(`(?i)^workspace\s+"([^"]*)"`)
	if err == nil {
		l.element, err = regexp.Compile(
			`(?i)^(?:(` + ident + `)\s*=\s*)?(` + alternation(elementNames) + `)\b\s*(?:` + quoted + `)?\s*(?:` + quoted + `)?\s*(?:` + quoted + `)?`)
	}
	if err == nil {
		l.relationship, err = regexp.Compile(
			`^(` + ident + `)\s*->\s*(` + ident + `)\s*(?:` + quoted + `)?\s*(?:` + quoted + `)?`)
	}
	if err == nil {
		l.view, err = regexp.Compile(
			`(?i)^(` + alternation(viewNames) + `)\b[ \t]*(` + ident + `)?[ \t]*(?:` + quoted + `)?`)
	}
	if err == nil {
		l.autoLayout, err = regexp.Compile(`(?i)^autolayout\b(?:[ \t]+([a-zA-Z]+))?`)
	}
	if err == nil {
		l.assignment, err = regexp.Compile(`^([a-zA-Z_][a-zA-Z0-9_-]*)\s*=\s*([a-zA-Z_][a-zA-Z0-9_-]*)?`)
	}
	if err == nil {
		l.styleRule, err = regexp.Compile(`(?i)^(element|relationship)\s+"`)
	}
	if err == nil {
		l.identifierDecl, err = regexp.Compile(
			`(?i)^([a-zA-Z_][a-zA-Z0-9_-]*)\s*=\s*(` + alternation(elementNames) + `)\b`)
	}
	if err != nil {
		return Language{}, fmt.Errorf("failed to compile language matchers: %w", err)
	}

	return l, nil
}

// alternation builds a regex alternation, longest name first so that no
// keyword shadows a longer one sharing its prefix.
func alternation(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	for i, n := range sorted {
		sorted[i] = regexp.QuoteMeta(n)
	}
	return strings.Join(sorted, "|")
}

// Keywords returns the catalog in declaration order, which is also the
// tie-break order for spelling suggestions.
func (l Language) Keywords() []Keyword {
	return l.keywords
}

// Lookup finds a keyword by name, case-insensitively. When a name is bound
// more than once (container is both an element and a view type) the first
// catalog entry wins.
func (l Language) Lookup(name string) (Keyword, bool) {
	kws := l.byName[strings.ToLower(name)]
	if len(kws) == 0 {
		return Keyword{}, false
	}
	return kws[0], true
}

// LookupKind finds a keyword by name restricted to one kind.
func (l Language) LookupKind(name string, kind KeywordKind) (Keyword, bool) {
	for _, kw := range l.byName[strings.ToLower(name)] {
		if kw.Kind == kind {
			return kw, true
		}
	}
	return Keyword{}, false
}

// ElementType maps an element keyword (or alias) to its canonical type name.
func (l Language) ElementType(name string) (string, bool) {
	kw, ok := l.LookupKind(name, KeywordElement)
	if !ok {
		return "", false
	}
	return kw.Canonical, true
}

// ViewType maps a view keyword to its canonical type name.
func (l Language) ViewType(name string) (string, bool) {
	kw, ok := l.LookupKind(name, KeywordView)
	if !ok {
		return "", false
	}
	return kw.Canonical, true
}

// IsReserved reports whether name collides with any keyword of the language.
func (l Language) IsReserved(name string) bool {
	_, ok := l.byName[strings.ToLower(name)]
	return ok
}

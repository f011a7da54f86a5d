package langdef

import (
	"fmt"

	"github.com/xerian-dev/xerian-structurizr/analysis"
)

var kinds = map[string]analysis.KeywordKind{
	"element":   analysis.KeywordElement,
	"view":      analysis.KeywordView,
	"block":     analysis.KeywordBlock,
	"directive": analysis.KeywordDirective,
	"property":  analysis.KeywordProperty,
	"style":     analysis.KeywordStyle,
}

// Build converts a parsed definition file into an analysis.Language. Alias
// entries inherit kind and documentation from their target and must follow
// it in the file.
func Build(f *File) (analysis.Language, error) {
	byName := map[string]analysis.Keyword{}
	var keywords []analysis.Keyword

	for _, e := range f.Entries {
		doc := ""
		if e.Doc != nil {
			doc = *e.Doc
		}

		if e.Kind == "alias" {
			if e.Target == nil {
				return analysis.Language{}, fmt.Errorf("alias %q has no target", e.Name)
			}
			target, ok := byName[*e.Target]
			if !ok {
				return analysis.Language{}, fmt.Errorf("alias %q points at undefined keyword %q", e.Name, *e.Target)
			}
			kw := target
			kw.Name = e.Name
			kw.Canonical = target.Name
			if doc != "" {
				kw.Doc = doc
			}
			keywords = append(keywords, kw)
			continue
		}

		kind, ok := kinds[e.Kind]
		if !ok {
			return analysis.Language{}, fmt.Errorf("keyword %q has unknown kind %q", e.Name, e.Kind)
		}

		kw := analysis.Keyword{
			Name:          e.Name,
			Kind:          kind,
			Canonical:     e.Name,
			Doc:           doc,
			RequiresScope: e.Requires || e.Scope != nil,
		}
		if e.Scope != nil {
			kw.ScopeType = *e.Scope
		}

		if _, dup := byName[e.Name]; !dup {
			byName[e.Name] = kw
		}
		keywords = append(keywords, kw)
	}

	return analysis.NewLanguage(keywords)
}

package analysis

import (
	"regexp"
	"strings"
)

// Element is one modelled architecture node. Children is always left empty by
// the extractor; hierarchy is implied by nesting order and reconstructed by
// callers that need it.
type Element struct {
	Identifier  string
	Type        string
	Name        string
	Description string
	Technology  string
	Line        int
	Children    []Element
}

// Relationship is a directed source -> target edge. Source and target are the
// raw identifier tokens from the line; resolving them against declarations is
// the diagnostic engine's job, not the extractor's.
type Relationship struct {
	Source      string
	Target      string
	Description string
	Technology  string
	Line        int
}

type View struct {
	Type       string
	Scope      string
	Key        string
	AutoLayout string
	Line       int
}

// ParsedDocument is the structural model extracted from one text snapshot.
// Every call to Parse produces a fresh instance; nothing is cached or shared.
type ParsedDocument struct {
	Name          string
	Elements      []Element
	Relationships []Relationship
	Views         []View
}

// Parse runs the best-effort structural extraction over text. It is a pure
// function: lines that match no construct are silently skipped, and no
// validation happens here — a document full of errors still yields whatever
// structure could be recognised.
//
// Matchers run in fixed priority per line: workspace name, then elements,
// then relationships, then views. Only lines that *start* with // or /* are
// treated as comments; a line inside a block comment that doesn't start with
// /* is still matched (the diagnostic engine's lexical checks are stricter).
func Parse(lang Language, text string) ParsedDocument {
	doc := ParsedDocument{
		Elements:      []Element{},
		Relationships: []Relationship{},
		Views:         []View{},
	}

	for i, raw := range SplitLines(text) {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "/*") {
			continue
		}

		if doc.Name == "" {
			if m := lang.workspaceName.FindStringSubmatch(line); m != nil {
				doc.Name = m[1]
				continue
			}
		}

		if el, ok := lang.MatchElement(line); ok {
			el.Line = i
			doc.Elements = append(doc.Elements, el)
			continue
		}

		if rel, ok := lang.MatchRelationship(line); ok {
			rel.Line = i
			doc.Relationships = append(doc.Relationships, rel)
			continue
		}

		if v, ok := lang.MatchView(line); ok {
			v.Line = i
			doc.Views = append(doc.Views, v)
			continue
		}

		// autoLayout belongs to the most recently opened view; a bare
		// directive defaults to top-to-bottom.
		if m := lang.autoLayout.FindStringSubmatch(line); m != nil && len(doc.Views) > 0 {
			dir := strings.ToLower(m[1])
			if dir == "" {
				dir = "tb"
			}
			doc.Views[len(doc.Views)-1].AutoLayout = dir
		}
	}

	return doc
}

// MatchElement recognises an element declaration in a trimmed line. A line
// counts as an element only if it carries an explicit `id =` prefix or a
// quoted name directly after the type keyword — that shape difference is what
// keeps view headers like `container sys "key"` out of the element matcher.
func (l Language) MatchElement(line string) (Element, bool) {
	idx := l.element.FindStringSubmatchIndex(line)
	if idx == nil {
		return Element{}, false
	}

	group := func(n int) (string, bool) {
		if idx[2*n] < 0 {
			return "", false
		}
		return line[idx[2*n]:idx[2*n+1]], true
	}

	id, _ := group(1)
	keyword, _ := group(2)
	name, named := group(3)
	if id == "" && !named {
		return Element{}, false
	}

	typ, ok := l.ElementType(keyword)
	if !ok {
		return Element{}, false
	}

	description, _ := group(4)
	technology, _ := group(5)

	el := Element{
		Identifier:  id,
		Type:        typ,
		Name:        unescape(name),
		Description: unescape(description),
		Technology:  unescape(technology),
		Children:    []Element{},
	}
	if el.Identifier == "" {
		el.Identifier = stripWhitespace(el.Name)
	}
	return el, true
}

func (l Language) MatchRelationship(line string) (Relationship, bool) {
	m := l.relationship.FindStringSubmatch(line)
	if m == nil {
		return Relationship{}, false
	}
	return Relationship{
		Source:      m[1],
		Target:      m[2],
		Description: unescape(m[3]),
		Technology:  unescape(m[4]),
	}, true
}

func (l Language) MatchView(line string) (View, bool) {
	m := l.view.FindStringSubmatch(line)
	if m == nil {
		return View{}, false
	}
	typ, ok := l.ViewType(m[1])
	if !ok {
		return View{}, false
	}
	return View{
		Type:  typ,
		Scope: m[2],
		Key:   unescape(m[3]),
	}, true
}

// SplitLines splits a document into lines, tolerating CRLF endings.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

var whitespace = regexp.MustCompile(`\s+`)

func stripWhitespace(s string) string {
	return whitespace.ReplaceAllString(s, "")
}

// unescape undoes the backslash escaping of a double-quoted literal body.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Package langdef parses the declarative language-definition format that
// describes the DSL's keyword catalog: one entry per keyword with its kind,
// documentation, alias target and view scope rule.
package langdef

import "github.com/alecthomas/participle/v2"

type File struct {
	Entries []Entry `parser:"@@*"`
}

type Entry struct {
	Kind     string  `parser:"@(\"element\" | \"view\" | \"block\" | \"directive\" | \"property\" | \"style\" | \"alias\")"`
	Name     string  `parser:"@Ident"`
	Target   *string `parser:"(\"for\" @Ident)?"`
	Requires bool    `parser:"@\"requires\"?"`
	Scope    *string `parser:"(\"scope\" @Ident)?"`
	Doc      *string `parser:"@String?"`
}

func (f *File) EntriesOfKind(kind string) []Entry {
	var r []Entry
	for _, e := range f.Entries {
		if e.Kind == kind {
			r = append(r, e)
		}
	}
	return r
}

var Parser = participle.MustBuild[File](participle.Unquote("String"))

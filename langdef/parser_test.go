package langdef_test

import (
	_ "embed"
	"testing"

	"github.com/xerian-dev/xerian-structurizr/analysis"
	"github.com/xerian-dev/xerian-structurizr/langdef"
)

//go:embed structurizr/builtin.langdef
var builtin string

func TestParseBuiltin(t *testing.T) {
	f, err := langdef.Parser.ParseString("builtin", builtin)
	if err != nil {
		t.Fatalf("failed to parse the builtin catalog: %v", err)
	}

	if n := len(f.EntriesOfKind("element")); n != 7 {
		t.Errorf("expected 7 element entries, got %d", n)
	}
	if n := len(f.EntriesOfKind("alias")); n != 2 {
		t.Errorf("expected 2 alias entries, got %d", n)
	}
	if n := len(f.EntriesOfKind("view")); n != 8 {
		t.Errorf("expected 8 view entries, got %d", n)
	}
}

func TestBuildBuiltin(t *testing.T) {
	f, err := langdef.Parser.ParseString("builtin", builtin)
	if err != nil {
		t.Fatalf("failed to parse the builtin catalog: %v", err)
	}
	lang, err := langdef.Build(f)
	if err != nil {
		t.Fatalf("failed to build the language: %v", err)
	}

	kw, ok := lang.LookupKind("container", analysis.KeywordView)
	if !ok {
		t.Fatalf("expected a container view keyword")
	}
	if !kw.RequiresScope || kw.ScopeType != "softwareSystem" {
		t.Errorf("unexpected scope rule: %+v", kw)
	}

	kw, ok = lang.LookupKind("systemContext", analysis.KeywordView)
	if !ok {
		t.Fatalf("expected a systemContext view keyword")
	}
	if !kw.RequiresScope || kw.ScopeType != "" {
		t.Errorf("expected a required but untyped scope, got %+v", kw)
	}

	typ, ok := lang.ElementType("deploymentEnvironment")
	if !ok || typ != "deploymentNode" {
		t.Errorf("expected the alias to resolve to deploymentNode, got %q (ok=%v)", typ, ok)
	}
}

func TestParseEntry(t *testing.T) {
	src := `
element thing "A thing."
view map requires scope thing "A map of things."
alias stuff for thing
`
	f, err := langdef.Parser.ParseString("inline", src)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if len(f.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %+v", f.Entries)
	}

	view := f.Entries[1]
	if view.Kind != "view" || view.Name != "map" || !view.Requires {
		t.Errorf("unexpected view entry: %+v", view)
	}
	if view.Scope == nil || *view.Scope != "thing" {
		t.Errorf("expected the scope thing, got %+v", view.Scope)
	}
	if view.Doc == nil || *view.Doc != "A map of things." {
		t.Errorf("expected the doc string to be unquoted, got %+v", view.Doc)
	}

	alias := f.Entries[2]
	if alias.Kind != "alias" || alias.Target == nil || *alias.Target != "thing" {
		t.Errorf("unexpected alias entry: %+v", alias)
	}

	lang, err := langdef.Build(f)
	if err != nil {
		t.Fatalf("failed to build: %v", err)
	}
	typ, ok := lang.ElementType("stuff")
	if !ok || typ != "thing" {
		t.Errorf("expected the alias to resolve to thing, got %q (ok=%v)", typ, ok)
	}
}

func TestBuildRejectsDanglingAlias(t *testing.T) {
	f, err := langdef.Parser.ParseString("inline", `
element thing "A thing."
view map "A map."
alias stuff for missing
`)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if _, err := langdef.Build(f); err == nil {
		t.Errorf("expected an error for an alias with an undefined target")
	}
}

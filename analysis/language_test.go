package analysis_test

import (
	"testing"

	"github.com/xerian-dev/xerian-structurizr/analysis"
	"github.com/xerian-dev/xerian-structurizr/langdef/structurizr"
)

func TestLookupCaseInsensitive(t *testing.T) {
	lang := structurizr.BuiltinLanguage()

	kw, ok := lang.Lookup("WORKSPACE")
	if !ok || kw.Name != "workspace" {
		t.Errorf("expected workspace, got %+v (ok=%v)", kw, ok)
	}
	if _, ok := lang.Lookup("nonsense"); ok {
		t.Errorf("expected no keyword for %q", "nonsense")
	}
}

// The first catalog entry wins when a name is bound more than once.
func TestLookupAmbiguous(t *testing.T) {
	lang := structurizr.BuiltinLanguage()

	kw, ok := lang.Lookup("container")
	if !ok || kw.Kind != analysis.KeywordElement {
		t.Errorf("expected the element entry, got %+v", kw)
	}

	kw, ok = lang.LookupKind("container", analysis.KeywordView)
	if !ok || kw.ScopeType != "softwareSystem" {
		t.Errorf("expected the view entry with its scope type, got %+v", kw)
	}
}

func TestElementTypeAlias(t *testing.T) {
	lang := structurizr.BuiltinLanguage()

	typ, ok := lang.ElementType("softwaresystem")
	if !ok || typ != "softwareSystem" {
		t.Errorf("expected softwareSystem, got %q (ok=%v)", typ, ok)
	}
	typ, ok = lang.ElementType("deploymentEnvironment")
	if !ok || typ != "deploymentNode" {
		t.Errorf("expected deploymentNode, got %q (ok=%v)", typ, ok)
	}
	if _, ok := lang.ElementType("systemContext"); ok {
		t.Errorf("expected no element type for a view keyword")
	}
}

func TestIsReserved(t *testing.T) {
	lang := structurizr.BuiltinLanguage()
	if !lang.IsReserved("model") {
		t.Errorf("expected model to be reserved")
	}
	if lang.IsReserved("myApp") {
		t.Errorf("expected myApp not to be reserved")
	}
}

func TestNewLanguageNeedsCatalog(t *testing.T) {
	_, err := analysis.NewLanguage([]analysis.Keyword{
		{Name: "thing", Kind: analysis.KeywordElement},
	})
	if err == nil {
		t.Errorf("expected an error for a catalog without view keywords")
	}
}

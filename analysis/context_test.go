package analysis_test

import (
	"testing"

	"github.com/xerian-dev/xerian-structurizr/analysis"
	"github.com/xerian-dev/xerian-structurizr/langdef/structurizr"
)

func TestContextAt(t *testing.T) {
	lang := structurizr.BuiltinLanguage()

	cases := []struct {
		name string
		line int
		want analysis.BlockContext
	}{
		{"top of document", 0, analysis.ContextRoot},
		{"inside model", 2, analysis.ContextModel},
		{"directly inside views", 11, analysis.ContextViews},
		{"inside a view body", 12, analysis.ContextView},
		{"inside a style rule", 21, analysis.ContextElement},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := analysis.ContextAt(lang, testFile, c.line)
			if got != c.want {
				t.Errorf("line %d: expected %s, got %s", c.line, c.want, got)
			}
		})
	}
}

// Stray closing braces never pop below the root.
func TestContextAtStrayBraces(t *testing.T) {
	lang := structurizr.BuiltinLanguage()
	got := analysis.ContextAt(lang, "}\n}\nmodel {\n", 3)
	if got != analysis.ContextModel {
		t.Errorf("expected model, got %s", got)
	}
}

func TestContextAtPastEnd(t *testing.T) {
	lang := structurizr.BuiltinLanguage()
	if got := analysis.ContextAt(lang, "model {", 99); got != analysis.ContextModel {
		t.Errorf("expected model, got %s", got)
	}
	if got := analysis.ContextAt(lang, "", 0); got != analysis.ContextRoot {
		t.Errorf("expected root, got %s", got)
	}
}

// Comment lines never open a block.
func TestContextAtIgnoresComments(t *testing.T) {
	lang := structurizr.BuiltinLanguage()
	text := "// model {\nworkspace \"w\" {\n"
	if got := analysis.ContextAt(lang, text, 2); got != analysis.ContextWorkspace {
		t.Errorf("expected workspace, got %s", got)
	}
}

package analysis_test

import (
	"testing"

	"github.com/xerian-dev/xerian-structurizr/langdef/structurizr"
)

func TestSuggestKeyword(t *testing.T) {
	lang := structurizr.BuiltinLanguage()

	cases := []struct {
		word string
		want string
		ok   bool
	}{
		{"persn", "person", true},
		{"contaner", "container", true},
		{"softwaresystm", "softwareSystem", true},
		{"autolayout", "autoLayout", true},
		{"PERSON", "person", true},
		{"person", "person", true},
		{"zzzzzzzz", "", false},
		{"qqqqqqqqqqqq", "", false},
	}

	for _, c := range cases {
		got, ok := lang.SuggestKeyword(c.word)
		if ok != c.ok {
			t.Errorf("SuggestKeyword(%q): expected ok=%v, got %v", c.word, c.ok, ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("SuggestKeyword(%q): expected %q, got %q", c.word, c.want, got)
		}
	}
}

// container names both an element type and a view type; the element entry
// comes first in the catalog and wins the tie.
func TestSuggestTieBreak(t *testing.T) {
	lang := structurizr.BuiltinLanguage()
	got, ok := lang.SuggestKeyword("continer")
	if !ok || got != "container" {
		t.Errorf("expected container, got %q (ok=%v)", got, ok)
	}
}

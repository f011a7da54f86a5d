package analysis_test

import (
	"reflect"
	"testing"

	"github.com/xerian-dev/xerian-structurizr/analysis"
	"github.com/xerian-dev/xerian-structurizr/langdef/structurizr"
)

func TestParseWorkspace(t *testing.T) {
	lang := structurizr.BuiltinLanguage()
	doc := analysis.Parse(lang, testFile)

	if doc.Name != "Big Bank" {
		t.Errorf("expected workspace name %q, got %q", "Big Bank", doc.Name)
	}
	if len(doc.Elements) != 4 {
		t.Fatalf("expected 4 elements, got %v", doc.Elements)
	}

	u := doc.Elements[0]
	if u.Identifier != "u" || u.Type != "person" || u.Name != "Customer" || u.Line != 2 {
		t.Errorf("unexpected first element: %+v", u)
	}
	wa := doc.Elements[2]
	if wa.Identifier != "wa" || wa.Type != "container" || wa.Technology != "Go" {
		t.Errorf("unexpected third element: %+v", wa)
	}
	if wa.Description != "Serves content" {
		t.Errorf("unexpected description: %q", wa.Description)
	}

	if len(doc.Relationships) != 2 {
		t.Fatalf("expected 2 relationships, got %v", doc.Relationships)
	}
	if doc.Relationships[0].Source != "u" || doc.Relationships[0].Target != "s" || doc.Relationships[0].Description != "Uses" {
		t.Errorf("unexpected first relationship: %+v", doc.Relationships[0])
	}

	if len(doc.Views) != 2 {
		t.Fatalf("expected 2 views, got %v", doc.Views)
	}
	ctx := doc.Views[0]
	if ctx.Type != "systemContext" || ctx.Scope != "s" || ctx.Key != "context" || ctx.AutoLayout != "lr" {
		t.Errorf("unexpected first view: %+v", ctx)
	}
}

// A bare autoLayout directive defaults to top-to-bottom.
func TestAutoLayoutDefault(t *testing.T) {
	doc := analysis.Parse(structurizr.BuiltinLanguage(), testFile)
	if len(doc.Views) != 2 {
		t.Fatalf("expected 2 views, got %v", doc.Views)
	}
	if doc.Views[1].AutoLayout != "tb" {
		t.Errorf("expected the default direction tb, got %q", doc.Views[1].AutoLayout)
	}
}

func TestParseIdempotent(t *testing.T) {
	lang := structurizr.BuiltinLanguage()
	first := analysis.Parse(lang, testFile)
	second := analysis.Parse(lang, testFile)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing the same text twice gave different results:\n%+v\n%+v", first, second)
	}
}

// An element without an explicit identifier gets one synthesised from its
// name with the whitespace stripped.
func TestIdentifierFallback(t *testing.T) {
	doc := analysis.Parse(structurizr.BuiltinLanguage(), `person "Alice Smith" "A user."`)
	if len(doc.Elements) != 1 {
		t.Fatalf("expected 1 element, got %v", doc.Elements)
	}
	if doc.Elements[0].Identifier != "AliceSmith" {
		t.Errorf("expected identifier %q, got %q", "AliceSmith", doc.Elements[0].Identifier)
	}
}

// container is both an element type and a view type; the line shape decides
// which one a line declares.
func TestElementViewDisambiguation(t *testing.T) {
	lang := structurizr.BuiltinLanguage()

	doc := analysis.Parse(lang, `container "Web App"`)
	if len(doc.Elements) != 1 || len(doc.Views) != 0 {
		t.Fatalf("expected an element, got %+v", doc)
	}
	if doc.Elements[0].Identifier != "WebApp" {
		t.Errorf("unexpected identifier: %q", doc.Elements[0].Identifier)
	}

	doc = analysis.Parse(lang, `container s "key"`)
	if len(doc.Views) != 1 || len(doc.Elements) != 0 {
		t.Fatalf("expected a view, got %+v", doc)
	}
	if doc.Views[0].Scope != "s" || doc.Views[0].Key != "key" {
		t.Errorf("unexpected view: %+v", doc.Views[0])
	}
}

// Extraction is best-effort: a broken document still yields whatever
// structure could be recognised.
func TestParseWithUnclosedBraces(t *testing.T) {
	text := `workspace "T" {
	model {
		u = person "User"`

	doc := analysis.Parse(structurizr.BuiltinLanguage(), text)
	if doc.Name != "T" {
		t.Errorf("expected workspace name %q, got %q", "T", doc.Name)
	}
	if len(doc.Elements) != 1 {
		t.Fatalf("expected 1 element, got %v", doc.Elements)
	}
	el := doc.Elements[0]
	if el.Identifier != "u" || el.Type != "person" || el.Name != "User" || el.Line != 2 {
		t.Errorf("unexpected element: %+v", el)
	}
}

// The extractor only skips lines that start with a comment marker; a line
// inside a block comment is still matched.
func TestParseInsideBlockComment(t *testing.T) {
	text := `/* start
g = person "Ghost"
*/`

	doc := analysis.Parse(structurizr.BuiltinLanguage(), text)
	if len(doc.Elements) != 1 || doc.Elements[0].Name != "Ghost" {
		t.Errorf("expected the commented element to be extracted anyway, got %v", doc.Elements)
	}
}

func TestParseEscapedQuotes(t *testing.T) {
	doc := analysis.Parse(structurizr.BuiltinLanguage(), `person "A \"quoted\" name"`)
	if len(doc.Elements) != 1 {
		t.Fatalf("expected 1 element, got %v", doc.Elements)
	}
	if doc.Elements[0].Name != `A "quoted" name` {
		t.Errorf("unexpected name: %q", doc.Elements[0].Name)
	}
}

func TestParseCRLF(t *testing.T) {
	doc := analysis.Parse(structurizr.BuiltinLanguage(), "workspace \"W\" {\r\n\tmodel {\r\n\t\ta = person \"A\"\r\n\t}\r\n}\r\n")
	if doc.Name != "W" {
		t.Errorf("expected workspace name %q, got %q", "W", doc.Name)
	}
	if len(doc.Elements) != 1 || doc.Elements[0].Line != 2 {
		t.Errorf("unexpected elements: %v", doc.Elements)
	}
}

func TestElementAlias(t *testing.T) {
	doc := analysis.Parse(structurizr.BuiltinLanguage(), `live = deploymentEnvironment "Live"`)
	if len(doc.Elements) != 1 {
		t.Fatalf("expected 1 element, got %v", doc.Elements)
	}
	if doc.Elements[0].Type != "deploymentNode" {
		t.Errorf("expected the alias to resolve to deploymentNode, got %q", doc.Elements[0].Type)
	}
}

package main

import (
	"testing"

	"github.com/xerian-dev/xerian-structurizr/lsp"
)

func TestPosToIdx(t *testing.T) {
	doc := "ab\ncd"

	if idx := posToIdx(doc, lsp.Position{Line: 0, Character: 0}); idx != 0 {
		t.Errorf("expected 0, got %d", idx)
	}
	if idx := posToIdx(doc, lsp.Position{Line: 1, Character: 1}); idx != 4 {
		t.Errorf("expected 4, got %d", idx)
	}
	if idx := posToIdx(doc, lsp.Position{Line: 5, Character: 0}); idx != -1 {
		t.Errorf("expected -1 for a position past the end, got %d", idx)
	}
}

func TestWordAtPos(t *testing.T) {
	doc := `workspace "w" {`

	if w := wordAtPos(doc, 3); w != "workspace" {
		t.Errorf("expected workspace, got %q", w)
	}
	if w := wordAtPos(doc, 14); w != "" {
		t.Errorf("expected no word at the brace, got %q", w)
	}
}

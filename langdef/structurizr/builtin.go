// Package structurizr embeds the builtin keyword catalog for the Structurizr
// DSL and exposes it as a ready-made analysis.Language.
package structurizr

import (
	_ "embed"

	"github.com/xerian-dev/xerian-structurizr/analysis"
	"github.com/xerian-dev/xerian-structurizr/langdef"
)

//go:embed builtin.langdef
var builtin string

var builtinLang analysis.Language

func init() {
	f, err := langdef.Parser.ParseString("builtin", builtin)
	if err != nil {
		panic(err)
	}

	builtinLang, err = langdef.Build(f)
	if err != nil {
		panic(err)
	}
}

func BuiltinLanguage() analysis.Language {
	return builtinLang
}

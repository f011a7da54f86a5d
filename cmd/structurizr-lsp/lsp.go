package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"log/slog"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/xerian-dev/xerian-structurizr/analysis"
	"github.com/xerian-dev/xerian-structurizr/langdef/structurizr"
	"github.com/xerian-dev/xerian-structurizr/lsp"
)

type server struct {
	rootURI  string
	debounce time.Duration

	mu       sync.Mutex
	engine   *analysis.AnalysisEngine
	contents map[string]string
	pending  map[string]*time.Timer
}

func (s *server) Initialize(ctx context.Context, conn jsonrpc2.JSONRPC2, params lsp.InitializeParams) (*lsp.InitializeResult, *lsp.InitializeError) {
	s.rootURI = string(params.RootURI)
	s.engine = analysis.New(structurizr.BuiltinLanguage())
	s.contents = map[string]string{}
	s.pending = map[string]*time.Timer{}

	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    lsp.Full,
			},
			HoverProvider:          true,
			DocumentSymbolProvider: true,
			CompletionProvider:     &lsp.CompletionOptions{},
		},
	}, nil
}

func (s *server) Initialized(ctx context.Context, conn jsonrpc2.JSONRPC2, params struct{}) {
}

func (s *server) fileURI(uri lsp.DocumentURI) string {
	return strings.TrimPrefix(string(uri), s.rootURI)
}

// evaluate re-analyses one document and publishes the full replacement
// diagnostic set for it.
func (s *server) evaluate(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	fileURI := s.fileURI(uri)

	s.mu.Lock()
	s.engine.SetFileContext(fileURI, []byte(content))
	diags, err := s.engine.Diagnostics(ctx, fileURI)
	s.mu.Unlock()

	if err != nil {
		slog.Error("analysis failed", "uri", fileURI, "err", err)
		return
	}
	if diags == nil {
		diags = []lsp.Diagnostic{}
	}

	conn.Notify(ctx, "textDocument/publishDiagnostics", lsp.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

// scheduleEvaluate debounces re-analysis per document: a quiet period has to
// pass since the last change before the full scan runs again.
func (s *server) scheduleEvaluate(conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	s.mu.Lock()
	s.contents[s.fileURI(uri)] = content
	if t, ok := s.pending[s.fileURI(uri)]; ok {
		t.Stop()
	}
	s.pending[s.fileURI(uri)] = time.AfterFunc(s.debounce, func() {
		s.evaluate(context.Background(), conn, uri, content)
	})
	s.mu.Unlock()
}

func (s *server) DidOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, params lsp.DidOpenTextDocumentParams) {
	s.mu.Lock()
	s.contents[s.fileURI(params.TextDocument.URI)] = params.TextDocument.Text
	s.mu.Unlock()
	go s.evaluate(context.Background(), conn, params.TextDocument.URI, params.TextDocument.Text)
}

func (s *server) DidChange(ctx context.Context, conn jsonrpc2.JSONRPC2, params lsp.DidChangeTextDocumentParams) {
	if len(params.ContentChanges) == 0 {
		return
	}
	s.scheduleEvaluate(conn, params.TextDocument.URI, params.ContentChanges[0].Text)
}

func (s *server) DidClose(ctx context.Context, conn jsonrpc2.JSONRPC2, params lsp.DidCloseTextDocumentParams) {
	fileURI := s.fileURI(params.TextDocument.URI)

	s.mu.Lock()
	if t, ok := s.pending[fileURI]; ok {
		t.Stop()
		delete(s.pending, fileURI)
	}
	delete(s.contents, fileURI)
	s.engine.DeleteFileContext(fileURI)
	s.mu.Unlock()

	conn.Notify(ctx, "textDocument/publishDiagnostics", lsp.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []lsp.Diagnostic{},
	})
}

func (s *server) DidChangeWatchedFiles(ctx context.Context, conn jsonrpc2.JSONRPC2, params struct{}) {
}

func posToIdx(str string, pos lsp.Position) int {
	col := uint32(0)
	line := uint32(0)
	for i, c := range str {
		if col == pos.Character && line == pos.Line {
			return i
		}
		if c == '\n' {
			col = 0
			line++
		} else {
			col++
		}
	}
	return -1
}

func wordAtPos(str string, idx int) string {
	start := idx
	for start > 0 && isWordRune(rune(str[start-1])) {
		start--
	}
	end := idx
	for end < len(str) && isWordRune(rune(str[end])) {
		end++
	}
	return str[start:end]
}

func isWordRune(c rune) bool {
	return !unicode.IsSpace(c) && c != '{' && c != '}' && c != '"' && c != '=' && c != '*'
}

func (s *server) document(uri lsp.DocumentURI) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.contents[s.fileURI(uri)]
	return content, ok
}

func (s *server) Hover(ctx context.Context, conn jsonrpc2.JSONRPC2, params lsp.HoverParams) (*lsp.Hover, error) {
	document, ok := s.document(params.TextDocument.URI)
	if !ok {
		return &lsp.Hover{}, nil
	}

	idx := posToIdx(document, params.Position)
	if idx == -1 {
		return &lsp.Hover{}, nil
	}
	word := wordAtPos(document, idx)
	if word == "" {
		return &lsp.Hover{}, nil
	}

	lang := s.engine.Language()
	kw, found := lang.Lookup(word)
	if !found {
		return &lsp.Hover{}, nil
	}

	// container and component name both an element type and a view type;
	// which one the author means depends on where the cursor is
	if _, isView := lang.ViewType(word); isView {
		blockCtx := analysis.ContextAt(lang, document, int(params.Position.Line))
		if blockCtx == analysis.ContextViews {
			kw, _ = lang.LookupKind(word, analysis.KeywordView)
		}
	}

	return &lsp.Hover{
		Contents: lsp.MarkupContent{
			Kind:  lsp.Markdown,
			Value: fmt.Sprintf("**%s** (%s)\n\n%s", kw.Name, kw.Kind, kw.Doc),
		},
	}, nil
}

var elementSymbolKinds = map[string]lsp.SymbolKind{
	"person":             lsp.InterfaceSymbol,
	"softwareSystem":     lsp.ClassSymbol,
	"container":          lsp.ModuleSymbol,
	"component":          lsp.FieldSymbol,
	"deploymentNode":     lsp.StructSymbol,
	"infrastructureNode": lsp.StructSymbol,
	"group":              lsp.NamespaceSymbol,
}

func (s *server) DocumentSymbol(ctx context.Context, conn jsonrpc2.JSONRPC2, params lsp.DocumentSymbolParams) ([]lsp.DocumentSymbol, error) {
	s.mu.Lock()
	fctx, err := s.engine.GetFileContext(s.fileURI(params.TextDocument.URI))
	s.mu.Unlock()
	if err != nil {
		return []lsp.DocumentSymbol{}, nil
	}

	lineRange := func(line int) lsp.Range {
		width := 0
		if line >= 0 && line < len(fctx.Lines) {
			width = len(fctx.Lines[line])
		}
		return lsp.Range{
			Start: lsp.Position{Line: uint32(line)},
			End:   lsp.Position{Line: uint32(line), Character: uint32(width)},
		}
	}

	symbols := []lsp.DocumentSymbol{}
	for _, el := range fctx.Document.Elements {
		kind, ok := elementSymbolKinds[el.Type]
		if !ok {
			kind = lsp.ObjectSymbol
		}
		symbols = append(symbols, lsp.DocumentSymbol{
			Name:           el.Name,
			Detail:         el.Type,
			Kind:           kind,
			Range:          lineRange(el.Line),
			SelectionRange: lineRange(el.Line),
		})
	}
	for _, v := range fctx.Document.Views {
		name := v.Key
		if name == "" {
			name = v.Type
		}
		symbols = append(symbols, lsp.DocumentSymbol{
			Name:           name,
			Detail:         v.Type + " view",
			Kind:           lsp.KeySymbol,
			Range:          lineRange(v.Line),
			SelectionRange: lineRange(v.Line),
		})
	}

	if fctx.Document.Name == "" {
		return symbols, nil
	}
	return []lsp.DocumentSymbol{{
		Name:           fctx.Document.Name,
		Detail:         "workspace",
		Kind:           lsp.PackageSymbol,
		Range:          lineRange(0),
		SelectionRange: lineRange(0),
		Children:       symbols,
	}}, nil
}

// completionKinds says which keyword kinds make sense in each block context.
var completionKinds = map[analysis.BlockContext][]analysis.KeywordKind{
	analysis.ContextRoot:      {analysis.KeywordBlock},
	analysis.ContextWorkspace: {analysis.KeywordBlock},
	analysis.ContextModel:     {analysis.KeywordElement},
	analysis.ContextViews:     {analysis.KeywordView, analysis.KeywordBlock},
	analysis.ContextView:      {analysis.KeywordDirective, analysis.KeywordProperty},
	analysis.ContextStyles:    {analysis.KeywordStyle},
	analysis.ContextElement:   {analysis.KeywordProperty},
}

var completionItemKinds = map[analysis.KeywordKind]lsp.CompletionItemKind{
	analysis.KeywordBlock:     lsp.KeywordCompletion,
	analysis.KeywordElement:   lsp.ClassCompletion,
	analysis.KeywordView:      lsp.ModuleCompletion,
	analysis.KeywordDirective: lsp.KeywordCompletion,
	analysis.KeywordProperty:  lsp.PropertyCompletion,
	analysis.KeywordStyle:     lsp.KeywordCompletion,
}

func (s *server) Completion(ctx context.Context, conn jsonrpc2.JSONRPC2, params lsp.CompletionParams) (*lsp.CompletionList, error) {
	document, ok := s.document(params.TextDocument.URI)
	if !ok {
		return &lsp.CompletionList{IsIncomplete: false, Items: []lsp.CompletionItem{}}, nil
	}

	word := ""
	if idx := posToIdx(document, params.Position); idx != -1 {
		word = wordAtPos(document, idx)
	}

	lang := s.engine.Language()
	blockCtx := analysis.ContextAt(lang, document, int(params.Position.Line))
	kinds := completionKinds[blockCtx]

	citems := []lsp.CompletionItem{}
	for _, kw := range lang.Keywords() {
		if !kindWanted(kinds, kw.Kind) {
			continue
		}
		if word != "" && !strings.HasPrefix(strings.ToLower(kw.Name), strings.ToLower(word)) {
			continue
		}
		citems = append(citems, lsp.CompletionItem{
			Label:         kw.Name,
			Kind:          completionItemKinds[kw.Kind],
			Detail:        string(kw.Kind),
			Documentation: kw.Doc,
			InsertText:    strings.TrimPrefix(kw.Name, word),
		})
	}

	return &lsp.CompletionList{IsIncomplete: false, Items: citems}, nil
}

func kindWanted(kinds []analysis.KeywordKind, kind analysis.KeywordKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

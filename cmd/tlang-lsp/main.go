package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"tlang/internal/config"
	"tlang/internal/frontend"
	"tlang/internal/lsp"
)

const (
	lsName  = "tlang-lsp"
	version = "0.1"
)

var log = commonlog.GetLogger("tlang.lsp")

var store = lsp.NewStore(frontend.DefaultOptions())
var handler protocol.Handler

// workspace holds settings read from the manifest during initialize.
var workspace settings

type settings struct {
	mu        sync.RWMutex
	fmtIndent string // "" means no manifest preference
}

func (s *settings) formatIndent() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fmtIndent
}

func (s *settings) setFormatIndent(indent string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fmtIndent = indent
}

func main() {
	var verbose int
	cmd := &cobra.Command{
		Use:           lsName,
		Short:         "Language server for tlang sources over stdio",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(verbose)
		},
	}
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "log more (repeat for debug output)")

	if err := cmd.Execute(); err != nil {
		log.Errorf("%s", err)
		os.Exit(1)
	}
}

func run(verbose int) error {
	// stdout carries the protocol; without a path commonlog writes to stderr
	commonlog.Configure(verbose, nil)

	handler = protocol.Handler{
		Initialize:                     initialize,
		Initialized:                    initialized,
		Shutdown:                       shutdown,
		SetTrace:                       setTrace,
		TextDocumentDidOpen:            textDocumentDidOpen,
		TextDocumentDidChange:          textDocumentDidChange,
		TextDocumentDidSave:            textDocumentDidSave,
		TextDocumentDidClose:           textDocumentDidClose,
		TextDocumentFormatting:         textDocumentFormatting,
		TextDocumentSemanticTokensFull: textDocumentSemanticTokensFull,
		TextDocumentDefinition:         textDocumentDefinition,
		TextDocumentDocumentSymbol:     textDocumentDocumentSymbol,
		TextDocumentCompletion:         textDocumentCompletion,
		TextDocumentHover:              textDocumentHover,
	}

	srv := server.NewServer(&handler, lsName, verbose > 1)
	return srv.RunStdio()
}

func initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	root := ""
	if params.RootURI != nil {
		root = lsp.UriToPath(*params.RootURI)
	} else if params.RootPath != nil {
		root = *params.RootPath
	}
	applyManifest(root)

	full := protocol.TextDocumentSyncKindFull
	caps := protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: &protocol.True,
			Change:    &full,
			Save:      protocol.SaveOptions{IncludeText: &protocol.False},
		},
		SemanticTokensProvider: &protocol.SemanticTokensOptions{
			Legend: lsp.Legend(),
			Full:   true,
			Range:  false,
		},
		DocumentFormattingProvider: true,
		DefinitionProvider:         true,
		DocumentSymbolProvider:     true,
		CompletionProvider:         &protocol.CompletionOptions{},
		HoverProvider:              true,
	}

	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: ptrString(version),
		},
	}, nil
}

// applyManifest picks up parser and formatter settings from the workspace
// manifest, if there is one.
func applyManifest(root string) {
	if root == "" {
		return
	}
	path, err := config.Find(root)
	if err != nil {
		log.Debugf("no manifest under %s: %s", root, err)
		return
	}
	m, err := config.LoadManifest(path)
	if err != nil {
		log.Warningf("ignoring %s: %s", filepath.Base(path), err)
		return
	}
	store.SetOptions(frontend.Options{MaxDepth: m.Parser.MaxDepth})
	workspace.setFormatIndent(m.FmtIndent())
	log.Infof("loaded %s (max_depth=%d)", path, m.Parser.MaxDepth)
}

func initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	return update(ctx, uri, params.TextDocument.Version, params.TextDocument.Text)
}

func textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	if len(params.ContentChanges) == 0 {
		return nil
	}

	text, ok := extractFullText(params.ContentChanges[len(params.ContentChanges)-1])
	if !ok {
		return nil
	}
	return update(ctx, uri, params.TextDocument.Version, text)
}

func textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	if doc, ok := store.Get(uri); ok {
		publishDiagnostics(ctx, uri, lsp.Diagnostics(doc))
	}
	return nil
}

func textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	store.Delete(uri)
	publishDiagnostics(ctx, uri, []protocol.Diagnostic{})
	return nil
}

func update(ctx *glsp.Context, uri string, version int32, text string) error {
	if !lsp.IsSourceURI(uri) {
		publishDiagnostics(ctx, uri, []protocol.Diagnostic{})
		return nil
	}
	doc := store.Set(uri, version, text)
	if doc.Err != nil {
		log.Debugf("%s@%d: %s", uri, version, doc.Err)
	}
	publishDiagnostics(ctx, uri, lsp.Diagnostics(doc))
	return nil
}

func publishDiagnostics(ctx *glsp.Context, uri string, diags []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: diags,
	})
}

func textDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	uri := string(params.TextDocument.URI)
	doc, ok := store.Get(uri)
	if !ok {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	sem := lsp.SemanticTokensForText(doc.Text)
	data := lsp.EncodeSemanticTokens(doc.Text, sem)
	return &protocol.SemanticTokens{Data: data}, nil
}

func textDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	doc, ok := store.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	locs := lsp.DefinitionAt(doc, params.Position)
	if len(locs) == 0 {
		return nil, nil
	}
	return locs, nil
}

func textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, ok := store.Get(string(params.TextDocument.URI))
	if !ok {
		return []protocol.DocumentSymbol{}, nil
	}
	return doc.Index.Symbols, nil
}

func textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, ok := store.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	items := lsp.CompletionItems(doc, params.Position)
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

func textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := store.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return lsp.HoverAt(doc, params.Position)
}

func extractFullText(change any) (string, bool) {
	switch typed := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return typed.Text, true
	case protocol.TextDocumentContentChangeEvent:
		return typed.Text, true
	default:
		return "", false
	}
}

func ptrString(s string) *string { return &s }

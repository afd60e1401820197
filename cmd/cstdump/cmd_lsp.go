package main

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/scriptcst/parser/ast"
	"github.com/scriptcst/parser/parser"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/spf13/cobra"
)

const lsName = "cstdump"

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start a minimal Language Server Protocol front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			ls := newLanguageServer("0.1.0")
			return ls.runStdio()
		},
	}
}

// languageServer keeps one parsed tree per open document, re-parsing it in
// full on every change. It publishes no diagnostics: the tree's own
// MissingToken/SkippedToken leaves already make every syntax problem
// visible to anything walking the tree, so there is nothing additional for
// this front end to compute and push.
type languageServer struct {
	version string
	handler protocol.Handler
	server  *server.Server

	mu   sync.Mutex
	docs map[string]*ast.Node
}

func newLanguageServer(version string) *languageServer {
	ls := &languageServer{version: version, docs: make(map[string]*ast.Node)}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)
	return ls
}

func (ls *languageServer) runStdio() error {
	return ls.server.RunStdio()
}

func (ls *languageServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save:      &protocol.SaveOptions{IncludeText: boolPtr(true)},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *languageServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *languageServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *languageServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *languageServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.reparse(params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (ls *languageServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.reparse(params.TextDocument.URI, []byte(whole.Text))
	}
	return nil
}

func (ls *languageServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.mu.Lock()
	delete(ls.docs, path)
	ls.mu.Unlock()
	return nil
}

func (ls *languageServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.reparse(params.TextDocument.URI, []byte(*params.Text))
	}
	return nil
}

func (ls *languageServer) reparse(uri protocol.DocumentUri, content []byte) {
	path, err := uriToPath(uri)
	if err != nil {
		return
	}
	p := parser.New(content, parser.WithFile(path))
	root := p.ParseCompilationUnit()

	ls.mu.Lock()
	ls.docs[path] = root
	ls.mu.Unlock()
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}

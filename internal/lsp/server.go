// Package lsp serves parse diagnostics, hovers, document symbols and
// completions to editors over the Language Server Protocol.
package lsp

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/opal-lang/opalc/internal/ast/syntax"
	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/parser"
	"github.com/opal-lang/opalc/internal/span"
)

const serverName = "opalc"

var log = commonlog.GetLogger("opalc.lsp")

// Server tracks open documents and answers requests about them.
type Server struct {
	// Documents tracks open files by URI
	Documents map[string]*Document
	mu        sync.RWMutex

	handler protocol.Handler
	version string
	opts    []parser.Option
}

// Document is an open file together with the result of parsing it.
type Document struct {
	URI     string
	Content string
	Version int32
	Source  *diag.Source
	Geode   syntax.Geode
	// Err is the first lexical or syntax error, if any.
	Err     error
}

// NewServer creates a server reporting version in its handshake. opts are
// applied to every parse.
func NewServer(version string, opts ...parser.Option) *Server {
	s := &Server{
		Documents: make(map[string]*Document),
		version:   version,
		opts:      opts,
	}
	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.didOpen,
		TextDocumentDidChange:      s.didChange,
		TextDocumentDidClose:       s.didClose,
		TextDocumentHover:          s.hover,
		TextDocumentDocumentSymbol: s.documentSymbol,
		TextDocumentCompletion:     s.completion,
	}
	return s
}

// RunStdio serves requests on standard input and output until the client
// disconnects.
func (s *Server) RunStdio() error {
	return server.NewServer(&s.handler, serverName, false).RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	if params.ClientInfo != nil {
		log.Infof("initializing for %s", params.ClientInfo.Name)
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.Update(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	// Only full sync is advertised, so the last change carries the whole text.
	var text *string
	for _, change := range params.ContentChanges {
		if c, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			text = &c.Text
		}
	}
	if text == nil {
		return nil
	}

	doc := s.Update(params.TextDocument.URI, *text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.Documents, params.TextDocument.URI)
	s.mu.Unlock()

	// Clear diagnostics for the closed file.
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// Update parses content and stores it as the current state of uri.
func (s *Server) Update(uri, content string, version int32) *Document {
	doc := &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Source:  diag.NewSource(uriToPath(uri), content),
	}
	doc.Geode, doc.Err = parser.ParseSource(unitName(uri), content, s.opts...)
	if doc.Err != nil {
		log.Debugf("%s: %s", uri, doc.Err)
	}

	s.mu.Lock()
	s.Documents[uri] = doc
	s.mu.Unlock()
	return doc
}

// Document returns the open document for uri, or nil.
func (s *Server) Document(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Documents[uri]
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, doc *Document) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: Diagnostics(doc),
	})
}

// Diagnostics converts the document's parse error, if any, into protocol
// diagnostics. A document without errors yields an empty, non-nil slice so
// the client clears stale markers.
func Diagnostics(doc *Document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.Err == nil {
		return diagnostics
	}

	severity := protocol.DiagnosticSeverityError
	source := serverName
	d := protocol.Diagnostic{
		Severity: &severity,
		Source:   &source,
		Message:  doc.Err.Error(),
	}

	var derr *diag.Error
	if errors.As(doc.Err, &derr) {
		d.Range = toRange(doc.Source, derr.Span)
		d.Code = &protocol.IntegerOrString{Value: string(derr.Code)}
		d.Message = derr.Message
		if derr.Details != "" {
			d.Message += "\n" + derr.Details
		}
	}
	return append(diagnostics, d)
}

func toRange(src *diag.Source, sp span.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(src, sp.Start),
		End:   toPosition(src, sp.Stop),
	}
}

func toPosition(src *diag.Source, offset int) protocol.Position {
	line, character := src.UTF16Position(offset)
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(character)}
}

func toOffset(src *diag.Source, pos protocol.Position) int {
	return src.UTF16Offset(int(pos.Line), int(pos.Character))
}

// uriToPath converts a file URI to a path. Other URIs are returned as is.
func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}
	return u.Path
}

// unitName names the parsed unit after the file without its extension.
func unitName(uri string) string {
	base := filepath.Base(uriToPath(uri))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

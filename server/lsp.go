package server

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/zerustech/string/codespace"
	"github.com/zerustech/string/inspect"

	_ "github.com/tliron/commonlog/simple"
)

const lspName = "zstr-lsp"

// LspServer surfaces code point reports as editor features: hover shows
// the report for the character or U+ literal under the cursor, completion
// offers plane names, references finds other occurrences of a code point,
// and diagnostics flag noncharacters in the text.
type LspServer struct {
	mu   sync.Mutex
	docs map[string]string // URI → full document content

	handler protocol.Handler
	server  *glspserver.Server
	version string
}

// NewLSP creates a new LSP server.
func NewLSP() *LspServer {
	s := &LspServer{
		docs:    make(map[string]string),
		version: "0.1.0",
	}

	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentCompletion: s.textDocumentCompletion,
		TextDocumentHover:      s.textDocumentHover,
		TextDocumentReferences: s.textDocumentReferences,
	}

	s.server = glspserver.NewServer(&s.handler, lspName, false)

	return s
}

// Run starts the LSP server on stdio. Blocks until the client disconnects.
func (s *LspServer) Run() error {
	return s.server.RunStdio()
}

// --- LSP lifecycle handlers ---

func (s *LspServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	commonlog.NewInfoMessage(0, "Zerus string LSP initializing")

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"U", "+"},
	}

	capabilities.HoverProvider = true
	capabilities.ReferencesProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lspName,
			Version: &s.version,
		},
	}, nil
}

func (s *LspServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *LspServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *LspServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// --- Document synchronization ---

func (s *LspServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	text := params.TextDocument.Text

	s.mu.Lock()
	s.docs[string(uri)] = text
	s.mu.Unlock()

	s.publishDiagnostics(ctx, uri, text)
	return nil
}

func (s *LspServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	// With Full sync, the last change event contains the full text
	if len(params.ContentChanges) > 0 {
		last := params.ContentChanges[len(params.ContentChanges)-1]
		if whole, ok := last.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.mu.Lock()
			s.docs[string(uri)] = whole.Text
			text := whole.Text
			s.mu.Unlock()

			s.publishDiagnostics(ctx, uri, text)
		}
	}
	return nil
}

func (s *LspServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	delete(s.docs, string(uri))
	s.mu.Unlock()

	// Clear diagnostics for the closed document
	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// --- Language features ---

func (s *LspServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := params.TextDocument.URI
	pos := params.Position

	s.mu.Lock()
	text, ok := s.docs[string(uri)]
	s.mu.Unlock()

	if !ok {
		return nil, nil
	}

	prefix := extractPrefix(text, pos)
	if prefix == "" {
		return nil, nil
	}

	return complete(prefix), nil
}

func (s *LspServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI
	pos := params.Position

	s.mu.Lock()
	text, ok := s.docs[string(uri)]
	s.mu.Unlock()

	if !ok {
		return nil, nil
	}

	cp, ok := codePointAt(text, pos)
	if !ok {
		return nil, nil
	}

	return hoverReport(cp), nil
}

func (s *LspServer) textDocumentReferences(ctx *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	uri := params.TextDocument.URI
	pos := params.Position

	s.mu.Lock()
	text, ok := s.docs[string(uri)]
	s.mu.Unlock()

	if !ok {
		return nil, nil
	}

	cp, ok := codePointAt(text, pos)
	if !ok {
		return nil, nil
	}

	var locations []protocol.Location
	for lineNo, line := range strings.Split(text, "\n") {
		col := 0
		for _, r := range line {
			width := utf16.RuneLen(r)
			if r == cp {
				locations = append(locations, protocol.Location{
					URI: uri,
					Range: protocol.Range{
						Start: protocol.Position{Line: protocol.UInteger(lineNo), Character: protocol.UInteger(col)},
						End:   protocol.Position{Line: protocol.UInteger(lineNo), Character: protocol.UInteger(col + width)},
					},
				})
			}
			col += width
		}
	}

	return locations, nil
}

// complete offers named planes whose alias or name matches the prefix, or
// plane start notations when the prefix is already a U+ literal.
func complete(prefix string) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	upperPrefix := strings.ToUpper(prefix)

	if strings.HasPrefix(upperPrefix, "U+") {
		for _, p := range codespace.Planes() {
			if p.Name == "" {
				continue
			}
			label := inspect.Notation(p.Low)
			if !strings.HasPrefix(label, upperPrefix) {
				continue
			}
			kind := protocol.CompletionItemKindValue
			detail := fmt.Sprintf("%s (%s)", p.Name, p.Alias)
			labelCopy := label
			items = append(items, protocol.CompletionItem{
				Label:      label,
				Kind:       &kind,
				Detail:     &detail,
				InsertText: &labelCopy,
			})
		}
		return items
	}

	for _, p := range codespace.Planes() {
		if p.Alias == "" {
			continue
		}
		if !strings.HasPrefix(p.Alias, upperPrefix) && !strings.HasPrefix(strings.ToUpper(p.Name), upperPrefix) {
			continue
		}
		kind := protocol.CompletionItemKindConstant
		alias := p.Alias
		detail := fmt.Sprintf("%s (U+%04X..U+%04X)", p.Name, p.Low, p.High)
		items = append(items, protocol.CompletionItem{
			Label:      alias,
			Kind:       &kind,
			Detail:     &detail,
			InsertText: &alias,
		})
	}

	return items
}

func hoverReport(cp rune) *protocol.Hover {
	report, err := inspect.Inspect(cp)
	if err != nil {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", report.Notation)
	fmt.Fprintf(&b, "- Category: %s\n", report.Category)
	fmt.Fprintf(&b, "- Plane: %d", report.Plane)
	if report.PlaneName != "" {
		fmt.Fprintf(&b, " (%s, %s)", report.PlaneName, report.PlaneAlias)
	}
	b.WriteString("\n")
	if report.PrivateUse {
		b.WriteString("- Private use\n")
	}
	fmt.Fprintf(&b, "- UTF-8: `%s`\n", report.UTF8)
	if report.UTF16 != "" {
		fmt.Fprintf(&b, "- UTF-16: `%s`\n", report.UTF16)
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: b.String(),
		},
	}
}

// --- Diagnostics ---

func (s *LspServer) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: noncharacterDiagnostics(text),
	})
}

// noncharacterDiagnostics flags every noncharacter code point in text.
func noncharacterDiagnostics(text string) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic
	severity := protocol.DiagnosticSeverityWarning
	source := lspName

	for lineNo, line := range strings.Split(text, "\n") {
		col := 0
		for _, r := range line {
			width := utf16.RuneLen(r)
			if codespace.IsNoncharacter(r) {
				diagnostics = append(diagnostics, protocol.Diagnostic{
					Range: protocol.Range{
						Start: protocol.Position{Line: protocol.UInteger(lineNo), Character: protocol.UInteger(col)},
						End:   protocol.Position{Line: protocol.UInteger(lineNo), Character: protocol.UInteger(col + width)},
					},
					Severity: &severity,
					Source:   &source,
					Message:  fmt.Sprintf("%s is a noncharacter", inspect.Notation(r)),
				})
			}
			col += width
		}
	}

	return diagnostics
}

// --- Text extraction helpers ---

// codePointAt resolves the code point under the cursor: a U+XXXX or 0x
// literal when the cursor sits on one, otherwise the literal character.
func codePointAt(text string, pos protocol.Position) (rune, bool) {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return 0, false
	}
	line := lines[pos.Line]
	col := byteColumn(line, int(pos.Character))

	if tok := extractNotation(line, col); tok != "" {
		upper := strings.ToUpper(tok)
		if strings.HasPrefix(upper, "U+") || strings.HasPrefix(upper, "0X") {
			if cp, err := inspect.ParseNotation(tok); err == nil {
				return cp, true
			}
		}
	}

	if col >= len(line) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(line[col:])
	if r == utf8.RuneError {
		return 0, false
	}
	return r, true
}

// byteColumn converts a UTF-16 column, as LSP positions count them, to a
// byte offset within line.
func byteColumn(line string, character int) int {
	col := 0
	for i, r := range line {
		if col >= character {
			return i
		}
		col += utf16.RuneLen(r)
	}
	return len(line)
}

// extractNotation returns the code point literal around the cursor, if any.
func extractNotation(line string, col int) string {
	if col >= len(line) {
		col = len(line) - 1
	}
	if col < 0 || !isNotationByte(line[col]) {
		return ""
	}

	start := col
	for start > 0 && isNotationByte(line[start-1]) {
		start--
	}
	end := col + 1
	for end < len(line) && isNotationByte(line[end]) {
		end++
	}

	return line[start:end]
}

// extractPrefix returns the token fragment before the cursor for completion.
func extractPrefix(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	col := byteColumn(line, int(pos.Character))

	start := col
	for start > 0 && isPrefixByte(line[start-1]) {
		start--
	}

	if start == col {
		return ""
	}

	return line[start:col]
}

func isNotationByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		return true
	}
	return c == '+' || c == 'u' || c == 'U' || c == 'x' || c == 'X'
}

func isPrefixByte(c byte) bool {
	return c == '+' || c == '-' ||
		c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func boolPtr(b bool) *bool {
	return &b
}

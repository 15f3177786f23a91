package server

import (
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zerustech/string/catalog"
)

// Server exposes the codespace and transcoding services over the connect
// protocol. JSON and CBOR are served on the same handlers, selected by
// content type, and Prometheus metrics are mounted on /metrics.
type Server struct {
	mux  *http.ServeMux
	http *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	store *catalog.Store
}

// WithCatalog makes the codespace service answer plane and noncharacter
// queries from the given catalog instead of the in-memory table.
func WithCatalog(store *catalog.Store) ServerOption {
	return func(c *serverConfig) { c.store = store }
}

// New creates a Server with all services mounted.
func New(opts ...ServerOption) *Server {
	cfg := &serverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	codespaceSvc := NewCodespaceService(cfg.store)
	transcodeSvc := NewTranscodingService()

	handlerOpts := connect.WithOptions(
		connect.WithCodec(jsonCodec{}),
		connect.WithCodec(cborCodec{}),
		connect.WithInterceptors(MetricsInterceptor()),
	)

	mux := http.NewServeMux()
	mux.Handle(CodespaceCountsProcedure, connect.NewUnaryHandler(CodespaceCountsProcedure, codespaceSvc.Counts, handlerOpts))
	mux.Handle(CodespaceGetPlaneProcedure, connect.NewUnaryHandler(CodespaceGetPlaneProcedure, codespaceSvc.GetPlane, handlerOpts))
	mux.Handle(CodespaceListPlanesProcedure, connect.NewUnaryHandler(CodespaceListPlanesProcedure, codespaceSvc.ListPlanes, handlerOpts))
	mux.Handle(CodespaceListNoncharactersProcedure, connect.NewUnaryHandler(CodespaceListNoncharactersProcedure, codespaceSvc.ListNoncharacters, handlerOpts))
	mux.Handle(CodespaceInspectProcedure, connect.NewUnaryHandler(CodespaceInspectProcedure, codespaceSvc.Inspect, handlerOpts))
	mux.Handle(TranscodingUTF8Procedure, connect.NewUnaryHandler(TranscodingUTF8Procedure, transcodeSvc.ConvertToUTF8, handlerOpts))
	mux.Handle(TranscodingUTF16Procedure, connect.NewUnaryHandler(TranscodingUTF16Procedure, transcodeSvc.ConvertToUTF16, handlerOpts))
	mux.Handle(TranscodingTranscodeProcedure, connect.NewUnaryHandler(TranscodingTranscodeProcedure, transcodeSvc.Transcode, handlerOpts))
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{mux: mux}
}

// Handler returns the root HTTP handler, for mounting under test servers.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the HTTP server on the given address.
// The address should be in the form "host:port" or ":port".
func (s *Server) ListenAndServe(addr string) error {
	fmt.Printf("Zerus string server listening on %s\n", addr)
	fmt.Printf("  Connect (HTTP/JSON): http://%s%s\n", addr, TranscodingTranscodeProcedure)
	fmt.Printf("  Metrics:             http://%s/metrics\n", addr)
	s.http = &http.Server{Addr: addr, Handler: s.mux}
	return s.http.ListenAndServe()
}

// Stop shuts down the server.
func (s *Server) Stop() error {
	if s.http != nil {
		return s.http.Close()
	}
	return nil
}

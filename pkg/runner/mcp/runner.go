package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/celexta/pkg/app"
)

// Transport names how MCP clients reach the server.
type Transport string

const (
	// TransportStdio talks MCP over the process' stdin and stdout.
	TransportStdio Transport = "stdio"
	// TransportHTTP serves the streamable HTTP transport.
	TransportHTTP Transport = "http"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	defaultEndpoint = "/mcp"
	shutdownTimeout = 5 * time.Second
)

// ParseTransport converts a flag value to a Transport. Empty means stdio.
func ParseTransport(raw string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(raw))); t {
	case "":
		return TransportStdio, nil
	case TransportStdio, TransportHTTP:
		return t, nil
	default:
		return "", fmt.Errorf("mcp: unknown transport %q, expected stdio or http", raw)
	}
}

// Runner serves the catalog and the selection lists to MCP clients until
// ctx is done or stdin closes.
type Runner struct {
	Service   *app.Service
	Version   string
	Transport Transport

	// HTTP only.
	Addr     string
	Endpoint string
	CertFile string
	KeyFile  string
	// Listening receives the client URL once the HTTP listener is bound.
	Listening func(url string)

	Log *slog.Logger
}

func (r Runner) logger() *slog.Logger {
	if r.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Log
}

func (r Runner) newServer() *server.MCPServer {
	version := r.Version
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		"celexta",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Search the author catalog and manage selection lists. Search first, then select records by index."),
		server.WithRecovery(),
	)
	svc := NewService(r.Service)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil || r.Service.Persistence == nil {
		return errors.New("mcp: selection store required")
	}
	srv := r.newServer()

	switch r.Transport {
	case "", TransportStdio:
		r.logger().Info("mcp: serving on stdio")
		return server.ServeStdio(srv)
	case TransportHTTP:
		return r.serveHTTP(ctx, srv)
	default:
		return fmt.Errorf("mcp: unknown transport %q", r.Transport)
	}
}

// endpoint is the HTTP path clients post to, always rooted.
func (r Runner) endpoint() string {
	path := strings.TrimSpace(r.Endpoint)
	if path == "" {
		return defaultEndpoint
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func (r Runner) tls() (bool, error) {
	switch {
	case r.CertFile == "" && r.KeyFile == "":
		return false, nil
	case r.CertFile == "" || r.KeyFile == "":
		return false, errors.New("mcp: tls needs both a certificate and a key")
	default:
		return true, nil
	}
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	useTLS, err := r.tls()
	if err != nil {
		return err
	}
	addr := r.Addr
	if addr == "" {
		addr = defaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mcp: listen %s: %w", addr, err)
	}

	path := r.endpoint()
	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux}

	url := clientURL(ln.Addr(), path, useTLS)
	r.logger().Info("mcp: serving http", "url", url)
	if r.Listening != nil {
		r.Listening(url)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if useTLS {
		err = httpSrv.ServeTLS(ln, r.CertFile, r.KeyFile)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// clientURL is the address a local client should use. Wildcard binds are
// reported as loopback.
func clientURL(a net.Addr, path string, useTLS bool) string {
	scheme := "http"
	if useTLS {
		scheme = "https"
	}
	tcp, ok := a.(*net.TCPAddr)
	if !ok {
		return scheme + "://" + a.String() + path
	}
	host := "127.0.0.1"
	if tcp.IP != nil && !tcp.IP.IsUnspecified() {
		host = tcp.IP.String()
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, fmt.Sprint(tcp.Port)), path)
}

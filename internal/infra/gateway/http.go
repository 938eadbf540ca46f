package gateway

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/telemetry"
)

type HTTPOptions struct {
	Addr         string
	Path         string
	Token        string
	JSONResponse bool
}

func (o HTTPOptions) withDefaults() HTTPOptions {
	if strings.TrimSpace(o.Addr) == "" {
		o.Addr = domain.DefaultHTTPListenAddress
	}
	if strings.TrimSpace(o.Path) == "" {
		o.Path = domain.DefaultHTTPPath
	}
	if !strings.HasPrefix(o.Path, "/") {
		o.Path = "/" + o.Path
	}
	return o
}

// ValidateHTTPOptions rejects unauthenticated binds to non-loopback addresses.
func ValidateHTTPOptions(opts HTTPOptions) error {
	opts = opts.withDefaults()
	if !IsLocalhostAddr(opts.Addr) && strings.TrimSpace(opts.Token) == "" {
		return errors.New("http token is required when binding to non-localhost address")
	}
	return nil
}

// IsLocalhostAddr reports whether addr binds loopback only. A bare ":port" listens on every interface.
func IsLocalhostAddr(addr string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return true
	}
	host := addr
	if strings.Contains(addr, ":") {
		if h, _, err := net.SplitHostPort(addr); err == nil {
			host = h
		}
	}
	host = strings.TrimSpace(host)
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback()
}

// HTTPHandler mounts the streamable HTTP transport at opts.Path.
func (g *Gateway) HTTPHandler(opts HTTPOptions) http.Handler {
	opts = opts.withDefaults()
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return g.server
	}, &mcp.StreamableHTTPOptions{JSONResponse: opts.JSONResponse})

	mux := http.NewServeMux()
	mux.Handle(opts.Path, bearerMiddleware(opts.Token, streamable))
	return mux
}

// RunStreamableHTTP serves the protocol over streamable HTTP until ctx is canceled.
func (g *Gateway) RunStreamableHTTP(ctx context.Context, opts HTTPOptions) error {
	opts = opts.withDefaults()
	if err := ValidateHTTPOptions(opts); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              opts.Addr,
		Handler:           g.HTTPHandler(opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		g.logger.Info("gateway starting",
			telemetry.EventField(telemetry.EventServerStart),
			telemetry.TransportField("streamable-http"),
			zap.String("addr", opts.Addr),
			zap.String("path", opts.Path),
			zap.Int("tools", g.tools.Len()),
			zap.String("tools_etag", g.toolsETag),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("streamable http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		g.logger.Info("gateway stopped", telemetry.EventField(telemetry.EventServerStop))
		return nil
	}
}

func bearerMiddleware(token string, next http.Handler) http.Handler {
	token = strings.TrimSpace(token)
	if token == "" {
		return next
	}
	expected := []byte("Bearer " + token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := []byte(r.Header.Get("Authorization"))
		if subtle.ConstantTimeCompare(got, expected) != 1 {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stake-plus/qotd/src/actions/core"
	"github.com/stake-plus/qotd/src/config"
	"go.uber.org/zap"
)

var _ core.Module = (*Module)(nil)

// Module runs the admin API under the module manager.
type Module struct {
	srv  *http.Server
	log  *zap.Logger
	done chan struct{}
	addr string
}

// NewModule validates cfg and prepares the server without listening.
func NewModule(cfg config.APIConfig, deps Deps) (*Module, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("api: jwt secret is not configured")
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	deps.Secret = []byte(cfg.JWTSecret)
	deps.AllowedOrigins = cfg.AllowedOrigins
	deps.Log = deps.Log.Named("api")

	return &Module{
		srv: &http.Server{
			Addr:              cfg.Listen,
			Handler:           NewRouter(deps),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
		log: deps.Log,
	}, nil
}

func (m *Module) Name() string { return "api" }

// Addr is the bound listen address once started.
func (m *Module) Addr() string { return m.addr }

// Start binds the listener synchronously so port errors fail startup.
func (m *Module) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", m.srv.Addr)
	if err != nil {
		return fmt.Errorf("api: listen %s: %w", m.srv.Addr, err)
	}
	m.addr = ln.Addr().String()
	m.done = make(chan struct{})
	go func() {
		defer close(m.done)
		if err := m.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.log.Error("api: server stopped", zap.Error(err))
		}
	}()
	m.log.Info("api: listening", zap.String("addr", m.addr))
	return nil
}

func (m *Module) Stop(ctx context.Context) {
	if m.done == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := m.srv.Shutdown(shutdownCtx); err != nil {
		m.log.Warn("api: shutdown", zap.Error(err))
	}
	<-m.done
	m.done = nil
}

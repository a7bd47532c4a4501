// Package core defines the module lifecycle shared by the bot and the API.
package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrStarted is returned when the manager is modified or started twice.
var ErrStarted = errors.New("core: manager already started")

// Module is a long-running component with a start/stop lifecycle.
type Module interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context)
}

// Manager starts modules in registration order and stops them in reverse.
type Manager struct {
	log     *zap.Logger
	mu      sync.Mutex
	modules []Module
	running []Module
}

func NewManager(log *zap.Logger, mods ...Module) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{log: log}
	for _, mod := range mods {
		if mod != nil {
			m.modules = append(m.modules, mod)
		}
	}
	return m
}

// Add registers a module. It fails once Start has been called.
func (m *Manager) Add(mod Module) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running != nil {
		return ErrStarted
	}
	if mod != nil {
		m.modules = append(m.modules, mod)
	}
	return nil
}

// Names lists registered modules in start order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.modules))
	for _, mod := range m.modules {
		names = append(names, mod.Name())
	}
	return names
}

// Start starts every module. On failure the modules already started are
// stopped and the error is returned.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running != nil {
		return ErrStarted
	}

	running := make([]Module, 0, len(m.modules))
	for _, mod := range m.modules {
		if err := mod.Start(ctx); err != nil {
			stopAll(ctx, m.log, running)
			return fmt.Errorf("module %s failed: %w", mod.Name(), err)
		}
		m.log.Info("module started", zap.String("module", mod.Name()))
		running = append(running, mod)
	}
	m.running = running
	return nil
}

// Stop stops running modules in reverse order. It is safe to call more than once.
func (m *Manager) Stop(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stopAll(ctx, m.log, m.running)
	m.running = nil
}

func stopAll(ctx context.Context, log *zap.Logger, mods []Module) {
	for i := len(mods) - 1; i >= 0; i-- {
		mods[i].Stop(ctx)
		log.Info("module stopped", zap.String("module", mods[i].Name()))
	}
}

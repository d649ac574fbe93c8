package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ShutdownFunc describes a graceful shutdown callback.
type ShutdownFunc func(ctx context.Context) error

// RunFunc is a long-running component. It returns when ctx is cancelled or it fails.
type RunFunc func(ctx context.Context) error

type hook struct {
	name string
	fn   ShutdownFunc
}

// Manager supervises background components and runs shutdown hooks in reverse
// registration order. A failing component cancels the whole process.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	mu    sync.Mutex
	hooks []hook
}

// New creates a manager whose Context is cancelled on shutdown or on the first component failure.
func New(parent context.Context, timeout time.Duration, logger *zap.Logger) *Manager {
	if parent == nil {
		parent = context.Background()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	group, gctx := errgroup.WithContext(ctx)
	return &Manager{
		timeout: timeout,
		logger:  logger,
		ctx:     gctx,
		cancel:  cancel,
		group:   group,
	}
}

// Context is done once shutdown starts.
func (m *Manager) Context() context.Context { return m.ctx }

// Register adds a shutdown hook.
func (m *Manager) Register(name string, fn ShutdownFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, hook{name: name, fn: fn})
}

// Go runs fn in the background. Returning a non-nil error other than context.Canceled
// stops the process.
func (m *Manager) Go(name string, fn RunFunc) {
	m.group.Go(func() error {
		m.logger.Info("component started", zap.String("component", name))
		err := fn(m.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			m.logger.Error("component failed", zap.String("component", name), zap.Error(err))
			return err
		}
		return nil
	})
}

// Wait blocks until a component fails or the manager context ends, and returns the failure.
func (m *Manager) Wait() error {
	<-m.ctx.Done()
	m.cancel()
	return m.group.Wait()
}

// Shutdown cancels the background components and executes the hooks within the timeout.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.cancel()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	var result error
	for i := len(m.hooks) - 1; i >= 0; i-- {
		h := m.hooks[i]
		if err := h.fn(ctx); err != nil {
			m.logger.Error("shutdown hook failed", zap.String("component", h.name), zap.Error(err))
			result = errors.Join(result, err)
			continue
		}
		m.logger.Info("component stopped", zap.String("component", h.name))
	}
	return result
}

// Listen cancels the manager context on SIGTERM or SIGINT.
func (m *Manager) Listen() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			m.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
			m.cancel()
		case <-m.ctx.Done():
		}
	}()
}

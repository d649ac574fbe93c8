package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Probe checks one dependency. A nil error means healthy.
type Probe func(ctx context.Context) error

func PoolProbe(pool *pgxpool.Pool) Probe {
	if pool == nil {
		return nil
	}
	return pool.Ping
}

func RedisProbe(client redislib.Cmdable) Probe {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) error { return client.Ping(ctx).Err() }
}

// DeadLetterCounter reports the size of the dead letter journal.
type DeadLetterCounter interface {
	Size() (int, error)
}

type Monitor struct {
	postgres    Probe
	redis       Probe
	deadLetters DeadLetterCounter

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
	logger   *zap.Logger
}

func New(postgres, redis Probe, deadLetters DeadLetterCounter, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		postgres:    postgres,
		redis:       redis,
		deadLetters: deadLetters,
		interval:    interval,
		stopCh:      make(chan struct{}),
		done:        make(chan struct{}),
		logger:      logger,
	}
}

// Start runs a first check synchronously so the status is populated before serving.
func (m *Monitor) Start() {
	m.Refresh()
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		<-m.done
	})
}

func (m *Monitor) IsOnline() bool {
	return m.GetStatus().Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	defer close(m.done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) Refresh() {
	dlOK, dlCount := m.checkDeadLetters()
	status := Status{
		PostgreSQL:      m.check("postgresql", m.postgres, 3*time.Second),
		Redis:           m.check("redis", m.redis, 2*time.Second),
		DeadLetters:     dlOK,
		DeadLetterCount: dlCount,
		LastCheck:       time.Now().UTC(),
	}

	m.mu.Lock()
	previous := m.status
	m.status = status
	m.mu.Unlock()

	if !previous.LastCheck.IsZero() && previous.Healthy() != status.Healthy() {
		m.logger.Warn("dependency health changed",
			zap.Bool("postgresql", status.PostgreSQL),
			zap.Bool("redis", status.Redis),
		)
	}
}

func (m *Monitor) check(name string, probe Probe, timeout time.Duration) bool {
	if probe == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := probe(ctx); err != nil {
		m.logger.Debug("health probe failed", zap.String("dependency", name), zap.Error(err))
		return false
	}
	return true
}

func (m *Monitor) checkDeadLetters() (bool, int) {
	if m.deadLetters == nil {
		return false, 0
	}
	size, err := m.deadLetters.Size()
	if err != nil {
		m.logger.Warn("dead letter size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}

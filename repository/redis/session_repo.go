package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

const sessionPrefix = "session:"

type sessionRepository struct {
	client redislib.Cmdable
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionRepository reads sessions the auth service stores as JSON under "session:<id>".
// The key TTL is authoritative for expiry, so Extend keeps a session alive.
func NewSessionRepository(client redislib.Cmdable, ttl time.Duration) repository.SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &sessionRepository{client: client, ttl: ttl, now: time.Now}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	key := sessionPrefix + id

	var payload *redislib.StringCmd
	var remaining *redislib.DurationCmd
	_, err := r.client.Pipelined(ctx, func(pipe redislib.Pipeliner) error {
		payload = pipe.Get(ctx, key)
		remaining = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil && !errors.Is(err, redislib.Nil) {
		return nil, domain.WrapError(domain.ErrCodeInternal, "session lookup failed", err)
	}

	raw, err := payload.Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, domain.WrapError(domain.ErrCodeInternal, "session lookup failed", err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "session payload is corrupt", err)
	}
	if session.ID == "" {
		session.ID = id
	}
	// PTTL is -1 for keys without expiry and -2 once the key vanished between the two commands.
	if ttl := remaining.Val(); ttl > 0 {
		session.ExpiresAt = r.now().Add(ttl).UTC()
	}
	return &session, nil
}

func (r *sessionRepository) Extend(ctx context.Context, id string, ttlSeconds int) error {
	duration := time.Duration(ttlSeconds) * time.Second
	if duration <= 0 {
		duration = r.ttl
	}
	ok, err := r.client.Expire(ctx, sessionPrefix+id, duration).Result()
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "session extend failed", err)
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

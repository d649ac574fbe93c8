package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

const notificationColumns = `id, user_id, type, title, body, data, created_at, read_at`

type notificationRepository struct {
	db *DB
}

// NewNotificationRepository returns a Postgres-backed NotificationRepository.
func NewNotificationRepository(db *DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if n == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "notification.create", func(ctx context.Context, q Querier) error {
		query := `INSERT INTO notifications (` + notificationColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		_, err := q.Exec(ctx, query, n.ID(), n.UserID(), string(n.Type()), n.Title(), n.Body(), marshalData(n.Data()), n.CreatedAt(), nullTime(n.ReadAt()))
		return err
	})
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	row := r.db.conn(ctx).QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
	n, err := scanNotification(row)
	if err != nil {
		return nil, notFound("notification.get", err, domain.ErrNotificationNotFound)
	}
	return n, nil
}

func (r *notificationRepository) List(ctx context.Context, filter repository.NotificationFilter, page domain.PageRequest) (domain.Page[*domain.Notification], error) {
	const where = `user_id = $1 AND (NOT $2 OR read_at IS NULL)`
	req, limit, offset := pageArgs(page)
	q := r.db.conn(ctx)

	total, err := count(ctx, q, `SELECT COUNT(*) FROM notifications WHERE `+where, filter.UserID, filter.UnreadOnly)
	if err != nil {
		return domain.Page[*domain.Notification]{}, mapError("notification.list", err)
	}
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE ` + where + `
	ORDER BY created_at DESC
	LIMIT $3 OFFSET $4`
	rows, err := q.Query(ctx, query, filter.UserID, filter.UnreadOnly, limit, offset)
	if err != nil {
		return domain.Page[*domain.Notification]{}, mapError("notification.list", err)
	}
	items, err := collect(rows, func(rows pgx.Rows) (*domain.Notification, error) { return scanNotification(rows) })
	if err != nil {
		return domain.Page[*domain.Notification]{}, mapError("notification.list", err)
	}
	return domain.Page[*domain.Notification]{Items: items, Total: total, Request: req}, nil
}

func (r *notificationRepository) Update(ctx context.Context, n *domain.Notification) error {
	if n == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "notification.update", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `UPDATE notifications SET read_at = $2 WHERE id = $1`, n.ID(), nullTime(n.ReadAt()))
		if err != nil {
			return err
		}
		return expectOne(tag, domain.ErrNotificationNotFound)
	})
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, "notification.delete", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return expectOne(tag, domain.ErrNotificationNotFound)
	})
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	var updated int
	err := r.db.write(ctx, "notification.mark_all_read", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `UPDATE notifications SET read_at = $2 WHERE user_id = $1 AND read_at IS NULL`, userID, domain.Touch())
		if err != nil {
			return err
		}
		updated = int(tag.RowsAffected())
		return nil
	})
	return updated, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	total, err := count(ctx, r.db.conn(ctx), `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL`, userID)
	if err != nil {
		return 0, mapError("notification.count_unread", err)
	}
	return total, nil
}

func scanNotification(row scanner) (*domain.Notification, error) {
	var (
		id, userID, kind, title, body string
		data                          []byte
		createdAt                     time.Time
		readAt                        *time.Time
	)
	if err := row.Scan(&id, &userID, &kind, &title, &body, &data, &createdAt, &readAt); err != nil {
		return nil, err
	}
	return domain.ReconstituteNotification(id, userID, domain.NotificationType(kind), title, body, unmarshalData(data), createdAt, readAt), nil
}

type preferencesRepository struct {
	db *DB
}

// NewPreferencesRepository returns a Postgres-backed PreferencesRepository.
func NewPreferencesRepository(db *DB) repository.PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) Get(ctx context.Context, userID string) (domain.NotificationPreferences, bool, error) {
	const query = `
	SELECT user_id, enabled, friend_requests, messages, rewards, updated_at
	FROM notification_preferences
	WHERE user_id = $1
	`
	var p domain.NotificationPreferences
	err := r.db.conn(ctx).QueryRow(ctx, query, userID).Scan(&p.UserID, &p.Enabled, &p.FriendRequests, &p.Messages, &p.Rewards, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.NotificationPreferences{}, false, nil
		}
		return domain.NotificationPreferences{}, false, mapError("preferences.get", err)
	}
	return p, true, nil
}

func (r *preferencesRepository) Upsert(ctx context.Context, p *domain.NotificationPreferences) error {
	if p == nil || p.UserID == "" {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "preferences.upsert", func(ctx context.Context, q Querier) error {
		const query = `
		INSERT INTO notification_preferences (user_id, enabled, friend_requests, messages, rewards, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET enabled = EXCLUDED.enabled,
			friend_requests = EXCLUDED.friend_requests,
			messages = EXCLUDED.messages,
			rewards = EXCLUDED.rewards,
			updated_at = NOW()
		RETURNING updated_at
		`
		return q.QueryRow(ctx, query, p.UserID, p.Enabled, p.FriendRequests, p.Messages, p.Rewards).Scan(&p.UpdatedAt)
	})
}

type pushTokenRepository struct {
	db *DB
}

// NewPushTokenRepository returns a Postgres-backed PushTokenRepository.
func NewPushTokenRepository(db *DB) repository.PushTokenRepository {
	return &pushTokenRepository{db: db}
}

func (r *pushTokenRepository) ListByUser(ctx context.Context, userID string) ([]domain.PushToken, error) {
	const query = `
	SELECT id, user_id, token, platform, created_at
	FROM push_tokens
	WHERE user_id = $1
	ORDER BY created_at
	`
	rows, err := r.db.conn(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, mapError("push_token.list", err)
	}
	tokens, err := collect(rows, func(rows pgx.Rows) (domain.PushToken, error) {
		var (
			t        domain.PushToken
			platform string
		)
		err := rows.Scan(&t.ID, &t.UserID, &t.Token, &platform, &t.CreatedAt)
		t.Platform = domain.PushPlatform(platform)
		return t, err
	})
	if err != nil {
		return nil, mapError("push_token.list", err)
	}
	return tokens, nil
}

// Register stores the token. A token moving to another account is reassigned.
func (r *pushTokenRepository) Register(ctx context.Context, t *domain.PushToken) error {
	if t == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "push_token.register", func(ctx context.Context, q Querier) error {
		const query = `
		INSERT INTO push_tokens (id, user_id, token, platform, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (token) DO UPDATE
		SET user_id = EXCLUDED.user_id,
			platform = EXCLUDED.platform
		`
		_, err := q.Exec(ctx, query, t.ID, t.UserID, t.Token, string(t.Platform), t.CreatedAt)
		return err
	})
}

func (r *pushTokenRepository) Delete(ctx context.Context, userID, token string) error {
	return r.db.write(ctx, "push_token.delete", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM push_tokens WHERE user_id = $1 AND token = $2`, userID, token)
		if err != nil {
			return err
		}
		return expectOne(tag, domain.ErrPushTokenNotFound)
	})
}

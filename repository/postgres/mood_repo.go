package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

const moodColumns = `id, user_id, emotion, intensity, note, logged_at, updated_at`

type moodRepository struct {
	db *DB
}

// NewMoodRepository returns a Postgres-backed MoodRepository.
func NewMoodRepository(db *DB) repository.MoodRepository {
	return &moodRepository{db: db}
}

func (r *moodRepository) Create(ctx context.Context, m *domain.MoodEntry) error {
	if m == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "mood.create", func(ctx context.Context, q Querier) error {
		query := `INSERT INTO mood_entries (` + moodColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := q.Exec(ctx, query, m.ID(), m.UserID(), string(m.Emotion()), m.Intensity(), m.Note(), m.LoggedAt(), m.UpdatedAt())
		return err
	})
}

func (r *moodRepository) GetByID(ctx context.Context, id string) (*domain.MoodEntry, error) {
	m, err := scanMood(r.db.conn(ctx).QueryRow(ctx, `SELECT `+moodColumns+` FROM mood_entries WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("mood.get", err, domain.ErrMoodNotFound)
	}
	return m, nil
}

func (r *moodRepository) List(ctx context.Context, filter repository.MoodFilter, page domain.PageRequest) (domain.Page[*domain.MoodEntry], error) {
	const where = `user_id = $1
	AND ($2::timestamptz IS NULL OR logged_at >= $2)
	AND ($3::timestamptz IS NULL OR logged_at < $3)`
	req, limit, offset := pageArgs(page)
	q := r.db.conn(ctx)
	from, to := nullTime(filter.From), nullTime(filter.To)

	total, err := count(ctx, q, `SELECT COUNT(*) FROM mood_entries WHERE `+where, filter.UserID, from, to)
	if err != nil {
		return domain.Page[*domain.MoodEntry]{}, mapError("mood.list", err)
	}
	query := `SELECT ` + moodColumns + ` FROM mood_entries WHERE ` + where + `
	ORDER BY logged_at DESC
	LIMIT $4 OFFSET $5`
	rows, err := q.Query(ctx, query, filter.UserID, from, to, limit, offset)
	if err != nil {
		return domain.Page[*domain.MoodEntry]{}, mapError("mood.list", err)
	}
	items, err := collect(rows, func(rows pgx.Rows) (*domain.MoodEntry, error) { return scanMood(rows) })
	if err != nil {
		return domain.Page[*domain.MoodEntry]{}, mapError("mood.list", err)
	}
	return domain.Page[*domain.MoodEntry]{Items: items, Total: total, Request: req}, nil
}

func (r *moodRepository) Update(ctx context.Context, m *domain.MoodEntry) error {
	if m == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "mood.update", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `UPDATE mood_entries SET emotion = $2, intensity = $3, note = $4, updated_at = $5 WHERE id = $1`,
			m.ID(), string(m.Emotion()), m.Intensity(), m.Note(), m.UpdatedAt())
		if err != nil {
			return err
		}
		return expectOne(tag, domain.ErrMoodNotFound)
	})
}

func (r *moodRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, "mood.delete", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM mood_entries WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return expectOne(tag, domain.ErrMoodNotFound)
	})
}

func scanMood(row scanner) (*domain.MoodEntry, error) {
	var (
		id, userID, emotion, note string
		intensity                 int
		loggedAt, updatedAt       time.Time
	)
	if err := row.Scan(&id, &userID, &emotion, &intensity, &note, &loggedAt, &updatedAt); err != nil {
		return nil, err
	}
	return domain.ReconstituteMoodEntry(id, userID, domain.Emotion(emotion), intensity, note, loggedAt, updatedAt), nil
}

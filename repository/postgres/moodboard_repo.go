package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

const moodboardColumns = `id, owner_id, title, description, created_at, updated_at`

const pinsByMoodboards = `
	SELECT moodboard_id, id, kind, storage_key, image_url, color, caption, position, created_at
	FROM moodboard_pins
	WHERE moodboard_id = ANY($1)
	ORDER BY position
	`

type moodboardRepository struct {
	db *DB
}

// NewMoodboardRepository returns a Postgres-backed MoodboardRepository.
func NewMoodboardRepository(db *DB) repository.MoodboardRepository {
	return &moodboardRepository{db: db}
}

type moodboardRow struct {
	id, ownerID, title, description string
	createdAt, updatedAt            time.Time
}

type pinRow struct {
	moodboardID string
	domain.Pin
}

func (r *moodboardRepository) Create(ctx context.Context, m *domain.Moodboard) error {
	if m == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "moodboard.create", func(ctx context.Context, q Querier) error {
		query := `INSERT INTO moodboards (` + moodboardColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := q.Exec(ctx, query, m.ID(), m.OwnerID(), m.Title(), m.Description(), m.CreatedAt(), m.UpdatedAt()); err != nil {
			return err
		}
		return insertPins(ctx, q, m)
	})
}

func (r *moodboardRepository) GetByID(ctx context.Context, id string) (*domain.Moodboard, error) {
	q := r.db.conn(ctx)
	row, err := scanMoodboardRow(q.QueryRow(ctx, `SELECT `+moodboardColumns+` FROM moodboards WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("moodboard.get", err, domain.ErrMoodboardNotFound)
	}
	items, err := r.hydrate(ctx, q, []moodboardRow{row})
	if err != nil {
		return nil, mapError("moodboard.get", err)
	}
	return items[0], nil
}

func (r *moodboardRepository) ListForUser(ctx context.Context, ownerID string, page domain.PageRequest) (domain.Page[*domain.Moodboard], error) {
	req, limit, offset := pageArgs(page)
	q := r.db.conn(ctx)

	total, err := count(ctx, q, `SELECT COUNT(*) FROM moodboards WHERE owner_id = $1`, ownerID)
	if err != nil {
		return domain.Page[*domain.Moodboard]{}, mapError("moodboard.list", err)
	}
	query := `SELECT ` + moodboardColumns + ` FROM moodboards WHERE owner_id = $1
	ORDER BY updated_at DESC
	LIMIT $2 OFFSET $3`
	rows, err := q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return domain.Page[*domain.Moodboard]{}, mapError("moodboard.list", err)
	}
	roots, err := collect(rows, func(rows pgx.Rows) (moodboardRow, error) { return scanMoodboardRow(rows) })
	if err != nil {
		return domain.Page[*domain.Moodboard]{}, mapError("moodboard.list", err)
	}
	items, err := r.hydrate(ctx, q, roots)
	if err != nil {
		return domain.Page[*domain.Moodboard]{}, mapError("moodboard.list", err)
	}
	return domain.Page[*domain.Moodboard]{Items: items, Total: total, Request: req}, nil
}

// Update rewrites the root and replaces every pin row.
func (r *moodboardRepository) Update(ctx context.Context, m *domain.Moodboard) error {
	if m == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "moodboard.update", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `UPDATE moodboards SET title = $2, description = $3, updated_at = $4 WHERE id = $1`,
			m.ID(), m.Title(), m.Description(), m.UpdatedAt())
		if err != nil {
			return err
		}
		if err := expectOne(tag, domain.ErrMoodboardNotFound); err != nil {
			return err
		}
		if _, err := q.Exec(ctx, `DELETE FROM moodboard_pins WHERE moodboard_id = $1`, m.ID()); err != nil {
			return err
		}
		return insertPins(ctx, q, m)
	})
}

func (r *moodboardRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, "moodboard.delete", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM moodboards WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return expectOne(tag, domain.ErrMoodboardNotFound)
	})
}

func (r *moodboardRepository) hydrate(ctx context.Context, q Querier, roots []moodboardRow) ([]*domain.Moodboard, error) {
	ids := lo.Map(roots, func(row moodboardRow, _ int) string { return row.id })
	pins, err := loadChildren(ctx, q, pinsByMoodboards, ids, scanPinRow, func(p pinRow) string { return p.moodboardID })
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Moodboard, 0, len(roots))
	for _, row := range roots {
		ps := lo.Map(pins[row.id], func(p pinRow, _ int) domain.Pin { return p.Pin })
		out = append(out, domain.ReconstituteMoodboard(row.id, row.ownerID, row.title, row.description, ps, row.createdAt, row.updatedAt))
	}
	return out, nil
}

func insertPins(ctx context.Context, q Querier, m *domain.Moodboard) error {
	batch := newBulkInsert("moodboard_pins",
		"id", "moodboard_id", "kind", "storage_key", "image_url", "color", "caption", "position", "created_at")
	for _, p := range m.Pins() {
		batch.add(p.ID, m.ID(), string(p.Kind), nullString(p.StorageKey), nullString(p.ImageURL), nullString(string(p.Color)), p.Caption, p.Position, p.CreatedAt)
	}
	return batch.exec(ctx, q)
}

func scanMoodboardRow(row scanner) (moodboardRow, error) {
	var m moodboardRow
	err := row.Scan(&m.id, &m.ownerID, &m.title, &m.description, &m.createdAt, &m.updatedAt)
	return m, err
}

func scanPinRow(rows pgx.Rows) (pinRow, error) {
	var (
		p                           pinRow
		kind                        string
		storageKey, imageURL, color *string
	)
	if err := rows.Scan(&p.moodboardID, &p.ID, &kind, &storageKey, &imageURL, &color, &p.Caption, &p.Position, &p.CreatedAt); err != nil {
		return p, err
	}
	p.Kind = domain.PinKind(kind)
	p.StorageKey = derefString(storageKey)
	p.ImageURL = derefString(imageURL)
	p.Color = domain.HexColor(derefString(color))
	return p, nil
}

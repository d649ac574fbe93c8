package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

const tableauColumns = `id, owner_id, title, created_at, updated_at`

const rowsByTableaux = `
	SELECT tableau_id, id, label, status, priority, emotion, note, date, position, created_at
	FROM tableau_rows
	WHERE tableau_id = ANY($1)
	ORDER BY position
	`

type tableauRepository struct {
	db *DB
}

// NewTableauRepository returns a Postgres-backed TableauRepository.
func NewTableauRepository(db *DB) repository.TableauRepository {
	return &tableauRepository{db: db}
}

type tableauRow struct {
	id, ownerID, title   string
	createdAt, updatedAt time.Time
}

type tableauEntryRow struct {
	tableauID string
	domain.TableauRow
}

func (r *tableauRepository) Create(ctx context.Context, t *domain.Tableau) error {
	if t == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "tableau.create", func(ctx context.Context, q Querier) error {
		query := `INSERT INTO tableaux (` + tableauColumns + `) VALUES ($1, $2, $3, $4, $5)`
		if _, err := q.Exec(ctx, query, t.ID(), t.OwnerID(), t.Title(), t.CreatedAt(), t.UpdatedAt()); err != nil {
			return err
		}
		return insertTableauRows(ctx, q, t)
	})
}

func (r *tableauRepository) GetByID(ctx context.Context, id string) (*domain.Tableau, error) {
	q := r.db.conn(ctx)
	row, err := scanTableauRow(q.QueryRow(ctx, `SELECT `+tableauColumns+` FROM tableaux WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("tableau.get", err, domain.ErrTableauNotFound)
	}
	items, err := r.hydrate(ctx, q, []tableauRow{row})
	if err != nil {
		return nil, mapError("tableau.get", err)
	}
	return items[0], nil
}

func (r *tableauRepository) ListForUser(ctx context.Context, ownerID string, page domain.PageRequest) (domain.Page[*domain.Tableau], error) {
	req, limit, offset := pageArgs(page)
	q := r.db.conn(ctx)

	total, err := count(ctx, q, `SELECT COUNT(*) FROM tableaux WHERE owner_id = $1`, ownerID)
	if err != nil {
		return domain.Page[*domain.Tableau]{}, mapError("tableau.list", err)
	}
	query := `SELECT ` + tableauColumns + ` FROM tableaux WHERE owner_id = $1
	ORDER BY updated_at DESC
	LIMIT $2 OFFSET $3`
	rows, err := q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return domain.Page[*domain.Tableau]{}, mapError("tableau.list", err)
	}
	roots, err := collect(rows, func(rows pgx.Rows) (tableauRow, error) { return scanTableauRow(rows) })
	if err != nil {
		return domain.Page[*domain.Tableau]{}, mapError("tableau.list", err)
	}
	items, err := r.hydrate(ctx, q, roots)
	if err != nil {
		return domain.Page[*domain.Tableau]{}, mapError("tableau.list", err)
	}
	return domain.Page[*domain.Tableau]{Items: items, Total: total, Request: req}, nil
}

// Update rewrites the root and replaces every row.
func (r *tableauRepository) Update(ctx context.Context, t *domain.Tableau) error {
	if t == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "tableau.update", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `UPDATE tableaux SET title = $2, updated_at = $3 WHERE id = $1`, t.ID(), t.Title(), t.UpdatedAt())
		if err != nil {
			return err
		}
		if err := expectOne(tag, domain.ErrTableauNotFound); err != nil {
			return err
		}
		if _, err := q.Exec(ctx, `DELETE FROM tableau_rows WHERE tableau_id = $1`, t.ID()); err != nil {
			return err
		}
		return insertTableauRows(ctx, q, t)
	})
}

func (r *tableauRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, "tableau.delete", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM tableaux WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return expectOne(tag, domain.ErrTableauNotFound)
	})
}

func (r *tableauRepository) hydrate(ctx context.Context, q Querier, roots []tableauRow) ([]*domain.Tableau, error) {
	ids := lo.Map(roots, func(row tableauRow, _ int) string { return row.id })
	entries, err := loadChildren(ctx, q, rowsByTableaux, ids, scanTableauEntryRow, func(e tableauEntryRow) string { return e.tableauID })
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Tableau, 0, len(roots))
	for _, row := range roots {
		rs := lo.Map(entries[row.id], func(e tableauEntryRow, _ int) domain.TableauRow { return e.TableauRow })
		out = append(out, domain.ReconstituteTableau(row.id, row.ownerID, row.title, rs, row.createdAt, row.updatedAt))
	}
	return out, nil
}

func insertTableauRows(ctx context.Context, q Querier, t *domain.Tableau) error {
	batch := newBulkInsert("tableau_rows",
		"id", "tableau_id", "label", "status", "priority", "emotion", "note", "date", "position", "created_at")
	for _, row := range t.Rows() {
		batch.add(row.ID, t.ID(), row.Label, string(row.Status), string(row.Priority), emotionArg(row.Emotion), row.Note, nullTime(row.Date), row.Position, row.CreatedAt)
	}
	return batch.exec(ctx, q)
}

func scanTableauRow(row scanner) (tableauRow, error) {
	var t tableauRow
	err := row.Scan(&t.id, &t.ownerID, &t.title, &t.createdAt, &t.updatedAt)
	return t, err
}

func scanTableauEntryRow(rows pgx.Rows) (tableauEntryRow, error) {
	var (
		e                tableauEntryRow
		status, priority string
		emotion          *string
	)
	if err := rows.Scan(&e.tableauID, &e.ID, &e.Label, &status, &priority, &emotion, &e.Note, &e.Date, &e.Position, &e.CreatedAt); err != nil {
		return e, err
	}
	e.Status = domain.RowStatus(status)
	e.Priority = domain.RowPriority(priority)
	e.Emotion = emotionPtr(emotion)
	return e, nil
}

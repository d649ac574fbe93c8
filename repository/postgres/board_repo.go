package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

const boardColumns = `id, owner_id, title, created_at, updated_at`

const (
	columnsByBoards = `
	SELECT board_id, id, title, color, position
	FROM board_columns
	WHERE board_id = ANY($1)
	ORDER BY position
	`
	cardsByBoards = `
	SELECT column_id, id, title, description, due_at, position, created_at
	FROM board_cards
	WHERE board_id = ANY($1)
	ORDER BY position
	`
)

type boardRepository struct {
	db *DB
}

// NewBoardRepository returns a Postgres-backed BoardRepository.
func NewBoardRepository(db *DB) repository.BoardRepository {
	return &boardRepository{db: db}
}

type boardRow struct {
	id, ownerID, title   string
	createdAt, updatedAt time.Time
}

type columnRow struct {
	boardID string
	domain.Column
}

type cardRow struct {
	columnID string
	domain.Card
}

func (r *boardRepository) Create(ctx context.Context, b *domain.Board) error {
	if b == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "board.create", func(ctx context.Context, q Querier) error {
		query := `INSERT INTO boards (` + boardColumns + `) VALUES ($1, $2, $3, $4, $5)`
		if _, err := q.Exec(ctx, query, b.ID(), b.OwnerID(), b.Title(), b.CreatedAt(), b.UpdatedAt()); err != nil {
			return err
		}
		return insertColumnsAndCards(ctx, q, b)
	})
}

func (r *boardRepository) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	q := r.db.conn(ctx)
	row, err := scanBoardRow(q.QueryRow(ctx, `SELECT `+boardColumns+` FROM boards WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("board.get", err, domain.ErrBoardNotFound)
	}
	items, err := r.hydrate(ctx, q, []boardRow{row})
	if err != nil {
		return nil, mapError("board.get", err)
	}
	return items[0], nil
}

// ListForUser issues a fixed number of queries whatever the page size: count, roots,
// columns and cards.
func (r *boardRepository) ListForUser(ctx context.Context, ownerID string, page domain.PageRequest) (domain.Page[*domain.Board], error) {
	req, limit, offset := pageArgs(page)
	q := r.db.conn(ctx)

	total, err := count(ctx, q, `SELECT COUNT(*) FROM boards WHERE owner_id = $1`, ownerID)
	if err != nil {
		return domain.Page[*domain.Board]{}, mapError("board.list", err)
	}
	query := `SELECT ` + boardColumns + ` FROM boards WHERE owner_id = $1
	ORDER BY updated_at DESC
	LIMIT $2 OFFSET $3`
	rows, err := q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return domain.Page[*domain.Board]{}, mapError("board.list", err)
	}
	roots, err := collect(rows, func(rows pgx.Rows) (boardRow, error) { return scanBoardRow(rows) })
	if err != nil {
		return domain.Page[*domain.Board]{}, mapError("board.list", err)
	}
	items, err := r.hydrate(ctx, q, roots)
	if err != nil {
		return domain.Page[*domain.Board]{}, mapError("board.list", err)
	}
	return domain.Page[*domain.Board]{Items: items, Total: total, Request: req}, nil
}

// Update rewrites the root and replaces columns and cards.
func (r *boardRepository) Update(ctx context.Context, b *domain.Board) error {
	if b == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "board.update", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `UPDATE boards SET title = $2, updated_at = $3 WHERE id = $1`, b.ID(), b.Title(), b.UpdatedAt())
		if err != nil {
			return err
		}
		if err := expectOne(tag, domain.ErrBoardNotFound); err != nil {
			return err
		}
		// cards go with their columns through ON DELETE CASCADE
		if _, err := q.Exec(ctx, `DELETE FROM board_columns WHERE board_id = $1`, b.ID()); err != nil {
			return err
		}
		return insertColumnsAndCards(ctx, q, b)
	})
}

func (r *boardRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, "board.delete", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return expectOne(tag, domain.ErrBoardNotFound)
	})
}

func (r *boardRepository) hydrate(ctx context.Context, q Querier, roots []boardRow) ([]*domain.Board, error) {
	ids := lo.Map(roots, func(row boardRow, _ int) string { return row.id })
	columns, err := loadChildren(ctx, q, columnsByBoards, ids, scanColumnRow, func(c columnRow) string { return c.boardID })
	if err != nil {
		return nil, err
	}
	cards, err := loadChildren(ctx, q, cardsByBoards, ids, scanCardRow, func(c cardRow) string { return c.columnID })
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Board, 0, len(roots))
	for _, row := range roots {
		cols := lo.Map(columns[row.id], func(c columnRow, _ int) domain.Column {
			col := c.Column
			col.Cards = lo.Map(cards[col.ID], func(card cardRow, _ int) domain.Card { return card.Card })
			return col
		})
		out = append(out, domain.ReconstituteBoard(row.id, row.ownerID, row.title, cols, row.createdAt, row.updatedAt))
	}
	return out, nil
}

func insertColumnsAndCards(ctx context.Context, q Querier, b *domain.Board) error {
	columns := newBulkInsert("board_columns", "id", "board_id", "title", "color", "position")
	cards := newBulkInsert("board_cards", "id", "board_id", "column_id", "title", "description", "due_at", "position", "created_at")
	for _, col := range b.Columns() {
		columns.add(col.ID, b.ID(), col.Title, nullString(string(col.Color)), col.Position)
		for _, card := range col.Cards {
			cards.add(card.ID, b.ID(), col.ID, card.Title, card.Description, nullTime(card.DueAt), card.Position, card.CreatedAt)
		}
	}
	if err := columns.exec(ctx, q); err != nil {
		return err
	}
	return cards.exec(ctx, q)
}

func scanBoardRow(row scanner) (boardRow, error) {
	var b boardRow
	err := row.Scan(&b.id, &b.ownerID, &b.title, &b.createdAt, &b.updatedAt)
	return b, err
}

func scanColumnRow(rows pgx.Rows) (columnRow, error) {
	var (
		c     columnRow
		color *string
	)
	if err := rows.Scan(&c.boardID, &c.ID, &c.Title, &color, &c.Position); err != nil {
		return c, err
	}
	c.Color = domain.HexColor(derefString(color))
	return c, nil
}

func scanCardRow(rows pgx.Rows) (cardRow, error) {
	var c cardRow
	err := rows.Scan(&c.columnID, &c.ID, &c.Title, &c.Description, &c.DueAt, &c.Position, &c.CreatedAt)
	return c, err
}

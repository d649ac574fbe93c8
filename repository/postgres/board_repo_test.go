package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/journal/domain"
)

func TestBoardRepository_ListForUserQueryCount(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewBoardRepository(db)

	boards := mock.NewRows([]string{"id", "owner_id", "title", "created_at", "updated_at"})
	columns := mock.NewRows([]string{"board_id", "id", "title", "color", "position"})
	cards := mock.NewRows([]string{"column_id", "id", "title", "description", "due_at", "position", "created_at"})
	for b := 0; b < 20; b++ {
		boardID := fmt.Sprintf("b-%02d", b)
		boards.AddRow(boardID, "alice", "Board "+boardID, fixedTime, fixedTime)
		for c := 0; c < 3; c++ {
			columnID := fmt.Sprintf("%s-c%d", boardID, c)
			columns.AddRow(boardID, columnID, "Column", nil, c)
			for k := 0; k < 4; k++ {
				cards.AddRow(columnID, fmt.Sprintf("%s-k%d", columnID, k), "Card", "", nil, k, fixedTime)
			}
		}
	}

	mock.ExpectQuery(sql("SELECT COUNT(*) FROM boards")).WithArgs(anyArgs(1)...).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery(sql("FROM boards WHERE owner_id = $1")).WithArgs(anyArgs(3)...).WillReturnRows(boards)
	mock.ExpectQuery(sql("FROM board_columns")).WithArgs(anyArgs(1)...).WillReturnRows(columns)
	mock.ExpectQuery(sql("FROM board_cards")).WithArgs(anyArgs(1)...).WillReturnRows(cards)

	page, err := repo.ListForUser(context.Background(), "alice", domain.PageRequest{Page: 1, Limit: 20})
	req.NoError(err)
	req.NoError(mock.ExpectationsWereMet())

	req.Len(page.Items, 20)
	req.Equal(45, page.Total)
	meta := page.Pagination()
	req.Equal(3, meta.TotalPages)
	req.True(meta.HasNextPage)

	for _, b := range page.Items {
		cols := b.Columns()
		req.Len(cols, 3)
		for i, col := range cols {
			req.Equal(i, col.Position)
			req.Len(col.Cards, 4)
			req.Equal(fmt.Sprintf("%s-c%d-k0", b.ID(), i), col.Cards[0].ID)
		}
	}
}

func TestBoardRepository_ListForUserEmptySkipsChildren(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewBoardRepository(db)

	mock.ExpectQuery(sql("SELECT COUNT(*) FROM boards")).WithArgs(anyArgs(1)...).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(sql("FROM boards WHERE owner_id = $1")).WithArgs(anyArgs(3)...).
		WillReturnRows(mock.NewRows([]string{"id", "owner_id", "title", "created_at", "updated_at"}))

	page, err := repo.ListForUser(context.Background(), "alice", domain.PageRequest{})
	req.NoError(err)
	req.NoError(mock.ExpectationsWereMet())
	req.Empty(page.Items)
	req.Equal(domain.DefaultPageLimit, page.Pagination().Limit)
}

func TestBoardRepository_UpdateReplacesChildren(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewBoardRepository(db)

	board, err := domain.NewBoard("alice", "Week", []string{"todo", "done"})
	req.NoError(err)
	_, err = board.AddCard(board.Columns()[0].ID, domain.CardInput{Title: "write tests"})
	req.NoError(err)

	mock.ExpectBegin()
	mock.ExpectExec(sql("UPDATE boards")).WithArgs(anyArgs(3)...).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(sql("DELETE FROM board_columns")).WithArgs(anyArgs(1)...).WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(sql("INSERT INTO board_columns (")).WithArgs(anyArgs(2 * 5)...).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectExec(sql("INSERT INTO board_cards (")).WithArgs(anyArgs(8)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	req.NoError(repo.Update(context.Background(), board))
	req.NoError(mock.ExpectationsWereMet())
}

func TestBoardRepository_RoundTrip(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()

	board, err := domain.NewBoard("alice", "Week", nil)
	req.NoError(err)
	cols := board.Columns()
	due := fixedTime.Add(48 * time.Hour)
	_, err = board.AddCard(cols[0].ID, domain.CardInput{Title: "Write", Description: "morning pages", DueAt: &due})
	req.NoError(err)
	card, err := board.AddCard(cols[0].ID, domain.CardInput{Title: "Stretch"})
	req.NoError(err)
	req.NoError(board.MoveCard(card.ID, cols[2].ID, 0))
	_, err = board.AddColumn("Someday", "#AABBCC")
	req.NoError(err)

	root, columns, cards := newCapture(5), newCapture(4*5), newCapture(2*8)
	mock.ExpectBegin()
	mock.ExpectExec(sql("INSERT INTO boards (")).WithArgs(root.args()...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(sql("INSERT INTO board_columns (")).WithArgs(columns.args()...).WillReturnResult(pgxmock.NewResult("INSERT", 4))
	mock.ExpectExec(sql("INSERT INTO board_cards (")).WithArgs(cards.args()...).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()
	req.NoError(repo.Create(ctx, board))

	columnRows := mock.NewRows([]string{"board_id", "id", "title", "color", "position"})
	for _, c := range columns.rows(5) {
		columnRows.AddRow(c[1], c[0], c[2], nullable[string](c[3]), c[4])
	}
	cardRows := mock.NewRows([]string{"column_id", "id", "title", "description", "due_at", "position", "created_at"})
	for _, c := range cards.rows(8) {
		cardRows.AddRow(c[2], c[0], c[3], c[4], nullable[time.Time](c[5]), c[6], c[7])
	}
	mock.ExpectQuery(sql("FROM boards WHERE id = $1")).WithArgs(board.ID()).WillReturnRows(
		mock.NewRows([]string{"id", "owner_id", "title", "created_at", "updated_at"}).AddRow(root.values()...),
	)
	mock.ExpectQuery(sql("FROM board_columns")).WithArgs([]string{board.ID()}).WillReturnRows(columnRows)
	mock.ExpectQuery(sql("FROM board_cards")).WithArgs([]string{board.ID()}).WillReturnRows(cardRows)

	loaded, err := repo.GetByID(ctx, board.ID())
	req.NoError(err)
	req.NoError(mock.ExpectationsWereMet())

	req.Equal(board.ID(), loaded.ID())
	req.Equal(board.Title(), loaded.Title())
	req.Equal(board.UpdatedAt(), loaded.UpdatedAt())
	req.Equal(board.Columns(), loaded.Columns())
	got := loaded.Columns()
	req.Len(got, 4)
	req.Equal(domain.HexColor("#aabbcc"), got[3].Color)
	req.Equal(due, *got[0].Cards[0].DueAt)
	req.Equal(card.ID, got[2].Cards[0].ID)
	req.Empty(loaded.Events())
}

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/journal/domain"
)

func TestTableauRepository_RoundTrip(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewTableauRepository(db)
	ctx := context.Background()

	tb, err := domain.NewTableau("alice", "March")
	req.NoError(err)
	due := fixedTime.AddDate(0, 0, 3)
	_, err = tb.AddRow(domain.RowInput{Label: "Dentist", Status: "todo", Priority: "high", Date: &due})
	req.NoError(err)
	_, err = tb.AddRow(domain.RowInput{Label: "Long walk", Status: "done", Emotion: "calm", Note: "by the river"})
	req.NoError(err)
	second := tb.Rows()[1].ID
	req.NoError(tb.MoveRow(second, 0))

	root, rows := newCapture(5), newCapture(2*10)
	mock.ExpectBegin()
	mock.ExpectExec(sql("INSERT INTO tableaux (")).WithArgs(root.args()...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(sql("INSERT INTO tableau_rows (")).WithArgs(rows.args()...).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()
	req.NoError(repo.Create(ctx, tb))

	entries := mock.NewRows([]string{"tableau_id", "id", "label", "status", "priority", "emotion", "note", "date", "position", "created_at"})
	for _, r := range rows.rows(10) {
		entries.AddRow(r[1], r[0], r[2], r[3], r[4], nullable[string](r[5]), r[6], nullable[time.Time](r[7]), r[8], r[9])
	}
	mock.ExpectQuery(sql("FROM tableaux WHERE id = $1")).WithArgs(tb.ID()).WillReturnRows(
		mock.NewRows([]string{"id", "owner_id", "title", "created_at", "updated_at"}).AddRow(root.values()...),
	)
	mock.ExpectQuery(sql("FROM tableau_rows")).WithArgs([]string{tb.ID()}).WillReturnRows(entries)

	loaded, err := repo.GetByID(ctx, tb.ID())
	req.NoError(err)
	req.NoError(mock.ExpectationsWereMet())

	req.Equal(tb.ID(), loaded.ID())
	req.Equal(tb.OwnerID(), loaded.OwnerID())
	req.Equal(tb.Title(), loaded.Title())
	req.Equal(tb.UpdatedAt(), loaded.UpdatedAt())
	req.Equal(tb.Rows(), loaded.Rows())
	req.Equal(second, loaded.Rows()[0].ID)
	req.Equal(domain.EmotionCalm, *loaded.Rows()[0].Emotion)
	req.Equal(due, *loaded.Rows()[1].Date)
	req.Empty(loaded.Events())
}

func TestTableauRepository_UpdateReplacesRows(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewTableauRepository(db)

	tb := domain.ReconstituteTableau("t-1", "alice", "March", []domain.TableauRow{
		{ID: "r-1", Label: "one", Status: domain.RowStatusTodo, Priority: domain.RowPriorityLow, Position: 0, CreatedAt: fixedTime},
		{ID: "r-2", Label: "two", Status: domain.RowStatusTodo, Priority: domain.RowPriorityLow, Position: 1, CreatedAt: fixedTime},
	}, fixedTime, fixedTime)
	req.NoError(tb.RemoveRow("r-1"))

	rows := newCapture(10)
	mock.ExpectBegin()
	mock.ExpectExec(sql("UPDATE tableaux")).WithArgs(anyArgs(3)...).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(sql("DELETE FROM tableau_rows")).WithArgs("t-1").WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(sql("INSERT INTO tableau_rows (")).WithArgs(rows.args()...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	req.NoError(repo.Update(context.Background(), tb))
	req.NoError(mock.ExpectationsWereMet())
	req.Equal("r-2", rows.values()[0])
	req.Equal(0, rows.values()[8])
}

func TestTableauRepository_UpdateMissing(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewTableauRepository(db)

	tb := domain.ReconstituteTableau("t-404", "alice", "Gone", nil, fixedTime, fixedTime)

	mock.ExpectBegin()
	mock.ExpectExec(sql("UPDATE tableaux")).WithArgs(anyArgs(3)...).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	req.ErrorIs(repo.Update(context.Background(), tb), domain.ErrTableauNotFound)
	req.NoError(mock.ExpectationsWereMet())
}

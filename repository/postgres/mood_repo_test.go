package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

func TestMoodRepository_ListFiltersByRange(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewMoodRepository(db)

	from := fixedTime.Add(-7 * 24 * time.Hour)
	mock.ExpectQuery(sql("SELECT COUNT(*) FROM mood_entries")).WithArgs("alice", from, nil).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(sql("ORDER BY logged_at DESC")).WithArgs("alice", from, nil, 10, 10).WillReturnRows(
		mock.NewRows([]string{"id", "user_id", "emotion", "intensity", "note", "logged_at", "updated_at"}).
			AddRow("m-1", "alice", "gratitude", 6, "sunny walk", fixedTime, fixedTime),
	)

	page, err := repo.List(context.Background(), repository.MoodFilter{UserID: "alice", From: &from}, domain.PageRequest{Page: 2, Limit: 10})
	req.NoError(err)
	req.NoError(mock.ExpectationsWereMet())

	req.Equal(1, page.Total)
	req.Len(page.Items, 1)
	entry := page.Items[0]
	req.Equal(domain.Emotion("gratitude"), entry.Emotion())
	req.Equal(6, entry.Intensity())
	req.Empty(entry.Events())
}

func TestMoodRepository_UpdateMissingRow(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewMoodRepository(db)

	entry := domain.ReconstituteMoodEntry("m-404", "alice", domain.Emotion("joy"), 5, "", fixedTime, fixedTime)

	mock.ExpectBegin()
	mock.ExpectExec(sql("UPDATE mood_entries")).WithArgs(anyArgs(5)...).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	req.ErrorIs(repo.Update(context.Background(), entry), domain.ErrMoodNotFound)
	req.NoError(mock.ExpectationsWereMet())
}

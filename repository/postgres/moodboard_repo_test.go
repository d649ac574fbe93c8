package postgres

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/journal/domain"
)

func TestMoodboardRepository_RoundTrip(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewMoodboardRepository(db)

	board, err := domain.NewMoodboard("alice", "Autumn", "warm tones")
	req.NoError(err)
	_, err = board.AddPin(domain.PinInput{StorageKey: "moodboards/alice/1.png", ImageURL: "https://cdn.test/1.png", Caption: "leaves"})
	req.NoError(err)
	_, err = board.AddPin(domain.PinInput{Color: "#FFAA00"})
	req.NoError(err)

	mock.ExpectBegin()
	mock.ExpectExec(sql("INSERT INTO moodboards (")).WithArgs(anyArgs(6)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(sql("INSERT INTO moodboard_pins (")).WithArgs(anyArgs(2 * 9)...).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()
	req.NoError(repo.Create(context.Background(), board))

	pins := mock.NewRows([]string{"moodboard_id", "id", "kind", "storage_key", "image_url", "color", "caption", "position", "created_at"})
	for _, p := range board.Pins() {
		var key, url, color *string
		if p.StorageKey != "" {
			key = ptr(p.StorageKey)
		}
		if p.ImageURL != "" {
			url = ptr(p.ImageURL)
		}
		if p.Color != "" {
			color = ptr(string(p.Color))
		}
		pins.AddRow(board.ID(), p.ID, string(p.Kind), key, url, color, p.Caption, p.Position, p.CreatedAt)
	}
	mock.ExpectQuery(sql("FROM moodboards WHERE id = $1")).WithArgs(anyArgs(1)...).WillReturnRows(
		mock.NewRows([]string{"id", "owner_id", "title", "description", "created_at", "updated_at"}).
			AddRow(board.ID(), board.OwnerID(), board.Title(), board.Description(), board.CreatedAt(), board.UpdatedAt()),
	)
	mock.ExpectQuery(sql("FROM moodboard_pins")).WithArgs(anyArgs(1)...).WillReturnRows(pins)

	loaded, err := repo.GetByID(context.Background(), board.ID())
	req.NoError(err)
	req.NoError(mock.ExpectationsWereMet())

	req.Equal(board.ID(), loaded.ID())
	req.Equal(board.Title(), loaded.Title())
	req.Equal(board.Description(), loaded.Description())
	req.Equal(board.Pins(), loaded.Pins())
	req.Equal(board.ImageKeys(), loaded.ImageKeys())
	req.Empty(loaded.Events())
}

func TestMoodboardRepository_DeleteMissing(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewMoodboardRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(sql("DELETE FROM moodboards")).WithArgs(anyArgs(1)...).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	req.ErrorIs(repo.Delete(context.Background(), "missing"), domain.ErrMoodboardNotFound)
	req.NoError(mock.ExpectationsWereMet())
}

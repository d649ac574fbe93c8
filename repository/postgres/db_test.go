package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/journal/domain"
)

func TestDB_WithinTxSharesAmbientTransaction(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	conversations := NewConversationRepository(db)
	messages := NewMessageRepository(db)

	conv, err := domain.NewConversation("alice", "bob")
	req.NoError(err)
	msg, err := domain.NewMessage(conv.ID(), "alice", "hi", nil)
	req.NoError(err)

	mock.ExpectBegin()
	mock.ExpectExec(sql("INSERT INTO conversations (")).WithArgs(anyArgs(8)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(sql("INSERT INTO conversation_participants (")).WithArgs(anyArgs(2 * 5)...).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectExec(sql("INSERT INTO messages (")).WithArgs(anyArgs(7)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = db.WithinTx(context.Background(), func(ctx context.Context) error {
		if err := conversations.Create(ctx, conv); err != nil {
			return err
		}
		return messages.Create(ctx, msg)
	})
	req.NoError(err)
	req.NoError(mock.ExpectationsWereMet())
}

func TestDB_WithinTxRollsBackOnError(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.WithinTx(context.Background(), func(context.Context) error { return boom })
	req.ErrorIs(err, boom)
	req.NoError(mock.ExpectationsWereMet())
}

type recordedWrite struct {
	op  string
	err error
}

type recordingHooks struct {
	writes []recordedWrite
}

func (h *recordingHooks) ObserveWrite(op string, _ time.Time, err error) {
	h.writes = append(h.writes, recordedWrite{op: op, err: err})
}

func TestDB_WriteReportsToHooks(t *testing.T) {
	req := require.New(t)
	mock, err := pgxmock.NewPool()
	req.NoError(err)
	defer mock.Close()
	hooks := &recordingHooks{}
	repo := NewMoodRepository(NewDB(mock, hooks))

	mock.ExpectBegin()
	mock.ExpectExec(sql("DELETE FROM mood_entries")).WithArgs(anyArgs(1)...).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	req.NoError(repo.Delete(context.Background(), "mood-1"))
	req.Equal([]recordedWrite{{op: "mood.delete"}}, hooks.writes)
}

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domain.ErrorCode
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrCodeNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, domain.ErrCodeConflict},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, domain.ErrCodeNotFound},
		{"check violation", &pgconn.PgError{Code: "23514"}, domain.ErrCodeInvalid},
		{"anything else", errors.New("connection reset"), domain.ErrCodeInternal},
		{"domain errors pass through", domain.ErrRewardImmutable, domain.ErrCodeConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, domain.CodeOf(mapError("op", tc.err)))
		})
	}
	require.NoError(t, mapError("op", nil))
}

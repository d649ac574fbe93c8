package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/journal/domain"
)

func TestRewardRepository_UpdateIsAlwaysConflict(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewRewardRepository(db)

	reward := domain.ReconstituteUserReward("r-1", "alice", domain.Achievement{ID: "a-1", Code: "first_post"}, fixedTime)

	err := repo.Update(context.Background(), reward)
	req.ErrorIs(err, domain.ErrRewardImmutable)
	req.True(domain.IsDomainError(err, domain.ErrCodeConflict))
	// nothing reached the database
	req.NoError(mock.ExpectationsWereMet())
}

func TestRewardRepository_CreateTwiceIsConflict(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewRewardRepository(db)

	reward, err := domain.NewUserReward("alice", domain.Achievement{ID: "a-1", Code: "first_post", Name: "First post", Points: 10})
	req.NoError(err)

	mock.ExpectBegin()
	mock.ExpectExec(sql("INSERT INTO user_rewards (")).WithArgs(anyArgs(4)...).WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	req.ErrorIs(repo.Create(context.Background(), reward), domain.ErrRewardAlreadyEarned)
	req.NoError(mock.ExpectationsWereMet())
}

func TestRewardRepository_GetByIDJoinsAchievement(t *testing.T) {
	req := require.New(t)
	mock, db := newMockDB(t)
	repo := NewRewardRepository(db)

	mock.ExpectQuery(sql("FROM user_rewards r")).WithArgs(anyArgs(1)...).WillReturnRows(
		mock.NewRows([]string{"id", "user_id", "earned_at", "a_id", "code", "name", "description", "icon", "points"}).
			AddRow("r-1", "alice", fixedTime, "a-1", "first_post", "First post", "Wrote a first post", "pen", 10),
	)

	reward, err := repo.GetByID(context.Background(), "r-1")
	req.NoError(err)
	req.Equal("alice", reward.UserID())
	req.Equal(domain.Achievement{ID: "a-1", Code: "first_post", Name: "First post", Description: "Wrote a first post", Icon: "pen", Points: 10}, reward.Achievement())
	req.Equal(fixedTime, reward.EarnedAt())
}

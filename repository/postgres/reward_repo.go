package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

const achievementColumns = `a.id, a.code, a.name, a.description, a.icon, a.points`

const rewardColumns = `r.id, r.user_id, r.earned_at, ` + achievementColumns

type rewardRepository struct {
	db *DB
}

// NewRewardRepository returns a Postgres-backed RewardRepository.
func NewRewardRepository(db *DB) repository.RewardRepository {
	return &rewardRepository{db: db}
}

// Create fails with ErrRewardAlreadyEarned when the user holds the achievement already.
func (r *rewardRepository) Create(ctx context.Context, reward *domain.UserReward) error {
	if reward == nil {
		return domain.ErrInvalidPayload
	}
	err := r.db.write(ctx, "reward.create", func(ctx context.Context, q Querier) error {
		const query = `INSERT INTO user_rewards (id, user_id, achievement_id, earned_at) VALUES ($1, $2, $3, $4)`
		_, err := q.Exec(ctx, query, reward.ID(), reward.UserID(), reward.Achievement().ID, reward.EarnedAt())
		return err
	})
	if domain.IsDomainError(err, domain.ErrCodeConflict) {
		return domain.ErrRewardAlreadyEarned
	}
	return err
}

func (r *rewardRepository) GetByID(ctx context.Context, id string) (*domain.UserReward, error) {
	query := `SELECT ` + rewardColumns + `
	FROM user_rewards r
	JOIN achievements a ON a.id = r.achievement_id
	WHERE r.id = $1`
	reward, err := scanReward(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound("reward.get", err, domain.ErrRewardNotFound)
	}
	return reward, nil
}

func (r *rewardRepository) ListForUser(ctx context.Context, userID string, page domain.PageRequest) (domain.Page[*domain.UserReward], error) {
	req, limit, offset := pageArgs(page)
	q := r.db.conn(ctx)

	total, err := count(ctx, q, `SELECT COUNT(*) FROM user_rewards WHERE user_id = $1`, userID)
	if err != nil {
		return domain.Page[*domain.UserReward]{}, mapError("reward.list", err)
	}
	query := `SELECT ` + rewardColumns + `
	FROM user_rewards r
	JOIN achievements a ON a.id = r.achievement_id
	WHERE r.user_id = $1
	ORDER BY r.earned_at DESC
	LIMIT $2 OFFSET $3`
	rows, err := q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return domain.Page[*domain.UserReward]{}, mapError("reward.list", err)
	}
	items, err := collect(rows, func(rows pgx.Rows) (*domain.UserReward, error) { return scanReward(rows) })
	if err != nil {
		return domain.Page[*domain.UserReward]{}, mapError("reward.list", err)
	}
	return domain.Page[*domain.UserReward]{Items: items, Total: total, Request: req}, nil
}

// Update never touches storage: earned rewards are immutable.
func (r *rewardRepository) Update(context.Context, *domain.UserReward) error {
	return domain.ErrRewardImmutable
}

func scanReward(row scanner) (*domain.UserReward, error) {
	var (
		id, userID string
		earnedAt   time.Time
		a          domain.Achievement
	)
	if err := row.Scan(&id, &userID, &earnedAt, &a.ID, &a.Code, &a.Name, &a.Description, &a.Icon, &a.Points); err != nil {
		return nil, err
	}
	return domain.ReconstituteUserReward(id, userID, a, earnedAt), nil
}

type achievementRepository struct {
	db *DB
}

// NewAchievementRepository returns a Postgres-backed AchievementRepository.
func NewAchievementRepository(db *DB) repository.AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) GetByID(ctx context.Context, id string) (*domain.Achievement, error) {
	return r.getBy(ctx, "achievement.get", `a.id = $1`, id)
}

func (r *achievementRepository) GetByCode(ctx context.Context, code string) (*domain.Achievement, error) {
	return r.getBy(ctx, "achievement.get_by_code", `a.code = $1`, code)
}

func (r *achievementRepository) List(ctx context.Context) ([]domain.Achievement, error) {
	rows, err := r.db.conn(ctx).Query(ctx, `SELECT `+achievementColumns+` FROM achievements a ORDER BY a.points, a.code`)
	if err != nil {
		return nil, mapError("achievement.list", err)
	}
	items, err := collect(rows, func(rows pgx.Rows) (domain.Achievement, error) { return scanAchievement(rows) })
	if err != nil {
		return nil, mapError("achievement.list", err)
	}
	return items, nil
}

func (r *achievementRepository) getBy(ctx context.Context, op, where string, arg string) (*domain.Achievement, error) {
	a, err := scanAchievement(r.db.conn(ctx).QueryRow(ctx, `SELECT `+achievementColumns+` FROM achievements a WHERE `+where, arg))
	if err != nil {
		return nil, notFound(op, err, domain.ErrAchievementNotFound)
	}
	return &a, nil
}

func scanAchievement(row scanner) (domain.Achievement, error) {
	var a domain.Achievement
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Description, &a.Icon, &a.Points)
	return a, err
}

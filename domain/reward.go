package domain

import "time"

// Achievement is a reward definition users can earn.
type Achievement struct {
	ID          string
	Code        string
	Name        string
	Description string
	Icon        string
	Points      int
}

// UserReward joins a user to an earned achievement. It never changes once earned.
type UserReward struct {
	AggregateRoot

	id          string
	userID      string
	achievement Achievement
	earnedAt    time.Time
}

func NewUserReward(userID string, achievement Achievement) (*UserReward, error) {
	if userID == "" {
		return nil, Invalid("user id is required")
	}
	if achievement.ID == "" {
		return nil, Invalid("achievement is required")
	}
	at := Touch()
	r := &UserReward{id: newID(), userID: userID, achievement: achievement, earnedAt: at}
	r.record(RewardEarned{
		EventBase:       newEventBase(r.id, at),
		UserID:          userID,
		AchievementID:   achievement.ID,
		AchievementName: achievement.Name,
		Points:          achievement.Points,
	})
	return r, nil
}

func ReconstituteUserReward(id, userID string, achievement Achievement, earnedAt time.Time) *UserReward {
	return &UserReward{id: id, userID: userID, achievement: achievement, earnedAt: earnedAt}
}

func (r *UserReward) ID() string               { return r.id }
func (r *UserReward) UserID() string           { return r.userID }
func (r *UserReward) Achievement() Achievement { return r.achievement }
func (r *UserReward) EarnedAt() time.Time      { return r.earnedAt }

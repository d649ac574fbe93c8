package mood

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
	"github.com/fastygo/journal/usecase"
)

type View struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Emotion   string    `json:"emotion"`
	Intensity int       `json:"intensity"`
	Note      string    `json:"note,omitempty"`
	LoggedAt  time.Time `json:"loggedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ViewOf(m *domain.MoodEntry) View {
	return View{
		ID:        m.ID(),
		UserID:    m.UserID(),
		Emotion:   string(m.Emotion()),
		Intensity: m.Intensity(),
		Note:      m.Note(),
		LoggedAt:  m.LoggedAt(),
		UpdatedAt: m.UpdatedAt(),
	}
}

type Input struct {
	Emotion   string
	Intensity int
	Note      string
	LoggedAt  *time.Time
}

type UseCase struct {
	moods  repository.MoodRepository
	events usecase.EventPublisher
	logger *zap.Logger
}

func New(moods repository.MoodRepository, events usecase.EventPublisher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{moods: moods, events: events, logger: logger}
}

func (uc *UseCase) Log(ctx context.Context, userID string, in Input) (View, error) {
	m, err := domain.NewMoodEntry(userID, in.Emotion, in.Intensity, in.Note, in.LoggedAt)
	if err != nil {
		return View{}, err
	}
	if err := uc.moods.Create(ctx, m); err != nil {
		return View{}, err
	}
	usecase.Publish(ctx, uc.events, m)
	return ViewOf(m), nil
}

func (uc *UseCase) Get(ctx context.Context, actorID, id string) (View, error) {
	m, err := uc.owned(ctx, actorID, id)
	if err != nil {
		return View{}, err
	}
	return ViewOf(m), nil
}

// List pages the user's entries, optionally bounded by a logged-at range.
func (uc *UseCase) List(ctx context.Context, userID string, from, to *time.Time, page domain.PageRequest) (domain.Page[View], error) {
	if from != nil && to != nil && to.Before(*from) {
		return domain.Page[View]{}, domain.Invalid("to must not be before from")
	}
	result, err := uc.moods.List(ctx, repository.MoodFilter{UserID: userID, From: from, To: to}, page)
	if err != nil {
		return domain.Page[View]{}, err
	}
	return domain.MapPage(result, ViewOf), nil
}

func (uc *UseCase) Update(ctx context.Context, actorID, id string, in Input) (View, error) {
	m, err := uc.owned(ctx, actorID, id)
	if err != nil {
		return View{}, err
	}
	if err := m.Update(in.Emotion, in.Intensity, in.Note); err != nil {
		return View{}, err
	}
	if err := uc.moods.Update(ctx, m); err != nil {
		return View{}, err
	}
	usecase.Publish(ctx, uc.events, m)
	return ViewOf(m), nil
}

func (uc *UseCase) Delete(ctx context.Context, actorID, id string) error {
	if _, err := uc.owned(ctx, actorID, id); err != nil {
		return err
	}
	return uc.moods.Delete(ctx, id)
}

func (uc *UseCase) owned(ctx context.Context, actorID, id string) (*domain.MoodEntry, error) {
	m, err := uc.moods.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.EnsureOwner(actorID); err != nil {
		return nil, err
	}
	return m, nil
}

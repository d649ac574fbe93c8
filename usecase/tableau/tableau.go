package tableau

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
	"github.com/fastygo/journal/usecase"
)

type RowView struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Status    string     `json:"status"`
	Priority  string     `json:"priority"`
	Emotion   *string    `json:"emotion,omitempty"`
	Note      string     `json:"note,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Position  int        `json:"position"`
	CreatedAt time.Time  `json:"createdAt"`
}

type View struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Rows      []RowView `json:"rows"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ViewOf(t *domain.Tableau) View {
	return View{
		ID:      t.ID(),
		OwnerID: t.OwnerID(),
		Title:   t.Title(),
		Rows: lo.Map(t.Rows(), func(r domain.TableauRow, _ int) RowView {
			view := RowView{
				ID:        r.ID,
				Label:     r.Label,
				Status:    string(r.Status),
				Priority:  string(r.Priority),
				Note:      r.Note,
				Date:      r.Date,
				Position:  r.Position,
				CreatedAt: r.CreatedAt,
			}
			if r.Emotion != nil {
				view.Emotion = lo.ToPtr(string(*r.Emotion))
			}
			return view
		}),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

type UseCase struct {
	tableaux repository.TableauRepository
	events   usecase.EventPublisher
	logger   *zap.Logger
}

func New(tableaux repository.TableauRepository, events usecase.EventPublisher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{tableaux: tableaux, events: events, logger: logger}
}

func (uc *UseCase) Create(ctx context.Context, ownerID, title string) (View, error) {
	t, err := domain.NewTableau(ownerID, title)
	if err != nil {
		return View{}, err
	}
	if err := uc.tableaux.Create(ctx, t); err != nil {
		return View{}, err
	}
	usecase.Publish(ctx, uc.events, t)
	return ViewOf(t), nil
}

func (uc *UseCase) Get(ctx context.Context, actorID, id string) (View, error) {
	t, err := uc.owned(ctx, actorID, id)
	if err != nil {
		return View{}, err
	}
	return ViewOf(t), nil
}

func (uc *UseCase) List(ctx context.Context, ownerID string, page domain.PageRequest) (domain.Page[View], error) {
	result, err := uc.tableaux.ListForUser(ctx, ownerID, page)
	if err != nil {
		return domain.Page[View]{}, err
	}
	return domain.MapPage(result, ViewOf), nil
}

func (uc *UseCase) Rename(ctx context.Context, actorID, id, title string) (View, error) {
	return uc.mutate(ctx, actorID, id, func(t *domain.Tableau) error { return t.Rename(title) })
}

func (uc *UseCase) AddRow(ctx context.Context, actorID, id string, in domain.RowInput) (View, error) {
	return uc.mutate(ctx, actorID, id, func(t *domain.Tableau) error {
		_, err := t.AddRow(in)
		return err
	})
}

func (uc *UseCase) UpdateRow(ctx context.Context, actorID, id, rowID string, in domain.RowInput) (View, error) {
	return uc.mutate(ctx, actorID, id, func(t *domain.Tableau) error { return t.UpdateRow(rowID, in) })
}

func (uc *UseCase) RemoveRow(ctx context.Context, actorID, id, rowID string) (View, error) {
	return uc.mutate(ctx, actorID, id, func(t *domain.Tableau) error { return t.RemoveRow(rowID) })
}

func (uc *UseCase) MoveRow(ctx context.Context, actorID, id, rowID string, position int) (View, error) {
	return uc.mutate(ctx, actorID, id, func(t *domain.Tableau) error { return t.MoveRow(rowID, position) })
}

func (uc *UseCase) Delete(ctx context.Context, actorID, id string) error {
	if _, err := uc.owned(ctx, actorID, id); err != nil {
		return err
	}
	return uc.tableaux.Delete(ctx, id)
}

func (uc *UseCase) owned(ctx context.Context, actorID, id string) (*domain.Tableau, error) {
	t, err := uc.tableaux.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.EnsureOwner(actorID); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *UseCase) mutate(ctx context.Context, actorID, id string, fn func(*domain.Tableau) error) (View, error) {
	t, err := uc.owned(ctx, actorID, id)
	if err != nil {
		return View{}, err
	}
	if err := fn(t); err != nil {
		return View{}, err
	}
	if err := uc.tableaux.Update(ctx, t); err != nil {
		return View{}, err
	}
	usecase.Publish(ctx, uc.events, t)
	return ViewOf(t), nil
}

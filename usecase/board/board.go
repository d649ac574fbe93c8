package board

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
	"github.com/fastygo/journal/usecase"
)

type CardView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	Position    int        `json:"position"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type ColumnView struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Color    string     `json:"color,omitempty"`
	Position int        `json:"position"`
	Cards    []CardView `json:"cards"`
}

type View struct {
	ID        string       `json:"id"`
	OwnerID   string       `json:"ownerId"`
	Title     string       `json:"title"`
	Columns   []ColumnView `json:"columns"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func ViewOf(b *domain.Board) View {
	return View{
		ID:      b.ID(),
		OwnerID: b.OwnerID(),
		Title:   b.Title(),
		Columns: lo.Map(b.Columns(), func(c domain.Column, _ int) ColumnView {
			return ColumnView{
				ID:       c.ID,
				Title:    c.Title,
				Color:    string(c.Color),
				Position: c.Position,
				Cards: lo.Map(c.Cards, func(card domain.Card, _ int) CardView {
					return CardView{
						ID:          card.ID,
						Title:       card.Title,
						Description: card.Description,
						DueAt:       card.DueAt,
						Position:    card.Position,
						CreatedAt:   card.CreatedAt,
					}
				}),
			}
		}),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

type UseCase struct {
	boards repository.BoardRepository
	events usecase.EventPublisher
	logger *zap.Logger
}

func New(boards repository.BoardRepository, events usecase.EventPublisher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{boards: boards, events: events, logger: logger}
}

func (uc *UseCase) Create(ctx context.Context, ownerID, title string, columns []string) (View, error) {
	b, err := domain.NewBoard(ownerID, title, columns)
	if err != nil {
		return View{}, err
	}
	if err := uc.boards.Create(ctx, b); err != nil {
		return View{}, err
	}
	usecase.Publish(ctx, uc.events, b)
	return ViewOf(b), nil
}

func (uc *UseCase) Get(ctx context.Context, actorID, id string) (View, error) {
	b, err := uc.owned(ctx, actorID, id)
	if err != nil {
		return View{}, err
	}
	return ViewOf(b), nil
}

func (uc *UseCase) List(ctx context.Context, ownerID string, page domain.PageRequest) (domain.Page[View], error) {
	result, err := uc.boards.ListForUser(ctx, ownerID, page)
	if err != nil {
		return domain.Page[View]{}, err
	}
	return domain.MapPage(result, ViewOf), nil
}

func (uc *UseCase) Rename(ctx context.Context, actorID, id, title string) (View, error) {
	return uc.mutate(ctx, actorID, id, func(b *domain.Board) error { return b.Rename(title) })
}

func (uc *UseCase) AddColumn(ctx context.Context, actorID, id, title, color string) (View, error) {
	return uc.mutate(ctx, actorID, id, func(b *domain.Board) error {
		_, err := b.AddColumn(title, color)
		return err
	})
}

func (uc *UseCase) RenameColumn(ctx context.Context, actorID, id, columnID, title, color string) (View, error) {
	return uc.mutate(ctx, actorID, id, func(b *domain.Board) error { return b.RenameColumn(columnID, title, color) })
}

func (uc *UseCase) MoveColumn(ctx context.Context, actorID, id, columnID string, position int) (View, error) {
	return uc.mutate(ctx, actorID, id, func(b *domain.Board) error { return b.MoveColumn(columnID, position) })
}

func (uc *UseCase) RemoveColumn(ctx context.Context, actorID, id, columnID string) (View, error) {
	return uc.mutate(ctx, actorID, id, func(b *domain.Board) error { return b.RemoveColumn(columnID) })
}

func (uc *UseCase) AddCard(ctx context.Context, actorID, id, columnID string, in domain.CardInput) (View, error) {
	return uc.mutate(ctx, actorID, id, func(b *domain.Board) error {
		_, err := b.AddCard(columnID, in)
		return err
	})
}

func (uc *UseCase) MoveCard(ctx context.Context, actorID, id, cardID, toColumnID string, position int) (View, error) {
	return uc.mutate(ctx, actorID, id, func(b *domain.Board) error { return b.MoveCard(cardID, toColumnID, position) })
}

func (uc *UseCase) RemoveCard(ctx context.Context, actorID, id, cardID string) (View, error) {
	return uc.mutate(ctx, actorID, id, func(b *domain.Board) error { return b.RemoveCard(cardID) })
}

func (uc *UseCase) Delete(ctx context.Context, actorID, id string) error {
	if _, err := uc.owned(ctx, actorID, id); err != nil {
		return err
	}
	return uc.boards.Delete(ctx, id)
}

func (uc *UseCase) owned(ctx context.Context, actorID, id string) (*domain.Board, error) {
	b, err := uc.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.EnsureOwner(actorID); err != nil {
		return nil, err
	}
	return b, nil
}

func (uc *UseCase) mutate(ctx context.Context, actorID, id string, fn func(*domain.Board) error) (View, error) {
	b, err := uc.owned(ctx, actorID, id)
	if err != nil {
		return View{}, err
	}
	if err := fn(b); err != nil {
		return View{}, err
	}
	if err := uc.boards.Update(ctx, b); err != nil {
		return View{}, err
	}
	usecase.Publish(ctx, uc.events, b)
	return ViewOf(b), nil
}

package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/mocks"
	"github.com/fastygo/journal/usecase"
)

func TestBoardUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("create seeds default columns and publishes", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		boards := mocks.NewMockBoardRepository(ctrl)
		var names []string
		d := usecase.NewDispatcher(nil)
		d.SubscribeAll("recorder", func(_ context.Context, e domain.Event) error {
			names = append(names, e.EventName())
			return nil
		})
		uc := New(boards, d, nil)
		boards.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		view, err := uc.Create(ctx, "alice", "Sprint", nil)
		req.NoError(err)
		req.Len(view.Columns, 3)
		req.Equal([]string{domain.EventBoardCreated}, names)
	})

	t.Run("moving a card persists both columns", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		boards := mocks.NewMockBoardRepository(ctrl)
		uc := New(boards, nil, nil)

		b, _ := domain.NewBoard("alice", "Sprint", []string{"todo", "done"})
		cols := b.Columns()
		card, _ := b.AddCard(cols[0].ID, domain.CardInput{Title: "write tests"})
		b.ClearEvents()

		boards.EXPECT().GetByID(gomock.Any(), b.ID()).Return(b, nil)
		boards.EXPECT().Update(gomock.Any(), b).Return(nil)

		view, err := uc.MoveCard(ctx, "alice", b.ID(), card.ID, cols[1].ID, 5)
		req.NoError(err)
		req.Empty(view.Columns[0].Cards)
		req.Len(view.Columns[1].Cards, 1)
		req.Equal(0, view.Columns[1].Cards[0].Position)
		req.Empty(b.Events())
	})

	t.Run("strangers cannot touch the board", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		boards := mocks.NewMockBoardRepository(ctrl)
		uc := New(boards, nil, nil)
		b, _ := domain.NewBoard("alice", "Sprint", nil)
		boards.EXPECT().GetByID(gomock.Any(), b.ID()).Return(b, nil)

		_, err := uc.Rename(ctx, "bob", b.ID(), "mine now")
		require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})

	t.Run("missing board surfaces not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		boards := mocks.NewMockBoardRepository(ctrl)
		uc := New(boards, nil, nil)
		boards.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, domain.ErrBoardNotFound)

		require.ErrorIs(t, uc.Delete(ctx, "alice", "nope"), domain.ErrBoardNotFound)
	})
}

package friendship

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/mocks"
	"github.com/fastygo/journal/repository"
)

func pendingRequest(t *testing.T) *domain.FriendRequest {
	t.Helper()
	fr, err := domain.NewFriendRequest("alice", "bob")
	require.NoError(t, err)
	fr.ClearEvents()
	return fr
}

func TestSendRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and publishes", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		requests := mocks.NewMockFriendRequestRepository(ctrl)
		events := mocks.NewMockEventPublisher(ctrl)
		uc := New(requests, events, nil)

		requests.EXPECT().FindBetween(gomock.Any(), "alice", "bob").Return(nil, false, nil)
		requests.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		events.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Do(func(_ context.Context, evs ...domain.Event) {
			req.Equal(domain.EventFriendRequestSent, evs[0].EventName())
		})

		view, err := uc.SendRequest(ctx, "alice", "bob")
		req.NoError(err)
		req.Equal(domain.FriendRequestPending, view.Status)
	})

	t.Run("pending request in either direction is a duplicate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		requests := mocks.NewMockFriendRequestRepository(ctrl)
		uc := New(requests, nil, nil)
		reverse, _ := domain.NewFriendRequest("bob", "alice")
		requests.EXPECT().FindBetween(gomock.Any(), "alice", "bob").Return(reverse, true, nil)

		_, err := uc.SendRequest(ctx, "alice", "bob")

		require.ErrorIs(t, err, domain.ErrFriendRequestDuplicate)
	})

	t.Run("self request is invalid before any lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := New(mocks.NewMockFriendRequestRepository(ctrl), nil, nil)

		_, err := uc.SendRequest(ctx, "alice", "alice")

		require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	})
}

func TestRespond(t *testing.T) {
	ctx := context.Background()

	t.Run("second response is a conflict", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		requests := mocks.NewMockFriendRequestRepository(ctrl)
		events := mocks.NewMockEventPublisher(ctrl)
		uc := New(requests, events, nil)
		fr := pendingRequest(t)

		requests.EXPECT().GetByID(gomock.Any(), fr.ID()).Return(fr, nil).Times(2)
		requests.EXPECT().Update(gomock.Any(), fr).Return(nil).Times(1)
		events.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(1)

		view, err := uc.Accept(ctx, "bob", fr.ID())
		req.NoError(err)
		req.Equal(domain.FriendRequestAccepted, view.Status)
		req.NotNil(view.RespondedAt)

		_, err = uc.Reject(ctx, "bob", fr.ID())
		req.True(domain.IsDomainError(err, domain.ErrCodeConflict))
	})

	t.Run("only the receiver responds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		requests := mocks.NewMockFriendRequestRepository(ctrl)
		uc := New(requests, nil, nil)
		fr := pendingRequest(t)
		requests.EXPECT().GetByID(gomock.Any(), fr.ID()).Return(fr, nil)

		_, err := uc.Accept(ctx, "alice", fr.ID())

		require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})

	t.Run("cancel is reserved to the sender", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		requests := mocks.NewMockFriendRequestRepository(ctrl)
		uc := New(requests, nil, nil)
		fr := pendingRequest(t)
		requests.EXPECT().GetByID(gomock.Any(), fr.ID()).Return(fr, nil).Times(2)
		requests.EXPECT().Delete(gomock.Any(), fr.ID()).Return(nil)

		req.True(domain.IsDomainError(uc.Cancel(ctx, "bob", fr.ID()), domain.ErrCodeForbidden))
		req.NoError(uc.Cancel(ctx, "alice", fr.ID()))
	})
}

func TestList(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	requests := mocks.NewMockFriendRequestRepository(ctrl)
	uc := New(requests, nil, nil)
	page := domain.PageRequest{Page: 1, Limit: 10}
	requests.EXPECT().
		List(gomock.Any(), repository.FriendRequestFilter{UserID: "bob", Status: domain.FriendRequestPending}, page).
		Return(domain.Page[*domain.FriendRequest]{Items: []*domain.FriendRequest{pendingRequest(t)}, Total: 1, Request: page}, nil)

	result, err := uc.List(context.Background(), "bob", "pending", page)
	req.NoError(err)
	req.Len(result.Items, 1)
	req.Equal(1, result.Pagination().TotalPages)

	_, err = uc.List(context.Background(), "bob", "blocked", page)
	req.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
}

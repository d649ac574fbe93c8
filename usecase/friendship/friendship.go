package friendship

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
	"github.com/fastygo/journal/usecase"
)

type RequestView struct {
	ID          string                     `json:"id"`
	SenderID    string                     `json:"senderId"`
	ReceiverID  string                     `json:"receiverId"`
	Status      domain.FriendRequestStatus `json:"status"`
	CreatedAt   time.Time                  `json:"createdAt"`
	RespondedAt *time.Time                 `json:"respondedAt,omitempty"`
}

func RequestViewOf(r *domain.FriendRequest) RequestView {
	return RequestView{
		ID:          r.ID(),
		SenderID:    r.SenderID(),
		ReceiverID:  r.ReceiverID(),
		Status:      r.Status(),
		CreatedAt:   r.CreatedAt(),
		RespondedAt: r.RespondedAt(),
	}
}

type UseCase struct {
	requests repository.FriendRequestRepository
	events   usecase.EventPublisher
	logger   *zap.Logger
}

func New(requests repository.FriendRequestRepository, events usecase.EventPublisher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{requests: requests, events: events, logger: logger}
}

// SendRequest rejects a request while a pending one exists in either direction or the users are already friends.
func (uc *UseCase) SendRequest(ctx context.Context, senderID, receiverID string) (RequestView, error) {
	request, err := domain.NewFriendRequest(senderID, receiverID)
	if err != nil {
		return RequestView{}, err
	}
	existing, found, err := uc.requests.FindBetween(ctx, senderID, receiverID)
	if err != nil {
		return RequestView{}, err
	}
	if found {
		if existing.Status() == domain.FriendRequestAccepted {
			return RequestView{}, domain.Conflict("already friends")
		}
		return RequestView{}, domain.ErrFriendRequestDuplicate
	}
	if err := uc.requests.Create(ctx, request); err != nil {
		return RequestView{}, err
	}
	usecase.Publish(ctx, uc.events, request)
	return RequestViewOf(request), nil
}

func (uc *UseCase) Accept(ctx context.Context, actorID, requestID string) (RequestView, error) {
	return uc.respond(ctx, requestID, func(r *domain.FriendRequest) error { return r.Accept(actorID) })
}

func (uc *UseCase) Reject(ctx context.Context, actorID, requestID string) (RequestView, error) {
	return uc.respond(ctx, requestID, func(r *domain.FriendRequest) error { return r.Reject(actorID) })
}

// Cancel withdraws a pending request. Only the sender may cancel.
func (uc *UseCase) Cancel(ctx context.Context, actorID, requestID string) error {
	request, err := uc.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := request.CanCancel(actorID); err != nil {
		return err
	}
	return uc.requests.Delete(ctx, requestID)
}

func (uc *UseCase) Get(ctx context.Context, actorID, requestID string) (RequestView, error) {
	request, err := uc.requests.GetByID(ctx, requestID)
	if err != nil {
		return RequestView{}, err
	}
	if !request.Involves(actorID) {
		return RequestView{}, domain.Forbidden("friend request belongs to other users")
	}
	return RequestViewOf(request), nil
}

// List pages the requests userID sent or received, optionally narrowed to one status.
func (uc *UseCase) List(ctx context.Context, userID string, status string, page domain.PageRequest) (domain.Page[RequestView], error) {
	filter := repository.FriendRequestFilter{UserID: userID}
	if status != "" {
		switch s := domain.FriendRequestStatus(status); s {
		case domain.FriendRequestPending, domain.FriendRequestAccepted, domain.FriendRequestRejected:
			filter.Status = s
		default:
			return domain.Page[RequestView]{}, domain.Invalid("unknown friend request status %q", status)
		}
	}
	result, err := uc.requests.List(ctx, filter, page)
	if err != nil {
		return domain.Page[RequestView]{}, err
	}
	return domain.MapPage(result, RequestViewOf), nil
}

func (uc *UseCase) respond(ctx context.Context, requestID string, transition func(*domain.FriendRequest) error) (RequestView, error) {
	request, err := uc.requests.GetByID(ctx, requestID)
	if err != nil {
		return RequestView{}, err
	}
	if err := transition(request); err != nil {
		return RequestView{}, err
	}
	if err := uc.requests.Update(ctx, request); err != nil {
		return RequestView{}, err
	}
	usecase.Publish(ctx, uc.events, request)
	return RequestViewOf(request), nil
}

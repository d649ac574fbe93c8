package domain

import "time"

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest transitions exactly once: pending to accepted or pending to rejected.
type FriendRequest struct {
	AggregateRoot

	id          string
	senderID    string
	receiverID  string
	status      FriendRequestStatus
	createdAt   time.Time
	respondedAt *time.Time
}

func NewFriendRequest(senderID, receiverID string) (*FriendRequest, error) {
	if senderID == "" || receiverID == "" {
		return nil, Invalid("sender and receiver are required")
	}
	if senderID == receiverID {
		return nil, Invalid("cannot send a friend request to yourself")
	}
	at := Touch()
	fr := &FriendRequest{
		id:         newID(),
		senderID:   senderID,
		receiverID: receiverID,
		status:     FriendRequestPending,
		createdAt:  at,
	}
	fr.record(FriendRequestSent{EventBase: newEventBase(fr.id, at), SenderID: senderID, ReceiverID: receiverID})
	return fr, nil
}

func ReconstituteFriendRequest(id, senderID, receiverID string, status FriendRequestStatus, createdAt time.Time, respondedAt *time.Time) *FriendRequest {
	return &FriendRequest{
		id:          id,
		senderID:    senderID,
		receiverID:  receiverID,
		status:      status,
		createdAt:   createdAt,
		respondedAt: respondedAt,
	}
}

func (f *FriendRequest) ID() string                  { return f.id }
func (f *FriendRequest) SenderID() string            { return f.senderID }
func (f *FriendRequest) ReceiverID() string          { return f.receiverID }
func (f *FriendRequest) Status() FriendRequestStatus { return f.status }
func (f *FriendRequest) CreatedAt() time.Time        { return f.createdAt }
func (f *FriendRequest) RespondedAt() *time.Time     { return f.respondedAt }
func (f *FriendRequest) IsPending() bool             { return f.status == FriendRequestPending }

// Involves reports whether userID is the sender or the receiver.
func (f *FriendRequest) Involves(userID string) bool {
	return userID == f.senderID || userID == f.receiverID
}

func (f *FriendRequest) Accept(actorID string) error {
	at, err := f.respond(actorID, FriendRequestAccepted)
	if err != nil {
		return err
	}
	f.record(FriendRequestAcceptedEvent{EventBase: newEventBase(f.id, at), SenderID: f.senderID, ReceiverID: f.receiverID})
	return nil
}

func (f *FriendRequest) Reject(actorID string) error {
	at, err := f.respond(actorID, FriendRequestRejected)
	if err != nil {
		return err
	}
	f.record(FriendRequestRejectedEvent{EventBase: newEventBase(f.id, at), SenderID: f.senderID, ReceiverID: f.receiverID})
	return nil
}

// CanCancel reports whether actorID may withdraw the request.
func (f *FriendRequest) CanCancel(actorID string) error {
	if actorID != f.senderID {
		return Forbidden("only the sender can cancel a friend request")
	}
	if f.status != FriendRequestPending {
		return ErrFriendRequestResolved
	}
	return nil
}

func (f *FriendRequest) respond(actorID string, to FriendRequestStatus) (time.Time, error) {
	if actorID != f.receiverID {
		return time.Time{}, Forbidden("only the receiver can respond to a friend request")
	}
	if f.status != FriendRequestPending {
		return time.Time{}, ErrFriendRequestResolved
	}
	at := Touch()
	f.status = to
	f.respondedAt = &at
	return at, nil
}

package domain

import "time"

const (
	EventConversationCreated  = "ConversationCreated"
	EventConversationRead     = "ConversationRead"
	EventConversationActivity = "ConversationActivity"

	EventMessageCreated         = "MessageCreated"
	EventMessageEdited          = "MessageEdited"
	EventMessageDeleted         = "MessageDeleted"
	EventMessageReactionToggled = "MessageReactionToggled"

	EventFriendRequestSent     = "FriendRequestSent"
	EventFriendRequestAccepted = "FriendRequestAccepted"
	EventFriendRequestRejected = "FriendRequestRejected"

	EventNotificationCreated = "NotificationCreated"
	EventNotificationRead    = "NotificationRead"

	EventMoodboardCreated    = "MoodboardCreated"
	EventMoodboardUpdated    = "MoodboardUpdated"
	EventMoodboardPinAdded   = "MoodboardPinAdded"
	EventMoodboardPinRemoved = "MoodboardPinRemoved"
	EventMoodboardPinMoved   = "MoodboardPinMoved"

	EventBoardCreated       = "BoardCreated"
	EventBoardRenamed       = "BoardRenamed"
	EventBoardColumnAdded   = "BoardColumnAdded"
	EventBoardColumnRemoved = "BoardColumnRemoved"
	EventBoardColumnRenamed = "BoardColumnRenamed"
	EventBoardColumnMoved   = "BoardColumnMoved"
	EventBoardCardAdded     = "BoardCardAdded"
	EventBoardCardMoved     = "BoardCardMoved"
	EventBoardCardRemoved   = "BoardCardRemoved"

	EventTableauCreated    = "TableauCreated"
	EventTableauRenamed    = "TableauRenamed"
	EventTableauRowAdded   = "TableauRowAdded"
	EventTableauRowUpdated = "TableauRowUpdated"
	EventTableauRowRemoved = "TableauRowRemoved"
	EventTableauRowMoved   = "TableauRowMoved"

	EventRewardEarned = "RewardEarned"

	EventPostCreated         = "PostCreated"
	EventPostUpdated         = "PostUpdated"
	EventPostReactionToggled = "PostReactionToggled"
	EventCommentAdded        = "CommentAdded"

	EventMoodLogged  = "MoodLogged"
	EventMoodUpdated = "MoodUpdated"
)

type ConversationCreated struct {
	EventBase
	CreatedBy      string   `json:"created_by"`
	ParticipantIDs []string `json:"participant_ids"`
}

func (ConversationCreated) EventName() string { return EventConversationCreated }

type ConversationRead struct {
	EventBase
	UserID string    `json:"user_id"`
	ReadAt time.Time `json:"read_at"`
}

func (ConversationRead) EventName() string { return EventConversationRead }

type ConversationActivity struct {
	EventBase
	MessageID string `json:"message_id"`
	SenderID  string `json:"sender_id"`
	Preview   string `json:"preview"`
}

func (ConversationActivity) EventName() string { return EventConversationActivity }

type MessageCreated struct {
	EventBase
	ConversationID  string `json:"conversation_id"`
	SenderID        string `json:"sender_id"`
	Preview         string `json:"preview"`
	AttachmentCount int    `json:"attachment_count"`
}

func (MessageCreated) EventName() string { return EventMessageCreated }

type MessageEdited struct {
	EventBase
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

func (MessageEdited) EventName() string { return EventMessageEdited }

type MessageDeleted struct {
	EventBase
	ConversationID string `json:"conversation_id"`
}

func (MessageDeleted) EventName() string { return EventMessageDeleted }

type MessageReactionToggled struct {
	EventBase
	ConversationID string         `json:"conversation_id"`
	SenderID       string         `json:"sender_id"`
	UserID         string         `json:"user_id"`
	Emoji          string         `json:"emoji"`
	Result         ReactionResult `json:"result"`
}

func (MessageReactionToggled) EventName() string { return EventMessageReactionToggled }

type FriendRequestSent struct {
	EventBase
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
}

func (FriendRequestSent) EventName() string { return EventFriendRequestSent }

type FriendRequestAcceptedEvent struct {
	EventBase
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
}

func (FriendRequestAcceptedEvent) EventName() string { return EventFriendRequestAccepted }

type FriendRequestRejectedEvent struct {
	EventBase
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
}

func (FriendRequestRejectedEvent) EventName() string { return EventFriendRequestRejected }

type NotificationCreated struct {
	EventBase
	UserID string            `json:"user_id"`
	Type   NotificationType  `json:"type"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

func (NotificationCreated) EventName() string { return EventNotificationCreated }

type NotificationRead struct {
	EventBase
	UserID string `json:"user_id"`
}

func (NotificationRead) EventName() string { return EventNotificationRead }

type MoodboardCreated struct {
	EventBase
	OwnerID string `json:"owner_id"`
	Title   string `json:"title"`
}

func (MoodboardCreated) EventName() string { return EventMoodboardCreated }

type MoodboardUpdated struct {
	EventBase
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (MoodboardUpdated) EventName() string { return EventMoodboardUpdated }

type MoodboardPinAdded struct {
	EventBase
	PinID    string  `json:"pin_id"`
	Kind     PinKind `json:"kind"`
	Position int     `json:"position"`
}

func (MoodboardPinAdded) EventName() string { return EventMoodboardPinAdded }

type MoodboardPinRemoved struct {
	EventBase
	PinID      string `json:"pin_id"`
	StorageKey string `json:"storage_key,omitempty"`
}

func (MoodboardPinRemoved) EventName() string { return EventMoodboardPinRemoved }

type MoodboardPinMoved struct {
	EventBase
	PinID string `json:"pin_id"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

func (MoodboardPinMoved) EventName() string { return EventMoodboardPinMoved }

type BoardCreated struct {
	EventBase
	OwnerID string `json:"owner_id"`
	Title   string `json:"title"`
}

func (BoardCreated) EventName() string { return EventBoardCreated }

type BoardRenamed struct {
	EventBase
	Title string `json:"title"`
}

func (BoardRenamed) EventName() string { return EventBoardRenamed }

type BoardColumnAdded struct {
	EventBase
	ColumnID string `json:"column_id"`
	Position int    `json:"position"`
}

func (BoardColumnAdded) EventName() string { return EventBoardColumnAdded }

type BoardColumnRemoved struct {
	EventBase
	ColumnID     string `json:"column_id"`
	CardsDropped int    `json:"cards_dropped"`
}

func (BoardColumnRemoved) EventName() string { return EventBoardColumnRemoved }

type BoardColumnRenamed struct {
	EventBase
	ColumnID string `json:"column_id"`
	Title    string `json:"title"`
}

func (BoardColumnRenamed) EventName() string { return EventBoardColumnRenamed }

type BoardColumnMoved struct {
	EventBase
	ColumnID string `json:"column_id"`
	From     int    `json:"from"`
	To       int    `json:"to"`
}

func (BoardColumnMoved) EventName() string { return EventBoardColumnMoved }

type BoardCardAdded struct {
	EventBase
	ColumnID string `json:"column_id"`
	CardID   string `json:"card_id"`
	Position int    `json:"position"`
}

func (BoardCardAdded) EventName() string { return EventBoardCardAdded }

type BoardCardMoved struct {
	EventBase
	CardID       string `json:"card_id"`
	FromColumnID string `json:"from_column_id"`
	ToColumnID   string `json:"to_column_id"`
	Position     int    `json:"position"`
}

func (BoardCardMoved) EventName() string { return EventBoardCardMoved }

type BoardCardRemoved struct {
	EventBase
	ColumnID string `json:"column_id"`
	CardID   string `json:"card_id"`
}

func (BoardCardRemoved) EventName() string { return EventBoardCardRemoved }

type TableauCreated struct {
	EventBase
	OwnerID string `json:"owner_id"`
	Title   string `json:"title"`
}

func (TableauCreated) EventName() string { return EventTableauCreated }

type TableauRenamed struct {
	EventBase
	Title string `json:"title"`
}

func (TableauRenamed) EventName() string { return EventTableauRenamed }

type TableauRowAdded struct {
	EventBase
	RowID    string `json:"row_id"`
	Position int    `json:"position"`
}

func (TableauRowAdded) EventName() string { return EventTableauRowAdded }

type TableauRowUpdated struct {
	EventBase
	RowID  string `json:"row_id"`
	Status string `json:"status"`
}

func (TableauRowUpdated) EventName() string { return EventTableauRowUpdated }

type TableauRowRemoved struct {
	EventBase
	RowID string `json:"row_id"`
}

func (TableauRowRemoved) EventName() string { return EventTableauRowRemoved }

type TableauRowMoved struct {
	EventBase
	RowID string `json:"row_id"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

func (TableauRowMoved) EventName() string { return EventTableauRowMoved }

type RewardEarned struct {
	EventBase
	UserID          string `json:"user_id"`
	AchievementID   string `json:"achievement_id"`
	AchievementName string `json:"achievement_name"`
	Points          int    `json:"points"`
}

func (RewardEarned) EventName() string { return EventRewardEarned }

type PostCreated struct {
	EventBase
	AuthorID string `json:"author_id"`
}

func (PostCreated) EventName() string { return EventPostCreated }

type PostUpdated struct {
	EventBase
	AuthorID string `json:"author_id"`
}

func (PostUpdated) EventName() string { return EventPostUpdated }

type PostReactionToggled struct {
	EventBase
	AuthorID string         `json:"author_id"`
	UserID   string         `json:"user_id"`
	Emoji    string         `json:"emoji"`
	Result   ReactionResult `json:"result"`
}

func (PostReactionToggled) EventName() string { return EventPostReactionToggled }

type CommentAdded struct {
	EventBase
	PostID       string `json:"post_id"`
	PostAuthorID string `json:"post_author_id"`
	AuthorID     string `json:"author_id"`
	Preview      string `json:"preview"`
}

func (CommentAdded) EventName() string { return EventCommentAdded }

type MoodLogged struct {
	EventBase
	UserID    string `json:"user_id"`
	Emotion   string `json:"emotion"`
	Intensity int    `json:"intensity"`
}

func (MoodLogged) EventName() string { return EventMoodLogged }

type MoodUpdated struct {
	EventBase
	Emotion   string `json:"emotion"`
	Intensity int    `json:"intensity"`
}

func (MoodUpdated) EventName() string { return EventMoodUpdated }

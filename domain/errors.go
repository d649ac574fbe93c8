package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches two domain errors by code and message so sentinel values survive wrapping.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) || e == nil || other == nil {
		return false
	}
	return e.Code == other.Code && e.Message == other.Message
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Invalid(format string, args ...any) *Error {
	return NewError(ErrCodeInvalid, fmt.Sprintf(format, args...))
}

func Forbidden(format string, args ...any) *Error {
	return NewError(ErrCodeForbidden, fmt.Sprintf(format, args...))
}

func Conflict(format string, args ...any) *Error {
	return NewError(ErrCodeConflict, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...any) *Error {
	return NewError(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// Common domain errors.
var (
	ErrUserNotFound           = NewError(ErrCodeNotFound, "user not found")
	ErrSessionNotFound        = NewError(ErrCodeNotFound, "session not found")
	ErrConversationNotFound   = NewError(ErrCodeNotFound, "conversation not found")
	ErrMessageNotFound        = NewError(ErrCodeNotFound, "message not found")
	ErrFriendRequestNotFound  = NewError(ErrCodeNotFound, "friend request not found")
	ErrNotificationNotFound   = NewError(ErrCodeNotFound, "notification not found")
	ErrMoodboardNotFound      = NewError(ErrCodeNotFound, "moodboard not found")
	ErrBoardNotFound          = NewError(ErrCodeNotFound, "board not found")
	ErrTableauNotFound        = NewError(ErrCodeNotFound, "tableau not found")
	ErrRewardNotFound         = NewError(ErrCodeNotFound, "reward not found")
	ErrAchievementNotFound    = NewError(ErrCodeNotFound, "achievement not found")
	ErrPostNotFound           = NewError(ErrCodeNotFound, "post not found")
	ErrCommentNotFound        = NewError(ErrCodeNotFound, "comment not found")
	ErrMoodNotFound           = NewError(ErrCodeNotFound, "mood entry not found")
	ErrPushTokenNotFound      = NewError(ErrCodeNotFound, "push token not found")
	ErrUnauthorized           = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload         = NewError(ErrCodeInvalid, "invalid payload")
	ErrRewardImmutable        = NewError(ErrCodeConflict, "user rewards are immutable")
	ErrFriendRequestResolved  = NewError(ErrCodeConflict, "friend request already resolved")
	ErrMoodboardFull          = NewError(ErrCodeConflict, "moodboard pin limit reached")
	ErrRewardAlreadyEarned    = NewError(ErrCodeConflict, "achievement already earned")
	ErrFriendRequestDuplicate = NewError(ErrCodeConflict, "friend request already exists")
	ErrMessageDeleted         = NewError(ErrCodeConflict, "message was deleted")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// CodeOf returns the classification of err, INTERNAL for anything unclassified.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}

package transport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fastygo/journal/domain"
)

var validate = validator.New()

// Validate runs the struct tags of req and reports every failing field as one INVALID error.
func Validate(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.Invalid("invalid payload")
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, describe(fe))
	}
	return domain.Invalid("%s", strings.Join(parts, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// ParsePage reads ?page=&limit=. Missing values take the defaults; malformed or
// out-of-range values are rejected instead of clamped.
func ParsePage(page, limit string) (domain.PageRequest, error) {
	req := domain.PageRequest{Page: 1, Limit: domain.DefaultPageLimit}
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 || n > domain.MaxPage {
			return req, domain.Invalid("page must be between 1 and %d", domain.MaxPage)
		}
		req.Page = n
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > domain.MaxPageLimit {
			return req, domain.Invalid("limit must be between 1 and %d", domain.MaxPageLimit)
		}
		req.Limit = n
	}
	return req, nil
}

// ParseTime accepts RFC3339 timestamps; empty means absent.
func ParseTime(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.Invalid("%s must be an RFC3339 timestamp", field)
	}
	return &t, nil
}

type AttachmentRequest struct {
	URL      string `json:"url" validate:"required,url"`
	MimeType string `json:"mimeType" validate:"required,max=100"`
	Size     int64  `json:"size" validate:"gte=0"`
}

func (a AttachmentRequest) Input() domain.AttachmentInput {
	return domain.AttachmentInput{URL: a.URL, MimeType: a.MimeType, Size: a.Size}
}

type SendDirectMessageRequest struct {
	RecipientID string              `json:"recipientId" validate:"required"`
	Content     string              `json:"content" validate:"max=5000"`
	Attachments []AttachmentRequest `json:"attachments" validate:"max=10,dive"`
}

type SendMessageRequest struct {
	Content     string              `json:"content" validate:"max=5000"`
	Attachments []AttachmentRequest `json:"attachments" validate:"max=10,dive"`
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type ReactionRequest struct {
	Emoji string `json:"emoji" validate:"required,max=32"`
}

type FriendRequestRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
}

type PreferencesRequest struct {
	Enabled        *bool `json:"enabled"`
	FriendRequests *bool `json:"friendRequests"`
	Messages       *bool `json:"messages"`
	Rewards        *bool `json:"rewards"`
}

type PushTokenRequest struct {
	Token    string `json:"token" validate:"required,max=512"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}

type MoodboardRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type PinRequest struct {
	StorageKey string `json:"storageKey" validate:"required_with=ImageURL,max=512"`
	ImageURL   string `json:"imageUrl" validate:"omitempty,url"`
	Color      string `json:"color" validate:"omitempty,hexcolor"`
	Caption    string `json:"caption" validate:"max=500"`
}

func (p PinRequest) Input() domain.PinInput {
	return domain.PinInput{StorageKey: p.StorageKey, ImageURL: p.ImageURL, Color: p.Color, Caption: p.Caption}
}

type MoveRequest struct {
	Position *int `json:"position" validate:"required,min=0"`
}

type UploadURLRequest struct {
	FileName string `json:"fileName" validate:"max=255"`
	MimeType string `json:"mimeType" validate:"required,max=100"`
	Size     int64  `json:"size" validate:"required,gt=0"`
}

type BoardRequest struct {
	Title   string   `json:"title" validate:"required,max=100"`
	Columns []string `json:"columns" validate:"max=20,dive,required,max=60"`
}

type RenameRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

type ColumnRequest struct {
	Title string `json:"title" validate:"required,max=60"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type CardRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	DueAt       *time.Time `json:"dueAt"`
}

func (c CardRequest) Input() domain.CardInput {
	return domain.CardInput{Title: c.Title, Description: c.Description, DueAt: c.DueAt}
}

type MoveCardRequest struct {
	ColumnID string `json:"columnId" validate:"required"`
	Position *int   `json:"position" validate:"required,min=0"`
}

type TableauRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

type RowRequest struct {
	Label    string     `json:"label" validate:"required,max=200"`
	Status   string     `json:"status" validate:"max=20"`
	Priority string     `json:"priority" validate:"max=20"`
	Emotion  string     `json:"emotion" validate:"max=20"`
	Note     string     `json:"note" validate:"max=2000"`
	Date     *time.Time `json:"date"`
}

func (r RowRequest) Input() domain.RowInput {
	return domain.RowInput{Label: r.Label, Status: r.Status, Priority: r.Priority, Emotion: r.Emotion, Note: r.Note, Date: r.Date}
}

type AwardRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

type PostRequest struct {
	Content    string `json:"content" validate:"required,max=5000"`
	Emotion    string `json:"emotion" validate:"max=20"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=private friends public"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type MoodRequest struct {
	Emotion   string     `json:"emotion" validate:"required,max=20"`
	Intensity int        `json:"intensity" validate:"required,min=1,max=10"`
	Note      string     `json:"note" validate:"max=2000"`
	LoggedAt  *time.Time `json:"loggedAt"`
}

package transport

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/journal/domain"
)

func TestValidate(t *testing.T) {
	req := require.New(t)

	req.NoError(Validate(MoodRequest{Emotion: "joy", Intensity: 5}))
	req.NoError(Validate(PinRequest{StorageKey: "moodboards/alice/a.png", ImageURL: "https://cdn.test/a.png"}))
	req.True(domain.IsDomainError(Validate(PinRequest{ImageURL: "https://cdn.test/a.png"}), domain.ErrCodeInvalid))

	err := Validate(MoodRequest{Emotion: "", Intensity: 11})
	req.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
	req.Contains(err.Error(), "Emotion is required")
	req.Contains(err.Error(), "Intensity must be at most 10")

	err = Validate(PostRequest{Content: "x", Visibility: "everyone"})
	req.Contains(err.Error(), "Visibility must be one of")

	err = Validate(SendDirectMessageRequest{RecipientID: "u2", Attachments: []AttachmentRequest{{URL: "not a url", MimeType: "image/png"}}})
	req.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestParsePage(t *testing.T) {
	req := require.New(t)

	p, err := ParsePage("", "")
	req.NoError(err)
	req.Equal(domain.PageRequest{Page: 1, Limit: 20}, p)

	p, err = ParsePage("3", "100")
	req.NoError(err)
	req.Equal(domain.PageRequest{Page: 3, Limit: 100}, p)

	p, err = ParsePage(strconv.Itoa(domain.MaxPage), "")
	req.NoError(err)
	req.Equal(domain.MaxPage, p.Page)

	for _, bad := range [][2]string{{"0", ""}, {"x", ""}, {"", "101"}, {"", "0"}, {"922337203685477580", ""}, {strconv.Itoa(domain.MaxPage + 1), ""}} {
		_, err := ParsePage(bad[0], bad[1])
		req.True(domain.IsDomainError(err, domain.ErrCodeInvalid), bad)
	}
}

func TestNewPage(t *testing.T) {
	req := require.New(t)
	env := NewPage(domain.Page[string]{Total: 45, Request: domain.PageRequest{Page: 2, Limit: 20}})

	req.Equal("success", env.Status)
	req.Equal([]string{}, env.Data)
	meta := env.Meta.(domain.Pagination)
	req.Equal(3, meta.TotalPages)
	req.True(meta.HasNextPage)
	req.True(meta.HasPreviousPage)
}

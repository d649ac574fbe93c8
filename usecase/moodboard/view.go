package moodboard

import (
	"time"

	"github.com/samber/lo"

	"github.com/fastygo/journal/domain"
)

type PinView struct {
	ID         string         `json:"id"`
	Kind       domain.PinKind `json:"kind"`
	StorageKey string         `json:"storageKey,omitempty"`
	ImageURL   string         `json:"imageUrl,omitempty"`
	Color      string         `json:"color,omitempty"`
	Caption    string         `json:"caption,omitempty"`
	Position   int            `json:"position"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type View struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Pins        []PinView `json:"pins"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ViewOf(m *domain.Moodboard) View {
	return View{
		ID:          m.ID(),
		OwnerID:     m.OwnerID(),
		Title:       m.Title(),
		Description: m.Description(),
		Pins:        lo.Map(m.Pins(), func(p domain.Pin, _ int) PinView { return pinView(p) }),
		CreatedAt:   m.CreatedAt(),
		UpdatedAt:   m.UpdatedAt(),
	}
}

func pinView(p domain.Pin) PinView {
	return PinView{
		ID:         p.ID,
		Kind:       p.Kind,
		StorageKey: p.StorageKey,
		ImageURL:   p.ImageURL,
		Color:      string(p.Color),
		Caption:    p.Caption,
		Position:   p.Position,
		CreatedAt:  p.CreatedAt,
	}
}

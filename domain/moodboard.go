package domain

import (
	"strings"
	"time"
)

const MaxMoodboardPins = 50

type PinKind string

const (
	PinImage PinKind = "image"
	PinColor PinKind = "color"
)

// Pin is an image or a color swatch on a moodboard. The two payloads are mutually exclusive.
type Pin struct {
	ID         string
	Kind       PinKind
	StorageKey string
	ImageURL   string
	Color      HexColor
	Caption    string
	Position   int
	CreatedAt  time.Time
}

// PinInput describes a pin to add. Exactly one of ImageURL or Color must be set, and an
// image always carries the StorageKey returned with its upload URL.
type PinInput struct {
	StorageKey string
	ImageURL   string
	Color      string
	Caption    string
}

type Moodboard struct {
	AggregateRoot

	id          string
	ownerID     string
	title       string
	description string
	pins        []Pin
	createdAt   time.Time
	updatedAt   time.Time
}

func NewMoodboard(ownerID, title, description string) (*Moodboard, error) {
	if ownerID == "" {
		return nil, Invalid("owner id is required")
	}
	t, err := requireText("title", title, 100)
	if err != nil {
		return nil, err
	}
	d, err := optionalText("description", description, 1000)
	if err != nil {
		return nil, err
	}
	at := Touch()
	m := &Moodboard{id: newID(), ownerID: ownerID, title: t, description: d, createdAt: at, updatedAt: at}
	m.record(MoodboardCreated{EventBase: newEventBase(m.id, at), OwnerID: ownerID, Title: t})
	return m, nil
}

func ReconstituteMoodboard(id, ownerID, title, description string, pins []Pin, createdAt, updatedAt time.Time) *Moodboard {
	ps := make([]Pin, len(pins))
	copy(ps, pins)
	sortByPosition(ps, func(p Pin) int { return p.Position })
	return &Moodboard{
		id:          id,
		ownerID:     ownerID,
		title:       title,
		description: description,
		pins:        ps,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (m *Moodboard) ID() string           { return m.id }
func (m *Moodboard) OwnerID() string      { return m.ownerID }
func (m *Moodboard) Title() string        { return m.title }
func (m *Moodboard) Description() string  { return m.description }
func (m *Moodboard) CreatedAt() time.Time { return m.createdAt }
func (m *Moodboard) UpdatedAt() time.Time { return m.updatedAt }
func (m *Moodboard) Pins() []Pin {
	out := make([]Pin, len(m.pins))
	copy(out, m.pins)
	return out
}

// ImageKeys lists the storage keys of every image pin.
func (m *Moodboard) ImageKeys() []string {
	var keys []string
	for _, p := range m.pins {
		if p.Kind == PinImage && p.StorageKey != "" {
			keys = append(keys, p.StorageKey)
		}
	}
	return keys
}

func (m *Moodboard) EnsureOwner(actorID string) error {
	if actorID != m.ownerID {
		return Forbidden("moodboard belongs to another user")
	}
	return nil
}

func (m *Moodboard) Update(title, description string) error {
	t, err := requireText("title", title, 100)
	if err != nil {
		return err
	}
	d, err := optionalText("description", description, 1000)
	if err != nil {
		return err
	}
	m.title, m.description = t, d
	m.updatedAt = Touch()
	m.record(MoodboardUpdated{EventBase: newEventBase(m.id, m.updatedAt), Title: t, Description: d})
	return nil
}

// AddPin appends a pin at the end of the board.
func (m *Moodboard) AddPin(in PinInput) (Pin, error) {
	if len(m.pins) >= MaxMoodboardPins {
		return Pin{}, ErrMoodboardFull
	}
	caption, err := optionalText("caption", in.Caption, 280)
	if err != nil {
		return Pin{}, err
	}
	hasImage := strings.TrimSpace(in.ImageURL) != ""
	hasColor := strings.TrimSpace(in.Color) != ""
	at := Touch()
	pin := Pin{ID: newID(), Caption: caption, Position: len(m.pins), CreatedAt: at}
	switch {
	case hasImage && hasColor:
		return Pin{}, Invalid("a pin is either an image or a color, not both")
	case hasImage:
		if strings.TrimSpace(in.StorageKey) == "" {
			return Pin{}, Invalid("an image pin needs the storage key of its upload")
		}
		pin.Kind = PinImage
		pin.ImageURL = strings.TrimSpace(in.ImageURL)
		pin.StorageKey = strings.TrimSpace(in.StorageKey)
	case hasColor:
		color, err := NewHexColor(in.Color)
		if err != nil {
			return Pin{}, err
		}
		pin.Kind = PinColor
		pin.Color = color
	default:
		return Pin{}, Invalid("a pin needs an image or a color")
	}

	m.pins = append(m.pins, pin)
	m.updatedAt = at
	m.record(MoodboardPinAdded{EventBase: newEventBase(m.id, at), PinID: pin.ID, Kind: pin.Kind, Position: pin.Position})
	return pin, nil
}

// RemovePin drops a pin and renumbers the rest to 0..n-1.
func (m *Moodboard) RemovePin(pinID string) (Pin, error) {
	idx := indexWhere(m.pins, func(p Pin) bool { return p.ID == pinID })
	if idx < 0 {
		return Pin{}, NotFound("pin %s not found", pinID)
	}
	removed := m.pins[idx]
	m.pins = removeAt(m.pins, idx)
	renumber(m.pins, func(p *Pin, i int) { p.Position = i })
	m.updatedAt = Touch()
	m.record(MoodboardPinRemoved{EventBase: newEventBase(m.id, m.updatedAt), PinID: pinID, StorageKey: removed.StorageKey})
	return removed, nil
}

func (m *Moodboard) MovePin(pinID string, to int) error {
	from := indexWhere(m.pins, func(p Pin) bool { return p.ID == pinID })
	if from < 0 {
		return NotFound("pin %s not found", pinID)
	}
	m.pins = moveItem(m.pins, from, to)
	renumber(m.pins, func(p *Pin, i int) { p.Position = i })
	m.updatedAt = Touch()
	m.record(MoodboardPinMoved{EventBase: newEventBase(m.id, m.updatedAt), PinID: pinID, From: from, To: m.pinPosition(pinID)})
	return nil
}

func (m *Moodboard) pinPosition(pinID string) int {
	return indexWhere(m.pins, func(p Pin) bool { return p.ID == pinID })
}

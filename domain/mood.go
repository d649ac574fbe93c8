package domain

import "time"

const (
	MinMoodIntensity = 1
	MaxMoodIntensity = 10
)

// MoodEntry is one logged feeling.
type MoodEntry struct {
	AggregateRoot

	id        string
	userID    string
	emotion   Emotion
	intensity int
	note      string
	loggedAt  time.Time
	updatedAt time.Time
}

func NewMoodEntry(userID, emotion string, intensity int, note string, loggedAt *time.Time) (*MoodEntry, error) {
	if userID == "" {
		return nil, Invalid("user id is required")
	}
	m := &MoodEntry{id: newID(), userID: userID}
	if err := m.apply(emotion, intensity, note); err != nil {
		return nil, err
	}
	m.updatedAt = Touch()
	m.loggedAt = m.updatedAt
	if loggedAt != nil && !loggedAt.IsZero() {
		m.loggedAt = loggedAt.UTC().Truncate(time.Microsecond)
	}
	m.record(MoodLogged{EventBase: newEventBase(m.id, m.updatedAt), UserID: userID, Emotion: string(m.emotion), Intensity: m.intensity})
	return m, nil
}

func ReconstituteMoodEntry(id, userID string, emotion Emotion, intensity int, note string, loggedAt, updatedAt time.Time) *MoodEntry {
	return &MoodEntry{id: id, userID: userID, emotion: emotion, intensity: intensity, note: note, loggedAt: loggedAt, updatedAt: updatedAt}
}

func (m *MoodEntry) ID() string           { return m.id }
func (m *MoodEntry) UserID() string       { return m.userID }
func (m *MoodEntry) Emotion() Emotion     { return m.emotion }
func (m *MoodEntry) Intensity() int       { return m.intensity }
func (m *MoodEntry) Note() string         { return m.note }
func (m *MoodEntry) LoggedAt() time.Time  { return m.loggedAt }
func (m *MoodEntry) UpdatedAt() time.Time { return m.updatedAt }

func (m *MoodEntry) EnsureOwner(actorID string) error {
	if actorID != m.userID {
		return Forbidden("mood entry belongs to another user")
	}
	return nil
}

func (m *MoodEntry) Update(emotion string, intensity int, note string) error {
	if err := m.apply(emotion, intensity, note); err != nil {
		return err
	}
	m.updatedAt = Touch()
	m.record(MoodUpdated{EventBase: newEventBase(m.id, m.updatedAt), Emotion: string(m.emotion), Intensity: m.intensity})
	return nil
}

func (m *MoodEntry) apply(emotion string, intensity int, note string) error {
	e, err := NewEmotion(emotion)
	if err != nil {
		return err
	}
	if intensity < MinMoodIntensity || intensity > MaxMoodIntensity {
		return Invalid("intensity must be between %d and %d", MinMoodIntensity, MaxMoodIntensity)
	}
	n, err := optionalText("note", note, 2000)
	if err != nil {
		return err
	}
	m.emotion, m.intensity, m.note = e, intensity, n
	return nil
}

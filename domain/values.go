package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Emotion categorizes a mood, a post or a tableau row.
type Emotion string

const (
	EmotionJoy       Emotion = "joy"
	EmotionCalm      Emotion = "calm"
	EmotionLove      Emotion = "love"
	EmotionGratitude Emotion = "gratitude"
	EmotionSurprise  Emotion = "surprise"
	EmotionSadness   Emotion = "sadness"
	EmotionAnxiety   Emotion = "anxiety"
	EmotionAnger     Emotion = "anger"
	EmotionFear      Emotion = "fear"
	EmotionTired     Emotion = "tired"
	EmotionNeutral   Emotion = "neutral"
)

var emotions = map[Emotion]struct{}{
	EmotionJoy: {}, EmotionCalm: {}, EmotionLove: {}, EmotionGratitude: {},
	EmotionSurprise: {}, EmotionSadness: {}, EmotionAnxiety: {}, EmotionAnger: {},
	EmotionFear: {}, EmotionTired: {}, EmotionNeutral: {},
}

func NewEmotion(raw string) (Emotion, error) {
	e := Emotion(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := emotions[e]; !ok {
		return "", Invalid("unknown emotion %q", raw)
	}
	return e, nil
}

func (e Emotion) String() string { return string(e) }

const MaxContentLength = 5000

// Content is trimmed, non-empty user text.
type Content string

func NewContent(raw string) (Content, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", Invalid("content must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > MaxContentLength {
		return "", Invalid("content exceeds %d characters", MaxContentLength)
	}
	return Content(trimmed), nil
}

func (c Content) String() string { return string(c) }

// Preview returns at most n runes of the content.
func (c Content) Preview(n int) string {
	runes := []rune(string(c))
	if len(runes) <= n {
		return string(c)
	}
	return string(runes[:n]) + "…"
}

var hexColorPattern = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{6})$`)

// HexColor is a lower-case #rgb or #rrggbb color.
type HexColor string

func NewHexColor(raw string) (HexColor, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if !hexColorPattern.MatchString(normalized) {
		return "", Invalid("invalid hex color %q", raw)
	}
	return HexColor(normalized), nil
}

func (c HexColor) String() string { return string(c) }

type RowStatus string

const (
	RowStatusTodo       RowStatus = "todo"
	RowStatusInProgress RowStatus = "in_progress"
	RowStatusDone       RowStatus = "done"
)

func NewRowStatus(raw string) (RowStatus, error) {
	switch s := RowStatus(strings.TrimSpace(raw)); s {
	case RowStatusTodo, RowStatusInProgress, RowStatusDone:
		return s, nil
	case "":
		return RowStatusTodo, nil
	default:
		return "", Invalid("invalid row status %q", raw)
	}
}

type RowPriority string

const (
	RowPriorityLow    RowPriority = "low"
	RowPriorityMedium RowPriority = "medium"
	RowPriorityHigh   RowPriority = "high"
)

func NewRowPriority(raw string) (RowPriority, error) {
	switch p := RowPriority(strings.TrimSpace(raw)); p {
	case RowPriorityLow, RowPriorityMedium, RowPriorityHigh:
		return p, nil
	case "":
		return RowPriorityMedium, nil
	default:
		return "", Invalid("invalid row priority %q", raw)
	}
}

const maxEmojiBytes = 16

// Emoji is a short reaction glyph.
type Emoji string

func NewEmoji(raw string) (Emoji, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || len(trimmed) > maxEmojiBytes {
		return "", Invalid("invalid emoji %q", raw)
	}
	return Emoji(trimmed), nil
}

func (e Emoji) String() string { return string(e) }

func requireText(field, raw string, max int) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", Invalid("%s is required", field)
	}
	if utf8.RuneCountInString(trimmed) > max {
		return "", Invalid("%s exceeds %d characters", field, max)
	}
	return trimmed, nil
}

func optionalText(field, raw string, max int) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) > max {
		return "", Invalid("%s exceeds %d characters", field, max)
	}
	return trimmed, nil
}

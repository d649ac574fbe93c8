package domain

import "time"

type ReactionResult string

const (
	ReactionAdded   ReactionResult = "added"
	ReactionRemoved ReactionResult = "removed"
)

// Reaction is a (user, emoji) pair on a message or a post. The pair is unique per subject.
type Reaction struct {
	UserID    string
	Emoji     Emoji
	CreatedAt time.Time
}

type reactionKey struct {
	userID string
	emoji  Emoji
}

func keyOfReaction(r Reaction) reactionKey {
	return reactionKey{userID: r.UserID, emoji: r.Emoji}
}

// ReactionSet is the watched reaction collection shared by messages and posts.
type ReactionSet = WatchedList[reactionKey, Reaction]

func NewReactionSet(initial []Reaction) *ReactionSet {
	return NewWatchedList(keyOfReaction, initial)
}

// toggleReaction flips the presence of (userID, emoji) in set.
func toggleReaction(set *ReactionSet, userID, rawEmoji string, at time.Time) (ReactionResult, Emoji, error) {
	if userID == "" {
		return "", "", Invalid("user id is required")
	}
	emoji, err := NewEmoji(rawEmoji)
	if err != nil {
		return "", "", err
	}
	candidate := Reaction{UserID: userID, Emoji: emoji, CreatedAt: at}
	if set.Exists(candidate) {
		set.Remove(candidate)
		return ReactionRemoved, emoji, nil
	}
	set.Add(candidate)
	return ReactionAdded, emoji, nil
}

// ReactionSummary groups reactions by emoji for views.
func ReactionSummary(reactions []Reaction) map[string]int {
	out := make(map[string]int)
	for _, r := range reactions {
		out[string(r.Emoji)]++
	}
	return out
}

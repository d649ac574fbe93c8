package deadletter

import (
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/journal/usecase"
)

// Entry is one failed event delivery as kept in the journal.
type Entry struct {
	ID string `json:"id"`
	usecase.DeadLetter

	key []byte
}

func newEntry(letter usecase.DeadLetter) Entry {
	if letter.FailedAt.IsZero() {
		letter.FailedAt = time.Now().UTC()
	}
	return Entry{ID: uuid.NewString(), DeadLetter: letter}
}

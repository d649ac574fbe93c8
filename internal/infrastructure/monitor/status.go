package monitor

import "time"

type Status struct {
	PostgreSQL      bool      `json:"postgresql"`
	Redis           bool      `json:"redis"`
	DeadLetters     bool      `json:"deadLetters"`
	DeadLetterCount int       `json:"deadLetterCount"`
	LastCheck       time.Time `json:"lastCheck"`
}

// Healthy reports whether the stores requests depend on answered the last check.
// The dead letter journal is informational only.
func (s Status) Healthy() bool {
	return s.PostgreSQL && s.Redis
}

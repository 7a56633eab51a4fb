package dataset

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Session is the read-only state one dashboard session renders from.
type Session struct {
	ID       string
	Source   string
	LoadedAt time.Time
	Columns  []string

	titles []Title
}

// NewSession wraps titles loaded from source.
func NewSession(source string, columns []string, titles []Title) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Source:   source,
		LoadedAt: time.Now(),
		Columns:  slices.Clone(columns),
		titles:   titles,
	}
}

// Titles returns a copy of the records in source order.
func (s *Session) Titles() []Title {
	return slices.Clone(s.titles)
}

// Len returns the number of records.
func (s *Session) Len() int {
	return len(s.titles)
}

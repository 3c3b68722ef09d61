package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies what sort of calendar item an Entry is
type Kind string

const (
	KindTask      Kind = "task"
	KindPlan      Kind = "plan"
	KindExecution Kind = "execution"
)

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	switch k {
	case KindTask, KindPlan, KindExecution:
		return true
	}
	return false
}

// Entry represents a timed calendar item. End is not guaranteed to be after
// Start; layout code tolerates equal and inverted values.
type Entry struct {
	ID        int64
	UID       string
	Kind      Kind
	Title     string
	Color     string
	Start     time.Time
	End       time.Time
	AllDay    bool
	Completed bool
}

// NewEntry creates a new Entry with a random UID
func NewEntry(kind Kind, title string, start, end time.Time) *Entry {
	return &Entry{
		UID:   uuid.NewString(),
		Kind:  kind,
		Title: title,
		Start: start,
		End:   end,
	}
}

// Duration returns End - Start, which may be zero or negative for malformed input
func (e Entry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

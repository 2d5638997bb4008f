// ABOUTME: Note model representing a short text note with lifecycle status.
// ABOUTME: Provides constructor, timestamp stamping, and persisted record encoding.

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is used when a note is created without a title.
const DefaultTitle = "Untitled"

// TimeLayout is the ISO-8601 form written for UpdatedAt.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Status is the note's checklist state. It is carried through every
// transition unchanged.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusCompleted
}

type Note struct {
	ID        string
	Title     string
	Content   string
	UpdatedAt time.Time
	Status    Status
}

// Stamp normalizes t to the precision that survives persistence.
func Stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// NewNote builds a pending note with a fresh UUID.
func NewNote(title, content string, now time.Time) *Note {
	return NewNoteWithID(uuid.New().String(), title, content, now)
}

// NewNoteWithID is NewNote with a caller-chosen id.
func NewNoteWithID(id, title, content string, now time.Time) *Note {
	if title == "" {
		title = DefaultTitle
	}
	return &Note{
		ID:        id,
		Title:     title,
		Content:   content,
		UpdatedAt: Stamp(now),
		Status:    StatusPending,
	}
}

func (n *Note) Touch(now time.Time) {
	n.UpdatedAt = Stamp(now)
}

// Matches reports whether query occurs in the title or content, ignoring
// case. An empty query matches everything.
func (n *Note) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q)
}

// record is the persisted shape of a note.
type record struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedAt string `json:"updatedAt"`
	Status    string `json:"status"`
}

func (n Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(record{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		UpdatedAt: n.UpdatedAt.UTC().Format(TimeLayout),
		Status:    string(n.Status),
	})
}

// UnmarshalJSON accepts any RFC 3339 timestamp. Missing or unknown status
// values decode as pending and a missing timestamp decodes as zero.
func (n *Note) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	n.ID = r.ID
	n.Title = r.Title
	n.Content = r.Content
	n.Status = Status(r.Status)
	if !n.Status.IsValid() {
		n.Status = StatusPending
	}
	n.UpdatedAt = time.Time{}
	if r.UpdatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("parse updatedAt: %w", err)
		}
		n.UpdatedAt = t.UTC()
	}
	return nil
}

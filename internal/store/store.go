// ABOUTME: Store owning the active, archived, and trashed note collections.
// ABOUTME: Provides move/insert/remove primitives and whole-store persistence.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/jot/internal/logging"
	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/storage"
	"github.com/sirupsen/logrus"
)

// PersistError reports which entries failed to write. In-memory state is
// unaffected by it.
type PersistError struct {
	Keys []string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", strings.Join(e.Keys, ", "), e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// LoadReport describes what Load had to discard.
type LoadReport struct {
	// Corrupt lists views whose entry could not be parsed and loaded empty.
	Corrupt []models.View
	// Dropped counts records discarded for a missing or repeated id.
	Dropped int
}

// Store holds the three collections, each ordered most recent first.
type Store struct {
	backend     storage.Backend
	log         *logrus.Logger
	collections map[models.View][]*models.Note
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and persist warnings.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend:     backend,
		collections: make(map[models.View][]*models.Note, len(models.Views)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	return s
}

// Load replaces the in-memory collections with the persisted ones. It never
// fails: missing entries load empty, unparsable entries load empty and are
// reported, and records that would break id uniqueness are dropped.
func (s *Store) Load() LoadReport {
	var report LoadReport
	seen := make(map[string]bool)

	for _, view := range models.Views {
		notes, err := s.read(view)
		if err != nil {
			s.log.WithError(err).WithField("entry", view.EntryKey()).Warn("discarding unreadable collection")
			report.Corrupt = append(report.Corrupt, view)
			notes = nil
		}

		kept := make([]*models.Note, 0, len(notes))
		for _, n := range notes {
			if n == nil || n.ID == "" || seen[n.ID] {
				report.Dropped++
				continue
			}
			seen[n.ID] = true
			kept = append(kept, n)
		}
		s.collections[view] = kept
	}

	if report.Dropped > 0 {
		s.log.WithField("count", report.Dropped).Warn("dropped notes with missing or duplicate ids")
	}
	return report
}

func (s *Store) read(view models.View) ([]*models.Note, error) {
	data, err := s.backend.Get(view.EntryKey())
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", view.EntryKey(), err)
	}

	var notes []*models.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("parse %s: %w", view.EntryKey(), err)
	}
	return notes, nil
}

// Persist writes all three collections. Every entry is attempted even when
// an earlier one fails.
func (s *Store) Persist() error {
	var (
		failed []string
		errs   []error
	)
	for _, view := range models.Views {
		key := view.EntryKey()
		notes := s.collections[view]
		if notes == nil {
			notes = []*models.Note{}
		}

		data, err := json.Marshal(notes)
		if err == nil {
			err = s.backend.Set(key, data)
		}
		if err != nil {
			failed = append(failed, key)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return &PersistError{Keys: failed, Err: errors.Join(errs...)}
	}
	return nil
}

// MoveBetween takes the note with id out of from and inserts it at the head
// of to. It reports false and changes nothing when id is not in from.
func (s *Store) MoveBetween(id string, from, to models.View) bool {
	note, ok := s.take(from, id)
	if !ok {
		return false
	}
	s.Insert(to, note)
	return true
}

// Insert places note at the head of view.
func (s *Store) Insert(view models.View, note *models.Note) {
	s.collections[view] = append([]*models.Note{note}, s.collections[view]...)
}

// Remove deletes the note with id from view.
func (s *Store) Remove(view models.View, id string) bool {
	_, ok := s.take(view, id)
	return ok
}

func (s *Store) take(view models.View, id string) (*models.Note, bool) {
	list := s.collections[view]
	for i, n := range list {
		if n.ID == id {
			s.collections[view] = append(list[:i:i], list[i+1:]...)
			return n, true
		}
	}
	return nil, false
}

// Find returns the live note with id in view. Callers inside the core may
// mutate it; anything handed to presentation code must be a copy.
func (s *Store) Find(view models.View, id string) (*models.Note, bool) {
	for _, n := range s.collections[view] {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// Locate reports which collection holds id.
func (s *Store) Locate(id string) (models.View, bool) {
	for _, view := range models.Views {
		if _, ok := s.Find(view, id); ok {
			return view, true
		}
	}
	return "", false
}

// Notes returns copies of the notes in view, in order.
func (s *Store) Notes(view models.View) []models.Note {
	list := s.collections[view]
	out := make([]models.Note, len(list))
	for i, n := range list {
		out[i] = *n
	}
	return out
}

func (s *Store) Len(view models.View) int {
	return len(s.collections[view])
}

// ABOUTME: Read side of the controller: search, visible notes, and id lookup.
// ABOUTME: Nothing here mutates a collection.

package notes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harper/jot/internal/models"
)

// MinPrefixLen is the shortest id prefix Resolve accepts.
const MinPrefixLen = 6

var (
	ErrPrefixTooShort  = errors.New("prefix must be at least 6 characters")
	ErrAmbiguousPrefix = errors.New("prefix matches multiple notes")
	ErrNoteNotFound    = errors.New("note not found")
)

// SetSearchQuery stores the trimmed query. An empty query clears the filter.
func (c *Controller) SetSearchQuery(q string) {
	c.query = strings.TrimSpace(q)
}

func (c *Controller) SearchQuery() string {
	return c.query
}

// VisibleNotes returns copies of the notes in view whose title or content
// contains query, ignoring case, in collection order.
func (c *Controller) VisibleNotes(view models.View, query string) []models.Note {
	all := c.store.Notes(view)
	if query == "" {
		return all
	}

	out := make([]models.Note, 0, len(all))
	for i := range all {
		if all[i].Matches(query) {
			out = append(out, all[i])
		}
	}
	return out
}

// Visible is VisibleNotes for the current view and query.
func (c *Controller) Visible() []models.Note {
	return c.VisibleNotes(c.view, c.query)
}

// Resolve finds a note in view by full id or by a unique id prefix of at
// least MinPrefixLen characters.
func (c *Controller) Resolve(view models.View, ref string) (models.Note, error) {
	if note, ok := c.store.Find(view, ref); ok {
		return *note, nil
	}
	if len(ref) < MinPrefixLen {
		return models.Note{}, ErrPrefixTooShort
	}

	var matches []models.Note
	for _, n := range c.store.Notes(view) {
		if strings.HasPrefix(n.ID, ref) {
			matches = append(matches, n)
		}
	}

	switch len(matches) {
	case 0:
		return models.Note{}, fmt.Errorf("%w in %s", ErrNoteNotFound, view)
	case 1:
		return matches[0], nil
	default:
		return models.Note{}, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(matches))
	}
}

// ResolveAny is Resolve across every view. It also returns the view that
// holds the note.
func (c *Controller) ResolveAny(ref string) (models.Note, models.View, error) {
	if note, view, ok := c.Find(ref); ok {
		return note, view, nil
	}
	if len(ref) < MinPrefixLen {
		return models.Note{}, "", ErrPrefixTooShort
	}

	var (
		found models.Note
		where models.View
		count int
	)
	for _, view := range models.Views {
		for _, n := range c.store.Notes(view) {
			if strings.HasPrefix(n.ID, ref) {
				found, where = n, view
				count++
			}
		}
	}

	switch count {
	case 0:
		return models.Note{}, "", ErrNoteNotFound
	case 1:
		return found, where, nil
	default:
		return models.Note{}, "", fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, count)
	}
}

// ABOUTME: Lifecycle controller exposing the note mutation API.
// ABOUTME: Tracks the current view, search query, and bulk selection over a Store.

package notes

import (
	"time"

	"github.com/google/uuid"
	"github.com/harper/jot/internal/logging"
	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/store"
	"github.com/sirupsen/logrus"
)

// Controller is the mutation surface over a Store. It is not safe for
// concurrent use; callers serialize access the way a UI event loop would.
type Controller struct {
	store *store.Store
	now   func() time.Time
	newID func() string
	log   *logrus.Logger
	warn  func(error)

	view     models.View
	query    string
	selected map[string]struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source used to stamp UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithIDGenerator overrides how new note ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) {
		c.newID = gen
	}
}

func WithLogger(log *logrus.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithWarningHandler receives persistence failures after they are logged.
func WithWarningHandler(fn func(error)) Option {
	return func(c *Controller) {
		c.warn = fn
	}
}

// New builds a controller over s in the active view. The store should
// already be loaded.
func New(s *store.Store, opts ...Option) *Controller {
	c := &Controller{
		store:    s,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		view:     models.ViewActive,
		selected: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	return c
}

// Create adds a pending note at the head of the active collection. It never
// fails; a note with empty title and content is allowed.
func (c *Controller) Create(title, content string) models.Note {
	note := models.NewNoteWithID(c.newID(), title, content, c.now())
	c.store.Insert(models.ViewActive, note)
	c.log.WithField("id", note.ID).Debug("created note")
	c.persist()
	return *note
}

// Update edits a note in the current view. Notes in other views are left
// alone and Update reports false.
func (c *Controller) Update(id, title, content string) bool {
	note, ok := c.store.Find(c.view, id)
	if !ok {
		return false
	}
	note.Title = title
	note.Content = content
	note.Touch(c.now())
	c.log.WithField("id", id).Debug("updated note")
	c.persist()
	return true
}

// MoveNote relocates a note along one of the legal transitions. Illegal
// pairs return ErrIllegalTransition; a note absent from from is a no-op.
func (c *Controller) MoveNote(id string, from, to models.View) (bool, error) {
	if err := CheckTransition(from, to); err != nil {
		return false, err
	}
	return c.move(id, from, to), nil
}

func (c *Controller) move(id string, from, to models.View) bool {
	if !c.store.MoveBetween(id, from, to) {
		return false
	}
	c.log.WithFields(logrus.Fields{"id": id, "from": from, "to": to}).Debug("moved note")
	c.persist()
	return true
}

// DeleteForever destroys a note in the trash. Notes anywhere else are
// unaffected. The store is persisted either way.
func (c *Controller) DeleteForever(id string) bool {
	removed := c.store.Remove(models.ViewTrash, id)
	if removed {
		c.log.WithField("id", id).Debug("deleted note forever")
	}
	c.persist()
	return removed
}

// Find returns a copy of the note with id and the view holding it.
func (c *Controller) Find(id string) (models.Note, models.View, bool) {
	view, ok := c.store.Locate(id)
	if !ok {
		return models.Note{}, "", false
	}
	note, _ := c.store.Find(view, id)
	return *note, view, true
}

// Counts returns the size of each collection.
func (c *Controller) Counts() map[models.View]int {
	out := make(map[models.View]int, len(models.Views))
	for _, v := range models.Views {
		out[v] = c.store.Len(v)
	}
	return out
}

// persist writes the store and routes any failure to the warning channel.
// The in-memory mutation always stands.
func (c *Controller) persist() {
	if err := c.store.Persist(); err != nil {
		c.Warn(err)
	}
}

// Warn reports a non-fatal failure through the logger and handler.
func (c *Controller) Warn(err error) {
	c.log.WithError(err).Warn("changes kept in memory but not saved")
	if c.warn != nil {
		c.warn(err)
	}
}

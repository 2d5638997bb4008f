// ABOUTME: Legal lifecycle transitions and bulk action dispatch.
// ABOUTME: A note must pass through the trash before it can be destroyed.

package notes

import (
	"errors"
	"fmt"

	"github.com/harper/jot/internal/models"
	"github.com/sirupsen/logrus"
)

var ErrIllegalTransition = errors.New("illegal transition")

type transition struct {
	from, to models.View
}

var legal = map[transition]bool{
	{models.ViewActive, models.ViewArchive}: true,
	{models.ViewActive, models.ViewTrash}:   true,
	{models.ViewArchive, models.ViewTrash}:  true,
	{models.ViewArchive, models.ViewActive}: true,
	{models.ViewTrash, models.ViewActive}:   true,
	{models.ViewTrash, models.ViewArchive}:  true,
}

// CheckTransition returns ErrIllegalTransition unless a note may move
// directly from one collection to the other.
func CheckTransition(from, to models.View) error {
	if !legal[transition{from, to}] {
		return fmt.Errorf("%w: %s to %s", ErrIllegalTransition, from, to)
	}
	return nil
}

// step is what a bulk action does to one note seen from a given view.
type step struct {
	to      models.View
	destroy bool
}

// plan resolves action in view to a step. ok is false when the action has
// no effect from that view.
func plan(action models.Action, view models.View) (step, bool) {
	switch action {
	case models.ActionTrash:
		if view == models.ViewTrash {
			return step{destroy: true}, true
		}
		if view == models.ViewActive || view == models.ViewArchive {
			return step{to: models.ViewTrash}, true
		}
	case models.ActionArchive:
		if view == models.ViewActive || view == models.ViewTrash {
			return step{to: models.ViewArchive}, true
		}
	case models.ActionRestore:
		if view == models.ViewArchive || view == models.ViewTrash {
			return step{to: models.ViewActive}, true
		}
	}
	return step{}, false
}

// BulkApply runs action on every id as seen from view and clears the
// selection. Each id is processed once; ids no longer in view are skipped.
// It returns how many notes actually changed.
func (c *Controller) BulkApply(action models.Action, ids []string, view models.View) int {
	defer c.ClearSelection()

	st, ok := plan(action, view)
	if !ok {
		return 0
	}

	applied := 0
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		var changed bool
		if st.destroy {
			changed = c.DeleteForever(id)
		} else {
			changed = c.move(id, view, st.to)
		}
		if changed {
			applied++
		}
	}

	c.log.WithFields(logrus.Fields{"action": action, "view": view, "applied": applied}).Debug("bulk action")
	return applied
}

// ApplyToSelection runs action over the current selection in the current view.
func (c *Controller) ApplyToSelection(action models.Action) int {
	return c.BulkApply(action, c.Selected(), c.view)
}

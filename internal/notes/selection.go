// ABOUTME: View switching and bulk selection state.
// ABOUTME: The selection belongs to the current view and never outlives it.

package notes

import (
	"sort"

	"github.com/harper/jot/internal/models"
)

func (c *Controller) View() models.View {
	return c.view
}

// SwitchView changes the current view and clears the selection. The search
// query is kept.
func (c *Controller) SwitchView(view models.View) error {
	if !view.IsValid() {
		return models.ErrUnknownView
	}
	c.view = view
	c.ClearSelection()
	return nil
}

// ToggleSelect adds id to the selection, or removes it if already selected.
func (c *Controller) ToggleSelect(id string) {
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
		return
	}
	c.selected[id] = struct{}{}
}

func (c *Controller) IsSelected(id string) bool {
	_, ok := c.selected[id]
	return ok
}

// Selected returns the selected ids in sorted order.
func (c *Controller) Selected() []string {
	ids := make([]string, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Controller) ClearSelection() {
	clear(c.selected)
}

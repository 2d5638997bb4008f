// ABOUTME: View and bulk Action enumerations for the note lifecycle.
// ABOUTME: Maps each view to the storage entry that persists its collection.

package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownView   = errors.New("unknown view")
	ErrUnknownAction = errors.New("unknown action")
)

// View names one of the three note collections.
type View string

const (
	ViewActive  View = "active"
	ViewArchive View = "archive"
	ViewTrash   View = "trash"
)

// Views lists every view in persistence order.
var Views = []View{ViewActive, ViewArchive, ViewTrash}

// EntryKey is the storage entry holding the view's collection.
func (v View) EntryKey() string {
	switch v {
	case ViewActive:
		return "notes"
	case ViewArchive:
		return "archive"
	case ViewTrash:
		return "trash"
	}
	return ""
}

func (v View) IsValid() bool {
	return v.EntryKey() != ""
}

func (v View) String() string {
	return string(v)
}

// ParseView accepts a view name or its storage entry name.
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "notes":
		return ViewActive, nil
	case "archive", "archived":
		return ViewArchive, nil
	case "trash", "trashed":
		return ViewTrash, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Action is a bulk operation applied to a selection.
type Action string

const (
	ActionTrash   Action = "trash"
	ActionArchive Action = "archive"
	ActionRestore Action = "restore"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionTrash, ActionArchive, ActionRestore:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

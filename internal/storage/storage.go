// ABOUTME: Persistent key-value capability the note store writes through.
// ABOUTME: Defines the Backend interface and selects a concrete backend by name.

package storage

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	ErrNotFound       = errors.New("entry not found")
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrClosed         = errors.New("storage closed")
)

// Backend stores named entries. Implementations return ErrNotFound from Get
// when the key has never been written.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

const (
	KindMemory = "memory"
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindBadger = "badger"
	KindCharm  = "charm"
)

// Kinds lists the backend names Open accepts.
var Kinds = []string{KindFile, KindSQLite, KindBadger, KindCharm, KindMemory}

// Options selects and configures a backend.
type Options struct {
	Kind      string
	DataDir   string
	CharmHost string
	AutoSync  bool

	// Async wraps the backend so writes complete in the background.
	Async bool
	// OnError receives background write failures when Async is set.
	OnError func(error)
}

// Open builds the backend described by opts.
func Open(opts Options) (Backend, error) {
	var (
		b   Backend
		err error
	)
	switch opts.Kind {
	case KindMemory:
		b = NewMemory()
	case KindFile, "":
		b, err = NewFile(filepath.Join(opts.DataDir, "entries"))
	case KindSQLite:
		b, err = NewSQLite(filepath.Join(opts.DataDir, "jot.db"))
	case KindBadger:
		b, err = NewBadger(filepath.Join(opts.DataDir, "badger"))
	case KindCharm:
		b, err = NewCharm(WithCharmHost(opts.CharmHost), WithAutoSync(opts.AutoSync))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", opts.Kind, err)
	}

	if opts.Async {
		return NewAsync(b, opts.OnError), nil
	}
	return b, nil
}

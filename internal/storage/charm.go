// ABOUTME: Charm KV backend using the transactional Do API.
// ABOUTME: Short-lived connections so several jot processes can share the database.

package storage

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	charmproto "github.com/charmbracelet/charm/proto"
	"github.com/dgraph-io/badger/v3"
)

// CharmDBName is the name of the charm kv database for jot.
const CharmDBName = "jot"

// Charm holds configuration for KV operations. It does not keep a
// connection open; every call opens the database, runs, and closes it.
type Charm struct {
	dbName   string
	host     string
	autoSync bool
}

// CharmOption configures a Charm backend.
type CharmOption func(*Charm)

// WithCharmDBName sets the database name.
func WithCharmDBName(name string) CharmOption {
	return func(c *Charm) {
		c.dbName = name
	}
}

// WithCharmHost points the client at a self-hosted charm server.
func WithCharmHost(host string) CharmOption {
	return func(c *Charm) {
		c.host = host
	}
}

// WithAutoSync enables or disables sync after every write.
func WithAutoSync(enabled bool) CharmOption {
	return func(c *Charm) {
		c.autoSync = enabled
	}
}

func NewCharm(opts ...CharmOption) (*Charm, error) {
	c := &Charm{dbName: CharmDBName, autoSync: true}
	for _, opt := range opts {
		opt(c)
	}

	if c.host != "" {
		if err := os.Setenv("CHARM_HOST", c.host); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Charm) Get(key string) ([]byte, error) {
	var val []byte
	err := kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		var err error
		val, err = k.Get([]byte(key))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (c *Charm) Set(key string, value []byte) error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		if err := k.Set([]byte(key), value); err != nil {
			return err
		}
		if c.autoSync {
			return k.Sync()
		}
		return nil
	})
}

// Close is a no-op; the Do API closes the database after each call.
func (c *Charm) Close() error {
	return nil
}

// Sync triggers a manual sync with the charm server.
func (c *Charm) Sync() error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Sync()
	})
}

// LastSyncTime returns the timestamp of the last sync operation.
func (c *Charm) LastSyncTime() time.Time {
	var lastSync time.Time
	_ = kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		lastSync = k.LastSyncTime()
		return nil
	})
	return lastSync
}

// Reset clears all local data. Cloud data is untouched.
func (c *Charm) Reset() error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Reset()
	})
}

// User returns the linked charm account, linking this device if needed.
func (c *Charm) User() (*charmproto.User, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return nil, err
	}
	return cc.Bio()
}

// AutoSync reports whether writes sync immediately.
func (c *Charm) AutoSync() bool {
	return c.autoSync
}

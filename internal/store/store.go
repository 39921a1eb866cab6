package store

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
)

// Location schemes understood by Open.
const (
	SchemeSQLite = "sqlite://"
	SchemeMemory = "mem://"
)

// DefaultContainer is the container used when none is named.
const DefaultContainer = "main"

// pageSize bounds how many records All reads per round trip.
const pageSize = 128

// backend is the storage engine behind a DB.
// Every mutating method commits before returning.
type backend interface {
	ensureContainer(ctx context.Context, name string) (id int64, created bool, err error)
	containerNames(ctx context.Context) ([]string, error)
	put(ctx context.Context, cid int64, key string, value []byte) error
	get(ctx context.Context, cid int64, key string) ([]byte, error)
	del(ctx context.Context, cid int64, key string) error
	// page returns up to limit records with key > after, ascending.
	// An empty after starts from the smallest key.
	page(ctx context.Context, cid int64, after string, limit int) ([]Record, error)
	last(ctx context.Context, cid int64) (Record, bool, error)
	count(ctx context.Context, cid int64) (int, error)
	close() error
}

// DB is a connection to one store location.
type DB struct {
	location string
	b        backend
	logger   *slog.Logger
}

// Open connects to the store at location, creating it if it does not exist.
//
// Supported locations:
//   - "/path/to/file.db" or "sqlite:///path/to/file.db": SQLite file
//   - ":memory:": private in-memory SQLite database
//   - "mem://name": in-process btree store
//
// Any failure is reported as ErrUnavailable.
func Open(location string) (*DB, error) {
	logger := slog.Default().With("component", "store")

	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("%w: empty location", ErrUnavailable)
	}

	var (
		b   backend
		err error
	)
	switch {
	case strings.HasPrefix(location, SchemeMemory):
		b = newMemoryBackend(strings.TrimPrefix(location, SchemeMemory))
	case strings.HasPrefix(location, SchemeSQLite):
		b, err = openSQLite(strings.TrimPrefix(location, SchemeSQLite))
	default:
		b, err = openSQLite(location)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, location, err)
	}

	logger.Debug("store opened", "location", location)
	return &DB{location: location, b: b, logger: logger}, nil
}

// Location returns the location the DB was opened with.
func (db *DB) Location() string {
	return db.location
}

// Close releases the underlying connection.
// Closing twice is harmless.
func (db *DB) Close() error {
	if db.b == nil {
		return nil
	}
	err := db.b.close()
	db.b = nil
	return err
}

// Container returns the named container, creating it if it does not exist.
// Creation is committed before Container returns. Calling Container again
// with the same name returns a handle to the same region.
func (db *DB) Container(ctx context.Context, name string) (*Container, error) {
	if db.b == nil {
		return nil, ErrClosed
	}
	if name == "" {
		name = DefaultContainer
	}
	id, created, err := db.b.ensureContainer(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: container %q: %w", ErrUnavailable, name, err)
	}
	if created {
		db.logger.Info("container created", "location", db.location, "container", name)
	}
	return &Container{db: db, id: id, name: name}, nil
}

// Containers lists the names of existing containers in ascending order.
func (db *DB) Containers(ctx context.Context) ([]string, error) {
	if db.b == nil {
		return nil, ErrClosed
	}
	names, err := db.b.containerNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	return names, nil
}

// Container is a named ordered key/value region inside a DB.
type Container struct {
	db   *DB
	id   int64
	name string
}

// Name returns the container name.
func (c *Container) Name() string {
	return c.name
}

func (c *Container) backend() (backend, error) {
	if c.db.b == nil {
		return nil, ErrClosed
	}
	return c.db.b, nil
}

// Put stores value under key, replacing any existing value.
func (c *Container) Put(ctx context.Context, key string, value []byte) error {
	b, err := c.backend()
	if err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return fmt.Errorf("put: %w", err)
	}
	if err := b.put(ctx, c.id, key, cloneValue(value)); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key.
// Returns ErrKeyNotFound if the key is absent.
func (c *Container) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.backend()
	if err != nil {
		return nil, err
	}
	if err := checkKey(key); err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	v, err := b.get(ctx, c.id, key)
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return v, nil
}

// Delete removes key from the container.
// Returns ErrKeyNotFound if the key is absent; the container is unchanged.
func (c *Container) Delete(ctx context.Context, key string) error {
	b, err := c.backend()
	if err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if err := b.del(ctx, c.id, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// All returns every record in ascending key order.
//
// The sequence is lazy: records are read page by page as the caller ranges
// over it, and each range starts from the current state of the container.
// A read error is yielded once as the final element.
func (c *Container) All(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		b, err := c.backend()
		if err != nil {
			yield(Record{}, err)
			return
		}
		after := ""
		for {
			recs, err := b.page(ctx, c.id, after, pageSize)
			if err != nil {
				yield(Record{}, fmt.Errorf("scan %s: %w", c.name, err))
				return
			}
			for _, r := range recs {
				if !yield(r, nil) {
					return
				}
			}
			if len(recs) < pageSize {
				return
			}
			after = recs[len(recs)-1].Key
		}
	}
}

// Last returns the record with the greatest key.
// The boolean is false when the container is empty.
func (c *Container) Last(ctx context.Context) (Record, bool, error) {
	b, err := c.backend()
	if err != nil {
		return Record{}, false, err
	}
	r, ok, err := b.last(ctx, c.id)
	if err != nil {
		return Record{}, false, fmt.Errorf("last: %w", err)
	}
	return r, ok, nil
}

// Len returns the number of records in the container.
func (c *Container) Len(ctx context.Context) (int, error) {
	b, err := c.backend()
	if err != nil {
		return 0, err
	}
	n, err := b.count(ctx, c.id)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

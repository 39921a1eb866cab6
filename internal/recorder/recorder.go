package recorder

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/reclog/internal/store"
)

// Record is one key/value pair.
type Record = store.Record

// RecordStore is the set of record operations shared by Recorder and
// anything that decorates it.
type RecordStore interface {
	Add(ctx context.Context, key string, value []byte) error
	Save(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Search(ctx context.Context, match Predicate) iter.Seq2[Record, error]
	List(ctx context.Context) iter.Seq2[Record, error]
	Last(ctx context.Context) (Record, bool, error)
}

var _ RecordStore = (*Recorder)(nil)

// Recorder keeps flat key/value records in one container of a store.
//
// The store is opened on first use and stays open until Close. A failed
// open is not remembered; the next operation tries again.
type Recorder struct {
	location  string
	container string
	normalize bool
	logger    *slog.Logger

	mu sync.Mutex
	db *store.DB
	c  *store.Container
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithNormalizedKeys makes the Recorder convert every key it is given to
// NFC, so canonically equivalent spellings name the same record. Without it
// keys reach the store unchanged.
func WithNormalizedKeys() Option {
	return func(r *Recorder) {
		r.normalize = true
	}
}

// New creates a Recorder for the container named container at location.
// An empty container name selects store.DefaultContainer.
// Nothing is opened until the first operation.
func New(location, container string, opts ...Option) *Recorder {
	if container == "" {
		container = store.DefaultContainer
	}
	r := &Recorder{
		location:  location,
		container: container,
		logger:    slog.Default().With("component", "recorder"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns key as the Recorder will store it.
func (r *Recorder) Key(key string) string {
	if r.normalize {
		return norm.NFC.String(key)
	}
	return key
}

// Location returns the store location.
func (r *Recorder) Location() string {
	return r.location
}

// Open connects to the store and locates or creates the container.
// Calling Open again returns the same container.
func (r *Recorder) Open(ctx context.Context) (*store.Container, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.c != nil {
		return r.c, nil
	}

	db, err := store.Open(r.location)
	if err != nil {
		return nil, err
	}
	c, err := db.Container(ctx, r.container)
	if err != nil {
		db.Close()
		return nil, err
	}

	r.logger.Debug("recorder opened", "location", r.location, "container", r.container)
	r.db, r.c = db, c
	return c, nil
}

// Close closes the store if it was opened.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db, r.c = nil, nil
	return err
}

// Save stores value under key, replacing any previous value, and commits.
func (r *Recorder) Save(ctx context.Context, key string, value []byte) error {
	c, err := r.Open(ctx)
	if err != nil {
		return err
	}
	key = r.Key(key)
	if err := c.Put(ctx, key, value); err != nil {
		return err
	}
	r.logger.Debug("record saved", "key", key, "bytes", len(value))
	return nil
}

// Add is Save under the name the menu uses.
func (r *Recorder) Add(ctx context.Context, key string, value []byte) error {
	return r.Save(ctx, key, value)
}

// Get returns the value stored under key, or store.ErrKeyNotFound.
func (r *Recorder) Get(ctx context.Context, key string) ([]byte, error) {
	c, err := r.Open(ctx)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, r.Key(key))
}

// Delete removes key and commits.
// Returns store.ErrKeyNotFound if key is absent.
func (r *Recorder) Delete(ctx context.Context, key string) error {
	c, err := r.Open(ctx)
	if err != nil {
		return err
	}
	key = r.Key(key)
	if err := c.Delete(ctx, key); err != nil {
		return err
	}
	r.logger.Debug("record deleted", "key", key)
	return nil
}

// Search returns the records for which match holds, in ascending key order.
//
// The sequence is lazy and may be ranged over again; each range reads the
// store afresh. Open and read errors are yielded as the final element.
func (r *Recorder) Search(ctx context.Context, match Predicate) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		c, err := r.Open(ctx)
		if err != nil {
			yield(Record{}, err)
			return
		}
		for rec, err := range c.All(ctx) {
			if err != nil {
				yield(Record{}, err)
				return
			}
			if match != nil && !match(rec.Key, rec.Value) {
				continue
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// List returns every record in ascending key order.
func (r *Recorder) List(ctx context.Context) iter.Seq2[Record, error] {
	return r.Search(ctx, All)
}

// Last returns the record with the greatest key.
// The boolean is false when there are no records.
func (r *Recorder) Last(ctx context.Context) (Record, bool, error) {
	c, err := r.Open(ctx)
	if err != nil {
		return Record{}, false, err
	}
	return c.Last(ctx)
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[Record, error]) ([]Record, error) {
	recs := []Record{}
	for rec, err := range seq {
		if err != nil {
			return recs, fmt.Errorf("collect records: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

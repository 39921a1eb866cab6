package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/btree"
)

const memoryTreeDegree = 8

// memoryBackend keeps containers in process memory as ordered btrees.
// Each Open of a "mem://" location starts empty.
type memoryBackend struct {
	sync.RWMutex
	name   string
	ids    map[string]int64
	trees  map[int64]*btree.BTreeG[Record]
	nextID int64
}

func newMemoryBackend(name string) *memoryBackend {
	return &memoryBackend{
		name:  name,
		ids:   make(map[string]int64),
		trees: make(map[int64]*btree.BTreeG[Record]),
	}
}

func recordLess(a, b Record) bool {
	return a.Key < b.Key
}

func (m *memoryBackend) tree(cid int64) (*btree.BTreeG[Record], error) {
	t, ok := m.trees[cid]
	if !ok {
		return nil, ErrClosed
	}
	return t, nil
}

func (m *memoryBackend) ensureContainer(_ context.Context, name string) (int64, bool, error) {
	m.Lock()
	defer m.Unlock()

	if m.trees == nil {
		return 0, false, ErrClosed
	}
	if id, ok := m.ids[name]; ok {
		return id, false, nil
	}
	m.nextID++
	m.ids[name] = m.nextID
	m.trees[m.nextID] = btree.NewG(memoryTreeDegree, recordLess)
	return m.nextID, true, nil
}

func (m *memoryBackend) containerNames(_ context.Context) ([]string, error) {
	m.RLock()
	defer m.RUnlock()

	names := make([]string, 0, len(m.ids))
	for name := range m.ids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *memoryBackend) put(_ context.Context, cid int64, key string, value []byte) error {
	m.Lock()
	defer m.Unlock()

	t, err := m.tree(cid)
	if err != nil {
		return err
	}
	t.ReplaceOrInsert(Record{Key: key, Value: value})
	return nil
}

func (m *memoryBackend) get(_ context.Context, cid int64, key string) ([]byte, error) {
	m.RLock()
	defer m.RUnlock()

	t, err := m.tree(cid)
	if err != nil {
		return nil, err
	}
	r, ok := t.Get(Record{Key: key})
	if !ok {
		return nil, ErrKeyNotFound
	}
	return cloneValue(r.Value), nil
}

func (m *memoryBackend) del(_ context.Context, cid int64, key string) error {
	m.Lock()
	defer m.Unlock()

	t, err := m.tree(cid)
	if err != nil {
		return err
	}
	if _, ok := t.Delete(Record{Key: key}); !ok {
		return ErrKeyNotFound
	}
	return nil
}

func (m *memoryBackend) page(_ context.Context, cid int64, after string, limit int) ([]Record, error) {
	m.RLock()
	defer m.RUnlock()

	t, err := m.tree(cid)
	if err != nil {
		return nil, err
	}
	recs := make([]Record, 0, limit)
	t.AscendGreaterOrEqual(Record{Key: after}, func(r Record) bool {
		if r.Key == after {
			return true
		}
		recs = append(recs, Record{Key: r.Key, Value: cloneValue(r.Value)})
		return len(recs) < limit
	})
	return recs, nil
}

func (m *memoryBackend) last(_ context.Context, cid int64) (Record, bool, error) {
	m.RLock()
	defer m.RUnlock()

	t, err := m.tree(cid)
	if err != nil {
		return Record{}, false, err
	}
	r, ok := t.Max()
	if !ok {
		return Record{}, false, nil
	}
	return Record{Key: r.Key, Value: cloneValue(r.Value)}, true, nil
}

func (m *memoryBackend) count(_ context.Context, cid int64) (int, error) {
	m.RLock()
	defer m.RUnlock()

	t, err := m.tree(cid)
	if err != nil {
		return 0, err
	}
	return t.Len(), nil
}

func (m *memoryBackend) close() error {
	m.Lock()
	defer m.Unlock()
	m.ids = nil
	m.trees = nil
	return nil
}

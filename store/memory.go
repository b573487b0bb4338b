package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory implements Store entirely in memory. Subscriptions re-deliver a full
// snapshot of their query after every mutation of the collection, which
// mirrors the behavior of the hosted backend closely enough for tests and
// local development.
type Memory struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]interface{}
	subs        []*memorySub

	// Now is the write clock used for ServerTimestamp fields. Tests may
	// replace it.
	Now func() time.Time
}

type memorySub struct {
	query  Query
	notify chan struct{}
	out    chan Snapshot
}

func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string]map[string]interface{}),
		Now:         time.Now,
	}
}

func (m *Memory) resolveSentinels(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = m.Now().UTC()
			continue
		}
		out[k] = v
	}
	return out
}

func (m *Memory) col(name string) map[string]map[string]interface{} {
	c, ok := m.collections[name]
	if !ok {
		c = make(map[string]map[string]interface{})
		m.collections[name] = c
	}
	return c
}

// notifyLocked pokes every subscriber of the collection. Latest-wins: a
// pending poke is enough, the snapshot is computed when it is consumed.
func (m *Memory) notifyLocked(collection string) {
	for _, sub := range m.subs {
		if sub.query.Collection != collection {
			continue
		}
		select {
		case sub.notify <- struct{}{}:
		default:
		}
	}
}

func (m *Memory) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	id := uuid.New().String()
	if err := m.Set(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (m *Memory) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.col(collection)[id] = m.resolveSentinels(data)
	m.notifyLocked(collection)
	return nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.col(collection)[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range m.resolveSentinels(fields) {
		doc[k] = v
	}
	m.notifyLocked(collection)
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.col(collection), id)
	m.notifyLocked(collection)
	return nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.col(collection)[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: copyData(doc)}, nil
}

func (m *Memory) GetAll(ctx context.Context, q Query) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evalLocked(q), nil
}

func (m *Memory) Subscribe(ctx context.Context, q Query) (<-chan Snapshot, error) {
	sub := &memorySub{
		query:  q,
		notify: make(chan struct{}, 1),
		out:    make(chan Snapshot, 1),
	}
	m.mu.Lock()
	m.subs = append(m.subs, sub)
	m.mu.Unlock()
	sub.notify <- struct{}{} // initial snapshot

	go func() {
		defer close(sub.out)
		defer m.removeSub(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.notify:
				m.mu.Lock()
				snap := Snapshot{Docs: m.evalLocked(q)}
				m.mu.Unlock()
				select {
				case sub.out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return sub.out, nil
}

func (m *Memory) removeSub(sub *memorySub) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.subs {
		if s == sub {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return
		}
	}
}

func (m *Memory) evalLocked(q Query) []Document {
	var docs []Document
	for id, data := range m.col(q.Collection) {
		if !matches(data, q.Filters) {
			continue
		}
		docs = append(docs, Document{ID: id, Data: copyData(data)})
	}
	if q.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			c := compareValues(docs[i].Data[q.OrderBy], docs[j].Data[q.OrderBy])
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	} else {
		// Deterministic order for unordered queries.
		sort.SliceStable(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	}
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs
}

func matches(data map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		v, ok := data[f.Path]
		if !ok {
			return false
		}
		c := compareValues(v, f.Value)
		switch f.Op {
		case "==":
			if c != 0 {
				return false
			}
		case ">=":
			if c < 0 {
				return false
			}
		case "<=":
			if c > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func compareValues(a, b interface{}) int {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case bb:
				return -1
			default:
				return 1
			}
		}
	}
	as, bs := stringOf(a), stringOf(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

func stringOf(v interface{}) string {
	s, _ := v.(string)
	return s
}

func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

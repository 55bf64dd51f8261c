package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/sensordonut/sensordonut/pkg/types"
)

// Entry is an entity value together with the time it was last received.
type Entry struct {
	Value     types.LiveValue
	UpdatedAt time.Time
}

// Store is a thread-safe in-memory entity store, keyed by entity ID.
type Store struct {
	mu      sync.RWMutex
	data    map[string]*Entry
	ttl     time.Duration
	now     func() time.Time // injectable for deterministic tests
	version uint64
	subs    map[chan struct{}]struct{}
}

// New creates a Store with the given TTL.
func New(ttl time.Duration) *Store {
	return &Store{
		data: make(map[string]*Entry),
		ttl:  ttl,
		now:  time.Now,
		subs: make(map[chan struct{}]struct{}),
	}
}

// TTL returns the configured staleness window.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Put stores or replaces the value for v.EntityID. Entries without an ID are
// ignored.
func (s *Store) Put(v types.LiveValue) {
	s.PutAll([]types.LiveValue{v})
}

// PutAll stores a batch of values and notifies subscribers once if any
// value changed.
func (s *Store) PutAll(values []types.LiveValue) {
	s.mu.Lock()
	now := s.now()
	changed := false
	for _, v := range values {
		if v.EntityID == "" {
			continue
		}
		prev, ok := s.data[v.EntityID]
		if !ok || !sameValue(prev.Value, v) || s.stale(prev, now) {
			changed = true
		}
		s.data[v.EntityID] = &Entry{Value: v, UpdatedAt: now}
	}
	if changed {
		s.version++
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Get returns the entry for entityID and whether one was found. The entry
// may be stale if the TTL has elapsed.
func (s *Store) Get(entityID string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[entityID]
	return e, ok
}

// Snapshot returns the live values keyed by entity ID.
func (s *Store) Snapshot() types.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	out := make(types.Snapshot, len(s.data))
	for id, e := range s.data {
		if !s.stale(e, now) {
			out[id] = e.Value
		}
	}
	return out
}

// List returns the live entries sorted by entity ID.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	now := s.now()
	out := make([]*Entry, 0, len(s.data))
	for _, e := range s.data {
		if !s.stale(e, now) {
			out = append(out, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Value.EntityID < out[j].Value.EntityID
	})
	return out
}

// Count returns the total number of entries currently held, including stale ones.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Version increases every time a Put changes what Snapshot would return.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Evict removes entries whose UpdatedAt is older than now minus TTL.
// It returns the number of entries removed.
func (s *Store) Evict(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for id, e := range s.data {
		if !e.UpdatedAt.After(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	if removed > 0 {
		s.version++
	}
	s.mu.Unlock()

	if removed > 0 {
		s.notify()
	}
	return removed
}

// Run starts the background TTL eviction loop. It ticks at half the TTL
// (minimum 1 second) and blocks until ctx is cancelled. With a zero TTL it
// only waits for ctx.
func (s *Store) Run(ctx context.Context) {
	if s.ttl <= 0 {
		<-ctx.Done()
		return
	}
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				slog.Debug("store: evicted stale entities", "count", n)
			}
		}
	}
}

// Subscribe returns a channel that receives a value after every change and
// a function that releases it. Notifications coalesce: a slow reader sees
// one pending tick, never a backlog.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) stale(e *Entry, now time.Time) bool {
	return s.ttl > 0 && !e.UpdatedAt.After(now.Add(-s.ttl))
}

func sameValue(a, b types.LiveValue) bool {
	return a.State == b.State &&
		a.UnitOfMeasurement == b.UnitOfMeasurement &&
		a.FriendlyName == b.FriendlyName &&
		a.Icon == b.Icon
}

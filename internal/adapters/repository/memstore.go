package repository

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/okian/debtfx/internal/domain/frame"
	"github.com/okian/debtfx/pkg/metrics"
)

// Snapshot is an immutable view of the published frames.
type Snapshot struct {
	PublishedAt time.Time
	byYear      map[int]Entry
	years       []int
}

// MemoryStore keeps frames in memory. Publish swaps in a new snapshot, so
// readers never block on writers.
type MemoryStore struct {
	snap atomic.Pointer[Snapshot]
	now  func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.snap.Store(&Snapshot{byYear: map[int]Entry{}})
	return s
}

// Publish implements Store.
func (s *MemoryStore) Publish(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next := &Snapshot{PublishedAt: s.now(), byYear: make(map[int]Entry, len(entries))}
	for _, e := range entries {
		if len(e.PNG) == 0 {
			return fmt.Errorf("%w: %d", ErrNoImage, e.Year())
		}
		if _, ok := next.byYear[e.Year()]; !ok {
			next.years = append(next.years, e.Year())
		}
		next.byYear[e.Year()] = e
	}
	sort.Ints(next.years)
	s.snap.Store(next)
	metrics.UpdateFramesStored(len(next.years))
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, year int) (Entry, error) {
	e, ok := s.snap.Load().byYear[year]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %d", ErrNotFound, year)
	}
	return e, nil
}

// Summaries implements Store.
func (s *MemoryStore) Summaries(_ context.Context) []frame.Summary {
	snap := s.snap.Load()
	out := make([]frame.Summary, len(snap.years))
	for i, y := range snap.years {
		out[i] = snap.byYear[y].Summary
	}
	return out
}

// Len implements Store.
func (s *MemoryStore) Len(_ context.Context) int {
	return len(s.snap.Load().years)
}

// PublishedAt returns when the current snapshot was published; zero before
// the first Publish.
func (s *MemoryStore) PublishedAt() time.Time {
	return s.snap.Load().PublishedAt
}

package monitor

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oisemob/transit-api/disruption"
)

// Snapshot holds the most recent refresh result: active disruptions and
// their counts keyed by internal network identifier.
type Snapshot struct {
	TakenAt   time.Time
	ByNetwork map[string][]disruption.Disruption
	Counts    map[string]int
}

// Monitor periodically refreshes the active disruptions of a fixed set
// of networks. Every tick performs fresh fetches through the resolver,
// never through the TTL cache; disruption data is volatile by nature.
type Monitor struct {
	resolver *disruption.Resolver
	networks []string
	interval time.Duration
	now      func() time.Time

	mu   sync.RWMutex
	snap Snapshot
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// New creates a monitor refreshing the given networks every interval.
func New(r *disruption.Resolver, networks []string, interval time.Duration, opts ...Option) *Monitor {
	m := &Monitor{
		resolver: r,
		networks: networks,
		interval: interval,
		now:      time.Now,
		snap: Snapshot{
			ByNetwork: map[string][]disruption.Disruption{},
			Counts:    map[string]int{},
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run refreshes once immediately, then on every tick until ctx is
// cancelled. The ticker is released on return; no refresh outlives the
// caller's scope.
func (m *Monitor) Run(ctx context.Context) {
	m.Refresh(ctx)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A tick can race cancellation; never refresh a dead context.
			if ctx.Err() != nil {
				return
			}
			m.Refresh(ctx)
		}
	}
}

// Refresh fetches all networks concurrently and swaps in a new
// snapshot. A failing network keeps its previous entry and is logged;
// disruption data is advisory, so a refresh never fails the monitor.
func (m *Monitor) Refresh(ctx context.Context) {
	now := m.now()
	results := make([][]disruption.Disruption, len(m.networks))
	ok := make([]bool, len(m.networks))

	g, gctx := errgroup.WithContext(ctx)
	for i, networkID := range m.networks {
		g.Go(func() error {
			ds, err := m.resolver.ActiveDisruptionsForNetwork(gctx, networkID, now)
			if err != nil {
				log.Printf("disruption refresh failed for network %s: %v", networkID, err)
				return nil
			}
			results[i] = ds
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	byNetwork := make(map[string][]disruption.Disruption, len(m.networks))
	counts := make(map[string]int, len(m.networks))
	for i, networkID := range m.networks {
		ds := results[i]
		if !ok[i] {
			// Keep the last good data rather than flashing to empty.
			ds = m.snap.ByNetwork[networkID]
		}
		byNetwork[networkID] = ds
		counts[networkID] = len(ds)
	}
	m.snap = Snapshot{TakenAt: now, ByNetwork: byNetwork, Counts: counts}
}

// Snapshot returns a copy of the latest refresh result.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byNetwork := make(map[string][]disruption.Disruption, len(m.snap.ByNetwork))
	for k, v := range m.snap.ByNetwork {
		byNetwork[k] = v
	}
	counts := make(map[string]int, len(m.snap.Counts))
	for k, v := range m.snap.Counts {
		counts[k] = v
	}
	return Snapshot{TakenAt: m.snap.TakenAt, ByNetwork: byNetwork, Counts: counts}
}

// Count returns the active disruption count for one network.
func (m *Monitor) Count(networkID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.Counts[networkID]
}

// Grouped flattens the snapshot and buckets it by the feed's network
// names. Disruptions fetched under several internal networks are
// deduplicated by id before grouping.
func (m *Monitor) Grouped() map[string][]disruption.Disruption {
	snap := m.Snapshot()
	seen := map[string]bool{}
	var all []disruption.Disruption
	for _, networkID := range m.networks {
		for _, d := range snap.ByNetwork[networkID] {
			if d.ID != "" && seen[d.ID] {
				continue
			}
			seen[d.ID] = true
			all = append(all, d)
		}
	}
	return disruption.GroupByNetwork(all)
}

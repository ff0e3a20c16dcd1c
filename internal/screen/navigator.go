package screen

import (
	"context"
	"sync"
	"time"

	"github.com/garageconnect/customer/internal/domain"
)

// Navigator is one session's screen state: the machine plus the
// collections it renders from. Loads are tagged with a generation so a
// slow, superseded load cannot overwrite a newer one.
type Navigator struct {
	mu         sync.Mutex
	machine    *Machine
	dashboard  domain.Dashboard
	generation uint64
	applied    uint64
}

func NewNavigator() *Navigator {
	return &Navigator{machine: NewMachine()}
}

func (n *Navigator) Machine() *Machine {
	return n.machine
}

// BeginLoad starts a load and returns its generation.
func (n *Navigator) BeginLoad() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.generation++
	return n.generation
}

// ApplyDashboard installs d if gen is still the latest load. It reports
// whether d was applied. A local save also supersedes in-flight loads,
// since their snapshot may predate the saved record.
func (n *Navigator) ApplyDashboard(gen uint64, d domain.Dashboard) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.generation {
		return false
	}
	n.dashboard = d
	n.applied = gen
	return true
}

// Refresh runs load under a new generation.
func (n *Navigator) Refresh(ctx context.Context, load func(context.Context) domain.Dashboard) bool {
	gen := n.BeginLoad()
	return n.ApplyDashboard(gen, load(ctx))
}

// Loaded reports whether any load has been applied.
func (n *Navigator) Loaded() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.applied > 0
}

func (n *Navigator) Dashboard() domain.Dashboard {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.dashboard
}

func (n *Navigator) SaveTrip(t domain.Trip) {
	n.mu.Lock()
	n.generation++
	n.dashboard.Trips.Items = prepend(n.dashboard.Trips.Items, t)
	n.mu.Unlock()
	n.machine.CloseOverlay()
}

func (n *Navigator) SaveRestaurant(r domain.RestaurantEntry) {
	n.mu.Lock()
	n.generation++
	n.dashboard.Restaurants.Items = prepend(n.dashboard.Restaurants.Items, r)
	n.mu.Unlock()
	n.machine.CloseOverlay()
}

func (n *Navigator) SaveMaintenance(m domain.MaintenanceRecord) {
	n.mu.Lock()
	n.generation++
	n.dashboard.Maintenance.Items = prepend(n.dashboard.Maintenance.Items, m)
	n.mu.Unlock()
	n.machine.CloseOverlay()
}

// AddTripPhoto attaches an uploaded photo to the cached trip, if present.
func (n *Navigator) AddTripPhoto(p domain.TripPhoto) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.generation++
	items := n.dashboard.Trips.Items
	for i := range items {
		if items[i].ID == p.TripID {
			trips := make([]domain.Trip, len(items))
			copy(trips, items)
			photos := make([]domain.TripPhoto, 0, len(trips[i].Photos)+1)
			trips[i].Photos = append(append(photos, trips[i].Photos...), p)
			n.dashboard.Trips.Items = trips
			return
		}
	}
}

// View composes the current state.
func (n *Navigator) View(theme domain.Theme, p *domain.Profile, now time.Time) View {
	return Compose(Input{
		Theme:     theme,
		Profile:   p,
		Dashboard: n.Dashboard(),
		Screen:    n.machine.Screen(),
		Overlay:   n.machine.Overlay(),
		Now:       now,
	})
}

func prepend[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, v)
	return append(out, items...)
}

// Registry keeps one Navigator per session until the session expires or
// is dropped on sign-out.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registryEntry
	now     func() time.Time
}

type registryEntry struct {
	nav       *Navigator
	expiresAt time.Time
}

// expired treats a zero expiry as never expiring.
func (e registryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]registryEntry),
		now:     time.Now,
	}
}

// GetOrCreate returns the session's navigator. Creating a new one also
// evicts every expired entry, so the map never outgrows the live sessions.
func (r *Registry) GetOrCreate(sessionID string, expiresAt time.Time) *Navigator {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.entries[sessionID]; ok && !e.expired(now) {
		return e.nav
	}
	r.sweepLocked(now)

	n := NewNavigator()
	r.entries[sessionID] = registryEntry{nav: n, expiresAt: expiresAt}
	return n
}

func (r *Registry) Get(sessionID string) (*Navigator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[sessionID]
	if !ok || e.expired(r.now()) {
		return nil, false
	}
	return e.nav, true
}

func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}

// Sweep evicts expired navigators and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked(r.now())
}

func (r *Registry) sweepLocked(now time.Time) int {
	removed := 0
	for id, e := range r.entries {
		if e.expired(now) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

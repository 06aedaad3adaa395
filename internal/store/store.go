package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"energy_balance/internal/balance"
	"energy_balance/internal/model"
)

var (
	ErrUnknownZone = errors.New("unknown zone")
	ErrUnknownRun  = errors.New("unknown run")
)

// Run is one composed balance kept for later retrieval.
type Run struct {
	ID         string          `json:"id"`
	ComputedAt time.Time       `json:"computed_at"`
	ZoneIDs    []string        `json:"zone_ids"`
	Result     *balance.Result `json:"result"`
}

// Store holds the zone registry and the history of composed balances in memory.
type Store struct {
	mu    sync.RWMutex
	zones map[string]model.Zone
	order []string // zone IDs in registration order
	runs  []Run    // sorted by ComputedAt
}

func New() *Store {
	return &Store{
		zones: make(map[string]model.Zone),
	}
}

// AddZones registers zones, replacing any with the same ID.
func (s *Store) AddZones(zones ...model.Zone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, z := range zones {
		if _, ok := s.zones[z.ID]; !ok {
			s.order = append(s.order, z.ID)
		}
		s.zones[z.ID] = z
	}
}

// ZoneIDs returns all registered zone IDs in registration order.
func (s *Store) ZoneIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// ResolveZones returns the zones for ids, in the order given. Any unknown id
// fails the whole lookup.
func (s *Store) ResolveZones(ids []string) ([]model.Zone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	zones := make([]model.Zone, 0, len(ids))
	for _, id := range ids {
		z, ok := s.zones[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownZone, id)
		}
		zones = append(zones, z)
	}
	return zones, nil
}

// SaveRun records a result under a new run ID.
func (s *Store) SaveRun(zoneIDs []string, result *balance.Result, at time.Time) Run {
	run := Run{
		ID:         uuid.NewString(),
		ComputedAt: at,
		ZoneIDs:    append([]string(nil), zoneIDs...),
		Result:     result,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	sort.SliceStable(s.runs, func(i, j int) bool {
		return s.runs[i].ComputedAt.Before(s.runs[j].ComputedAt)
	})
	return run
}

// Run returns the run with the given ID.
func (s *Store) Run(id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return Run{}, fmt.Errorf("%w: %q", ErrUnknownRun, id)
}

// Latest returns the most recently computed run.
func (s *Store) Latest() (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.runs) == 0 {
		return Run{}, false
	}
	return s.runs[len(s.runs)-1], true
}

func (s *Store) RunCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

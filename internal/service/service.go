package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"energy_balance/internal/balance"
	"energy_balance/internal/store"
)

// ErrNoZonesRegistered is returned when a recompute names no zones and the
// store has none to fall back on.
var ErrNoZonesRegistered = errors.New("no zones registered")

// Callback receives composed runs.
type Callback interface {
	OnRun(run store.Run)
}

// Service composes balances from the current inputs and records every run.
type Service struct {
	mu       sync.Mutex
	store    *store.Store
	composer *balance.Composer
	inputs   balance.Inputs
	zoneIDs  []string
	callback Callback
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a service over s. zoneIDs are used when a recompute names no
// zones; when empty every registered zone is balanced.
func New(s *store.Store, inputs balance.Inputs, zoneIDs []string, cb Callback, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    s,
		composer: balance.NewComposer(s, logger),
		inputs:   inputs,
		zoneIDs:  zoneIDs,
		callback: cb,
		logger:   logger,
		now:      time.Now,
	}
}

// SetInputs replaces the series used by later recomputes.
func (s *Service) SetInputs(in balance.Inputs) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs = in
}

// Recompute composes a balance for zoneIDs, stores it and notifies the callback.
func (s *Service) Recompute(zoneIDs []string) (store.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.resolveIDs(zoneIDs)
	if len(ids) == 0 {
		return store.Run{}, ErrNoZonesRegistered
	}

	start := s.now()
	result, err := s.composer.Compose(ids, s.inputs)
	if err != nil {
		s.logger.Warn("balance recompute failed",
			zap.Strings("zones", ids),
			zap.Error(err),
		)
		return store.Run{}, fmt.Errorf("composing balance: %w", err)
	}

	run := s.store.SaveRun(ids, result, start)
	s.logger.Info("balance run stored",
		zap.String("run_id", run.ID),
		zap.Int("zones", len(ids)),
		zap.Int("terms", len(result.WithStorage.Terms)),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("elapsed", s.now().Sub(start)),
	)

	if s.callback != nil {
		s.callback.OnRun(run)
	}
	return run, nil
}

// Latest returns the most recent run.
func (s *Service) Latest() (store.Run, bool) {
	return s.store.Latest()
}

// Run returns a stored run by ID.
func (s *Service) Run(id string) (store.Run, error) {
	return s.store.Run(id)
}

func (s *Service) resolveIDs(requested []string) []string {
	switch {
	case len(requested) > 0:
		return requested
	case len(s.zoneIDs) > 0:
		return s.zoneIDs
	default:
		return s.store.ZoneIDs()
	}
}

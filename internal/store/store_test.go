package store

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_balance/internal/balance"
	"energy_balance/internal/model"
)

var startTime = time.Date(2024, 11, 21, 12, 0, 0, 0, time.UTC)

func zone(id string) model.Zone {
	return model.Zone{
		ID:   id,
		Name: "ZONE_" + id,
		Surfaces: []model.Surface{
			{Name: "W_" + id, TypeCode: model.CodeWall, BoundaryCondition: "Outdoors"},
		},
	}
}

func TestStore_ResolveZones(t *testing.T) {
	s := New()
	s.AddZones(zone("a"), zone("b"))

	zones, err := s.ResolveZones([]string{"b", "a"})
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "b", zones[0].ID)
	assert.Equal(t, "a", zones[1].ID)

	_, err = s.ResolveZones([]string{"a", "nonexistent"})
	assert.True(t, errors.Is(err, ErrUnknownZone))
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestStore_AddZonesReplaces(t *testing.T) {
	s := New()
	s.AddZones(zone("a"), zone("b"))

	updated := zone("a")
	updated.Name = "RENAMED"
	s.AddZones(updated)

	assert.Equal(t, []string{"a", "b"}, s.ZoneIDs())
	zones, err := s.ResolveZones([]string{"a"})
	require.NoError(t, err)
	assert.Equal(t, "RENAMED", zones[0].Name)
}

func TestStore_Runs(t *testing.T) {
	s := New()

	_, ok := s.Latest()
	assert.False(t, ok)

	r1 := s.SaveRun([]string{"a"}, &balance.Result{}, startTime)
	r2 := s.SaveRun([]string{"a", "b"}, &balance.Result{}, startTime.Add(time.Hour))
	// saved out of order
	r0 := s.SaveRun([]string{"b"}, &balance.Result{}, startTime.Add(-time.Hour))

	assert.Equal(t, 3, s.RunCount())
	_, err := uuid.Parse(r1.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, r1.ID, r2.ID)

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, r2.ID, latest.ID)

	got, err := s.Run(r0.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, got.ZoneIDs)

	_, err = s.Run("nonexistent")
	assert.True(t, errors.Is(err, ErrUnknownRun))
}

func TestStore_SaveRunCopiesZoneIDs(t *testing.T) {
	s := New()
	ids := []string{"a"}
	run := s.SaveRun(ids, &balance.Result{}, startTime)
	ids[0] = "changed"

	assert.Equal(t, []string{"a"}, run.ZoneIDs)
}

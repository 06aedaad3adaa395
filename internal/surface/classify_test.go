package surface

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_balance/internal/model"
)

func testZone() model.Zone {
	return model.Zone{
		ID:   "zone-1",
		Name: "ZONE_1",
		Surfaces: []model.Surface{
			{Name: "W1", TypeCode: model.CodeWall, BoundaryCondition: "Outdoors",
				Children: []model.Surface{{Name: "W1_GLZ_0"}, {Name: "W1_GLZ_1"}}},
			{Name: "W2", TypeCode: model.CodeWall, BoundaryCondition: "outdoors"},
			{Name: "BASEMENT_W", TypeCode: model.CodeUndergroundWall, BoundaryCondition: "Ground"},
			{Name: "R1", TypeCode: model.CodeRoof, BoundaryCondition: "OUTDOORS",
				Children: []model.Surface{{Name: "R1_SKY"}}},
			{Name: "SLAB", TypeCode: model.CodeGroundFloor, BoundaryCondition: "ground"},
			{Name: "OVERHANG", TypeCode: model.CodeExposedFloor, BoundaryCondition: "Outdoors"},
			{Name: "PARTITION", TypeCode: model.CodeWall, BoundaryCondition: "Surface"},
			{Name: "CEILING", TypeCode: model.CodeRoof, BoundaryCondition: "Adiabatic"},
			{Name: "ODD", TypeCode: 7, BoundaryCondition: "Outdoors"},
		},
	}
}

func TestClassify(t *testing.T) {
	c := Classify([]model.Zone{testZone()})

	assert.Equal(t, []string{"W1", "W2"}, c.Wall)
	assert.Equal(t, []string{"W1_GLZ_0", "W1_GLZ_1"}, c.Window)
	assert.Equal(t, []string{"R1"}, c.Roof)
	assert.Equal(t, []string{"R1_SKY"}, c.Skylight)
	assert.Equal(t, []string{"SLAB"}, c.GroundFloor)
	assert.Equal(t, []string{"OVERHANG"}, c.ExposedFloor)
	assert.Equal(t, []string{"BASEMENT_W"}, c.UndergroundWall)
	assert.Equal(t, 9, c.Count())
}

func TestClassify_WallWithWindow(t *testing.T) {
	zone := model.Zone{Surfaces: []model.Surface{
		{Name: "W1", TypeCode: model.CodeWall, BoundaryCondition: "OUTDOORS",
			Children: []model.Surface{{Name: "WIN1"}}},
	}}

	c := Classify([]model.Zone{zone})

	assert.Equal(t, []string{"W1"}, c.Wall)
	assert.Equal(t, []string{"WIN1"}, c.Window)
}

func TestClassify_GroundWallIsUnderground(t *testing.T) {
	zone := model.Zone{Surfaces: []model.Surface{
		{Name: "W_GROUND", TypeCode: model.CodeWall, BoundaryCondition: "GROUND"},
	}}

	c := Classify([]model.Zone{zone})

	assert.Empty(t, c.Wall)
	assert.Equal(t, []string{"W_GROUND"}, c.UndergroundWall)
}

func TestClassify_TraversalOrder(t *testing.T) {
	z1 := model.Zone{Surfaces: []model.Surface{{Name: "B", TypeCode: model.CodeWall, BoundaryCondition: "OUTDOORS"}}}
	z2 := model.Zone{Surfaces: []model.Surface{{Name: "A", TypeCode: model.CodeWall, BoundaryCondition: "OUTDOORS"}}}

	c := Classify([]model.Zone{z1, z2})
	assert.Equal(t, []string{"B", "A"}, c.Wall)
}

func TestCategories_Lookup(t *testing.T) {
	c := Classify([]model.Zone{testZone()})

	tests := []struct {
		name  string
		want  model.Category
		found bool
	}{
		{"W1", model.CategoryWall, true},
		{"w1_glz_1", model.CategoryWindow, true},
		{"r1_sky", model.CategorySkylight, true},
		{"Slab", model.CategoryGroundFloor, true},
		{"PARTITION", "", false},
		{"W", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, ok := c.Lookup(tt.name)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, cat)
		})
	}
}

func TestCategories_LookupPriority(t *testing.T) {
	// A name listed as both wall and window resolves to wall.
	c := Categories{Wall: []string{"DUP"}, Window: []string{"DUP"}}
	cat, ok := c.Lookup("dup")
	require.True(t, ok)
	assert.Equal(t, model.CategoryWall, cat)
}

type fakeResolver struct {
	zones map[string]model.Zone
}

func (f fakeResolver) ResolveZones(ids []string) ([]model.Zone, error) {
	out := make([]model.Zone, 0, len(ids))
	for _, id := range ids {
		z, ok := f.zones[id]
		if !ok {
			return nil, errors.New("unknown zone " + id)
		}
		out = append(out, z)
	}
	return out, nil
}

func TestClassifier_ClassifyIDs(t *testing.T) {
	zone := testZone()
	c := NewClassifier(fakeResolver{zones: map[string]model.Zone{zone.ID: zone}})

	cats, zones, err := c.ClassifyIDs([]string{"zone-1"})
	require.NoError(t, err)
	assert.Len(t, zones, 1)
	assert.Equal(t, []string{"W1", "W2"}, cats.Wall)

	_, _, err = c.ClassifyIDs(nil)
	assert.True(t, errors.Is(err, ErrNoZones))

	_, _, err = c.ClassifyIDs([]string{"missing"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

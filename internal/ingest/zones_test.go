package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_balance/internal/model"
)

func TestZoneParser_Parse(t *testing.T) {
	input := `
zones:
  - id: z1
    name: ZONE_1
    surfaces:
      - name: WALL_S
        type: 0
        bc: Outdoors
        children:
          - name: WIN_S
            type: 0
            bc: Outdoors
      - name: BASEMENT_N
        type: 0.5
        bc: Ground
      - name: ROOF
        type: 1
        bc: Outdoors
  - id: z2
    surfaces:
      - name: SLAB
        type: 2.5
        bc: Ground
`
	zones, err := NewZoneParser().Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, zones, 2)

	z := zones[0]
	assert.Equal(t, "z1", z.ID)
	assert.Equal(t, "ZONE_1", z.Name)
	require.Len(t, z.Surfaces, 3)
	assert.Equal(t, model.SurfaceWall, z.Surfaces[0].Type())
	require.True(t, z.Surfaces[0].HasChildren())
	assert.Equal(t, "WIN_S", z.Surfaces[0].Children[0].Name)
	assert.Equal(t, model.SurfaceUndergroundWall, z.Surfaces[1].Type())
	assert.Equal(t, model.SurfaceRoof, z.Surfaces[2].Type())

	assert.Equal(t, "z2", zones[1].Name, "name defaults to id")
	assert.Equal(t, model.SurfaceGroundFloor, zones[1].Surfaces[0].Type())
}

func TestZoneParser_JSON(t *testing.T) {
	input := `{"zones": [{"id": "z1", "surfaces": [{"name": "W", "type": 0, "bc": "Outdoors"}]}]}`

	zones, err := NewZoneParser().Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "W", zones[0].Surfaces[0].Name)
}

func TestZoneParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing id", "zones:\n  - name: A\n", "missing id"},
		{"duplicate id", "zones:\n  - id: a\n  - id: a\n", "duplicate id"},
		{"unknown field", "zones:\n  - id: a\n    color: red\n", "color"},
		{"bad type", "zones:\n  - id: a\n    surfaces:\n      - type: wall\n", "decoding zones"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewZoneParser().Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestZoneParser_NoZones(t *testing.T) {
	for _, input := range []string{"", "zones: []\n"} {
		_, err := NewZoneParser().Parse(strings.NewReader(input))
		assert.True(t, errors.Is(err, ErrNoZonesDefined), "input %q", input)
	}
}

package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"energy_balance/internal/model"
)

func TestSurfaceNameFromSubtype(t *testing.T) {
	tests := []struct {
		subtype string
		want    string
	}{
		{"Surface Energy for W1", "W1"},
		{"Surface Energy for W1: Inside Face", "W1"},
		{"Surface Energy Loss for ZONE for WIN_2", "WIN_2"},
		{"W3", "W3"},
	}

	for _, tt := range tests {
		t.Run(tt.subtype, func(t *testing.T) {
			assert.Equal(t, tt.want, SurfaceNameFromSubtype(tt.subtype))
		})
	}
}

func surfaceSeries(name string, samples ...float64) SurfaceSeries {
	return SurfaceSeries{
		Header:  model.Header{Subtype: "Surface Energy for " + name, Units: "kWh"},
		Samples: samples,
	}
}

func TestRoute(t *testing.T) {
	cats := Classify([]model.Zone{testZone()})

	r := Route([]SurfaceSeries{
		surfaceSeries("W1", -5, -3),
		surfaceSeries("W1_GLZ_0", 4, 4),
		surfaceSeries("r1", -1, -1),
		surfaceSeries("R1_SKY", 2, 1),
		surfaceSeries("PARTITION", 9, 9),
		surfaceSeries("SLAB", -2, -2),
	}, cats)

	assert.Equal(t, [][]float64{{-5, -3}, {-1, -1}, {-2, -2}}, r.Opaque)
	assert.Equal(t, [][]float64{{4, 4}, {2, 1}}, r.Glazing)
	assert.Equal(t, []string{"PARTITION"}, r.Unmatched)
}

func TestRoute_Empty(t *testing.T) {
	r := Route(nil, Categories{})
	assert.Empty(t, r.Opaque)
	assert.Empty(t, r.Glazing)
	assert.Empty(t, r.Unmatched)
}

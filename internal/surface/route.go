package surface

import (
	"strings"

	"energy_balance/internal/model"
)

// SurfaceSeries is one surface energy-flow series and the header naming it.
type SurfaceSeries struct {
	Header  model.Header
	Samples []float64
}

// Routed holds surface series split by envelope kind.
type Routed struct {
	Opaque  [][]float64
	Glazing [][]float64
	// Unmatched lists surface names found in no category, in input order.
	Unmatched []string
}

// SurfaceNameFromSubtype extracts the surface name from a header subtype such
// as "Surface Energy for WALL_1: Inside Face". The name is the text after
// the last " for " and before an optional ": ".
func SurfaceNameFromSubtype(subtype string) string {
	name := subtype
	if i := strings.LastIndex(name, " for "); i >= 0 {
		name = name[i+len(" for "):]
	}
	if i := strings.Index(name, ": "); i >= 0 {
		name = name[:i]
	}
	return name
}

// Route sends each series to the opaque or glazing bucket of the first
// category containing its surface. Series for unknown surfaces are dropped
// and reported in Unmatched.
func Route(series []SurfaceSeries, cats Categories) Routed {
	var r Routed
	for _, s := range series {
		name := SurfaceNameFromSubtype(s.Header.Subtype)
		cat, ok := cats.Lookup(name)
		switch {
		case !ok:
			r.Unmatched = append(r.Unmatched, name)
		case cat.Glazed():
			r.Glazing = append(r.Glazing, s.Samples)
		default:
			r.Opaque = append(r.Opaque, s.Samples)
		}
	}
	return r
}

package surface

import (
	"errors"
	"fmt"
	"strings"

	"energy_balance/internal/model"
)

var ErrNoZones = errors.New("no zones to classify")

// ZoneResolver turns zone identifiers into fully linked zones.
// Implementations must fail rather than return placeholder zones.
type ZoneResolver interface {
	ResolveZones(ids []string) ([]model.Zone, error)
}

// Categories holds envelope surface names per category, in traversal order.
type Categories struct {
	Wall            []string
	Window          []string
	Skylight        []string
	Roof            []string
	ExposedFloor    []string
	GroundFloor     []string
	UndergroundWall []string
}

// Get returns the names in one category.
func (c *Categories) Get(cat model.Category) []string {
	switch cat {
	case model.CategoryWall:
		return c.Wall
	case model.CategoryWindow:
		return c.Window
	case model.CategorySkylight:
		return c.Skylight
	case model.CategoryRoof:
		return c.Roof
	case model.CategoryExposedFloor:
		return c.ExposedFloor
	case model.CategoryGroundFloor:
		return c.GroundFloor
	case model.CategoryUndergroundWall:
		return c.UndergroundWall
	}
	return nil
}

// Lookup finds the first category, in routing priority, containing name.
// Comparison is case-insensitive.
func (c *Categories) Lookup(name string) (model.Category, bool) {
	upper := strings.ToUpper(name)
	for _, cat := range model.CategoryPriority {
		for _, n := range c.Get(cat) {
			if strings.ToUpper(n) == upper {
				return cat, true
			}
		}
	}
	return "", false
}

// Count returns the total number of classified surfaces.
func (c *Categories) Count() int {
	total := 0
	for _, cat := range model.CategoryPriority {
		total += len(c.Get(cat))
	}
	return total
}

// Classify buckets the envelope surfaces of zones. Interior, adiabatic and
// otherwise unrecognized surfaces are skipped.
func Classify(zones []model.Zone) Categories {
	var c Categories
	for _, zone := range zones {
		for _, srf := range zone.Surfaces {
			bc := model.NormalizeBC(srf.BoundaryCondition)
			switch srf.Type() {
			case model.SurfaceWall:
				switch bc {
				case model.BCOutdoors:
					c.Wall = append(c.Wall, srf.Name)
					c.Window = appendChildren(c.Window, srf)
				case model.BCGround:
					c.UndergroundWall = append(c.UndergroundWall, srf.Name)
				}
			case model.SurfaceUndergroundWall:
				if bc == model.BCGround {
					c.UndergroundWall = append(c.UndergroundWall, srf.Name)
				}
			case model.SurfaceRoof:
				if bc == model.BCOutdoors {
					c.Roof = append(c.Roof, srf.Name)
					c.Skylight = appendChildren(c.Skylight, srf)
				}
			case model.SurfaceGroundFloor:
				if bc == model.BCGround {
					c.GroundFloor = append(c.GroundFloor, srf.Name)
				}
			case model.SurfaceExposedFloor:
				if bc == model.BCOutdoors {
					c.ExposedFloor = append(c.ExposedFloor, srf.Name)
				}
			}
		}
	}
	return c
}

func appendChildren(names []string, srf model.Surface) []string {
	for _, child := range srf.Children {
		names = append(names, child.Name)
	}
	return names
}

// Classifier resolves zone identifiers before classifying their surfaces.
type Classifier struct {
	resolver ZoneResolver
}

func NewClassifier(resolver ZoneResolver) *Classifier {
	return &Classifier{resolver: resolver}
}

// ClassifyIDs resolves ids and classifies the resulting zones.
func (c *Classifier) ClassifyIDs(ids []string) (Categories, []model.Zone, error) {
	if len(ids) == 0 {
		return Categories{}, nil, ErrNoZones
	}
	zones, err := c.resolver.ResolveZones(ids)
	if err != nil {
		return Categories{}, nil, fmt.Errorf("resolving zones: %w", err)
	}
	return Classify(zones), zones, nil
}

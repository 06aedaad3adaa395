package model

import "strings"

// SurfaceType is the geometric kind of a surface.
type SurfaceType int

const (
	SurfaceOther SurfaceType = iota
	SurfaceWall
	SurfaceUndergroundWall
	SurfaceRoof
	SurfaceGroundFloor
	SurfaceExposedFloor
)

func (s SurfaceType) String() string {
	return [...]string{"other", "wall", "underground_wall", "roof", "ground_floor", "exposed_floor"}[s]
}

// Raw geometric type codes used by the zone graph.
const (
	CodeWall            = 0
	CodeUndergroundWall = 0.5
	CodeRoof            = 1
	CodeGroundFloor     = 2.5
	CodeExposedFloor    = 2.75
)

// SurfaceTypeFromCode is the only place raw type codes are interpreted.
func SurfaceTypeFromCode(code float64) SurfaceType {
	switch code {
	case CodeWall:
		return SurfaceWall
	case CodeUndergroundWall:
		return SurfaceUndergroundWall
	case CodeRoof:
		return SurfaceRoof
	case CodeGroundFloor:
		return SurfaceGroundFloor
	case CodeExposedFloor:
		return SurfaceExposedFloor
	default:
		return SurfaceOther
	}
}

// Boundary conditions, upper-cased.
const (
	BCOutdoors  = "OUTDOORS"
	BCGround    = "GROUND"
	BCSurface   = "SURFACE"
	BCAdiabatic = "ADIABATIC"
)

func NormalizeBC(bc string) string {
	return strings.ToUpper(strings.TrimSpace(bc))
}

// Surface is a resolved surface of a zone. Children are the glazed
// sub-surfaces (windows, skylights) hosted by it.
type Surface struct {
	Name              string    `json:"name" yaml:"name"`
	TypeCode          float64   `json:"type" yaml:"type"`
	BoundaryCondition string    `json:"bc" yaml:"bc"`
	Children          []Surface `json:"children,omitempty" yaml:"children,omitempty"`
}

func (s Surface) Type() SurfaceType {
	return SurfaceTypeFromCode(s.TypeCode)
}

func (s Surface) HasChildren() bool {
	return len(s.Children) > 0
}

type Zone struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Surfaces []Surface `json:"surfaces" yaml:"surfaces"`
}

// Category is an envelope bucket a surface is classified into.
type Category string

const (
	CategoryWall            Category = "wall"
	CategoryWindow          Category = "window"
	CategorySkylight        Category = "skylight"
	CategoryRoof            Category = "roof"
	CategoryExposedFloor    Category = "exposed_floor"
	CategoryGroundFloor     Category = "ground_floor"
	CategoryUndergroundWall Category = "underground_wall"
)

// CategoryPriority is the order in which categories are tested when routing.
var CategoryPriority = []Category{
	CategoryWall,
	CategoryWindow,
	CategorySkylight,
	CategoryRoof,
	CategoryExposedFloor,
	CategoryGroundFloor,
	CategoryUndergroundWall,
}

// Glazed reports whether surfaces of the category conduct through glass.
func (c Category) Glazed() bool {
	return c == CategoryWindow || c == CategorySkylight
}

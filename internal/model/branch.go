package model

import (
	"math"
	"strconv"
	"strings"
)

// HeaderKey marks the first cell of a header-bearing branch.
const HeaderKey = "key:location/dataType/units/frequency/startsAt/endsAt"

const (
	// HeaderLen is the number of leading cells a header occupies.
	HeaderLen = 7
	// MaxSamples is the longest payload accepted: one year at hourly resolution.
	MaxSamples = 8760
)

// Cell is one scalar of a branch. Raw keeps the source text so opaque
// tokens (period tuples, timestep names) compare exactly.
type Cell struct {
	Raw     string
	Value   float64
	Numeric bool
	Null    bool
}

// ParseCell converts a raw text cell, keeping it as a token when it is not a
// finite number.
func ParseCell(s string) Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Null()
	}
	// NaN and infinities parse as floats but cannot be summed or encoded.
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return Cell{Raw: trimmed, Value: v, Numeric: true}
	}
	return Cell{Raw: trimmed}
}

func Num(v float64) Cell {
	return Cell{Raw: strconv.FormatFloat(v, 'g', -1, 64), Value: v, Numeric: true}
}

func Token(s string) Cell {
	return Cell{Raw: s}
}

// Null is an empty cell, the shape an unconnected input takes.
func Null() Cell {
	return Cell{Null: true}
}

func (c Cell) String() string {
	return c.Raw
}

// Header is the structured Ladybug header carried by a branch. On the wire it
// is seven cells: the HeaderKey sentinel, location, subtype, units, timestep,
// period start and period end. Subtype is the free-text data description
// ("Heating Energy for ZONE_1") that carries the data-kind marker and, for
// surface results, the surface name.
type Header struct {
	Location    string `json:"location" yaml:"location"`
	Subtype     string `json:"subtype" yaml:"subtype"`
	Units       string `json:"units" yaml:"units"`
	Timestep    string `json:"timestep" yaml:"timestep"`
	PeriodStart string `json:"period_start" yaml:"period_start"`
	PeriodEnd   string `json:"period_end" yaml:"period_end"`
}

// Period returns the analysis period covered by the header.
func (h Header) Period() Period {
	return Period{Start: h.PeriodStart, End: h.PeriodEnd}
}

// Cells renders the header as the leading cells of a branch.
func (h Header) Cells() []Cell {
	return []Cell{
		Token(HeaderKey),
		Token(h.Location),
		Token(h.Subtype),
		Token(h.Units),
		Token(h.Timestep),
		Token(h.PeriodStart),
		Token(h.PeriodEnd),
	}
}

// HeaderFromCells reads a header from the first HeaderLen cells of a branch.
func HeaderFromCells(cells []Cell) (Header, bool) {
	if len(cells) < HeaderLen || cells[0].Raw != HeaderKey {
		return Header{}, false
	}
	return Header{
		Location:    cells[1].Raw,
		Subtype:     cells[2].Raw,
		Units:       cells[3].Raw,
		Timestep:    cells[4].Raw,
		PeriodStart: cells[5].Raw,
		PeriodEnd:   cells[6].Raw,
	}, true
}

// Branch is one labeled time series: optional header cells then samples.
type Branch []Cell

// HasHeader reports whether the branch starts with the header sentinel.
func (b Branch) HasHeader() bool {
	return len(b) > 0 && b[0].Raw == HeaderKey
}

// NewBranch builds a header-bearing branch.
func NewBranch(h Header, samples ...float64) Branch {
	b := make(Branch, 0, HeaderLen+len(samples))
	b = append(b, h.Cells()...)
	for _, v := range samples {
		b = append(b, Num(v))
	}
	return b
}

// RawBranch builds a branch without a header.
func RawBranch(samples ...float64) Branch {
	b := make(Branch, 0, len(samples))
	for _, v := range samples {
		b = append(b, Num(v))
	}
	return b
}

// ParseBranch converts raw text cells into a branch.
func ParseBranch(fields []string) Branch {
	b := make(Branch, 0, len(fields))
	for _, f := range fields {
		b = append(b, ParseCell(f))
	}
	return b
}

package series

import (
	"fmt"
	"strings"

	"energy_balance/internal/model"
)

// areaMarkers flag units that were normalized by floor area.
var areaMarkers = []string{"m2", "ft2"}

// TermData is the validated content of one input. Present is false when the
// input carried no usable data; an absent term is skipped, never treated as zeros.
type TermData struct {
	Present  bool
	Location string
	Units    string
	Timestep string
	Period   model.Period
	Headers  []model.Header
	Payloads [][]float64
}

// Header returns the first header of the input, which describes all of them.
func (d TermData) Header() model.Header {
	if len(d.Headers) == 0 {
		return model.Header{}
	}
	return d.Headers[0]
}

// Validation is the outcome of checking one input.
type Validation struct {
	OK       bool
	Data     TermData
	Warnings []Warning
	// Degraded explains why a structurally broken input was treated as absent.
	Degraded string
}

// Split separates a branch into its header, if any, and its payload cells.
func Split(b model.Branch) (*model.Header, []model.Cell) {
	if h, ok := model.HeaderFromCells(b); ok {
		return &h, b[model.HeaderLen:]
	}
	return nil, b
}

// Validate checks that the branches of one input can be combined and returns
// their numeric payloads.
//
// An input with no branches, or whose branches carry no header at all, is
// absent and valid. An input mixing headed and headerless branches, with
// unequal or over-long payloads, or whose headers disagree on subtype,
// units, timestep or period, is invalid. Structurally broken payloads (all
// empty, or containing non-numeric cells) degrade to absent rather than fail;
// when cells were dropped a non-fatal CheckDegraded warning says so.
func Validate(branches []model.Branch, termName, expectedKind string) Validation {
	if len(branches) == 0 {
		return Validation{OK: true}
	}

	var headers []model.Header
	payloads := make([][]model.Cell, 0, len(branches))
	for _, b := range branches {
		h, payload := Split(b)
		if h != nil {
			headers = append(headers, *h)
		}
		payloads = append(payloads, payload)
	}

	if len(headers) == 0 {
		v := Validation{OK: true}
		if hasData(payloads) {
			v.Warnings = append(v.Warnings, Warning{
				Term:    termName,
				Check:   CheckIgnored,
				Message: fmt.Sprintf("The connected %s data has no Ladybug/Honeybee header and was ignored.", termName),
			})
		}
		return v
	}

	var warnings []Warning
	if len(headers) != len(branches) {
		warnings = append(warnings, Warning{
			Term:    termName,
			Check:   CheckHeader,
			Message: fmt.Sprintf("Not all of the connected %s has a Ladybug/Honeybee header on it. This header is necessary to build an energy balance.", termName),
		})
	}

	if !equalLengths(payloads) {
		warnings = append(warnings, Warning{
			Term:    termName,
			Check:   CheckLength,
			Message: fmt.Sprintf("Not all of the connected %s branches are of the same length or there are more than %d values in the list.", termName, model.MaxSamples),
		})
	}

	if len(headers) == len(branches) {
		warnings = append(warnings, checkHeaders(headers, termName, expectedKind)...)
	}

	for _, w := range warnings {
		if w.Check.Fatal() {
			return Validation{Warnings: warnings}
		}
	}

	numbers, reason := numericPayloads(payloads)
	if reason != "" {
		// Header-only branches are an unconnected input; anything else lost data.
		if hasData(payloads) {
			warnings = append(warnings, Warning{
				Term:    termName,
				Check:   CheckDegraded,
				Message: fmt.Sprintf("The connected %s data could not be read (%s) and was left out of the balance.", termName, reason),
			})
		}
		return Validation{OK: true, Warnings: warnings, Degraded: reason}
	}

	first := headers[0]
	return Validation{
		OK: true,
		Data: TermData{
			Present:  true,
			Location: first.Location,
			Units:    first.Units,
			Timestep: first.Timestep,
			Period:   first.Period(),
			Headers:  headers,
			Payloads: numbers,
		},
		Warnings: warnings,
	}
}

func checkHeaders(headers []model.Header, termName, expectedKind string) []Warning {
	var warnings []Warning
	first := headers[0]

	var unitsOK, timestepOK, periodOK, kindOK, areaOK = true, true, true, true, true
	for _, h := range headers {
		if h.Units != first.Units {
			unitsOK = false
		}
		if h.Timestep != first.Timestep {
			timestepOK = false
		}
		if h.PeriodStart != first.PeriodStart || h.PeriodEnd != first.PeriodEnd {
			periodOK = false
		}
		if !strings.Contains(h.Subtype, expectedKind) {
			kindOK = false
		}
		if isAreaNormalized(h.Units) {
			areaOK = false
		}
	}

	if !unitsOK {
		warnings = append(warnings, Warning{
			Term:    termName,
			Check:   CheckUnits,
			Message: fmt.Sprintf("Not all of the connected %s branches are in the same units.", termName),
		})
	}
	if !timestepOK {
		warnings = append(warnings, Warning{
			Term:    termName,
			Check:   CheckTimestep,
			Message: fmt.Sprintf("Not all of the connected %s branches are of the same timestep.", termName),
		})
	}
	if !periodOK {
		warnings = append(warnings, Warning{
			Term:    termName,
			Check:   CheckPeriod,
			Message: fmt.Sprintf("Not all of the connected %s branches are of the same analysis period.", termName),
		})
	}
	if !kindOK {
		warnings = append(warnings, Warning{
			Term:    termName,
			Check:   CheckDataType,
			Message: fmt.Sprintf("Not all of the connected %s data is for the correct data type (expected %q).", termName, expectedKind),
		})
	}
	if !areaOK {
		warnings = append(warnings, Warning{
			Term:    termName,
			Check:   CheckAreaNormalized,
			Message: fmt.Sprintf("The data from the %s input has been normalized by an area. Values need to be non-normalized for the energy balance to work.", termName),
		})
	}
	return warnings
}

func isAreaNormalized(units string) bool {
	for _, m := range areaMarkers {
		if strings.Contains(units, m) {
			return true
		}
	}
	return false
}

func equalLengths(payloads [][]model.Cell) bool {
	n := len(payloads[0])
	if n > model.MaxSamples {
		return false
	}
	for _, p := range payloads[1:] {
		if len(p) != n {
			return false
		}
	}
	return true
}

// hasData reports whether any payload holds a non-null cell.
func hasData(payloads [][]model.Cell) bool {
	for _, p := range payloads {
		for _, c := range p {
			if !c.Null {
				return true
			}
		}
	}
	return false
}

// numericPayloads converts payload cells to floats. A non-empty reason means
// the input is structurally unusable and must be treated as absent.
func numericPayloads(payloads [][]model.Cell) ([][]float64, string) {
	out := make([][]float64, len(payloads))
	empty := true
	for i, p := range payloads {
		values := make([]float64, len(p))
		for j, c := range p {
			if !c.Numeric {
				return nil, fmt.Sprintf("branch %d sample %d is not numeric: %q", i, j, c.Raw)
			}
			values[j] = c.Value
		}
		if len(values) > 0 {
			empty = false
		}
		out[i] = values
	}
	if empty {
		return nil, "all branches are empty"
	}
	return out, ""
}

package series

import "fmt"

// Check names the validation clause a warning comes from.
type Check string

const (
	CheckHeader           Check = "header"
	CheckLength           Check = "length"
	CheckUnits            Check = "units"
	CheckTimestep         Check = "timestep"
	CheckPeriod           Check = "period"
	CheckDataType         Check = "data_type"
	CheckAreaNormalized   Check = "area_normalized"
	CheckIgnored          Check = "ignored"
	CheckUnmatchedSurface Check = "unmatched_surface"
	CheckDegraded         Check = "degraded"
)

// Fatal reports whether a failed check invalidates the input.
// Ignored or degraded inputs and unmatched surfaces are informational only.
func (c Check) Fatal() bool {
	switch c {
	case CheckIgnored, CheckDegraded, CheckUnmatchedSurface:
		return false
	}
	return true
}

// Warning is a user-facing message about one input.
type Warning struct {
	Term    string `json:"term"`
	Check   Check  `json:"check"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s [%s]: %s", w.Term, w.Check, w.Message)
}

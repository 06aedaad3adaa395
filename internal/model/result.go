package model

// Period is an opaque analysis period; start and end compare exactly.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// EnergyTerm is one aligned output series of the balance.
type EnergyTerm struct {
	Label    string    `json:"label"`
	Location string    `json:"location"`
	Units    string    `json:"units"`
	Timestep string    `json:"timestep"`
	Period   Period    `json:"period"`
	Samples  []float64 `json:"samples"`
}

// Header returns the Ladybug header describing the term.
func (t EnergyTerm) Header() Header {
	return Header{
		Location:    t.Location,
		Subtype:     t.Label,
		Units:       t.Units,
		Timestep:    t.Timestep,
		PeriodStart: t.Period.Start,
		PeriodEnd:   t.Period.End,
	}
}

// Branch renders the term as a header-bearing branch.
func (t EnergyTerm) Branch() Branch {
	return NewBranch(t.Header(), t.Samples...)
}

// BalanceResult is an ordered list of energy terms sharing one time grid.
type BalanceResult struct {
	Terms []EnergyTerm `json:"terms"`
}

// Term returns the term with the given label.
func (r BalanceResult) Term(label string) (EnergyTerm, bool) {
	for _, t := range r.Terms {
		if t.Label == label {
			return t, true
		}
	}
	return EnergyTerm{}, false
}

func (r BalanceResult) Labels() []string {
	labels := make([]string, len(r.Terms))
	for i, t := range r.Terms {
		labels[i] = t.Label
	}
	return labels
}

// Len returns the number of samples per term, or 0 for an empty result.
func (r BalanceResult) Len() int {
	if len(r.Terms) == 0 {
		return 0
	}
	return len(r.Terms[0].Samples)
}

// Branches renders every term as a header-bearing branch.
func (r BalanceResult) Branches() []Branch {
	out := make([]Branch, len(r.Terms))
	for i, t := range r.Terms {
		out[i] = t.Branch()
	}
	return out
}

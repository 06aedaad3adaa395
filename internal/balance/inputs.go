package balance

import "energy_balance/internal/model"

// Inputs are the per-zone and per-surface series of every balance term, as
// delivered by the simulation-result reader.
type Inputs struct {
	Heating      []model.Branch `json:"heating"`
	Solar        []model.Branch `json:"solar"`
	Lighting     []model.Branch `json:"lighting"`
	Equipment    []model.Branch `json:"equipment"`
	People       []model.Branch `json:"people"`
	Infiltration []model.Branch `json:"infiltration"`
	OutdoorAir   []model.Branch `json:"outdoor_air"`
	NatVent      []model.Branch `json:"nat_vent"`
	SurfaceFlow  []model.Branch `json:"surface_flow"`
	Cooling      []model.Branch `json:"cooling"`
}

// Get returns the branches of one input term.
func (in *Inputs) Get(kind model.TermKind) []model.Branch {
	if p := in.field(kind); p != nil {
		return *p
	}
	return nil
}

// Set replaces the branches of one input term. Unknown kinds are ignored.
func (in *Inputs) Set(kind model.TermKind, branches []model.Branch) {
	if p := in.field(kind); p != nil {
		*p = branches
	}
}

func (in *Inputs) field(kind model.TermKind) *[]model.Branch {
	switch kind {
	case model.TermHeating:
		return &in.Heating
	case model.TermSolar:
		return &in.Solar
	case model.TermLighting:
		return &in.Lighting
	case model.TermEquipment:
		return &in.Equipment
	case model.TermPeople:
		return &in.People
	case model.TermInfiltration:
		return &in.Infiltration
	case model.TermOutdoorAir:
		return &in.OutdoorAir
	case model.TermNatVent:
		return &in.NatVent
	case model.TermSurfaceFlow:
		return &in.SurfaceFlow
	case model.TermCooling:
		return &in.Cooling
	}
	return nil
}

// Empty reports whether no input carries any branch.
func (in *Inputs) Empty() bool {
	for _, kind := range model.InputOrder {
		if len(in.Get(kind)) > 0 {
			return false
		}
	}
	return true
}

package model

import "strings"

type TermKind string

const (
	TermHeating      TermKind = "heating"
	TermSolar        TermKind = "solar"
	TermLighting     TermKind = "lighting"
	TermEquipment    TermKind = "equipment"
	TermPeople       TermKind = "people"
	TermInfiltration TermKind = "infiltration"
	TermOutdoorAir   TermKind = "outdoor_air"
	TermNatVent      TermKind = "nat_vent"
	TermSurfaceFlow  TermKind = "surface_flow"
	TermCooling      TermKind = "cooling"
)

// Output labels of the balance terms.
const (
	LabelHeating           = "Heating"
	LabelSolar             = "Solar"
	LabelLighting          = "Lighting"
	LabelEquipment         = "Equipment"
	LabelPeople            = "People"
	LabelInfiltration      = "Infiltration"
	LabelOutdoorAir        = "Outdoor Air"
	LabelNatVent           = "Natural Ventilation"
	LabelOpaqueConduction  = "Opaque Conduction"
	LabelGlazingConduction = "Glazing Conduction"
	LabelCooling           = "Cooling"
	LabelStorage           = "Storage"
)

// TermInfo describes how an input term is named, recognized and labeled.
type TermInfo struct {
	// Input is the display name of the connected input, used in warnings.
	Input string
	// Marker must appear in every header subtype of the input.
	Marker string
	// Label is the output term label. Surface flow has two outputs and no single label.
	Label string
}

// TermCatalog maps every input term to its naming.
var TermCatalog = map[TermKind]TermInfo{
	TermHeating:      {Input: "heating", Marker: "Heating", Label: LabelHeating},
	TermSolar:        {Input: "totalSolarGain_", Marker: "Solar", Label: LabelSolar},
	TermLighting:     {Input: "electricLight_", Marker: "Lighting", Label: LabelLighting},
	TermEquipment:    {Input: "electricEquip_", Marker: "Equipment", Label: LabelEquipment},
	TermPeople:       {Input: "peopleGains_", Marker: "People", Label: LabelPeople},
	TermInfiltration: {Input: "infiltrationEnergy_", Marker: "Infiltration", Label: LabelInfiltration},
	TermOutdoorAir:   {Input: "outdoorAirEnergy_", Marker: "Outdoor Air", Label: LabelOutdoorAir},
	TermNatVent:      {Input: "natVentEnergy_", Marker: "Natural Ventilation", Label: LabelNatVent},
	TermSurfaceFlow:  {Input: "surfaceEnergyFlow_", Marker: "Surface Energy"},
	TermCooling:      {Input: "cooling", Marker: "Cooling", Label: LabelCooling},
}

// InputOrder is the order in which input terms are validated.
var InputOrder = []TermKind{
	TermHeating,
	TermSolar,
	TermLighting,
	TermEquipment,
	TermPeople,
	TermInfiltration,
	TermOutdoorAir,
	TermNatVent,
	TermCooling,
	TermSurfaceFlow,
}

// BalanceOrder is the fixed order of terms in a balance result.
var BalanceOrder = []string{
	LabelHeating,
	LabelSolar,
	LabelLighting,
	LabelEquipment,
	LabelPeople,
	LabelInfiltration,
	LabelOutdoorAir,
	LabelNatVent,
	LabelOpaqueConduction,
	LabelGlazingConduction,
	LabelCooling,
}

// TermKindFromString accepts either the term slug or the input display name,
// in any case.
func TermKindFromString(s string) (TermKind, bool) {
	for kind, info := range TermCatalog {
		if strings.EqualFold(string(kind), s) || strings.EqualFold(info.Input, s) {
			return kind, true
		}
	}
	return "", false
}

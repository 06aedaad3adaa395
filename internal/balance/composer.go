package balance

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"energy_balance/internal/model"
	"energy_balance/internal/series"
	"energy_balance/internal/surface"
)

var (
	ErrNoZones       = errors.New("no zones given")
	ErrNoInputs      = errors.New("no input carries any branch")
	ErrNoResolver    = errors.New("no zone resolver configured")
	ErrValidation    = errors.New("input validation failed")
	ErrSolarRequired = errors.New("glazing conduction needs solar gain data")
	ErrNoTerms       = errors.New("no balance term has data")
)

// ValidationError carries every warning raised while validating the inputs.
type ValidationError struct {
	Warnings []series.Warning
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Warnings))
	for _, w := range e.Warnings {
		if w.Check.Fatal() {
			msgs = append(msgs, w.String())
		}
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Result is a composed balance. WithStorage is Balance plus the residual
// storage term that closes the balance to zero at every timestep.
type Result struct {
	Balance     model.BalanceResult `json:"balance"`
	WithStorage model.BalanceResult `json:"with_storage"`
	Warnings    []series.Warning    `json:"warnings,omitempty"`
}

// Output returns WithStorage when storage is requested, otherwise Balance.
func (r *Result) Output(storage bool) model.BalanceResult {
	if storage {
		return r.WithStorage
	}
	return r.Balance
}

// Composer builds building-level energy balances from zone and surface series.
type Composer struct {
	resolver surface.ZoneResolver
	logger   *zap.Logger
}

func NewComposer(resolver surface.ZoneResolver, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{resolver: resolver, logger: logger}
}

// Compose resolves zoneIDs and builds the balance. Either every input
// validates and a full result is returned, or nothing is.
func (c *Composer) Compose(zoneIDs []string, in Inputs) (*Result, error) {
	if len(zoneIDs) == 0 {
		return nil, ErrNoZones
	}
	if in.Empty() {
		return nil, ErrNoInputs
	}
	if c.resolver == nil {
		return nil, ErrNoResolver
	}

	terms, warnings, err := c.validate(in)
	if err != nil {
		return nil, err
	}

	cats, _, err := surface.NewClassifier(c.resolver).ClassifyIDs(zoneIDs)
	if err != nil {
		return nil, err
	}
	return c.compose(cats, terms, warnings)
}

// ComposeZones builds the balance for zones that are already resolved.
func (c *Composer) ComposeZones(zones []model.Zone, in Inputs) (*Result, error) {
	if len(zones) == 0 {
		return nil, ErrNoZones
	}
	if in.Empty() {
		return nil, ErrNoInputs
	}

	terms, warnings, err := c.validate(in)
	if err != nil {
		return nil, err
	}
	return c.compose(surface.Classify(zones), terms, warnings)
}

func (c *Composer) validate(in Inputs) (map[model.TermKind]series.TermData, []series.Warning, error) {
	terms := make(map[model.TermKind]series.TermData, len(model.InputOrder))
	var warnings []series.Warning
	failed := false

	for _, kind := range model.InputOrder {
		info := model.TermCatalog[kind]
		v := series.Validate(in.Get(kind), info.Input, info.Marker)

		for _, w := range v.Warnings {
			c.logger.Warn(w.Message,
				zap.String("term", w.Term),
				zap.String("check", string(w.Check)),
			)
		}
		warnings = append(warnings, v.Warnings...)

		if !v.OK {
			failed = true
			continue
		}
		if v.Degraded != "" {
			c.logger.Debug("treating input as absent",
				zap.String("term", info.Input),
				zap.String("reason", v.Degraded),
			)
		}
		terms[kind] = v.Data
	}

	if failed {
		return nil, nil, &ValidationError{Warnings: warnings}
	}
	return terms, warnings, nil
}

func (c *Composer) compose(cats surface.Categories, data map[model.TermKind]series.TermData, warnings []series.Warning) (*Result, error) {
	sums := make(map[string][]float64, len(model.BalanceOrder))
	meta := make(map[string]series.TermData, len(model.BalanceOrder))

	for _, kind := range model.InputOrder {
		d := data[kind]
		if kind == model.TermSurfaceFlow || !d.Present {
			continue
		}
		label := model.TermCatalog[kind].Label
		summed, err := series.Sum(d.Payloads)
		if err != nil {
			return nil, fmt.Errorf("summing %s: %w", label, err)
		}
		sums[label] = summed
		meta[label] = d
	}

	if surfaces := data[model.TermSurfaceFlow]; surfaces.Present {
		routed := surface.Route(surfaceSeries(surfaces), cats)
		for _, name := range routed.Unmatched {
			w := series.Warning{
				Term:    model.TermCatalog[model.TermSurfaceFlow].Input,
				Check:   series.CheckUnmatchedSurface,
				Message: fmt.Sprintf("Surface %s is not part of the building envelope and was left out of the balance.", name),
			}
			c.logger.Warn(w.Message, zap.String("term", w.Term), zap.String("check", string(w.Check)))
			warnings = append(warnings, w)
		}

		if len(routed.Opaque) > 0 {
			opaque, err := series.Sum(routed.Opaque)
			if err != nil {
				return nil, fmt.Errorf("summing %s: %w", model.LabelOpaqueConduction, err)
			}
			sums[model.LabelOpaqueConduction] = opaque
			meta[model.LabelOpaqueConduction] = surfaces
		}

		if len(routed.Glazing) > 0 {
			glazing, err := series.Sum(routed.Glazing)
			if err != nil {
				return nil, fmt.Errorf("summing %s: %w", model.LabelGlazingConduction, err)
			}
			solar, ok := sums[model.LabelSolar]
			if !ok {
				return nil, ErrSolarRequired
			}
			// Glazing heat flow includes transmitted solar; keep only conduction.
			glazing, err = series.Subtract(glazing, solar)
			if err != nil {
				return nil, fmt.Errorf("deriving %s: %w", model.LabelGlazingConduction, err)
			}
			sums[model.LabelGlazingConduction] = glazing
			meta[model.LabelGlazingConduction] = surfaces
		}
	}

	if cooling, ok := sums[model.LabelCooling]; ok {
		sums[model.LabelCooling] = series.Negate(cooling)
	}

	var terms []model.EnergyTerm
	for _, label := range model.BalanceOrder {
		samples, ok := sums[label]
		if !ok {
			continue
		}
		d := meta[label]
		terms = append(terms, model.EnergyTerm{
			Label:    label,
			Location: d.Location,
			Units:    d.Units,
			Timestep: d.Timestep,
			Period:   d.Period,
			Samples:  samples,
		})
	}
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}

	storage, err := storageTerm(terms)
	if err != nil {
		return nil, err
	}

	withStorage := make([]model.EnergyTerm, 0, len(terms)+1)
	withStorage = append(withStorage, terms...)
	withStorage = append(withStorage, storage)

	c.logger.Info("energy balance composed",
		zap.Int("terms", len(terms)),
		zap.Int("samples", len(storage.Samples)),
		zap.Int("envelope_surfaces", cats.Count()),
		zap.Int("warnings", len(warnings)),
	)

	return &Result{
		Balance:     model.BalanceResult{Terms: terms},
		WithStorage: model.BalanceResult{Terms: withStorage},
		Warnings:    warnings,
	}, nil
}

// storageTerm is the negated sum of all terms; it carries the first term's header.
func storageTerm(terms []model.EnergyTerm) (model.EnergyTerm, error) {
	all := make([][]float64, len(terms))
	for i, t := range terms {
		if len(t.Samples) != len(terms[0].Samples) {
			return model.EnergyTerm{}, fmt.Errorf("%w: %s has %d samples, %s has %d",
				series.ErrLengthMismatch, t.Label, len(t.Samples), terms[0].Label, len(terms[0].Samples))
		}
		all[i] = t.Samples
	}
	total, err := series.Sum(all)
	if err != nil {
		return model.EnergyTerm{}, err
	}

	storage := terms[0]
	storage.Label = model.LabelStorage
	storage.Samples = series.Negate(total)
	return storage, nil
}

func surfaceSeries(d series.TermData) []surface.SurfaceSeries {
	out := make([]surface.SurfaceSeries, len(d.Payloads))
	for i, p := range d.Payloads {
		out[i] = surface.SurfaceSeries{Header: d.Headers[i], Samples: p}
	}
	return out
}

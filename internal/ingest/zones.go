package ingest

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"energy_balance/internal/model"
)

var ErrNoZonesDefined = errors.New("no zones defined")

type zoneFile struct {
	Zones []model.Zone `yaml:"zones"`
}

// ZoneParser reads the zone graph from YAML. JSON documents are valid YAML
// and decode the same way.
type ZoneParser struct{}

func NewZoneParser() *ZoneParser {
	return &ZoneParser{}
}

func (p *ZoneParser) Parse(r io.Reader) ([]model.Zone, error) {
	var f zoneFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoZonesDefined
		}
		return nil, fmt.Errorf("decoding zones: %w", err)
	}
	if len(f.Zones) == 0 {
		return nil, ErrNoZonesDefined
	}

	seen := make(map[string]bool, len(f.Zones))
	for i, z := range f.Zones {
		if z.ID == "" {
			return nil, fmt.Errorf("zone %d: missing id", i)
		}
		if seen[z.ID] {
			return nil, fmt.Errorf("zone %q: duplicate id", z.ID)
		}
		seen[z.ID] = true
		if z.Name == "" {
			f.Zones[i].Name = z.ID
		}
	}
	return f.Zones, nil
}

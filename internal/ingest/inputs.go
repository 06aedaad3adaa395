package ingest

import (
	"fmt"
	"io"
	"os"

	"energy_balance/internal/balance"
	"energy_balance/internal/model"
)

// Opener opens a named input source.
type Opener func(name string) (io.ReadCloser, error)

// OpenFile opens inputs from the local filesystem.
func OpenFile(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// LoadInputs parses the branch CSV of every term listed in manifest. Terms
// missing from the manifest stay unconnected.
func LoadInputs(manifest map[model.TermKind]string, open Opener) (balance.Inputs, error) {
	var in balance.Inputs
	parser := NewBranchParser()

	for _, kind := range model.InputOrder {
		name, ok := manifest[kind]
		if !ok || name == "" {
			continue
		}
		branches, err := loadBranches(parser, name, open)
		if err != nil {
			return balance.Inputs{}, fmt.Errorf("loading %s input: %w", kind, err)
		}
		in.Set(kind, branches)
	}
	return in, nil
}

func loadBranches(parser *BranchParser, name string, open Opener) ([]model.Branch, error) {
	rc, err := open(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()
	return parser.Parse(rc)
}

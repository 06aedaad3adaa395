package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"energy_balance/internal/model"
)

// Formats accepted by Write.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatBranches = "branches"
)

// Write renders result in the named format.
func Write(w io.Writer, format string, result model.BalanceResult) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, result)
	case FormatCSV:
		return WriteCSV(w, result)
	case FormatBranches:
		return WriteBranches(w, result)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteCSV writes one column per term and one row per timestep, preceded
// by a row of term labels.
func WriteCSV(w io.Writer, result model.BalanceResult) error {
	cw := csv.NewWriter(w)

	header := append([]string{"step"}, result.Labels()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	row := make([]string, len(header))
	for i := 0; i < result.Len(); i++ {
		row[0] = strconv.Itoa(i)
		for j, t := range result.Terms {
			row[j+1] = formatSample(t.Samples, i)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteBranches writes every term as a header-bearing branch record, the
// same layout the branch parser reads.
func WriteBranches(w io.Writer, result model.BalanceResult) error {
	cw := csv.NewWriter(w)
	for _, b := range result.Branches() {
		record := make([]string, len(b))
		for i, c := range b {
			record[i] = c.Raw
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing branch: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, result model.BalanceResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func formatSample(samples []float64, i int) string {
	if i >= len(samples) {
		return ""
	}
	return strconv.FormatFloat(samples[i], 'f', -1, 64)
}

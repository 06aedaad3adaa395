package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"energy_balance/internal/model"
)

// BranchParser reads branch series from CSV. Each record is one branch:
// optional header cells followed by samples. Records may differ in width.
type BranchParser struct {
	Comma rune
}

func NewBranchParser() *BranchParser {
	return &BranchParser{Comma: ','}
}

// Parse returns one branch per non-blank record. Trailing empty cells are
// dropped so spreadsheet padding does not turn into null samples.
func (p *BranchParser) Parse(r io.Reader) ([]model.Branch, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	if p.Comma != 0 {
		reader.Comma = p.Comma
	}

	var branches []model.Branch
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading branch record %d: %w", line, err)
		}

		record = trimTrailingEmpty(record)
		if len(record) == 0 {
			continue
		}
		branches = append(branches, model.ParseBranch(record))
	}
	return branches, nil
}

func trimTrailingEmpty(record []string) []string {
	n := len(record)
	for n > 0 && strings.TrimSpace(record[n-1]) == "" {
		n--
	}
	return record[:n]
}

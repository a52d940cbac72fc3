// Package table reads experimental-design tables from CSV files.
package table

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fieldtrial/plotshape/pkg/models"
	"github.com/fieldtrial/plotshape/pkg/perrors"
)

// Column headers recognized in the input file. Matching is
// case-insensitive; "Barcode" is accepted as an alias for "Label".
const (
	ColPlot    = "plot"
	ColRange   = "range"
	ColRow     = "row"
	ColLabel   = "label"
	ColBarcode = "barcode"
)

// Load parses a design table from r. The first record is the header; rows
// must carry numeric Plot, Range and Row values and a non-empty label.
func Load(r io.Reader) (models.Design, error) {
	var design models.Design

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return design, perrors.Wrap(perrors.CodeInvalidInput, err, "reading header")
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	plotIdx, ok := cols[ColPlot]
	if !ok {
		return design, perrors.New(perrors.CodeMissingColumns, "column %q not found", ColPlot)
	}
	rangeIdx, ok := cols[ColRange]
	if !ok {
		return design, perrors.New(perrors.CodeMissingColumns, "column %q not found", ColRange)
	}
	rowIdx, ok := cols[ColRow]
	if !ok {
		return design, perrors.New(perrors.CodeMissingColumns, "column %q not found", ColRow)
	}
	labelIdx, ok := cols[ColLabel]
	if !ok {
		if labelIdx, ok = cols[ColBarcode]; !ok {
			return design, perrors.New(perrors.CodeMissingColumns,
				"column %q (or %q) not found", ColLabel, ColBarcode)
		}
	}

	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return design, perrors.Wrap(perrors.CodeInvalidInput, err, "reading record %d", line)
		}
		line++

		plot, err := parseField(record, plotIdx, ColPlot, line)
		if err != nil {
			return design, err
		}
		rng, err := parseField(record, rangeIdx, ColRange, line)
		if err != nil {
			return design, err
		}
		row, err := parseField(record, rowIdx, ColRow, line)
		if err != nil {
			return design, err
		}
		if labelIdx >= len(record) || strings.TrimSpace(record[labelIdx]) == "" {
			return design, perrors.New(perrors.CodeInvalidInput,
				"line %d: empty label", line)
		}

		design.Plot = append(design.Plot, plot)
		design.Range = append(design.Range, rng)
		design.Row = append(design.Row, row)
		design.Label = append(design.Label, strings.TrimSpace(record[labelIdx]))
	}

	if design.Len() == 0 {
		return design, perrors.New(perrors.CodeInvalidInput, "no data rows in table")
	}
	return design, nil
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string) (models.Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Design{}, perrors.Wrap(perrors.CodeInvalidInput, err, "opening %s", path)
	}
	defer f.Close()
	return Load(f)
}

func parseField(record []string, idx int, col string, line int) (float64, error) {
	if idx >= len(record) {
		return 0, perrors.New(perrors.CodeInvalidInput,
			"line %d: missing %s value", line, col)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
	if err != nil {
		return 0, perrors.Wrap(perrors.CodeInvalidInput, err,
			"line %d: bad %s value %q", line, col, record[idx])
	}
	return v, nil
}

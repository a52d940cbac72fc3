// Package layout turns a raw experimental-design table into the ordered
// local grid the geometry stages consume: normalization to 1-based
// indices, multi-row grouping, and serpentine emission order.
//
// Every operation returns a fresh LayoutGrid; inputs are never mutated.
package layout

import (
	"math"
	"sort"

	"github.com/fieldtrial/plotshape/pkg/models"
	"github.com/fieldtrial/plotshape/pkg/perrors"
)

// Normalize validates the design table, sorts it by (Plot, Row) ascending
// (stable), and re-indexes Range and Row to a local 1-based grid. The
// normalized row index is also stored as OriginalRow so later stages can
// look up stagger membership after grouping renumbers rows.
//
// A record count different from NRange*NRow is reported as a warning; the
// grid is still produced.
func Normalize(design models.Design) (models.LayoutGrid, []perrors.Warning, error) {
	if err := design.Validate(); err != nil {
		return models.LayoutGrid{}, nil, err
	}

	n := design.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if design.Plot[ia] != design.Plot[ib] {
			return design.Plot[ia] < design.Plot[ib]
		}
		return design.Row[ia] < design.Row[ib]
	})

	minRange, minRow := design.Range[0], design.Row[0]
	rangeSeen := map[float64]struct{}{}
	rowSeen := map[float64]struct{}{}
	for i := 0; i < n; i++ {
		if design.Range[i] < minRange {
			minRange = design.Range[i]
		}
		if design.Row[i] < minRow {
			minRow = design.Row[i]
		}
		rangeSeen[design.Range[i]] = struct{}{}
		rowSeen[design.Row[i]] = struct{}{}
	}

	records := make([]models.PlotRecord, n)
	for out, in := range order {
		localRow := int(math.Round(design.Row[in]-minRow)) + 1
		records[out] = models.PlotRecord{
			Plot:        design.Plot[in],
			Range:       int(math.Round(design.Range[in]-minRange)) + 1,
			Row:         localRow,
			Label:       design.Label[in],
			OriginalRow: localRow,
		}
	}

	grid := models.LayoutGrid{
		Records: records,
		NRange:  len(rangeSeen),
		NRow:    len(rowSeen),
		NPlot:   n,
	}

	var warnings []perrors.Warning
	if grid.NPlot != grid.NRange*grid.NRow {
		warnings = append(warnings, perrors.Warnf(perrors.CodePlotCountMismatch,
			"design has %d records but %d ranges x %d rows = %d; output may be incomplete",
			grid.NPlot, grid.NRange, grid.NRow, grid.NRange*grid.NRow))
	}
	return grid, warnings, nil
}

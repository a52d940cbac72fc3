package layout

import (
	"fmt"
	"math"

	"github.com/fieldtrial/plotshape/pkg/models"
)

// ApplyGrouping rewrites the grid according to the grouping mode.
//
// Combined: only rows at local positions 1, 1+n, 1+2n, ... survive, each
// standing in for its whole n-row plot; kept rows are renumbered to
// ceil(row/n) and keep their label as-is. The caller is responsible for
// widening the row spacing by n.
//
// Individual and Subsetted: rows stay separate, and within each group of
// records sharing a label they are relabeled label_1, label_2, ... in the
// grid's current order. This suffixing relies on the stable (Plot, Row)
// sort from Normalize: the suffix order is a contract, not an accident.
// Subsetted additionally drops the outer Subset rows from each side of
// every plot group, keeping suffixes assigned before the drop.
func ApplyGrouping(grid models.LayoutGrid, mode models.GroupingMode) models.LayoutGrid {
	switch mode.Kind {
	case models.GroupingCombined:
		return combineRows(grid, mode.RowsPerPlot)
	case models.GroupingIndividual:
		return relabelIndividual(grid)
	case models.GroupingSubsetted:
		return subsetRows(relabelIndividual(grid), mode.Subset)
	default:
		out := grid
		out.Records = append([]models.PlotRecord(nil), grid.Records...)
		return out
	}
}

func combineRows(grid models.LayoutGrid, n int) models.LayoutGrid {
	kept := make([]models.PlotRecord, 0, len(grid.Records)/n+1)
	for _, rec := range grid.Records {
		if (rec.Row-1)%n != 0 {
			continue
		}
		if rec.Row > 1 {
			rec.Row = int(math.Ceil(float64(rec.Row) / float64(n)))
		}
		kept = append(kept, rec)
	}
	out := grid
	out.Records = kept
	return out
}

func relabelIndividual(grid models.LayoutGrid) models.LayoutGrid {
	records := append([]models.PlotRecord(nil), grid.Records...)
	counts := make(map[string]int, len(records))
	for i := range records {
		counts[records[i].Label]++
		records[i].Label = fmt.Sprintf("%s_%d", records[i].Label, counts[records[i].Label])
	}
	out := grid
	out.Records = records
	return out
}

func subsetRows(grid models.LayoutGrid, k int) models.LayoutGrid {
	minRow := make(map[float64]int)
	maxRow := make(map[float64]int)
	for _, rec := range grid.Records {
		lo, ok := minRow[rec.Plot]
		if !ok || rec.Row < lo {
			minRow[rec.Plot] = rec.Row
		}
		hi, ok := maxRow[rec.Plot]
		if !ok || rec.Row > hi {
			maxRow[rec.Plot] = rec.Row
		}
	}

	kept := make([]models.PlotRecord, 0, len(grid.Records))
	for _, rec := range grid.Records {
		if rec.Row >= minRow[rec.Plot]+k && rec.Row <= maxRow[rec.Plot]-k {
			kept = append(kept, rec)
		}
	}
	out := grid
	out.Records = kept
	return out
}

package geometry

import (
	"math"

	"github.com/fieldtrial/plotshape/pkg/models"
	"github.com/fieldtrial/plotshape/pkg/perrors"
)

// ValidateStagger checks a stagger spec against the grouping mode.
// StartRow 1 would shift the plot that anchors the AB line; StartRow
// beyond RowsPerPass+1 breaks the assumption of a uniform stagger across
// the trial; combined plots wider than half a planter pass straddle the
// stagger boundary and cannot be shifted as a unit.
func ValidateStagger(spec models.StaggerSpec, mode models.GroupingMode) error {
	if spec.StartRow == 1 {
		return perrors.New(perrors.CodeInvalidStagger,
			"stagger start row must reference a row beyond the first plot (startRow != 1)")
	}
	if spec.StartRow > spec.RowsPerPass+1 {
		return perrors.New(perrors.CodeInvalidStagger,
			"stagger start row %d exceeds rowsPerPass+1 (%d); stagger must repeat uniformly",
			spec.StartRow, spec.RowsPerPass+1)
	}
	if mode.Kind == models.GroupingCombined && mode.RowsPerPlot*2 > spec.RowsPerPass {
		return perrors.New(perrors.CodeInvalidStagger,
			"combined plots of %d rows cannot be staggered with %d rows per pass; use multirowind",
			mode.RowsPerPlot, spec.RowsPerPass)
	}
	return nil
}

// IsStaggered reports whether the plot at the given original (pre-renumber)
// row falls in a shifted planter pass.
func IsStaggered(originalRow int, spec models.StaggerSpec) bool {
	o, s, p := float64(originalRow), float64(spec.StartRow), float64(spec.RowsPerPass)
	parity := math.Mod(math.Ceil((math.Floor(o-s+1)+p)/p), 2)
	return parity == 0
}

// ApplyStagger returns a copy of rects where every staggered rectangle's
// range-axis coordinates are shifted by +offset meters. The shift happens
// before buffering and rotation, so the rotated output is exactly the
// rotation of a +offset range-axis displacement about the A point.
func ApplyStagger(rects []models.LocalRectangle, spec models.StaggerSpec, offset float64) []models.LocalRectangle {
	out := make([]models.LocalRectangle, len(rects))
	for i, rect := range rects {
		if IsStaggered(rect.OriginalRow, spec) {
			rect.BottomLeft.Range += offset
			rect.BottomRight.Range += offset
			rect.TopRight.Range += offset
			rect.TopLeft.Range += offset
		}
		out[i] = rect
	}
	return out
}

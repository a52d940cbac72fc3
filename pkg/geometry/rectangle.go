// Package geometry computes plot rectangles in local field meters and maps
// them to real-world coordinates via an AB orientation line.
package geometry

import (
	"github.com/fieldtrial/plotshape/pkg/models"
)

// BuildRectangles computes the unbuffered local-space rectangle for every
// record. Spacings are in meters; the local origin sits at the bottom-left
// corner of grid cell (1,1).
func BuildRectangles(records []models.PlotRecord, rangeSpacing, rowSpacing float64) []models.LocalRectangle {
	rects := make([]models.LocalRectangle, len(records))
	for i, rec := range records {
		r, c := float64(rec.Range), float64(rec.Row)
		rects[i] = models.LocalRectangle{
			BottomLeft:  models.LocalPoint{Range: (r - 1) * rangeSpacing, Row: (c - 1) * rowSpacing},
			BottomRight: models.LocalPoint{Range: (r - 1) * rangeSpacing, Row: c * rowSpacing},
			TopRight:    models.LocalPoint{Range: r * rangeSpacing, Row: c * rowSpacing},
			TopLeft:     models.LocalPoint{Range: r * rangeSpacing, Row: (c - 1) * rowSpacing},
			Plot:        rec.Plot,
			Label:       rec.Label,
			OriginalRow: rec.OriginalRow,
		}
	}
	return rects
}

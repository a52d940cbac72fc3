package layout

import (
	"sort"

	"github.com/fieldtrial/plotshape/pkg/models"
)

// SerpentineOrder reorders the grid into the physical boustrophedon path:
// ranges ascending, rows ascending within odd ranges and descending within
// even ones. Only the record order changes; geometry is untouched.
func SerpentineOrder(grid models.LayoutGrid) models.LayoutGrid {
	ordered := make([]models.PlotRecord, 0, len(grid.Records))
	for r := 1; r <= grid.NRange; r++ {
		var pass []models.PlotRecord
		for _, rec := range grid.Records {
			if rec.Range == r {
				pass = append(pass, rec)
			}
		}
		sort.SliceStable(pass, func(a, b int) bool {
			if r%2 == 0 {
				return pass[a].Row > pass[b].Row
			}
			return pass[a].Row < pass[b].Row
		})
		ordered = append(ordered, pass...)
	}
	out := grid
	out.Records = ordered
	return out
}

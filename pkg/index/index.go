// Package index provides an R-Tree lookup over generated plot polygons,
// answering "which plot is this GPS fix in" during field operations.
package index

import (
	"sync"
	"sync/atomic"

	"github.com/dhconnelly/rtreego"

	"github.com/fieldtrial/plotshape/pkg/models"
)

const (
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

// spatialPlot wraps a polygon to implement rtreego.Spatial.
type spatialPlot struct {
	models.PolygonRecord
	rect *rtreego.Rect
}

func (sp *spatialPlot) Bounds() *rtreego.Rect {
	return sp.rect
}

// PlotIndex is a thread-safe R-Tree over plot polygons. The tree stores
// bounding rectangles; point queries refine hits with an exact
// point-in-polygon test.
type PlotIndex struct {
	mu        sync.RWMutex
	tree      *rtreego.Rtree
	itemCount atomic.Int64
}

// NewPlotIndex creates an empty index.
func NewPlotIndex() *PlotIndex {
	return &PlotIndex{
		tree: rtreego.NewTree(dimensions, minChildren, maxChildren),
	}
}

// IndexPolygons inserts the polygons into the index.
func (x *PlotIndex) IndexPolygons(polygons []models.PolygonRecord) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, p := range polygons {
		rect, err := boundsRect(p)
		if err != nil {
			return err
		}
		x.tree.Insert(&spatialPlot{PolygonRecord: p, rect: rect})
		x.itemCount.Add(1)
	}
	return nil
}

// Locate returns the plots whose polygon contains the given point. With a
// sane layout at most one unbuffered and one buffered plot match.
func (x *PlotIndex) Locate(pt models.GeoPoint) []models.PolygonRecord {
	x.mu.RLock()
	defer x.mu.RUnlock()

	probe, err := rtreego.NewRect(rtreego.Point{pt.Easting, pt.Northing}, []float64{1e-9, 1e-9})
	if err != nil {
		return nil
	}

	var hits []models.PolygonRecord
	for _, result := range x.tree.SearchIntersect(probe) {
		sp, ok := result.(*spatialPlot)
		if !ok {
			continue
		}
		if sp.Contains(pt) {
			hits = append(hits, sp.PolygonRecord)
		}
	}
	return hits
}

// QueryBox returns the plots whose bounding box intersects the given
// easting/northing envelope.
func (x *PlotIndex) QueryBox(minE, minN, maxE, maxN float64) ([]models.PolygonRecord, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	bounds, err := rtreego.NewRect(
		rtreego.Point{minE, minN},
		[]float64{maxE - minE, maxN - minN},
	)
	if err != nil {
		return nil, err
	}

	var results []models.PolygonRecord
	for _, result := range x.tree.SearchIntersect(bounds) {
		sp, ok := result.(*spatialPlot)
		if !ok {
			continue
		}
		results = append(results, sp.PolygonRecord)
	}
	return results, nil
}

// All returns every indexed polygon. rtreego has no iterator, so this
// searches a rectangle covering any plausible projected coordinate.
func (x *PlotIndex) All() []models.PolygonRecord {
	x.mu.RLock()
	defer x.mu.RUnlock()

	everything, err := rtreego.NewRect(
		rtreego.Point{-1e12, -1e12},
		[]float64{2e12, 2e12},
	)
	if err != nil {
		return nil
	}

	var results []models.PolygonRecord
	for _, result := range x.tree.SearchIntersect(everything) {
		sp, ok := result.(*spatialPlot)
		if !ok {
			continue
		}
		results = append(results, sp.PolygonRecord)
	}
	return results
}

// Count returns the number of indexed polygons.
func (x *PlotIndex) Count() int64 {
	return x.itemCount.Load()
}

// Clear removes all polygons from the index.
func (x *PlotIndex) Clear() {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.tree = rtreego.NewTree(dimensions, minChildren, maxChildren)
	x.itemCount.Store(0)
}

func boundsRect(p models.PolygonRecord) (*rtreego.Rect, error) {
	minE, minN, maxE, maxN := p.Bounds()
	return rtreego.NewRect(
		rtreego.Point{minE, minN},
		[]float64{maxE - minE, maxN - minN},
	)
}

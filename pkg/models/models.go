// Package models defines the data model shared by the plotshape pipeline
// stages and its exporters.
package models

import (
	"github.com/fieldtrial/plotshape/pkg/perrors"
)

// GeoPoint is a real-world projected coordinate in meters (e.g. UTM).
type GeoPoint struct {
	Easting  float64 `json:"easting"`
	Northing float64 `json:"northing"`
}

// LocalPoint is a pre-rotation coordinate in local field meters.
// Range is the range-axis component, Row the row-axis component, both
// measured from an arbitrary local origin at the first plot's corner.
type LocalPoint struct {
	Range float64 `json:"range"`
	Row   float64 `json:"row"`
}

// Design is the raw experimental-design table: parallel columns of plot
// number, range index, row index and label, one entry per input record.
type Design struct {
	Plot  []float64
	Range []float64
	Row   []float64
	Label []string
}

// Len returns the number of records in the design.
func (d Design) Len() int { return len(d.Plot) }

// Validate checks that all required columns are present and equally long.
func (d Design) Validate() error {
	if len(d.Plot) == 0 || len(d.Range) == 0 || len(d.Row) == 0 || len(d.Label) == 0 {
		return perrors.New(perrors.CodeMissingColumns,
			"design table requires Plot, Range, Row and Label columns")
	}
	n := len(d.Plot)
	if len(d.Range) != n || len(d.Row) != n || len(d.Label) != n {
		return perrors.New(perrors.CodeInvalidInput,
			"design table columns have mismatched lengths")
	}
	return nil
}

// PlotRecord is one normalized design entry. Range and Row are local
// 1-based grid indices. OriginalRow keeps the normalized row index as it
// was before any grouping renumber, for stagger lookup.
type PlotRecord struct {
	Plot        float64
	Range       int
	Row         int
	Label       string
	OriginalRow int
}

// LayoutGrid is an ordered collection of plot records plus derived counts.
// NPlot equaling NRange*NRow is expected but not required; the mismatch is
// reported as a warning, not an error.
type LayoutGrid struct {
	Records []PlotRecord
	NRange  int
	NRow    int
	NPlot   int
}

// StaggerSpec describes a planter-induced positional offset applied to
// alternating row passes. Offset is in the run's input unit.
type StaggerSpec struct {
	StartRow    int
	RowsPerPass int
	Offset      float64
}

// GroupingKind enumerates the row-grouping modes.
type GroupingKind int

const (
	// GroupingSingle passes rows through unchanged.
	GroupingSingle GroupingKind = iota
	// GroupingCombined collapses each run of RowsPerPlot adjacent rows
	// into one plot-wide polygon.
	GroupingCombined
	// GroupingIndividual keeps multi-row plots as separate polygons with
	// suffixed labels.
	GroupingIndividual
	// GroupingSubsetted keeps only the interior rows of each plot,
	// with suffixed labels.
	GroupingSubsetted
)

func (k GroupingKind) String() string {
	switch k {
	case GroupingSingle:
		return "single"
	case GroupingCombined:
		return "combined"
	case GroupingIndividual:
		return "individual"
	case GroupingSubsetted:
		return "subsetted"
	}
	return "unknown"
}

// GroupingMode is the validated row-grouping selection. Construct it with
// NewGroupingMode; the constructor is the single place where the
// (nrowplot, multirowind, plotsubset) combinations are checked, so an
// illegal combination is unrepresentable downstream.
type GroupingMode struct {
	Kind        GroupingKind
	RowsPerPlot int
	Subset      int
}

// NewGroupingMode maps the raw parameter triple onto a grouping mode.
func NewGroupingMode(nrowplot int, multirowind bool, plotsubset int) (GroupingMode, error) {
	if nrowplot < 1 {
		return GroupingMode{}, perrors.New(perrors.CodeInvalidGrouping,
			"nrowplot must be at least 1, got %d", nrowplot)
	}
	if plotsubset < 0 {
		return GroupingMode{}, perrors.New(perrors.CodeInvalidSubset,
			"plotsubset must not be negative, got %d", plotsubset)
	}
	if plotsubset > 0 {
		if multirowind {
			return GroupingMode{}, perrors.New(perrors.CodeInvalidGrouping,
				"multirowind and plotsubset select conflicting modes; choose one")
		}
		if nrowplot == 1 {
			return GroupingMode{}, perrors.New(perrors.CodeInvalidSubset,
				"cannot subset a single-row plot (nrowplot=1)")
		}
		if nrowplot < 3 {
			return GroupingMode{}, perrors.New(perrors.CodeInvalidSubset,
				"cannot subset without interior rows (nrowplot=%d < 3)", nrowplot)
		}
		if nrowplot == 2*plotsubset {
			return GroupingMode{}, perrors.New(perrors.CodeInvalidSubset,
				"nrowplot == 2*plotsubset removes every row; no polygons would be created")
		}
		return GroupingMode{Kind: GroupingSubsetted, RowsPerPlot: nrowplot, Subset: plotsubset}, nil
	}
	if multirowind {
		if nrowplot == 1 {
			return GroupingMode{}, perrors.New(perrors.CodeInvalidGrouping,
				"multirowind requires nrowplot > 1")
		}
		return GroupingMode{Kind: GroupingIndividual, RowsPerPlot: nrowplot}, nil
	}
	if nrowplot > 1 {
		return GroupingMode{Kind: GroupingCombined, RowsPerPlot: nrowplot}, nil
	}
	return GroupingMode{Kind: GroupingSingle, RowsPerPlot: 1}, nil
}

// LocalRectangle is an unrotated plot rectangle in local field meters.
// Corners are named from the perspective of the range axis pointing up.
type LocalRectangle struct {
	BottomLeft  LocalPoint
	BottomRight LocalPoint
	TopRight    LocalPoint
	TopLeft     LocalPoint

	Plot        float64
	Label       string
	OriginalRow int
}

// Corners returns the four corners in ring order.
func (r LocalRectangle) Corners() [4]LocalPoint {
	return [4]LocalPoint{r.BottomLeft, r.BottomRight, r.TopRight, r.TopLeft}
}

// PolygonRecord is a finished plot boundary in real-world coordinates:
// a closed ring of five points (four corners plus the repeated first).
type PolygonRecord struct {
	Label    string      `json:"label"`
	Ring     [5]GeoPoint `json:"ring"`
	Buffered bool        `json:"buffered"`
}

// Centroid returns the mean of the four distinct ring corners.
func (p PolygonRecord) Centroid() GeoPoint {
	var e, n float64
	for i := 0; i < 4; i++ {
		e += p.Ring[i].Easting
		n += p.Ring[i].Northing
	}
	return GeoPoint{Easting: e / 4, Northing: n / 4}
}

// Contains reports whether the point lies inside the polygon ring,
// using the even-odd crossing rule. Points on a crossing edge count as
// inside.
func (p PolygonRecord) Contains(pt GeoPoint) bool {
	inside := false
	for i, j := 0, 3; i < 4; j, i = i, i+1 {
		a, b := p.Ring[i], p.Ring[j]
		if (a.Northing > pt.Northing) != (b.Northing > pt.Northing) {
			cross := (b.Easting-a.Easting)*(pt.Northing-a.Northing)/(b.Northing-a.Northing) + a.Easting
			if pt.Easting < cross {
				inside = !inside
			} else if pt.Easting == cross {
				return true
			}
		}
	}
	return inside
}

// Bounds returns the axis-aligned bounding box of the ring as
// (minEasting, minNorthing, maxEasting, maxNorthing).
func (p PolygonRecord) Bounds() (minE, minN, maxE, maxN float64) {
	minE, maxE = p.Ring[0].Easting, p.Ring[0].Easting
	minN, maxN = p.Ring[0].Northing, p.Ring[0].Northing
	for i := 1; i < 4; i++ {
		if p.Ring[i].Easting < minE {
			minE = p.Ring[i].Easting
		}
		if p.Ring[i].Easting > maxE {
			maxE = p.Ring[i].Easting
		}
		if p.Ring[i].Northing < minN {
			minN = p.Ring[i].Northing
		}
		if p.Ring[i].Northing > maxN {
			maxN = p.Ring[i].Northing
		}
	}
	return minE, minN, maxE, maxN
}

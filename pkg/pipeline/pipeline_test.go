package pipeline

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldtrial/plotshape/pkg/models"
	"github.com/fieldtrial/plotshape/pkg/perrors"
)

// Reference AB line used across tests. B lies up the first plot row
// roughly 40 degrees east of north.
var (
	pointA = models.GeoPoint{Easting: 746239.817, Northing: 3382052.264}
	pointB = models.GeoPoint{Easting: 746334.224, Northing: 3382152.870}
)

func testDesign(nRange, nRow int) models.Design {
	var d models.Design
	plot := 0
	for r := 1; r <= nRange; r++ {
		for c := 1; c <= nRow; c++ {
			plot++
			d.Plot = append(d.Plot, float64(plot))
			d.Range = append(d.Range, float64(r))
			d.Row = append(d.Row, float64(c))
			d.Label = append(d.Label, fmt.Sprintf("BC%03d", plot))
		}
	}
	return d
}

func dist(a, b models.GeoPoint) float64 {
	return math.Hypot(a.Easting-b.Easting, a.Northing-b.Northing)
}

func TestBuildEndToEnd(t *testing.T) {
	res, err := Build(testDesign(2, 2), Params{
		A: pointA, B: pointB,
		UTMZone: "14",
		Output:  "trial",
	})
	require.NoError(t, err)

	assert.Len(t, res.Plots, 4)
	assert.Len(t, res.Buffered, 4)
	assert.Empty(t, res.Warnings)

	// The first plot's bottom-left corner lands exactly on A: its local
	// coordinates are (0, 0), so the rotation contributes nothing.
	assert.Equal(t, pointA, res.Plots[0].Ring[0])
	assert.Equal(t, res.Plots[0].Ring[0], res.Plots[0].Ring[4])

	// Serpentine order: range 1 left to right, range 2 right to left.
	assert.Equal(t, []string{"BC001", "BC002", "BC004", "BC003"},
		[]string{res.Plots[0].Label, res.Plots[1].Label, res.Plots[2].Label, res.Plots[3].Label})

	assert.Equal(t,
		"+proj=utm +zone=14 +datum=NAD83 +units=m +no_defs +ellps=GRS80",
		res.CRS)
}

func TestBuildFeetConversion(t *testing.T) {
	res, err := Build(testDesign(1, 1), Params{
		A: pointA, B: pointB,
		UTMZone: "14",
	})
	require.NoError(t, err)

	ring := res.Plots[0].Ring
	assert.InDelta(t, 2.5/FeetPerMeter, dist(ring[0], ring[1]), 1e-9)
	assert.InDelta(t, 25.0/FeetPerMeter, dist(ring[1], ring[2]), 1e-9)
}

func TestBuildMeterUnit(t *testing.T) {
	res, err := Build(testDesign(1, 1), Params{
		A: pointA, B: pointB,
		UTMZone:      "14",
		Unit:         UnitMeter,
		RowSpacing:   0.76,
		RangeSpacing: 7.6,
		RowBuffer:    Float(0.03),
		RangeBuffer:  Float(0.6),
	})
	require.NoError(t, err)

	ring := res.Plots[0].Ring
	assert.InDelta(t, 0.76, dist(ring[0], ring[1]), 1e-9)
	assert.InDelta(t, 7.6, dist(ring[1], ring[2]), 1e-9)
}

func TestBuildCombinedWidensPlots(t *testing.T) {
	res, err := Build(testDesign(1, 4), Params{
		A: pointA, B: pointB,
		UTMZone:  "14",
		NRowPlot: 2,
	})
	require.NoError(t, err)

	// Four rows combined two at a time leaves two double-width polygons.
	require.Len(t, res.Plots, 2)
	ring := res.Plots[0].Ring
	assert.InDelta(t, 2*2.5/FeetPerMeter, dist(ring[0], ring[1]), 1e-9)
}

func TestBuildBufferedConcentric(t *testing.T) {
	res, err := Build(testDesign(2, 2), Params{
		A: pointA, B: pointB,
		UTMZone: "14",
	})
	require.NoError(t, err)

	for i := range res.Plots {
		assert.True(t, res.Buffered[i].Buffered)
		assert.False(t, res.Plots[i].Buffered)
		c1 := res.Plots[i].Centroid()
		c2 := res.Buffered[i].Centroid()
		assert.InDelta(t, c1.Easting, c2.Easting, 1e-9)
		assert.InDelta(t, c1.Northing, c2.Northing, 1e-9)
	}
}

func TestBuildZeroBuffers(t *testing.T) {
	res, err := Build(testDesign(2, 2), Params{
		A: pointA, B: pointB,
		UTMZone:     "14",
		RowBuffer:   Float(0),
		RangeBuffer: Float(0),
	})
	require.NoError(t, err)

	// An explicit zero is honored, not swapped for the defaults: the
	// buffered rings coincide with the plot rings.
	for i := range res.Plots {
		assert.Equal(t, res.Plots[i].Ring, res.Buffered[i].Ring)
		assert.True(t, res.Buffered[i].Buffered)
	}
}

func TestBuildStaggerStartRowOne(t *testing.T) {
	_, err := Build(testDesign(2, 4), Params{
		A: pointA, B: pointB,
		UTMZone: "14",
		Stagger: &models.StaggerSpec{StartRow: 1, RowsPerPass: 2, Offset: 0.5},
	})
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.CodeInvalidStagger))
}

func TestBuildSubsetOfTwoRowPlot(t *testing.T) {
	_, err := Build(testDesign(2, 4), Params{
		A: pointA, B: pointB,
		UTMZone:    "14",
		NRowPlot:   2,
		PlotSubset: 1,
	})
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.CodeInvalidSubset))
}

func TestBuildInvalidUnit(t *testing.T) {
	_, err := Build(testDesign(1, 1), Params{
		A: pointA, B: pointB,
		UTMZone: "14",
		Unit:    "furlongs",
	})
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.CodeInvalidUnit))
}

func TestBuildInvalidHemisphere(t *testing.T) {
	_, err := Build(testDesign(1, 1), Params{
		A: pointA, B: pointB,
		UTMZone:    "14",
		Hemisphere: "X",
	})
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.CodeInvalidInput))
}

func TestBuildBufferSwallowsPlot(t *testing.T) {
	_, err := Build(testDesign(1, 1), Params{
		A: pointA, B: pointB,
		UTMZone:   "14",
		RowBuffer: Float(1.5), // 2*1.5 > 2.5ft row spacing
	})
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.CodeInvalidBuffer))
}

func TestBuildCoincidentABPoints(t *testing.T) {
	_, err := Build(testDesign(1, 1), Params{
		A: pointA, B: pointA,
		UTMZone: "14",
	})
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.CodeInvalidABLine))
}

func TestBuildNoUTMZoneWarns(t *testing.T) {
	res, err := Build(testDesign(1, 1), Params{A: pointA, B: pointB})
	require.NoError(t, err)
	assert.Empty(t, res.CRS)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, perrors.CodeNoCRS, res.Warnings[0].Code)
}

func TestBuildPlotCountMismatchWarns(t *testing.T) {
	d := testDesign(2, 2)
	// Drop one record so NPlot != NRange*NRow.
	d.Plot = d.Plot[:3]
	d.Range = d.Range[:3]
	d.Row = d.Row[:3]
	d.Label = d.Label[:3]

	res, err := Build(d, Params{A: pointA, B: pointB, UTMZone: "14"})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, perrors.CodePlotCountMismatch, res.Warnings[0].Code)
}

func BenchmarkBuild(b *testing.B) {
	design := testDesign(20, 40)
	params := Params{A: pointA, B: pointB, UTMZone: "14"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(design, params); err != nil {
			b.Fatal(err)
		}
	}
}

func TestCRSStringSouthern(t *testing.T) {
	assert.Equal(t,
		"+proj=utm +zone=55 +south +datum=NAD83 +units=m +no_defs +ellps=GRS80",
		CRSString("55", "S"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "cs20_trial", Params{Field: "cs20", Output: "trial"}.BaseName())
	assert.Equal(t, "trial", Params{Output: "trial"}.BaseName())
}

// Package pipeline assembles the full design-to-polygons computation.
//
// Build runs the stages in a fixed order (normalize, group, serpentine,
// rectangles, stagger, buffer, rotate) over an immutable snapshot of the
// input. Every invocation owns its slices; nothing is retained between
// calls, and all validation happens before any geometry is built.
package pipeline

import (
	"fmt"

	"github.com/fieldtrial/plotshape/pkg/geometry"
	"github.com/fieldtrial/plotshape/pkg/layout"
	"github.com/fieldtrial/plotshape/pkg/models"
	"github.com/fieldtrial/plotshape/pkg/perrors"
)

// FeetPerMeter is the conversion factor used for "feet" inputs.
const FeetPerMeter = 3.281

// Units accepted for spacings, buffers and stagger offsets.
const (
	UnitFeet  = "feet"
	UnitMeter = "meter"
)

// Default parameter values: 30-inch rows, 25-foot ranges, the buffers the
// field crews actually leave.
const (
	DefaultRowSpacing   = 2.5
	DefaultRowBuffer    = 0.1
	DefaultRangeSpacing = 25.0
	DefaultRangeBuffer  = 2.0
)

// Params carries every run parameter. Zero values for spacings, unit and
// hemisphere are filled with defaults by Build. The buffers are pointers so
// an explicit zero (no buffer) stays distinct from unset: nil takes the
// default, Float(0) disables the buffer.
type Params struct {
	// A is the bottom-left corner of the first plot; B a point up the
	// same plot row. Projected coordinates, meters.
	A models.GeoPoint
	B models.GeoPoint

	UTMZone    string // "" means no CRS (warned)
	Hemisphere string // "N" or "S"

	NRowPlot    int
	MultiRowInd bool
	PlotSubset  int

	RowSpacing   float64
	RowBuffer    *float64
	RangeSpacing float64
	RangeBuffer  *float64
	Unit         string

	Stagger *models.StaggerSpec

	Field  string // optional field-trial prefix for output names
	Output string // output name stem
}

// Float returns a pointer to v, for the optional buffer parameters.
func Float(v float64) *float64 { return &v }

// BaseName is the output file stem: "{field}_{output}" or "{output}".
func (p Params) BaseName() string {
	if p.Field != "" {
		return p.Field + "_" + p.Output
	}
	return p.Output
}

// Result is everything one invocation produces. The polygon slices are
// ordered serpentine-wise and handed off to exporters; the local-space
// rectangles feed the square (unrotated) preview.
type Result struct {
	Grid models.LayoutGrid
	Mode models.GroupingMode
	Line geometry.ABLine

	Squares         []models.LocalRectangle
	SquaresBuffered []models.LocalRectangle

	Plots    []models.PolygonRecord
	Buffered []models.PolygonRecord

	CRS      string
	Warnings []perrors.Warning
}

// Build validates the parameters, then transforms the design table into
// rotated plot polygons. It is pure: no I/O, no retained state.
func Build(design models.Design, params Params) (*Result, error) {
	applyDefaults(&params)

	if params.Unit != UnitFeet && params.Unit != UnitMeter {
		return nil, perrors.New(perrors.CodeInvalidUnit,
			"unit must be %q or %q, got %q", UnitFeet, UnitMeter, params.Unit)
	}
	if params.Hemisphere != "N" && params.Hemisphere != "S" {
		return nil, perrors.New(perrors.CodeInvalidInput,
			"hemisphere must be N or S, got %q", params.Hemisphere)
	}

	mode, err := models.NewGroupingMode(params.NRowPlot, params.MultiRowInd, params.PlotSubset)
	if err != nil {
		return nil, err
	}
	if params.Stagger != nil {
		if err := geometry.ValidateStagger(*params.Stagger, mode); err != nil {
			return nil, err
		}
	}

	toMeters := func(v float64) float64 {
		if params.Unit == UnitFeet {
			return v / FeetPerMeter
		}
		return v
	}
	rangeSpacing := toMeters(params.RangeSpacing)
	rangeBuffer := toMeters(*params.RangeBuffer)
	rowBuffer := toMeters(*params.RowBuffer)
	rowSpacing := toMeters(params.RowSpacing)
	if mode.Kind == models.GroupingCombined {
		rowSpacing = toMeters(float64(mode.RowsPerPlot) * params.RowSpacing)
	}

	if err := geometry.ValidateBuffers(rangeBuffer, rowBuffer, rangeSpacing, rowSpacing); err != nil {
		return nil, err
	}

	line, err := geometry.NewABLine(params.A, params.B)
	if err != nil {
		return nil, err
	}

	grid, warnings, err := layout.Normalize(design)
	if err != nil {
		return nil, err
	}
	grid = layout.SerpentineOrder(layout.ApplyGrouping(grid, mode))

	squares := geometry.BuildRectangles(grid.Records, rangeSpacing, rowSpacing)
	if params.Stagger != nil {
		squares = geometry.ApplyStagger(squares, *params.Stagger, toMeters(params.Stagger.Offset))
	}
	buffered := geometry.InsetAll(squares, rangeBuffer, rowBuffer)

	result := &Result{
		Grid:            grid,
		Mode:            mode,
		Line:            line,
		Squares:         squares,
		SquaresBuffered: buffered,
		Plots:           line.TransformAll(squares, false),
		Buffered:        line.TransformAll(buffered, true),
		Warnings:        warnings,
	}

	if params.UTMZone == "" {
		result.Warnings = append(result.Warnings, perrors.Warnf(perrors.CodeNoCRS,
			"no UTM zone given; output has no coordinate reference system and may not load cleanly elsewhere"))
	} else {
		result.CRS = CRSString(params.UTMZone, params.Hemisphere)
	}
	return result, nil
}

// CRSString builds the proj4 descriptor for a UTM zone in the NAD83 datum.
func CRSString(zone, hemisphere string) string {
	south := ""
	if hemisphere == "S" {
		south = " +south"
	}
	return fmt.Sprintf("+proj=utm +zone=%s%s +datum=NAD83 +units=m +no_defs +ellps=GRS80", zone, south)
}

func applyDefaults(p *Params) {
	if p.Unit == "" {
		p.Unit = UnitFeet
	}
	if p.Hemisphere == "" {
		p.Hemisphere = "N"
	}
	if p.RowSpacing == 0 {
		p.RowSpacing = DefaultRowSpacing
	}
	if p.RangeSpacing == 0 {
		p.RangeSpacing = DefaultRangeSpacing
	}
	if p.RowBuffer == nil {
		p.RowBuffer = Float(DefaultRowBuffer)
	}
	if p.RangeBuffer == nil {
		p.RangeBuffer = Float(DefaultRangeBuffer)
	}
	if p.NRowPlot == 0 {
		p.NRowPlot = 1
	}
}

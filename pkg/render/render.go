// Package render draws review figures of a generated layout: the square
// (local, unrotated) plots and the rotated real-world plots. Field staff
// check these before the shapefile ever reaches the tractor.
package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fieldtrial/plotshape/pkg/models"
)

var (
	plotOutline   = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	bufferOutline = color.RGBA{R: 34, G: 139, B: 34, A: 255}
)

// SquarePath returns the square-preview file name for a run's base name.
func SquarePath(base string) string { return base + "_Square_plots.pdf" }

// RotatedPath returns the rotated-preview file name for a run's base name.
func RotatedPath(base string) string { return base + "_Rotated_plots.pdf" }

// SquarePlots renders the unrotated layout with buffered outlines inside
// the plot outlines and a label at each plot centroid.
func SquarePlots(path string, squares, buffered []models.LocalRectangle) error {
	p := plot.New()
	p.Title.Text = "Square plots"
	p.X.Label.Text = "Row axis (m)"
	p.Y.Label.Text = "Range axis (m)"

	for _, rect := range squares {
		if err := addRing(p, rectRing(rect), plotOutline); err != nil {
			return err
		}
	}
	for _, rect := range buffered {
		if err := addRing(p, rectRing(rect), bufferOutline); err != nil {
			return err
		}
	}
	if err := addRectLabels(p, squares); err != nil {
		return err
	}

	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// RotatedPlots renders the rotated polygons in projected coordinates.
func RotatedPlots(path string, plots, buffered []models.PolygonRecord) error {
	p := plot.New()
	p.Title.Text = "Rotated plots"
	p.X.Label.Text = "Easting (m)"
	p.Y.Label.Text = "Northing (m)"

	for _, poly := range plots {
		if err := addRing(p, polyRing(poly), plotOutline); err != nil {
			return err
		}
	}
	for _, poly := range buffered {
		if err := addRing(p, polyRing(poly), bufferOutline); err != nil {
			return err
		}
	}
	if err := addPolyLabels(p, plots); err != nil {
		return err
	}

	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func addRing(p *plot.Plot, ring plotter.XYs, outline color.Color) error {
	line, err := plotter.NewLine(ring)
	if err != nil {
		return fmt.Errorf("building outline: %w", err)
	}
	line.Color = outline
	line.Width = vg.Points(1)
	p.Add(line)
	return nil
}

func addRectLabels(p *plot.Plot, rects []models.LocalRectangle) error {
	xys := make(plotter.XYs, len(rects))
	texts := make([]string, len(rects))
	for i, rect := range rects {
		var x, y float64
		for _, c := range rect.Corners() {
			x += c.Row
			y += c.Range
		}
		xys[i] = plotter.XY{X: x / 4, Y: y / 4}
		texts[i] = rect.Label
	}
	return addLabels(p, xys, texts)
}

func addPolyLabels(p *plot.Plot, polys []models.PolygonRecord) error {
	xys := make(plotter.XYs, len(polys))
	texts := make([]string, len(polys))
	for i, poly := range polys {
		c := poly.Centroid()
		xys[i] = plotter.XY{X: c.Easting, Y: c.Northing}
		texts[i] = poly.Label
	}
	return addLabels(p, xys, texts)
}

func addLabels(p *plot.Plot, xys plotter.XYs, texts []string) error {
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return fmt.Errorf("building labels: %w", err)
	}
	p.Add(labels)
	return nil
}

func rectRing(rect models.LocalRectangle) plotter.XYs {
	corners := rect.Corners()
	ring := make(plotter.XYs, 0, 5)
	for _, c := range corners {
		ring = append(ring, plotter.XY{X: c.Row, Y: c.Range})
	}
	return append(ring, plotter.XY{X: corners[0].Row, Y: corners[0].Range})
}

func polyRing(poly models.PolygonRecord) plotter.XYs {
	ring := make(plotter.XYs, len(poly.Ring))
	for i, pt := range poly.Ring {
		ring[i] = plotter.XY{X: pt.Easting, Y: pt.Northing}
	}
	return ring
}

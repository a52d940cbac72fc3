package main

import (
	"fmt"
	"log"

	"github.com/fieldtrial/plotshape/pkg/index"
	"github.com/fieldtrial/plotshape/pkg/models"
	"github.com/fieldtrial/plotshape/pkg/pipeline"
)

func main() {
	// A small 3-range x 4-row breeding trial, two rows per plot.
	design := models.Design{
		Plot:  []float64{101, 101, 102, 102, 103, 103, 104, 104, 105, 105, 106, 106},
		Range: []float64{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3},
		Row:   []float64{1, 2, 3, 4, 1, 2, 3, 4, 1, 2, 3, 4},
		Label: []string{
			"ENTRY_A", "ENTRY_A", "ENTRY_B", "ENTRY_B",
			"ENTRY_C", "ENTRY_C", "CHECK", "CHECK",
			"ENTRY_D", "ENTRY_D", "ENTRY_E", "ENTRY_E",
		},
	}

	// AB points surveyed with RTK GPS: A at the first plot's bottom-left
	// corner, B up the same row pass.
	res, err := pipeline.Build(design, pipeline.Params{
		A:        models.GeoPoint{Easting: 746239.817, Northing: 3382052.264},
		B:        models.GeoPoint{Easting: 746334.224, Northing: 3382152.870},
		UTMZone:  "14",
		NRowPlot: 2,
		Output:   "example",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Built %d plots (rotation %.4f rad)\n", len(res.Plots), res.Line.Theta)
	for _, w := range res.Warnings {
		fmt.Println("warning:", w)
	}
	fmt.Println("CRS:", res.CRS)

	// Example 1: corner coordinates of the first plot in field order.
	fmt.Println("\n=== First Plot Corners ===")
	first := res.Plots[0]
	fmt.Printf("Plot %s:\n", first.Label)
	for i, pt := range first.Ring[:4] {
		fmt.Printf("  corner %d: %.3f, %.3f\n", i, pt.Easting, pt.Northing)
	}

	// Example 2: which plot is a GPS fix in?
	fmt.Println("\n=== Locate a GPS Fix ===")
	idx := index.NewPlotIndex()
	if err := idx.IndexPolygons(res.Plots); err != nil {
		log.Fatal(err)
	}

	fix := first.Centroid()
	hits := idx.Locate(fix)
	fmt.Printf("Fix (%.3f, %.3f) is in:\n", fix.Easting, fix.Northing)
	for _, hit := range hits {
		fmt.Printf("  - %s\n", hit.Label)
	}

	// Example 3: plots intersecting a harvester's swath envelope.
	fmt.Println("\n=== Plots Near the A Corner ===")
	minE, minN, _, _ := res.Plots[0].Bounds()
	results, err := idx.QueryBox(minE, minN, minE+10, minN+10)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Found %d plots within 10m:\n", len(results))
	for _, r := range results {
		fmt.Printf("  - %s\n", r.Label)
	}

	// Save and reload the index.
	fmt.Println("\n=== Saving Index ===")
	if err := idx.SaveToFile("example.gob", res.CRS); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Index saved to example.gob")

	newIdx := index.NewPlotIndex()
	crs, err := newIdx.LoadFromFile("example.gob")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Reloaded %d plots (CRS %s)\n", newIdx.Count(), crs)
}

// Package geojson writes plot polygons as a GeoJSON FeatureCollection.
package geojson

import (
	"encoding/json"
	"io"
	"os"

	"github.com/fieldtrial/plotshape/pkg/models"
	"github.com/fieldtrial/plotshape/pkg/perrors"
)

// FeatureCollection is a standard GeoJSON feature collection. The optional
// CRS member carries the proj4 string the coordinates are expressed in.
type FeatureCollection struct {
	Type     string    `json:"type"`
	CRS      string    `json:"crs,omitempty"`
	Features []Feature `json:"features"`
}

// Feature is one plot polygon with its attributes.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// Geometry is a GeoJSON Polygon: one closed ring of [easting, northing]
// positions.
type Geometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// Collection assembles a FeatureCollection from polygon records.
func Collection(polygons []models.PolygonRecord, crs string) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		CRS:      crs,
		Features: make([]Feature, 0, len(polygons)),
	}
	for _, p := range polygons {
		ring := make([][2]float64, len(p.Ring))
		for i, pt := range p.Ring {
			ring[i] = [2]float64{pt.Easting, pt.Northing}
		}
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Properties: map[string]any{
				"label":    p.Label,
				"buffered": p.Buffered,
			},
			Geometry: Geometry{Type: "Polygon", Coordinates: [][][2]float64{ring}},
		})
	}
	return fc
}

// Write encodes the polygons to w as indented GeoJSON.
func Write(w io.Writer, polygons []models.PolygonRecord, crs string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Collection(polygons, crs)); err != nil {
		return perrors.Wrap(perrors.CodeInvalidInput, err, "encoding GeoJSON")
	}
	return nil
}

// WriteFile writes the polygons to a .geojson file at path.
func WriteFile(path string, polygons []models.PolygonRecord, crs string) error {
	f, err := os.Create(path)
	if err != nil {
		return perrors.Wrap(perrors.CodeInvalidInput, err, "creating %s", path)
	}
	defer f.Close()
	return Write(f, polygons, crs)
}

// Package shapefile writes plot polygons as ESRI shapefiles.
package shapefile

import (
	"os"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"

	"github.com/fieldtrial/plotshape/pkg/models"
	"github.com/fieldtrial/plotshape/pkg/perrors"
)

// plotRow is the shapefile record layout: one closed polygon plus the
// attributes carried into the .dbf table.
type plotRow struct {
	geom.Polygon
	Label string
}

// PlotPath returns the main shapefile name for a run's base name.
func PlotPath(base string) string { return base + ".shp" }

// BufferPath returns the buffered shapefile name for a run's base name.
func BufferPath(base string) string { return base + "_buff.shp" }

// Write encodes the polygons into a shapefile at path. A non-empty crs must
// parse as a proj4 string naming a known projection; it is written verbatim
// to the .prj sidecar.
func Write(path string, polygons []models.PolygonRecord, crs string) error {
	if crs != "" {
		sr, err := proj.Parse(crs)
		if err != nil {
			return perrors.Wrap(perrors.CodeInvalidInput, err, "parsing CRS %q", crs)
		}
		// Parse is lazy about projection names; resolving the
		// transformer catches unknown ones.
		if _, _, err := sr.Transformers(); err != nil {
			return perrors.Wrap(perrors.CodeInvalidInput, err, "unsupported CRS %q", crs)
		}
	}

	enc, err := shp.NewEncoder(path, plotRow{})
	if err != nil {
		return perrors.Wrap(perrors.CodeInvalidInput, err, "creating %s", path)
	}
	for _, p := range polygons {
		if err := enc.Encode(plotRow{Polygon: Ring(p), Label: p.Label}); err != nil {
			enc.Close()
			return perrors.Wrap(perrors.CodeInvalidInput, err, "encoding plot %s", p.Label)
		}
	}
	enc.Close()

	if crs != "" {
		prj := strings.TrimSuffix(path, ".shp") + ".prj"
		if err := os.WriteFile(prj, []byte(crs+"\n"), 0644); err != nil {
			return perrors.Wrap(perrors.CodeInvalidInput, err, "writing %s", prj)
		}
	}
	return nil
}

// Ring converts a polygon record into a single-ring geom.Polygon.
func Ring(p models.PolygonRecord) geom.Polygon {
	path := make([]geom.Point, len(p.Ring))
	for i, pt := range p.Ring {
		path[i] = geom.Point{X: pt.Easting, Y: pt.Northing}
	}
	return geom.Polygon{path}
}

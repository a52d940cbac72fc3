package postgis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldtrial/plotshape/pkg/models"
)

func TestWKT(t *testing.T) {
	p := models.PolygonRecord{
		Label: "BC001",
		Ring: [5]models.GeoPoint{
			{Easting: 0, Northing: 0},
			{Easting: 1, Northing: 0},
			{Easting: 1, Northing: 2.5},
			{Easting: 0, Northing: 2.5},
			{Easting: 0, Northing: 0},
		},
	}
	assert.Equal(t, "POLYGON((0 0, 1 0, 1 2.5, 0 2.5, 0 0))", WKT(p))
}

func TestWKTFullPrecision(t *testing.T) {
	p := models.PolygonRecord{
		Ring: [5]models.GeoPoint{
			{Easting: 746239.817, Northing: 3382052.264},
			{Easting: 746239.817, Northing: 3382052.264},
			{Easting: 746239.817, Northing: 3382052.264},
			{Easting: 746239.817, Northing: 3382052.264},
			{Easting: 746239.817, Northing: 3382052.264},
		},
	}
	assert.Contains(t, WKT(p), "746239.817 3382052.264")
}

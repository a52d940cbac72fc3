package geometry

import (
	"math"

	"github.com/fieldtrial/plotshape/pkg/models"
	"github.com/fieldtrial/plotshape/pkg/perrors"
)

// ABLine describes the field orientation from two surveyed points: A at
// the bottom-left corner of the first plot and B up the same row of
// plots. All derived angles are in radians except SrtTheta (degrees).
type ABLine struct {
	A models.GeoPoint
	B models.GeoPoint

	DeltaEasting  float64
	DeltaNorthing float64

	// DirectionTheta is atan(|dN|/|dE|) in [0, pi/2], the original
	// quadrant-relative direction angle.
	DirectionTheta float64

	// Azimuth is atan2(dE, dN) normalized to [0, 2pi): the bearing of
	// B from A measured clockwise from north.
	Azimuth float64

	// Theta is the rotation applied to local coordinates,
	// (2pi - Azimuth) mod 2pi. Equal to the quadrant table in all four
	// open quadrants; on the axes it follows the azimuth form, which is
	// the continuous extension (the quadrant test had a gap there).
	Theta float64

	// SrtTheta is the text-label rotation in degrees, [0, 360).
	SrtTheta float64
}

// NewABLine derives the rotation parameters from two projected points.
// Coincident points are rejected: they define no direction.
func NewABLine(a, b models.GeoPoint) (ABLine, error) {
	dE := b.Easting - a.Easting
	dN := b.Northing - a.Northing
	if dE == 0 && dN == 0 {
		return ABLine{}, perrors.New(perrors.CodeInvalidABLine,
			"A and B coincide; the AB line has no direction")
	}

	direction := math.Pi / 2
	if dE != 0 {
		direction = math.Atan(math.Abs(dN) / math.Abs(dE))
	}

	azimuth := math.Atan2(dE, dN)
	if azimuth < 0 {
		azimuth += 2 * math.Pi
	}
	theta := math.Mod(2*math.Pi-azimuth, 2*math.Pi)

	directionDeg := direction * 180 / math.Pi
	var srt float64
	switch {
	case dN > 0 && dE > 0:
		srt = 90 - directionDeg
	case dN > 0 && dE < 0:
		srt = 270 + directionDeg
	case dN < 0 && dE < 0:
		srt = directionDeg
	default:
		srt = 270 + directionDeg
	}
	srt = math.Mod(srt, 360)

	return ABLine{
		A:              a,
		B:              b,
		DeltaEasting:   dE,
		DeltaNorthing:  dN,
		DirectionTheta: direction,
		Azimuth:        azimuth,
		Theta:          theta,
		SrtTheta:       srt,
	}, nil
}

// Transform rotates a local rectangle about the A point into real-world
// coordinates and closes the ring.
func (l ABLine) Transform(rect models.LocalRectangle, buffered bool) models.PolygonRecord {
	sin, cos := math.Sincos(l.Theta)

	rotate := func(p models.LocalPoint) models.GeoPoint {
		return models.GeoPoint{
			Northing: p.Range*cos + p.Row*sin + l.A.Northing,
			Easting:  p.Row*cos - p.Range*sin + l.A.Easting,
		}
	}

	var ring [5]models.GeoPoint
	for i, corner := range rect.Corners() {
		ring[i] = rotate(corner)
	}
	ring[4] = ring[0]

	return models.PolygonRecord{
		Label:    rect.Label,
		Ring:     ring,
		Buffered: buffered,
	}
}

// TransformAll maps every rectangle, preserving order.
func (l ABLine) TransformAll(rects []models.LocalRectangle, buffered bool) []models.PolygonRecord {
	out := make([]models.PolygonRecord, len(rects))
	for i, rect := range rects {
		out[i] = l.Transform(rect, buffered)
	}
	return out
}

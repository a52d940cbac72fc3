package geometry

import (
	"github.com/fieldtrial/plotshape/pkg/models"
	"github.com/fieldtrial/plotshape/pkg/perrors"
)

// ValidateBuffers rejects buffers that would invert the rectangle. Spacings
// and buffers are in the same unit; rowSpacing must be the effective (post
// grouping) row spacing.
func ValidateBuffers(rangeBuffer, rowBuffer, rangeSpacing, rowSpacing float64) error {
	if rangeBuffer < 0 || rowBuffer < 0 {
		return perrors.New(perrors.CodeInvalidBuffer, "buffers must not be negative")
	}
	if 2*rangeBuffer >= rangeSpacing {
		return perrors.New(perrors.CodeInvalidBuffer,
			"range buffer %.3f is at least half the range spacing %.3f; the buffered ring would invert",
			rangeBuffer, rangeSpacing)
	}
	if 2*rowBuffer >= rowSpacing {
		return perrors.New(perrors.CodeInvalidBuffer,
			"row buffer %.3f is at least half the row spacing %.3f; the buffered ring would invert",
			rowBuffer, rowSpacing)
	}
	return nil
}

// Inset derives the inward-buffered variant of a rectangle. The result is
// nested and concentric with the input.
func Inset(rect models.LocalRectangle, rangeBuffer, rowBuffer float64) models.LocalRectangle {
	rect.BottomLeft.Range += rangeBuffer
	rect.BottomLeft.Row += rowBuffer
	rect.BottomRight.Range += rangeBuffer
	rect.BottomRight.Row -= rowBuffer
	rect.TopRight.Range -= rangeBuffer
	rect.TopRight.Row -= rowBuffer
	rect.TopLeft.Range -= rangeBuffer
	rect.TopLeft.Row += rowBuffer
	return rect
}

// InsetAll applies Inset to every rectangle, returning a fresh slice.
func InsetAll(rects []models.LocalRectangle, rangeBuffer, rowBuffer float64) []models.LocalRectangle {
	out := make([]models.LocalRectangle, len(rects))
	for i, rect := range rects {
		out[i] = Inset(rect, rangeBuffer, rowBuffer)
	}
	return out
}

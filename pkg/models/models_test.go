package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldtrial/plotshape/pkg/perrors"
)

func TestNewGroupingMode(t *testing.T) {
	testCases := []struct {
		name        string
		nrowplot    int
		multirowind bool
		plotsubset  int
		wantKind    GroupingKind
		wantCode    perrors.Code
	}{
		{"single row", 1, false, 0, GroupingSingle, ""},
		{"combined", 2, false, 0, GroupingCombined, ""},
		{"individual", 2, true, 0, GroupingIndividual, ""},
		{"subsetted", 4, false, 1, GroupingSubsetted, ""},
		{"zero nrowplot", 0, false, 0, 0, perrors.CodeInvalidGrouping},
		{"negative subset", 2, false, -1, 0, perrors.CodeInvalidSubset},
		{"multirowind with single row", 1, true, 0, 0, perrors.CodeInvalidGrouping},
		{"subset of single-row plot", 1, false, 1, 0, perrors.CodeInvalidSubset},
		{"subset without interior", 2, false, 1, 0, perrors.CodeInvalidSubset},
		{"subset removes every row", 4, false, 2, 0, perrors.CodeInvalidSubset},
		{"multirowind with subset", 4, true, 1, 0, perrors.CodeInvalidGrouping},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mode, err := NewGroupingMode(tc.nrowplot, tc.multirowind, tc.plotsubset)
			if tc.wantCode != "" {
				require.Error(t, err)
				assert.True(t, perrors.Is(err, tc.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, mode.Kind)
		})
	}
}

func TestDesignValidate(t *testing.T) {
	ok := Design{
		Plot:  []float64{1, 2},
		Range: []float64{1, 1},
		Row:   []float64{1, 2},
		Label: []string{"a", "b"},
	}
	assert.NoError(t, ok.Validate())

	missing := Design{Plot: []float64{1}, Range: []float64{1}, Row: []float64{1}}
	err := missing.Validate()
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.CodeMissingColumns))

	ragged := ok
	ragged.Row = []float64{1}
	err = ragged.Validate()
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.CodeInvalidInput))
}

func square(e, n, side float64) PolygonRecord {
	return PolygonRecord{Ring: [5]GeoPoint{
		{e, n}, {e + side, n}, {e + side, n + side}, {e, n + side}, {e, n},
	}}
}

func TestPolygonContains(t *testing.T) {
	p := square(100, 200, 10)

	assert.True(t, p.Contains(GeoPoint{105, 205}))
	assert.False(t, p.Contains(GeoPoint{115, 205}))
	assert.False(t, p.Contains(GeoPoint{105, 215}))
	assert.False(t, p.Contains(GeoPoint{95, 195}))
}

func TestPolygonBoundsAndCentroid(t *testing.T) {
	p := square(0, 0, 4)

	minE, minN, maxE, maxN := p.Bounds()
	assert.Equal(t, 0.0, minE)
	assert.Equal(t, 0.0, minN)
	assert.Equal(t, 4.0, maxE)
	assert.Equal(t, 4.0, maxN)

	c := p.Centroid()
	assert.InDelta(t, 2.0, c.Easting, 1e-12)
	assert.InDelta(t, 2.0, c.Northing, 1e-12)
}

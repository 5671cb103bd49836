package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack_Empty(t *testing.T) {
	assert.Nil(t, Pack(nil, 298, 298, 3))
	assert.Nil(t, Pack([]float64{1}, 0, 298, 3))
}

func TestPack_SingleLeafFillsArea(t *testing.T) {
	circles := Pack([]float64{1}, 298, 298, 3)
	require.Len(t, circles, 1)

	c := circles[0]
	assert.InDelta(t, 149, c.X, 1e-9)
	assert.InDelta(t, 149, c.Y, 1e-9)
	// padding enlarges the root once more, so the leaf ends slightly inside
	assert.InDelta(t, 149*298.0/304.0, c.R, 1e-9)
	assert.Greater(t, c.R, 0.0)
}

func TestPack_TwoLeavesSideBySide(t *testing.T) {
	circles := Pack([]float64{1, 1}, 298, 298, 3)
	require.Len(t, circles, 2)
	assert.InDelta(t, circles[0].R, circles[1].R, 1e-9)
	assert.InDelta(t, 149, circles[0].Y, 1e-9)
	assert.InDelta(t, 298, circles[0].X+circles[1].X, 1e-9)
	assert.Less(t, circles[0].X, circles[1].X)
}

func testValues(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64((i*7)%13 + 1)
	}
	return values
}

func TestPack_NoOverlapAndInsideArea(t *testing.T) {
	for _, n := range []int{3, 4, 10, 40, 120} {
		circles := Pack(testValues(n), 298, 298, 3)
		require.Len(t, circles, n)
		for i, a := range circles {
			assert.Greater(t, a.R, 0.0)
			assert.GreaterOrEqual(t, a.X-a.R, -1e-3, "n=%d circle %d leaves area", n, i)
			assert.GreaterOrEqual(t, a.Y-a.R, -1e-3, "n=%d circle %d leaves area", n, i)
			assert.LessOrEqual(t, a.X+a.R, 298+1e-3, "n=%d circle %d leaves area", n, i)
			assert.LessOrEqual(t, a.Y+a.R, 298+1e-3, "n=%d circle %d leaves area", n, i)
			for j := i + 1; j < len(circles); j++ {
				b := circles[j]
				d := math.Hypot(a.X-b.X, a.Y-b.Y)
				assert.GreaterOrEqual(t, d, a.R+b.R-1e-6, "n=%d circles %d and %d overlap", n, i, j)
			}
		}
	}
}

func TestPack_RadiusFollowsValue(t *testing.T) {
	circles := Pack([]float64{1, 4, 9}, 298, 298, 3)
	require.Len(t, circles, 3)
	assert.Less(t, circles[0].R, circles[1].R)
	assert.Less(t, circles[1].R, circles[2].R)
	// area is proportional to value
	assert.InDelta(t, 2, circles[1].R/circles[0].R, 1e-9)
	assert.InDelta(t, 3, circles[2].R/circles[0].R, 1e-9)
}

func TestPack_Deterministic(t *testing.T) {
	values := testValues(60)
	assert.Equal(t, Pack(values, 298, 298, 3), Pack(values, 298, 298, 3))
}

func TestNewLCG(t *testing.T) {
	random := newLCG()
	first := random()
	assert.InDelta(t, float64(1664525+1013904223)/4294967296, first, 1e-15)
	for i := 0; i < 1000; i++ {
		v := random()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

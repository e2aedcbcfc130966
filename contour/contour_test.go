package contour

import (
	"math/rand"
	"testing"

	"github.com/gralgui/go-contour/geospatialfiles/raster"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodata = raster.DefaultNoData

func grid(t *testing.T, rows, columns int, west, south, cellSize float64, values ...float64) *raster.Raster {
	t.Helper()
	r, err := raster.CreateRasterFromGrid(raster.NewHeader(rows, columns, west, south, cellSize), values)
	require.NoError(t, err)
	return r
}

// area is the signed shoelace area, positive for counter-clockwise rings.
func area(r orb.Ring) float64 {
	a := 0.0
	for i := 0; i+1 < len(r); i++ {
		a += r[i][0]*r[i+1][1] - r[i+1][0]*r[i][1]
	}
	return a / 2
}

func TestFullGridIsOneRing(t *testing.T) {
	g := grid(t, 3, 4, 100, 200, 10,
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12)
	set, err := Build(g, []float64{0.5}, Options{})
	require.NoError(t, err)

	require.Equal(t, 1, set.Len())
	rings := set.Rings(0)
	require.Len(t, rings, 1)
	r := rings[0]
	assert.False(t, r.Hole)
	assert.Len(t, r.Points, 15)
	assert.True(t, r.Points.Closed())
	assert.Equal(t, orb.Bound{Min: orb.Point{100, 200}, Max: orb.Point{140, 230}}, r.Points.Bound())
	assert.InDelta(t, 1200, area(r.Points), 1e-9)
}

func TestIsolatedCell(t *testing.T) {
	g := grid(t, 3, 3, 0, 0, 1,
		0, 0, 0,
		0, 5, 0,
		0, 0, 0)
	breaks := []float64{0.25, 0.5, 1, 2, 3, 4, 4.5, 4.75, 5}
	set, err := Build(g, breaks, Options{})
	require.NoError(t, err)

	rings := set.Rings(8)
	require.Len(t, rings, 1, "a cell equal to the break belongs to it")
	assert.Equal(t, orb.Ring{{1, 1}, {2, 1}, {2, 2}, {1, 2}, {1, 1}}, rings[0].Points)
	assert.Equal(t, orb.Point{1.5, 1.5}, rings[0].Points.Bound().Center())
	assert.Equal(t, 8, rings[0].Break)

	assert.Len(t, set.All(), 9)
	assert.Equal(t, 9, set.RingCount())
	for i, r := range set.All() {
		assert.Equal(t, i, r.Break, "drawing order is ascending break")
	}
}

func TestCornerTouchingCellsAreSeparate(t *testing.T) {
	g := grid(t, 2, 2, 0, 0, 1,
		5, 0,
		0, 5)
	set, err := Build(g, []float64{5}, Options{})
	require.NoError(t, err)

	rings := set.Rings(0)
	require.Len(t, rings, 2)
	assert.Equal(t, orb.Ring{{1, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 0}}, rings[0].Points)
	assert.Equal(t, orb.Ring{{0, 1}, {1, 1}, {1, 2}, {0, 2}, {0, 1}}, rings[1].Points)
	assert.False(t, rings[0].Hole)
	assert.False(t, rings[1].Hole)
}

func TestHoles(t *testing.T) {
	g := grid(t, 3, 3, 0, 0, 1,
		5, 5, 5,
		5, 0, 5,
		5, 5, 5)
	set, err := Build(g, []float64{5}, Options{})
	require.NoError(t, err)

	rings := set.Rings(0)
	require.Len(t, rings, 2)
	assert.False(t, rings[0].Hole)
	assert.Len(t, rings[0].Points, 13)
	assert.Greater(t, area(rings[0].Points), 0.0)

	assert.True(t, rings[1].Hole)
	assert.Equal(t, orb.Ring{{1, 1}, {1, 2}, {2, 2}, {2, 1}, {1, 1}}, rings[1].Points)
	assert.Less(t, area(rings[1].Points), 0.0)

	polygons := set.Polygons(0)
	require.Len(t, polygons, 1)
	require.Len(t, polygons[0], 2)
	assert.Equal(t, rings[1].Points, polygons[0][1])
}

func TestHoleGoesToInnermostRing(t *testing.T) {
	// an island with a hole inside the hole of a larger region
	g := grid(t, 7, 7, 0, 0, 1,
		5, 5, 5, 5, 5, 5, 5,
		5, 0, 0, 0, 0, 0, 5,
		5, 0, 5, 5, 5, 0, 5,
		5, 0, 5, 0, 5, 0, 5,
		5, 0, 5, 5, 5, 0, 5,
		5, 0, 0, 0, 0, 0, 5,
		5, 5, 5, 5, 5, 5, 5)
	set, err := Build(g, []float64{5}, Options{})
	require.NoError(t, err)
	require.Len(t, set.Rings(0), 4)

	polygons := set.Polygons(0)
	require.Len(t, polygons, 2)
	for _, p := range polygons {
		require.Len(t, p, 2)
		assert.True(t, p.Bound().Contains(p[1].Bound().Min))
	}
	assert.Equal(t, orb.Bound{Min: orb.Point{3, 3}, Max: orb.Point{4, 4}}, polygons[1][1].Bound())
}

func TestBlankDataset(t *testing.T) {
	g := grid(t, 2, 2, 0, 0, 1, 7, 7, 7, 7)
	_, err := Build(g, []float64{7}, Options{})
	assert.ErrorIs(t, err, ErrBlankDataset)

	empty := grid(t, 1, 2, 0, 0, 1, nodata, nodata)
	_, err = Build(empty, []float64{1}, Options{})
	assert.ErrorIs(t, err, ErrBlankDataset)

	set, err := Build(g, []float64{7}, Options{Categorical: true})
	require.NoError(t, err)
	assert.Len(t, set.Rings(0), 1)
}

func TestNoDataIsNeverInside(t *testing.T) {
	g := grid(t, 1, 3, 0, 0, 1, 1, nodata, 2)
	set, err := Build(g, []float64{-10000}, Options{})
	require.NoError(t, err)
	assert.Len(t, set.Rings(0), 2)
}

func TestBandedMode(t *testing.T) {
	g := grid(t, 1, 3, 0, 0, 1, 1, 2, 3)
	breaks := []float64{1, 2, 3}

	cumulative, err := Build(g, breaks, Options{})
	require.NoError(t, err)
	require.Len(t, cumulative.Rings(0), 1)
	assert.Len(t, cumulative.Rings(0)[0].Points, 9)
	assert.Equal(t, Cumulative, cumulative.Mode())

	banded, err := Build(g, breaks, Options{Mode: Banded})
	require.NoError(t, err)
	for i := range breaks {
		rings := banded.Rings(i)
		require.Len(t, rings, 1)
		assert.Equal(t, orb.Bound{Min: orb.Point{float64(i), 0}, Max: orb.Point{float64(i + 1), 1}}, rings[0].Points.Bound())
	}
}

func TestBuildErrors(t *testing.T) {
	g := grid(t, 1, 2, 0, 0, 1, 1, 2)
	_, err := Build(g, nil, Options{})
	assert.ErrorIs(t, err, ErrNoBreaks)
	_, err = Build(g, []float64{2, 1}, Options{})
	assert.ErrorIs(t, err, ErrBreakOrder)

	set, err := Build(g, []float64{1, 1}, Options{})
	require.NoError(t, err, "equal breaks are legal")
	require.Len(t, set.Rings(1), 1)
	assert.Equal(t, set.Rings(0)[0].Points, set.Rings(1)[0].Points)
	assert.Nil(t, set.Rings(5))
}

func randomGrid(t *testing.T, seed int64, rows, columns int) *raster.Raster {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, rows*columns)
	for i := range values {
		if rng.Intn(20) == 0 {
			values[i] = nodata
			continue
		}
		values[i] = float64(rng.Intn(10))
	}
	return grid(t, rows, columns, 1000, 2000, 2, values...)
}

func TestRingInvariants(t *testing.T) {
	g := randomGrid(t, 7, 30, 40)
	breaks := []float64{0, 2, 4, 6, 8, 9}
	set, err := Build(g, breaks, Options{})
	require.NoError(t, err)

	bounds := orb.Bound{Min: orb.Point{1000, 2000}, Max: orb.Point{1080, 2060}}
	for _, r := range set.All() {
		require.True(t, r.Points.Closed())
		require.GreaterOrEqual(t, len(r.Points), 5)
		assert.Equal(t, r.Hole, area(r.Points) < 0)
		for _, p := range r.Points {
			assert.True(t, bounds.Contains(p))
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	g := randomGrid(t, 3, 25, 25)
	breaks := []float64{0, 1, 3, 5, 7, 9}
	one, err := Build(g, breaks, Options{Workers: 1})
	require.NoError(t, err)
	many, err := Build(g, breaks, Options{Workers: 8})
	require.NoError(t, err)
	again, err := Build(g, breaks, Options{Workers: 8})
	require.NoError(t, err)
	assert.Equal(t, one, many)
	assert.Equal(t, many, again)
}

func TestFilter(t *testing.T) {
	const n = 20
	values := make([]float64, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			dr, dc := float64(row)-9.5, float64(col)-9.5
			if dr*dr+dc*dc < 64 {
				values[row*n+col] = 1
			}
		}
	}
	g := grid(t, n, n, 0, 0, 1, values...)

	raw, err := Build(g, []float64{1}, Options{})
	require.NoError(t, err)
	filtered, err := Build(g, []float64{1}, Options{Filter: true})
	require.NoError(t, err)

	require.Len(t, raw.Rings(0), 1)
	require.Len(t, filtered.Rings(0), 1)
	r, f := raw.Rings(0)[0].Points, filtered.Rings(0)[0].Points
	assert.Less(t, len(f), len(r))
	assert.GreaterOrEqual(t, len(f), 4)
	assert.True(t, f.Closed())

	cell := grid(t, 3, 3, 0, 0, 1, 0, 0, 0, 0, 5, 0, 0, 0, 0)
	small, err := Build(cell, []float64{5}, Options{Filter: true})
	require.NoError(t, err)
	require.Len(t, small.Rings(0), 1)
	assert.GreaterOrEqual(t, len(small.Rings(0)[0].Points), 4)
}

func TestGeoJSONRoundTrip(t *testing.T) {
	g := grid(t, 3, 3, 10, 20, 5,
		5, 5, 5,
		5, 0, 5,
		5, 5, 5)
	breaks := []float64{-1, 5, 6}
	set, err := Build(g, breaks, Options{})
	require.NoError(t, err)

	data, err := set.MarshalGeoJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"break_value":5`)

	back, err := UnmarshalGeoJSON(data, breaks, Cumulative)
	require.NoError(t, err)
	assert.Equal(t, set, back)
	assert.Empty(t, back.Rings(2))

	_, err = UnmarshalGeoJSON(data, breaks[:1], Cumulative)
	assert.ErrorIs(t, err, ErrGeoJSON)
	_, err = UnmarshalGeoJSON([]byte("{"), breaks, Cumulative)
	assert.ErrorIs(t, err, ErrGeoJSON)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("banded")
	require.NoError(t, err)
	assert.Equal(t, Banded, m)
	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Cumulative, m)
	_, err = ParseMode("stacked")
	assert.Error(t, err)
}

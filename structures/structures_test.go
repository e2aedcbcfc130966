package structures

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKDTreeInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const N = 500
	points := make([]Point, N)
	for i := range points {
		points[i] = Point{rng.Float64() * 1000, rng.Float64() * 1000}
	}
	tree := NewKDTree(points)
	require.NotNil(t, tree)

	centre := points[250]
	const radius = 75.0
	found := tree.InRange(centre, radius, nil)
	got := make([]int, len(found))
	for i, n := range found {
		got[i] = n.Index
	}
	sort.Ints(got)

	var want []int
	for i, p := range points {
		if p.sqDist(centre) <= radius*radius {
			want = append(want, i)
		}
	}
	assert.Equal(t, want, got)
}

func TestKDTreeNearest(t *testing.T) {
	points := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {5, 5}, {5, 5}}
	tree := NewKDTree(points)

	n := tree.Nearest(Point{9, 1}, 100)
	require.NotNil(t, n)
	assert.Equal(t, 1, n.Index)

	n = tree.Nearest(Point{5.1, 5}, 100)
	require.NotNil(t, n)
	assert.Equal(t, 4, n.Index, "duplicates resolve to the lower index")

	assert.Nil(t, tree.Nearest(Point{50, 50}, 1))

	var empty *KDNode
	assert.Nil(t, empty.Nearest(Point{0, 0}, 10))
	assert.Equal(t, 0, empty.Height())
	assert.LessOrEqual(t, tree.Height(), 4)
}

func TestRectangularArrays(t *testing.T) {
	mask := NewRectangularArrayBool(2, 3)
	mask.SetValue(1, 2, true)
	mask.SetValue(5, 5, true) // outside, ignored
	assert.True(t, mask.Value(1, 2))
	assert.False(t, mask.Value(-1, 0))
	assert.False(t, mask.Value(0, 3))

	flags := NewRectangularArrayByte(2, 2)
	flags.SetBits(0, 1, 1|4)
	flags.ClearBits(0, 1, 1)
	assert.Equal(t, byte(4), flags.Value(0, 1))
	assert.Equal(t, byte(0), flags.Value(3, 3))
	flags.SetBits(-1, 0, 1) // outside, ignored
	assert.Equal(t, byte(0), flags.Value(-1, 0))
}

package ordering

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id    string
	order int
}

func (i *item) OrderIndex() int     { return i.order }
func (i *item) SetOrderIndex(n int) { i.order = n }

func makeList(ids ...string) []*item {
	list := make([]*item, len(ids))
	for i, id := range ids {
		list[i] = &item{id: id, order: i}
	}
	return list
}

func ids(list []*item) []string {
	out := make([]string, len(list))
	for i, it := range list {
		out[i] = it.id
	}
	return out
}

func TestMoveOneDown(t *testing.T) {
	list := makeList("a", "b", "c")

	changed, ok := MoveOne(list, 0, DirectionDown)
	require.True(t, ok)

	assert.Equal(t, []string{"b", "a", "c"}, ids(list))
	assert.Len(t, changed, 2)
	assert.True(t, IsDense(list))
}

func TestMoveOneUp(t *testing.T) {
	list := makeList("a", "b", "c")

	changed, ok := MoveOne(list, 2, DirectionUp)
	require.True(t, ok)

	assert.Equal(t, []string{"a", "c", "b"}, ids(list))
	assert.Len(t, changed, 2)
	assert.True(t, IsDense(list))
}

func TestMoveOneBoundaryNoOps(t *testing.T) {
	list := makeList("a", "b", "c")

	_, ok := MoveOne(list, 0, DirectionUp)
	assert.False(t, ok)
	_, ok = MoveOne(list, len(list)-1, DirectionDown)
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b", "c"}, ids(list))
	assert.True(t, IsDense(list))
}

func TestMoveOneInvalidIndex(t *testing.T) {
	list := makeList("a", "b")

	_, ok := MoveOne(list, -1, DirectionDown)
	assert.False(t, ok)
	_, ok = MoveOne(list, 2, DirectionUp)
	assert.False(t, ok)
}

func TestMoveOneUnknownDirection(t *testing.T) {
	list := makeList("a", "b", "c")

	changed, ok := MoveOne(list, 1, Direction("sideways"))
	assert.False(t, ok)
	assert.Nil(t, changed)
	assert.Equal(t, []string{"a", "b", "c"}, ids(list))
}

func TestMoveOneSingleElement(t *testing.T) {
	list := makeList("a")

	_, ok := MoveOne(list, 0, DirectionUp)
	assert.False(t, ok)
	_, ok = MoveOne(list, 0, DirectionDown)
	assert.False(t, ok)
}

func TestDenseInvariantUnderRandomMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	list := makeList("a", "b", "c", "d", "e", "f", "g")

	for i := 0; i < 500; i++ {
		dir := DirectionUp
		if rng.Intn(2) == 0 {
			dir = DirectionDown
		}
		MoveOne(list, rng.Intn(len(list)), dir)

		seen := make(map[int]bool, len(list))
		for _, it := range list {
			seen[it.order] = true
		}
		for want := 0; want < len(list); want++ {
			require.True(t, seen[want], "order value %d missing after %d moves", want, i+1)
		}
		require.True(t, IsDense(list))
	}
}

func TestMoveOneRepairsGaps(t *testing.T) {
	// A torn write left a gap; the next successful move renumbers the
	// partition back to dense.
	list := makeList("a", "b", "c")
	list[2].order = 5

	changed, ok := MoveOne(list, 0, DirectionDown)
	require.True(t, ok)

	assert.True(t, IsDense(list))
	assert.Len(t, changed, 3)
}

package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rankedItem struct {
	rank int
	name string
}

func cmpRanked(a, b rankedItem) int {
	return a.rank - b.rank
}

func TestMinHeapExtractOrder(t *testing.T) {
	testCases := []struct {
		name string
		d    int
		in   []int
	}{
		{name: "binary heap", d: 2, in: []int{5, 3, 9, 1, 7, 2, 8}},
		{name: "four-ary heap", d: 4, in: []int{10, 4, 6, 4, 0, 3, 11, 2, 1}},
		{name: "single item", d: 2, in: []int{42}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			h := NewdAryHeap[rankedItem](tt.d, cmpRanked)
			for _, r := range tt.in {
				h.Insert(rankedItem{rank: r})
			}
			require.Equal(t, len(tt.in), h.Size())

			prev := -1
			for !h.IsEmpty() {
				node, err := h.ExtractMin()
				require.NoError(t, err)
				assert.GreaterOrEqual(t, node.GetItem().rank, prev)
				prev = node.GetItem().rank
			}
		})
	}
}

func TestMinHeapTieBreakInsertionOrder(t *testing.T) {
	h := NewBinaryHeap[rankedItem](cmpRanked)
	h.Insert(rankedItem{rank: 1, name: "first"})
	h.Insert(rankedItem{rank: 0, name: "zero"})
	h.Insert(rankedItem{rank: 1, name: "second"})
	h.Insert(rankedItem{rank: 1, name: "third"})

	want := []string{"zero", "first", "second", "third"}
	for _, w := range want {
		node, err := h.ExtractMin()
		require.NoError(t, err)
		assert.Equal(t, w, node.GetItem().name)
	}
}

func TestMinHeapEmpty(t *testing.T) {
	h := NewFourAryHeap[rankedItem](cmpRanked)
	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)
	_, err = h.GetMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)
}

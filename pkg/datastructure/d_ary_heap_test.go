package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractsInRankOrder(t *testing.T) {
	for _, d := range []int{2, 4} {
		h := NewdAryHeap[string](d)
		ranks := []float64{5, 1, 9, 3, 7, 2, 8, 0.5, 6, 4}
		for _, r := range ranks {
			h.Insert(NewPriorityQueueNode(r, "x"))
		}
		require.Equal(t, len(ranks), h.Size())

		prev := -1.0
		for !h.IsEmpty() {
			node, err := h.ExtractMin()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, node.GetRank(), prev)
			prev = node.GetRank()
		}
	}
}

func TestMinHeapTiesFirstInsertedWins(t *testing.T) {
	h := NewBinaryHeap[string]()
	h.Insert(NewPriorityQueueNode(1.0, "a"))
	h.Insert(NewPriorityQueueNode(0.5, "first"))
	h.Insert(NewPriorityQueueNode(1.0, "b"))
	h.Insert(NewPriorityQueueNode(0.5, "second"))
	h.Insert(NewPriorityQueueNode(1.0, "c"))

	want := []string{"first", "second", "a", "b", "c"}
	for _, w := range want {
		node, err := h.ExtractMin()
		require.NoError(t, err)
		assert.Equal(t, w, node.GetItem())
	}
	assert.True(t, h.IsEmpty())
}

func TestMinHeapEmpty(t *testing.T) {
	h := NewBinaryHeap[int]()
	_, err := h.ExtractMin()
	assert.Error(t, err)
	_, err = h.GetMin()
	assert.Error(t, err)

	h.Insert(NewPriorityQueueNode(3.0, 3))
	min, err := h.GetMin()
	require.NoError(t, err)
	assert.Equal(t, 3, min.GetItem())

	h.Clear()
	assert.True(t, h.IsEmpty())
}

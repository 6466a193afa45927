package datastructure

import (
	"errors"
)

var ErrHeapEmpty = errors.New("heap is empty")

type PriorityQueueNode[T any] struct {
	item    T
	seq     uint64 // insertion sequence, breaks ties between equal items (FIFO)
	itemPos int
}

func (p *PriorityQueueNode[T]) GetItem() T {
	return p.item
}

func (p *PriorityQueueNode[T]) GetSeq() uint64 {
	return p.seq
}

func (p *PriorityQueueNode[T]) SetPos(i int) {
	p.itemPos = i
}

func (p *PriorityQueueNode[T]) GetPos() int {
	return p.itemPos
}

// CompareFunc. negative if a ranks before b, zero if tied.
type CompareFunc[T any] func(a, b T) int

// MinHeap d-ary heap priorityqueue ordered by cmp, ties broken by insertion order
type MinHeap[T any] struct {
	heap    []*PriorityQueueNode[T]
	d       int
	cmp     CompareFunc[T]
	nextSeq uint64
}

func NewBinaryHeap[T any](cmp CompareFunc[T]) *MinHeap[T] {
	return NewdAryHeap[T](2, cmp)
}

func NewFourAryHeap[T any](cmp CompareFunc[T]) *MinHeap[T] {
	return NewdAryHeap[T](4, cmp)
}

func NewdAryHeap[T any](d int, cmp CompareFunc[T]) *MinHeap[T] {
	if d < 2 {
		d = 2
	}
	return &MinHeap[T]{
		heap: make([]*PriorityQueueNode[T], 0),
		d:    d,
		cmp:  cmp,
	}
}

func (h *MinHeap[T]) Preallocate(maxSearchSize int) {
	h.heap = make([]*PriorityQueueNode[T], 0, maxSearchSize)
}

// less. node i ranks strictly before node j
func (h *MinHeap[T]) less(i, j int) bool {
	c := h.cmp(h.heap[i].item, h.heap[j].item)
	if c != 0 {
		return c < 0
	}
	return h.heap[i].seq < h.heap[j].seq
}

// parent get index dari parent
func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / h.d
}

// heapifyUp swap with parent while the node ranks before its parent. O(log N) tree height.
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.less(index, h.parent(index)) {
		h.Swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown swap with the smallest child while that child ranks before the node. O(log N) tree height.
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		leftMostChild := index*h.d + 1
		if leftMostChild >= len(h.heap) {
			return
		}

		sentinel := leftMostChild + h.d
		if sentinel > len(h.heap) {
			sentinel = len(h.heap)
		}

		smallest := leftMostChild
		for i := leftMostChild + 1; i < sentinel; i++ {
			if h.less(i, smallest) {
				smallest = i
			}
		}

		if !h.less(smallest, index) {
			return
		}
		h.Swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) Swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]

	h.heap[i].SetPos(i)
	h.heap[j].SetPos(j)
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) Clear() {
	h.heap = h.heap[:0]
	h.nextSeq = 0
}

// GetMin item with the smallest rank (index 0)
func (h *MinHeap[T]) GetMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return nil, ErrHeapEmpty
	}
	return h.heap[0], nil
}

// Insert item baru. O(log N)
func (h *MinHeap[T]) Insert(item T) *PriorityQueueNode[T] {
	node := &PriorityQueueNode[T]{item: item, seq: h.nextSeq}
	h.nextSeq++

	h.heap = append(h.heap, node)
	index := h.Size() - 1
	node.SetPos(index)
	h.heapifyUp(index)
	return node
}

// ExtractMin pop the smallest item. O(log N)
func (h *MinHeap[T]) ExtractMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return nil, ErrHeapEmpty
	}
	root := h.heap[0]

	h.Swap(0, h.Size()-1)

	h.heap[h.Size()-1] = nil
	h.heap = h.heap[:h.Size()-1]
	root.SetPos(-1)
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}

	return root, nil
}

package navmesh

import "container/heap"

// nodeQueue is the priority frontier for A*, a thin wrapper over
// container/heap with a pluggable ordering.
type nodeQueue[T any] struct {
	data []T
	less func(a, b T) bool
}

func newNodeQueue[T any](less func(a, b T) bool) *nodeQueue[T] {
	q := &nodeQueue[T]{less: less}
	heap.Init(q)
	return q
}

func (q *nodeQueue[T]) Offer(v T) {
	heap.Push(q, v)
}

func (q *nodeQueue[T]) Poll() T {
	return heap.Pop(q).(T)
}

func (q *nodeQueue[T]) Empty() bool {
	return len(q.data) == 0
}

func (q *nodeQueue[T]) Len() int { return len(q.data) }

func (q *nodeQueue[T]) Less(i, j int) bool { return q.less(q.data[i], q.data[j]) }

func (q *nodeQueue[T]) Swap(i, j int) { q.data[i], q.data[j] = q.data[j], q.data[i] }

func (q *nodeQueue[T]) Push(x any) { q.data = append(q.data, x.(T)) }

func (q *nodeQueue[T]) Pop() any {
	old := q.data
	n := len(old)
	v := old[n-1]
	q.data = old[:n-1]
	return v
}

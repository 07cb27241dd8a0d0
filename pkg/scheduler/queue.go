package scheduler

type queue[T any] struct {
	items []T
}

func (q *queue[T]) Push(v T) {
	q.items = append(q.items, v)
}

func (q *queue[T]) Pop() T {
	v := q.items[0]
	var none T
	q.items[0] = none
	q.items = q.items[1:]
	return v
}

func (q *queue[T]) Len() int {
	return len(q.items)
}

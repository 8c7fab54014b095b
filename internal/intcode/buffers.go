package intcode

import "slices"

// inputQueue FIFO drained left to right by the input instruction
type inputQueue struct {
	values []int64
	head   int
}

func newInputQueue(values []int64) inputQueue {
	return inputQueue{values: slices.Clone(values)}
}

func (q *inputQueue) pop() (int64, bool) {
	if q.head >= len(q.values) {
		return 0, false
	}
	v := q.values[q.head]
	q.head++
	return v, true
}

func (q *inputQueue) len() int {
	return len(q.values) - q.head
}

// outputBuffer append-only record of output instructions, in execution order
type outputBuffer struct {
	values []int64
}

func (b *outputBuffer) push(v int64) {
	b.values = append(b.values, v)
}

func (b *outputBuffer) snapshot() []int64 {
	return slices.Clone(b.values)
}

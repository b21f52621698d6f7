package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	id   int
	name string
}

func TestQueue_PushDrain(t *testing.T) {
	q := New[record]()
	assert.Equal(t, 0, q.Len())

	q.Push(record{1, "a"}, record{2, "b"})
	q.Push(record{3, "c"})
	assert.Equal(t, 3, q.Len())

	items := q.Drain(0)
	assert.Equal(t, []record{{1, "a"}, {2, "b"}, {3, "c"}}, items)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain(0))
}

func TestQueue_DrainBatch(t *testing.T) {
	q := New[int]()
	q.Push(1, 2, 3, 4, 5)

	assert.Equal(t, []int{1, 2}, q.Drain(2))
	assert.Equal(t, []int{3, 4}, q.Drain(2))
	assert.Equal(t, []int{5}, q.Drain(2))
	assert.Equal(t, 0, q.Len())
}

func TestQueue_DrainedSliceIsNotReused(t *testing.T) {
	q := New[int]()
	q.Push(1, 2, 3)
	first := q.Drain(2)
	q.Push(9, 9)

	assert.Equal(t, []int{1, 2}, first)
	assert.Equal(t, []int{3, 9, 9}, q.Drain(0))
}

func TestQueue_Requeue(t *testing.T) {
	q := New[int]()
	q.Push(1, 2, 3)
	batch := q.Drain(2)
	q.Push(4)

	q.Requeue(batch)
	assert.Equal(t, []int{1, 2, 3, 4}, q.Drain(0))

	q.Requeue(nil)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_BoundedDropsOldest(t *testing.T) {
	q := NewBounded[int](3)
	q.Push(1, 2, 3, 4)
	q.Push(5)

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, uint64(2), q.Dropped())
	assert.Equal(t, []int{3, 4, 5}, q.Drain(0))
}

func TestQueue_ConcurrentPush(t *testing.T) {
	q := New[int]()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(n*100 + j)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1000, q.Len())
}

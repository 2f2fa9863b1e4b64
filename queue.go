// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import (
	"iter"
	"sync"
)

// Queue is a bounded blocking multi-producer multi-consumer FIFO queue.
//
// A fixed ring buffer of capacity slots, the head and tail indices, the
// element count and the shutdown flag are guarded by a single mutex. Two
// condition variables on that mutex carry the wake-ups: notFull for
// blocked producers and notEmpty for blocked consumers.
//
// All methods are safe for concurrent use, and all are safe on a nil
// *Queue: writes become no-ops and reads report an empty, shut down queue.
//
// Memory: O(capacity)
type Queue[T any] struct {
	mu       sync.Mutex
	notFull  sync.Cond // Space available
	notEmpty sync.Cond // Item available
	buffer   []T
	head     int // Next read
	tail     int // Next write
	count    int
	capacity int
	shutdown bool
}

// New creates a new queue holding up to capacity elements.
// A capacity below 1 is coerced to 1. Capacity is not rounded.
func New[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}

	q := &Queue[T]{
		buffer:   make([]T, capacity),
		capacity: capacity,
	}
	q.notFull.L = &q.mu
	q.notEmpty.L = &q.mu
	return q
}

// Enqueue adds an element to the tail of the queue.
//
// Blocks while the queue is full. If the queue is shut down before or
// while waiting, the element is dropped and Enqueue returns normally.
// A successful Enqueue wakes at most one blocked Dequeue.
func (q *Queue[T]) Enqueue(elem T) {
	if q == nil {
		return
	}

	q.mu.Lock()
	for !q.shutdown && q.count == q.capacity {
		q.notFull.Wait()
	}
	if !q.shutdown {
		q.push(elem)
	}
	q.mu.Unlock()
}

// TryEnqueue adds an element without blocking.
// Returns ErrWouldBlock if the queue is full, ErrClosed if it is shut down.
func (q *Queue[T]) TryEnqueue(elem T) error {
	if q == nil {
		return ErrClosed
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.shutdown {
		return ErrClosed
	}
	if q.count == q.capacity {
		return ErrWouldBlock
	}
	q.push(elem)
	return nil
}

// Dequeue removes and returns the element at the head of the queue.
//
// Blocks while the queue is empty and not shut down. Returns
// (zero-value, ErrClosed) when the queue is shut down and drained; a nil
// error always comes with a real element. A successful Dequeue wakes at
// most one blocked Enqueue.
func (q *Queue[T]) Dequeue() (T, error) {
	if q == nil {
		var zero T
		return zero, ErrClosed
	}

	q.mu.Lock()
	for !q.shutdown && q.count == 0 {
		q.notEmpty.Wait()
	}
	if q.count == 0 {
		q.mu.Unlock()
		var zero T
		return zero, ErrClosed
	}
	elem := q.pop()
	q.mu.Unlock()
	return elem, nil
}

// TryDequeue removes and returns the head element without blocking.
// Returns ErrWouldBlock if the queue is empty, ErrClosed if it is also
// shut down.
func (q *Queue[T]) TryDequeue() (T, error) {
	var zero T
	if q == nil {
		return zero, ErrClosed
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == 0 {
		if q.shutdown {
			return zero, ErrClosed
		}
		return zero, ErrWouldBlock
	}
	return q.pop(), nil
}

// push stores elem at tail. Caller holds q.mu and has checked for space.
func (q *Queue[T]) push(elem T) {
	q.buffer[q.tail] = elem
	q.tail = (q.tail + 1) % q.capacity
	q.count++
	// One new element satisfies one consumer.
	q.notEmpty.Signal()
}

// pop removes the element at head. Caller holds q.mu and has checked
// that the queue is not empty.
func (q *Queue[T]) pop() T {
	elem := q.buffer[q.head]
	var zero T
	q.buffer[q.head] = zero
	q.head = (q.head + 1) % q.capacity
	q.count--
	q.notFull.Signal()
	return elem
}

// Shutdown closes the queue to new elements and wakes all blocked
// producers and consumers.
//
// Elements already buffered stay dequeueable until drained. Shutdown is
// idempotent and cannot be undone.
func (q *Queue[T]) Shutdown() {
	if q == nil {
		return
	}

	q.mu.Lock()
	q.close()
	q.mu.Unlock()
}

// Drain signals that no more enqueues will occur. It is equivalent to
// Shutdown and satisfies [Drainer].
func (q *Queue[T]) Drain() {
	q.Shutdown()
}

// close sets the shutdown flag and broadcasts on both conditions.
// Caller holds q.mu.
func (q *Queue[T]) close() {
	q.shutdown = true
	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
}

// Destroy shuts the queue down, wakes every waiter and releases the
// buffer. Elements still buffered are discarded.
//
// The caller must make sure no other goroutine is inside, or will enter,
// a queue method once Destroy begins; goroutines woken here must be joined
// by the caller. A destroyed queue behaves as shut down and drained.
func (q *Queue[T]) Destroy() {
	if q == nil {
		return
	}

	q.mu.Lock()
	q.close()
	clear(q.buffer)
	q.buffer = nil
	q.head, q.tail, q.count = 0, 0, 0
	q.mu.Unlock()
}

// IsEmpty reports whether the queue held no elements at the time of the
// call. A nil queue is empty.
func (q *Queue[T]) IsEmpty() bool {
	if q == nil {
		return true
	}

	q.mu.Lock()
	empty := q.count == 0
	q.mu.Unlock()
	return empty
}

// IsShutdown reports whether the queue has been shut down.
// A nil queue reports true.
func (q *Queue[T]) IsShutdown() bool {
	if q == nil {
		return true
	}

	q.mu.Lock()
	closed := q.shutdown
	q.mu.Unlock()
	return closed
}

// Len returns the number of buffered elements at the time of the call.
func (q *Queue[T]) Len() int {
	if q == nil {
		return 0
	}

	q.mu.Lock()
	n := q.count
	q.mu.Unlock()
	return n
}

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int {
	if q == nil {
		return 0
	}
	// capacity is fixed at construction.
	return q.capacity
}

// All returns an iterator that dequeues elements until the queue is shut
// down and drained. Breaking out of the loop leaves remaining elements in
// the queue.
//
// Example:
//
//	for job := range q.All() {
//	    job.Run()
//	}
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			elem, err := q.Dequeue()
			if err != nil {
				return
			}
			if !yield(elem) {
				return
			}
		}
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

// BlockingQueue is the combined producer-consumer interface for a bounded
// blocking FIFO queue.
//
// Enqueue and Dequeue block; TryEnqueue and TryDequeue never do. Shutdown
// is the only operation that wakes blocked callers without handing over an
// element.
//
// Example:
//
//	var q bbq.BlockingQueue[*Job] = bbq.New[*Job](64)
//
//	// Producer
//	q.Enqueue(job)
//
//	// Consumer
//	for {
//	    job, err := q.Dequeue()
//	    if bbq.IsClosed(err) {
//	        return
//	    }
//	    job.Run()
//	}
type BlockingQueue[T any] interface {
	Producer[T]
	Consumer[T]
	Drainer

	// Shutdown closes the queue to new elements and wakes every waiter.
	Shutdown()

	// IsEmpty and IsShutdown are point-in-time snapshots. They are
	// advisory: the state may change before the caller acts on them.
	IsEmpty() bool
	IsShutdown() bool

	Len() int
	Cap() int
}

// Producer is the interface for enqueueing elements.
//
// Elements are moved into the queue by value. The queue never copies the
// data an element refers to: for pointer types ownership transfers from the
// producer to whichever consumer dequeues it.
type Producer[T any] interface {
	// Enqueue adds an element to the tail, blocking while the queue is
	// full. After shutdown the element is silently dropped.
	Enqueue(elem T)

	// TryEnqueue adds an element without blocking.
	// Returns nil on success, ErrWouldBlock if the queue is full, or
	// ErrClosed if the queue is shut down (the element is dropped).
	TryEnqueue(elem T) error
}

// Consumer is the interface for dequeueing elements.
type Consumer[T any] interface {
	// Dequeue removes and returns the head element, blocking while the
	// queue is empty. Returns (zero-value, ErrClosed) once the queue is
	// shut down and drained.
	Dequeue() (T, error)

	// TryDequeue removes and returns the head element without blocking.
	// Returns (zero-value, ErrWouldBlock) if the queue is empty, or
	// (zero-value, ErrClosed) if it is shut down and drained.
	TryDequeue() (T, error)
}

// Drainer signals that no more enqueues will occur.
//
// Call Drain after all producers have finished so consumers can empty the
// queue and then observe ErrClosed instead of blocking forever.
//
// Example:
//
//	prodWg.Wait()  // Wait for producers to finish
//	if d, ok := q.(bbq.Drainer); ok {
//	    d.Drain()
//	}
//	// Consumers now drain remaining items and exit on ErrClosed
type Drainer interface {
	Drain()
}

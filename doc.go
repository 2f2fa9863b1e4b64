// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bbq provides a bounded blocking FIFO queue with cooperative
// shutdown.
//
// A [Queue] hands elements from any number of producer goroutines to any
// number of consumer goroutines. Enqueue blocks while the queue is full,
// Dequeue blocks while it is empty, and Shutdown releases everyone.
//
// # Quick Start
//
//	q := bbq.New[*Request](128)
//
//	// Producer
//	q.Enqueue(req)
//
//	// Consumer
//	for req := range q.All() {
//	    handle(req)
//	}
//
//	// Owner, once producers are done
//	q.Shutdown()
//
// # Capacity
//
// Capacity is fixed at construction and used exactly; there is no
// power-of-2 rounding. A capacity below 1 is coerced to 1:
//
//	bbq.New[int](3)   // Capacity 3
//	bbq.New[int](0)   // Capacity 1
//	bbq.New[int](-5)  // Capacity 1
//
// # Shutdown
//
// Shutdown is one way and idempotent. After it:
//
//   - Enqueue drops its element and returns normally, so producer loops
//     need no special case.
//   - Elements already buffered remain dequeueable.
//   - Dequeue on the drained queue returns [ErrClosed] immediately. This is
//     the only way a consumer learns the queue is finished.
//   - Every goroutine blocked in Enqueue or Dequeue wakes and re-checks.
//
// The consumer pattern:
//
//	for {
//	    v, err := q.Dequeue()
//	    if bbq.IsClosed(err) {
//	        return
//	    }
//	    process(v)
//	}
//
// Destroy additionally releases the buffer. It wakes waiters too, but it is
// not safe to call while other goroutines still use the queue: join them
// first.
//
// # Blocking and Wake-ups
//
// Buffer, indices, count and shutdown flag live under one [sync.Mutex].
// Waiting uses two [sync.Cond] on that mutex, one per direction. Each
// successful Enqueue signals one waiting consumer and each successful
// Dequeue signals one waiting producer; one element frees exactly one
// waiter. Shutdown broadcasts on both.
//
// Blocking calls have no timeout and no context. Only Shutdown unblocks a
// waiter that is not handed an element. For deadlines use the non-blocking
// calls:
//
//	err := q.TryEnqueue(v)          // nil, ErrWouldBlock or ErrClosed
//	v, err := q.TryDequeue()        // nil, ErrWouldBlock or ErrClosed
//	v, err := bbq.Poll[T](q, d)     // TryDequeue with retry until d
//	err := bbq.Offer[T](q, v, d)    // TryEnqueue with retry until d
//
// Poll and Offer spin briefly and then back off with [iox.Backoff]. They
// never interrupt a blocked Dequeue or Enqueue.
//
// # Error Handling
//
// Both errors are control flow signals, not failures:
//
//	bbq.IsWouldBlock(err)  // full or empty, try again later
//	bbq.IsClosed(err)      // shut down (and drained, for dequeue)
//	bbq.IsSemantic(err)    // either of the above
//	bbq.IsNonFailure(err)  // nil or either of the above
//
// [ErrWouldBlock] is [iox.ErrWouldBlock] for ecosystem consistency.
//
// # Nil Queues
//
// Every method accepts a nil *Queue. Enqueue, Shutdown, Drain and Destroy
// do nothing; Dequeue and TryDequeue return [ErrClosed]; IsEmpty and
// IsShutdown report true.
//
// # Element Ownership
//
// Elements are moved in and out by value. The queue does not copy what a
// pointer element refers to and clears each slot on dequeue, so it never
// retains an element it has handed out. With pointer elements, ownership
// passes from the producer to the consumer that dequeues it.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// backoff and [code.hybscloud.com/spin] for CPU pause instructions.
package bbq

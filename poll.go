// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import (
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// spinLimit is the number of CPU-pause retries before Poll and Offer fall
// back to iox.Backoff.
const spinLimit = 64

// Poll dequeues an element, retrying for up to timeout while the queue is
// empty.
//
// Poll never waits on the queue's condition variables. It retries
// TryDequeue, first with CPU pauses and then with adaptive backoff, so a
// consumer gets a deadline without the queue offering cancellation of a
// blocked Dequeue.
//
// Returns (zero-value, ErrWouldBlock) if the timeout elapses, or
// (zero-value, ErrClosed) once the queue is shut down and drained.
// A timeout <= 0 makes a single attempt.
//
// Example:
//
//	for {
//	    v, err := bbq.Poll[Event](q, 100*time.Millisecond)
//	    if bbq.IsWouldBlock(err) {
//	        heartbeat()
//	        continue
//	    }
//	    if err != nil {
//	        return // Closed and drained
//	    }
//	    handle(v)
//	}
func Poll[T any](c Consumer[T], timeout time.Duration) (T, error) {
	r := newRetrier(timeout)
	for {
		elem, err := c.TryDequeue()
		if !IsWouldBlock(err) || r.expired() {
			return elem, err
		}
		r.wait()
	}
}

// Offer enqueues elem, retrying for up to timeout while the queue is full.
//
// Returns nil on success, ErrWouldBlock if the timeout elapses, or
// ErrClosed if the queue is shut down (the element is dropped).
// A timeout <= 0 makes a single attempt.
func Offer[T any](p Producer[T], elem T, timeout time.Duration) error {
	r := newRetrier(timeout)
	for {
		err := p.TryEnqueue(elem)
		if !IsWouldBlock(err) || r.expired() {
			return err
		}
		r.wait()
	}
}

// retrier paces Poll and Offer: spin first, then back off until deadline.
type retrier struct {
	deadline time.Time
	spins    int
	sw       spin.Wait
	backoff  iox.Backoff
}

func newRetrier(timeout time.Duration) *retrier {
	return &retrier{deadline: time.Now().Add(timeout)}
}

func (r *retrier) expired() bool {
	return !time.Now().Before(r.deadline)
}

func (r *retrier) wait() {
	if r.spins < spinLimit {
		r.spins++
		r.sw.Once()
		return
	}
	r.backoff.Wait()
}

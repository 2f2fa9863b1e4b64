// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates a non-blocking operation cannot proceed immediately.
//
// For TryEnqueue and Offer: the queue is full
// For TryDequeue and Poll: the queue is empty
//
// ErrWouldBlock is a control flow signal, not a failure. It is never
// returned by the blocking Enqueue and Dequeue.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrClosed reports that the queue has been shut down.
//
// Dequeue returns ErrClosed only when the queue is shut down and drained;
// it is the signal a consumer loop exits on. TryEnqueue and Offer return it
// when the element was dropped because of shutdown.
//
// Like [ErrWouldBlock], ErrClosed is a control flow signal, not a failure.
var ErrClosed = errors.New("bbq: queue closed")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsClosed reports whether err indicates the queue was shut down.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// ErrClosed is semantic in addition to the signals recognized by
// [iox.IsSemantic].
func IsSemantic(err error) bool {
	return IsClosed(err) || iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, ErrClosed, or any other condition
// accepted by [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return IsClosed(err) || iox.IsNonFailure(err)
}

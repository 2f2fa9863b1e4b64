// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/bbq"
	"code.hybscloud.com/iox"
)

// =============================================================================
// Test Helpers
// =============================================================================

// waitForCount waits until counter reaches target or timeout expires.
func waitForCount(t *testing.T, timeout time.Duration, counter *atomix.Int64, target int64, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	backoff := iox.Backoff{}
	for counter.Load() < target {
		if time.Now().After(deadline) {
			t.Fatalf("timeout after %v: %s (got %d, want %d)", timeout, msg, counter.Load(), target)
		}
		backoff.Wait()
	}
}

// =============================================================================
// Producer/Consumer Integrity
// =============================================================================

// TestProducerConsumerIntegrity runs 4 producers of 1000 elements each
// against 4 consumers that stop at a shared target. Counters are guarded by
// a mutex so the test also runs under the race detector.
func TestProducerConsumerIntegrity(t *testing.T) {
	const (
		numP   = 4
		perP   = 1000
		numC   = 4
		target = numP * perP
	)

	q := bbq.New[*int](8)
	var (
		mu       sync.Mutex
		produced int
		consumed int
	)

	var prodWg sync.WaitGroup
	for p := range numP {
		prodWg.Add(1)
		go func(base int) {
			defer prodWg.Done()
			for i := range perP {
				v := base + i
				q.Enqueue(&v)
				mu.Lock()
				produced++
				mu.Unlock()
			}
		}(p * perP)
	}

	var consWg sync.WaitGroup
	for range numC {
		consWg.Add(1)
		go func() {
			defer consWg.Done()
			for {
				mu.Lock()
				done := consumed >= target
				mu.Unlock()
				if done {
					return
				}
				v, err := q.TryDequeue()
				if bbq.IsClosed(err) {
					return
				}
				if err != nil {
					time.Sleep(time.Millisecond)
					continue
				}
				if *v < 0 || *v >= target {
					t.Errorf("value out of range: %d", *v)
				}
				mu.Lock()
				consumed++
				mu.Unlock()
			}
		}()
	}

	prodWg.Wait()
	consWg.Wait()
	q.Shutdown()

	for {
		if _, err := q.Dequeue(); err != nil {
			break
		}
		mu.Lock()
		consumed++
		mu.Unlock()
	}

	if produced != target {
		t.Fatalf("produced %d, want %d", produced, target)
	}
	if consumed != target {
		t.Fatalf("consumed %d, want %d", consumed, target)
	}
	if !q.IsEmpty() {
		t.Fatal("queue not empty after final drain")
	}
	q.Destroy()
}

// TestBlockingProducerConsumer checks for loss and duplication when all
// producers and consumers use the blocking calls, with consumers exiting on
// ErrClosed after the producers finish.
func TestBlockingProducerConsumer(t *testing.T) {
	if bbq.RaceEnabled {
		t.Skip("skip: shares atomix counters across goroutines")
	}

	const (
		numP = 8
		perP = 5000
		numC = 8
	)
	total := numP * perP

	q := bbq.New[int](16)
	seen := make([]atomix.Int32, total)
	var consumed atomix.Int64

	var consWg sync.WaitGroup
	for range numC {
		consWg.Add(1)
		go func() {
			defer consWg.Done()
			for v := range q.All() {
				seen[v].Add(1)
				consumed.Add(1)
			}
		}()
	}

	var prodWg sync.WaitGroup
	for p := range numP {
		prodWg.Add(1)
		go func(id int) {
			defer prodWg.Done()
			for i := range perP {
				q.Enqueue(id*perP + i)
			}
		}(p)
	}

	prodWg.Wait()
	waitForCount(t, 10*time.Second, &consumed, int64(total), "consumers draining")
	q.Drain()
	consWg.Wait()

	var missing, duplicates int
	for i := range total {
		switch n := seen[i].Load(); {
		case n == 0:
			missing++
		case n > 1:
			duplicates++
		}
	}
	if missing != 0 || duplicates != 0 {
		t.Fatalf("missing=%d duplicates=%d", missing, duplicates)
	}
}

// TestPerProducerOrder checks that each producer's elements reach a single
// consumer in the order that producer enqueued them.
func TestPerProducerOrder(t *testing.T) {
	const (
		numP = 4
		perP = 2000
	)

	type item struct {
		producer int
		seq      int
	}

	q := bbq.New[item](4)
	var prodWg sync.WaitGroup
	for p := range numP {
		prodWg.Add(1)
		go func(id int) {
			defer prodWg.Done()
			for i := range perP {
				q.Enqueue(item{id, i})
			}
		}(p)
	}
	go func() {
		prodWg.Wait()
		q.Shutdown()
	}()

	next := make([]int, numP)
	for it := range q.All() {
		if it.seq != next[it.producer] {
			t.Fatalf("producer %d: got seq %d, want %d", it.producer, it.seq, next[it.producer])
		}
		next[it.producer]++
	}
	for p, n := range next {
		if n != perP {
			t.Fatalf("producer %d: received %d, want %d", p, n, perP)
		}
	}
}

// TestShutdownUnderLoad shuts the queue down while producers and consumers
// are active and checks that everyone exits and nothing accepted is lost.
func TestShutdownUnderLoad(t *testing.T) {
	const workers = 4

	q := bbq.New[int](4)
	var (
		mu       sync.Mutex
		accepted int
		consumed int
	)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for {
				err := q.TryEnqueue(1)
				if bbq.IsClosed(err) {
					return
				}
				if err == nil {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
				q.Enqueue(0)
			}
		}()
		go func() {
			defer wg.Done()
			for v := range q.All() {
				mu.Lock()
				consumed += v
				mu.Unlock()
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	q.Shutdown()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(wakeLimit):
		t.Fatal("workers still running after Shutdown")
	}

	if accepted != consumed {
		t.Fatalf("accepted %d, consumed %d", accepted, consumed)
	}
}

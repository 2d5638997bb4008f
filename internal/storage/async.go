// ABOUTME: Asynchronous wrapper that performs backend writes in the background.
// ABOUTME: Write failures are reported through a handler instead of the caller.

package storage

import (
	"fmt"
	"sync"
)

type write struct {
	key   string
	value []byte
}

// Async queues writes to an inner backend and applies them in order on a
// single goroutine. Set never blocks on the inner backend.
type Async struct {
	inner   Backend
	onError func(error)

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []write
	busy   bool
	closed bool
	done   chan struct{}
}

// NewAsync starts the writer goroutine. onError may be nil, in which case
// failures are dropped.
func NewAsync(inner Backend, onError func(error)) *Async {
	a := &Async{
		inner:   inner,
		onError: onError,
		done:    make(chan struct{}),
	}
	a.cond = sync.NewCond(&a.mu)
	go a.run()
	return a
}

func (a *Async) run() {
	defer close(a.done)

	a.mu.Lock()
	for {
		for len(a.queue) == 0 && !a.closed {
			a.cond.Wait()
		}
		if len(a.queue) == 0 {
			a.mu.Unlock()
			return
		}
		w := a.queue[0]
		a.queue = a.queue[1:]
		a.busy = true
		a.mu.Unlock()

		if err := a.inner.Set(w.key, w.value); err != nil && a.onError != nil {
			a.onError(fmt.Errorf("write %s: %w", w.key, err))
		}

		a.mu.Lock()
		a.busy = false
		a.cond.Broadcast()
	}
}

// Set enqueues the write and returns immediately.
func (a *Async) Set(key string, value []byte) error {
	val := make([]byte, len(value))
	copy(val, value)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}
	a.queue = append(a.queue, write{key: key, value: val})
	a.cond.Broadcast()
	return nil
}

// Get waits for queued writes so reads observe them.
func (a *Async) Get(key string) ([]byte, error) {
	a.Flush()
	return a.inner.Get(key)
}

// Flush blocks until every queued write has been attempted.
func (a *Async) Flush() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for len(a.queue) > 0 || a.busy {
		a.cond.Wait()
	}
}

// Pending returns the number of writes not yet attempted.
func (a *Async) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := len(a.queue)
	if a.busy {
		n++
	}
	return n
}

// Close drains the queue, stops the writer, and closes the inner backend.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.cond.Broadcast()
	a.mu.Unlock()

	<-a.done
	return a.inner.Close()
}

// Unwrap returns the wrapped backend.
func (a *Async) Unwrap() Backend {
	return a.inner
}

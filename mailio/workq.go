package mailio

import (
	"sync"
)

// work is a slot in the ring of a WorkQueue.
type work[T, R any] struct {
	in  T
	out R
	err error

	i    int
	done bool
}

// WorkQueue prepares items concurrently with a pool of worker goroutines, and
// processes the results in the order the items were added. Used to parse many
// messages in parallel while writing the results in input order.
type WorkQueue[T, R any] struct {
	ring  []work[T, R]
	start int
	n     int

	wg   sync.WaitGroup // For waiting for workers to stop.
	todo chan work[T, R]
	done chan work[T, R]

	process func(in T, out R, err error) error
}

// NewWorkQueue starts "procs" goroutines calling prepare for added items. At
// most "size" items (e.g. 2*procs) are in the queue. Results are passed to
// process in the order the items were added, along with the error from
// prepare, on the goroutine calling Add and Finish. An error from process stops
// processing and is returned by Add or Finish.
func NewWorkQueue[T, R any](procs, size int, prepare func(T) (R, error), process func(in T, out R, err error) error) *WorkQueue[T, R] {
	wq := &WorkQueue[T, R]{
		ring:    make([]work[T, R], size),
		todo:    make(chan work[T, R], size), // Scheduling never blocks.
		done:    make(chan work[T, R], size), // Sending a result never blocks.
		process: process,
	}

	wq.wg.Add(procs)
	for i := 0; i < procs; i++ {
		go func() {
			defer wq.wg.Done()
			for w := range wq.todo {
				w.out, w.err = prepare(w.in)
				wq.done <- w
			}
		}()
	}

	return wq
}

// Add schedules an item. If the queue is full, Add waits for the item at the
// head of the queue to be prepared and processes as many prepared items as
// possible.
func (wq *WorkQueue[T, R]) Add(in T) error {
	if wq.n == len(wq.ring) {
		for {
			w := <-wq.done
			wq.ring[w.i] = w
			if w.i == wq.start {
				break
			}
		}
		if err := wq.processHead(); err != nil {
			return err
		}
	}

	wq.todo <- work[T, R]{in: in, i: (wq.start + wq.n) % len(wq.ring), done: true}
	wq.n++
	return nil
}

// processHead processes prepared items at the head of the queue.
func (wq *WorkQueue[T, R]) processHead() error {
	for wq.n > 0 && wq.ring[wq.start].done {
		w := wq.ring[wq.start]
		wq.ring[wq.start] = work[T, R]{}
		wq.start = (wq.start + 1) % len(wq.ring)
		wq.n--

		if err := wq.process(w.in, w.out, w.err); err != nil {
			return err
		}
	}
	return nil
}

// Finish waits for the remaining items to be prepared and processes them.
func (wq *WorkQueue[T, R]) Finish() error {
	var err error
	for wq.n > 0 && err == nil {
		w := <-wq.done
		wq.ring[w.i] = w
		err = wq.processHead()
	}
	return err
}

// Stop shuts down the worker goroutines and waits until they have returned.
// Stop must always be called, otherwise the goroutines never stop.
func (wq *WorkQueue[T, R]) Stop() {
	close(wq.todo)
	wq.wg.Wait()
}

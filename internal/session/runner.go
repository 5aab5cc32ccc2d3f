package session

import (
	"sync"
	"time"
)

// Runner is a cancellable repeating task: it invokes fn once per
// interval until fn returns false or Stop is called. Each timer a
// session owns gets its own Runner, and the handle must be stopped
// exactly once when the owning state ends. An unstopped runner is a
// leaked goroutine.
type Runner struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewRunner starts the task.
func NewRunner(interval time.Duration, fn func() bool) *Runner {
	r := &Runner{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				if !fn() {
					return
				}
			}
		}
	}()

	return r
}

// Stop cancels the task. It is idempotent and waits for the task
// goroutine to exit.
func (r *Runner) Stop() {
	r.once.Do(func() { close(r.stop) })
	<-r.done
}

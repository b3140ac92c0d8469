// internal/task/dispatcher.go
package task

import (
	"log/slog"
	"sync"
)

// Dispatcher runs side-effect tasks (email sends) off the request path.
// Enqueued work is best-effort: failures are logged and never reach the
// caller, and a full queue drops the task rather than block a request.
type Dispatcher struct {
	tasks chan func() error
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(buffer, workers int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	if workers <= 0 {
		workers = 1
	}

	d := &Dispatcher{tasks: make(chan func() error, buffer)}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}

	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for task := range d.tasks {
		if err := task(); err != nil {
			slog.Error("background task failed", "error", err)
		}
	}
}

// Enqueue schedules a task after the caller's transaction has
// committed. Returns false if the queue is full and the task was
// dropped.
func (d *Dispatcher) Enqueue(name string, task func() error) bool {
	select {
	case d.tasks <- task:
		return true
	default:
		slog.Warn("task queue full, dropping task", "task", name)
		return false
	}
}

// Close stops accepting tasks and waits for in-flight ones to finish.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.tasks)
	})
	d.wg.Wait()
}

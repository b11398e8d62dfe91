package task

import (
	"sync/atomic"
)

// Task is a future that only runs for its side effects.
type Task = Future[struct{}]

// waker marks a task runnable.  It is woken from interrupt context, so the
// flag is the only thing it touches.
type waker struct {
	ready atomic.Bool
}

func (w *waker) Wake() { w.ready.Store(true) }

type entry struct {
	t    Task
	w    waker
	done bool
}

// Executor runs tasks cooperatively on a single goroutine.  Tasks are only
// polled after they were woken.  The number of tasks is fixed when the
// executor is created.
type Executor struct {
	// Idle is called whenever no task is runnable, e.g. to wait for the
	// next interrupt.  If nil the executor spins.
	Idle func()

	tasks []entry
}

// NewExecutor returns an executor for up to capacity spawned tasks.
func NewExecutor(capacity int) *Executor {
	return &Executor{tasks: make([]entry, 0, capacity)}
}

// Spawn adds t to the executor.  It is polled the next time the executor
// runs.
func (e *Executor) Spawn(t Task) {
	if len(e.tasks) == cap(e.tasks) {
		panic("task: executor full")
	}
	e.tasks = e.tasks[:len(e.tasks)+1]
	p := &e.tasks[len(e.tasks)-1]
	p.t = t
	p.w.ready.Store(true)
}

// RunOnce polls every runnable task once and reports whether there was any.
func (e *Executor) RunOnce() (polled bool) {
	for i := range e.tasks {
		p := &e.tasks[i]
		if p.done || !p.w.ready.Swap(false) {
			continue
		}
		polled = true
		if _, ok := p.t.Poll(&p.w); ok {
			p.done = true
		}
	}
	return
}

// Pending returns the number of spawned tasks that haven't finished yet.
func (e *Executor) Pending() (n int) {
	for i := range e.tasks {
		if !e.tasks[i].done {
			n++
		}
	}
	return
}

// Run runs until all spawned tasks have finished.
func (e *Executor) Run() {
	for e.Pending() > 0 {
		if !e.RunOnce() {
			e.idle()
		}
	}
}

func (e *Executor) idle() {
	if e.Idle != nil {
		e.Idle()
	}
}

// BlockOn runs f and all spawned tasks until f is ready and returns its
// result.
func BlockOn[T any](e *Executor, f Future[T]) T {
	var w waker
	w.ready.Store(true)
	for {
		polled := false
		if w.ready.Swap(false) {
			polled = true
			if v, ok := f.Poll(&w); ok {
				return v
			}
		}
		if e.RunOnce() {
			polled = true
		}
		if !polled {
			e.idle()
		}
	}
}

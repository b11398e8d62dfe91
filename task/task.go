// Package task defines how suspendable operations are polled and provides a
// small cooperative executor to run them.
//
// A Future, Stream or Sink is polled with the Waker of the task polling it.  If
// it can't make progress it arranges for the waker to be woken, usually by
// installing it into an interrupt vector, and reports that it's pending.
package task

import (
	"errors"

	"github.com/clktmr/asyncirq/irq"
)

// ErrPolledAfterCompletion is the panic value when a future is polled again
// after it returned its result.
var ErrPolledAfterCompletion = errors.New("task: polled after completion")

// Future is a single value that becomes ready at some point.  Once ready is
// true the future must not be polled again.
//
// The readiness flag always comes last.  Futures that only report success or
// failure are Future[error], so their Poll returns (err error, ready bool).
type Future[T any] interface {
	Poll(w irq.Waker) (v T, ready bool)
}

// Stream is a sequence of values.  An error is returned as an item of its
// own.
type Stream[T any] interface {
	PollNext(w irq.Waker) (v T, ready bool, err error)
}

// Sink accepts values one at a time.  StartSend must only be called after
// PollReady returned true.
type Sink[T any] interface {
	PollReady(w irq.Waker) (bool, error)
	StartSend(item T) error
	PollFlush(w irq.Waker) (bool, error)
	PollClose(w irq.Waker) (bool, error)
}

// PollFunc adapts a function to the Future interface.
type PollFunc[T any] func(w irq.Waker) (T, bool)

func (f PollFunc[T]) Poll(w irq.Waker) (T, bool) { return f(w) }

// Completion is the capability a peripheral needs to drive a OneShot.
type Completion[T any] interface {
	// Complete checks the peripheral's own completion flag.  If it's set,
	// the flag is cleared and the result returned.
	Complete() (v T, ok bool)
}

// OneShot waits for a single hardware event signalled by an interrupt vector.
type OneShot[T any] struct {
	c    Completion[T]
	vec  *irq.Vector
	slot int
	done bool
}

// NewOneShot returns a future that completes with c and is woken by slot of
// vec.
func NewOneShot[T any](c Completion[T], vec *irq.Vector, slot int) OneShot[T] {
	return OneShot[T]{c: c, vec: vec, slot: slot}
}

func (f *OneShot[T]) Poll(w irq.Waker) (v T, ready bool) {
	if f.done {
		panic(ErrPolledAfterCompletion)
	}
	if v, ready = f.c.Complete(); ready {
		f.done = true
		return
	}
	f.vec.Install(f.slot, w)
	return
}

// Done reports whether the future has returned its result.
func (f *OneShot[T]) Done() bool {
	return f.done
}

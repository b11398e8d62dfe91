package irq

import "github.com/clktmr/asyncirq/debug"

// MaxSlots is the number of logical sources that can share one vector.
const MaxSlots = 8

// slot holds the continuation of at most one suspended task.
type slot struct {
	waker Waker
}

// Vector is an interrupt line together with the wakers waiting for it.  A
// vector that multiplexes several sources, e.g. a group of external pins, has
// one slot per source.
type Vector struct {
	irq   IRQ
	ctrl  Controller
	n     int
	slots [MaxSlots]slot
}

// IRQ returns the interrupt line of the vector.
func (v *Vector) IRQ() IRQ {
	return v.irq
}

// Slots returns the number of slots of the vector.
func (v *Vector) Slots() int {
	return v.n
}

// Install registers w to be woken by the next interrupt of the vector.  Any
// waker previously installed in the slot is replaced.
//
// The vector is masked while the slot is written.  Pending interrupts are
// discarded before unmasking, which doesn't lose events: either the event is
// already visible in the peripheral's flag, which the caller checked before
// calling Install, or the peripheral keeps asserting the line and pends it
// again.  After unmasking the handler may run at any time, including before
// Install returns.
func (v *Vector) Install(idx int, w Waker) {
	if idx < 0 || idx >= v.n {
		panic("irq: slot out of range")
	}
	debug.Assert(w != nil, "installing nil waker")

	v.ctrl.Mask(v.irq)
	fence()
	v.slots[idx].waker = w
	v.ctrl.Unpend(v.irq)
	fence()
	v.ctrl.Unmask(v.irq)
}

// Take removes and returns the waker in slot idx.  Only the vector's handler
// or a caller holding the vector masked may use it.
//
//go:nosplit
func (v *Vector) Take(idx int) (w Waker) {
	fence()
	w = v.slots[idx].waker
	v.slots[idx].waker = nil
	return
}

// Dispatch is the interrupt handler of the vector.  It wakes every installed
// waker and masks the vector until the next Install.
//
// On a shared vector all slots are woken, regardless of which source fired.
// Futures recheck their own peripheral flag and install again on a spurious
// wakeup.
//
//go:nosplit
func (v *Vector) Dispatch() {
	for i := 0; i < v.n; i++ {
		if w := v.Take(i); w != nil {
			w.Wake()
		}
	}
	v.ctrl.Mask(v.irq)
}

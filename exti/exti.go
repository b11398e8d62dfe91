// Package exti lets tasks wait for edges on external interrupt pins.
//
// Pins 0 to 4 have a vector each.  Pins 5 to 9 and 10 to 15 share a vector
// per group, with one slot per pin number.  The port of a pin doesn't matter,
// so PA7 and PB7 can't wait at the same time.
package exti

import (
	"github.com/clktmr/asyncirq/irq"
	"github.com/clktmr/asyncirq/task"
)

// Pin is an input pin that can be an external interrupt source.
type Pin interface {
	// Number is the pin's number within its port, 0 to 15.
	Number() int
	// MakeInterruptSource routes the pin to its EXTI line.
	MakeInterruptSource()
	// EnableInterrupt unmasks the pin's EXTI line.
	EnableInterrupt()
	// CheckInterrupt reports the pin's pending bit.
	CheckInterrupt() bool
	// ClearInterruptPendingBit acknowledges a detected edge.
	ClearInterruptPendingBit()
}

const (
	group5  = 5 // first pin of EXTI9_5
	group10 = 10
	numPins = 16
)

// Lines are the EXTI vectors.  There must only be one Lines per registry.
type Lines struct {
	single [group5]*irq.Vector
	low    *irq.Vector // pins 5 to 9
	high   *irq.Vector // pins 10 to 15
}

// NewLines binds the EXTI vectors in r.
func NewLines(r *irq.Registry) *Lines {
	l := &Lines{}
	for i, n := range [group5]irq.IRQ{irq.EXTI0, irq.EXTI1, irq.EXTI2, irq.EXTI3, irq.EXTI4} {
		l.single[i] = r.Vector(n, 1)
	}
	l.low = r.Vector(irq.EXTI9to5, group10-group5)
	l.high = r.Vector(irq.EXTI15to10, numPins-group10)
	return l
}

// Route returns the vector and slot waking tasks waiting on pin number n.
func (l *Lines) Route(n int) (*irq.Vector, int) {
	switch {
	case n < 0 || n >= numPins:
		panic("exti: invalid pin number")
	case n < group5:
		return l.single[n], 0
	case n < group10:
		return l.low, n - group5
	default:
		return l.high, n - group10
	}
}

// AsyncPin wraps a pin configured as interrupt source.
type AsyncPin[P Pin] struct {
	pin  P
	vec  *irq.Vector
	slot int
}

// NewPin makes pin an interrupt source and enables its interrupt.  Edge
// selection is left to the caller, see Pin.
func NewPin[P Pin](pin P, l *Lines) *AsyncPin[P] {
	pin.MakeInterruptSource()
	pin.EnableInterrupt()
	vec, slot := l.Route(pin.Number())
	return &AsyncPin[P]{pin: pin, vec: vec, slot: slot}
}

// Pin returns the wrapped pin.
func (p *AsyncPin[P]) Pin() P {
	return p.pin
}

// Trigger is the future returned by AsyncPin.Trigger.
type Trigger = task.OneShot[struct{}]

// Trigger returns a future that completes on the next detected edge, or
// immediately if an edge is pending already.
func (p *AsyncPin[P]) Trigger() Trigger {
	return task.NewOneShot[struct{}]((*edge[P])(p), p.vec, p.slot)
}

type edge[P Pin] AsyncPin[P]

func (e *edge[P]) Complete() (v struct{}, ok bool) {
	if !e.pin.CheckInterrupt() {
		return v, false
	}
	e.pin.ClearInterruptPendingBit()
	return v, true
}

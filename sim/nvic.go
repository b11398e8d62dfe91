package sim

import (
	"fmt"

	"github.com/clktmr/asyncirq/internal/log"
	"github.com/clktmr/asyncirq/irq"
)

// Op is an access to the interrupt controller.
type Op int

const (
	OpMask Op = iota
	OpUnpend
	OpUnmask
)

func (op Op) String() string {
	switch op {
	case OpMask:
		return "mask"
	case OpUnpend:
		return "unpend"
	case OpUnmask:
		return "unmask"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Number of consecutive handler runs after which a line is considered stuck.
const stormLimit = 1000

type line struct {
	masked  bool
	latched bool
	active  bool
	sources []func() bool
	fired   int
}

// NVIC models a nested vectored interrupt controller without priorities.
//
// A line is pending if its latched flag is set or any of its level sources is
// asserted, so unpending an asserted line has no effect.  Pending unmasked
// lines are taken whenever the controller is accessed or Service is called,
// which models an interrupt arriving between two instructions.  A line
// doesn't preempt its own handler.
type NVIC struct {
	// Handler is called for every interrupt taken.
	Handler func(irq.IRQ)

	// OnAccess, if set, is called after every Mask, Unpend and Unmask,
	// before pending interrupts are taken.
	OnAccess func(op Op, n irq.IRQ)

	lines [irq.MaxVectors]line
}

// NewNVIC returns a controller with all lines masked.
func NewNVIC() *NVIC {
	c := &NVIC{}
	for i := range c.lines {
		c.lines[i].masked = true
	}
	return c
}

func (c *NVIC) line(n irq.IRQ) *line {
	if n < 0 || int(n) >= len(c.lines) {
		panic("sim: irq out of range")
	}
	return &c.lines[n]
}

func (c *NVIC) Mask(n irq.IRQ) {
	c.line(n).masked = true
	c.access(OpMask, n)
}

func (c *NVIC) Unpend(n irq.IRQ) {
	c.line(n).latched = false
	c.access(OpUnpend, n)
}

func (c *NVIC) Unmask(n irq.IRQ) {
	c.line(n).masked = false
	c.access(OpUnmask, n)
}

func (c *NVIC) access(op Op, n irq.IRQ) {
	if c.OnAccess != nil {
		c.OnAccess(op, n)
	}
	c.Service()
}

// Connect adds a level triggered source to line n.
func (c *NVIC) Connect(n irq.IRQ, asserted func() bool) {
	l := c.line(n)
	l.sources = append(l.sources, asserted)
}

// Pend latches the pending flag of line n, like a software triggered
// interrupt, and takes it if it is unmasked.
func (c *NVIC) Pend(n irq.IRQ) {
	c.line(n).latched = true
	c.Service()
}

// Pending reports whether line n is pending.
func (c *NVIC) Pending(n irq.IRQ) bool {
	l := c.line(n)
	if l.latched {
		return true
	}
	for _, asserted := range l.sources {
		if asserted() {
			return true
		}
	}
	return false
}

// Masked reports whether line n is masked.
func (c *NVIC) Masked(n irq.IRQ) bool {
	return c.line(n).masked
}

// Fired returns how often the handler of line n was run.
func (c *NVIC) Fired(n irq.IRQ) int {
	return c.line(n).fired
}

// Service takes all pending unmasked interrupts.
func (c *NVIC) Service() {
	for taken := 0; ; taken++ {
		n, ok := c.next()
		if !ok {
			return
		}
		if taken >= stormLimit {
			panic(fmt.Sprintf("sim: interrupt storm on irq %d", n))
		}
		c.take(n)
	}
}

func (c *NVIC) next() (irq.IRQ, bool) {
	for i := range c.lines {
		l := &c.lines[i]
		if !l.masked && !l.active && c.Pending(irq.IRQ(i)) {
			return irq.IRQ(i), true
		}
	}
	return 0, false
}

func (c *NVIC) take(n irq.IRQ) {
	l := c.line(n)
	l.latched = false
	l.active = true
	l.fired++
	log.Debug(log.ComponentNVIC, "interrupt", "irq", int(n), "count", l.fired)
	if c.Handler == nil {
		panic("unhandled interrupt")
	}
	c.Handler(n)
	l.active = false
}

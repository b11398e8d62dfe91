package sim

import (
	"fmt"

	"github.com/clktmr/asyncirq/internal/log"
	"github.com/clktmr/asyncirq/irq"
)

// Edge selects which transitions of a pin are detected.
type Edge uint8

const (
	Rising Edge = 1 << iota
	Falling
	RisingFalling = Rising | Falling
)

// EXTI is the external interrupt controller.  Each of its 16 lines can be
// routed to the pin with the same number of one port.
type EXTI struct {
	nvic    *NVIC
	pending uint16
	mask    uint16
	rising  uint16
	falling uint16
	route   [16]byte
}

func newEXTI(nvic *NVIC) *EXTI {
	e := &EXTI{nvic: nvic}
	for i, n := range [...]irq.IRQ{irq.EXTI0, irq.EXTI1, irq.EXTI2, irq.EXTI3, irq.EXTI4} {
		e.connect(n, 1<<i)
	}
	e.connect(irq.EXTI9to5, 0x03e0)
	e.connect(irq.EXTI15to10, 0xfc00)
	return e
}

func (e *EXTI) connect(n irq.IRQ, lines uint16) {
	e.nvic.Connect(n, func() bool { return e.pending&e.mask&lines != 0 })
}

// Pin returns pin n of port, e.g. Pin('A', 7) for PA7.
func (e *EXTI) Pin(port byte, n int) *Pin {
	if n < 0 || n > 15 {
		panic("sim: invalid pin number")
	}
	return &Pin{exti: e, port: port, n: n}
}

// Pin is a GPIO input that can be routed to its EXTI line.  It implements
// exti.Pin.
type Pin struct {
	exti  *EXTI
	port  byte
	n     int
	level bool
}

func (p *Pin) bit() uint16 { return 1 << p.n }

func (p *Pin) Number() int { return p.n }

func (p *Pin) MakeInterruptSource() {
	p.exti.route[p.n] = p.port
}

func (p *Pin) EnableInterrupt() {
	p.exti.mask |= p.bit()
}

// DisableInterrupt masks the pin's EXTI line.
func (p *Pin) DisableInterrupt() {
	p.exti.mask &^= p.bit()
}

// TriggerOnEdge selects the detected edges.
func (p *Pin) TriggerOnEdge(edge Edge) {
	p.exti.rising &^= p.bit()
	p.exti.falling &^= p.bit()
	if edge&Rising != 0 {
		p.exti.rising |= p.bit()
	}
	if edge&Falling != 0 {
		p.exti.falling |= p.bit()
	}
}

func (p *Pin) CheckInterrupt() bool {
	return p.exti.pending&p.bit() != 0
}

func (p *Pin) ClearInterruptPendingBit() {
	p.exti.pending &^= p.bit()
}

// Level returns the input level.
func (p *Pin) Level() bool {
	return p.level
}

// Set drives the input to level.  A selected edge on a routed pin sets the
// line's pending bit; a resulting interrupt is taken immediately.
func (p *Pin) Set(level bool) {
	if level == p.level {
		return
	}
	p.level = level

	e := p.exti
	if e.route[p.n] != p.port {
		return
	}
	sel := e.falling
	if level {
		sel = e.rising
	}
	if sel&p.bit() == 0 {
		return
	}
	e.pending |= p.bit()
	log.Debug(log.ComponentEXTI, "edge", "pin", p.String(), "level", level)
	e.nvic.Service()
}

// Pulse drives a high then low level.
func (p *Pin) Pulse() {
	p.Set(true)
	p.Set(false)
}

func (p *Pin) String() string {
	return fmt.Sprintf("P%c%d", p.port, p.n)
}

// LED is a push-pull output.
type LED struct {
	on      bool
	toggles int
}

func (l *LED) Toggle() {
	l.on = !l.on
	l.toggles++
}

func (l *LED) On() bool { return l.on }

// Toggles returns how often the LED was toggled.
func (l *LED) Toggles() int { return l.toggles }

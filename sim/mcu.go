// Package sim simulates the parts of a single-core microcontroller the
// interrupt driven futures depend on: interrupt controller, count-down timers,
// DMA served USARTs and external interrupt pins.
//
// Everything runs on the caller's goroutine.  Hardware time only advances with
// Clock.Tick, and interrupt handlers run synchronously as soon as a line is
// pending and unmasked.
package sim

import (
	"fmt"

	"github.com/clktmr/asyncirq/irq"
	"github.com/clktmr/asyncirq/serial"
)

// MCU bundles the simulated hardware with the vector registry it dispatches
// to.
type MCU struct {
	NVIC     *NVIC
	Clock    *Clock
	Vectors  *irq.Registry
	EXTI     *EXTI
	TickRate uint32 // ticks per second
}

// DefaultTickRate is the tick rate of New.
const DefaultTickRate = 1000

// New returns a powered up MCU with all interrupts masked.
func New() *MCU {
	nvic := NewNVIC()
	m := &MCU{
		NVIC:     nvic,
		Clock:    NewClock(nvic),
		Vectors:  irq.NewRegistry(nvic),
		TickRate: DefaultTickRate,
	}
	nvic.Handler = m.Vectors.Handle
	m.EXTI = newEXTI(nvic)
	return m
}

// Timer returns a new count-down timer interrupting on line n.
func (m *MCU) Timer(n irq.IRQ) *Timer {
	t := newTimer(fmt.Sprintf("irq%d", int(n)))
	m.NVIC.Connect(n, t.asserted)
	m.Clock.Add(t)
	return t
}

// USART returns a new serial port with DMA channels interrupting on the lines
// of u.
func (m *MCU) USART(u serial.USART) *USART {
	p := &USART{name: fmt.Sprintf("dma%d/%d", int(u.Tx), int(u.Rx))}
	p.Tx = &TxChannel{num: channel(u.Tx), clock: m.Clock, out: p.transmit}
	p.Rx = &RxChannel{num: channel(u.Rx), in: p.receive}
	m.NVIC.Connect(u.Tx, p.Tx.asserted)
	m.NVIC.Connect(u.Rx, p.Rx.asserted)
	m.Clock.Add(p.Tx)
	m.Clock.Add(p.Rx)
	return p
}

func channel(n irq.IRQ) int {
	return int(n-irq.DMA1Channel1) + 1
}

// Idle waits for the next interrupt by advancing the clock one tick.  Use it
// as task.Executor.Idle.
func (m *MCU) Idle() {
	m.Clock.Tick()
}

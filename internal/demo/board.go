package demo

import (
	"github.com/clktmr/asyncirq/exti"
	"github.com/clktmr/asyncirq/internal/log"
	"github.com/clktmr/asyncirq/irq"
	"github.com/clktmr/asyncirq/serial"
	"github.com/clktmr/asyncirq/sim"
	"github.com/clktmr/asyncirq/task"
	"github.com/clktmr/asyncirq/timer"
)

// FrameSize is the size of the serial buffers, one DMA frame.
const FrameSize = 8

// Board is a blue pill like board: an LED on PC13, a button on PA7, TIM2 and
// USART3 with DMA.
type Board struct {
	MCU    *sim.MCU
	LED    *sim.LED
	Button *sim.Pin
	Serial *sim.USART

	tim   *sim.Timer
	lines *exti.Lines
}

// NewBoard returns a board whose clock ticks tickRate times per second.
func NewBoard(tickRate uint32) *Board {
	m := sim.New()
	m.TickRate = tickRate
	b := &Board{
		MCU:    m,
		LED:    &sim.LED{},
		Button: m.EXTI.Pin('A', 7),
		Serial: m.USART(serial.USART3),
		tim:    m.Timer(irq.TIM2),
		lines:  exti.NewLines(m.Vectors),
	}
	b.Button.TriggerOnEdge(sim.RisingFalling)
	return b
}

// Timer returns TIM2, counting at the tick rate.
func (b *Board) Timer() *timer.AsyncTimer[uint32] {
	return timer.New[uint32](b.tim, b.MCU.TickRate, b.MCU.Vectors.Vector(irq.TIM2, 1))
}

// TxSink returns a sink transmitting over USART3.
func (b *Board) TxSink() *serial.TxSink {
	return serial.USART3.TxSink(b.MCU.Vectors, make([]byte, FrameSize), b.Serial.Tx)
}

// RxStream returns a stream receiving frames over USART3.
func (b *Board) RxStream() *serial.RxStream {
	bufs := &[2][]byte{make([]byte, FrameSize), make([]byte, FrameSize)}
	return serial.USART3.RxStream(b.MCU.Vectors, bufs, make([]byte, FrameSize), b.Serial.Rx)
}

// ButtonPin returns the button as interrupt source.
func (b *Board) ButtonPin() *exti.AsyncPin[*sim.Pin] {
	return exti.NewPin(b.Button, b.lines)
}

// Run runs e until the clock reached ticks or all tasks finished.
func (b *Board) Run(e *task.Executor, ticks uint64) {
	clock := b.MCU.Clock
	for clock.Now() < ticks && e.Pending() > 0 {
		if !e.RunOnce() {
			b.MCU.Idle()
		}
	}
	log.Info(log.ComponentDemo, "stopped", "tick", clock.Now(), "pending", e.Pending(), "led", b.LED.On(), "toggles", b.LED.Toggles())
}

// Package demo contains small programs showing the interrupt driven futures
// at work, and the simulated board they run on.
package demo

import (
	"errors"

	"golang.org/x/exp/constraints"

	"github.com/clktmr/asyncirq/exti"
	"github.com/clktmr/asyncirq/internal/log"
	"github.com/clktmr/asyncirq/irq"
	"github.com/clktmr/asyncirq/serial"
	"github.com/clktmr/asyncirq/task"
	"github.com/clktmr/asyncirq/timer"
)

// Toggler is an output like an LED.
type Toggler interface {
	Toggle()
}

// Heartbeat blinks an LED in a heartbeat rhythm forever.
type Heartbeat[C constraints.Unsigned] struct {
	led     Toggler
	timer   *timer.AsyncTimer[C]
	step    int
	delay   timer.Delay
	waiting bool
	beats   int
}

// Delays between toggles, in Hz.
var rhythm = [...]uint32{10, 4, 10, 2}

func NewHeartbeat[C constraints.Unsigned](led Toggler, t *timer.AsyncTimer[C]) *Heartbeat[C] {
	return &Heartbeat[C]{led: led, timer: t}
}

// Beats returns the number of completed rhythms.
func (h *Heartbeat[C]) Beats() int {
	return h.beats
}

func (h *Heartbeat[C]) Poll(w irq.Waker) (struct{}, bool) {
	for {
		if !h.waiting {
			h.led.Toggle()
			h.delay = h.timer.Hz(rhythm[h.step])
			h.waiting = true
		}
		if _, ok := h.delay.Poll(w); !ok {
			return struct{}{}, false
		}
		h.waiting = false
		if h.step = (h.step + 1) % len(rhythm); h.step == 0 {
			h.beats++
			log.Debug(log.ComponentDemo, "beat", "n", h.beats)
		}
	}
}

// Echo sends everything received back.  It only ends on a receive or
// transmit error.
type Echo struct {
	fwd task.ForwardFuture[[]byte]
	err error
}

func NewEcho(tx *serial.TxSink, rx *serial.RxStream) *Echo {
	return &Echo{fwd: task.Forward[[]byte](tx, rx)}
}

// Err returns the error that ended the echo.
func (e *Echo) Err() error {
	return e.err
}

func (e *Echo) Poll(w irq.Waker) (struct{}, bool) {
	err, done := e.fwd.Poll(w)
	if done {
		e.err = err
		log.Error(log.ComponentDemo, "echo stopped", "err", err)
	}
	return struct{}{}, done
}

// Toggle toggles an LED on every edge detected on a pin.
type Toggle[P exti.Pin] struct {
	pin     *exti.AsyncPin[P]
	led     Toggler
	trig    exti.Trigger
	waiting bool
	edges   int
}

func NewToggle[P exti.Pin](pin *exti.AsyncPin[P], led Toggler) *Toggle[P] {
	return &Toggle[P]{pin: pin, led: led}
}

// Edges returns the number of edges seen.
func (t *Toggle[P]) Edges() int {
	return t.edges
}

func (t *Toggle[P]) Poll(w irq.Waker) (struct{}, bool) {
	for {
		if !t.waiting {
			t.trig = t.pin.Trigger()
			t.waiting = true
		}
		if _, ok := t.trig.Poll(w); !ok {
			return struct{}{}, false
		}
		t.waiting = false
		t.edges++
		t.led.Toggle()
	}
}

// Hello sends the same message a number of times and then releases its sink.
type Hello struct {
	sink  *serial.TxSink
	msg   []byte
	count int

	sent      int
	send      task.SendFuture[[]byte]
	sending   bool
	release   serial.ReleaseFuture
	releasing bool
	released  serial.Released
}

// NewHello returns a task sending msg count times over sink.  A count of zero
// sends forever.
func NewHello(sink *serial.TxSink, msg []byte, count int) *Hello {
	return &Hello{sink: sink, msg: msg, count: count}
}

// Sent returns the number of messages sent so far, including failed ones.
func (h *Hello) Sent() int {
	return h.sent
}

// Released returns what the sink owned once the task has finished.
func (h *Hello) Released() serial.Released {
	return h.released
}

func (h *Hello) Poll(w irq.Waker) (struct{}, bool) {
	for !h.releasing {
		if h.count > 0 && h.sent == h.count {
			h.release = h.sink.Release()
			h.releasing = true
			break
		}
		if !h.sending {
			h.send = task.Send[[]byte](h.sink, h.msg)
			h.sending = true
		}
		err, ok := h.send.Poll(w)
		if !ok {
			return struct{}{}, false
		}
		h.sending = false
		if errors.Is(err, serial.ErrItemTooLarge) {
			log.Error(log.ComponentDemo, "message doesn't fit", "len", len(h.msg))
			h.release = h.sink.Release()
			h.releasing = true
			break
		}
		if err != nil {
			log.Warn(log.ComponentDemo, "send failed", "n", h.sent, "err", err)
		}
		h.sent++
	}

	r, ok := h.release.Poll(w)
	if !ok {
		return struct{}{}, false
	}
	h.released = r
	log.Info(log.ComponentDemo, "hello done", "sent", h.sent)
	return struct{}{}, true
}

package sim

import (
	"fmt"

	"github.com/clktmr/asyncirq/dma"
	"github.com/clktmr/asyncirq/internal/log"
)

// TxChannel is a DMA channel feeding a transmitter one byte per tick.  It
// implements dma.Writer.
type TxChannel struct {
	num   int
	clock *Clock
	out   func(byte)

	buf       []byte
	pos       int
	busy      bool
	complete  bool
	errored   bool
	listening bool
	fault     bool

	// OnTransfer, if set, is called with every finished transfer.
	OnTransfer func(buf []byte, failed bool)

	transfers int
}

func (c *TxChannel) Listen() {
	c.listening = true
}

func (c *TxChannel) Write(buf []byte) {
	if c.busy {
		panic("sim: dma channel busy")
	}
	c.buf, c.pos = buf, 0
	c.busy = true
	c.complete, c.errored = false, false
}

func (c *TxChannel) Done() bool {
	return c.complete || c.errored
}

// Wait busy waits, advancing the clock, until the transfer is done.
func (c *TxChannel) Wait() (err error) {
	for c.busy {
		c.clock.Tick()
	}
	if c.errored {
		err = fmt.Errorf("dma1 channel %d: %w", c.num, dma.ErrTransfer)
	}
	c.complete, c.errored = false, false
	c.buf = nil
	return
}

// Fault makes the current or next transfer end with a transfer error.
func (c *TxChannel) Fault() {
	c.fault = true
}

// Transfers returns the number of finished transfers.
func (c *TxChannel) Transfers() int {
	return c.transfers
}

// Busy reports whether a transfer is running.
func (c *TxChannel) Busy() bool {
	return c.busy
}

func (c *TxChannel) asserted() bool {
	return c.listening && (c.complete || c.errored)
}

func (c *TxChannel) Tick(now uint64) {
	if !c.busy {
		return
	}
	if c.pos < len(c.buf) {
		c.out(c.buf[c.pos])
		c.pos++
	}
	if c.pos < len(c.buf) {
		return
	}

	c.busy = false
	c.transfers++
	if c.fault {
		c.fault = false
		c.errored = true
	} else {
		c.complete = true
	}
	log.Debug(log.ComponentDMA, "transfer done", "channel", c.num, "len", len(c.buf), "error", c.errored, "tick", now)
	if c.OnTransfer != nil {
		c.OnTransfer(c.buf, c.errored)
	}
}

// RxChannel is a DMA channel filling a circular double buffer from a receiver,
// one byte per tick.  It implements dma.CircularReader with the flag handling
// of the STM32F1 HAL.
type RxChannel struct {
	num int
	in  func() (byte, bool)

	bufs      *[2][]byte
	pos       int
	running   bool
	halfDone  bool
	fullDone  bool
	errored   bool
	listening bool
	readable  dma.Half
}

func (c *RxChannel) Listen() {
	c.listening = true
}

func (c *RxChannel) ReadCircular(bufs *[2][]byte) {
	if c.running {
		panic("sim: dma channel busy")
	}
	c.bufs, c.pos = bufs, 0
	c.running = true
	c.halfDone, c.fullDone, c.errored = false, false, false
	c.readable = dma.Second
}

func (c *RxChannel) ReadableHalf() (dma.Half, error) {
	if c.errored {
		return c.readable, fmt.Errorf("dma1 channel %d: %w", c.num, dma.ErrTransfer)
	}
	if c.halfDone && c.fullDone {
		return c.readable, fmt.Errorf("dma1 channel %d: %w", c.num, dma.ErrOverrun)
	}
	switch c.readable {
	case dma.First:
		if c.fullDone {
			c.fullDone = false
			c.readable = dma.Second
		}
	case dma.Second:
		if c.halfDone {
			c.halfDone = false
			c.readable = dma.First
		}
	}
	return c.readable, nil
}

func (c *RxChannel) Stop() *[2][]byte {
	bufs := c.bufs
	c.bufs = nil
	c.running = false
	c.halfDone, c.fullDone, c.errored = false, false, false
	return bufs
}

// Fault sets the transfer error flag.
func (c *RxChannel) Fault() {
	c.errored = true
}

// Running reports whether a circular transfer is active.
func (c *RxChannel) Running() bool {
	return c.running
}

func (c *RxChannel) asserted() bool {
	return c.listening && (c.halfDone || c.fullDone || c.errored)
}

func (c *RxChannel) Tick(now uint64) {
	if !c.running {
		return
	}
	b, ok := c.in()
	if !ok {
		return
	}

	half := len(c.bufs[0])
	c.bufs[c.pos/half][c.pos%half] = b
	c.pos++
	switch c.pos {
	case half:
		c.halfDone = true
		log.Debug(log.ComponentDMA, "half transfer", "channel", c.num, "tick", now)
	case 2 * half:
		c.fullDone = true
		c.pos = 0
		log.Debug(log.ComponentDMA, "transfer complete", "channel", c.num, "tick", now)
	}
}

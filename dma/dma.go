// Package dma describes the DMA channels the serial futures are built upon.
// Channel setup is left to the peripheral layer; this package only defines
// what a running channel has to report.
package dma

import "errors"

// Errors reported by a channel through Wait or ReadableHalf.
var (
	ErrOverrun  = errors.New("dma: overrun")
	ErrTransfer = errors.New("dma: transfer error")
)

// Half identifies one of the two regions of a circular transfer.
type Half int

const (
	First Half = iota
	Second
)

// Other returns the half that isn't h.
func (h Half) Other() Half {
	return h ^ 1
}

func (h Half) String() string {
	if h == First {
		return "first"
	}
	return "second"
}

// Writer is a channel moving a buffer from memory to a peripheral, once.
type Writer interface {
	// Listen enables the transfer complete interrupt.
	Listen()
	// Write starts transferring buf.  buf must not be touched until the
	// transfer is done.
	Write(buf []byte)
	// Done reports the transfer complete flag.
	Done() bool
	// Wait blocks until the transfer is done, clears the channel's flags
	// and reports a transfer error.
	Wait() error
}

// CircularReader is a channel continuously moving data from a peripheral into
// two memory regions, switching to the other region whenever one is full.
type CircularReader interface {
	// Listen enables the half transfer and transfer complete interrupts.
	Listen()
	// ReadCircular starts filling bufs, beginning with the first half.
	ReadCircular(bufs *[2][]byte)
	// ReadableHalf returns the half completed most recently.  Before any
	// half is complete it returns the second half.  It fails with
	// ErrOverrun if both halves completed since the last call.
	ReadableHalf() (Half, error)
	// Stop stops the transfer and returns its buffers.
	Stop() *[2][]byte
}

// Transfer is a one-shot transfer in flight.  It owns its buffer and channel
// until Wait returns them.
type Transfer struct {
	buf []byte
	ch  Writer
}

// Write starts transferring buf over ch.
func Write(ch Writer, buf []byte) Transfer {
	ch.Write(buf)
	return Transfer{buf, ch}
}

// IsDone reports whether the transfer has finished.
func (t *Transfer) IsDone() bool {
	return t.ch.Done()
}

// Wait finishes the transfer and hands back buffer and channel.
func (t *Transfer) Wait() (buf []byte, ch Writer, err error) {
	err = t.ch.Wait()
	buf, ch = t.buf, t.ch
	*t = Transfer{}
	return
}

// Circular is a running circular transfer.
type Circular struct {
	bufs *[2][]byte
	ch   CircularReader
}

// ReadCircular starts a circular transfer into bufs over ch.  Both halves
// must have the same length.
func ReadCircular(ch CircularReader, bufs *[2][]byte) Circular {
	if len(bufs[0]) != len(bufs[1]) || len(bufs[0]) == 0 {
		panic("dma: invalid circular buffer")
	}
	ch.ReadCircular(bufs)
	return Circular{bufs, ch}
}

// Peek returns the readable half if it isn't last.  ok is false if no half was
// completed since last.
func (c *Circular) Peek(last Half) (data []byte, h Half, ok bool, err error) {
	h, err = c.ch.ReadableHalf()
	if err != nil || h == last {
		return nil, h, false, err
	}
	return c.bufs[h], h, true, nil
}

// Stop ends the transfer and hands back buffers and channel.
func (c *Circular) Stop() (*[2][]byte, CircularReader) {
	bufs, ch := c.ch.Stop(), c.ch
	*c = Circular{}
	return bufs, ch
}

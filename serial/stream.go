package serial

import (
	"fmt"

	"github.com/clktmr/asyncirq/debug"
	"github.com/clktmr/asyncirq/dma"
	"github.com/clktmr/asyncirq/irq"
)

// RxStream is an endless task.Stream of received halves of a circular DMA
// buffer.
//
// A hardware error ends the stream: it's returned as an item and again by
// every later poll.  To restart, release the stream and create a new one.
type RxStream struct {
	vec  *irq.Vector
	circ dma.Circular
	last dma.Half
	out  []byte
	err  error
}

// NewRxStream starts receiving into bufs over rx and returns the stream of
// filled halves.  Items are copied to scratch, which must hold at least one
// half.  The half transfer and transfer complete interrupts of rx must be
// routed to vec.
func NewRxStream(bufs *[2][]byte, scratch []byte, rx dma.CircularReader, vec *irq.Vector) *RxStream {
	if len(scratch) < len(bufs[0]) {
		panic("serial: scratch buffer smaller than a half")
	}
	rx.Listen()
	return &RxStream{
		vec:  vec,
		circ: dma.ReadCircular(rx, bufs),
		last: dma.Second,
		out:  scratch[:len(bufs[0])],
	}
}

// PollNext returns the next filled half.  The returned slice is only valid
// until the next call.
func (s *RxStream) PollNext(w irq.Waker) (item []byte, ready bool, err error) {
	if s.err != nil {
		return nil, true, s.err
	}

	data, h, ok, err := s.circ.Peek(s.last)
	if err != nil {
		s.err = fmt.Errorf("serial: receive: %w", err)
		return nil, true, s.err
	}
	if !ok {
		s.vec.Install(0, w)
		return nil, false, nil
	}

	debug.Assert(len(data) == len(s.out), "circular buffer halves resized")
	copy(s.out, data)
	s.last = h
	return s.out, true, nil
}

// LastHalf returns the half delivered most recently.
func (s *RxStream) LastHalf() dma.Half {
	return s.last
}

// Terminated reports whether the stream ended with an error.
func (s *RxStream) Terminated() bool {
	return s.err != nil
}

// Release stops receiving and returns buffers and channel.  The scratch buffer
// is the caller's again.  The stream can't be resumed, but a new one can be
// built from the returned values.
func (s *RxStream) Release() (*[2][]byte, dma.CircularReader) {
	return s.circ.Stop()
}

package serial

import (
	"github.com/clktmr/asyncirq/dma"
	"github.com/clktmr/asyncirq/irq"
	"github.com/clktmr/asyncirq/task"
)

type sinkState uint8

const (
	sinkReady sinkState = iota
	sinkSending
	sinkReleased
)

// TxSink is a task.Sink sending byte slices through a DMA writer.  Every item
// is copied into the sink's buffer, so callers may reuse it right after
// StartSend.
//
// A TxSink is idle or sending.  It only accepts a new item when idle.
type TxSink struct {
	state sinkState
	vec   *irq.Vector
	buf   []byte
	tx    dma.Writer // nil while sending
	xfer  TransferFuture
}

// NewTxSink returns an idle sink owning buf and tx.  The transfer complete
// interrupt of tx must be routed to vec.
func NewTxSink(buf []byte, tx dma.Writer, vec *irq.Vector) *TxSink {
	tx.Listen()
	return &TxSink{vec: vec, buf: buf, tx: tx}
}

// PollReady is the same as PollFlush.
func (s *TxSink) PollReady(w irq.Waker) (bool, error) {
	return s.PollFlush(w)
}

// StartSend starts transmitting item.  The sink must be idle, i.e. PollReady
// must have returned true since the last StartSend.
func (s *TxSink) StartSend(item []byte) error {
	switch s.state {
	case sinkSending:
		panic(ErrAlreadySending)
	case sinkReleased:
		panic(ErrReleased)
	}
	if len(item) > len(s.buf) {
		return ErrItemTooLarge
	}

	n := copy(s.buf, item)
	s.xfer.Start(s.tx, s.buf[:n], s.vec)
	s.tx = nil
	s.state = sinkSending
	return nil
}

// PollFlush waits until the transfer in flight has finished.  A DMA error of
// that transfer is returned once; the sink is idle afterwards.
func (s *TxSink) PollFlush(w irq.Waker) (bool, error) {
	switch s.state {
	case sinkReady:
		return true, nil
	case sinkReleased:
		panic(ErrReleased)
	}

	sent, ok := s.xfer.Poll(w)
	if !ok {
		return false, nil
	}
	s.tx = sent.Channel
	s.state = sinkReady
	return true, sent.Err
}

// PollClose is the same as PollFlush.
func (s *TxSink) PollClose(w irq.Waker) (bool, error) {
	return s.PollFlush(w)
}

// Idle reports whether no transfer is in flight.
func (s *TxSink) Idle() bool {
	return s.state == sinkReady
}

// Released holds what a sink owned.
type Released struct {
	Buf []byte
	Tx  dma.Writer
	Err error // error of the last transfer, if not flushed before
}

// ReleaseFuture closes a sink and returns its buffer and channel.
type ReleaseFuture struct {
	s    *TxSink
	done bool
}

// Release returns a future that waits for the sink to become idle and then
// hands back its buffer and DMA channel.  The sink must not be used
// afterwards.
func (s *TxSink) Release() ReleaseFuture {
	return ReleaseFuture{s: s}
}

func (f *ReleaseFuture) Poll(w irq.Waker) (r Released, ready bool) {
	if f.done {
		panic(task.ErrPolledAfterCompletion)
	}
	ready, r.Err = f.s.PollClose(w)
	if !ready {
		return
	}
	r.Buf, r.Tx = f.s.buf, f.s.tx
	f.s.buf, f.s.tx = nil, nil
	f.s.state = sinkReleased
	f.done = true
	return
}

package serial

import (
	"github.com/clktmr/asyncirq/dma"
	"github.com/clktmr/asyncirq/irq"
	"github.com/clktmr/asyncirq/task"
)

// Sent is the result of a finished transfer.  Buf and Channel are owned by
// the receiver again.
type Sent struct {
	Buf     []byte
	Channel dma.Writer
	Err     error
}

type inflight struct {
	t dma.Transfer
}

func (p *inflight) Complete() (Sent, bool) {
	if !p.t.IsDone() {
		return Sent{}, false
	}
	buf, ch, err := p.t.Wait()
	return Sent{buf, ch, err}, true
}

// TransferFuture waits for a DMA write to finish.  The zero value is not
// usable, see Start.  A TransferFuture must not be copied after Start.
type TransferFuture struct {
	p inflight
	f task.OneShot[Sent]
}

// Start transfers buf over ch, which must already listen for its transfer
// complete interrupt on vec.
func (f *TransferFuture) Start(ch dma.Writer, buf []byte, vec *irq.Vector) {
	f.p = inflight{dma.Write(ch, buf)}
	f.f = task.NewOneShot[Sent](&f.p, vec, 0)
}

func (f *TransferFuture) Poll(w irq.Waker) (Sent, bool) {
	return f.f.Poll(w)
}

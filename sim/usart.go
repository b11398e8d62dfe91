package sim

import (
	"bytes"
	"io"

	"github.com/clktmr/asyncirq/internal/log"
)

// USART is a serial port whose transmitter and receiver are served by DMA.
// Transmitted bytes are recorded and copied to an optional writer.  Received
// bytes are queued by Feed and consumed one per tick.
type USART struct {
	Tx *TxChannel
	Rx *RxChannel

	name  string
	out   io.Writer
	sent  bytes.Buffer
	queue []byte
}

// SetOutput copies all transmitted bytes to w.
func (u *USART) SetOutput(w io.Writer) {
	u.out = w
}

// Feed queues p to arrive on the receive line.
func (u *USART) Feed(p []byte) {
	u.queue = append(u.queue, p...)
}

// Queued returns the number of bytes not received yet.
func (u *USART) Queued() int {
	return len(u.queue)
}

// Sent returns everything transmitted so far.
func (u *USART) Sent() []byte {
	return u.sent.Bytes()
}

func (u *USART) transmit(b byte) {
	u.sent.WriteByte(b)
	if u.out != nil {
		if _, err := u.out.Write([]byte{b}); err != nil {
			log.Warn(log.ComponentUSART, "output failed", "usart", u.name, "err", err)
		}
	}
}

func (u *USART) receive() (b byte, ok bool) {
	if len(u.queue) == 0 {
		return 0, false
	}
	b, u.queue = u.queue[0], u.queue[1:]
	return b, true
}

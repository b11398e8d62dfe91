// Package serial provides asynchronous, DMA based USART transmission and
// reception.
//
// TxSink sends buffers through a DMA writer, one at a time.  RxStream delivers
// the halves of a circular DMA receive buffer as they fill up.  Both wait for
// their DMA channel's interrupt instead of polling it.
package serial

import (
	"errors"

	"github.com/clktmr/asyncirq/dma"
	"github.com/clktmr/asyncirq/irq"
)

var (
	// ErrAlreadySending is the panic value of StartSend while a transfer
	// is still in flight.
	ErrAlreadySending = errors.New("serial: started sending before polled ready")

	// ErrItemTooLarge is returned by StartSend for items that don't fit
	// the sink's buffer.
	ErrItemTooLarge = errors.New("serial: item exceeds buffer")

	// ErrReleased is the panic value when a released sink is used.
	ErrReleased = errors.New("serial: sink released")
)

// USART names the DMA channel interrupts serving a USART.
type USART struct {
	Tx, Rx irq.IRQ
}

// DMA1 channel assignment of the STM32F1 USARTs.
var (
	USART1 = USART{Tx: irq.DMA1Channel4, Rx: irq.DMA1Channel5}
	USART2 = USART{Tx: irq.DMA1Channel7, Rx: irq.DMA1Channel6}
	USART3 = USART{Tx: irq.DMA1Channel2, Rx: irq.DMA1Channel3}
)

// TxSink returns a sink transmitting over tx, which must be the USART's TX
// channel.
func (u USART) TxSink(r *irq.Registry, buf []byte, tx dma.Writer) *TxSink {
	return NewTxSink(buf, tx, r.Vector(u.Tx, 1))
}

// RxStream returns a stream receiving over rx, which must be the USART's RX
// channel.
func (u USART) RxStream(r *irq.Registry, bufs *[2][]byte, scratch []byte, rx dma.CircularReader) *RxStream {
	return NewRxStream(bufs, scratch, rx, r.Vector(u.Rx, 1))
}

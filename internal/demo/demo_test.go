package demo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clktmr/asyncirq/dma"
	"github.com/clktmr/asyncirq/sim"
	"github.com/clktmr/asyncirq/task"
)

// recorder notes the tick of every toggle.
type recorder struct {
	clock *sim.Clock
	at    []uint64
}

func (r *recorder) Toggle() { r.at = append(r.at, r.clock.Now()) }

func TestHeartbeat(t *testing.T) {
	b := NewBoard(1000)
	led := &recorder{clock: b.MCU.Clock}
	h := NewHeartbeat(led, b.Timer())
	e := task.NewExecutor(1)
	e.Spawn(h)

	b.Run(e, 2000)
	assert.Equal(t, []uint64{0, 100, 350, 450, 950, 1050, 1300, 1400, 1900}, led.at)
	assert.Equal(t, 2, h.Beats())
	assert.Equal(t, 1, e.Pending())
}

func TestHeartbeatLED(t *testing.T) {
	b := NewBoard(100)
	e := task.NewExecutor(1)
	e.Spawn(NewHeartbeat(b.LED, b.Timer()))

	b.Run(e, 96)
	assert.Equal(t, 5, b.LED.Toggles())
	assert.True(t, b.LED.On())
}

func TestEcho(t *testing.T) {
	b := NewBoard(1000)
	echo := NewEcho(b.TxSink(), b.RxStream())
	e := task.NewExecutor(2)
	e.Spawn(echo)
	e.Spawn(NewHeartbeat(b.LED, b.Timer()))

	in := "0123456789abcdef"
	b.Serial.Feed([]byte(in))
	b.Run(e, 100)
	assert.Equal(t, in, string(b.Serial.Sent()))
	assert.NoError(t, echo.Err())
	assert.Equal(t, 2, b.Serial.Tx.Transfers())
}

func TestEchoPartialFrame(t *testing.T) {
	b := NewBoard(1000)
	e := task.NewExecutor(1)
	e.Spawn(NewEcho(b.TxSink(), b.RxStream()))

	b.Serial.Feed([]byte("0123456789"))
	b.Run(e, 100)
	assert.Equal(t, "01234567", string(b.Serial.Sent()), "only whole frames are echoed")
}

func TestEchoError(t *testing.T) {
	b := NewBoard(1000)
	echo := NewEcho(b.TxSink(), b.RxStream())
	e := task.NewExecutor(1)
	e.Spawn(echo)

	b.Run(e, 5)
	b.Serial.Rx.Fault()
	b.Run(e, 100)
	assert.ErrorIs(t, echo.Err(), dma.ErrTransfer)
	assert.Zero(t, e.Pending())
	assert.Equal(t, uint64(6), b.MCU.Clock.Now())
}

func TestToggle(t *testing.T) {
	b := NewBoard(1000)
	tg := NewToggle(b.ButtonPin(), b.LED)
	e := task.NewExecutor(1)
	e.Spawn(tg)

	b.Run(e, 1)
	b.Button.Set(true)
	b.Run(e, 2)
	b.Button.Set(false)
	b.Run(e, 3)
	assert.Equal(t, 2, tg.Edges())
	assert.Equal(t, 2, b.LED.Toggles())
	assert.False(t, b.LED.On())
}

func TestHello(t *testing.T) {
	b := NewBoard(1000)
	msg := "01234567"
	h := NewHello(b.TxSink(), []byte(msg), 3)
	e := task.NewExecutor(1)
	e.Spawn(h)

	b.Run(e, 1000)
	require.Zero(t, e.Pending())
	assert.Equal(t, 3, h.Sent())
	assert.Equal(t, strings.Repeat(msg, 3), string(b.Serial.Sent()))
	assert.Equal(t, uint64(24), b.MCU.Clock.Now())

	r := h.Released()
	assert.NoError(t, r.Err)
	assert.Len(t, r.Buf, FrameSize)
	assert.Same(t, b.Serial.Tx, r.Tx)
}

func TestHelloTransferError(t *testing.T) {
	b := NewBoard(1000)
	h := NewHello(b.TxSink(), []byte("hi"), 2)
	e := task.NewExecutor(1)
	e.Spawn(h)

	b.Serial.Tx.Fault()
	b.Run(e, 1000)
	assert.Equal(t, 2, h.Sent())
	assert.Equal(t, 2, b.Serial.Tx.Transfers())
}

func TestHelloTooLarge(t *testing.T) {
	b := NewBoard(1000)
	h := NewHello(b.TxSink(), []byte("0123456789"), 0)
	e := task.NewExecutor(1)
	e.Spawn(h)

	b.Run(e, 1000)
	assert.Zero(t, e.Pending())
	assert.Zero(t, h.Sent())
	assert.Empty(t, b.Serial.Sent())
	assert.Len(t, h.Released().Buf, FrameSize)
}

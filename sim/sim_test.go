package sim

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clktmr/asyncirq/dma"
	"github.com/clktmr/asyncirq/internal/log"
	"github.com/clktmr/asyncirq/irq"
	"github.com/clktmr/asyncirq/serial"
	"github.com/clktmr/asyncirq/timer"
)

func TestNVICLevel(t *testing.T) {
	c := NewNVIC()
	var taken []irq.IRQ
	c.Handler = func(n irq.IRQ) {
		taken = append(taken, n)
		c.Mask(n)
	}
	asserted := false
	c.Connect(irq.TIM3, func() bool { return asserted })

	asserted = true
	c.Service()
	assert.Empty(t, taken, "masked line taken")

	c.Unpend(irq.TIM3)
	assert.True(t, c.Pending(irq.TIM3), "asserted line unpended")

	c.Unmask(irq.TIM3)
	assert.Equal(t, []irq.IRQ{irq.TIM3}, taken)
	assert.Equal(t, 1, c.Fired(irq.TIM3))
	assert.True(t, c.Masked(irq.TIM3))
}

func TestNVICLatched(t *testing.T) {
	c := NewNVIC()
	fired := 0
	c.Handler = func(irq.IRQ) { fired++ }

	c.Pend(irq.TIM4)
	assert.True(t, c.Pending(irq.TIM4))
	c.Unpend(irq.TIM4)
	assert.False(t, c.Pending(irq.TIM4))

	c.Pend(irq.TIM4)
	c.Unmask(irq.TIM4)
	assert.Equal(t, 1, fired)
	assert.False(t, c.Pending(irq.TIM4), "taking clears the latch")
}

func TestNVICNoNesting(t *testing.T) {
	c := NewNVIC()
	depth, maxDepth := 0, 0
	c.Handler = func(n irq.IRQ) {
		depth++
		maxDepth = max(maxDepth, depth)
		if c.Fired(n) == 1 {
			c.Pend(n)
		}
		depth--
	}
	c.Unmask(irq.TIM2)
	c.Pend(irq.TIM2)
	assert.Equal(t, 1, maxDepth)
	assert.Equal(t, 2, c.Fired(irq.TIM2), "pended from handler runs afterwards")
}

func TestNVICStorm(t *testing.T) {
	c := NewNVIC()
	c.Handler = func(irq.IRQ) {}
	c.Connect(irq.TIM2, func() bool { return true })
	assert.Panics(t, func() { c.Unmask(irq.TIM2) })
}

func TestNVICUnhandled(t *testing.T) {
	m := New()
	assert.PanicsWithValue(t, "unhandled interrupt", func() {
		m.NVIC.Unmask(irq.TIM2)
		m.NVIC.Pend(irq.TIM2)
	})
}

func TestClock(t *testing.T) {
	c := NewClock(NewNVIC())
	var ticks []uint64
	c.Add(TickerFunc(func(now uint64) { ticks = append(ticks, now) }))
	c.Advance(3)
	c.Tick()
	assert.Equal(t, []uint64{1, 2, 3, 4}, ticks)
	assert.Equal(t, uint64(4), c.Now())
}

func TestClockLogs(t *testing.T) {
	var buf bytes.Buffer
	defer log.SetOutput(&bytes.Buffer{}, log.FormatText)
	defer log.SetLevel(log.Level())
	log.SetLevel(slog.LevelDebug)
	log.SetOutput(&buf, log.FormatJSON)

	c := NewClock(NewNVIC())
	c.Advance(2)
	c.Advance(3)

	dec := json.NewDecoder(&buf)
	for _, want := range [][2]float64{{0, 2}, {2, 5}} {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		assert.Equal(t, "clock", rec["component"])
		assert.Equal(t, want[0], rec["from"])
		assert.Equal(t, want[1], rec["to"])
	}
}

func TestTimer(t *testing.T) {
	tim := newTimer("t")
	assert.ErrorIs(t, tim.Wait(), timer.ErrWouldBlock)
	assert.False(t, tim.Running())

	tim.Start(2)
	tim.Tick(1)
	assert.ErrorIs(t, tim.Wait(), timer.ErrWouldBlock)
	tim.Tick(2)
	assert.False(t, tim.asserted(), "asserted without listening")
	tim.Listen()
	assert.True(t, tim.asserted())
	require.NoError(t, tim.Wait())
	assert.False(t, tim.asserted())

	// Periodic.
	tim.Tick(3)
	tim.Tick(4)
	assert.Equal(t, 2, tim.Expired())

	boom := errors.New("boom")
	tim.Fault(boom)
	assert.ErrorIs(t, tim.Wait(), boom)
	assert.NoError(t, tim.Wait())
}

func TestRxChannelHalves(t *testing.T) {
	m := New()
	u := m.USART(serial.USART3)
	c := u.Rx
	bufs := &[2][]byte{make([]byte, 2), make([]byte, 2)}
	c.ReadCircular(bufs)

	h, err := c.ReadableHalf()
	require.NoError(t, err)
	assert.Equal(t, dma.Second, h, "before any half is complete")

	u.Feed([]byte("abcdef"))
	m.Clock.Advance(2)
	h, err = c.ReadableHalf()
	require.NoError(t, err)
	assert.Equal(t, dma.First, h)
	assert.Equal(t, "ab", string(bufs[0]))

	m.Clock.Advance(2)
	h, _ = c.ReadableHalf()
	assert.Equal(t, dma.Second, h)
	assert.Equal(t, "cd", string(bufs[1]))

	// Both halves complete without a read in between.
	u.Feed([]byte("gh"))
	m.Clock.Advance(4)
	_, err = c.ReadableHalf()
	assert.ErrorIs(t, err, dma.ErrOverrun)
	assert.Equal(t, "ef", string(bufs[0]))
	assert.Equal(t, "gh", string(bufs[1]))

	assert.Same(t, bufs, c.Stop())
	assert.False(t, c.Running())
}

func TestTxChannelWait(t *testing.T) {
	m := New()
	u := m.USART(serial.USART1)
	u.Tx.Write([]byte("xyz"))
	assert.True(t, u.Tx.Busy())
	assert.Panics(t, func() { u.Tx.Write([]byte("again")) })

	require.NoError(t, u.Tx.Wait())
	assert.Equal(t, uint64(3), m.Clock.Now())
	assert.Equal(t, "xyz", string(u.Sent()))
	assert.False(t, u.Tx.Done(), "wait clears the flags")

	u.Tx.Fault()
	u.Tx.Write([]byte("e"))
	assert.ErrorIs(t, u.Tx.Wait(), dma.ErrTransfer)
}

func TestUSARTOutput(t *testing.T) {
	m := New()
	u := m.USART(serial.USART2)
	var w errWriter
	u.SetOutput(&w)
	u.Tx.Write([]byte("ok"))
	require.NoError(t, u.Tx.Wait())
	assert.Equal(t, 2, int(w))
	assert.Equal(t, "ok", string(u.Sent()))
}

type errWriter int

func (w *errWriter) Write(p []byte) (int, error) {
	*w++
	return 0, errors.New("closed")
}

func TestPinEdges(t *testing.T) {
	m := New()
	fired := 0
	m.NVIC.Handler = func(n irq.IRQ) {
		fired++
		m.NVIC.Mask(n)
	}
	pa8, pb8 := m.EXTI.Pin('A', 8), m.EXTI.Pin('B', 8)
	pa8.MakeInterruptSource()
	pa8.EnableInterrupt()
	pa8.TriggerOnEdge(RisingFalling)
	m.NVIC.Unmask(irq.EXTI9to5)

	pb8.Pulse()
	assert.False(t, pa8.CheckInterrupt(), "unrouted port detected")

	pa8.Set(true)
	assert.True(t, pa8.CheckInterrupt())
	assert.Equal(t, 1, fired)
	pa8.ClearInterruptPendingBit()

	pa8.Set(true)
	assert.False(t, pa8.CheckInterrupt(), "no edge")

	pa8.TriggerOnEdge(Rising)
	pa8.Set(false)
	assert.False(t, pa8.CheckInterrupt())

	pa8.DisableInterrupt()
	m.NVIC.Unmask(irq.EXTI9to5)
	pa8.Set(true)
	assert.True(t, pa8.CheckInterrupt())
	assert.Equal(t, 1, fired, "disabled line raised an interrupt")
	assert.Equal(t, "PA8", pa8.String())
}

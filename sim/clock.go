package sim

import "github.com/clktmr/asyncirq/internal/log"

// Ticker is a peripheral advanced by the clock.
type Ticker interface {
	Tick(now uint64)
}

// TickerFunc adapts a function to the Ticker interface.
type TickerFunc func(now uint64)

func (f TickerFunc) Tick(now uint64) { f(now) }

// Clock drives all simulated peripherals.  Interrupts raised during a tick are
// taken at its end.
type Clock struct {
	nvic    *NVIC
	now     uint64
	tickers []Ticker
}

// NewClock returns a clock at tick zero.
func NewClock(nvic *NVIC) *Clock {
	return &Clock{nvic: nvic}
}

// Add registers t to be advanced on every tick.
func (c *Clock) Add(t Ticker) {
	c.tickers = append(c.tickers, t)
}

// Now returns the number of ticks elapsed.
func (c *Clock) Now() uint64 {
	return c.now
}

// Tick advances all peripherals by one tick.
func (c *Clock) Tick() {
	c.now++
	for _, t := range c.tickers {
		t.Tick(c.now)
	}
	c.nvic.Service()
}

// Advance ticks n times.
func (c *Clock) Advance(n int) {
	from := c.now
	for range n {
		c.Tick()
	}
	log.Debug(log.ComponentClock, "advanced", "from", from, "to", c.now)
}

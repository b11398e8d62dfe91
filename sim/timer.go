package sim

import (
	"github.com/clktmr/asyncirq/internal/log"
	"github.com/clktmr/asyncirq/timer"
)

// Timer is a periodic count-down timer with an update flag, counting one unit
// per tick.  It implements timer.CountDown[uint32].
type Timer struct {
	name      string
	running   bool
	reload    uint32
	count     uint32
	update    bool
	listening bool
	fault     error

	expired int
}

func newTimer(name string) *Timer {
	return &Timer{name: name}
}

// Start restarts the count down.  A zero count is treated as one.
func (t *Timer) Start(count uint32) {
	count = max(count, 1)
	t.reload, t.count = count, count
	t.running = true
	t.update = false
}

// Wait reports and clears an expiry.
func (t *Timer) Wait() error {
	if t.fault != nil {
		err := t.fault
		t.fault = nil
		return err
	}
	if !t.update {
		return timer.ErrWouldBlock
	}
	t.update = false
	return nil
}

func (t *Timer) Listen() {
	t.listening = true
}

// Fault makes the next Wait fail with err.
func (t *Timer) Fault(err error) {
	t.fault = err
}

// Expired returns how often the count down expired.
func (t *Timer) Expired() int {
	return t.expired
}

// Running reports whether the timer was started.
func (t *Timer) Running() bool {
	return t.running
}

func (t *Timer) asserted() bool {
	return t.update && t.listening
}

func (t *Timer) Tick(now uint64) {
	if !t.running {
		return
	}
	t.count--
	if t.count == 0 {
		t.count = t.reload
		t.update = true
		t.expired++
		log.Debug(log.ComponentTimer, "expired", "timer", t.name, "tick", now)
	}
}

// Package timer lets tasks sleep on a hardware count-down timer.
package timer

import (
	"errors"
	"math/bits"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/clktmr/asyncirq/debug"
	"github.com/clktmr/asyncirq/irq"
	"github.com/clktmr/asyncirq/task"
)

var (
	// ErrWouldBlock is returned by CountDown.Wait while the timer is
	// running.
	ErrWouldBlock = errors.New("timer: would block")

	// ErrZeroFrequency is the panic value of Hz(0).
	ErrZeroFrequency = errors.New("timer: zero frequency")
)

// CountDown is a hardware timer counting down in units of C.
type CountDown[C constraints.Unsigned] interface {
	// Start (re)starts counting down from count.
	Start(count C)
	// Wait returns nil once the count expired and clears the expiry,
	// ErrWouldBlock if it hasn't yet.  Any other error is a violation of
	// the timer's contract.
	Wait() error
	// Listen enables the interrupt on expiry.
	Listen()
}

// AsyncTimer wraps a CountDown to delay the current task.
type AsyncTimer[C constraints.Unsigned] struct {
	cd   CountDown[C]
	vec  *irq.Vector
	freq uint32
}

// New returns an AsyncTimer for cd, which counts at freq Hz and interrupts on
// vec.
func New[C constraints.Unsigned](cd CountDown[C], freq uint32, vec *irq.Vector) *AsyncTimer[C] {
	cd.Listen()
	return &AsyncTimer[C]{cd: cd, vec: vec, freq: freq}
}

// Delay is the future returned by DelayFor.  Only one Delay of a timer may be
// polled at a time.
type Delay = task.OneShot[struct{}]

// DelayFor starts the timer and returns a future that completes after count
// has been counted down.
func (t *AsyncTimer[C]) DelayFor(count C) Delay {
	t.cd.Start(count)
	return task.NewOneShot[struct{}]((*expiry[C])(t), t.vec, 0)
}

// Delay is like DelayFor, with d rounded up to whole counts.
func (t *AsyncTimer[C]) Delay(d time.Duration) Delay {
	return t.DelayFor(Ticks[C](d, t.freq))
}

// Hz is like DelayFor with the period of frequency hz, rounded up to whole
// counts.  Periods shorter than one count take one count.
func (t *AsyncTimer[C]) Hz(hz uint32) Delay {
	if hz == 0 {
		panic(ErrZeroFrequency)
	}
	n := (uint64(t.freq) + uint64(hz) - 1) / uint64(hz)
	return t.DelayFor(saturate[C](n))
}

// Timer returns the wrapped timer.
func (t *AsyncTimer[C]) Timer() CountDown[C] {
	return t.cd
}

// Release returns the wrapped timer.  The AsyncTimer must not be used
// afterwards.
func (t *AsyncTimer[C]) Release() CountDown[C] {
	cd := t.cd
	t.cd = nil
	return cd
}

type expiry[C constraints.Unsigned] AsyncTimer[C]

func (t *expiry[C]) Complete() (v struct{}, ok bool) {
	err := t.cd.Wait()
	if err == nil {
		return v, true
	}
	if !errors.Is(err, ErrWouldBlock) {
		debug.Unreachable(err)
	}
	return v, false
}

// Ticks converts d into counts of a timer running at freq Hz.  The result is
// rounded up and at least one.  Durations that don't fit into C saturate at
// the largest count.
func Ticks[C constraints.Unsigned](d time.Duration, freq uint32) C {
	if d <= 0 {
		return 1
	}
	hi, lo := bits.Mul64(uint64(d), uint64(freq))
	lo, carry := bits.Add64(lo, uint64(time.Second)-1, 0)
	hi += carry
	if hi >= uint64(time.Second) {
		return ^C(0)
	}
	n, _ := bits.Div64(hi, lo, uint64(time.Second))
	return saturate[C](n)
}

// saturate converts n to C, clamped to [1, max C].
func saturate[C constraints.Unsigned](n uint64) C {
	return C(min(max(n, 1), uint64(^C(0))))
}

package task_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clktmr/asyncirq/irq"
	"github.com/clktmr/asyncirq/sim"
	"github.com/clktmr/asyncirq/task"
)

// flag is a peripheral completion flag asserting TIM2 while set.
type flag struct {
	set     bool
	checked int
}

func (f *flag) Complete() (int, bool) {
	f.checked++
	if !f.set {
		return 0, false
	}
	f.set = false
	return 42, true
}

func setup() (*sim.MCU, *irq.Vector, *flag) {
	m := sim.New()
	f := &flag{}
	m.NVIC.Connect(irq.TIM2, func() bool { return f.set })
	return m, m.Vectors.Vector(irq.TIM2, 1), f
}

func TestOneShot(t *testing.T) {
	m, v, f := setup()
	fut := task.NewOneShot[int](f, v, 0)

	wakes := 0
	w := irq.WakerFunc(func() { wakes++ })

	_, ok := fut.Poll(w)
	require.False(t, ok)
	assert.False(t, m.NVIC.Masked(irq.TIM2), "waker not installed")
	assert.Zero(t, wakes)

	f.set = true
	m.NVIC.Service()
	assert.Equal(t, 1, wakes)

	v2, ok := fut.Poll(w)
	require.True(t, ok)
	assert.Equal(t, 42, v2)
	assert.True(t, fut.Done())
	assert.Equal(t, 2, f.checked)
}

func TestOneShotReadyWithoutInstall(t *testing.T) {
	m, v, f := setup()
	f.set = true
	fut := task.NewOneShot[int](f, v, 0)

	_, ok := fut.Poll(irq.WakerFunc(func() { t.Fatal("unexpected wake") }))
	require.True(t, ok)
	assert.True(t, m.NVIC.Masked(irq.TIM2))
}

func TestOneShotPolledAfterCompletion(t *testing.T) {
	_, v, f := setup()
	f.set = true
	fut := task.NewOneShot[int](f, v, 0)
	w := irq.WakerFunc(func() {})

	_, ok := fut.Poll(w)
	require.True(t, ok)

	f.set = true // a stale flag must not be returned either
	require.PanicsWithError(t, task.ErrPolledAfterCompletion.Error(), func() {
		fut.Poll(w)
	})
}

func TestPollFunc(t *testing.T) {
	n := 0
	f := task.PollFunc[int](func(w irq.Waker) (int, bool) {
		n++
		if n < 3 {
			w.Wake()
			return 0, false
		}
		return n, true
	})
	e := task.NewExecutor(0)
	spins := 0
	e.Idle = func() { spins++ }

	assert.Equal(t, 3, task.BlockOn[int](e, f))
	assert.Zero(t, spins, "self-woken future went idle")
}

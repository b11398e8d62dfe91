package irq

import "sync/atomic"

// IRQ is the number of a maskable interrupt line, i.e. its position in the
// vector table.
type IRQ int

// Controller gives access to the interrupt controller, like the NVIC on
// Cortex-M.
type Controller interface {
	// Mask disables the line.  Its pending flag is still latched.
	Mask(IRQ)
	// Unmask enables the line.  If it is pending, its handler runs
	// immediately.
	Unmask(IRQ)
	// Unpend clears the latched pending flag.  A level triggered source
	// that is still asserted pends the line again.
	Unpend(IRQ)
}

// Waker resumes a suspended task.  Wake is called from interrupt context and
// must only mark the task runnable.
type Waker interface {
	Wake()
}

// WakerFunc adapts a function to the Waker interface.
type WakerFunc func()

func (f WakerFunc) Wake() { f() }

var barrier atomic.Uint32

// fence keeps the compiler and CPU from moving memory accesses across it.  Go
// has no standalone fence, but atomic read-modify-write operations are
// sequentially consistent.
//
//go:nosplit
func fence() {
	barrier.Add(1)
}

// Package irq connects hardware interrupt vectors to suspended tasks.
//
// A task that has to wait for a peripheral installs its Waker into the slot of
// the interrupt vector that signals the peripheral's event.  The vector's
// handler wakes whatever is installed and masks the vector again, so every
// install arms the vector for exactly one notification.
//
// The slots are the only state shared between task and interrupt context.
// They are written with the vector masked and read only by the vector's own
// handler, which can't preempt a masked vector.
package irq

package debug

import "fmt"

// UnreachableError is the panic value of Unreachable.
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// Unreachable aborts on an error the hardware declared impossible.  It is never
// compiled out.
func Unreachable(err error) {
	panic(&UnreachableError{err})
}

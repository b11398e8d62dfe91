package irq

// MaxVectors limits the IRQ numbers a Registry can bind.
const MaxVectors = 64

// Registry is the fixed table of all vectors driven by this package.  It is
// usually a single package level variable, filled during initialization and
// never changed afterwards.
type Registry struct {
	ctrl    Controller
	vectors [MaxVectors]Vector
}

// NewRegistry returns a registry whose vectors are controlled by ctrl.  All
// lines are masked.
func NewRegistry(ctrl Controller) *Registry {
	r := &Registry{}
	r.Init(ctrl)
	return r
}

// Init prepares a statically allocated registry.
func (r *Registry) Init(ctrl Controller) {
	r.ctrl = ctrl
	for i := range r.vectors {
		r.vectors[i] = Vector{irq: IRQ(i), ctrl: ctrl}
	}
}

// Vector binds irq to a vector with the given number of slots and returns it.
// Binding the same irq again returns the same vector, as long as the number of
// slots matches.
func (r *Registry) Vector(irq IRQ, slots int) *Vector {
	if irq < 0 || int(irq) >= len(r.vectors) {
		panic("irq: vector out of range")
	}
	if slots < 1 || slots > MaxSlots {
		panic("irq: invalid slot count")
	}

	v := &r.vectors[irq]
	if v.n != 0 {
		if v.n != slots {
			panic("irq: vector bound with different slot count")
		}
		return v
	}

	r.ctrl.Mask(irq)
	v.n = slots
	return v
}

// Bound reports whether irq has been bound to a vector.
func (r *Registry) Bound(irq IRQ) bool {
	return irq >= 0 && int(irq) < len(r.vectors) && r.vectors[irq].n != 0
}

// Handle is the entry point of the vector table for all bound lines.
//
//go:nosplit
func (r *Registry) Handle(irq IRQ) {
	if !r.Bound(irq) {
		panic("unhandled interrupt")
	}
	r.vectors[irq].Dispatch()
}

package device

import (
	"github.com/ezrec/nybble/fixed"
)

// Device is anything advanced one discrete tick at a time.
type Device interface {
	// Tick advances the device. Side effects are limited to the stores it
	// owns or is wired to.
	Tick(tick uint32)
}

// Connectable is a W bit signal of a device that can be wired.
type Connectable[W fixed.Width] interface {
	// Store returns the shared store behind the signal.
	Store() Store[W]
	// ConnectTo replaces the store behind the signal with the store of
	// other. Afterwards both observe each other's writes.
	ConnectTo(other Connectable[W])
}

// Connect points *store at the store of other.
// Wiring across buses is a construction fault, and panics.
func Connect[W fixed.Width](store *Store[W], other Connectable[W]) {
	target := other.Store()
	if store.bus != nil && store.bus != target.bus {
		panic(ErrBusMismatch)
	}
	*store = target
}

// Socket exposes a store field of a device as a Connectable.
type Socket[W fixed.Width] struct {
	store *Store[W]
}

var _ Connectable[fixed.W4] = (*Socket[fixed.W4])(nil)

// NewSocket wraps a store field. The socket rewires the field itself.
func NewSocket[W fixed.Width](store *Store[W]) *Socket[W] {
	return &Socket[W]{store: store}
}

func (s *Socket[W]) Store() Store[W] {
	return *s.store
}

func (s *Socket[W]) ConnectTo(other Connectable[W]) {
	Connect(s.store, other)
}

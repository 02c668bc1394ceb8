package device

import (
	"github.com/ezrec/nybble/fixed"
)

// slot is a single value cell in the bus arena.
type slot struct {
	value uint64
	tick  uint32 // Tick of the last write.
}

// Bus is the arena of all stores of a simulation.
// Slots are never removed, so a Store handle stays valid for the life of the Bus.
type Bus struct {
	slots []slot
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Len is the number of stores allocated on the bus.
func (bus *Bus) Len() int {
	return len(bus.slots)
}

// Store is a handle to a W bit value cell on a Bus.
//
// Stores are values; copies of a Store refer to the same cell.
type Store[W fixed.Width] struct {
	bus   *Bus
	index int
}

// NewStore allocates a store on the bus, with a write tick of 0.
func NewStore[W fixed.Width](bus *Bus, value fixed.U[W]) Store[W] {
	bus.slots = append(bus.slots, slot{value: value.Uint64()})
	return Store[W]{bus: bus, index: len(bus.slots) - 1}
}

// Get the current value.
func (s Store[W]) Get() fixed.U[W] {
	return fixed.New[W](s.bus.slots[s.index].value)
}

// Tick returns the tick of the last write.
func (s Store[W]) Tick() uint32 {
	return s.bus.slots[s.index].tick
}

// Set the value, stamped with the tick of the write.
func (s Store[W]) Set(value fixed.U[W], tick uint32) {
	s.bus.slots[s.index] = slot{value: value.Uint64(), tick: tick}
}

// Same is true if both handles refer to the same cell.
func (s Store[W]) Same(other Store[W]) bool {
	return s.bus == other.bus && s.index == other.index
}

// Bus returns the bus the store lives on.
func (s Store[W]) Bus() *Bus {
	return s.bus
}

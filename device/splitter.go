// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package device

import (
	"log"

	"github.com/ezrec/nybble/fixed"
)

// Splitter keeps a Sum bit store consistent with a Lo bit store (the low
// bits) and a Hi bit store (the high bits).
//
// Every tick each narrow side is reconciled with the combined store on its
// own: if the combined store was written more recently than the narrow one,
// its bits are copied out; otherwise the narrow value is copied in.
type Splitter[Lo fixed.Width, Hi fixed.Width, Sum fixed.Width] struct {
	Verbose bool // If set, logs the reconciliation direction.

	combined Store[Sum]
	low      Store[Lo]
	high     Store[Hi]
}

var _ Device = (*Splitter[fixed.W4, fixed.W4, fixed.W8])(nil)
var _ Connectable[fixed.W8] = (*Splitter[fixed.W4, fixed.W4, fixed.W8])(nil)

// NewSplitter creates a splitter with three fresh zero stores on the bus.
// Lo and Hi must sum to Sum.
func NewSplitter[Lo fixed.Width, Hi fixed.Width, Sum fixed.Width](bus *Bus) (sp *Splitter[Lo, Hi, Sum], err error) {
	if fixed.BitsOf[Lo]()+fixed.BitsOf[Hi]() != fixed.BitsOf[Sum]() {
		err = ErrWidthMismatch
		return
	}

	sp = &Splitter[Lo, Hi, Sum]{
		combined: NewStore(bus, fixed.U[Sum]{}),
		low:      NewStore(bus, fixed.U[Lo]{}),
		high:     NewStore(bus, fixed.U[Hi]{}),
	}

	return
}

// Store returns the combined store.
func (sp *Splitter[Lo, Hi, Sum]) Store() Store[Sum] {
	return sp.combined
}

// ConnectTo wires the combined store to other.
func (sp *Splitter[Lo, Hi, Sum]) ConnectTo(other Connectable[Sum]) {
	Connect(&sp.combined, other)
}

// LowEnd is the connectable low bits of the splitter.
func (sp *Splitter[Lo, Hi, Sum]) LowEnd() Connectable[Lo] {
	return NewSocket(&sp.low)
}

// HighEnd is the connectable high bits of the splitter.
func (sp *Splitter[Lo, Hi, Sum]) HighEnd() Connectable[Hi] {
	return NewSocket(&sp.high)
}

// Tick reconciles the three stores.
//
// Write ticks are sampled before any store is written, so the low and high
// sides do not see each other's updates. Ties go to the narrow side.
//
// A store is only written when its value changes, or for the combined
// store, when a narrow side is strictly newer. A second Tick() with the
// same tick value is therefore a no-op.
func (sp *Splitter[Lo, Hi, Sum]) Tick(tick uint32) {
	shift := fixed.BitsOf[Lo]()
	combined := sp.combined.Get()
	combinedTick := sp.combined.Tick()
	lowTick := sp.low.Tick()
	highTick := sp.high.Tick()

	value := combined
	driven := false

	if combinedTick > lowTick {
		out := fixed.ChangeBits[Lo](combined)
		if out != sp.low.Get() {
			sp.low.Set(out, tick)
		}
	} else {
		keep := fixed.Max[Sum]().Shl(shift)
		value = value.And(keep).Or(fixed.ChangeBits[Sum](sp.low.Get()))
		driven = driven || lowTick > combinedTick
	}

	if combinedTick > highTick {
		out := fixed.ChangeBits[Hi](combined.Shr(shift))
		if out != sp.high.Get() {
			sp.high.Set(out, tick)
		}
	} else {
		keep := fixed.Max[Sum]().Shr(fixed.BitsOf[Hi]())
		value = value.And(keep).Or(fixed.ChangeBits[Sum](sp.high.Get()).Shl(shift))
		driven = driven || highTick > combinedTick
	}

	if !driven && value == combined {
		return
	}

	if sp.Verbose {
		log.Printf("splitter: %d: %v => %v", tick, combined, value)
	}

	sp.combined.Set(value, tick)
}

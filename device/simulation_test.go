package device

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nybble/fixed"
)

// driver writes a value to a store at a specific tick.
type driver struct {
	store Store[fixed.W4]
	at    uint32
	value fixed.U[fixed.W4]
}

func (d *driver) Tick(tick uint32) {
	if tick == d.at {
		d.store.Set(d.value, tick)
	}
}

// recorder logs the ticks it sees.
type recorder struct {
	name string
	log  *[]string
	seen []uint32
}

func (r *recorder) Tick(tick uint32) {
	r.seen = append(r.seen, tick)
	*r.log = append(*r.log, r.name)
}

func TestSimulation_Run(t *testing.T) {
	assert := assert.New(t)

	var order []string
	a := &recorder{name: "a", log: &order}
	b := &recorder{name: "b", log: &order}

	sim := NewSimulation(a, b)
	assert.Equal(uint32(0), sim.Ticks())

	sim.Run(3)
	assert.Equal(uint32(3), sim.Ticks())
	assert.Equal([]uint32{0, 1, 2}, a.seen)
	assert.Equal([]uint32{0, 1, 2}, b.seen)
	assert.Equal([]string{"a", "b", "a", "b", "a", "b"}, order)

	sim.Run(1)
	assert.Equal([]uint32{0, 1, 2, 3}, a.seen)
}

func TestSimulation_RunUntil(t *testing.T) {
	assert := assert.New(t)

	var order []string
	a := &recorder{name: "a", log: &order}
	sim := NewSimulation(a)

	steps := sim.RunUntil(func() bool { return len(a.seen) == 5 }, 0)
	assert.Equal(uint32(5), steps)

	steps = sim.RunUntil(func() bool { return false }, 2)
	assert.Equal(uint32(2), steps)
	assert.Equal(uint32(7), sim.Ticks())
}

// stopper ends an endless run by panicking at a given tick.
type stopper struct {
	at uint32
}

var errStop = errors.New("stop")

func (s *stopper) Tick(tick uint32) {
	if tick == s.at {
		panic(errStop)
	}
}

func TestSimulation_RunForever(t *testing.T) {
	assert := assert.New(t)

	var order []string
	a := &recorder{name: "a", log: &order}
	sim := NewSimulation(a, &stopper{at: 4})

	assert.PanicsWithValue(errStop, func() { sim.RunForever() })
	assert.Equal([]uint32{0, 1, 2, 3, 4}, a.seen)
	assert.Equal(uint32(4), sim.Ticks())
}

// The device order within a step decides whether the splitter sees a write
// in the same tick or the next one.
func TestSimulation_Order(t *testing.T) {
	assert := assert.New(t)

	build := func(writerFirst bool) (*Simulation, *byteSplitter) {
		bus := NewBus()
		sp, err := NewSplitter[fixed.W4, fixed.W4, fixed.W8](bus)
		assert.NoError(err)
		w := &driver{at: 2, value: fixed.New[fixed.W4](0x5)}
		NewSocket(&w.store).ConnectTo(sp.LowEnd())
		if writerFirst {
			return NewSimulation(w, sp), sp
		}
		return NewSimulation(sp, w), sp
	}

	simA, spA := build(true)
	simB, spB := build(false)

	simA.Run(3)
	simB.Run(3)
	assert.Equal(fixed.New[fixed.W8](0x05), spA.Store().Get())
	assert.Equal(uint32(2), spA.Store().Tick())
	assert.Equal(fixed.New[fixed.W8](0x00), spB.Store().Get())

	simA.Run(1)
	simB.Run(1)
	assert.Equal(fixed.New[fixed.W8](0x05), spB.Store().Get())
	assert.Equal(uint32(3), spB.Store().Tick())
	assert.Equal(uint32(2), spA.Store().Tick())
}

package device

import (
	"log"
)

// Simulation ticks an ordered set of devices.
//
// The order of Devices is observable: devices ticked earlier in a step have
// already stamped their writes when later ones compare write ticks.
type Simulation struct {
	Verbose bool     // If set, logs every step.
	Devices []Device // Devices, in tick order.

	tick uint32
}

// NewSimulation creates a simulation starting at tick 0.
func NewSimulation(devices ...Device) (sim *Simulation) {
	sim = &Simulation{
		Devices: devices,
	}

	return
}

// Ticks returns the next tick to be simulated.
func (sim *Simulation) Ticks() uint32 {
	return sim.tick
}

// Step ticks every device once.
func (sim *Simulation) Step() {
	if sim.Verbose {
		log.Printf("simulation: tick %d", sim.tick)
	}

	for _, dev := range sim.Devices {
		dev.Tick(sim.tick)
	}

	sim.tick++
}

// Run steps the simulation a bounded number of ticks.
func (sim *Simulation) Run(ticks uint32) {
	for range ticks {
		sim.Step()
	}
}

// RunForever steps the simulation with no bound.
func (sim *Simulation) RunForever() {
	for {
		sim.Step()
	}
}

// RunUntil steps until done() is true between two steps, or until limit
// steps are taken. A limit of 0 is unbounded. Returns the steps taken.
func (sim *Simulation) RunUntil(done func() bool, limit uint32) (steps uint32) {
	for !done() {
		if limit != 0 && steps >= limit {
			return
		}
		sim.Step()
		steps++
	}

	return
}

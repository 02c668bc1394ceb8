// Package device implements the tick driven simulation substrate of the
// nybble emulator.
//
// Devices communicate only through stores: tick stamped, fixed-width value
// cells living in a Bus. Wiring two devices together makes them share one
// store, so each observes the writes of the other. A Simulation advances
// every device once per tick, in a fixed order.
package device

// Package io provides the peripherals of the nybble emulator and the
// persistence of program images.
//
// Peripherals are devices: they are advanced by a device.Simulation and
// exchange data with the computer only through wired stores.
package io

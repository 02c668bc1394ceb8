// Package cpu implements the instruction set and processor of the nybble
// computer.
//
// The processor has four 4-bit registers (A, X, Y, Z), sixteen words of data
// memory, a condition flag, and a program counter split into a 4-bit page
// and a 4-bit address. Instructions are a single byte. The processor talks
// to the outside world through sixteen 4-bit ports and sixteen 1-bit pins,
// which are wired to other devices with the device package.
package cpu

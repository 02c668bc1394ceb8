// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package fixed implements bit-exact fixed-width unsigned integers.
//
// The width of a value is part of its type: a U[W4] can not be mixed with a
// U[W8] without an explicit ChangeBits conversion. Every operation is total,
// and every result is masked back into the range [0, 2^N - 1].
package fixed

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Width is a bit width tag.
type Width interface {
	Bits() uint // Number of bits, 1 to 64.
}

// Bit widths used by the architecture.
type (
	W1  struct{}
	W2  struct{}
	W3  struct{}
	W4  struct{}
	W5  struct{}
	W6  struct{}
	W7  struct{}
	W8  struct{}
	W12 struct{}
	W16 struct{}
)

func (W1) Bits() uint  { return 1 }
func (W2) Bits() uint  { return 2 }
func (W3) Bits() uint  { return 3 }
func (W4) Bits() uint  { return 4 }
func (W5) Bits() uint  { return 5 }
func (W6) Bits() uint  { return 6 }
func (W7) Bits() uint  { return 7 }
func (W8) Bits() uint  { return 8 }
func (W12) Bits() uint { return 12 }
func (W16) Bits() uint { return 16 }

// U is an unsigned integer of exactly W bits.
type U[W Width] struct {
	v uint64
}

// BitsOf returns the number of bits of a width.
func BitsOf[W Width]() uint {
	var w W
	return w.Bits()
}

// maskOf returns the mask of the low 'bits' bits.
func maskOf(bits uint) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bits) - 1
}

// New truncates a value into W bits.
// No range check is done: New[W4](0x1f) is 0xf.
func New[W Width](value uint64) U[W] {
	return U[W]{v: value & maskOf(BitsOf[W]())}
}

// From truncates any native unsigned integer into W bits.
func From[W Width, T constraints.Unsigned](value T) U[W] {
	return New[W](uint64(value))
}

// Max returns the largest value representable in W bits.
func Max[W Width]() U[W] {
	return U[W]{v: maskOf(BitsOf[W]())}
}

// ChangeBits converts between widths, dropping high bits when narrowing and
// zero-extending when widening.
func ChangeBits[To Width, Src Width](u U[Src]) U[To] {
	return New[To](u.v)
}

// Bits returns the width of the value.
func (u U[W]) Bits() uint {
	return BitsOf[W]()
}

// Uint64 returns the value as a native integer.
func (u U[W]) Uint64() uint64 {
	return u.v
}

// Uint8 returns the low 8 bits of the value.
func (u U[W]) Uint8() uint8 {
	return uint8(u.v)
}

// Int returns the value as an int, for indexing.
func (u U[W]) Int() int {
	return int(u.v)
}

// IsZero is true if all bits are clear.
func (u U[W]) IsZero() bool {
	return u.v == 0
}

func (u U[W]) And(o U[W]) U[W] {
	return U[W]{v: u.v & o.v}
}

func (u U[W]) Or(o U[W]) U[W] {
	return U[W]{v: u.v | o.v}
}

func (u U[W]) Xor(o U[W]) U[W] {
	return U[W]{v: u.v ^ o.v}
}

func (u U[W]) Not() U[W] {
	return New[W](^u.v)
}

// Shl shifts left, dropping bits shifted past the width.
func (u U[W]) Shl(n uint) U[W] {
	if n >= 64 {
		return U[W]{}
	}
	return New[W](u.v << n)
}

// Shr shifts right, filling with zero.
func (u U[W]) Shr(n uint) U[W] {
	if n >= 64 {
		return U[W]{}
	}
	return U[W]{v: u.v >> n}
}

// Add adds modulo 2^N.
func (u U[W]) Add(o U[W]) U[W] {
	return New[W](u.v + o.v)
}

// Sub subtracts modulo 2^N.
func (u U[W]) Sub(o U[W]) U[W] {
	return New[W](u.v - o.v)
}

// String formats the value as hex, with enough digits for the width.
func (u U[W]) String() string {
	digits := (u.Bits() + 3) / 4
	return fmt.Sprintf("0x%0*x", digits, u.v)
}

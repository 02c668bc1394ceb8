package cpu

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// Program is a program memory image.
type Program struct {
	Code [PROGRAM_MEMORY_SIZE]uint8
}

// NewProgram creates a program from encoded instructions.
// Unused program memory is filled with NOP.
func NewProgram(code []uint8) (prog *Program, err error) {
	if len(code) > PROGRAM_MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}

	prog = &Program{}
	copy(prog.Code[:], code)

	return
}

// LoadProgram reads a complete program image.
func LoadProgram(r io.Reader) (prog *Program, err error) {
	prog = &Program{}
	_, err = io.ReadFull(r, prog.Code[:])
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		err = ErrProgramShort
	}
	if err != nil {
		prog = nil
	}

	return
}

// WriteTo writes the complete program image.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	count, err := w.Write(prog.Code[:])
	n = int64(count)
	return
}

// Word returns the instruction byte at a location.
func (prog *Program) Word(loc Location) uint8 {
	return prog.Code[loc.Index()]
}

// Len is the length of the program, ignoring trailing NOPs.
func (prog *Program) Len() (length int) {
	for n, word := range prog.Code {
		if word != 0 {
			length = n + 1
		}
	}
	return
}

// Words returns an iterator over the instruction bytes, up to Len().
func (prog *Program) Words() iter.Seq2[Location, uint8] {
	return func(yield func(loc Location, word uint8) bool) {
		for n := range prog.Len() {
			if !yield(LocationOf(n), prog.Code[n]) {
				return
			}
		}
	}
}

// Listing disassembles the program, one line per instruction.
func (prog *Program) Listing() (lines []string) {
	for loc, word := range prog.Words() {
		var text string
		inst, err := Decode(word)
		if err != nil {
			text = fmt.Sprintf(".byte 0x%02x", word)
		} else {
			text = inst.String()
		}
		lines = append(lines, fmt.Sprintf("%v: %02x  %v", loc, word, text))
	}

	return
}

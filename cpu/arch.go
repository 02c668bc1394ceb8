package cpu

import (
	"fmt"

	"github.com/ezrec/nybble/fixed"
)

const (
	WORD_BITS           = 4                      // Data word, register, and port width.
	PC_BITS             = 4                      // Program counter width.
	PAGE_BITS           = 4                      // Page register width.
	PAGE_SIZE           = 1 << PC_BITS           // Instructions per page.
	PAGE_COUNT          = 1 << PAGE_BITS         // Pages of program memory.
	PROGRAM_MEMORY_SIZE = PAGE_SIZE * PAGE_COUNT // Bytes in a program image.
	REGISTER_COUNT      = 4                      // A, X, Y, Z
	RAM_SIZE            = 1 << WORD_BITS         // Data memory, in words.
	PORT_COUNT          = 16                     // Output ports.
	PIN_COUNT           = 16                     // Output pins.
	STACK_LIMIT         = 16                     // Maximum return stack depth.
	MAX_IMMEDIATE       = (1 << WORD_BITS) - 1   // Largest LDI immediate.
	MAX_ADDRESS         = PAGE_SIZE - 1          // Largest address in a page.
	INSTRUCTION_BITS    = 8                      // Width of an encoded instruction.
)

type (
	Word       = fixed.U[fixed.W4] // Data word.
	RegisterId = fixed.U[fixed.W2] // Register index.
	PortId     = fixed.U[fixed.W4] // Port index.
	PinId      = fixed.U[fixed.W4] // Pin index.
	Address    = fixed.U[fixed.W4] // Instruction address in a page.
	Page       = fixed.U[fixed.W4] // Page number.
)

// Register ids.
var (
	REG_A = fixed.New[fixed.W2](0)
	REG_X = fixed.New[fixed.W2](1)
	REG_Y = fixed.New[fixed.W2](2)
	REG_Z = fixed.New[fixed.W2](3)
)

// RegisterName is the assembler name of each register.
var RegisterName = [REGISTER_COUNT]string{"A", "X", "Y", "Z"}

// Location of an instruction in program memory.
type Location struct {
	Page    Page
	Address Address
}

// LocationOf converts a linear instruction index to a location.
func LocationOf(index int) Location {
	return Location{
		Page:    fixed.New[fixed.W4](uint64(index / PAGE_SIZE)),
		Address: fixed.New[fixed.W4](uint64(index % PAGE_SIZE)),
	}
}

// Index is the linear instruction index of the location.
func (loc Location) Index() int {
	return loc.Page.Int()*PAGE_SIZE + loc.Address.Int()
}

// Next is the following location; the last address of a page is followed by
// the first address of the next page.
func (loc Location) Next() Location {
	return LocationOf((loc.Index() + 1) % PROGRAM_MEMORY_SIZE)
}

func (loc Location) String() string {
	return fmt.Sprintf("%x.%x", loc.Page.Uint64(), loc.Address.Uint64())
}

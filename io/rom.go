package io

import (
	"io/fs"

	"github.com/ezrec/nybble/cpu"
)

// ROM_EXT is the file extension of program images.
const ROM_EXT = ".nyb"

// Rom holds a program image, and moves it to and from file systems.
type Rom struct {
	Program *cpu.Program
}

// Unmarshal loads a program image from a file system.
func (rom *Rom) Unmarshal(filesys fs.FS, name string) (err error) {
	defer func() {
		if err != nil {
			err = &ErrRom{Name: name, Err: err}
		}
	}()

	inf, err := filesys.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err := cpu.LoadProgram(inf)
	if err != nil {
		return
	}

	rom.Program = prog

	return
}

// Marshal saves the program image to a file system.
func (rom *Rom) Marshal(filesys CreateFS, name string) (err error) {
	defer func() {
		if err != nil {
			err = &ErrRom{Name: name, Err: err}
		}
	}()

	if rom.Program == nil {
		err = ErrRomEmpty
		return
	}

	ouf, err := filesys.Create(name)
	if err != nil {
		return
	}

	_, err = rom.Program.WriteTo(ouf)
	if err != nil {
		ouf.Close()
		return
	}

	err = ouf.Close()

	return
}

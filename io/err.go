package io

import (
	"errors"

	"github.com/ezrec/nybble/translate"
)

var f = translate.From

var (
	ErrRomEmpty = errors.New(f("rom has no program"))
)

// ErrRom locates a program image failure.
type ErrRom struct {
	Name string
	Err  error
}

func (err *ErrRom) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrRom) Unwrap() error {
	return err.Err
}

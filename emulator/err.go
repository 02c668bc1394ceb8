package emulator

import (
	"errors"

	"github.com/ezrec/nybble/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit reached"))
)

// ErrRuntime indicates the tick of a runtime error.
type ErrRuntime struct {
	Tick uint32
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("tick %d %v", err.Tick, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

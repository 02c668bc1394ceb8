package device

import (
	"errors"

	"github.com/ezrec/nybble/translate"
)

var f = translate.From

var (
	ErrWidthMismatch = errors.New(f("splitter widths do not sum"))
	ErrBusMismatch   = errors.New(f("stores on different buses"))
)

package machine

import (
	"errors"

	"github.com/ezrec/ubf/translate"
)

var f = translate.From

var (
	// Script errors
	ErrScriptByte    = errors.New(f("value is not a byte (0..255)"))
	ErrScriptProgram = errors.New(f("program is not a source string or byte list"))
)

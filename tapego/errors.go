package tapego

import "errors"

var ErrTooManyIOs = errors.New("too many I/O instructions for resumable mode")

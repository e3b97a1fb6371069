package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// ErrInvalidInput marks input rejected by checks validator tags cannot express.
var ErrInvalidInput = errors.New("invalid input")

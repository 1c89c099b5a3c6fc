package storage

import "errors"

var ErrInvalidChoice = errors.New("choice must be yes or no")
var ErrUnknownBackend = errors.New("unknown storage backend")

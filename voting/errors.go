package voting

import (
	"fmt"
	"strings"
)

// ValidationError is a client mistake: missing or malformed vote fields.
type ValidationError struct {
	Missing []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "Missing required fields: " + strings.Join(e.Missing, ", ")
	}
	return e.Message
}

// StoreError wraps a storage failure. Its Error text is safe to show clients;
// the cause is only for logs.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("could not %s", e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

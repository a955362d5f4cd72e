package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced user, sale, or payment does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials is returned on failed authentication. The message is
// deliberately uniform for unknown emails and wrong passwords.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrContractNumberTaken is returned when a generated contract number collides
// with an existing sale. Callers retry with a fresh number.
var ErrContractNumberTaken = errors.New("contract number already taken")

// ValidationError reports a bad or missing input field. Validation always
// happens before any write.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError wraps a store write failure. The enclosing transaction has
// already been rolled back when one of these surfaces.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

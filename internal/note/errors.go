package note

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrAmbiguous    = errors.New("ambiguous match")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("invalid note")
	ErrConflict     = errors.New("slug already taken")
)

// GatewayError is a failure reported by the persistence layer.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

func gatewayErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var ge *GatewayError
	if errors.As(err, &ge) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrAmbiguous) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return &GatewayError{Op: op, Err: err}
}

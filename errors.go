package parkmeans

import (
	"errors"
	"fmt"

	"github.com/hupe1980/parkmeans/internal/matrix"
	"github.com/hupe1980/parkmeans/resource"
)

var (
	// ErrInvalidConfig is matched by every validation failure.
	// Validation runs before any work starts, so buffers are untouched
	// when it is returned.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMemoryLimit is returned when a run needs more scratch memory than
	// the resource controller's hard limit can ever grant.
	ErrMemoryLimit = errors.New("scratch memory exceeds controller limit")
)

// ErrInvalidArgument describes a rejected option or input.
//
// errors.Is(err, ErrInvalidConfig) reports true for it.
type ErrInvalidArgument struct {
	Name   string
	Value  any
	Reason string
}

func (e *ErrInvalidArgument) Error() string {
	return fmt.Sprintf("%s: %s %v %s", ErrInvalidConfig, e.Name, e.Value, e.Reason)
}

func (e *ErrInvalidArgument) Unwrap() error { return ErrInvalidConfig }

// ErrBufferLength indicates a flat buffer whose length does not match
// the declared shape.
type ErrBufferLength struct {
	Buffer   string
	Expected int
	Actual   int
}

func (e *ErrBufferLength) Error() string {
	return fmt.Sprintf("%s: %s buffer length: expected %d, got %d", ErrInvalidConfig, e.Buffer, e.Expected, e.Actual)
}

func (e *ErrBufferLength) Unwrap() error { return ErrInvalidConfig }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, matrix.ErrShape) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if errors.Is(err, resource.ErrExceedsLimit) {
		return fmt.Errorf("%w: %w", ErrMemoryLimit, err)
	}

	return err
}

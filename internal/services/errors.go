package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInputPrecondition marks requests rejected before any network call.
	ErrInputPrecondition = errors.New("invalid input")
	// ErrGenerationFailed matches every GenerationError.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrContractViolation matches GenerationErrors caused by a response
	// that does not honor the output schema.
	ErrContractViolation = errors.New("response violates output contract")
)

// FileReadError reports a document that could not be encoded.
type FileReadError struct {
	Input string
	Err   error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Input, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

type FailureReason string

const (
	ReasonUpstream FailureReason = "upstream"
	ReasonContract FailureReason = "contract"
)

// GenerationError is returned when the model call or its output fails.
type GenerationError struct {
	Op     string
	Reason FailureReason
	Err    error
}

func (e *GenerationError) Error() string {
	switch e.Reason {
	case ReasonContract:
		return fmt.Sprintf("%s: the AI model returned an unusable response: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: failed to get a response from the AI model: %v", e.Op, e.Err)
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func (e *GenerationError) Is(target error) bool {
	switch target {
	case ErrGenerationFailed:
		return true
	case ErrContractViolation:
		return e.Reason == ReasonContract
	}
	return false
}

func contractError(op string, format string, args ...any) error {
	return &GenerationError{Op: op, Reason: ReasonContract, Err: fmt.Errorf(format, args...)}
}

func preconditionError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInputPrecondition, fmt.Sprintf(format, args...))
}

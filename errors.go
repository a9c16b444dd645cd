// Completion: 100% - Module complete
package unisimd

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies why an emission call was rejected.
// Every category is a code-generation time failure: the caller handed the
// encoder something it cannot represent. Runtime numeric conditions
// (overflow, division by zero, NaN propagation, out-of-range conversion)
// are never detected here.
type ErrorCategory int

const (
	CategoryOperand ErrorCategory = iota
	CategoryImmediate
	CategoryDisplacement
	CategoryUnsupported
	CategoryLabel
	CategoryConfig
	CategoryInternal
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryOperand:
		return "invalid operand"
	case CategoryImmediate:
		return "immediate out of range"
	case CategoryDisplacement:
		return "unrepresentable displacement"
	case CategoryUnsupported:
		return "unsupported operation"
	case CategoryLabel:
		return "unbound label"
	case CategoryConfig:
		return "invalid configuration"
	case CategoryInternal:
		return "internal encoder error"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per category. Use errors.Is against an error
// returned by any Out method.
var (
	ErrInvalidOperand = errors.New(CategoryOperand.String())
	ErrImmediateRange = errors.New(CategoryImmediate.String())
	ErrDisplacement   = errors.New(CategoryDisplacement.String())
	ErrUnsupported    = errors.New(CategoryUnsupported.String())
	ErrUnboundLabel   = errors.New(CategoryLabel.String())
	ErrConfig         = errors.New(CategoryConfig.String())
	ErrInternal       = errors.New(CategoryInternal.String())
)

var categorySentinels = map[ErrorCategory]error{
	CategoryOperand:      ErrInvalidOperand,
	CategoryImmediate:    ErrImmediateRange,
	CategoryDisplacement: ErrDisplacement,
	CategoryUnsupported:  ErrUnsupported,
	CategoryLabel:        ErrUnboundLabel,
	CategoryConfig:       ErrConfig,
	CategoryInternal:     ErrInternal,
}

// EncodeError is returned by every rejected emission call
type EncodeError struct {
	Category ErrorCategory
	Op       string // operation being emitted, empty outside an emission call
	Message  string
}

// Error implements the error interface
func (e *EncodeError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Category, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Category, e.Message)
}

// Is reports whether target is the sentinel for e's category
func (e *EncodeError) Is(target error) bool {
	return categorySentinels[e.Category] == target
}

func newError(category ErrorCategory, format string, args ...any) *EncodeError {
	return &EncodeError{Category: category, Message: fmt.Sprintf(format, args...)}
}

// withOp attaches the operation name to an EncodeError that does not carry one yet.
func withOp(err error, op string) error {
	var ee *EncodeError
	if errors.As(err, &ee) && ee.Op == "" {
		cp := *ee
		cp.Op = op
		return &cp
	}
	return err
}

// Package errors provides the fatal semantic errors raised while binding
// and evaluating DumbBrain expressions.
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"

	"github.com/dumbbrain-lang/dumbbrain/internal/object"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryType     ErrorCategory = "TYPE"
	CategoryInternal ErrorCategory = "INTERNAL"
)

// Error codes
const (
	CodeTypeMismatch       = "TYPE_MISMATCH"
	CodeUnaryTypeMismatch  = "UNARY_TYPE_MISMATCH"
	CodeComparisonMismatch = "COMPARISON_TYPE_MISMATCH"
	CodeMissingValue       = "MISSING_VALUE"
	CodeInternal           = "INTERNAL"
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Detail renders the error together with the function that raised it
func (e *StandardError) Detail() string {
	return fmt.Sprintf("%s (caller: %s)", e.Error(), e.Caller)
}

// NewStandardError creates a new standardized error
func NewStandardError(category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	return newStandardError(category, code, message, context)
}

// newStandardError records the caller of its own caller.
func newStandardError(category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	pc, _, _, ok := runtime.Caller(2)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// IsCategory reports whether err wraps a StandardError of category
func IsCategory(err error, category ErrorCategory) bool {
	var se *StandardError
	return stderrors.As(err, &se) && se.Category == category
}

// Common error constructors. The caller recorded is the function that
// called the constructor.

// TypeMismatch reports arithmetic on operands that are not both numbers.
func TypeMismatch(operation fmt.Stringer, left, right object.Type) *StandardError {
	return newStandardError(CategoryType, CodeTypeMismatch,
		fmt.Sprintf("unexpected types for %s: %s, %s", operation, left, right),
		map[string]interface{}{"operation": operation.String(), "left": left, "right": right})
}

// UnaryTypeMismatch reports a prefix operator applied to a non-number.
func UnaryTypeMismatch(operation fmt.Stringer, operand object.Type) *StandardError {
	return newStandardError(CategoryType, CodeUnaryTypeMismatch,
		fmt.Sprintf("unexpected type for %s: %s", operation, operand),
		map[string]interface{}{"operation": operation.String(), "operand": operand})
}

// ComparisonTypeMismatch reports a comparison or logical operation whose
// runtime operands do not support it.
func ComparisonTypeMismatch(operation fmt.Stringer, left, right object.Object) *StandardError {
	return newStandardError(CategoryType, CodeComparisonMismatch,
		fmt.Sprintf("cannot apply %s to %s and %s", operation, describeType(left), describeType(right)),
		map[string]interface{}{"operation": operation.String(), "left": object.Describe(left), "right": object.Describe(right)})
}

func MissingValue(operation fmt.Stringer) *StandardError {
	return newStandardError(CategoryInternal, CodeMissingValue,
		fmt.Sprintf("missing operand value for %s", operation),
		map[string]interface{}{"operation": operation.String()})
}

func Internal(format string, args ...interface{}) *StandardError {
	return newStandardError(CategoryInternal, CodeInternal, fmt.Sprintf(format, args...), nil)
}

func describeType(o object.Object) string {
	if o == nil {
		return "none"
	}
	return o.Type().String()
}

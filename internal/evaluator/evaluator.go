// Package evaluator computes the value of a bound expression.
package evaluator

import (
	"math"

	"github.com/dumbbrain-lang/dumbbrain/internal/binder"
	"github.com/dumbbrain-lang/dumbbrain/internal/errors"
	"github.com/dumbbrain-lang/dumbbrain/internal/object"
)

// Epsilon is the tolerance numeric equality and inequality allow.
const Epsilon = 1e-6

// Evaluate walks expr bottom-up. Both operands of every binary node are
// evaluated before the operator is applied, logical operators included.
// Comparison and logical operand types are checked here.
func Evaluate(expr binder.BoundExpression) (object.Object, error) {
	switch e := expr.(type) {
	case *binder.BoundLiteral:
		return e.Value, nil
	case *binder.BoundUnary:
		return evalUnary(e)
	case *binder.BoundBinary:
		return evalBinary(e)
	case nil:
		return nil, errors.Internal("no expression to evaluate")
	default:
		return nil, errors.Internal("unsupported bound expression %T", expr)
	}
}

func evalUnary(e *binder.BoundUnary) (object.Object, error) {
	operand, err := Evaluate(e.Operand)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case binder.Identity:
		return operand, nil
	case binder.Negation:
		if e.Operand.Type() != object.TypeNumber {
			return nil, errors.UnaryTypeMismatch(e.Op, e.Operand.Type())
		}
		n, ok := object.AsNumber(operand)
		if !ok {
			return nil, errors.MissingValue(e.Op)
		}
		return object.Number(-n), nil
	default:
		return nil, errors.Internal("unknown unary operation %s", e.Op)
	}
}

func evalBinary(e *binder.BoundBinary) (object.Object, error) {
	left, err := Evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := Evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch {
	case e.Op.IsArithmetic():
		return arithmetic(e.Op, left, right)
	case e.Op.IsComparison():
		return compare(e.Op, left, right)
	case e.Op.IsLogical():
		return logical(e.Op, left, right)
	default:
		return nil, errors.Internal("unknown binary operation %s", e.Op)
	}
}

// arithmetic follows IEEE-754; division by zero yields an infinity or NaN.
func arithmetic(op binder.BinaryOperation, left, right object.Object) (object.Object, error) {
	l, lok := object.AsNumber(left)
	r, rok := object.AsNumber(right)
	if !lok || !rok {
		return nil, errors.MissingValue(op)
	}

	switch op {
	case binder.Add:
		return object.Number(l + r), nil
	case binder.Subtract:
		return object.Number(l - r), nil
	case binder.Multiply:
		return object.Number(l * r), nil
	default:
		return object.Number(l / r), nil
	}
}

func compare(op binder.BinaryOperation, left, right object.Object) (object.Object, error) {
	switch l := left.(type) {
	case object.Number:
		r, ok := right.(object.Number)
		if !ok {
			break
		}
		return object.Boolean(compareNumbers(op, float64(l), float64(r))), nil
	case object.Boolean:
		r, ok := right.(object.Boolean)
		if !ok {
			break
		}
		switch op {
		case binder.Equality:
			return object.Boolean(l == r), nil
		case binder.Inequality:
			return object.Boolean(l != r), nil
		}
	}
	return nil, errors.ComparisonTypeMismatch(op, left, right)
}

// compareNumbers treats values closer than Epsilon as equal and values
// further apart than Epsilon as different. Values exactly Epsilon apart
// are neither. Ordering is exact.
func compareNumbers(op binder.BinaryOperation, l, r float64) bool {
	switch op {
	case binder.Equality:
		return math.Abs(l-r) < Epsilon
	case binder.Inequality:
		return math.Abs(l-r) > Epsilon
	case binder.Less:
		return l < r
	case binder.LessEquals:
		return l <= r
	case binder.Greater:
		return l > r
	default:
		return l >= r
	}
}

func logical(op binder.BinaryOperation, left, right object.Object) (object.Object, error) {
	l, lok := object.AsBoolean(left)
	r, rok := object.AsBoolean(right)
	if !lok || !rok {
		return nil, errors.ComparisonTypeMismatch(op, left, right)
	}
	if op == binder.LogicalAnd {
		return object.Boolean(l && r), nil
	}
	return object.Boolean(l || r), nil
}

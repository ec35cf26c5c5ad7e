package evaluator

import (
	"math"
	"testing"

	"github.com/dumbbrain-lang/dumbbrain/internal/binder"
	"github.com/dumbbrain-lang/dumbbrain/internal/errors"
	"github.com/dumbbrain-lang/dumbbrain/internal/lexer"
	"github.com/dumbbrain-lang/dumbbrain/internal/object"
	"github.com/dumbbrain-lang/dumbbrain/internal/parser"
)

func evalSource(t *testing.T, input string) (object.Object, error) {
	t.Helper()
	expr, diags := parser.Parse(lexer.Lex(input))
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", input, diags.Strings())
	}
	bound, err := binder.Bind(expr)
	if err != nil {
		t.Fatalf("bind %q failed: %v", input, err)
	}
	return Evaluate(bound)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		input    string
		expected object.Object
	}{
		{"3", object.Number(3)},
		{"true", object.Boolean(true)},
		{"false", object.Boolean(false)},
		{"3 + 4", object.Number(7)},
		{"1 - 2", object.Number(-1)},
		{"2 * 4", object.Number(8)},
		{"5 / 6", object.Number(5.0 / 6.0)},
		{"5 == 6", object.Boolean(false)},
		{"5 != 6", object.Boolean(true)},
		{"5 > 6", object.Boolean(false)},
		{"5 >= 5", object.Boolean(true)},
		{"4 < 5", object.Boolean(true)},
		{"5 <= 4", object.Boolean(false)},
		{"(5 + 6) * 3 > 2 + 4 == true", object.Boolean(true)},
		{"-1 * -2", object.Number(2)},
		{"+7", object.Number(7)},
		{"--3", object.Number(3)},
		{"-(2 + 3) * 2", object.Number(-10)},
		{"10 - 2 - 3", object.Number(5)},
		{"16 / 4 / 2", object.Number(2)},
		{"true == true", object.Boolean(true)},
		{"true != false", object.Boolean(true)},
		{"true && false", object.Boolean(false)},
		{"true && true", object.Boolean(true)},
		{"false || true", object.Boolean(true)},
		{"false || false", object.Boolean(false)},
		{"1 < 2 && 3 < 4", object.Boolean(true)},
		{"true && false == false", object.Boolean(true)},
	}

	for i, tt := range tests {
		got, err := evalSource(t, tt.input)
		if err != nil {
			t.Errorf("tests[%d] - evaluate %q failed: %v", i, tt.input, err)
			continue
		}
		if !object.Equal(got, tt.expected) {
			t.Errorf("tests[%d] - value of %q wrong. expected=%s, got=%s", i, tt.input, tt.expected, object.Describe(got))
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	got, err := evalSource(t, "1 / 0")
	if err != nil {
		t.Fatalf("division by zero must not fail: %v", err)
	}
	n, _ := object.AsNumber(got)
	if !math.IsInf(n, 1) {
		t.Fatalf("expected +Inf, got %v", n)
	}

	got, _ = evalSource(t, "0 / 0")
	if n, _ := object.AsNumber(got); !math.IsNaN(n) {
		t.Fatalf("expected NaN, got %v", n)
	}
}

func TestEpsilonComparison(t *testing.T) {
	num := func(f float64) *binder.BoundLiteral {
		return &binder.BoundLiteral{Value: object.Number(f), LiteralType: object.TypeNumber}
	}
	tests := []struct {
		left, right float64
		op          binder.BinaryOperation
		expected    bool
	}{
		{1, 1 + 1e-7, binder.Equality, true},
		{1, 1 + 1e-7, binder.Inequality, false},
		{1, 1 + 1e-5, binder.Equality, false},
		{1, 1 + 1e-5, binder.Inequality, true},
		{0, Epsilon, binder.Equality, false},
		{0, Epsilon, binder.Inequality, false},
		{1, 1 + 1e-7, binder.Less, true},
		{1, 1 + 1e-7, binder.Greater, false},
	}

	for i, tt := range tests {
		expr := binder.NewBinary(num(tt.left), tt.op, num(tt.right), object.TypeBoolean)
		got, err := Evaluate(expr)
		if err != nil {
			t.Errorf("tests[%d] - unexpected error: %v", i, err)
			continue
		}
		if !object.Equal(got, object.Boolean(tt.expected)) {
			t.Errorf("tests[%d] - %v %s %v wrong. expected=%t, got=%s", i, tt.left, tt.op, tt.right, tt.expected, got)
		}
	}
}

func TestRuntimeTypeErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"1 == true", "cannot apply Equality to Number and Boolean"},
		{"false != 0", "cannot apply Inequality to Boolean and Number"},
		{"true < false", "cannot apply Less to Boolean and Boolean"},
		{"true >= true", "cannot apply GreaterEquals to Boolean and Boolean"},
		{"1 && true", "cannot apply LogicalAnd to Number and Boolean"},
		{"false || 2", "cannot apply LogicalOr to Boolean and Number"},
		{"true && 1 == 1", "cannot apply LogicalAnd to Boolean and Number"},
	}

	for i, tt := range tests {
		_, err := evalSource(t, tt.input)
		if err == nil {
			t.Errorf("tests[%d] - expected error for %q", i, tt.input)
			continue
		}
		se, ok := err.(*errors.StandardError)
		if !ok {
			t.Errorf("tests[%d] - expected *errors.StandardError, got %T", i, err)
			continue
		}
		if se.Category != errors.CategoryType || se.Message != tt.message {
			t.Errorf("tests[%d] - error wrong. expected=%q, got=%s %q", i, tt.message, se.Category, se.Message)
		}
	}
}

func TestLogicalOperatorsDoNotShortCircuit(t *testing.T) {
	for _, input := range []string{"false && (1 < true)", "true || (false > true)"} {
		if _, err := evalSource(t, input); !errors.IsCategory(err, errors.CategoryType) {
			t.Errorf("%q: right operand must still be evaluated, got %v", input, err)
		}
	}
}

func TestMissingLiteralValue(t *testing.T) {
	missing := &binder.BoundLiteral{LiteralType: object.TypeNumber}

	got, err := Evaluate(missing)
	if err != nil || got != nil {
		t.Fatalf("missing literal should evaluate to nil, got %v (%v)", got, err)
	}

	one := &binder.BoundLiteral{Value: object.Number(1), LiteralType: object.TypeNumber}
	_, err = Evaluate(binder.NewBinary(missing, binder.Add, one, object.TypeNumber))
	if !errors.IsCategory(err, errors.CategoryInternal) {
		t.Fatalf("expected internal error for missing operand, got %v", err)
	}

	_, err = Evaluate(binder.NewUnary(binder.Negation, missing, object.TypeNumber))
	if !errors.IsCategory(err, errors.CategoryInternal) {
		t.Fatalf("expected internal error for missing operand, got %v", err)
	}

	_, err = Evaluate(binder.NewBinary(missing, binder.Equality, one, object.TypeBoolean))
	if !errors.IsCategory(err, errors.CategoryType) {
		t.Fatalf("expected type error comparing a missing value, got %v", err)
	}
}

func TestEvaluateNil(t *testing.T) {
	if _, err := Evaluate(nil); !errors.IsCategory(err, errors.CategoryInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

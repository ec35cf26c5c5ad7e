package binder

import (
	stderrors "errors"
	"testing"

	"github.com/dumbbrain-lang/dumbbrain/internal/errors"
	"github.com/dumbbrain-lang/dumbbrain/internal/lexer"
	"github.com/dumbbrain-lang/dumbbrain/internal/object"
	"github.com/dumbbrain-lang/dumbbrain/internal/parser"
	"github.com/dumbbrain-lang/dumbbrain/internal/syntax"
)

func bindSource(t *testing.T, input string) (BoundExpression, error) {
	t.Helper()
	expr, diags := parser.Parse(lexer.Lex(input))
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", input, diags.Strings())
	}
	return Bind(expr)
}

func TestBindTypes(t *testing.T) {
	tests := []struct {
		input    string
		expected object.Type
		rendered string
	}{
		{"1", object.TypeNumber, "1"},
		{"true", object.TypeBoolean, "true"},
		{"(((2)))", object.TypeNumber, "2"},
		{"1 + 2 * 3", object.TypeNumber, "Add(1, Multiply(2, 3))"},
		{"-4", object.TypeNumber, "Negation(4)"},
		{"+4", object.TypeNumber, "Identity(4)"},
		{"1 < 2", object.TypeBoolean, "Less(1, 2)"},
		{"true && false", object.TypeBoolean, "LogicalAnd(true, false)"},
		{"1 || 2", object.TypeBoolean, "LogicalOr(1, 2)"},
		{"true <= 1", object.TypeBoolean, "LessEquals(true, 1)"},
		{"(5 + 6) * 3 > 2 + 4 == true", object.TypeBoolean, "Equality(Greater(Multiply(Add(5, 6), 3), Add(2, 4)), true)"},
	}

	for i, tt := range tests {
		bound, err := bindSource(t, tt.input)
		if err != nil {
			t.Errorf("tests[%d] - bind %q failed: %v", i, tt.input, err)
			continue
		}
		if bound.Type() != tt.expected {
			t.Errorf("tests[%d] - type wrong. expected=%s, got=%s", i, tt.expected, bound.Type())
		}
		if got := bound.String(); got != tt.rendered {
			t.Errorf("tests[%d] - tree wrong. expected=%q, got=%q", i, tt.rendered, got)
		}
	}
}

func TestBindTypeErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"true + 1", "unexpected types for Add: Boolean, Number"},
		{"1 - false", "unexpected types for Subtract: Number, Boolean"},
		{"(1 < 2) * 3", "unexpected types for Multiply: Boolean, Number"},
		{"true / true", "unexpected types for Divide: Boolean, Boolean"},
		{"-true", "unexpected type for Negation: Boolean"},
		{"+(1 == 1)", "unexpected type for Identity: Boolean"},
		{"1 == (true + 1)", "unexpected types for Add: Boolean, Number"},
	}

	for i, tt := range tests {
		_, err := bindSource(t, tt.input)
		if err == nil {
			t.Errorf("tests[%d] - expected error for %q", i, tt.input)
			continue
		}
		var se *errors.StandardError
		if !stderrors.As(err, &se) {
			t.Errorf("tests[%d] - expected *errors.StandardError, got %T", i, err)
			continue
		}
		if se.Category != errors.CategoryType {
			t.Errorf("tests[%d] - category wrong. expected=%s, got=%s", i, errors.CategoryType, se.Category)
		}
		if se.Message != tt.message {
			t.Errorf("tests[%d] - message wrong. expected=%q, got=%q", i, tt.message, se.Message)
		}
	}
}

func TestBindRejectsRecoveredTokens(t *testing.T) {
	expr, diags := parser.Parse(lexer.Lex("1 + a"))
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic")
	}
	_, err := Bind(expr)
	if !errors.IsCategory(err, errors.CategoryInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestBindNil(t *testing.T) {
	if _, err := Bind(nil); !errors.IsCategory(err, errors.CategoryInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestBindBinaryOperator(t *testing.T) {
	tests := []struct {
		kind     syntax.Kind
		expected BinaryOperation
	}{
		{syntax.PlusToken, Add},
		{syntax.MinusToken, Subtract},
		{syntax.StarToken, Multiply},
		{syntax.SlashToken, Divide},
		{syntax.EqualsEqualsToken, Equality},
		{syntax.BangEqualsToken, Inequality},
		{syntax.LessToken, Less},
		{syntax.LessEqualsToken, LessEquals},
		{syntax.GreaterToken, Greater},
		{syntax.GreaterEqualsToken, GreaterEquals},
		{syntax.AmpersandAmpersandToken, LogicalAnd},
		{syntax.PipePipeToken, LogicalOr},
	}

	for i, tt := range tests {
		op, err := BindBinaryOperator(tt.kind)
		if err != nil || op != tt.expected {
			t.Errorf("tests[%d] - %s mapped wrong. expected=%s, got=%s (err=%v)", i, tt.kind, tt.expected, op, err)
		}
	}

	for _, kind := range []syntax.Kind{syntax.NumberToken, syntax.LeftParenthesisToken, syntax.BadToken} {
		if _, err := BindBinaryOperator(kind); err == nil {
			t.Errorf("expected error for %s", kind)
		}
	}
}

func TestBindUnaryOperator(t *testing.T) {
	if op, err := BindUnaryOperator(syntax.PlusToken); err != nil || op != Identity {
		t.Fatalf("+ should map to Identity, got %s (%v)", op, err)
	}
	if op, err := BindUnaryOperator(syntax.MinusToken); err != nil || op != Negation {
		t.Fatalf("- should map to Negation, got %s (%v)", op, err)
	}
	if _, err := BindUnaryOperator(syntax.StarToken); err == nil {
		t.Fatalf("expected error for StarToken")
	}
}

func TestOperationClasses(t *testing.T) {
	for op := Add; op <= LogicalOr; op++ {
		classes := 0
		for _, in := range []bool{op.IsArithmetic(), op.IsComparison(), op.IsLogical()} {
			if in {
				classes++
			}
		}
		if classes != 1 {
			t.Errorf("%s belongs to %d classes", op, classes)
		}
	}
	if BinaryOperation(99).String() != "BinaryOperation(99)" {
		t.Errorf("unexpected fallback name %q", BinaryOperation(99))
	}
}

// Package pipeline runs source text through lexing, parsing, binding and
// evaluation.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/dumbbrain-lang/dumbbrain/internal/binder"
	"github.com/dumbbrain-lang/dumbbrain/internal/diagnostic"
	"github.com/dumbbrain-lang/dumbbrain/internal/evaluator"
	"github.com/dumbbrain-lang/dumbbrain/internal/lexer"
	"github.com/dumbbrain-lang/dumbbrain/internal/object"
	"github.com/dumbbrain-lang/dumbbrain/internal/parser"
	"github.com/dumbbrain-lang/dumbbrain/internal/position"
)

// Stage names a step of the pipeline.
type Stage string

const (
	StageLex      Stage = "lex"
	StageParse    Stage = "parse"
	StageBind     Stage = "bind"
	StageEvaluate Stage = "evaluate"
	StageDone     Stage = "done"
)

// Result holds everything a run produced. Fields for stages that did not
// run are zero.
type Result struct {
	Source      *position.Source
	Tokens      []lexer.Token
	Tree        parser.Expression
	Diagnostics diagnostic.List
	Bound       binder.BoundExpression
	Value       object.Object
	// Stage is the last stage reached; on failure it is the stage that failed
	Stage Stage
	Err   error
}

// DiagnosticsError is returned when parsing reported diagnostics. Binding
// never runs on a tree with diagnostics.
type DiagnosticsError struct {
	Source      *position.Source
	Diagnostics diagnostic.List
}

func (e *DiagnosticsError) Error() string { return e.Diagnostics.Err().Error() }
func (e *DiagnosticsError) Unwrap() error { return e.Diagnostics.Err() }

// Render returns every diagnostic with its highlighted source line
func (e *DiagnosticsError) Render() string {
	var sb strings.Builder
	for _, d := range e.Diagnostics {
		sb.WriteString(d.Render(e.Source))
	}
	return sb.String()
}

// Evaluate runs text through the whole pipeline
func Evaluate(text string) (object.Object, error) {
	return EvaluateContext(context.Background(), text)
}

// EvaluateContext is Evaluate with cancellation checked between stages
func EvaluateContext(ctx context.Context, text string) (object.Object, error) {
	res := Run(ctx, "", text)
	return res.Value, res.Err
}

// Run runs text through the pipeline and keeps every intermediate
// artefact. name labels the source in rendered diagnostics and may be
// empty.
func Run(ctx context.Context, name, text string) *Result {
	res := &Result{Source: position.NewSource(name, text), Stage: StageLex}

	res.Tokens = lexer.Lex(text)
	if res.fail(ctx.Err()) {
		return res
	}

	res.Stage = StageParse
	res.Tree, res.Diagnostics = parser.Parse(res.Tokens)
	if len(res.Diagnostics) > 0 {
		res.Err = &DiagnosticsError{Source: res.Source, Diagnostics: res.Diagnostics}
		return res
	}
	if res.fail(ctx.Err()) {
		return res
	}

	res.Stage = StageBind
	bound, err := binder.Bind(res.Tree)
	if res.fail(err) {
		return res
	}
	res.Bound = bound
	if res.fail(ctx.Err()) {
		return res
	}

	res.Stage = StageEvaluate
	value, err := evaluator.Evaluate(res.Bound)
	if res.fail(err) {
		return res
	}
	res.Value = value
	res.Stage = StageDone
	return res
}

func (r *Result) fail(err error) bool {
	if err == nil {
		return false
	}
	r.Err = fmt.Errorf("%s: %w", r.Stage, err)
	return true
}

// OK reports whether the run produced a value without error
func (r *Result) OK() bool { return r.Err == nil }

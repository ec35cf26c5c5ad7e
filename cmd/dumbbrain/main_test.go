package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dumbbrain-lang/dumbbrain/internal/cli"
	"github.com/dumbbrain-lang/dumbbrain/internal/pipeline"
)

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func noConfig(t *testing.T) string {
	t.Helper()
	return "--config=" + filepath.Join(t.TempDir(), "none.json")
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{[]string{"1 + 2 * 3"}, 0, "7\n", ""},
		{[]string{"(5", "+", "6)", "*", "3", ">", "2 + 4 == true"}, 0, "true\n", ""},
		{[]string{"(1 + 2"}, 1, "", "at 1:7: expected RightParenthesisToken"},
		{[]string{"true + 1"}, 1, "", "unexpected types for Add: Boolean, Number"},
	}

	for i, tt := range tests {
		args := append([]string{"eval", noConfig(t)}, tt.args...)
		code, stdout, stderr := runCmd(t, args...)
		if code != tt.code {
			t.Errorf("tests[%d] - exit code wrong. expected=%d, got=%d (stderr=%q)", i, tt.code, code, stderr)
		}
		if stdout != tt.stdout {
			t.Errorf("tests[%d] - stdout wrong. expected=%q, got=%q", i, tt.stdout, stdout)
		}
		if !strings.Contains(stderr, tt.stderr) {
			t.Errorf("tests[%d] - stderr should contain %q, got %q", i, tt.stderr, stderr)
		}
	}
}

func TestLeadingMinusIsAnOperand(t *testing.T) {
	tests := []struct {
		args   []string
		stdout string
	}{
		{[]string{"eval", "-1 * -2"}, "2\n"},
		{[]string{"eval", "--debug", "-1", "*", "-2"}, "2\n"},
		{[]string{"eval", "--", "-3 + 1"}, "-2\n"},
		{[]string{"eval", "--insecure=false", "-(2 + 3) < -4"}, "true\n"},
	}

	for i, tt := range tests {
		args := append([]string{tt.args[0], noConfig(t)}, tt.args[1:]...)
		code, stdout, stderr := runCmd(t, args...)
		if code != 0 || stdout != tt.stdout {
			t.Errorf("tests[%d] - expected=%q, got=%q (code=%d, stderr=%q)", i, tt.stdout, stdout, code, stderr)
		}
	}

	code, stdout, _ := runCmd(t, "tokens", "-1")
	if code != 0 || !strings.Contains(stdout, "MinusToken") {
		t.Fatalf("tokens should lex a leading minus (%d):\n%s", code, stdout)
	}
}

func TestParseLeadingFlags(t *testing.T) {
	fs, _ := newFlagSet("eval", io.Discard)
	remote := fs.String("remote", "", "")
	rest, err := parseLeadingFlags(fs, []string{"--remote", "127.0.0.1:1", "-x", "--verbose"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if *remote != "127.0.0.1:1" || strings.Join(rest, " ") != "-x --verbose" {
		t.Fatalf("unexpected split remote=%q rest=%q", *remote, rest)
	}

	fs, _ = newFlagSet("eval", io.Discard)
	fs.String("remote", "", "")
	if _, err := parseLeadingFlags(fs, []string{"--remote"}); err == nil {
		t.Fatalf("missing flag value should fail")
	}
}

func TestEvalInsecureDefaultsOff(t *testing.T) {
	fs, _ := newFlagSet("eval", io.Discard)
	insecure := fs.Bool("insecure", false, "")
	if _, err := parseLeadingFlags(fs, []string{"1"}); err != nil || *insecure {
		t.Fatalf("insecure should default to false, got %v (%v)", *insecure, err)
	}
}

func TestReportMissingValue(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := report(&pipeline.Result{}, "", &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if stdout.String() != "none\n" {
		t.Fatalf("stdout wrong. expected=%q, got=%q", "none\n", stdout.String())
	}
}

func TestEvalRequiresExpression(t *testing.T) {
	if code, _, stderr := runCmd(t, "eval", noConfig(t)); code != 1 || !strings.Contains(stderr, "insufficient arguments") {
		t.Fatalf("expected usage error, got %d %q", code, stderr)
	}
}

func TestUnknownCommand(t *testing.T) {
	code, _, stderr := runCmd(t, "frobnicate")
	if code != 1 || !strings.Contains(stderr, `unknown command "frobnicate"`) {
		t.Fatalf("unexpected result %d %q", code, stderr)
	}
}

func TestTokensCommand(t *testing.T) {
	code, stdout, _ := runCmd(t, "tokens", "1 && x")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	for _, want := range []string{"NumberToken", "AmpersandAmpersandToken", "IdentifierToken"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("token table missing %s:\n%s", want, stdout)
		}
	}
}

func TestTreeCommand(t *testing.T) {
	code, stdout, _ := runCmd(t, "tree", "1+2")
	want := "ParseTree\n└─ BinaryExpression\n"
	if code != 0 || !strings.HasPrefix(stdout, want) {
		t.Fatalf("unexpected tree (%d):\n%s", code, stdout)
	}

	code, stdout, _ = runCmd(t, "tree", "--bound", "-1 < 2")
	if code != 0 || !strings.HasPrefix(stdout, "BoundTree\n└─ Binary Less : Boolean\n") {
		t.Fatalf("unexpected bound tree (%d):\n%s", code, stdout)
	}

	if code, _, _ = runCmd(t, "tree", "1 +"); code != 1 {
		t.Fatalf("tree with diagnostics should fail")
	}
}

func TestRunCommandKeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	sources := []string{"1 + 1", "2 * 21", "true + 1", "5 > 6"}
	var files []string
	for i, src := range sources {
		path := filepath.Join(dir, string(rune('a'+i))+".db")
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
		files = append(files, path)
	}

	code, stdout, stderr := runCmd(t, append([]string{"run", noConfig(t), "--jobs=2"}, files...)...)
	if code != 1 {
		t.Fatalf("expected failure because of the type error, got %d", code)
	}
	want := files[0] + ": 2\n" + files[1] + ": 42\n" + files[3] + ": false\n"
	if stdout != want {
		t.Fatalf("stdout wrong.\nexpected=%q\ngot=%q", want, stdout)
	}
	if !strings.Contains(stderr, files[2]+": Error: bind:") {
		t.Fatalf("stderr should name the failing file: %q", stderr)
	}
}

func TestRunFilesMissingFile(t *testing.T) {
	_, err := runFiles(context.Background(), []string{filepath.Join(t.TempDir(), "missing.db")}, 1)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := runCmd(t, "version")
	if code != 0 || !strings.HasPrefix(stdout, "dumbbrain v"+cli.Version) {
		t.Fatalf("unexpected version output %q", stdout)
	}
	code, stdout, _ = runCmd(t, "version", "--json")
	if code != 0 || !strings.Contains(stdout, `"tool": "dumbbrain"`) {
		t.Fatalf("unexpected JSON output %q", stdout)
	}
}

func newTestREPL() (*REPL, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cfg := cli.DefaultConfig()
	cfg.MaxHistory = 2
	return NewREPL(cfg, cli.NewLoggerTo(&errOut, false, false), &out, &errOut), &out, &errOut
}

func TestREPLEvaluatesLines(t *testing.T) {
	r, out, errOut := newTestREPL()
	r.RunPlain(strings.NewReader("1 + 2\n\n-1 * -2\ntrue && 1 == 1\n:quit\n3\n"))

	if out.String() != "=> 3\n=> 2\n" {
		t.Fatalf("output wrong: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "cannot apply LogicalAnd to Boolean and Number") {
		t.Fatalf("missing evaluation error: %q", errOut.String())
	}
}

func TestREPLPlainLongLine(t *testing.T) {
	r, out, _ := newTestREPL()
	long := strings.Repeat("1 + ", 20000) + "1"
	if err := r.RunPlain(strings.NewReader(long + "\n2\n")); err != nil {
		t.Fatalf("line under the cap should be read: %v", err)
	}
	if out.String() != "=> 20001\n=> 2\n" {
		t.Fatalf("output wrong: %q", out.String())
	}

	r, _, errOut := newTestREPL()
	tooLong := strings.Repeat("1", maxLineBytes+1)
	if err := r.RunPlain(strings.NewReader(tooLong + "\n")); !errors.Is(err, bufio.ErrTooLong) {
		t.Fatalf("expected ErrTooLong, got %v", err)
	}
	if !strings.Contains(errOut.String(), "[ERROR]") {
		t.Fatalf("read error not logged: %q", errOut.String())
	}
}

func TestREPLCommands(t *testing.T) {
	r, out, errOut := newTestREPL()

	if r.HandleLine(":tree") || !r.cfg.ShowTree {
		t.Fatalf(":tree should toggle tree display")
	}
	r.HandleLine("7")
	if !strings.Contains(out.String(), "└─ NumberToken 7\n=> 7\n") {
		t.Fatalf("tree not shown before value: %q", out.String())
	}

	out.Reset()
	r.HandleLine(":bound 1 + 2")
	if !strings.HasPrefix(out.String(), "BoundTree\n└─ Binary Add : Number\n") {
		t.Fatalf("bound tree wrong: %q", out.String())
	}

	out.Reset()
	r.HandleLine(":history")
	if strings.Count(out.String(), "\n") != 2 {
		t.Fatalf("history should be capped at 2 entries: %q", out.String())
	}

	r.HandleLine(":debug on")
	if !r.logger.DebugMode {
		t.Fatalf(":debug on should enable debug logging")
	}

	r.HandleLine(":nope")
	if !strings.Contains(errOut.String(), "Unknown command: :nope") {
		t.Fatalf("unknown command not reported: %q", errOut.String())
	}

	if !r.HandleLine(":q") {
		t.Fatalf(":q should exit")
	}
}

func TestREPLDiagnostics(t *testing.T) {
	r, _, errOut := newTestREPL()
	r.HandleLine("(1 + 2")
	if !strings.Contains(errOut.String(), "error[E0100]: at 1:7: expected RightParenthesisToken") {
		t.Fatalf("diagnostic not rendered: %q", errOut.String())
	}
}

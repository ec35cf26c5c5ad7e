package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/dumbbrain-lang/dumbbrain/internal/cli"
	"github.com/dumbbrain-lang/dumbbrain/internal/format"
	"github.com/dumbbrain-lang/dumbbrain/internal/object"
	"github.com/dumbbrain-lang/dumbbrain/internal/pipeline"
)

// REPL evaluates one expression per line.
type REPL struct {
	cfg     *cli.Config
	logger  *cli.Logger
	out     io.Writer
	errOut  io.Writer
	history []string
}

func NewREPL(cfg *cli.Config, logger *cli.Logger, out, errOut io.Writer) *REPL {
	return &REPL{cfg: cfg, logger: logger, out: out, errOut: errOut}
}

func cmdRepl(args []string, stdout, stderr io.Writer) int {
	fs, cf := newFlagSet("repl", stderr)
	historyFile := fs.String("history", "", "history file path (overrides history_file)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	cfg, logger, err := cf.load(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *historyFile != "" {
		cfg.HistoryFile = *historyFile
	}

	r := NewREPL(cfg, logger, stdout, stderr)
	if !cli.IsTerminal(os.Stdin) {
		logger.Debug("stdin is not a terminal, reading lines without editing")
		if err := r.RunPlain(os.Stdin); err != nil {
			return 1
		}
		return 0
	}
	r.RunInteractive()
	return 0
}

// RunInteractive reads lines with history and line editing until EOF or
// :quit.
func (r *REPL) RunInteractive() {
	info := cli.GetVersionInfo()
	fmt.Fprintf(r.out, "DumbBrain v%s (language %s)\n", info.Version, info.LanguageVersion)
	fmt.Fprintf(r.out, "Type :help for help, :quit to exit\n\n")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if r.cfg.HistoryFile != "" {
		if f, err := os.Open(r.cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(r.cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		line, err := ln.Prompt(r.cfg.Prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			r.logger.Error("read input: %v", err)
			return
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if r.HandleLine(line) {
			return
		}
	}
}

// maxLineBytes caps a single piped line.
const maxLineBytes = 1 << 20

// RunPlain reads lines from in without a prompt, for piped input. A read
// failure, including a line longer than maxLineBytes, is logged and ends
// the loop.
func (r *REPL) RunPlain(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if r.HandleLine(scanner.Text()) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		r.logger.Error("read input: %v", err)
		return err
	}
	return nil
}

// HandleLine evaluates a line or runs a REPL command. It reports whether
// the REPL should exit.
func (r *REPL) HandleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	r.addHistory(line)

	if strings.HasPrefix(line, ":") {
		return r.HandleCommand(line)
	}

	res := pipeline.Run(context.Background(), "", line)
	if r.cfg.ShowTokens {
		fmt.Fprint(r.out, format.Tokens(res.Tokens))
	}
	if r.cfg.ShowTree && res.Tree != nil {
		fmt.Fprint(r.out, format.Tree("ParseTree", res.Tree))
	}
	r.logger.Debug("stage %s", res.Stage)
	if res.Err != nil {
		var de *pipeline.DiagnosticsError
		if errors.As(res.Err, &de) {
			fmt.Fprint(r.errOut, de.Render())
		} else {
			fmt.Fprintf(r.errOut, "Error: %v\n", res.Err)
		}
		return false
	}
	fmt.Fprintf(r.out, "=> %s\n", object.Describe(res.Value))
	return false
}

func (r *REPL) addHistory(line string) {
	r.history = append(r.history, line)
	if limit := r.cfg.MaxHistory; limit > 0 && len(r.history) > limit {
		r.history = r.history[len(r.history)-limit:]
	}
}

// HandleCommand runs a ":" command and reports whether to exit.
func (r *REPL) HandleCommand(cmd string) bool {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(cmd, parts[0]))

	switch parts[0] {
	case ":help", ":h":
		r.PrintHelp()
	case ":quit", ":q", ":exit":
		return true
	case ":tokens":
		if rest == "" {
			r.cfg.ShowTokens = !r.cfg.ShowTokens
			fmt.Fprintf(r.out, "Token display: %v\n", r.cfg.ShowTokens)
		} else {
			res := pipeline.Run(context.Background(), "", rest)
			fmt.Fprint(r.out, format.Tokens(res.Tokens))
		}
	case ":tree":
		if rest == "" {
			r.cfg.ShowTree = !r.cfg.ShowTree
			fmt.Fprintf(r.out, "Tree display: %v\n", r.cfg.ShowTree)
		} else {
			res := pipeline.Run(context.Background(), "", rest)
			fmt.Fprint(r.out, format.Tree("ParseTree", res.Tree))
		}
	case ":bound":
		if rest == "" {
			fmt.Fprintln(r.errOut, "Usage: :bound <expr>")
			break
		}
		res := pipeline.Run(context.Background(), "", rest)
		if res.Bound == nil {
			fmt.Fprintf(r.errOut, "Error: %v\n", res.Err)
			break
		}
		fmt.Fprint(r.out, format.BoundTree("BoundTree", res.Bound))
	case ":history":
		for i, h := range r.history {
			fmt.Fprintf(r.out, "%4d  %s\n", i+1, h)
		}
	case ":debug":
		switch rest {
		case "":
			fmt.Fprintf(r.out, "Debug mode: %v\n", r.logger.DebugMode)
		case "on", "true", "1":
			r.logger.DebugMode = true
			fmt.Fprintln(r.out, "Debug mode enabled")
		case "off", "false", "0":
			r.logger.DebugMode = false
			fmt.Fprintln(r.out, "Debug mode disabled")
		default:
			fmt.Fprintln(r.errOut, "Usage: :debug on|off")
		}
	default:
		fmt.Fprintf(r.errOut, "Unknown command: %s\n", parts[0])
		fmt.Fprintln(r.errOut, "Type :help for available commands")
	}
	return false
}

func (r *REPL) PrintHelp() {
	fmt.Fprintln(r.out, "REPL Commands:")
	fmt.Fprintln(r.out, "  :help, :h          Show this help")
	fmt.Fprintln(r.out, "  :quit, :q, :exit   Exit REPL")
	fmt.Fprintln(r.out, "  :tokens [expr]     Toggle token display, or show tokens of expr")
	fmt.Fprintln(r.out, "  :tree [expr]       Toggle tree display, or show the tree of expr")
	fmt.Fprintln(r.out, "  :bound <expr>      Show the typed tree of expr")
	fmt.Fprintln(r.out, "  :history           Show command history")
	fmt.Fprintln(r.out, "  :debug on|off      Toggle debug mode")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Enter expressions such as (1 + 2) * 3 > 4 == true to evaluate them.")
}

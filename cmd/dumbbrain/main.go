package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dumbbrain-lang/dumbbrain/internal/cli"
)

const toolName = "dumbbrain"

var commands = []cli.CommandInfo{
	{Name: "repl", Usage: "dumbbrain repl [--config FILE]", Description: "Start the interactive prompt"},
	{Name: "eval", Usage: "dumbbrain eval [--remote ADDR [--insecure]] [--] <expr>", Description: "Evaluate an expression",
		Examples: []string{`dumbbrain eval "(1 + 2) * 3"`}},
	{Name: "run", Usage: "dumbbrain run <file>...", Description: "Evaluate files concurrently"},
	{Name: "tokens", Usage: "dumbbrain tokens <expr>", Description: "Print the token stream"},
	{Name: "tree", Usage: "dumbbrain tree [--bound] <expr>", Description: "Print the syntax or bound tree"},
	{Name: "watch", Usage: "dumbbrain watch <file>...", Description: "Re-evaluate files when they change"},
	{Name: "serve", Usage: "dumbbrain serve [--addr ADDR]", Description: "Serve POST /eval over HTTP/3",
		Flags: []cli.FlagInfo{{Name: "addr", Usage: "UDP listen address", Default: "127.0.0.1:8443"}}},
	{Name: "version", Usage: "dumbbrain version [--json]", Description: "Show version information"},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	if len(argv) < 1 {
		cli.PrintUsage(stderr, toolName, commands)
		return 1
	}

	sub, args := argv[0], argv[1:]
	switch sub {
	case "help", "-h", "--help":
		cli.PrintUsage(stdout, toolName, commands)
		return 0
	case "version", "-v", "--version":
		return cmdVersion(args, stdout, stderr)
	case "repl":
		return cmdRepl(args, stdout, stderr)
	case "eval":
		return cmdEval(args, stdout, stderr)
	case "run":
		return cmdRun(args, stdout, stderr)
	case "tokens":
		return cmdTokens(args, stdout, stderr)
	case "tree":
		return cmdTree(args, stdout, stderr)
	case "watch":
		return cmdWatch(args, stdout, stderr)
	case "serve":
		return cmdServe(args, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", sub)
		cli.PrintUsage(stderr, toolName, commands)
		return 1
	}
}

// commonFlags registers the flags every subcommand shares.
type commonFlags struct {
	config  string
	verbose bool
	debug   bool
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cf := &commonFlags{}
	fs.StringVar(&cf.config, "config", cli.DefaultConfigFile, "configuration file")
	fs.BoolVar(&cf.verbose, "verbose", false, "enable verbose logging")
	fs.BoolVar(&cf.debug, "debug", false, "enable debug logging")
	for _, cmd := range commands {
		if cmd.Name == name {
			fs.Usage = func() {
				cli.PrintCommandUsage(stderr, toolName, cmd)
				fs.PrintDefaults()
			}
		}
	}
	return fs, cf
}

// parseLeadingFlags parses the flags fs knows that precede the first
// other argument and returns the rest as operands. An expression such as
// "-1 * -2" is an operand, not a flag. "--" also ends the flags.
func parseLeadingFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	n := 0
	for n < len(args) {
		arg := args[n]
		if arg == "--" || len(arg) < 2 || arg[0] != '-' {
			break
		}
		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name == "h" || name == "help" {
			n++
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			break
		}
		n++
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			continue
		}
		if !hasValue && n < len(args) {
			n++
		}
	}
	if err := fs.Parse(args[:n]); err != nil {
		return nil, err
	}
	rest := args[n:]
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}
	return rest, nil
}

// load reads the configuration file and applies flag overrides.
func (cf *commonFlags) load(stderr io.Writer) (*cli.Config, *cli.Logger, error) {
	cfg, err := cli.LoadConfig(cf.config)
	if err != nil {
		return nil, nil, err
	}
	cfg.Verbose = cfg.Verbose || cf.verbose
	cfg.Debug = cfg.Debug || cf.debug
	logger := cli.NewLoggerTo(stderr, cfg.Verbose, cfg.Debug)
	logger.Debug("configuration loaded from %s", cf.config)
	return cfg, logger, nil
}

func cmdVersion(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	fs.SetOutput(stderr)
	jsonOutput := fs.Bool("json", false, "output version in JSON format")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if err := cli.PrintVersion(stdout, toolName, *jsonOutput); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

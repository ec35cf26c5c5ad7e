package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dumbbrain-lang/dumbbrain/internal/cli"
	"github.com/dumbbrain-lang/dumbbrain/internal/format"
	"github.com/dumbbrain-lang/dumbbrain/internal/lexer"
	"github.com/dumbbrain-lang/dumbbrain/internal/object"
	"github.com/dumbbrain-lang/dumbbrain/internal/pipeline"
	"github.com/dumbbrain-lang/dumbbrain/internal/server"
	"github.com/dumbbrain-lang/dumbbrain/internal/watch"
)

// report prints a run's value to stdout or its error to stderr and
// returns the exit code.
func report(res *pipeline.Result, prefix string, stdout, stderr io.Writer) int {
	if res.Err != nil {
		var de *pipeline.DiagnosticsError
		if errors.As(res.Err, &de) {
			fmt.Fprintf(stderr, "%s%s", prefix, de.Render())
		} else {
			fmt.Fprintf(stderr, "%sError: %v\n", prefix, res.Err)
		}
		return 1
	}
	fmt.Fprintf(stdout, "%s%s\n", prefix, object.Describe(res.Value))
	return 0
}

func cmdEval(args []string, stdout, stderr io.Writer) int {
	fs, cf := newFlagSet("eval", stderr)
	remote := fs.String("remote", "", "evaluate on a dumbbrain server at this address")
	insecure := fs.Bool("insecure", false, "skip certificate verification for --remote")
	exprArgs, err := parseLeadingFlags(fs, args)
	if err != nil {
		return 1
	}
	if err := cli.ValidateArgs(exprArgs, 1, "dumbbrain eval <expr>"); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	_, logger, err := cf.load(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	source := strings.Join(exprArgs, " ")

	if *remote != "" {
		logger.Info("evaluating on %s", *remote)
		c := server.NewClient(*remote, *insecure, 10*time.Second)
		defer c.Close()
		resp, err := c.Eval(context.Background(), source)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if resp.Error != "" {
			fmt.Fprintf(stderr, "Error: %s\n", resp.Error)
			return 1
		}
		fmt.Fprintln(stdout, resp.Value)
		return 0
	}

	res := pipeline.Run(context.Background(), "", source)
	logger.Debug("stopped at stage %s", res.Stage)
	return report(res, "", stdout, stderr)
}

func cmdRun(args []string, stdout, stderr io.Writer) int {
	fs, cf := newFlagSet("run", stderr)
	jobs := fs.Int("jobs", 4, "files evaluated at once")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if err := cli.ValidateArgs(fs.Args(), 1, "dumbbrain run <file>..."); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	_, logger, err := cf.load(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	files := fs.Args()
	results, err := runFiles(context.Background(), files, *jobs)
	if err != nil {
		logger.Error("%v", err)
		return 1
	}

	code := 0
	for i, res := range results {
		prefix := ""
		if len(files) > 1 {
			prefix = files[i] + ": "
		}
		if report(res, prefix, stdout, stderr) != 0 {
			code = 1
		}
	}
	return code
}

// runFiles evaluates every file concurrently. Results keep the order of
// files. Only failing to read a file aborts the batch.
func runFiles(ctx context.Context, files []string, jobs int) ([]*pipeline.Result, error) {
	results := make([]*pipeline.Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, file := range files {
		g.Go(func() error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			results[i] = pipeline.Run(gctx, file, string(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func cmdTokens(args []string, stdout, stderr io.Writer) int {
	fs, _ := newFlagSet("tokens", stderr)
	exprArgs, err := parseLeadingFlags(fs, args)
	if err != nil {
		return 1
	}
	if err := cli.ValidateArgs(exprArgs, 1, "dumbbrain tokens <expr>"); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprint(stdout, format.Tokens(lexer.Lex(strings.Join(exprArgs, " "))))
	return 0
}

func cmdTree(args []string, stdout, stderr io.Writer) int {
	fs, _ := newFlagSet("tree", stderr)
	bound := fs.Bool("bound", false, "print the typed tree instead of the syntax tree")
	exprArgs, err := parseLeadingFlags(fs, args)
	if err != nil {
		return 1
	}
	if err := cli.ValidateArgs(exprArgs, 1, "dumbbrain tree <expr>"); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	res := pipeline.Run(context.Background(), "", strings.Join(exprArgs, " "))
	if !*bound {
		fmt.Fprint(stdout, format.Tree("ParseTree", res.Tree))
		for _, d := range res.Diagnostics {
			fmt.Fprint(stderr, d.Render(res.Source))
		}
		if len(res.Diagnostics) > 0 {
			return 1
		}
		return 0
	}

	if res.Bound == nil {
		return report(res, "", io.Discard, stderr)
	}
	fmt.Fprint(stdout, format.BoundTree("BoundTree", res.Bound))
	return 0
}

func cmdWatch(args []string, stdout, stderr io.Writer) int {
	fs, cf := newFlagSet("watch", stderr)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if err := cli.ValidateArgs(fs.Args(), 1, "dumbbrain watch <file>..."); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	_, logger, err := cf.load(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	w, err := watch.New(func(path string, res *pipeline.Result, err error) {
		if err != nil {
			logger.Error("%s: %v", path, err)
			return
		}
		report(res, path+": ", stdout, stderr)
	}, logger, fs.Args()...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info("watching %s", strings.Join(fs.Args(), ", "))
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("%v", err)
		return 1
	}
	return 0
}

func cmdServe(args []string, stdout, stderr io.Writer) int {
	fs, cf := newFlagSet("serve", stderr)
	addr := fs.String("addr", "", "UDP listen address (overrides server_addr)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	cfg, logger, err := cf.load(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *addr != "" {
		cfg.ServerAddr = *addr
	}

	s, err := server.NewFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	bound, err := s.Start()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer s.Stop()
	fmt.Fprintf(stdout, "serving HTTP/3 on https://%s\n", bound)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	logger.Info("shutting down")
	return 0
}

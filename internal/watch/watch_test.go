package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dumbbrain-lang/dumbbrain/internal/object"
	"github.com/dumbbrain-lang/dumbbrain/internal/pipeline"
)

type update struct {
	path string
	res  *pipeline.Result
	err  error
}

func TestWatcherReevaluatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "expr.db")
	if err := os.WriteFile(file, []byte("1 + 2"), 0644); err != nil {
		t.Fatal(err)
	}

	updates := make(chan update, 16)
	w, err := New(func(path string, res *pipeline.Result, err error) {
		updates <- update{path, res, err}
	}, nil, file)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	first := waitFor(t, updates)
	if first.err != nil || !object.Equal(first.res.Value, object.Number(3)) {
		t.Fatalf("initial evaluation wrong: %+v", first)
	}

	if err := os.WriteFile(file, []byte("2 * 21"), 0644); err != nil {
		t.Fatal(err)
	}
	for {
		u := waitFor(t, updates)
		if u.res != nil && object.Equal(u.res.Value, object.Number(42)) {
			break
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watcher did not stop")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "watched.db")
	if err := os.WriteFile(file, []byte("1"), 0644); err != nil {
		t.Fatal(err)
	}

	updates := make(chan update, 16)
	w, err := New(func(path string, res *pipeline.Result, err error) {
		updates <- update{path, res, err}
	}, nil, file)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	waitFor(t, updates)
	if err := os.WriteFile(filepath.Join(dir, "other.db"), []byte("2"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case u := <-updates:
		t.Fatalf("unexpected update for %s", u.path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNewRequiresFiles(t *testing.T) {
	if _, err := New(func(string, *pipeline.Result, error) {}, nil); err == nil {
		t.Fatalf("expected error without files")
	}
}

func waitFor(t *testing.T, updates <-chan update) update {
	t.Helper()
	select {
	case u := <-updates:
		return u
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for evaluation")
		return update{}
	}
}

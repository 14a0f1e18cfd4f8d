package watch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/watch"
)

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.opal")
	if err := os.WriteFile(path, []byte("fn main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := watch.ParseFile(path, "main")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Geode.Items) != 1 || res.Geode.Name.Item != "main" {
		t.Fatalf("unexpected unit %+v", res.Geode)
	}

	if err := os.WriteFile(path, []byte("fn main( {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	res = watch.ParseFile(path, "main")
	var de *diag.Error
	if !errors.As(res.Err, &de) || de.Stage != diag.StageParser {
		t.Fatalf("expected a parser error, got %v", res.Err)
	}
	if res.Source != "fn main( {}" {
		t.Fatalf("expected the source to be kept, got %q", res.Source)
	}

	if res := watch.ParseFile(filepath.Join(dir, "missing.opal"), "main"); !errors.Is(res.Err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", res.Err)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.opal")
	if err := os.WriteFile(path, []byte("fn main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan watch.Result, 16)
	done := make(chan error, 1)
	go func() {
		done <- watch.New(path, "main").Run(ctx, func(r watch.Result) { results <- r })
	}()

	first := receive(t, results)
	if first.Err != nil {
		t.Fatalf("unexpected error on the initial parse: %v", first.Err)
	}

	if err := os.WriteFile(path, []byte("fn main() { let }"), 0o644); err != nil {
		t.Fatal(err)
	}
	for {
		r := receive(t, results)
		if r.Err != nil {
			break
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error from Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after cancellation")
	}
}

func receive(t *testing.T, results <-chan watch.Result) watch.Result {
	t.Helper()

	select {
	case r := <-results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a parse result")
	}
	return watch.Result{}
}

package pricing

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := writePricingFile(t, sampleYAML)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	w, err := NewWatcher(table, path, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- w.Watch(ctx)
	}()

	// Give the watch loop time to register.
	time.Sleep(100 * time.Millisecond)

	updated := "default:\n  input_per_million: 9.00\n  output_per_million: 45.00\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("Failed to update pricing file: %v", err)
	}

	// Wait for the debounced reload.
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if table.Lookup(DefaultModel).InputPerMillion == 9.00 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if got := table.Lookup(DefaultModel).InputPerMillion; got != 9.00 {
		t.Errorf("Expected reload to pick up new price, got %.2f", got)
	}

	cancel()
	if err := <-watchErr; err != nil {
		t.Errorf("Watch returned error: %v", err)
	}
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	path := writePricingFile(t, sampleYAML)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	w, err := NewWatcher(table, path, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop on idle watcher returned error: %v", err)
	}
}

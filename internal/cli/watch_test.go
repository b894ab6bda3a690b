package cli

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestWatchFile(t *testing.T) {
	captureStatus(t)
	path := writeSample(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runs := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, log.New(io.Discard), func(context.Context) error {
			runs <- struct{}{}
			return nil
		})
	}()

	// The watcher starts asynchronously. Writes are spaced wider than the
	// debounce window so each one can settle into a run.
	time.Sleep(2 * watchDebounce)
	if err := os.WriteFile(path, []byte(sampleGEDCOM), 0644); err != nil {
		t.Fatal(err)
	}
	tick := time.NewTicker(4 * watchDebounce)
	defer tick.Stop()
	for triggered := false; !triggered; {
		select {
		case <-runs:
			triggered = true
		case <-tick.C:
			if err := os.WriteFile(path, []byte(sampleGEDCOM), 0644); err != nil {
				t.Fatal(err)
			}
		case <-ctx.Done():
			t.Fatal("watcher never reported a change")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("watchFile returned %v after cancel", err)
	}
}

func TestWatchNeedsOutput(t *testing.T) {
	isolate(t)
	captureStatus(t)
	_, err := runRoot(t, writeSample(t), "--watch")
	if err == nil {
		t.Fatal("--watch without --output should fail")
	}
}

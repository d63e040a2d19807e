package watcher

import (
	"sort"
	"testing"
	"time"
)

const testInterval = 50 * time.Millisecond

func receiveBatch(t *testing.T, d *Debouncer, timeout time.Duration) []DebouncedEvent {
	t.Helper()
	select {
	case batch := <-d.Output():
		return batch
	case <-time.After(timeout):
		t.Fatal("timed out waiting for debouncer batch")
		return nil
	}
}

func Test_Debouncer_SingleEvent(t *testing.T) {
	d := NewDebouncer(testInterval)

	d.Add("/data/server.log", OpWrite)

	batch := receiveBatch(t, d, 500*time.Millisecond)

	if len(batch) != 1 {
		t.Fatalf("expected 1 event, got %d", len(batch))
	}
	if batch[0].Path != "/data/server.log" {
		t.Errorf("expected path '/data/server.log', got '%s'", batch[0].Path)
	}
	if batch[0].Op != OpWrite {
		t.Errorf("expected OpWrite, got %s", batch[0].Op)
	}
}

func Test_Debouncer_EventCollapsing(t *testing.T) {
	d := NewDebouncer(testInterval)

	// A rename-style save bursts create+write for the same path; the batch
	// carries only the latest op.
	d.Add("/data/server.log", OpCreate)
	d.Add("/data/server.log", OpWrite)

	batch := receiveBatch(t, d, 500*time.Millisecond)

	if len(batch) != 1 {
		t.Fatalf("expected 1 event (collapsed), got %d", len(batch))
	}
	if batch[0].Op != OpWrite {
		t.Errorf("expected latest op OpWrite, got %s", batch[0].Op)
	}
}

func Test_Debouncer_MultiplePaths(t *testing.T) {
	d := NewDebouncer(testInterval)

	d.Add("/data/server.log", OpWrite)
	d.Add("/data/events.jsonl", OpCreate)
	d.Add("/data/dump.sql", OpRemove)

	batch := receiveBatch(t, d, 500*time.Millisecond)

	if len(batch) != 3 {
		t.Fatalf("expected 3 events, got %d", len(batch))
	}

	sort.Slice(batch, func(i, j int) bool {
		return batch[i].Path < batch[j].Path
	})

	expectedPaths := []string{"/data/dump.sql", "/data/events.jsonl", "/data/server.log"}
	for i, expected := range expectedPaths {
		if batch[i].Path != expected {
			t.Errorf("event[%d]: expected path '%s', got '%s'", i, expected, batch[i].Path)
		}
	}
}

func Test_Debouncer_TimerReset(t *testing.T) {
	d := NewDebouncer(testInterval)

	d.Add("/data/server.log", OpWrite)

	// A second event inside the window restarts the timer, so both land in
	// one batch.
	time.Sleep(testInterval / 2)
	d.Add("/data/events.jsonl", OpWrite)

	batch := receiveBatch(t, d, 500*time.Millisecond)

	if len(batch) != 2 {
		t.Fatalf("expected 2 events in single batch, got %d", len(batch))
	}

	paths := make(map[string]bool)
	for _, e := range batch {
		paths[e.Path] = true
	}
	if !paths["/data/server.log"] || !paths["/data/events.jsonl"] {
		t.Errorf("expected both tracked paths in batch, got: %v", batch)
	}
}

func Test_EventOp_String(t *testing.T) {
	ops := map[EventOp]string{
		OpCreate: "create",
		OpWrite:  "write",
		OpRemove: "remove",
		OpRename: "rename",
	}
	for op, want := range ops {
		if op.String() != want {
			t.Errorf("expected %s, got %s", want, op.String())
		}
	}
}

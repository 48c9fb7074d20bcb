package debounce

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDebouncer_Burst(t *testing.T) {
	var rec recorder
	d := New(50*time.Millisecond, rec.record)

	for _, q := range []string{"o", "oc", "oct", "octo", "octoc"} {
		d.Trigger(q)
		time.Sleep(5 * time.Millisecond)
	}
	waitFor(t, func() bool { return len(rec.get()) > 0 })
	time.Sleep(100 * time.Millisecond)

	calls := rec.get()
	if len(calls) != 1 || calls[0] != "octoc" {
		t.Errorf("calls = %v, want [octoc]", calls)
	}
	if d.Pending() {
		t.Error("Pending() = true after firing")
	}
}

func TestDebouncer_Spaced(t *testing.T) {
	var rec recorder
	d := New(10*time.Millisecond, rec.record)

	want := []string{"a", "b", "c"}
	for i, q := range want {
		d.Trigger(q)
		waitFor(t, func() bool { return len(rec.get()) == i+1 })
	}

	calls := rec.get()
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls = %v, want %v", calls, want)
			break
		}
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var rec recorder
	d := New(20*time.Millisecond, rec.record)

	d.Trigger("octo")
	if !d.Pending() {
		t.Fatal("Pending() = false after Trigger")
	}
	d.Cancel()
	if d.Pending() {
		t.Error("Pending() = true after Cancel")
	}

	time.Sleep(80 * time.Millisecond)
	if calls := rec.get(); len(calls) != 0 {
		t.Errorf("calls = %v, want none", calls)
	}
}

func TestDebouncer_StaleFireIsDropped(t *testing.T) {
	var rec recorder
	d := New(time.Hour, rec.record)

	d.Trigger("old")
	d.mu.Lock()
	stale := d.seq
	d.mu.Unlock()
	d.Cancel()

	// Simulates a timer that fired concurrently with Cancel.
	d.fire(stale, "old")
	if calls := rec.get(); len(calls) != 0 {
		t.Errorf("calls = %v, want none", calls)
	}
}

package observability

import (
	"testing"
	"time"
)

type recordingDragHooks struct {
	starts, moves, ends int
}

func (r *recordingDragHooks) OnSessionStart(string, float64, float64)              { r.starts++ }
func (r *recordingDragHooks) OnSessionMove(string, float64, float64, bool)         { r.moves++ }
func (r *recordingDragHooks) OnSessionEnd(string, float64, float64, time.Duration) { r.ends++ }

func TestHookRegistration(t *testing.T) {
	defer Reset()

	rec := &recordingDragHooks{}
	SetDragHooks(rec)

	Drag().OnSessionStart("panel", 0, 0)
	Drag().OnSessionMove("panel", 10, 5, false)
	Drag().OnSessionMove("panel", 700, 5, true)
	Drag().OnSessionEnd("panel", 700, 5, time.Second)

	if rec.starts != 1 || rec.moves != 2 || rec.ends != 1 {
		t.Errorf("recorded starts=%d moves=%d ends=%d", rec.starts, rec.moves, rec.ends)
	}
}

func TestNilRegistrationIgnored(t *testing.T) {
	defer Reset()

	SetDragHooks(nil)
	SetSyncHooks(nil)
	SetStoreHooks(nil)

	// Defaults stay in place and are callable.
	Drag().OnSessionStart("x", 0, 0)
	Sync().OnNotify("x", 0, 0)
	Store().OnGet("x", false)
}

func TestReset(t *testing.T) {
	rec := &recordingDragHooks{}
	SetDragHooks(rec)
	Reset()

	Drag().OnSessionStart("panel", 0, 0)
	if rec.starts != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}

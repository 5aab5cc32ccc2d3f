package session

import "testing"

// TestRestRunsToZero verifies a 90-second countdown takes exactly 90
// ticks and ends inactive at zero.
func TestRestRunsToZero(t *testing.T) {
	var rt RestTimer
	rt.Start(90)

	for i := 0; i < 89; i++ {
		if done := rt.Tick(); done {
			t.Fatalf("done after %d ticks, want 90", i+1)
		}
	}
	if st := rt.State(); st.Remaining != 1 || !st.Active {
		t.Fatalf("state after 89 ticks = %+v", st)
	}
	if !rt.Tick() {
		t.Fatal("tick 90 did not report done")
	}
	if st := rt.State(); st.Remaining != 0 || st.Active {
		t.Errorf("final state = %+v, want inactive at 0", st)
	}
	// further ticks are no-ops
	if rt.Tick() {
		t.Error("tick on inactive timer reported done")
	}
}

// TestRestPauseFreezes verifies pausing at remaining R keeps R unchanged
// through any number of ticks, and resuming continues from R.
func TestRestPauseFreezes(t *testing.T) {
	var rt RestTimer
	rt.Start(90)
	for i := 0; i < 40; i++ {
		rt.Tick()
	}
	rt.Pause()

	for i := 0; i < 100; i++ {
		rt.Tick()
	}
	if st := rt.State(); st.Remaining != 50 || !st.Paused {
		t.Fatalf("state while paused = %+v, want remaining 50", st)
	}

	rt.Resume()
	rt.Tick()
	if got := rt.State().Remaining; got != 49 {
		t.Errorf("remaining after resume+tick = %d, want 49", got)
	}
}

// TestRestRestart verifies starting a new countdown while one is active
// resets to the new duration rather than stacking.
func TestRestRestart(t *testing.T) {
	var rt RestTimer
	rt.Start(90)
	for i := 0; i < 60; i++ {
		rt.Tick()
	}
	rt.Start(90)
	if st := rt.State(); st.Remaining != 90 || !st.Active || st.Paused {
		t.Errorf("state after restart = %+v, want fresh 90", st)
	}
}

// TestRestReset verifies reset deactivates and zeroes regardless of
// prior state.
func TestRestReset(t *testing.T) {
	var rt RestTimer
	rt.Start(90)
	rt.Tick()
	rt.Pause()
	rt.Reset()

	if st := rt.State(); st.Remaining != 0 || st.Active || st.Paused {
		t.Errorf("state after reset = %+v, want zeroed", st)
	}
}

// TestPauseInactive verifies pausing an inactive timer is a no-op.
func TestPauseInactive(t *testing.T) {
	var rt RestTimer
	rt.Pause()
	if rt.State().Paused {
		t.Error("inactive timer became paused")
	}
}

package session

// RestTimer is the rest-countdown sub-state: remaining seconds and a
// paused flag. It is a plain value driven by explicit ticks; the engine
// guards it with its own lock.
type RestTimer struct {
	remaining int
	paused    bool
	active    bool
}

// RestState is a read-only view of the countdown.
type RestState struct {
	Remaining int  `json:"remaining"`
	Paused    bool `json:"paused"`
	Active    bool `json:"active"`
}

// Start activates the countdown at the given duration. Starting while a
// countdown is already active resets it. Rest periods never stack, the
// last completed set wins.
func (t *RestTimer) Start(seconds int) {
	t.remaining = seconds
	t.paused = false
	t.active = true
}

// Tick decrements the countdown by one second. It reports whether the
// countdown just reached zero, which also deactivates it. Paused or
// inactive timers do not move.
func (t *RestTimer) Tick() bool {
	if !t.active || t.paused {
		return false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.active = false
		return true
	}
	return false
}

// Pause freezes the countdown without altering the remaining seconds.
func (t *RestTimer) Pause() {
	if t.active {
		t.paused = true
	}
}

// Resume continues a paused countdown from the frozen value.
func (t *RestTimer) Resume() {
	t.paused = false
}

// Reset forcibly deactivates the countdown and zeroes it, regardless of
// prior state.
func (t *RestTimer) Reset() {
	t.remaining = 0
	t.paused = false
	t.active = false
}

// State returns a copy of the current countdown state.
func (t *RestTimer) State() RestState {
	return RestState{Remaining: t.remaining, Paused: t.paused, Active: t.active}
}

package dragdrop

import "time"

// DefaultHoldDelay is how long a pointer must stay pressed before an
// entity that is both clickable and draggable becomes drag-ready.
const DefaultHoldDelay = 200 * time.Millisecond

// Phase is the press-and-hold gesture state for one entity.
type Phase int

const (
	// PhaseIdle means no gesture is in progress.
	PhaseIdle Phase = iota
	// PhasePending means the pointer is down and the hold timer is running.
	PhasePending
	// PhaseReady means the hold elapsed; a drag may legally start.
	PhaseReady
	// PhaseDragging means a drag started from the ready state.
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseReady:
		return "ready"
	case PhaseDragging:
		return "dragging"
	}
	return "unknown"
}

// HoldTracker gates drag starts behind a held press so short presses stay
// plain clicks. All transitions take the caller's clock, which keeps the
// machine deterministic; hosts feed it real time from their event loop.
type HoldTracker struct {
	delay   time.Duration
	phase   Phase
	pressAt time.Time
}

// NewHoldTracker returns an idle tracker. A non-positive delay falls back
// to DefaultHoldDelay.
func NewHoldTracker(delay time.Duration) *HoldTracker {
	if delay <= 0 {
		delay = DefaultHoldDelay
	}
	return &HoldTracker{delay: delay}
}

// Press starts the hold countdown. It only acts from idle; a press during
// any other phase is ignored.
func (h *HoldTracker) Press(now time.Time) {
	if h.phase != PhaseIdle {
		return
	}
	h.phase = PhasePending
	h.pressAt = now
}

// Tick advances the countdown. When the hold delay has elapsed the tracker
// becomes ready and Tick reports true once; later ticks report false.
func (h *HoldTracker) Tick(now time.Time) bool {
	if h.phase != PhasePending {
		return false
	}
	if now.Sub(h.pressAt) < h.delay {
		return false
	}
	h.phase = PhaseReady
	return true
}

// Release handles the pointer lifting or leaving the entity. From pending
// it cancels the countdown so the following click fires normally; from
// ready it abandons the gesture without a drag. A release mid-drag is the
// drag layer's business and leaves the phase alone.
func (h *HoldTracker) Release() {
	if h.phase == PhasePending || h.phase == PhaseReady {
		h.phase = PhaseIdle
	}
}

// StartDrag attempts the ready to dragging transition. It reports false
// from every other phase; callers reject the platform drag event in that
// case.
func (h *HoldTracker) StartDrag() bool {
	if h.phase != PhaseReady {
		return false
	}
	h.phase = PhaseDragging
	return true
}

// EndDrag returns to idle after a drop or cancel.
func (h *HoldTracker) EndDrag() {
	if h.phase == PhaseDragging {
		h.phase = PhaseIdle
	}
}

// Phase returns the current gesture phase.
func (h *HoldTracker) Phase() Phase {
	return h.phase
}

// Ready reports whether a drag may legally start right now.
func (h *HoldTracker) Ready() bool {
	return h.phase == PhaseReady
}

package interp

import "github.com/vovakirdan/tui-agi/internal/core"

// TicksPerHalfSecond converts the print timeout variable to ticks.
const TicksPerHalfSecond = 30

// Wait is a command that blocks the scan until a key press or a tick
// deadline. The tick that issued it stays in flight until it completes.
type Wait struct {
	// Reason names the command that suspended, e.g. "print" or
	// "get.string". Hosts use it to decide what to show.
	Reason string

	// Deadline is the TotalTicks value at which the wait ends on its own.
	// Zero waits for a key only.
	Deadline uint64

	// key consumes one key and reports whether it completes the wait. A nil
	// key func completes on any key.
	key func(k core.Key) bool

	// done runs once when the wait completes, before the scan resumes.
	done func()
}

// suspend parks the scan on w.
func (x *Executor) suspend(w *Wait) (flow, error) {
	x.wait = w
	return flowSuspend, nil
}

// Poll feeds queued keys and the tick counter to the pending wait. It
// reports whether no wait is pending any more.
func (x *Executor) Poll() bool {
	w := x.wait
	if w == nil {
		return true
	}
	finished := false
	for !finished {
		k, ok := x.keys.Pop()
		if !ok {
			break
		}
		finished = w.key == nil || w.key(k)
	}
	if !finished && w.Deadline != 0 && x.TotalTicks >= w.Deadline {
		finished = true
	}
	if !finished {
		return false
	}
	x.wait = nil
	if w.done != nil {
		w.done()
	}
	return true
}

// keyWait waits for any key and runs done afterwards.
func (x *Executor) keyWait(reason string, done func()) (flow, error) {
	x.keys.ClearQueue()
	return x.suspend(&Wait{Reason: reason, done: done})
}

// window opens a message window and waits for a key to close it.
func (x *Executor) window(reason, msg string) (flow, error) {
	x.text.OpenWindow(msg, -1, -1, 0)
	return x.keyWait(reason, x.text.CloseWindow)
}

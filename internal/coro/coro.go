// Package coro implements the stackful-coroutine primitive described by
// the runtime's scheduler. Go already gives every goroutine its own
// growable stack and a cooperative-enough scheduler underneath, so a
// "coroutine" here is a goroutine paired with a strict resume/park
// handshake: the owning Scheduler never lets more than one Coroutine's
// goroutine run past its own suspension point at a time. swapcontext's
// role is played by the handshake channels; there is nothing else for a
// Go port of this component to add (see DESIGN.md's internal/coro notes).
package coro

import "golang.org/x/sys/unix"

// State is the coroutine's lifecycle state.
type State int

const (
	Ready State = iota
	Running
	Suspended
	Sleeping
	Finished
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Sleeping:
		return "sleeping"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Registrar is the subset of the scheduler's reactor a Coroutine needs to
// arm a wait: register interest in a descriptor's readiness, and create a
// one-shot timer descriptor for sleep_ms. Kept as an interface so this
// package never imports the scheduler, avoiding a cycle.
type Registrar interface {
	RegisterWait(fd int, events uint32, co *Coroutine) error
	ArmTimer(ms int) (fd int, err error)
}

// Entry is the function a coroutine runs. It is handed its own
// Coroutine so it can call Yield/SleepFD/SleepMS on itself — the
// equivalent of the C runtime's implicit "current coroutine" global,
// made explicit.
type Entry func(co *Coroutine)

// Coroutine is a single stackful-coroutine record. Reused across spawns
// by the scheduler's free list: Reset rearms a finished Coroutine for a
// new Entry without reallocating its channel pair.
type Coroutine struct {
	state      State
	waitFD     int
	waitEvents uint32
	reg        Registrar

	resume chan struct{}
	parked chan struct{}

	entry Entry
}

// New allocates a fresh, unarmed Coroutine. Scheduler.Spawn calls this
// only when its free list is empty; otherwise it recycles one via Reset.
func New() *Coroutine {
	return &Coroutine{
		waitFD: -1,
		resume: make(chan struct{}),
		parked: make(chan struct{}),
	}
}

// Reset rearms a Finished (or fresh) Coroutine with a new entry and
// registrar, ready to be started by the scheduler again. Panics if the
// coroutine is not Finished — a programmer bug, recycling a live
// coroutine.
func (c *Coroutine) Reset(reg Registrar, entry Entry) {
	if c.entry != nil && c.state != Finished {
		panic("coro: Reset called on a non-finished coroutine")
	}
	c.state = Ready
	c.waitFD = -1
	c.waitEvents = 0
	c.reg = reg
	c.entry = entry
}

// Start launches the coroutine's goroutine. It blocks immediately on the
// resume handshake, so the first Resume behaves identically to every
// later one — there is no separate "first run" path.
func (c *Coroutine) Start() {
	entry := c.entry
	go func() {
		<-c.resume
		c.state = Running
		entry(c)
		c.state = Finished
		c.parked <- struct{}{}
	}()
}

// State returns the coroutine's current lifecycle state.
func (c *Coroutine) State() State {
	return c.state
}

// WaitFD returns the descriptor the coroutine is sleeping on, or -1.
func (c *Coroutine) WaitFD() int {
	return c.waitFD
}

// WaitEvents returns the readiness events the coroutine is sleeping on.
func (c *Coroutine) WaitEvents() uint32 {
	return c.waitEvents
}

// MarkReady transitions a Sleeping coroutine back to Ready. Called by the
// scheduler when the reactor reports the awaited descriptor ready.
func (c *Coroutine) MarkReady() {
	c.waitFD = -1
	c.waitEvents = 0
	c.state = Ready
}

// Resume hands control to the coroutine and blocks until it next
// suspends (Yield, SleepFD, SleepMS) or finishes. It is the scheduler's
// half of the handshake — the equivalent of swapcontext(&main, &coro).
func (c *Coroutine) Resume() {
	c.resume <- struct{}{}
	<-c.parked
}

// Yield suspends the calling coroutine, marking it Suspended (still
// runnable on the next scheduler pass) and returning control to the
// scheduler.
func (c *Coroutine) Yield() {
	c.state = Suspended
	c.parked <- struct{}{}
	<-c.resume
}

// SleepFD suspends the calling coroutine until fd reports one of events,
// registering the wait with the scheduler's reactor. A negative fd
// degrades to a plain Yield, matching the runtime's documented fallback.
func (c *Coroutine) SleepFD(fd int, events uint32) {
	if fd < 0 {
		c.Yield()
		return
	}
	c.state = Sleeping
	c.waitFD = fd
	c.waitEvents = events
	if err := c.reg.RegisterWait(fd, events, c); err != nil {
		panic(err)
	}
	c.parked <- struct{}{}
	<-c.resume
}

// SleepMS suspends the calling coroutine for approximately ms
// milliseconds using a one-shot monotonic timer descriptor. If the timer
// cannot be created, the sleep degrades to a plain Yield, silently
// losing the requested duration.
func (c *Coroutine) SleepMS(ms int) {
	if ms <= 0 {
		c.Yield()
		return
	}
	fd, err := c.reg.ArmTimer(ms)
	if err != nil {
		c.Yield()
		return
	}
	c.SleepFD(fd, unix.EPOLLIN)
	var buf [8]byte
	unix.Read(fd, buf[:])
	unix.Close(fd)
}

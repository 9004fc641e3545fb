// Package scheduler implements the per-thread cooperative scheduler and
// readiness reactor (spec.md C4): one Scheduler per OS thread, running a
// ready queue of coro.Coroutine values and blocking on a Poller only when
// nothing is runnable.
package scheduler

import (
	"github.com/searchktools/coroserver/internal/coro"
	"github.com/searchktools/coroserver/internal/seq"
)

// Scheduler is a single-threaded cooperative scheduler. It must only be
// driven from the one goroutine that calls Run — coroutines spawned on
// it never migrate to another Scheduler.
type Scheduler struct {
	ready *seq.Seq[*coro.Coroutine]
	free  *seq.Seq[*coro.Coroutine]

	waiting       map[int]*coro.Coroutine
	sleepingCount int

	poller Poller
}

// New creates a Scheduler backed by the given Poller.
func New(poller Poller) *Scheduler {
	return &Scheduler{
		ready:   seq.New[*coro.Coroutine](nil),
		free:    seq.New[*coro.Coroutine](nil),
		waiting: make(map[int]*coro.Coroutine),
		poller:  poller,
	}
}

// NewDefault creates a Scheduler backed by the platform's default reactor
// (epoll on Linux).
func NewDefault() (*Scheduler, error) {
	p, err := NewEpollPoller()
	if err != nil {
		return nil, err
	}
	return New(p), nil
}

// Spawn creates a coroutine running entry and enqueues it READY. Spawn
// ordering is preserved: coroutines become runnable in the order they
// were spawned. Finished coroutines are recycled from the free list
// before a new one is allocated.
func (s *Scheduler) Spawn(entry coro.Entry) *coro.Coroutine {
	var co *coro.Coroutine
	if s.free.Size() > 0 {
		co = s.free.Pop()
	} else {
		co = coro.New()
	}
	co.Reset(s, entry)
	co.Start()
	s.ready.Push(co)
	return co
}

// RegisterWait implements coro.Registrar: it records which coroutine owns
// fd and arms the reactor. Registration failure on a fresh fd is handled
// by Poller.Add's own EEXIST-falls-back-to-modify rule; any other error
// here is fatal, matching spec.md §4.4's failure semantics — the caller
// (Coroutine.SleepFD) panics on it, treating it as a programmer bug.
func (s *Scheduler) RegisterWait(fd int, events uint32, co *coro.Coroutine) error {
	s.waiting[fd] = co
	return s.poller.Add(fd, events)
}

// ArmTimer implements coro.Registrar for Coroutine.SleepMS.
func (s *Scheduler) ArmTimer(ms int) (int, error) {
	return armTimer(ms)
}

// Run drives the scheduler's main loop until no coroutine is READY,
// SUSPENDED, or SLEEPING. It never returns while the engine keeps
// spawning an accept coroutine that loops forever.
func (s *Scheduler) Run() error {
	for {
		if s.ready.Size() > 0 {
			co, _ := s.ready.Get(0)
			s.ready.Remove(0)
			co.Resume()
			switch co.State() {
			case coro.Finished:
				s.free.Push(co)
			case coro.Sleeping:
				s.sleepingCount++
			case coro.Suspended:
				s.ready.Push(co)
			}
			continue
		}

		if s.sleepingCount == 0 {
			return nil
		}

		// Only reached once the ready queue is empty, so the reactor
		// poll timeout policy's "0 if anything is READY" case never
		// applies here; it is always an infinite block for more work.
		fds, err := s.poller.Wait(-1)
		if err != nil {
			return err
		}
		for _, fd := range fds {
			co, ok := s.waiting[fd]
			if !ok {
				continue
			}
			delete(s.waiting, fd)
			s.poller.Remove(fd)
			co.MarkReady()
			s.sleepingCount--
			s.ready.Push(co)
		}
	}
}

// Close releases the scheduler's reactor descriptor.
func (s *Scheduler) Close() error {
	return s.poller.Close()
}

package scheduler

import (
	"sync"
	"testing"

	"github.com/searchktools/coroserver/internal/coro"
)

// fakePoller is an in-memory reactor for tests: fds become ready only
// when the test explicitly marks them so via Fire. Safe for concurrent
// use since Run and the test driver call it from different goroutines.
type fakePoller struct {
	mu         sync.Mutex
	registered map[int]uint32
	fired      []int
	onAdd      chan int
}

func newFakePoller() *fakePoller {
	return &fakePoller{registered: make(map[int]uint32), onAdd: make(chan int, 8)}
}

func (p *fakePoller) Add(fd int, events uint32) error {
	p.mu.Lock()
	p.registered[fd] = events
	p.mu.Unlock()
	p.onAdd <- fd
	return nil
}

func (p *fakePoller) Remove(fd int) error {
	p.mu.Lock()
	delete(p.registered, fd)
	p.mu.Unlock()
	return nil
}

func (p *fakePoller) Wait(timeoutMS int) ([]int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fired := p.fired
	p.fired = nil
	return fired, nil
}

func (p *fakePoller) Close() error { return nil }

func (p *fakePoller) Fire(fd int) {
	p.mu.Lock()
	p.fired = append(p.fired, fd)
	p.mu.Unlock()
}

func TestRoundRobinFairness(t *testing.T) {
	s := New(newFakePoller())
	var order []string

	s.Spawn(func(c *coro.Coroutine) {
		order = append(order, "a1")
		c.Yield()
		order = append(order, "a2")
	})
	s.Spawn(func(c *coro.Coroutine) {
		order = append(order, "b1")
		c.Yield()
		order = append(order, "b2")
	})

	if err := s.Run(); err != nil {
		t.Fatal(err)
	}

	want := []string{"a1", "b1", "a2", "b2"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestSleepWakesOnReadiness(t *testing.T) {
	poller := newFakePoller()
	s := New(poller)

	done := false
	s.Spawn(func(c *coro.Coroutine) {
		c.SleepFD(42, 1)
		done = true
	})

	runErr := make(chan error, 1)
	go func() { runErr <- s.Run() }()

	fd := <-poller.onAdd
	if fd != 42 {
		t.Fatalf("registered fd = %d, want 42", fd)
	}
	poller.Fire(fd)

	if err := <-runErr; err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Fatal("coroutine never resumed after readiness fired")
	}
}

func TestFinishedCoroutinesAreRecycled(t *testing.T) {
	s := New(newFakePoller())
	s.Spawn(func(c *coro.Coroutine) {})
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	if s.free.Size() != 1 {
		t.Fatalf("free list size = %d, want 1", s.free.Size())
	}

	ran := false
	s.Spawn(func(c *coro.Coroutine) { ran = true })
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Fatal("recycled coroutine never ran")
	}
	if s.free.Size() != 1 {
		t.Fatalf("free list size after second run = %d, want 1", s.free.Size())
	}
}

package coro

import "testing"

type fakeRegistrar struct {
	registered []int
}

func (f *fakeRegistrar) RegisterWait(fd int, events uint32, co *Coroutine) error {
	f.registered = append(f.registered, fd)
	return nil
}

func (f *fakeRegistrar) ArmTimer(ms int) (int, error) {
	return -1, errNotImplemented
}

type sentinelError struct{}

func (sentinelError) Error() string { return "not implemented" }

var errNotImplemented = sentinelError{}

func TestYieldRoundTrip(t *testing.T) {
	co := New()
	reg := &fakeRegistrar{}
	var order []string
	co.Reset(reg, func(c *Coroutine) {
		order = append(order, "a")
		c.Yield()
		order = append(order, "b")
	})
	co.Start()

	co.Resume()
	if co.State() != Suspended {
		t.Fatalf("state after first resume = %v, want Suspended", co.State())
	}
	co.Resume()
	if co.State() != Finished {
		t.Fatalf("state after second resume = %v, want Finished", co.State())
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("order = %v", order)
	}
}

func TestSleepFDRegisters(t *testing.T) {
	co := New()
	reg := &fakeRegistrar{}
	co.Reset(reg, func(c *Coroutine) {
		c.SleepFD(7, 1)
	})
	co.Start()
	co.Resume()

	if co.State() != Sleeping {
		t.Fatalf("state = %v, want Sleeping", co.State())
	}
	if co.WaitFD() != 7 {
		t.Errorf("waitFD = %d, want 7", co.WaitFD())
	}
	if len(reg.registered) != 1 || reg.registered[0] != 7 {
		t.Errorf("registered = %v", reg.registered)
	}

	co.MarkReady()
	if co.State() != Ready {
		t.Errorf("state after MarkReady = %v", co.State())
	}
	if co.WaitFD() != -1 {
		t.Errorf("waitFD after MarkReady = %d", co.WaitFD())
	}
	co.Resume()
	if co.State() != Finished {
		t.Fatalf("state = %v, want Finished", co.State())
	}
}

func TestNegativeFDDegradesToYield(t *testing.T) {
	co := New()
	reg := &fakeRegistrar{}
	co.Reset(reg, func(c *Coroutine) {
		c.SleepFD(-1, 1)
	})
	co.Start()
	co.Resume()
	if co.State() != Suspended {
		t.Fatalf("state = %v, want Suspended", co.State())
	}
	if len(reg.registered) != 0 {
		t.Errorf("expected no registration for negative fd, got %v", reg.registered)
	}
	co.Resume()
	if co.State() != Finished {
		t.Fatalf("state = %v, want Finished", co.State())
	}
}

func TestResetRecyclesFinished(t *testing.T) {
	co := New()
	reg := &fakeRegistrar{}
	ran := 0
	co.Reset(reg, func(c *Coroutine) { ran++ })
	co.Start()
	co.Resume()
	if co.State() != Finished {
		t.Fatalf("state = %v, want Finished", co.State())
	}

	co.Reset(reg, func(c *Coroutine) { ran++ })
	co.Start()
	co.Resume()
	if ran != 2 {
		t.Errorf("ran = %d, want 2", ran)
	}
}

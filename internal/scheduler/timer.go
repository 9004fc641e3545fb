//go:build linux

package scheduler

import "golang.org/x/sys/unix"

// armTimer creates a one-shot CLOCK_MONOTONIC timerfd that fires once
// after ms milliseconds, for Coroutine.SleepMS. The caller (internal/coro)
// reads and closes it once it fires.
func armTimer(ms int) (int, error) {
	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, unix.TFD_NONBLOCK|unix.TFD_CLOEXEC)
	if err != nil {
		return -1, err
	}
	spec := unix.ItimerSpec{
		Value: unix.Timespec{
			Sec:  int64(ms / 1000),
			Nsec: int64(ms%1000) * 1e6,
		},
	}
	if err := unix.TimerfdSettime(fd, 0, &spec, nil); err != nil {
		unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

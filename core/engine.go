// Package core implements the application server (spec.md C7/C8): an
// Engine that owns a route table and, on Run, spawns one OS thread per
// worker, each with its own SO_REUSEPORT listener and its own
// scheduler.Scheduler driving an accept coroutine and one connection
// coroutine per accepted socket.
package core

import (
	"fmt"
	"net"
	"runtime"
	"strconv"
	"sync"

	"github.com/searchktools/coroserver/core/observability"
	"github.com/searchktools/coroserver/core/pools"
	"github.com/searchktools/coroserver/core/router"
	"github.com/searchktools/coroserver/internal/coro"
	"github.com/searchktools/coroserver/internal/scheduler"
)

// Engine is the application server: a route table plus the worker-pool
// runner.
type Engine struct {
	router  *router.Router
	monitor *observability.Monitor
	Workers int
}

// defaultWorkers matches spec.md C8's default worker-thread count.
const defaultWorkers = 6

// NewEngine creates an Engine with the default worker-thread count.
func NewEngine() *Engine {
	return &Engine{
		router:  router.New(),
		monitor: observability.NewMonitor(),
		Workers: defaultWorkers,
	}
}

func (e *Engine) GET(pattern string, h router.Handler)     { e.router.GET(pattern, h) }
func (e *Engine) POST(pattern string, h router.Handler)    { e.router.POST(pattern, h) }
func (e *Engine) PUT(pattern string, h router.Handler)     { e.router.PUT(pattern, h) }
func (e *Engine) DELETE(pattern string, h router.Handler)  { e.router.DELETE(pattern, h) }
func (e *Engine) PATCH(pattern string, h router.Handler)   { e.router.PATCH(pattern, h) }
func (e *Engine) OPTIONS(pattern string, h router.Handler) { e.router.OPTIONS(pattern, h) }
func (e *Engine) HEAD(pattern string, h router.Handler)    { e.router.HEAD(pattern, h) }

// Monitor returns the engine's request-metrics monitor.
func (e *Engine) Monitor() *observability.Monitor { return e.monitor }

// Run starts the worker pool listening on addr (host:port; host is
// ignored — every worker binds INADDR_ANY via SO_REUSEPORT) and blocks
// until every worker has returned, then reports the first non-nil
// worker error.
func (e *Engine) Run(addr string) error {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("core: invalid listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("core: invalid port %q: %w", portStr, err)
	}

	pools.ApplyGCConfig(pools.DefaultGCConfig())

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}

	errCh := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- e.runWorker(port)
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// runWorker pins the calling goroutine to its own OS thread, opens a
// SO_REUSEPORT listener, and drives one scheduler for the lifetime of
// the process. Coroutines spawned here never migrate to another
// worker's scheduler.
func (e *Engine) runWorker(port int) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	listenFd, err := newListenSocket(port)
	if err != nil {
		return fmt.Errorf("core: listen: %w", err)
	}
	defer closeQuiet(listenFd)

	sched, err := scheduler.NewDefault()
	if err != nil {
		return fmt.Errorf("core: scheduler: %w", err)
	}
	defer sched.Close()

	sched.Spawn(func(co *coro.Coroutine) {
		e.acceptLoop(co, listenFd, sched)
	})

	return sched.Run()
}

// acceptLoop runs forever, spawning one connection coroutine per
// accepted socket. It never returns; Scheduler.Run keeps running as
// long as at least one coroutine is READY, SUSPENDED, or SLEEPING.
func (e *Engine) acceptLoop(co *coro.Coroutine, listenFd int, sched *scheduler.Scheduler) {
	for {
		nfd, err := acceptConn(listenFd)
		if err != nil {
			if err == errTryAgain {
				co.SleepFD(listenFd, acceptReadyEvents)
				continue
			}
			continue
		}
		setConnSockOpts(nfd)
		fd := nfd
		sched.Spawn(func(co *coro.Coroutine) {
			serveConn(co, fd, e.router, e.monitor)
		})
	}
}

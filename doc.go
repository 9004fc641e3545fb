/*
Package coroserver provides a minimal HTTP/1.1 application server built
on a userspace coroutine runtime: an epoll reactor multiplexes any
number of stackful coroutines onto each of a fixed number of worker OS
threads (six by default, set by the -workers flag), each thread running
its own SO_REUSEPORT listener and cooperative scheduler.

Features

  - Userspace stackful coroutines: yield, sleep-on-fd, and sleep-ms
    primitives, scheduled cooperatively with no preemption
  - Epoll-based I/O reactor with a one-shot timerfd for sleeps
  - Zero-copy request parsing: headers and body are views over the
    connection's fixed read buffer, never copied
  - Ordered, first-match router with :param segment capture
  - One SO_REUSEPORT listener and scheduler per worker OS thread

Quick Start

Basic usage example:

package main

import (
    "github.com/searchktools/coroserver/app"
    "github.com/searchktools/coroserver/config"
    "github.com/searchktools/coroserver/core/http"
)

func main() {
    cfg := config.New()
    application := app.New(cfg)

    application.Engine().GET("/hello", func(req *http.Request, resp *http.Response) {
        resp.Status = 200
        resp.SetBodyString("Hello, World!")
    })

    application.Run()
}

Modules

The module is organized into several packages:

  - app: process lifecycle (signal handling, startup logging)
  - config: flag/env-based configuration
  - core: the Engine (worker pool, listener setup, connection driver)
  - core/http: request/response types, parser, and serializer
  - core/router: ordered first-match route table
  - core/optimize: SIMD-gated path-segment comparison
  - core/observability: per-route request counters
  - core/pools: GC tuning knobs applied at startup
  - internal/coro: the stackful-coroutine primitive
  - internal/scheduler: the per-thread cooperative scheduler and epoll reactor
  - internal/view: zero-copy byte/string views
  - internal/seq: a generic growable sequence used by the scheduler and router

For more information, see https://github.com/searchktools/coroserver
*/
package coroserver

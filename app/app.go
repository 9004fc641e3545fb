package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/searchktools/coroserver/config"
	"github.com/searchktools/coroserver/core"
)

// App is the application instance wiring configuration to the engine.
type App struct {
	cfg    *config.Config
	engine *core.Engine
}

// New creates an application instance with a fresh Engine.
func New(cfg *config.Config) *App {
	engine := core.NewEngine()

	return &App{
		cfg:    cfg,
		engine: engine,
	}
}

// Engine returns the underlying engine for route registration.
func (a *App) Engine() *core.Engine {
	return a.engine
}

// NewWithEngine creates an application instance with a pre-configured engine.
func NewWithEngine(cfg *config.Config, engine *core.Engine) *App {
	return &App{
		cfg:    cfg,
		engine: engine,
	}
}

// Run starts the application. There is no graceful shutdown: a
// SIGINT/SIGTERM exits the process immediately.
func (a *App) Run() {
	go a.awaitSignal()

	a.engine.Workers = a.cfg.Workers
	addr := fmt.Sprintf(":%d", a.cfg.Port)
	log.Printf("🚀 coroserver starting on port %d [%s], %d workers", a.cfg.Port, a.cfg.Env, a.cfg.Workers)

	if err := a.engine.Run(addr); err != nil {
		log.Fatalf("Server startup failed: %v", err)
	}
}

func (a *App) awaitSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("Signal received: %v. Shutting down...", sig)

	// TODO: Implement graceful shutdown
	os.Exit(0)
}

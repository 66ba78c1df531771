package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/AmirOssanloo/pkg-sits-node-service/internal/logger"
)

// TriggerKind tells what started a shutdown.
type TriggerKind int

const (
	TriggerSignal TriggerKind = iota + 1
	TriggerError
	TriggerContext
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerSignal:
		return "signal"
	case TriggerError:
		return "error"
	case TriggerContext:
		return "context"
	default:
		return "unknown"
	}
}

// Trigger describes one shutdown request.
type Trigger struct {
	Kind   TriggerKind
	Signal os.Signal
	Err    error
}

// ShutdownState is the position of a controller in its sequence.
type ShutdownState int

const (
	StateIdle ShutdownState = iota
	StateDraining
	StateReleasing
	StateDone
)

func (s ShutdownState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDraining:
		return "draining"
	case StateReleasing:
		return "releasing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// ReleaseFunc frees caller-owned resources once connections are drained.
type ReleaseFunc func(ctx context.Context) error

// ShutdownContext is consumed by exactly one shutdown.
type ShutdownContext struct {
	Drainer Drainer
	Release ReleaseFunc
	Logger  *logger.Logger
}

// ShutdownOption customises a ShutdownController.
type ShutdownOption func(*ShutdownController)

// WithDrainTimeout bounds the drain step. Zero waits for every connection.
func WithDrainTimeout(d time.Duration) ShutdownOption {
	return func(c *ShutdownController) {
		c.drainTimeout = d
	}
}

// WithExiter replaces the process exiter. A nil exiter leaves the process
// running once shutdown is done.
func WithExiter(e Exiter) ShutdownOption {
	return func(c *ShutdownController) {
		c.exiter = e
	}
}

// ShutdownController runs the drain then release sequence once per process.
type ShutdownController struct {
	sc           ShutdownContext
	drainTimeout time.Duration
	exiter       Exiter

	mu     sync.Mutex
	state  ShutdownState
	reason Trigger
	err    error
	done   chan struct{}
}

func NewShutdownController(sc ShutdownContext, opts ...ShutdownOption) *ShutdownController {
	if sc.Logger == nil {
		sc.Logger = logger.Nop()
	}
	c := &ShutdownController{
		sc:     sc,
		exiter: ProcessExiter{},
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ShutdownController) State() ShutdownState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done is closed once the sequence has finished, before the exit action.
func (c *ShutdownController) Done() <-chan struct{} {
	return c.done
}

// Err returns the drain failure of a finished shutdown.
func (c *ShutdownController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Reason returns the trigger that started the shutdown.
func (c *ShutdownController) Reason() Trigger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

func (c *ShutdownController) setState(s ShutdownState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Trigger runs the shutdown sequence and reports whether this call started
// it. A trigger arriving while a shutdown is underway is logged and ignored.
func (c *ShutdownController) Trigger(ctx context.Context, t Trigger) bool {
	log := c.sc.Logger

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		log.Warn().Str("trigger", t.Kind.String()).Msg("shutdown already in progress, ignoring trigger")
		return false
	}
	c.state = StateDraining
	c.reason = t
	c.mu.Unlock()

	c.logTrigger(t)
	log.Info().Msgf("Graceful shutdown started at %s", time.Now().UTC().Format(time.RFC3339))

	// The drain must finish before any resource is released.
	err := c.drain(ctx)

	c.setState(StateReleasing)
	c.release(ctx)

	c.mu.Lock()
	c.state = StateDone
	c.err = err
	c.mu.Unlock()
	close(c.done)

	c.exit(t, err)
	return true
}

func (c *ShutdownController) logTrigger(t Trigger) {
	log := c.sc.Logger
	switch t.Kind {
	case TriggerSignal:
		log.Info().Msgf("%s was called", signalName(t.Signal))
	case TriggerError:
		log.Error().Err(t.Err).Msg("Caught unrecoverable error")
	case TriggerContext:
		log.Info().Err(t.Err).Msg("Context cancelled")
	default:
		log.Info().Msg("Shutting down")
	}
}

func (c *ShutdownController) drain(ctx context.Context) error {
	if c.sc.Drainer == nil {
		return nil
	}

	// The parent context may already be cancelled when cancellation itself
	// triggered the shutdown.
	drainCtx := context.WithoutCancel(ctx)
	if c.drainTimeout > 0 {
		var cancel context.CancelFunc
		drainCtx, cancel = context.WithTimeout(drainCtx, c.drainTimeout)
		defer cancel()
	}

	if err := c.sc.Drainer.Shutdown(drainCtx); err != nil {
		c.sc.Logger.Error().Err(err).Msg("Cannot shutdown server")
		return fmt.Errorf("%w: %w", errShutdownFailed, err)
	}
	return nil
}

// release never propagates the callback error.
func (c *ShutdownController) release(ctx context.Context) {
	if c.sc.Release == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			c.sc.Logger.Error().Interface("panic", rec).Msg("Error occurred while releasing resources")
		}
	}()
	if err := c.sc.Release(context.WithoutCancel(ctx)); err != nil {
		c.sc.Logger.Error().Err(err).Msg("Error occurred while releasing resources")
	}
}

// exit leaves context-triggered shutdowns to the caller.
func (c *ShutdownController) exit(t Trigger, err error) {
	if c.exiter == nil || t.Kind == TriggerContext {
		return
	}
	log := c.sc.Logger

	if err == nil {
		c.exiter.Exit(0)
		return
	}

	switch t.Kind {
	case TriggerSignal:
		log.Error().Err(err).Msg("Killing process")
		if rerr := c.exiter.Raise(t.Signal); rerr != nil {
			log.Error().Err(rerr).Msg("cannot re-raise signal")
			c.exiter.Exit(1)
		}
	default:
		log.Error().Err(err).Msg("Failed to shutdown gracefully")
		c.exiter.Exit(1)
	}
}

// Watch blocks until the first of: a configured signal, an error on errs or
// cancellation of ctx, and turns it into a Trigger. It returns after the
// shutdown sequence has finished.
func (c *ShutdownController) Watch(ctx context.Context, signals <-chan os.Signal, errs <-chan error) {
	var t Trigger
	select {
	case sig := <-signals:
		t = Trigger{Kind: TriggerSignal, Signal: sig}
	case err := <-errs:
		t = Trigger{Kind: TriggerError, Err: err}
	case <-ctx.Done():
		t = Trigger{Kind: TriggerContext, Err: context.Cause(ctx)}
		if errors.Is(t.Err, context.Canceled) {
			t.Err = nil
		}
	case <-c.done:
		return
	}

	if !c.Trigger(ctx, t) {
		<-c.done
	}
}

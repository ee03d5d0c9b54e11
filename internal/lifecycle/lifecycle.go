// Package lifecycle runs the long-lived parts of the process and stops them
// in reverse order on a termination signal or when any of them finishes.
package lifecycle

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service represents a long-running component that can be started and stopped.
type Service interface {
	// Start runs the service and blocks until it finishes or is stopped.
	Start() error
	// Stop asks the service to finish.
	Stop()
}

// FuncService adapts a start/stop function pair into the Service interface.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls the underlying start function.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls the underlying stop function, if any.
func (f *FuncService) Stop() {
	if f.StopFn != nil {
		f.StopFn()
	}
}

// Resource wraps a cleanup func as a Service whose Start blocks until Stop,
// which runs cleanup exactly once.
func Resource(cleanup func()) Service {
	return &resource{cleanup: cleanup, done: make(chan struct{})}
}

type resource struct {
	once    sync.Once
	cleanup func()
	done    chan struct{}
}

func (r *resource) Start() error {
	<-r.done
	return nil
}

func (r *resource) Stop() {
	r.once.Do(func() {
		r.cleanup()
		close(r.done)
	})
}

// DefaultStopTimeout bounds how long Run waits for stopped services to return.
const DefaultStopTimeout = 5 * time.Second

// Lifecycle manages the startup and shutdown of multiple services.
// Services are started in order and stopped in reverse order.
type Lifecycle struct {
	logger      *zap.Logger
	services    []namedService
	stopTimeout time.Duration
	mu          sync.Mutex
}

type namedService struct {
	name     string
	service  Service
	detached bool
}

type result struct {
	name     string
	detached bool
	err      error
	uptime   time.Duration
}

// Option configures a Lifecycle.
type Option func(*Lifecycle)

// WithStopTimeout overrides DefaultStopTimeout.
func WithStopTimeout(d time.Duration) Option {
	return func(l *Lifecycle) { l.stopTimeout = d }
}

// New creates a Lifecycle.
//
// Precondition: logger must be non-nil.
func New(logger *zap.Logger, opts ...Option) *Lifecycle {
	l := &Lifecycle{logger: logger, stopTimeout: DefaultStopTimeout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add registers a named service. Services are started in the order they are added.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.add(namedService{name: name, service: svc})
}

// AddDetached registers a service whose Start may stay blocked after Stop,
// such as one reading stdin. It is stopped like any other service but Run
// does not wait for its Start to return.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) AddDetached(name string, svc Service) {
	l.add(namedService{name: name, service: svc, detached: true})
}

func (l *Lifecycle) add(ns namedService) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, ns)
}

// Run starts all services and blocks until SIGINT or SIGTERM arrives, ctx is
// cancelled, or any service's Start returns. Services are then stopped in
// reverse order and Run waits up to the stop timeout for every attached
// service's Start to return.
//
// Postcondition: All services are stopped when this method returns and no
// attached service goroutine is still running unless the stop timeout
// elapsed. The error of the first failing service, if any, is returned.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	// Service goroutines never log; they may outlive Run when detached.
	finished := make(chan result, len(services))
	attached := 0
	for _, ns := range services {
		if !ns.detached {
			attached++
		}
		l.logger.Debug("starting service", zap.String("service", ns.name))
		go func() {
			svcStart := time.Now()
			err := ns.service.Start()
			finished <- result{name: ns.name, detached: ns.detached, err: err, uptime: time.Since(svcStart)}
		}()
	}

	var runErr error
	select {
	case r := <-finished:
		runErr = l.record(r)
		if !r.detached {
			attached--
		}
	case <-ctx.Done():
		l.logger.Info("shutting down", zap.Error(ctx.Err()))
	}

	l.shutdown(services)
	if err := l.await(finished, attached); runErr == nil {
		runErr = err
	}
	l.logger.Debug("shutdown complete", zap.Duration("uptime", time.Since(start)))
	return runErr
}

// await collects results until pending attached services have returned or
// the stop timeout elapses. The first service error is returned.
func (l *Lifecycle) await(finished <-chan result, pending int) error {
	var firstErr error
	timeout := time.NewTimer(l.stopTimeout)
	defer timeout.Stop()
	for pending > 0 {
		select {
		case r := <-finished:
			if err := l.record(r); firstErr == nil {
				firstErr = err
			}
			if !r.detached {
				pending--
			}
		case <-timeout.C:
			l.logger.Warn("services still running after stop",
				zap.Int("pending", pending),
				zap.Duration("timeout", l.stopTimeout),
			)
			return firstErr
		}
	}
	return firstErr
}

func (l *Lifecycle) record(r result) error {
	if r.err != nil {
		l.logger.Error("service failed",
			zap.String("service", r.name),
			zap.Error(r.err),
			zap.Duration("uptime", r.uptime),
		)
		return fmt.Errorf("service %s: %w", r.name, r.err)
	}
	l.logger.Debug("service finished", zap.String("service", r.name), zap.Duration("uptime", r.uptime))
	return nil
}

func (l *Lifecycle) shutdown(services []namedService) {
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		svcStart := time.Now()
		ns.service.Stop()
		l.logger.Debug("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
}

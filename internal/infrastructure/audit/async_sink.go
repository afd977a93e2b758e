// Package audit implements the asynchronous, best-effort audit trail.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/finsmart/finsmart/internal/config"
	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/internal/domain/repository"
	"github.com/finsmart/finsmart/internal/infrastructure/monitoring"
	"github.com/finsmart/finsmart/pkg/errors"
	"github.com/finsmart/finsmart/pkg/logger"
)

// Sink accepts audit events off the request path and persists them on a pool
// of background workers. Submission never blocks: when the queue is full the
// event is dropped and counted. Persistence failures are logged and swallowed;
// the audit trail is intentionally not a hard guarantee.
type Sink struct {
	repo         repository.AuditRepository
	queue        chan *models.AuditEvent
	writeTimeout time.Duration
	log          logger.Logger
	metrics      *monitoring.Metrics

	wg        sync.WaitGroup
	closeOnce sync.Once

	// mu serializes Record's send with Close's channel close so a late
	// Record cannot send on a closed queue regardless of shutdown order.
	mu     sync.RWMutex
	closed bool
}

// NewSink creates a sink and starts its workers.
func NewSink(repo repository.AuditRepository, cfg *config.AuditConfig, log logger.Logger, metrics *monitoring.Metrics) *Sink {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1024
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	writeTimeout := time.Duration(cfg.WriteTimeout) * time.Second
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}

	s := &Sink{
		repo:         repo,
		queue:        make(chan *models.AuditEvent, queueSize),
		writeTimeout: writeTimeout,
		log:          log.WithComponent("audit"),
		metrics:      metrics,
	}

	s.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go s.consume()
	}

	return s
}

// Record enqueues an event for persistence and returns immediately. Safe to
// call from any goroutine; never propagates failures to the caller.
func (s *Sink) Record(event *models.AuditEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.metrics.AuditDropped.Inc()
		return
	}

	select {
	case s.queue <- event:
		s.metrics.AuditQueueDepth.Set(float64(len(s.queue)))
	default:
		s.metrics.AuditDropped.Inc()
		s.log.Warn(context.Background(), "audit queue full, dropping record",
			logger.String("method", event.Method),
			logger.String("path", event.Path),
		)
	}
}

func (s *Sink) consume() {
	defer s.wg.Done()

	for event := range s.queue {
		s.persist(event)
		s.metrics.AuditQueueDepth.Set(float64(len(s.queue)))
	}
}

func (s *Sink) persist(event *models.AuditEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	if err := s.repo.Create(ctx, event); err != nil {
		s.metrics.AuditWriteFailures.Inc()
		s.log.Error(ctx, "failed to persist audit record", errors.ErrAuditWriteFailed(err),
			logger.String("method", event.Method),
			logger.String("path", event.Path),
			logger.Int("status", event.Status),
		)
		return
	}
	s.metrics.AuditWritten.Inc()
}

// Close stops accepting events and drains the queue, bounded by ctx.
func (s *Sink) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

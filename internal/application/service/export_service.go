package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finsmart/finsmart/internal/domain/repository"
	"github.com/finsmart/finsmart/internal/infrastructure/export"
	"github.com/finsmart/finsmart/internal/infrastructure/monitoring"
	"github.com/finsmart/finsmart/pkg/logger"
)

// ExportService periodically drains newly created feedback records into the
// retraining feed. Best-effort: a failed run is logged and retried on the next
// tick with the cursor unmoved, so records are not lost, only delayed.
type ExportService struct {
	repo     repository.FeedbackRepository
	exporter export.FeedbackExporter
	interval time.Duration
	log      logger.Logger
	metrics  *monitoring.Metrics

	mu     sync.Mutex
	cursor time.Time
	// atCursor holds the IDs already published at exactly the cursor
	// instant. ListSince is inclusive, so those records come back again
	// on the next run and must not be re-published.
	atCursor map[uuid.UUID]struct{}
}

// NewExportService creates the export job. The cursor starts at job creation;
// history before process start is the bulk-export tooling's problem.
func NewExportService(
	repo repository.FeedbackRepository,
	exporter export.FeedbackExporter,
	interval time.Duration,
	log logger.Logger,
	metrics *monitoring.Metrics,
) *ExportService {
	return &ExportService{
		repo:     repo,
		exporter: exporter,
		interval: interval,
		log:      log.WithComponent("feedback_export"),
		metrics:  metrics,
		cursor:   time.Now().UTC(),
	}
}

// Run ticks until ctx is cancelled.
func (s *ExportService) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce exports every record created since the cursor and, on success,
// advances the cursor to the newest exported record. Records sharing the
// cursor timestamp are deduplicated by ID across runs, so a record committed
// at an already-exported instant is still picked up exactly once.
func (s *ExportService) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.repo.ListSince(ctx, s.cursor)
	if err != nil {
		s.log.Error(ctx, "export run failed to read feedback", err)
		return
	}

	fresh := records[:0]
	for _, rec := range records {
		if rec.CreatedAt.Equal(s.cursor) {
			if _, done := s.atCursor[rec.ID]; done {
				continue
			}
		}
		fresh = append(fresh, rec)
	}
	if len(fresh) == 0 {
		return
	}

	if err := s.exporter.Export(ctx, fresh); err != nil {
		s.log.Error(ctx, "export run failed to publish", err,
			logger.Int("batch_size", len(fresh)),
		)
		return
	}

	// Records come back newest-first; the first entry bounds the batch.
	newest := fresh[0].CreatedAt
	atCursor := make(map[uuid.UUID]struct{})
	for _, rec := range fresh {
		if rec.CreatedAt.Equal(newest) {
			atCursor[rec.ID] = struct{}{}
		}
	}
	if newest.Equal(s.cursor) {
		for id := range s.atCursor {
			atCursor[id] = struct{}{}
		}
	}
	s.cursor = newest
	s.atCursor = atCursor

	s.metrics.FeedbackExported.Add(float64(len(fresh)))
	s.log.Info(ctx, "exported feedback batch",
		logger.Int("batch_size", len(fresh)),
		logger.Time("cursor", s.cursor),
	)
}

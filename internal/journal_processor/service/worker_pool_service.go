package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/freightbooks-ledger/internal/domain/shared"
)

// WorkerPoolProcessingService wraps a ProcessingService with a bounded
// worker pool. Batches for different accounts can post concurrently; the
// journal is append-only, so workers never contend on rows.
type WorkerPoolProcessingService struct {
	baseService ProcessingService
	pool        *ants.Pool
	logger      *slog.Logger
	mu          sync.Mutex
	results     map[string]chan error
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolProcessingService(
	baseService ProcessingService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolProcessingService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolProcessingService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
		results:     make(map[string]chan error),
	}, nil
}

// ProcessBatch submits a posting request to the worker pool and waits for
// its verdict.
func (s *WorkerPoolProcessingService) ProcessBatch(ctx context.Context, request *shared.PostingRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Submitting batch to worker pool",
		"batch_id", request.BatchID.String(),
		"line_count", len(request.Lines),
	)

	resultChan := make(chan error, 1)

	batchID := request.BatchID.String()
	s.mu.Lock()
	s.results[batchID] = resultChan
	s.mu.Unlock()

	// Copy the request so the worker never shares memory with the caller
	requestCopy := *request

	err := s.pool.Submit(func() {
		err := s.baseService.ProcessBatch(ctx, &requestCopy)

		resultChan <- err

		s.mu.Lock()
		delete(s.results, batchID)
		close(resultChan)
		s.mu.Unlock()
	})

	if err != nil {
		s.mu.Lock()
		delete(s.results, batchID)
		close(resultChan)
		s.mu.Unlock()

		logger.Error("Failed to submit batch to worker pool",
			"batch_id", request.BatchID.String(),
			"error", err,
		)
		return err
	}

	return <-resultChan
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolProcessingService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolProcessingService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolProcessingService) Capacity() int {
	return s.pool.Cap()
}

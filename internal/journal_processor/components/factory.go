package components

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/freightbooks-ledger/internal/config"
	"github.com/freightbooks-ledger/internal/domain/account"
	"github.com/freightbooks-ledger/internal/domain/audit"
	"github.com/freightbooks-ledger/internal/domain/journal"
	"github.com/freightbooks-ledger/internal/domain/outbox"
	"github.com/freightbooks-ledger/internal/journal_processor/service"
	"github.com/freightbooks-ledger/internal/ledger"
	"github.com/freightbooks-ledger/internal/platform/persistence"
)

// CreateProcessingService creates a new ProcessingService with all its dependencies.
func CreateProcessingService(
	pgDB *persistence.PostgresDB,
	accountRepo account.Repository,
	journalRepo journal.Repository,
	outboxRepo outbox.Repository,
	auditRepo audit.Repository,
	logger *slog.Logger,
	cfg *config.Config,
) service.ProcessingService {
	epsilon, err := decimal.NewFromString(cfg.Ledger.Epsilon)
	if err != nil {
		logger.Warn("Invalid balance epsilon in config, using default",
			"configured", cfg.Ledger.Epsilon,
			"default", ledger.DefaultEpsilon.String(),
		)
		epsilon = ledger.DefaultEpsilon
	}

	validator := NewBatchValidator(journalRepo, epsilon, logger)
	journalWriter := NewJournalWriter(accountRepo, journalRepo, logger)
	outboxManager := NewOutboxManager(outboxRepo, logger)
	failureRecorder := NewFailureRecorder(auditRepo, logger)

	baseService := service.NewProcessingService(
		pgDB,
		validator,
		journalWriter,
		outboxManager,
		failureRecorder,
		logger,
	)

	workerPoolService, err := service.NewWorkerPoolProcessingService(
		baseService,
		service.WorkerPoolConfig{
			Size: cfg.WorkerPool.Size,
		},
		logger.With("component", "worker_pool"),
	)

	if err != nil {
		logger.Error("Failed to create worker pool service, falling back to base service", "error", err)
		return baseService
	}

	logger.Info("Created worker pool processing service", "pool_size", cfg.WorkerPool.Size)
	return workerPoolService
}

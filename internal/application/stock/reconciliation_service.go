package stock

import (
	"context"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/gasflow/backend/internal/domain/stock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconciliationService exposes the pending stock gaps and drives retries
type ReconciliationService struct {
	taskRepo     stock.ReconciliationTaskRepository
	registerRepo stock.StockRegisterRepository
	logger       *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	taskRepo stock.ReconciliationTaskRepository,
	registerRepo stock.StockRegisterRepository,
	logger *zap.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		taskRepo:     taskRepo,
		registerRepo: registerRepo,
		logger:       logger,
	}
}

// ListPending retrieves unresolved tasks, oldest first
func (s *ReconciliationService) ListPending(ctx context.Context, filter shared.Filter) ([]ReconciliationTaskResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	tasks, err := s.taskRepo.FindPending(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.taskRepo.CountPending(ctx)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReconciliationTaskResponse, len(tasks))
	for i, t := range tasks {
		responses[i] = ToReconciliationTaskResponse(&t)
	}
	return responses, total, nil
}

// Retry re-attempts one pending task. On success the task is resolved; on
// failure the attempt is recorded and the task stays pending. The retry
// checks the stock log first, so a task whose delta landed after all is
// resolved without double-applying.
func (s *ReconciliationService) Retry(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*ReconciliationTaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == stock.TaskStatusResolved {
		return nil, shared.NewDomainError("INVALID_STATE", "Task is already resolved")
	}

	delta := task.Delta(actorID)

	exists, err := s.registerRepo.HasTransaction(ctx, delta.Type, task.ReferenceID, task.ProductID)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := s.registerRepo.ApplyDelta(ctx, delta); err != nil {
			task.RecordFailure(err.Error())
			if saveErr := s.taskRepo.Save(ctx, task); saveErr != nil {
				s.logger.Error("failed to record retry failure",
					zap.String("task_id", task.ID.String()),
					zap.Error(saveErr),
				)
			}
			return nil, err
		}
	} else {
		s.logger.Warn("stock delta already applied, resolving task without re-applying",
			zap.String("task_id", task.ID.String()),
			zap.String("reference_id", task.ReferenceID.String()),
		)
	}

	if err := task.MarkResolved(actorID); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("reconciliation task resolved",
		zap.String("task_id", task.ID.String()),
		zap.String("product_id", task.ProductID.String()),
		zap.Int("attempts", task.Attempts),
	)

	response := ToReconciliationTaskResponse(task)
	return &response, nil
}

// RetryAll re-attempts every pending task and reports how many resolved
func (s *ReconciliationService) RetryAll(ctx context.Context, actorID uuid.UUID) (resolved, failed int, err error) {
	filter := shared.Filter{Page: 1, PageSize: 500, OrderBy: "created_at", OrderDir: "asc"}
	tasks, err := s.taskRepo.FindPending(ctx, filter)
	if err != nil {
		return 0, 0, err
	}

	for _, task := range tasks {
		if _, retryErr := s.Retry(ctx, task.ID, actorID); retryErr != nil {
			failed++
			continue
		}
		resolved++
	}
	return resolved, failed, nil
}

// CountPending counts unresolved tasks
func (s *ReconciliationService) CountPending(ctx context.Context) (int64, error) {
	return s.taskRepo.CountPending(ctx)
}

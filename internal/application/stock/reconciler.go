package stock

import (
	"context"

	"github.com/gasflow/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// StockReconciler applies event-driven stock deltas with failure isolation.
// Each delta is attempted independently; a failure is persisted as a
// pending ReconciliationTask instead of propagating to the operation that
// raised the event. Already-applied deltas are detected via the stock log
// and skipped, so redelivered events are harmless.
type StockReconciler struct {
	registerRepo stock.StockRegisterRepository
	taskRepo     stock.ReconciliationTaskRepository
	logger       *zap.Logger
}

// NewStockReconciler creates a new StockReconciler
func NewStockReconciler(
	registerRepo stock.StockRegisterRepository,
	taskRepo stock.ReconciliationTaskRepository,
	logger *zap.Logger,
) *StockReconciler {
	return &StockReconciler{
		registerRepo: registerRepo,
		taskRepo:     taskRepo,
		logger:       logger,
	}
}

// Apply applies one delta. Returns true when the register was mutated,
// false when the delta was skipped as already applied or parked as a
// pending task.
func (r *StockReconciler) Apply(ctx context.Context, delta stock.StockDelta) bool {
	if delta.ReferenceID != nil {
		exists, err := r.registerRepo.HasTransaction(ctx, delta.Type, *delta.ReferenceID, delta.ProductID)
		if err != nil {
			r.park(ctx, delta, "idempotency check failed: "+err.Error())
			return false
		}
		if exists {
			r.logger.Warn("stock delta already applied, skipping",
				zap.String("type", delta.Type.String()),
				zap.String("reference_id", delta.ReferenceID.String()),
				zap.String("product_id", delta.ProductID.String()),
			)
			return false
		}
	}

	if err := r.registerRepo.ApplyDelta(ctx, delta); err != nil {
		r.park(ctx, delta, err.Error())
		return false
	}

	r.logger.Info("stock delta applied",
		zap.String("type", delta.Type.String()),
		zap.String("product_id", delta.ProductID.String()),
		zap.Int("filled", delta.Filled),
		zap.Int("empty", delta.Empty),
		zap.Int("damaged", delta.Damaged),
		zap.Int("in_field", delta.InField),
	)
	return true
}

// park records a failed delta as a pending task for manual or scheduled
// retry. A failure to persist the task itself is logged and dropped;
// there is nothing further to fall back to.
func (r *StockReconciler) park(ctx context.Context, delta stock.StockDelta, cause string) {
	r.logger.Error("stock delta failed, recording reconciliation task",
		zap.String("type", delta.Type.String()),
		zap.String("product_id", delta.ProductID.String()),
		zap.String("product_name", delta.ProductName),
		zap.String("cause", cause),
	)

	task, err := stock.NewReconciliationTask(delta, cause)
	if err != nil {
		r.logger.Error("cannot build reconciliation task",
			zap.String("product_id", delta.ProductID.String()),
			zap.Error(err),
		)
		return
	}
	if err := r.taskRepo.Save(ctx, task); err != nil {
		r.logger.Error("failed to persist reconciliation task",
			zap.String("product_id", delta.ProductID.String()),
			zap.Error(err),
		)
	}
}

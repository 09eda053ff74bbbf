package cron

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/artesanos-backend/pkg/logger"
)

const defaultSaleSweepBatch = 100

type saleNotifier interface {
	NotifyPending(ctx context.Context, batch int) (int, error)
}

type SaleNotificationJobParams struct {
	Logger *logger.Logger
	Sales  saleNotifier
	Batch  int
}

// NewSaleNotificationJob turns un-notified sales into notifications for the store owner.
func NewSaleNotificationJob(params SaleNotificationJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, errors.New("logger required")
	}
	if params.Sales == nil {
		return nil, errors.New("sales service required")
	}
	batch := params.Batch
	if batch <= 0 {
		batch = defaultSaleSweepBatch
	}
	return &saleNotificationJob{logg: params.Logger, sales: params.Sales, batch: batch}, nil
}

type saleNotificationJob struct {
	logg  *logger.Logger
	sales saleNotifier
	batch int
}

func (j *saleNotificationJob) Name() string { return "sale-notification-sweep" }

// Run drains full batches until a short one signals the backlog is empty.
func (j *saleNotificationJob) Run(ctx context.Context) error {
	total := 0
	for {
		n, err := j.sales.NotifyPending(ctx, j.batch)
		if err != nil {
			return fmt.Errorf("sale notification sweep: %w", err)
		}
		total += n
		if n < j.batch {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"batch": j.batch, "sales_notified": total})
	j.logg.Info(logCtx, "sale notification sweep complete")
	return nil
}

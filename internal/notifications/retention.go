package notifications

import (
	"context"
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Retention purges notifications the recipient already read.
type Retention struct{}

// DeleteReadBefore removes read notifications created before cutoff. Unread rows are never touched.
func (Retention) DeleteReadBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	result := tx.WithContext(ctx).
		Where("read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

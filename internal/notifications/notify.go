package notifications

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	"github.com/google/uuid"
)

// Notify stores one unread notification for the target user. Pass a
// repository bound to the caller's transaction so the notification commits or
// rolls back with the action that triggered it.
func Notify(ctx context.Context, repo Repository, userID uuid.UUID, message string) (*models.Notification, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if userID == uuid.Nil {
		return nil, fmt.Errorf("notification target required")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("notification message required")
	}

	notification := &models.Notification{
		UserID:  userID,
		Message: truncate(message, models.NotificationMessageMaxLen),
	}
	if err := repo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func truncate(value string, max int) string {
	if utf8.RuneCountInString(value) <= max {
		return value
	}
	runes := []rune(value)
	return string(runes[:max-1]) + "…"
}

func ReviewMessage(productName string) string {
	return fmt.Sprintf("Tu producto '%s' recibió una nueva reseña.", productName)
}

func OrderMessage(productName, buyerUsername string) string {
	return fmt.Sprintf("Nuevo pedido de '%s' por %s.", productName, buyerUsername)
}

func SaleMessage(productName, buyerUsername string) string {
	return fmt.Sprintf("Venta registrada de '%s' a %s.", productName, buyerUsername)
}

func OrderDecisionMessage(productName string, status enums.OrderStatus) string {
	return fmt.Sprintf("Tu pedido de '%s' cambió a %s.", productName, strings.ToLower(status.Label()))
}

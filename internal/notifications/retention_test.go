package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/db/dbtest"
	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	"github.com/stretchr/testify/require"
)

func TestRetentionDeletesOnlyOldReadNotifications(t *testing.T) {
	client := dbtest.New(t)
	user, _ := dbtest.User(t, client, "lucia", enums.RoleBuyer)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seed := func(read bool, createdAt time.Time) {
		n := &models.Notification{UserID: user.ID, Message: "hola", Read: read, CreatedAt: createdAt}
		require.NoError(t, client.DB().Create(n).Error)
	}
	seed(true, now.AddDate(0, 0, -120))
	seed(false, now.AddDate(0, 0, -120))
	seed(true, now.AddDate(0, 0, -10))

	deleted, err := Retention{}.DeleteReadBefore(context.Background(), client.DB(), now.AddDate(0, 0, -90))
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)
	require.EqualValues(t, 2, dbtest.Count(t, client, "notifications", ""))
	require.EqualValues(t, 1, dbtest.Count(t, client, "notifications", "read = ?", false))
}

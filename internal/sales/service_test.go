package sales

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/db/dbtest"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateRecordsUnnotifiedSale(t *testing.T) {
	client := dbtest.New(t)
	_, _, store := dbtest.Seller(t, client, "rosa", "Oaxaca")
	product := dbtest.Product(t, client, store, "Jarrón", "ceramica", 1500, time.Now())
	buyer, profile := dbtest.User(t, client, "ana", enums.RoleBuyer)
	svc, err := NewService(client)
	require.NoError(t, err)

	result, err := svc.Simulate(context.Background(), dbtest.Actor(buyer, profile), product.ID)
	require.NoError(t, err)
	assert.False(t, result.Sale.Notified)
	assert.Equal(t, "Simulaste la venta de Jarrón.", result.Message)
	assert.Equal(t, "/mi_tienda/", result.RedirectTo)
	assert.EqualValues(t, 0, dbtest.Count(t, client, "notifications", ""))

	count, err := NewRepository(client.DB()).CountUnnotifiedByStore(context.Background(), store.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = svc.Simulate(context.Background(), dbtest.Actor(buyer, profile), uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestNotifyPendingSweepsInBatches(t *testing.T) {
	client := dbtest.New(t)
	seller, _, store := dbtest.Seller(t, client, "rosa", "Oaxaca")
	product := dbtest.Product(t, client, store, "Jarrón", "ceramica", 1500, time.Now())
	buyer, profile := dbtest.User(t, client, "ana", enums.RoleBuyer)
	svc, err := NewService(client)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Simulate(ctx, dbtest.Actor(buyer, profile), product.ID)
		require.NoError(t, err)
	}

	sent, err := svc.NotifyPending(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.EqualValues(t, 2, dbtest.Count(t, client, "notifications", "user_id = ? AND message = ?", seller.ID, "Venta registrada de 'Jarrón' a ana."))

	sent, err = svc.NotifyPending(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	sent, err = svc.NotifyPending(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.EqualValues(t, 3, dbtest.Count(t, client, "sales", "notified = ?", true))
}

func TestListByStoreNewestFirst(t *testing.T) {
	client := dbtest.New(t)
	_, _, store := dbtest.Seller(t, client, "rosa", "Oaxaca")
	_, _, otherStore := dbtest.Seller(t, client, "luis", "Puebla")
	now := time.Now()
	first := dbtest.Product(t, client, store, "Jarrón", "ceramica", 1500, now)
	second := dbtest.Product(t, client, store, "Plato", "ceramica", 500, now)
	foreign := dbtest.Product(t, client, otherStore, "Rebozo", "textil", 900, now)
	buyer, profile := dbtest.User(t, client, "ana", enums.RoleBuyer)
	svc, err := NewService(client)
	require.NoError(t, err)
	ctx := context.Background()

	for _, id := range []uuid.UUID{first.ID, foreign.ID, second.ID} {
		_, err := svc.Simulate(ctx, dbtest.Actor(buyer, profile), id)
		require.NoError(t, err)
	}

	items, err := NewRepository(client.DB()).ListByStore(ctx, store.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Plato", items[0].ProductName)
	assert.Equal(t, "Jarrón", items[1].ProductName)
}

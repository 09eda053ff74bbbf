package stores

import (
	"context"
	"testing"

	"github.com/angelmondragon/artesanos-backend/pkg/db"
	"github.com/angelmondragon/artesanos-backend/pkg/db/dbtest"
	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestServiceCreateStore(t *testing.T) {
	client := dbtest.New(t)
	user, profile := dbtest.User(t, client, "rosa", enums.RoleArtisan)
	svc, err := NewService(client)
	require.NoError(t, err)

	result, err := svc.Create(context.Background(), dbtest.Actor(user, profile), CreateStoreInput{
		Name:        " Barro Negro ",
		Description: "alfarería de Oaxaca",
		Location:    "Oaxaca",
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, DashboardPath, result.RedirectTo)
	assert.Equal(t, "Barro Negro", result.Store.Name)
	assert.True(t, result.Store.Active)
	assert.False(t, result.Store.Approved)
}

func TestServiceCreateStoreSecondAttemptIsNoop(t *testing.T) {
	client := dbtest.New(t)
	user, profile, store := dbtest.Seller(t, client, "rosa", "Oaxaca")
	svc, err := NewService(client)
	require.NoError(t, err)

	result, err := svc.Create(context.Background(), dbtest.Actor(user, profile), CreateStoreInput{Name: "Otra", Location: "Puebla"})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, store.ID, result.Store.ID)
	assert.Equal(t, DashboardPath, result.RedirectTo)
	assert.EqualValues(t, 1, dbtest.Count(t, client, "stores", ""))
}

// staleLookupRepository misses the first store lookup, as a request does when
// a concurrent one inserts between its check and its insert.
type staleLookupRepository struct {
	*Repository
	missed *bool
}

func (r staleLookupRepository) FindByArtisanProfile(ctx context.Context, profileID uuid.UUID) (*models.Store, error) {
	if !*r.missed {
		*r.missed = true
		return nil, gorm.ErrRecordNotFound
	}
	return r.Repository.FindByArtisanProfile(ctx, profileID)
}

func TestServiceCreateStoreLostInsertRaceIsNoop(t *testing.T) {
	client := dbtest.New(t)
	user, profile, winner := dbtest.Seller(t, client, "rosa", "Oaxaca")
	missed := false
	svc := &service{
		db: client,
		repoFor: func(tx *gorm.DB) storeRepository {
			return staleLookupRepository{Repository: NewRepository(tx), missed: &missed}
		},
	}

	result, err := svc.Create(context.Background(), dbtest.Actor(user, profile), CreateStoreInput{Name: "Segunda", Location: "Puebla"})
	require.NoError(t, err)
	require.True(t, missed)
	assert.False(t, result.Created)
	assert.Equal(t, winner.ID, result.Store.ID)
	assert.Equal(t, DashboardPath, result.RedirectTo)
	assert.EqualValues(t, 1, dbtest.Count(t, client, "stores", ""))
}

func TestRepositoryRejectsSecondStoreForProfile(t *testing.T) {
	client := dbtest.New(t)
	_, profile, _ := dbtest.Seller(t, client, "rosa", "Oaxaca")

	err := NewRepository(client.DB()).Create(context.Background(), CreateStoreInput{Name: "Dup", Location: "x"}.toModel(profile.ID))
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, UniqueArtisanConstraint))
}

func TestServiceCreateStoreRejectsBuyer(t *testing.T) {
	client := dbtest.New(t)
	user, profile := dbtest.User(t, client, "ana", enums.RoleBuyer)
	svc, err := NewService(client)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dbtest.Actor(user, profile), CreateStoreInput{Name: "x", Location: "y"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	_, err = svc.Create(context.Background(), types.Actor{}, CreateStoreInput{Name: "x", Location: "y"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestServiceMine(t *testing.T) {
	client := dbtest.New(t)
	svc, err := NewService(client)
	require.NoError(t, err)

	user, profile := dbtest.User(t, client, "sin_tienda", enums.RoleArtisan)
	_, err = svc.Mine(context.Background(), dbtest.Actor(user, profile))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStoreRequired, typed.Code())
	assert.Equal(t, map[string]any{"redirect_to": CreateStorePath}, typed.Details())

	seller, sellerProfile, store := dbtest.Seller(t, client, "rosa", "Oaxaca")
	dto, err := svc.Mine(context.Background(), dbtest.Actor(seller, sellerProfile))
	require.NoError(t, err)
	assert.Equal(t, store.ID, dto.ID)

	found, err := NewRepository(client.DB()).FindByArtisanUser(context.Background(), seller.ID)
	require.NoError(t, err)
	assert.Equal(t, store.ID, found.ID)
}

// Package dbtest opens throwaway SQLite databases with the marketplace schema
// and seeds common fixtures for repository and service tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/db"
	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"github.com/google/uuid"
)

// New returns an isolated in-memory database closed when the test ends.
func New(t testing.TB) *db.Client {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	client, err := db.OpenSQLite(context.Background(), dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// User inserts a user with a profile of the given role.
func User(t testing.TB, client *db.Client, username string, role enums.Role) (*models.User, *models.Profile) {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		IsActive:     true,
	}
	if err := client.DB().Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	profile := &models.Profile{UserID: user.ID, Role: role}
	if err := client.DB().Create(profile).Error; err != nil {
		t.Fatalf("create profile %s: %v", username, err)
	}
	return user, profile
}

// Store inserts a store owned by the artisan profile.
func Store(t testing.TB, client *db.Client, profile *models.Profile, location string) *models.Store {
	t.Helper()
	store := &models.Store{
		ArtisanProfileID: profile.ID,
		Name:             "Taller " + location,
		Description:      "hecho a mano",
		Location:         location,
		Active:           true,
	}
	if err := client.DB().Create(store).Error; err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

// Product inserts a product with an explicit creation time so ordering is deterministic.
func Product(t testing.TB, client *db.Client, store *models.Store, name, category string, price int64, createdAt time.Time) *models.Product {
	t.Helper()
	product := &models.Product{
		StoreID:     store.ID,
		Name:        name,
		Description: name + " artesanal",
		Price:       price,
		Category:    category,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   createdAt.UTC(),
	}
	if err := client.DB().Create(product).Error; err != nil {
		t.Fatalf("create product %s: %v", name, err)
	}
	return product
}

// Seller inserts an artisan with a store in one call.
func Seller(t testing.TB, client *db.Client, username, location string) (*models.User, *models.Profile, *models.Store) {
	t.Helper()
	user, profile := User(t, client, username, enums.RoleArtisan)
	return user, profile, Store(t, client, profile, location)
}

// Count returns the number of rows in table matching the optional condition.
func Count(t testing.TB, client *db.Client, table string, query string, args ...any) int64 {
	t.Helper()
	var count int64
	q := client.DB().Table(table)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

// Actor builds the authenticated caller for a seeded user.
func Actor(user *models.User, profile *models.Profile) types.Actor {
	return types.Actor{
		UserID:    user.ID,
		ProfileID: profile.ID,
		Username:  user.Username,
		Role:      profile.Role,
	}
}

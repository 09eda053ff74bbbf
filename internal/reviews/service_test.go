package reviews

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/config"
	"github.com/angelmondragon/artesanos-backend/pkg/db/dbtest"
	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReviewNotifiesOwnerOnce(t *testing.T) {
	client := dbtest.New(t)
	seller, _, store := dbtest.Seller(t, client, "rosa", "Oaxaca")
	product := dbtest.Product(t, client, store, "Jarrón", "ceramica", 1500, time.Now())
	buyer, buyerProfile := dbtest.User(t, client, "ana", enums.RoleBuyer)
	svc, err := NewService(ServiceParams{DB: client, Rules: config.DefaultReviewConfig()})
	require.NoError(t, err)

	result, err := svc.Add(context.Background(), dbtest.Actor(buyer, buyerProfile), product.ID, ReviewInput{Rating: 5, Comment: " precioso "})
	require.NoError(t, err)
	assert.Equal(t, "precioso", result.Review.Comment)
	assert.Equal(t, "ana", result.Review.AuthorUsername)

	assert.EqualValues(t, 1, dbtest.Count(t, client, "reviews", "active = ?", true))
	assert.EqualValues(t, 1, dbtest.Count(t, client, "notifications", "user_id = ? AND message = ?", seller.ID, "Tu producto 'Jarrón' recibió una nueva reseña."))

	_, err = svc.Add(context.Background(), dbtest.Actor(buyer, buyerProfile), product.ID, ReviewInput{Rating: 4})
	require.NoError(t, err)
	assert.EqualValues(t, 2, dbtest.Count(t, client, "reviews", ""))
	assert.EqualValues(t, 2, dbtest.Count(t, client, "notifications", ""))
}

func TestAddReviewRejectsInvalidInput(t *testing.T) {
	client := dbtest.New(t)
	_, _, store := dbtest.Seller(t, client, "rosa", "Oaxaca")
	product := dbtest.Product(t, client, store, "Jarrón", "ceramica", 1500, time.Now())
	buyer, buyerProfile := dbtest.User(t, client, "ana", enums.RoleBuyer)
	svc, err := NewService(ServiceParams{DB: client, Rules: config.DefaultReviewConfig()})
	require.NoError(t, err)
	actor := dbtest.Actor(buyer, buyerProfile)

	_, err = svc.Add(context.Background(), actor, product.ID, ReviewInput{Rating: 6, Comment: strings.Repeat("a", 2001)})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "rating")
	assert.Contains(t, details, "comment")

	_, err = svc.Add(context.Background(), actor, uuid.New(), ReviewInput{Rating: 3})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	assert.EqualValues(t, 0, dbtest.Count(t, client, "reviews", ""))
	assert.EqualValues(t, 0, dbtest.Count(t, client, "notifications", ""))
}

func TestRulesUseConfiguredBounds(t *testing.T) {
	rules := NewRules(config.ReviewConfig{RatingMin: 0, RatingMax: 10, CommentMaxLength: 5, CommentRequired: true})

	assert.NoError(t, rules.Check(ReviewInput{Rating: 0, Comment: "bien"}))
	assert.NoError(t, rules.Check(ReviewInput{Rating: 10, Comment: "ñañaú"}))
	assert.Error(t, rules.Check(ReviewInput{Rating: 11, Comment: "bien"}))
	assert.Error(t, rules.Check(ReviewInput{Rating: 5, Comment: "  "}))
	assert.Error(t, rules.Check(ReviewInput{Rating: 5, Comment: "demasiado"}))

	defaults := NewRules(config.ReviewConfig{})
	assert.Error(t, defaults.Check(ReviewInput{Rating: 0}))
	assert.NoError(t, defaults.Check(ReviewInput{Rating: 1}))
}

func TestRespondIsOwnerScoped(t *testing.T) {
	client := dbtest.New(t)
	seller, sellerProfile, store := dbtest.Seller(t, client, "rosa", "Oaxaca")
	other, otherProfile, _ := dbtest.Seller(t, client, "luis", "Puebla")
	product := dbtest.Product(t, client, store, "Jarrón", "ceramica", 1500, time.Now())
	buyer, buyerProfile := dbtest.User(t, client, "ana", enums.RoleBuyer)
	svc, err := NewService(ServiceParams{DB: client, Rules: config.DefaultReviewConfig()})
	require.NoError(t, err)
	ctx := context.Background()

	added, err := svc.Add(ctx, dbtest.Actor(buyer, buyerProfile), product.ID, ReviewInput{Rating: 5})
	require.NoError(t, err)

	_, err = svc.Respond(ctx, dbtest.Actor(other, otherProfile), added.Review.ID, RespondInput{Response: "gracias"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, map[string]any{"redirect_to": "/mi_tienda/"}, pkgerrors.As(err).Details())

	first, err := svc.Respond(ctx, dbtest.Actor(seller, sellerProfile), added.Review.ID, RespondInput{Response: "gracias"})
	require.NoError(t, err)
	assert.Equal(t, "gracias", first.Review.ArtisanResponse)
	require.NotNil(t, first.Review.ResponseCreatedAt)

	second, err := svc.Respond(ctx, dbtest.Actor(seller, sellerProfile), added.Review.ID, RespondInput{Response: "¡mil gracias!"})
	require.NoError(t, err)
	assert.Equal(t, "¡mil gracias!", second.Review.ArtisanResponse)

	_, err = svc.Respond(ctx, dbtest.Actor(seller, sellerProfile), added.Review.ID, RespondInput{Response: " "})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestListForProductHidesInactive(t *testing.T) {
	client := dbtest.New(t)
	_, _, store := dbtest.Seller(t, client, "rosa", "Oaxaca")
	product := dbtest.Product(t, client, store, "Jarrón", "ceramica", 1500, time.Now())
	buyer, _ := dbtest.User(t, client, "ana", enums.RoleBuyer)
	base := time.Now().UTC().Add(-time.Hour)

	for i, active := range []bool{true, false, true} {
		require.NoError(t, client.DB().Create(&models.Review{
			ProductID: product.ID,
			AuthorID:  buyer.ID,
			Rating:    i + 1,
			Active:    active,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	svc, err := NewService(ServiceParams{DB: client})
	require.NoError(t, err)
	items, err := svc.ListForProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Rating)
	assert.Equal(t, 1, items[1].Rating)
}

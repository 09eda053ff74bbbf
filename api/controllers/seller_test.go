package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/artesanos-backend/internal/orders"
	"github.com/angelmondragon/artesanos-backend/internal/products"
	"github.com/angelmondragon/artesanos-backend/internal/reviews"
	"github.com/angelmondragon/artesanos-backend/internal/sales"
	"github.com/angelmondragon/artesanos-backend/internal/stores"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStores struct {
	createFn func(ctx context.Context, actor types.Actor, input stores.CreateStoreInput) (*stores.CreateStoreResult, error)
	mineFn   func(ctx context.Context, actor types.Actor) (*stores.StoreDTO, error)
}

func (s stubStores) Create(ctx context.Context, actor types.Actor, input stores.CreateStoreInput) (*stores.CreateStoreResult, error) {
	return s.createFn(ctx, actor, input)
}

func (s stubStores) Mine(ctx context.Context, actor types.Actor) (*stores.StoreDTO, error) {
	return s.mineFn(ctx, actor)
}

type stubProducts struct {
	createFn   func(ctx context.Context, actor types.Actor, input products.ProductInput) (*products.MutationResult, error)
	getOwnedFn func(ctx context.Context, actor types.Actor, productID uuid.UUID) (*products.ProductDTO, error)
	updateFn   func(ctx context.Context, actor types.Actor, productID uuid.UUID, input products.ProductInput) (*products.MutationResult, error)
	deleteFn   func(ctx context.Context, actor types.Actor, productID uuid.UUID) (*products.MutationResult, error)
}

func (s stubProducts) Create(ctx context.Context, actor types.Actor, input products.ProductInput) (*products.MutationResult, error) {
	return s.createFn(ctx, actor, input)
}

func (s stubProducts) GetOwned(ctx context.Context, actor types.Actor, productID uuid.UUID) (*products.ProductDTO, error) {
	return s.getOwnedFn(ctx, actor, productID)
}

func (s stubProducts) Update(ctx context.Context, actor types.Actor, productID uuid.UUID, input products.ProductInput) (*products.MutationResult, error) {
	return s.updateFn(ctx, actor, productID, input)
}

func (s stubProducts) Delete(ctx context.Context, actor types.Actor, productID uuid.UUID) (*products.MutationResult, error) {
	return s.deleteFn(ctx, actor, productID)
}

type stubSales struct {
	simulateFn func(ctx context.Context, actor types.Actor, productID uuid.UUID) (*sales.SaleResult, error)
}

func (s stubSales) Simulate(ctx context.Context, actor types.Actor, productID uuid.UUID) (*sales.SaleResult, error) {
	return s.simulateFn(ctx, actor, productID)
}

func (s stubSales) NotifyPending(ctx context.Context, batch int) (int, error) {
	return 0, nil
}

func TestStoreFormWithoutStore(t *testing.T) {
	svc := stubStores{
		mineFn: func(ctx context.Context, actor types.Actor) (*stores.StoreDTO, error) {
			return nil, stores.ErrStoreRequired("Aún no tienes una tienda. ¡Crea una ahora!")
		},
	}

	resp := httptest.NewRecorder()
	StoreForm(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodGet, "/crear_tienda/", nil, sellerActor(), nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"data":{"store":null}}`, resp.Body.String())
}

func TestStoreFormWithStoreRedirectsToDashboard(t *testing.T) {
	svc := stubStores{
		mineFn: func(ctx context.Context, actor types.Actor) (*stores.StoreDTO, error) {
			return &stores.StoreDTO{ID: uuid.New(), Name: "Taller Oaxaca"}, nil
		},
	}

	resp := httptest.NewRecorder()
	StoreForm(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodGet, "/crear_tienda/", nil, sellerActor(), nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, stores.DashboardPath, decodeAction(t, resp).Data.RedirectTo)
}

func TestStoreCreateStatusFollowsCreated(t *testing.T) {
	for _, created := range []bool{true, false} {
		svc := stubStores{
			createFn: func(ctx context.Context, actor types.Actor, input stores.CreateStoreInput) (*stores.CreateStoreResult, error) {
				return &stores.CreateStoreResult{Created: created, Store: &stores.StoreDTO{Name: input.Name}, RedirectTo: stores.DashboardPath}, nil
			},
		}
		body := map[string]string{"name": "Taller", "location": "Oaxaca"}
		resp := httptest.NewRecorder()
		StoreCreate(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/crear_tienda/", body, sellerActor(), nil))

		want := http.StatusOK
		if created {
			want = http.StatusCreated
		}
		assert.Equal(t, want, resp.Code)
	}
}

func TestStoreCreateValidatesFields(t *testing.T) {
	svc := stubStores{}
	resp := httptest.NewRecorder()
	StoreCreate(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/crear_tienda/", map[string]string{"name": "Taller"}, sellerActor(), nil))

	require.Equal(t, http.StatusBadRequest, resp.Code)
	env := decodeError(t, resp)
	details, ok := env.Error.Details.(map[string]any)
	require.True(t, ok, "details should be an object")
	assert.Contains(t, details, "location")
}

func TestProductFormRequiresStore(t *testing.T) {
	svc := stubStores{
		mineFn: func(ctx context.Context, actor types.Actor) (*stores.StoreDTO, error) {
			return nil, stores.ErrStoreRequired("Aún no tienes una tienda. ¡Crea una ahora!")
		},
	}

	resp := httptest.NewRecorder()
	ProductForm(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodGet, "/crear_producto/", nil, sellerActor(), nil))

	require.Equal(t, http.StatusNotFound, resp.Code)
	env := decodeError(t, resp)
	assert.Equal(t, string(pkgerrors.CodeStoreRequired), env.Error.Code)
	assert.Equal(t, products.StoreRequiredMessage, env.Error.Message)
	assert.Equal(t, map[string]any{"redirect_to": stores.CreateStorePath}, env.Error.Details)
}

func TestProductCreateRequiresPrice(t *testing.T) {
	svc := stubProducts{
		createFn: func(ctx context.Context, actor types.Actor, input products.ProductInput) (*products.MutationResult, error) {
			t.Fatal("service must not run without a price")
			return nil, nil
		},
	}

	body := map[string]any{"name": "Jarrón", "category": "ceramica"}
	resp := httptest.NewRecorder()
	ProductCreate(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/", body, sellerActor(), nil))

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, map[string]any{"price": "is required"}, decodeError(t, resp).Error.Details)
}

func TestProductUpdatePassesIDAndBody(t *testing.T) {
	productID := uuid.New()
	svc := stubProducts{
		updateFn: func(ctx context.Context, actor types.Actor, id uuid.UUID, input products.ProductInput) (*products.MutationResult, error) {
			assert.Equal(t, productID, id)
			require.NotNil(t, input.Price)
			assert.Equal(t, int64(250), *input.Price)
			return &products.MutationResult{Product: &products.ProductDTO{ID: id}, Message: "Producto actualizado correctamente.", RedirectTo: stores.DashboardPath}, nil
		},
	}

	body := map[string]any{"name": "Jarrón", "category": "ceramica", "price": 250}
	resp := httptest.NewRecorder()
	ProductUpdate(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/", body, sellerActor(), map[string]string{"productID": productID.String()}))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Producto actualizado correctamente.", decodeAction(t, resp).Data.Message)
}

func TestOwnedProductHidesOtherSellers(t *testing.T) {
	svc := stubProducts{
		getOwnedFn: func(ctx context.Context, actor types.Actor, id uuid.UUID) (*products.ProductDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "El producto no existe o ya no está disponible.").WithRedirect(stores.DashboardPath)
		},
	}

	resp := httptest.NewRecorder()
	OwnedProduct(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodGet, "/", nil, sellerActor(), map[string]string{"productID": uuid.NewString()}))

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, stores.DashboardPath, redirectDetail(t, decodeError(t, resp)))
}

func TestProductDeleteRedirectsToDashboard(t *testing.T) {
	svc := stubProducts{
		deleteFn: func(ctx context.Context, actor types.Actor, id uuid.UUID) (*products.MutationResult, error) {
			return &products.MutationResult{Message: "Producto eliminado correctamente.", RedirectTo: stores.DashboardPath}, nil
		},
	}

	resp := httptest.NewRecorder()
	ProductDelete(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/", nil, sellerActor(), map[string]string{"productID": uuid.NewString()}))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, stores.DashboardPath, decodeAction(t, resp).Data.RedirectTo)
}

func TestSimulateSaleCreated(t *testing.T) {
	svc := stubSales{
		simulateFn: func(ctx context.Context, actor types.Actor, id uuid.UUID) (*sales.SaleResult, error) {
			return &sales.SaleResult{Sale: &sales.SaleDTO{}, Message: "Venta simulada.", RedirectTo: stores.DashboardPath}, nil
		},
	}

	resp := httptest.NewRecorder()
	SimulateSale(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/", nil, sellerActor(), map[string]string{"productID": uuid.NewString()}))

	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestOrderDecisionRejectsUnknownDecision(t *testing.T) {
	svc := stubOrders{}
	resp := httptest.NewRecorder()
	OrderDecision(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/", map[string]string{"decision": "maybe"}, sellerActor(), map[string]string{"orderID": uuid.NewString()}))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestOrderDecisionComplete(t *testing.T) {
	orderID := uuid.New()
	svc := stubOrders{
		decideFn: func(ctx context.Context, actor types.Actor, id uuid.UUID, input orders.DecisionInput) (*orders.OrderResult, error) {
			assert.Equal(t, orderID, id)
			assert.Equal(t, enums.OrderDecisionComplete, input.Decision)
			return &orders.OrderResult{Order: &orders.OrderDTO{ID: id, Status: enums.OrderStatusCompleted}}, nil
		},
	}

	resp := httptest.NewRecorder()
	OrderDecision(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/", map[string]string{"decision": "complete"}, sellerActor(), map[string]string{"orderID": orderID.String()}))

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRespondReviewRequiresText(t *testing.T) {
	svc := stubReviews{}
	resp := httptest.NewRecorder()
	RespondReview(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/", map[string]string{"response": ""}, sellerActor(), map[string]string{"reviewID": uuid.NewString()}))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRespondReviewReturnsUpdatedReview(t *testing.T) {
	reviewID := uuid.New()
	svc := stubReviews{
		respondFn: func(ctx context.Context, actor types.Actor, id uuid.UUID, input reviews.RespondInput) (*reviews.ReviewResult, error) {
			assert.Equal(t, reviewID, id)
			assert.Equal(t, "Gracias por tu compra", input.Response)
			return &reviews.ReviewResult{
				Review:     &reviews.ReviewDTO{ID: id, ArtisanResponse: input.Response},
				Message:    "Respuesta publicada.",
				RedirectTo: stores.DashboardPath,
			}, nil
		},
	}

	resp := httptest.NewRecorder()
	RespondReview(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/", map[string]string{"response": "Gracias por tu compra"}, sellerActor(), map[string]string{"reviewID": reviewID.String()}))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, stores.DashboardPath, decodeAction(t, resp).Data.RedirectTo)
}

func TestRespondReviewForeignReviewIsNotFound(t *testing.T) {
	svc := stubReviews{
		respondFn: func(ctx context.Context, actor types.Actor, id uuid.UUID, input reviews.RespondInput) (*reviews.ReviewResult, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "La reseña no existe.").WithRedirect(stores.DashboardPath)
		},
	}

	resp := httptest.NewRecorder()
	RespondReview(svc, nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/", map[string]string{"response": "hola"}, sellerActor(), map[string]string{"reviewID": uuid.NewString()}))

	assert.Equal(t, http.StatusNotFound, resp.Code)
	env := decodeError(t, resp)
	assert.Equal(t, string(pkgerrors.CodeNotFound), env.Error.Code)
	assert.Equal(t, stores.DashboardPath, redirectDetail(t, env))
}

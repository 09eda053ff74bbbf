package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/artesanos-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"github.com/google/uuid"
)

type stubCatalog struct {
	listFn   func(ctx context.Context, viewer types.Actor, filters catalog.Filters, rawPage string) (*catalog.Page, error)
	detailFn func(ctx context.Context, viewer types.Actor, productID uuid.UUID) (*catalog.ProductDetail, error)
}

func (s stubCatalog) List(ctx context.Context, viewer types.Actor, filters catalog.Filters, rawPage string) (*catalog.Page, error) {
	return s.listFn(ctx, viewer, filters, rawPage)
}

func (s stubCatalog) Detail(ctx context.Context, viewer types.Actor, productID uuid.UUID) (*catalog.ProductDetail, error) {
	return s.detailFn(ctx, viewer, productID)
}

func TestCatalogPassesFiltersAndPage(t *testing.T) {
	var gotPage string
	var gotFilters catalog.Filters
	svc := stubCatalog{
		listFn: func(ctx context.Context, viewer types.Actor, filters catalog.Filters, rawPage string) (*catalog.Page, error) {
			gotFilters = filters
			gotPage = rawPage
			return &catalog.Page{}, nil
		},
	}

	req := newRequest(t, http.MethodGet, "/compradores/?category=textil&page=3", nil, types.Actor{}, nil)
	resp := httptest.NewRecorder()
	Catalog(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotPage != "3" {
		t.Fatalf("expected raw page 3, got %q", gotPage)
	}
	if gotFilters.Category != "textil" {
		t.Fatalf("expected category filter, got %+v", gotFilters)
	}
}

func TestProductDetailUnknownIDIsNotFound(t *testing.T) {
	svc := stubCatalog{
		detailFn: func(ctx context.Context, viewer types.Actor, productID uuid.UUID) (*catalog.ProductDetail, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		},
	}

	req := newRequest(t, http.MethodGet, "/compradores/producto/x/", nil, types.Actor{}, map[string]string{"productID": uuid.NewString()})
	resp := httptest.NewRecorder()
	ProductDetail(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if env := decodeError(t, resp); env.Error.Code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("unexpected code %s", env.Error.Code)
	}
}

func TestProductDetailMalformedIDIsNotFound(t *testing.T) {
	svc := stubCatalog{
		detailFn: func(ctx context.Context, viewer types.Actor, productID uuid.UUID) (*catalog.ProductDetail, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	req := newRequest(t, http.MethodGet, "/", nil, types.Actor{}, map[string]string{"productID": "abc"})
	resp := httptest.NewRecorder()
	ProductDetail(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

package controllers

import (
	"net/http"

	"github.com/angelmondragon/artesanos-backend/api/responses"
	"github.com/angelmondragon/artesanos-backend/api/validators"
	"github.com/angelmondragon/artesanos-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/logger"
)

// Catalog lists products with the query string filters. Bad prices are ignored, bad pages clamp.
func Catalog(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		query := r.URL.Query()
		page, err := svc.List(r.Context(), actorFrom(r), catalog.ParseFilters(query), query.Get("page"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		productID, err := validators.URLParamUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.Detail(r.Context(), actorFrom(r), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

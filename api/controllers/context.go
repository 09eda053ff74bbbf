package controllers

import (
	"net/http"

	"github.com/angelmondragon/artesanos-backend/api/middleware"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
)

// actorFrom returns the caller or the zero Actor for anonymous requests.
func actorFrom(r *http.Request) types.Actor {
	actor, _ := middleware.ActorFromContext(r.Context())
	return actor
}

package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/services"
)

type contextKey string

const ActorKey contextKey = "actor"

// GetActor extracts the resolved actor from the request context.
// The zero Actor is returned when no actor was resolved.
func GetActor(r *http.Request) services.Actor {
	if val, ok := r.Context().Value(ActorKey).(services.Actor); ok {
		return val
	}
	return services.Actor{}
}

// ActorMiddleware reads the "actor_id" cookie, resolves the user's role from
// the user_roles collection and stores the actor in the request context so
// handlers can run permission checks.
func ActorMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var actor services.Actor

		cookie, err := e.Request.Cookie("actor_id")
		if err == nil && cookie.Value != "" {
			roles, err := app.FindRecordsByFilter(
				"user_roles",
				"user_id = {:user}",
				"", 1, 0,
				map[string]any{"user": cookie.Value},
			)
			if err == nil && len(roles) > 0 {
				actor = services.Actor{
					ID:   cookie.Value,
					Role: services.Role(roles[0].GetString("role")),
				}
			} else {
				log.Printf("middleware: no role record for user %s, clearing cookie", cookie.Value)
				http.SetCookie(e.Response, &http.Cookie{
					Name:   "actor_id",
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
			}
		}

		ctx := context.WithValue(e.Request.Context(), ActorKey, actor)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}

// RequireActor rejects the request with 401 when no actor was resolved.
// It wraps route handlers that need an authenticated user.
func RequireActor(next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if GetActor(e.Request).ID == "" {
			return e.JSON(http.StatusUnauthorized, map[string]string{"error": "Not signed in"})
		}
		return next(e)
	}
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// withActor stores an actor in the request context, bypassing the cookie
// middleware.
func withActor(req *http.Request, actor services.Actor) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), ActorKey, actor))
}

var (
	testEstimator = services.Actor{ID: "est-1", Role: services.RoleEstimator}
	testAdmin     = services.Actor{ID: "adm-1", Role: services.RoleAdmin}
)

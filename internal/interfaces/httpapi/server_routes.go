package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/courts", handler.ListCourts)
	mux.HandleFunc("GET /v1/courts/{courtID}", handler.GetCourt)
	mux.HandleFunc("GET /v1/runs", handler.BrowseRuns)
	mux.HandleFunc("GET /v1/runs/{runID}", handler.GetRun)
	mux.HandleFunc("GET /v1/runs/{runID}/roster", handler.GetRoster)
	mux.HandleFunc("GET /v1/runs/{runID}/invited", handler.CheckInvited)
	mux.HandleFunc("GET /v1/products", handler.ListProducts)
	mux.HandleFunc("GET /v1/products/{productID}", handler.GetProduct)
	mux.HandleFunc("GET /v1/feed", handler.GetFeed)
	mux.HandleFunc("GET /v1/profiles/{profileID}", handler.GetProfile)
	mux.HandleFunc("GET /v1/profiles/{profileID}/posts", handler.GetProfilePosts)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedRunRoutes(mux, handler, verifier)
	registerAuthorizedRosterRoutes(mux, handler, verifier)
	registerAuthorizedSocialRoutes(mux, handler, verifier)
	registerAuthorizedAccountRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/complete-runs", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CompletePastRuns)))
}

func registerAuthorizedRunRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/runs", RequireAuth(verifier, http.HandlerFunc(handler.CreateRun)))
	mux.Handle("PUT /v1/runs/{runID}/schedule", RequireAuth(verifier, http.HandlerFunc(handler.RescheduleRun)))
	mux.Handle("POST /v1/runs/{runID}/cancel", RequireAuth(verifier, http.HandlerFunc(handler.CancelRun)))
	mux.Handle("POST /v1/courts", RequireAuth(verifier, http.HandlerFunc(handler.CreateCourt)))
}

func registerAuthorizedRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/runs/{runID}/invites", RequireAuth(verifier, http.HandlerFunc(handler.InviteToRun)))
	mux.Handle("PUT /v1/joined-runs/{joinedRunID}/status", RequireAuth(verifier, http.HandlerFunc(handler.UpdateInvitationStatus)))
	mux.Handle("PUT /v1/joined-runs/{joinedRunID}/presence", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePresence)))
	mux.Handle("DELETE /v1/runs/{runID}/roster/{profileID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveFromRoster)))
}

func registerAuthorizedSocialRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/posts", RequireAuth(verifier, http.HandlerFunc(handler.CreatePost)))
	mux.Handle("GET /v1/notifications", RequireAuth(verifier, http.HandlerFunc(handler.ListMyNotifications)))
	mux.Handle("PUT /v1/notifications/{notificationID}/read", RequireAuth(verifier, http.HandlerFunc(handler.MarkNotificationRead)))
	mux.Handle("GET /v1/notifications/unread-count", RequireAuth(verifier, http.HandlerFunc(handler.UnreadNotificationCount)))
}

func registerAuthorizedAccountRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/profiles/me", RequireAuth(verifier, http.HandlerFunc(handler.SyncMyProfile)))
	mux.Handle("GET /v1/orders/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyOrders)))
}

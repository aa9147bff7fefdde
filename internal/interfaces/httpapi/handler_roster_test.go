package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/hooprun/internal/domain/notification"
	"github.com/courtside/hooprun/internal/domain/user"
	"github.com/courtside/hooprun/internal/infrastructure/repository/memory"
	"github.com/courtside/hooprun/internal/platform/id"
	"github.com/courtside/hooprun/internal/platform/logging"
	"github.com/courtside/hooprun/internal/usecase"
)

type staticVerifier struct {
	principals map[string]user.Principal
}

func (v *staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := v.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}

	return p, nil
}

type nopNotifier struct{}

func (nopNotifier) Dispatch(context.Context, notification.Notification) {}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	now := time.Now()
	courts := memory.NewCourtRepository(memory.SeedCourts())
	profiles := memory.NewProfileRepository(memory.SeedProfiles())
	runs := memory.NewRunRepository(memory.SeedRuns(now))
	orders := memory.NewOrderRepository(nil)
	joinedRuns := memory.NewJoinedRunRepository(orders, nil)
	posts := memory.NewPostRepository(nil)
	products := memory.NewProductRepository(memory.SeedProducts())
	notifications := memory.NewNotificationRepository()

	logger := logging.NewNop()
	idGen := id.NewRandomGenerator()
	notifier := nopNotifier{}

	handler := NewHandler(
		usecase.NewRunService(runs, courts, profiles, joinedRuns, notifier, idGen, logger),
		usecase.NewRosterService(joinedRuns, runs, profiles, orders, notifier, idGen, logger),
		usecase.NewCourtService(courts, idGen, logger),
		usecase.NewProfileService(profiles, logger),
		usecase.NewProductService(products, orders, logger),
		usecase.NewPostService(posts, profiles, idGen, logger),
		usecase.NewNotificationService(notifications, logger),
		logger,
	)

	verifier := &staticVerifier{principals: map[string]user.Principal{
		"token-jordan":  {ProfileID: memory.ProfileIDJordan, Email: "jordan@example.com"},
		"token-aaliyah": {ProfileID: memory.ProfileIDAaliyah, Email: "aaliyah@example.com"},
		"token-marcus":  {ProfileID: memory.ProfileIDMarcus, Email: "marcus@example.com"},
	}}

	return NewRouter(handler, verifier, logger, nil, "job-secret")
}

func doJSON(t *testing.T, router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope.Data
}

func TestRouter_InviteAndStatusLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/runs/run-rucker-sat/invites", "token-jordan",
		`{"profile_id":"`+memory.ProfileIDMarcus+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	invite := decodeData(t, rec)
	assert.Equal(t, "Undecided", invite["status"])
	assert.Equal(t, memory.ProfileIDMarcus, invite["profile_id"])
	joinedRunID, ok := invite["id"].(string)
	require.True(t, ok)

	// Only the invitee may answer the invite; anyone else misses the record.
	rec = doJSON(t, router, http.MethodPut, "/v1/joined-runs/"+joinedRunID+"/status", "token-jordan",
		`{"status":"Accepted"}`)
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPut, "/v1/joined-runs/"+joinedRunID+"/status", "token-marcus",
		`{"status":"Accepted"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Accepted", decodeData(t, rec)["status"])

	rec = doJSON(t, router, http.MethodGet, "/v1/runs/run-rucker-sat/roster", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	roster := decodeData(t, rec)
	counts, ok := roster["counts"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), counts["accepted"])
}

func TestRouter_InviteRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/runs/run-rucker-sat/invites", "",
		`{"profile_id":"`+memory.ProfileIDMarcus+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/v1/runs/run-rucker-sat/invites", "token-bogus",
		`{"profile_id":"`+memory.ProfileIDMarcus+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RejectsLowercaseStatus(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/runs/run-rucker-sat/invites", "token-jordan",
		`{"profile_id":"`+memory.ProfileIDMarcus+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	joinedRunID := decodeData(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPut, "/v1/joined-runs/"+joinedRunID+"/status", "token-jordan",
		`{"status":"accepted"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestRouter_DuplicateInviteConflicts(t *testing.T) {
	router := newTestRouter(t)

	body := `{"profile_id":"` + memory.ProfileIDMarcus + `"}`
	rec := doJSON(t, router, http.MethodPost, "/v1/runs/run-rucker-sat/invites", "token-jordan", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/v1/runs/run-rucker-sat/invites", "token-jordan", body)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestRouter_InternalJobTokenGuardsSweep(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/complete-runs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/complete-runs", nil)
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

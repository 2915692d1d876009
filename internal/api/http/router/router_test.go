package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/idwallet-server/internal/api/http/context"
	"github.com/dtroode/idwallet-server/internal/metrics"
	"github.com/dtroode/idwallet-server/internal/mocks"
	"github.com/dtroode/idwallet-server/internal/model"
	"github.com/dtroode/idwallet-server/internal/testutil"
)

type routerDeps struct {
	workflow    *mocks.WorkflowService
	credentials *mocks.CredentialService
	tokens      *mocks.TokenService
	pinger      *mocks.Pinger
}

func newTestRouter(t *testing.T) (http.Handler, routerDeps) {
	t.Helper()

	deps := routerDeps{
		workflow:    mocks.NewWorkflowService(t),
		credentials: mocks.NewCredentialService(t),
		tokens:      mocks.NewTokenService(t),
		pinger:      mocks.NewPinger(t),
	}
	reg := prometheus.NewRegistry()

	r := New(
		deps.workflow,
		deps.credentials,
		deps.tokens,
		httpctx.NewManager(),
		deps.pinger,
		reg,
		metrics.New(reg),
		0,
		testutil.MakeNoopLogger(),
	)
	return r.Register(), deps
}

func TestRouter_Health(t *testing.T) {
	h, deps := newTestRouter(t)
	deps.pinger.On("Ping", mock.Anything).Return(nil).Once()
	deps.pinger.On("Ping", mock.Anything).Return(errors.New("db down")).Once()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPingers(t *testing.T) {
	ctx := context.Background()

	t.Run("all healthy", func(t *testing.T) {
		var calls int
		ok := PingerFunc(func(context.Context) error { calls++; return nil })

		require.NoError(t, Pingers{ok, ok}.Ping(ctx))
		assert.Equal(t, 2, calls)
	})

	t.Run("first failure wins", func(t *testing.T) {
		db := mocks.NewPinger(t)
		db.On("Ping", mock.Anything).Return(nil).Once()
		cacheDown := errors.New("redis down")
		var after bool

		err := Pingers{
			db,
			PingerFunc(func(context.Context) error { return cacheDown }),
			PingerFunc(func(context.Context) error { after = true; return nil }),
		}.Ping(ctx)

		require.ErrorIs(t, err, cacheDown)
		assert.False(t, after)
	})
}

func TestRouter_HealthReportsCacheFailure(t *testing.T) {
	db := mocks.NewPinger(t)
	db.On("Ping", mock.Anything).Return(nil).Once()
	reg := prometheus.NewRegistry()

	h := New(
		mocks.NewWorkflowService(t),
		mocks.NewCredentialService(t),
		mocks.NewTokenService(t),
		httpctx.NewManager(),
		Pingers{db, PingerFunc(func(context.Context) error { return errors.New("redis down") })},
		reg,
		metrics.New(reg),
		0,
		testutil.MakeNoopLogger(),
	).Register()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/carnets/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "idwallet_http_request_duration_seconds")
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	h, _ := newTestRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/perfil"},
		{http.MethodGet, "/auth/verify"},
		{http.MethodPost, "/validacion/send-code"},
		{http.MethodPost, "/validacion/verify-code"},
		{http.MethodGet, "/carnets"},
		{http.MethodPost, "/carnets/agregar-estudiante"},
		{http.MethodPost, "/carnets/agregar-empleado"},
		{http.MethodGet, "/carnets/1"},
		{http.MethodDelete, "/carnets/1"},
		{http.MethodGet, "/carnets/1/foto"},
		{http.MethodPut, "/carnets/1/foto"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(rt.method, rt.path, nil))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRouter_AuthenticatedProfile(t *testing.T) {
	h, deps := newTestRouter(t)
	deps.tokens.On("GetClaims", mock.Anything, "good").
		Return(model.Claims{AccountID: 42, Email: "a@b.com", Role: model.RoleStudent}, nil).Once()
	deps.workflow.On("Profile", mock.Anything, int64(42)).
		Return(model.Account{ID: 42, Email: "a@b.com", Role: model.RoleStudent, EmailVerified: true}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/auth/perfil", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(42), body.Data.ID)
}

func TestRouter_UnknownRoute(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

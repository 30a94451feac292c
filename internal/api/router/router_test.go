package router_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventra/internal/api/admin"
	"eventra/internal/api/auth"
	"eventra/internal/api/router"
	"eventra/internal/api/view"
	"eventra/internal/dispatch"
	"eventra/internal/guard"
	"eventra/internal/pkg/cache"
	"eventra/internal/pkg/logger"
	"eventra/internal/pkg/metrics"
	"eventra/internal/pkg/token"
	"eventra/internal/repository/activityrepo"
	"eventra/internal/repository/identityrepo"
	"eventra/internal/service/authservice"
	"eventra/internal/session"
)

type app struct {
	handler http.Handler
	storage cache.Client
	store   *session.Store
}

// newApp monta a aplicação completa como o main faz, com armazenamento em memória.
func newApp(t *testing.T) *app {
	t.Helper()

	log := logger.NewLoggerWithWriter("debug", io.Discard)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	repo := identityrepo.NewIdentityRepository(log)
	require.NoError(t, repo.Seed(identityrepo.DemoDirectory()...))

	storage := cache.NewMemoryClient()
	store := session.NewStore(storage, log)

	svc, err := authservice.NewService(repo, store, activityrepo.NewMemoryRepository(0),
		token.NewService("test-secret", time.Minute), "password123", m, log)
	require.NoError(t, err)

	table := guard.DefaultTable()
	handler := router.NewRouter(router.Options{
		Auth:            auth.NewHandler(svc, log),
		Admin:           admin.NewHandler(svc, log),
		View:            view.NewHandler(dispatch.New(table, store, m, log), log),
		Guard:           guard.New(table, store, m, log),
		Session:         store,
		Gatherer:        reg,
		Logger:          log,
		RateLimitCache:  cache.NewMemoryClient(),
		RateLimitMax:    100,
		RateLimitPeriod: time.Minute,
	})

	return &app{handler: handler, storage: storage, store: store}
}

func (a *app) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func (a *app) login(t *testing.T, email, role string) {
	t.Helper()
	rec := a.do(http.MethodPost, "/api/login", `{"email":"`+email+`","password":"password123","role":"`+role+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestPing(t *testing.T) {
	rec := newApp(t).do(http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestViceChancellorLoginThenDashboard(t *testing.T) {
	a := newApp(t)

	a.login(t, "vicechancellor@university.edu", "vice-chancellor")

	rec := a.do(http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp view.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, guard.ViewViceChancellorDashboard, resp.View)
}

func TestWrongSecretKeepsSessionEmpty(t *testing.T) {
	a := newApp(t)

	rec := a.do(http.MethodPost, "/api/login", `{"email":"jane@university.edu","password":"wrong-secret","role":"student"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), authservice.MsgInvalidCredentials)
	assert.Nil(t, a.store.Current())
}

func TestLogoutRemovesPersistedSession(t *testing.T) {
	a := newApp(t)
	a.login(t, "warden@university.edu", "warden")

	_, err := a.storage.Get(context.Background(), session.StorageKey)
	require.NoError(t, err)

	rec := a.do(http.MethodPost, "/api/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Nil(t, a.store.Current())
	_, err = a.storage.Get(context.Background(), session.StorageKey)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	// Um novo Store sobre o mesmo armazenamento não encontra sessão.
	restored := session.NewStore(a.storage, logger.NewLoggerWithWriter("debug", io.Discard))
	restored.Restore(context.Background())
	assert.Nil(t, restored.Current())

	redirect := a.do(http.MethodGet, "/dashboards/warden", "")
	assert.Equal(t, http.StatusFound, redirect.Code)
	assert.Equal(t, "/login", redirect.Header().Get("Location"))
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	a := newApp(t)

	rec := a.do(http.MethodPost, "/api/register",
		`{"name":"Jane","email":"newfaculty@university.edu","password":"secret1","confirmPassword":"secret1","role":"faculty","acceptTerms":true}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Nil(t, a.store.Current())

	a.login(t, "newfaculty@university.edu", "faculty")
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/booking", "").Code)
}

func TestRoleDeniedRedirectsToUnauthorized(t *testing.T) {
	a := newApp(t)
	a.login(t, "jane@university.edu", "student")

	rec := a.do(http.MethodGet, "/admin/dashboard", "")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/unauthorized", rec.Header().Get("Location"))
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/unauthorized", "").Code)
}

func TestAdminAPI(t *testing.T) {
	a := newApp(t)

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/admin/users", "").Code)

	a.login(t, "jane@university.edu", "student")
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/admin/users", "").Code)

	a.login(t, "superadmin@university.edu", "super-admin")
	provision := a.do(http.MethodPost, "/api/admin/users", `{"name":"Media Crew","email":"media@university.edu","role":"service-provider","serviceType":"Media"}`)
	require.Equal(t, http.StatusCreated, provision.Code, provision.Body.String())

	activity := a.do(http.MethodGet, "/api/admin/activity?limit=1", "")
	require.Equal(t, http.StatusOK, activity.Code)
	assert.Contains(t, activity.Body.String(), "provisioned")
}

func TestMetricsEndpoint(t *testing.T) {
	a := newApp(t)
	a.do(http.MethodGet, "/venues", "")

	rec := a.do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `eventra_guard_decisions_total{outcome="redirect_login"} 1`)
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	rec := newApp(t).do(http.MethodGet, "/no/such/page", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), guard.ViewNotFound)
}

package view_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventra/internal/api/view"
	"eventra/internal/dispatch"
	"eventra/internal/domain"
	"eventra/internal/guard"
	"eventra/internal/pkg/logger"
	"eventra/internal/pkg/metrics"
	"eventra/internal/pkg/middleware"
)

type fakeSession struct {
	identity *domain.Identity
}

func (f *fakeSession) Current() *domain.Identity { return f.identity }

func newServer(session *fakeSession) http.Handler {
	log := logger.NewLoggerWithWriter("debug", io.Discard)
	m := metrics.NewNop()
	table := guard.DefaultTable()

	g := guard.New(table, session, m, log)
	d := dispatch.New(table, session, m, log)
	return middleware.NewGuardMiddleware(g)(view.NewHandler(d, log))
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, view.Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp view.Response
	if rec.Code != http.StatusFound {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	}
	return rec, resp
}

func TestView_DashboardDispatchesByRole(t *testing.T) {
	session := &fakeSession{identity: &domain.Identity{
		ID: "5", Name: "Vice Chancellor", Email: "vicechancellor@university.edu", Role: domain.RoleViceChancellor,
	}}

	rec, resp := get(t, newServer(session), "/dashboard")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, guard.ViewViceChancellorDashboard, resp.View)
	assert.Equal(t, "/dashboard", resp.Path)
	assert.Equal(t, "Vice Chancellor", resp.RoleLabel)
	assert.True(t, resp.Authenticated)
}

func TestView_DashboardStudentGetsGenericView(t *testing.T) {
	session := &fakeSession{identity: &domain.Identity{ID: "1", Email: "john@university.edu", Role: domain.RoleStudent}}

	_, resp := get(t, newServer(session), "/dashboard")

	assert.Equal(t, guard.ViewUserDashboard, resp.View)
}

func TestView_PublicPageWithoutSession(t *testing.T) {
	rec, resp := get(t, newServer(&fakeSession{}), "/about")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, guard.ViewAbout, resp.View)
	assert.False(t, resp.Authenticated)
	assert.Nil(t, resp.User)
}

func TestView_UnauthorizedAndNotFound(t *testing.T) {
	h := newServer(&fakeSession{})

	rec, resp := get(t, h, "/unauthorized")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, guard.ViewUnauthorized, resp.View)

	rec, resp = get(t, h, "/missing/page")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, guard.ViewNotFound, resp.View)
}

func TestView_ProtectedWithoutSessionRedirects(t *testing.T) {
	rec, _ := get(t, newServer(&fakeSession{}), "/dashboard")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestView_Fail_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(&fakeSession{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/about", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

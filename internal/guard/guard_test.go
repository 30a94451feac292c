package guard_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventra/internal/domain"
	"eventra/internal/guard"
	"eventra/internal/pkg/logger"
	"eventra/internal/pkg/metrics"
)

// fakeSession devolve sempre a identidade configurada.
type fakeSession struct {
	identity *domain.Identity
}

func (f *fakeSession) Current() *domain.Identity {
	if f.identity == nil {
		return nil
	}
	cp := *f.identity
	return &cp
}

func newGuard(session guard.SessionReader) *guard.Guard {
	return guard.New(guard.DefaultTable(), session, metrics.NewNop(), logger.NewLoggerWithWriter("debug", io.Discard))
}

func as(role domain.Role) *fakeSession {
	return &fakeSession{identity: &domain.Identity{ID: "x", Name: "X", Email: "x@university.edu", Role: role}}
}

func TestEvaluate_Unauthenticated_AlwaysRedirectsToLogin(t *testing.T) {
	g := newGuard(&fakeSession{})

	for _, decl := range g.Table().Declarations() {
		if decl.Access != guard.AccessProtected {
			continue
		}
		decision := g.Evaluate(decl.Path)
		assert.Equal(t, guard.OutcomeRedirectLogin, decision.Outcome, decl.Path)
		assert.Equal(t, guard.PathLogin, decision.Location, decl.Path)
		assert.Nil(t, decision.Identity)
	}
}

func TestEvaluate_RoleMatrix(t *testing.T) {
	table := guard.DefaultTable()

	for _, role := range domain.AllRoles {
		g := newGuard(as(role))
		for _, decl := range table.Declarations() {
			if decl.Access != guard.AccessProtected {
				continue
			}
			decision := g.Evaluate(decl.Path)
			if decl.Permits(role) {
				assert.Equal(t, guard.OutcomeRender, decision.Outcome, "%s -> %s", role, decl.Path)
				assert.Equal(t, decl.View, decision.Declaration.View)
			} else {
				assert.Equal(t, guard.OutcomeRedirectUnauthorized, decision.Outcome, "%s -> %s", role, decl.Path)
				assert.Equal(t, guard.PathUnauthorized, decision.Location)
			}
		}
	}
}

func TestEvaluate_RouteSurface(t *testing.T) {
	tests := []struct {
		path    string
		role    domain.Role
		outcome guard.Outcome
	}{
		{"/dashboard", domain.RoleStudent, guard.OutcomeRender},
		{"/dashboard", domain.RoleAdmin, guard.OutcomeRedirectUnauthorized},
		{"/dashboard", domain.RoleSuperAdmin, guard.OutcomeRedirectUnauthorized},
		{"/dashboards/vice-chancellor", domain.RoleViceChancellor, guard.OutcomeRender},
		{"/dashboards/vice-chancellor", domain.RoleWarden, guard.OutcomeRedirectUnauthorized},
		{"/dashboards/service-provider", domain.RoleServiceProvider, guard.OutcomeRender},
		{"/dashboard/service-provider", domain.RoleServiceProvider, guard.OutcomeRender},
		{"/dashboard/service-provider", domain.RoleStudent, guard.OutcomeRedirectUnauthorized},
		{"/venues", domain.RoleSuperAdmin, guard.OutcomeRender},
		{"/venues", domain.RoleWarden, guard.OutcomeRedirectUnauthorized},
		{"/booking", domain.RoleFaculty, guard.OutcomeRender},
		{"/event-planning", domain.RoleAdmin, guard.OutcomeRedirectUnauthorized},
		{"/admin/reports", domain.RoleAdmin, guard.OutcomeRender},
		{"/admin/tools", domain.RoleStudentUnion, guard.OutcomeRedirectUnauthorized},
		{"/profile", domain.RoleAdministration, guard.OutcomeRender},
		{"/profile/", domain.RoleAdministration, guard.OutcomeRender},
		{"/dashboard/", domain.RoleWarden, guard.OutcomeRender},
		{"/admin/tools/", domain.RoleStudent, guard.OutcomeRedirectUnauthorized},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+tt.path, func(t *testing.T) {
			decision := newGuard(as(tt.role)).Evaluate(tt.path)
			assert.Equal(t, tt.outcome, decision.Outcome)
		})
	}
}

func TestEvaluate_PublicAndTerminalViews(t *testing.T) {
	for _, session := range []*fakeSession{{}, as(domain.RoleWarden)} {
		g := newGuard(session)

		for _, path := range []string{"/", "/login", "/register", "/password-recovery", "/faqs", "/privacy-policy"} {
			assert.Equal(t, guard.OutcomeRender, g.Evaluate(path).Outcome, path)
		}

		unauthorized := g.Evaluate("/unauthorized")
		assert.Equal(t, guard.OutcomeRender, unauthorized.Outcome)
		assert.Equal(t, guard.ViewUnauthorized, unauthorized.Declaration.View)

		missing := g.Evaluate("/does-not-exist")
		assert.Equal(t, guard.OutcomeNotFound, missing.Outcome)
		assert.Equal(t, guard.ViewNotFound, missing.Declaration.View)
	}
}

func TestEvaluate_RereadsSessionEveryNavigation(t *testing.T) {
	session := &fakeSession{}
	g := newGuard(session)

	assert.Equal(t, guard.OutcomeRedirectLogin, g.Evaluate("/booking").Outcome)

	session.identity = &domain.Identity{ID: "1", Email: "jane@university.edu", Role: domain.RoleStudent}
	assert.Equal(t, guard.OutcomeRender, g.Evaluate("/booking").Outcome)

	session.identity = &domain.Identity{ID: "3", Email: "admin@university.edu", Role: domain.RoleAdmin}
	assert.Equal(t, guard.OutcomeRedirectUnauthorized, g.Evaluate("/booking").Outcome)

	session.identity = nil
	assert.Equal(t, guard.OutcomeRedirectLogin, g.Evaluate("/booking").Outcome)
}

func TestDecide_AuthenticationPrecedesRoleCheck(t *testing.T) {
	decl := guard.Declaration{Path: "/x", View: "x", Access: guard.AccessProtected, Roles: []domain.Role{domain.RoleWarden}}

	decision := guard.Decide(decl, nil)

	assert.Equal(t, guard.OutcomeRedirectLogin, decision.Outcome)
}

func TestNewTable_Fail_ProtectedWithoutRoles(t *testing.T) {
	_, err := guard.NewTable(guard.Declaration{Path: "/secret", View: "secret", Access: guard.AccessProtected})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no permitted roles")
}

func TestNewTable_Fail_UnknownRole(t *testing.T) {
	_, err := guard.NewTable(guard.Declaration{
		Path: "/secret", View: "secret", Access: guard.AccessProtected, Roles: []domain.Role{"janitor"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestNewTable_Fail_DuplicatePath(t *testing.T) {
	_, err := guard.NewTable(
		guard.Declaration{Path: "/about", View: "about", Access: guard.AccessPublic},
		guard.Declaration{Path: "/about", View: "about-2", Access: guard.AccessPublic},
	)

	require.Error(t, err)
}

func TestDefaultTable_ProfileAllowsEveryRole(t *testing.T) {
	decl, ok := guard.DefaultTable().Lookup("/profile")

	require.True(t, ok)
	for _, role := range domain.AllRoles {
		assert.True(t, decl.Permits(role), role)
	}
}

func TestLookup_TrailingSlash(t *testing.T) {
	table := guard.DefaultTable()

	decl, ok := table.Lookup("/dashboard/")
	require.True(t, ok)
	assert.Equal(t, guard.ViewUserDashboard, decl.View)

	home, ok := table.Lookup("/")
	require.True(t, ok)
	assert.Equal(t, guard.ViewHome, home.View)

	_, ok = table.Lookup("/dashboard//")
	assert.False(t, ok)
}

package guard

import (
	"fmt"
	"strings"

	"eventra/internal/domain"
	"eventra/internal/roles"
)

// Access classifica como uma view é avaliada pelo guard.
type Access int

const (
	// AccessPublic: renderiza sem sessão.
	AccessPublic Access = iota
	// AccessProtected: exige sessão e um papel da lista.
	AccessProtected
	// AccessTerminal: views de erro (unauthorized, not found).
	AccessTerminal
)

// Identificadores das views.
const (
	ViewHome                     = "home"
	ViewLogin                    = "login"
	ViewRegister                 = "register"
	ViewPasswordRecovery         = "password-recovery"
	ViewFeatures                 = "features"
	ViewAbout                    = "about"
	ViewContact                  = "contact"
	ViewFAQs                     = "faqs"
	ViewTerms                    = "terms"
	ViewPrivacyPolicy            = "privacy-policy"
	ViewUserDashboard            = "user-dashboard"
	ViewViceChancellorDashboard  = "vice-chancellor-dashboard"
	ViewServiceProviderDashboard = "service-provider-dashboard"
	ViewAdministrationDashboard  = "administration-dashboard"
	ViewStudentUnionDashboard    = "student-union-dashboard"
	ViewWardenDashboard          = "warden-dashboard"
	ViewVenues                   = "venue-management"
	ViewBooking                  = "booking"
	ViewEventPlanning            = "event-planning"
	ViewAdminDashboard           = "admin-dashboard"
	ViewAdminTools               = "admin-tools"
	ViewAdminReports             = "admin-reports"
	ViewProfile                  = "profile"
	ViewUnauthorized             = "unauthorized"
	ViewNotFound                 = "not-found"
)

// Caminhos fixos fora do registro de papéis.
const (
	PathHome             = "/"
	PathLogin            = "/login"
	PathRegister         = "/register"
	PathPasswordRecovery = "/password-recovery"
	PathUnauthorized     = "/unauthorized"
	PathBooking          = "/booking"
	PathEventPlanning    = "/event-planning"
	PathProfile          = "/profile"
	// Alias singular mantido por compatibilidade com links antigos.
	PathServiceProviderDashboardAlias = "/dashboard/service-provider"
)

// Declaration associa um caminho a uma view e aos papéis que podem renderizá-la.
type Declaration struct {
	Path   string
	View   string
	Title  string
	Access Access
	Roles  []domain.Role
}

// Permits informa se o papel está na lista da declaração.
func (d Declaration) Permits(role domain.Role) bool {
	for _, allowed := range d.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Table é o conjunto imutável de declarações, indexado por caminho.
type Table struct {
	byPath   map[string]Declaration
	ordered  []Declaration
	notFound Declaration
}

// NewTable valida e indexa as declarações. Views protegidas precisam de ao menos um papel,
// todos conhecidos, e cada caminho aparece uma única vez.
func NewTable(decls ...Declaration) (*Table, error) {
	t := &Table{
		byPath: make(map[string]Declaration, len(decls)),
		notFound: Declaration{
			Path: "*", View: ViewNotFound, Title: "Page Not Found", Access: AccessTerminal,
		},
	}

	for _, d := range decls {
		if _, dup := t.byPath[d.Path]; dup {
			return nil, fmt.Errorf("guard: duplicate declaration for %s", d.Path)
		}
		if d.Access == AccessProtected {
			if len(d.Roles) == 0 {
				return nil, fmt.Errorf("guard: protected view %s has no permitted roles", d.Path)
			}
			for _, role := range d.Roles {
				if !roles.IsKnown(role) {
					return nil, fmt.Errorf("guard: view %s permits unknown role %q", d.Path, role)
				}
			}
		}
		d.Roles = append([]domain.Role(nil), d.Roles...)
		t.byPath[d.Path] = d
		t.ordered = append(t.ordered, d)
	}
	return t, nil
}

// Lookup devolve a declaração do caminho. Uma barra final é ignorada, exceto em "/".
func (t *Table) Lookup(path string) (Declaration, bool) {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	d, ok := t.byPath[path]
	return d, ok
}

// NotFound é a declaração da view catch-all.
func (t *Table) NotFound() Declaration {
	return t.notFound
}

// Declarations retorna todas as declarações na ordem de cadastro.
func (t *Table) Declarations() []Declaration {
	return append([]Declaration(nil), t.ordered...)
}

var (
	dashboardRoles = []domain.Role{
		domain.RoleStudent, domain.RoleFaculty, domain.RoleServiceProvider, domain.RoleViceChancellor,
		domain.RoleAdministration, domain.RoleStudentUnion, domain.RoleWarden,
	}
	venueRoles = []domain.Role{
		domain.RoleStudent, domain.RoleFaculty, domain.RoleServiceProvider, domain.RoleAdmin, domain.RoleSuperAdmin,
	}
	bookingRoles = []domain.Role{domain.RoleStudent, domain.RoleFaculty, domain.RoleServiceProvider}
	adminRoles   = []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin}
)

func public(path, view, title string) Declaration {
	return Declaration{Path: path, View: view, Title: title, Access: AccessPublic}
}

func protected(path, view, title string, allowed ...domain.Role) Declaration {
	return Declaration{Path: path, View: view, Title: title, Access: AccessProtected, Roles: allowed}
}

// DefaultDeclarations é a superfície de rotas da aplicação.
func DefaultDeclarations() []Declaration {
	return []Declaration{
		public(PathHome, ViewHome, "Eventra"),
		public(PathLogin, ViewLogin, "Log into Eventra"),
		public(PathRegister, ViewRegister, "Create Account"),
		public(PathPasswordRecovery, ViewPasswordRecovery, "Password Recovery"),
		public("/features", ViewFeatures, "Features"),
		public("/about", ViewAbout, "About"),
		public("/contact", ViewContact, "Contact Us"),
		public("/faqs", ViewFAQs, "FAQs"),
		public("/terms", ViewTerms, "Terms & Conditions"),
		public("/privacy-policy", ViewPrivacyPolicy, "Privacy Policy"),

		protected(roles.PathUserDashboard, ViewUserDashboard, "Dashboard", dashboardRoles...),
		protected(roles.PathViceChancellorDashboard, ViewViceChancellorDashboard, "Vice Chancellor Dashboard", domain.RoleViceChancellor),
		protected(roles.PathServiceProviderDashboard, ViewServiceProviderDashboard, "Service Provider Dashboard", domain.RoleServiceProvider),
		protected(PathServiceProviderDashboardAlias, ViewServiceProviderDashboard, "Service Provider Dashboard", domain.RoleServiceProvider),
		protected(roles.PathAdministrationDashboard, ViewAdministrationDashboard, "University Administration Dashboard", domain.RoleAdministration),
		protected(roles.PathStudentUnionDashboard, ViewStudentUnionDashboard, "Student Union Dashboard", domain.RoleStudentUnion),
		protected(roles.PathWardenDashboard, ViewWardenDashboard, "Warden Dashboard", domain.RoleWarden),
		protected(roles.PathVenues, ViewVenues, "Venue Management", venueRoles...),
		protected(PathBooking, ViewBooking, "Booking System", bookingRoles...),
		protected(PathEventPlanning, ViewEventPlanning, "Event Planning", bookingRoles...),
		protected(roles.PathAdminDashboard, ViewAdminDashboard, "Admin Dashboard", adminRoles...),
		protected(roles.PathAdminTools, ViewAdminTools, "Admin Tools", adminRoles...),
		protected(roles.PathAdminReports, ViewAdminReports, "Reports", adminRoles...),
		protected(PathProfile, ViewProfile, "Profile", domain.AllRoles...),

		{Path: PathUnauthorized, View: ViewUnauthorized, Title: "Access Denied", Access: AccessTerminal},
	}
}

// DefaultTable constrói a tabela padrão; as declarações fixas são válidas por construção.
func DefaultTable() *Table {
	t, err := NewTable(DefaultDeclarations()...)
	if err != nil {
		panic(err)
	}
	return t
}

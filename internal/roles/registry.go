// Package roles é a fonte única do mapeamento papel -> rótulo, destino do dashboard,
// página inicial após o login, menu de navegação e elegibilidade de auto-cadastro.
// Os demais componentes consultam esta tabela em vez de comparar strings de papel.
package roles

import "eventra/internal/domain"

// Classification indica como uma conta daquele papel pode ser criada.
type Classification int

const (
	// Public: o próprio usuário pode se cadastrar.
	Public Classification = iota
	// Authority: apenas um administrador pode provisionar.
	Authority
)

// Caminhos de view usados na tabela.
const (
	PathUserDashboard            = "/dashboard"
	PathViceChancellorDashboard  = "/dashboards/vice-chancellor"
	PathServiceProviderDashboard = "/dashboards/service-provider"
	PathAdministrationDashboard  = "/dashboards/administration"
	PathStudentUnionDashboard    = "/dashboards/student-union"
	PathWardenDashboard          = "/dashboards/warden"
	PathAdminDashboard           = "/admin/dashboard"
	PathAdminTools               = "/admin/tools"
	PathAdminReports             = "/admin/reports"
	PathVenues                   = "/venues"
)

// FallbackDestination é o dashboard genérico para papéis sem destino específico.
const FallbackDestination = PathUserDashboard

// NavItem é um item do menu lateral.
type NavItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Entry é uma linha imutável do registro.
type Entry struct {
	Role           domain.Role
	Label          string
	Dashboard      string // destino do alias genérico /dashboard
	Landing        string // para onde o login redireciona
	Classification Classification
	Navigation     []NavItem
}

var (
	adminNavigation = []NavItem{
		{Name: "Dashboard", Path: PathAdminDashboard},
		{Name: "Admin Tools", Path: PathAdminTools},
		{Name: "Venues", Path: PathVenues},
		{Name: "Reports", Path: PathAdminReports},
	}
	serviceProviderNavigation = []NavItem{
		{Name: "Dashboard", Path: PathServiceProviderDashboard},
	}
	defaultNavigation = []NavItem{
		{Name: "Dashboard", Path: PathUserDashboard},
	}
)

var registry = map[domain.Role]Entry{
	domain.RoleStudent: {
		Role: domain.RoleStudent, Label: "Student",
		Dashboard: PathUserDashboard, Landing: PathUserDashboard,
		Classification: Public, Navigation: defaultNavigation,
	},
	domain.RoleFaculty: {
		Role: domain.RoleFaculty, Label: "Faculty",
		Dashboard: PathUserDashboard, Landing: PathUserDashboard,
		Classification: Public, Navigation: defaultNavigation,
	},
	domain.RoleServiceProvider: {
		Role: domain.RoleServiceProvider, Label: "Service Provider",
		// /dashboard mostra o dashboard genérico; o login leva ao painel do prestador.
		Dashboard: PathUserDashboard, Landing: PathServiceProviderDashboard,
		Classification: Authority, Navigation: serviceProviderNavigation,
	},
	domain.RoleAdmin: {
		Role: domain.RoleAdmin, Label: "Admin",
		Dashboard: PathAdminDashboard, Landing: PathAdminDashboard,
		Classification: Authority, Navigation: adminNavigation,
	},
	domain.RoleSuperAdmin: {
		Role: domain.RoleSuperAdmin, Label: "Super Admin",
		Dashboard: PathAdminDashboard, Landing: PathAdminDashboard,
		Classification: Authority, Navigation: adminNavigation,
	},
	domain.RoleViceChancellor: {
		Role: domain.RoleViceChancellor, Label: "Vice Chancellor",
		Dashboard: PathViceChancellorDashboard, Landing: PathUserDashboard,
		Classification: Authority, Navigation: defaultNavigation,
	},
	domain.RoleAdministration: {
		Role: domain.RoleAdministration, Label: "Administration UWU",
		Dashboard: PathAdministrationDashboard, Landing: PathUserDashboard,
		Classification: Authority, Navigation: defaultNavigation,
	},
	domain.RoleStudentUnion: {
		Role: domain.RoleStudentUnion, Label: "Student Union",
		Dashboard: PathStudentUnionDashboard, Landing: PathUserDashboard,
		Classification: Authority, Navigation: defaultNavigation,
	},
	domain.RoleWarden: {
		Role: domain.RoleWarden, Label: "Warden",
		Dashboard: PathWardenDashboard, Landing: PathUserDashboard,
		Classification: Authority, Navigation: defaultNavigation,
	},
}

// Lookup retorna a entrada de um papel conhecido.
func Lookup(role domain.Role) (Entry, bool) {
	entry, ok := registry[role]
	return entry, ok
}

// IsKnown informa se o papel existe no registro.
func IsKnown(role domain.Role) bool {
	_, ok := registry[role]
	return ok
}

// LabelFor retorna o rótulo de exibição; papéis desconhecidos caem no identificador cru.
func LabelFor(role domain.Role) string {
	if entry, ok := registry[role]; ok {
		return entry.Label
	}
	return string(role)
}

// IsPubliclyRegistrable é verdadeiro apenas para papéis classificados como Public.
func IsPubliclyRegistrable(role domain.Role) bool {
	entry, ok := registry[role]
	return ok && entry.Classification == Public
}

// PublicRoles lista os papéis aceitos no auto-cadastro, na ordem de domain.AllRoles.
func PublicRoles() []domain.Role {
	var out []domain.Role
	for _, role := range domain.AllRoles {
		if IsPubliclyRegistrable(role) {
			out = append(out, role)
		}
	}
	return out
}

// DashboardDestination resolve o alias genérico /dashboard para o caminho específico do papel.
func DashboardDestination(role domain.Role) string {
	if entry, ok := registry[role]; ok {
		return entry.Dashboard
	}
	return FallbackDestination
}

// LandingPath é a página aberta logo após um login bem-sucedido.
func LandingPath(role domain.Role) string {
	if entry, ok := registry[role]; ok {
		return entry.Landing
	}
	return PathUserDashboard
}

// NavigationFor retorna uma cópia do menu do papel.
func NavigationFor(role domain.Role) []NavItem {
	nav := defaultNavigation
	if entry, ok := registry[role]; ok {
		nav = entry.Navigation
	}
	return append([]NavItem(nil), nav...)
}

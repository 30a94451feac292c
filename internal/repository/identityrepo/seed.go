package identityrepo

import "eventra/internal/domain"

// DemoDirectory é o diretório inicial de demonstração.
// Todas as contas usam o mesmo segredo de demonstração.
func DemoDirectory() []domain.Identity {
	return []domain.Identity{
		{ID: "1", Name: "John Doe", Email: "admin@university.edu", Role: domain.RoleAdmin},
		{ID: "10", Name: "Super Admin", Email: "superadmin@university.edu", Role: domain.RoleSuperAdmin},
		{ID: "2", Name: "Jane Smith", Email: "jane@university.edu", Role: domain.RoleStudent},
		{ID: "3", Name: "Prof. Wilson", Email: "wilson@university.edu", Role: domain.RoleFaculty},
		{ID: "4", Name: "SoundPro", Email: "serviceprovider@university.edu", Role: domain.RoleServiceProvider, ServiceType: domain.ServiceTypeSoundSystem},
		{ID: "5", Name: "MediaPro", Email: "mediaprovider@university.edu", Role: domain.RoleServiceProvider, ServiceType: domain.ServiceTypeMedia},
		// Sem subtipo: recebe o padrão no login.
		{ID: "11", Name: "Event Crew", Email: "eventcrew@university.edu", Role: domain.RoleServiceProvider},
		{ID: "6", Name: "VC User", Email: "vicechancellor@university.edu", Role: domain.RoleViceChancellor},
		{ID: "7", Name: "Admin Office", Email: "adminoffice@university.edu", Role: domain.RoleAdministration},
		{ID: "8", Name: "Student Union", Email: "studentunion@university.edu", Role: domain.RoleStudentUnion},
		{ID: "9", Name: "Warden", Email: "warden@university.edu", Role: domain.RoleWarden},
	}
}

package domain

// Role é o identificador de papel de uma identidade.
// O conjunto é fechado: todo valor usado por uma Identity deve existir no registro de papéis.
type Role string

const (
	RoleStudent         Role = "student"
	RoleFaculty         Role = "faculty"
	RoleServiceProvider Role = "service-provider"
	RoleAdmin           Role = "admin"
	RoleSuperAdmin      Role = "super-admin"
	RoleViceChancellor  Role = "vice-chancellor"
	RoleAdministration  Role = "administration"
	RoleStudentUnion    Role = "student-union"
	RoleWarden          Role = "warden"
)

// AllRoles lista todos os papéis conhecidos, na ordem de exibição.
var AllRoles = []Role{
	RoleStudent,
	RoleFaculty,
	RoleServiceProvider,
	RoleAdmin,
	RoleSuperAdmin,
	RoleViceChancellor,
	RoleAdministration,
	RoleStudentUnion,
	RoleWarden,
}

// ServiceType é o subtipo de um prestador de serviço.
type ServiceType string

const (
	ServiceTypeSoundSystem ServiceType = "Sound System"
	ServiceTypeMedia       ServiceType = "Media"
)

// DefaultServiceType é atribuído a prestadores sem subtipo, no provisionamento e no login.
const DefaultServiceType = ServiceTypeSoundSystem

// Identity representa um principal autenticável do diretório.
// É também o formato do blob persistido da sessão.
type Identity struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	ServiceType ServiceType `json:"serviceType,omitempty"` // Apenas para service-provider
}

// LoginRequest é o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required"`
}

// RegisterData é o payload do formulário de auto-cadastro.
type RegisterData struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	Role            Role   `json:"role" validate:"required"`
	AcceptTerms     bool   `json:"acceptTerms" validate:"required"`
}

// ProvisionData é o payload usado por administradores para criar contas de qualquer papel.
type ProvisionData struct {
	Name        string      `json:"name" validate:"required"`
	Email       string      `json:"email" validate:"required,email"`
	Role        Role        `json:"role" validate:"required"`
	ServiceType ServiceType `json:"serviceType,omitempty" validate:"omitempty,oneof='Sound System' Media"`
}

// PasswordRecoveryRequest é o payload da solicitação de recuperação de senha.
type PasswordRecoveryRequest struct {
	Email string `json:"email" validate:"required,email"`
}

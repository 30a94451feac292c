package domain

import "time"

// ActivityAction identifica o tipo de evento registrado no log de atividades.
type ActivityAction string

const (
	ActionLoginSucceeded ActivityAction = "login_succeeded"
	ActionLoginFailed    ActivityAction = "login_failed"
	ActionLogout         ActivityAction = "logout"
	ActionRegistered     ActivityAction = "registered"
	ActionProvisioned    ActivityAction = "provisioned"
	ActionRecovery       ActivityAction = "password_recovery_requested"
)

// ActivityEntry é uma linha do log de atividades exibido nas ferramentas de administração.
type ActivityEntry struct {
	ID        string         `json:"id"`
	Action    ActivityAction `json:"action"`
	Actor     string         `json:"actor"` // email de quem executou a ação
	Role      Role           `json:"role,omitempty"`
	Details   string         `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

package router

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "eventra/docs" // registra o documento Swagger
	"eventra/internal/api/admin"
	"eventra/internal/api/auth"
	"eventra/internal/api/view"
	"eventra/internal/domain"
	"eventra/internal/pkg/cache"
	"eventra/internal/pkg/logger"
	"eventra/internal/pkg/middleware"
)

// Options reúne as dependências já inicializadas pelo main.
type Options struct {
	Auth     *auth.Handler
	Admin    *admin.Handler
	View     *view.Handler
	Guard    middleware.Evaluator
	Session  middleware.SessionReader
	Gatherer prometheus.Gatherer
	Logger   logger.Logger

	// Rate limit do login
	RateLimitCache  cache.Client
	RateLimitMax    int
	RateLimitPeriod time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(opts Options) http.Handler {
	mux := http.NewServeMux()

	// --- 1. Infraestrutura ---
	mux.HandleFunc("/ping", PingHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. API de autenticação ---
	loginLimiter := middleware.RateLimiter(opts.RateLimitCache, "login", opts.RateLimitMax, opts.RateLimitPeriod, opts.Logger)
	mux.Handle("/api/login", loginLimiter(http.HandlerFunc(opts.Auth.LoginHandler)))
	mux.HandleFunc("/api/register", opts.Auth.RegisterHandler)
	mux.HandleFunc("/api/logout", opts.Auth.LogoutHandler)
	mux.HandleFunc("/api/session", opts.Auth.SessionHandler)
	mux.HandleFunc("/api/password-recovery", opts.Auth.PasswordRecoveryHandler)
	mux.HandleFunc("/api/password-recovery/verify", opts.Auth.VerifyResetTokenHandler)

	// --- 3. API administrativa (admin e super-admin) ---
	requireSession := middleware.NewSessionMiddleware(opts.Session)
	requireAdmin := middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleSuperAdmin)
	mux.HandleFunc("/api/admin/users", requireSession(requireAdmin(opts.Admin.UsersHandler)))
	mux.HandleFunc("/api/admin/activity", requireSession(requireAdmin(opts.Admin.ActivityHandler)))

	// --- 4. Views: toda navegação passa pelo guard ---
	mux.Handle("/", middleware.NewGuardMiddleware(opts.Guard)(opts.View))

	return mux
}

// PingHandler é o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"eventra/config"
	"eventra/internal/pkg/cache"
	"eventra/internal/pkg/database"
	"eventra/internal/pkg/logger"
	"eventra/internal/pkg/metrics"
	"eventra/internal/pkg/token"

	"eventra/internal/api/admin"
	"eventra/internal/api/auth"
	"eventra/internal/api/router"
	"eventra/internal/api/view"
	"eventra/internal/dispatch"
	"eventra/internal/guard"
	"eventra/internal/repository/activityrepo"
	"eventra/internal/repository/identityrepo"
	"eventra/internal/service/authservice"
	"eventra/internal/session"
)

// @title Eventra API
// @version 1.0
// @description Autenticação, sessão e guarda de rotas por papel do Eventra.
// @host localhost:8080
// @BasePath /
func main() {
	log.Println("⚡ Inicializando serviço Eventra...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "session_backend": cfg.SessionBackend})

	// 1. Métricas
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// 2. Armazenamento da sessão e contadores de rate limit
	sessionStorage, rateLimitCache, closeStorage := openStorage(cfg, log)
	defer closeStorage()

	// 3. Log de atividades: Postgres quando configurado, memória caso contrário
	var activity authservice.ActivityRepository = activityrepo.NewMemoryRepository(0)
	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgresDB(cfg.DatabaseURL, database.DefaultPoolConfig(), cfg.DBTimeout)
		if err != nil {
			log.Fatal("Falha ao conectar ao banco de dados.", err)
		}
		defer db.Close()
		activity = activityrepo.NewPostgresRepository(db, cfg.DBTimeout, log)
		log.Info("Conexão PostgreSQL estabelecida. Log de atividades persistente.", nil)
	} else {
		log.Info("DATABASE_URL vazia. Log de atividades em memória.", nil)
	}

	// 4. Diretório de identidades
	identityRepo := identityrepo.NewIdentityRepository(log)
	if err := identityRepo.Seed(identityrepo.DemoDirectory()...); err != nil {
		log.Fatal("Falha ao carregar o diretório de demonstração.", err)
	}

	// 5. Sessão: restaurada antes de qualquer rota ser avaliada
	store := session.NewStore(sessionStorage, log)
	store.Restore(context.Background())
	if store.IsAuthenticated() {
		m.SessionActive.Set(1)
	}

	// 6. Serviços
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.ResetTokenExpiry)
	authSvc, err := authservice.NewService(identityRepo, store, activity, tokenSvc, cfg.DemoSecret, m, log)
	if err != nil {
		log.Fatal("Falha ao inicializar o serviço de autenticação.", err)
	}
	log.Debug("Serviço de Autenticação inicializado.", nil)

	// 7. Guard e dispatcher compartilham a mesma tabela de views
	table := guard.DefaultTable()
	routeGuard := guard.New(table, store, m, log)
	dispatcher := dispatch.New(table, store, m, log)

	// 8. Handlers e roteador
	r := router.NewRouter(router.Options{
		Auth:            auth.NewHandler(authSvc, log),
		Admin:           admin.NewHandler(authSvc, log),
		View:            view.NewHandler(dispatcher, log),
		Guard:           routeGuard,
		Session:         store,
		Gatherer:        reg,
		Logger:          log,
		RateLimitCache:  rateLimitCache,
		RateLimitMax:    cfg.RateLimitMaxRequests,
		RateLimitPeriod: cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Servidor Eventra ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}

// openStorage escolhe o backend da sessão. O rate limit nunca usa o backend de arquivo,
// que não respeita expiração.
func openStorage(cfg *config.Config, log logger.Logger) (sessionStorage, rateLimit cache.Client, closeFn func()) {
	closeFn = func() {}

	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		rdb, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
		if err != nil {
			log.Fatal("Falha ao conectar ao Redis.", err)
		}
		log.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
		return rdb, rdb, func() { rdb.Close() }

	case config.SessionBackendMemory:
		log.Warn("Sessão em memória: não sobrevive a reinícios.", nil)
		return cache.NewMemoryClient(), cache.NewMemoryClient(), closeFn

	default:
		fileClient, err := cache.NewFileClient(cfg.SessionDir)
		if err != nil {
			log.Fatal("Falha ao preparar o diretório de sessão.", err)
		}
		log.Info("Sessão persistida em arquivo.", map[string]interface{}{"dir": cfg.SessionDir})
		return fileClient, cache.NewMemoryClient(), closeFn
	}
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config armazena todas as configurações do serviço Eventra.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Armazenamento da sessão (blob único persistido)
	SessionBackend string // "file", "redis" ou "memory"
	SessionDir     string

	// Cache (Redis)
	RedisAddr    string
	CacheTimeout time.Duration

	// Banco de Dados (PostgreSQL) - opcional, apenas para o log de atividades
	DatabaseURL string
	DBTimeout   time.Duration

	// Autenticação de demonstração
	DemoSecret string

	// Segurança (JWT de recuperação de senha)
	JWTSecretKey     string
	ResetTokenExpiry time.Duration

	// Rate Limiting do login
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// Backends de sessão suportados.
const (
	SessionBackendFile   = "file"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Sessão
		SessionBackend: strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendFile)),
		SessionDir:     getEnv("SESSION_DIR", "./data"),

		// 3. Cache (Redis)
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout: getDurationEnv("CACHE_TIMEOUT_SEC", 10) * time.Second,

		// 4. Banco de Dados
		// Vazio significa log de atividades apenas em memória.
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		// 5. Autenticação
		DemoSecret: getEnv("DEMO_SECRET", "password123"),

		// 6. Segurança (JWT)
		JWTSecretKey:     mustGetEnv("JWT_SECRET_KEY"),
		ResetTokenExpiry: getDurationEnv("RESET_TOKEN_EXPIRY_MIN", 30) * time.Minute,

		// 7. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 20),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
	}

	if !isKnownBackend(cfg.SessionBackend) {
		log.Printf("⚠️ Aviso: SESSION_BACKEND '%s' desconhecido. Usando '%s'.", cfg.SessionBackend, SessionBackendFile)
		cfg.SessionBackend = SessionBackendFile
	}

	return cfg
}

func isKnownBackend(backend string) bool {
	switch backend {
	case SessionBackendFile, SessionBackendRedis, SessionBackendMemory:
		return true
	}
	return false
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

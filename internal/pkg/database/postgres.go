package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Driver PostgreSQL
	_ "github.com/lib/pq"
)

// PoolConfig controla o pool de conexões. O log de atividades grava pouco,
// então os padrões são menores que os de um serviço com tráfego de escrita.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig é usado pelo servidor e pela ferramenta de migração.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 2 * time.Minute,
	}
}

// NewPostgresDB abre o pool, aplica a configuração e valida a conexão com um ping
// limitado por pingTimeout.
func NewPostgresDB(dataSourceName string, pool PoolConfig, pingTimeout time.Duration) (*sql.DB, error) {
	if dataSourceName == "" {
		return nil, fmt.Errorf("DATABASE_URL não definida")
	}

	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	return db, nil
}

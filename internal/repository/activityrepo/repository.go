package activityrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"eventra/internal/domain"
	apperror "eventra/internal/errors"
	"eventra/internal/pkg/logger"
)

// PostgresRepository persiste o log de atividades na tabela activity_log (ver sql/).
type PostgresRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPostgresRepository cria o repositório, injetando o DB.
func NewPostgresRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *PostgresRepository {
	return &PostgresRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

const insertSQL = `INSERT INTO activity_log (id, action, actor, role, details, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6)`

const listSQL = `SELECT id, action, actor, role, details, created_at
                 FROM activity_log ORDER BY created_at DESC LIMIT $1`

// Record insere uma entrada. ID e timestamp são gerados aqui quando ausentes.
func (r *PostgresRepository) Record(ctx context.Context, entry domain.ActivityEntry) (domain.ActivityEntry, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	entry = stamp(entry)

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		entry.ID,
		string(entry.Action),
		entry.Actor,
		string(entry.Role),
		entry.Details,
		entry.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir atividade no DB.", err)
		return domain.ActivityEntry{}, apperror.NewDBError("failed to insert activity", err)
	}
	return entry, nil
}

// List retorna as entradas mais recentes primeiro. limit <= 0 retorna todas, como no MemoryRepository.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// LIMIT NULL equivale a sem limite no Postgres.
	var limitArg interface{}
	if limit > 0 {
		limitArg = limit
	}

	rows, err := r.DB.QueryContext(ctxTimeout, listSQL, limitArg)
	if err != nil {
		r.logger.Error("Falha ao listar atividades no DB.", err)
		return nil, apperror.NewDBError("failed to list activity", err)
	}
	defer rows.Close()

	entries := []domain.ActivityEntry{}
	for rows.Next() {
		var (
			entry  domain.ActivityEntry
			action string
			role   string
		)
		if err := rows.Scan(&entry.ID, &action, &entry.Actor, &role, &entry.Details, &entry.CreatedAt); err != nil {
			return nil, apperror.NewDBError("failed to scan activity", err)
		}
		entry.Action = domain.ActivityAction(action)
		entry.Role = domain.Role(role)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate activity", err)
	}
	return entries, nil
}

func stamp(entry domain.ActivityEntry) domain.ActivityEntry {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return entry
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mathboard/internal/domain"
	"mathboard/internal/domain/models"
	"mathboard/internal/domain/repositories"
)

// PostgresOperationRepository implements the OperationRepository interface
type PostgresOperationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewOperationRepository creates a new operation repository
func NewOperationRepository(config *RepositoryConfig) repositories.OperationRepository {
	return &PostgresOperationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const operationColumns = "id, discussion_id, parent_id, operation_type, operand, result, author_id, created_at"

func scanOperation(row pgx.Row, op *models.Operation) error {
	return row.Scan(
		&op.ID,
		&op.DiscussionID,
		&op.ParentID,
		&op.Kind,
		&op.Operand,
		&op.Result,
		&op.AuthorID,
		&op.CreatedAt,
	)
}

// Create inserts a new operation with its precomputed result. The
// discussion and parent foreign keys back the service-level existence
// checks; a violation here means the referent vanished mid-call.
func (r *PostgresOperationRepository) Create(ctx context.Context, op *models.Operation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (discussion_id, parent_id, operation_type, operand, result, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, r.tables.Operations)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		op.DiscussionID,
		op.ParentID,
		op.Kind,
		op.Operand,
		op.Result,
		op.AuthorID,
		op.CreatedAt,
	).Scan(&op.ID, &op.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("operation referent: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create operation: %w", err)
	}

	return nil
}

// GetByID retrieves an operation by ID
func (r *PostgresOperationRepository) GetByID(ctx context.Context, id string) (*models.Operation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, operationColumns, r.tables.Operations)

	var op models.Operation
	executor := GetExecutor(ctx, r.pool)
	if err := scanOperation(executor.QueryRow(ctx, query, id), &op); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("operation %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}

	return &op, nil
}

// ListByDiscussion lists a discussion's operations oldest-first
func (r *PostgresOperationRepository) ListByDiscussion(ctx context.Context, discussionID string) ([]models.Operation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE discussion_id = $1
		ORDER BY created_at ASC, id ASC
	`, operationColumns, r.tables.Operations)

	return r.listOperations(ctx, query, discussionID)
}

// ListChildren lists the direct children of an operation oldest-first
func (r *PostgresOperationRepository) ListChildren(ctx context.Context, operationID string) ([]models.Operation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE parent_id = $1
		ORDER BY created_at ASC, id ASC
	`, operationColumns, r.tables.Operations)

	return r.listOperations(ctx, query, operationID)
}

// ListRoots lists a discussion's parentless operations oldest-first
func (r *PostgresOperationRepository) ListRoots(ctx context.Context, discussionID string) ([]models.Operation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE discussion_id = $1 AND parent_id IS NULL
		ORDER BY created_at ASC, id ASC
	`, operationColumns, r.tables.Operations)

	return r.listOperations(ctx, query, discussionID)
}

func (r *PostgresOperationRepository) listOperations(ctx context.Context, query string, arg interface{}) ([]models.Operation, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var ops []models.Operation
	for rows.Next() {
		var op models.Operation
		if err := scanOperation(rows, &op); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}

	return ops, nil
}

// CountByDiscussion returns the number of operations in a discussion
func (r *PostgresOperationRepository) CountByDiscussion(ctx context.Context, discussionID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE discussion_id = $1
	`, r.tables.Operations)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, discussionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count operations: %w", err)
	}

	return count, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"mathboard/internal/domain"
	"mathboard/internal/domain/models"
	"mathboard/internal/domain/repositories"
)

// PostgresDiscussionRepository implements the DiscussionRepository interface
type PostgresDiscussionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDiscussionRepository creates a new discussion repository
func NewDiscussionRepository(config *RepositoryConfig) repositories.DiscussionRepository {
	return &PostgresDiscussionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new discussion. Starting-number uniqueness is the
// table's unique index, not an application-level pre-check: concurrent
// creators race at the insert and exactly one wins, the rest get the
// constraint violation translated to a ConflictError carrying the winner.
func (r *PostgresDiscussionRepository) Create(ctx context.Context, discussion *models.Discussion) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (author_id, starting_number, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.Discussions)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		discussion.AuthorID,
		discussion.StartingNumber,
		discussion.CreatedAt,
	).Scan(&discussion.ID, &discussion.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return r.conflictWith(ctx, discussion.StartingNumber)
		}
		return fmt.Errorf("create discussion: %w", err)
	}

	return nil
}

// conflictWith builds the ConflictError for a taken starting number,
// attaching the existing discussion's ID as a hint when it can be read.
func (r *PostgresDiscussionRepository) conflictWith(ctx context.Context, value float64) error {
	existing, err := r.GetByStartingNumber(ctx, value)
	if err != nil {
		// Racing delete or read failure: fall back to the bare sentinel
		return fmt.Errorf("starting number %v already taken: %w", value, domain.ErrConflict)
	}

	return &domain.ConflictError{
		Message:      fmt.Sprintf("starting number %v already taken", value),
		ResourceType: "discussion",
		ResourceID:   existing.ID,
	}
}

// GetByID retrieves a discussion by ID
func (r *PostgresDiscussionRepository) GetByID(ctx context.Context, id string) (*models.Discussion, error) {
	query := fmt.Sprintf(`
		SELECT id, author_id, starting_number, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Discussions)

	var discussion models.Discussion
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&discussion.ID,
		&discussion.AuthorID,
		&discussion.StartingNumber,
		&discussion.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("discussion %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get discussion: %w", err)
	}

	return &discussion, nil
}

// GetByStartingNumber retrieves the discussion anchored on a value
func (r *PostgresDiscussionRepository) GetByStartingNumber(ctx context.Context, value float64) (*models.Discussion, error) {
	query := fmt.Sprintf(`
		SELECT id, author_id, starting_number, created_at
		FROM %s
		WHERE starting_number = $1
	`, r.tables.Discussions)

	var discussion models.Discussion
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, value).Scan(
		&discussion.ID,
		&discussion.AuthorID,
		&discussion.StartingNumber,
		&discussion.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("discussion with starting number %v: %w", value, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get discussion by starting number: %w", err)
	}

	return &discussion, nil
}

// List retrieves all discussions, newest-first. Ties on created_at break
// by id so the order stays stable across reads.
func (r *PostgresDiscussionRepository) List(ctx context.Context) ([]models.Discussion, error) {
	query := fmt.Sprintf(`
		SELECT id, author_id, starting_number, created_at
		FROM %s
		ORDER BY created_at DESC, id DESC
	`, r.tables.Discussions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list discussions: %w", err)
	}
	defer rows.Close()

	var discussions []models.Discussion
	for rows.Next() {
		var d models.Discussion
		if err := rows.Scan(&d.ID, &d.AuthorID, &d.StartingNumber, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan discussion: %w", err)
		}
		discussions = append(discussions, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list discussions: %w", err)
	}

	return discussions, nil
}

// UpdateStartingNumber moves a discussion to a new starting number. The
// unique index re-validates uniqueness atomically with the write.
func (r *PostgresDiscussionRepository) UpdateStartingNumber(ctx context.Context, id string, value float64) (*models.Discussion, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET starting_number = $1
		WHERE id = $2
		RETURNING id, author_id, starting_number, created_at
	`, r.tables.Discussions)

	var discussion models.Discussion
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, value, id).Scan(
		&discussion.ID,
		&discussion.AuthorID,
		&discussion.StartingNumber,
		&discussion.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("discussion %s: %w", id, domain.ErrNotFound)
		}
		if IsPgDuplicateError(err) {
			return nil, r.conflictWith(ctx, value)
		}
		return nil, fmt.Errorf("update discussion starting number: %w", err)
	}

	return &discussion, nil
}

// Delete removes a discussion; the operations FK cascades.
func (r *PostgresDiscussionRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Discussions)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete discussion: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("discussion %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

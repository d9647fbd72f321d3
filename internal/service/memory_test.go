package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"mathboard/internal/domain"
	"mathboard/internal/domain/models"
	"mathboard/internal/domain/repositories"
)

// In-memory repository fakes. They mirror the store's contract: the
// starting-number unique constraint, FK-backed lookups and the
// (created_at, id) listing order. A shared logical clock hands out
// strictly increasing timestamps so ordering assertions are exact.

type memClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newMemClock() *memClock {
	return &memClock{
		now:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		step: time.Millisecond,
	}
}

func (c *memClock) next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

type memDiscussionRepo struct {
	mu    sync.Mutex
	clock *memClock
	rows  map[string]models.Discussion
}

func newMemDiscussionRepo(clock *memClock) *memDiscussionRepo {
	return &memDiscussionRepo{
		clock: clock,
		rows:  make(map[string]models.Discussion),
	}
}

func (r *memDiscussionRepo) Create(_ context.Context, discussion *models.Discussion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.rows {
		if existing.StartingNumber == discussion.StartingNumber {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("starting number %v already taken", discussion.StartingNumber),
				ResourceType: "discussion",
				ResourceID:   existing.ID,
			}
		}
	}

	discussion.ID = uuid.NewString()
	discussion.CreatedAt = r.clock.next()
	r.rows[discussion.ID] = *discussion
	return nil
}

func (r *memDiscussionRepo) GetByID(_ context.Context, id string) (*models.Discussion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("discussion %s: %w", id, domain.ErrNotFound)
	}
	return &d, nil
}

func (r *memDiscussionRepo) GetByStartingNumber(_ context.Context, value float64) (*models.Discussion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.rows {
		if d.StartingNumber == value {
			d := d
			return &d, nil
		}
	}
	return nil, fmt.Errorf("discussion with starting number %v: %w", value, domain.ErrNotFound)
}

func (r *memDiscussionRepo) List(_ context.Context) ([]models.Discussion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Discussion, 0, len(r.rows))
	for _, d := range r.rows {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memDiscussionRepo) UpdateStartingNumber(_ context.Context, id string, value float64) (*models.Discussion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("discussion %s: %w", id, domain.ErrNotFound)
	}

	for _, existing := range r.rows {
		if existing.ID != id && existing.StartingNumber == value {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("starting number %v already taken", value),
				ResourceType: "discussion",
				ResourceID:   existing.ID,
			}
		}
	}

	d.StartingNumber = value
	r.rows[id] = d
	return &d, nil
}

func (r *memDiscussionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("discussion %s: %w", id, domain.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

type memOperationRepo struct {
	mu    sync.Mutex
	clock *memClock
	rows  map[string]models.Operation
}

func newMemOperationRepo(clock *memClock) *memOperationRepo {
	return &memOperationRepo{
		clock: clock,
		rows:  make(map[string]models.Operation),
	}
}

func (r *memOperationRepo) Create(_ context.Context, op *models.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	op.ID = uuid.NewString()
	op.CreatedAt = r.clock.next()
	r.rows[op.ID] = *op
	return nil
}

func (r *memOperationRepo) GetByID(_ context.Context, id string) (*models.Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	op, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("operation %s: %w", id, domain.ErrNotFound)
	}
	return &op, nil
}

func (r *memOperationRepo) ListByDiscussion(_ context.Context, discussionID string) ([]models.Operation, error) {
	return r.listWhere(func(op models.Operation) bool {
		return op.DiscussionID == discussionID
	}), nil
}

func (r *memOperationRepo) ListChildren(_ context.Context, operationID string) ([]models.Operation, error) {
	return r.listWhere(func(op models.Operation) bool {
		return op.ParentID != nil && *op.ParentID == operationID
	}), nil
}

func (r *memOperationRepo) ListRoots(_ context.Context, discussionID string) ([]models.Operation, error) {
	return r.listWhere(func(op models.Operation) bool {
		return op.DiscussionID == discussionID && op.ParentID == nil
	}), nil
}

func (r *memOperationRepo) CountByDiscussion(_ context.Context, discussionID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, op := range r.rows {
		if op.DiscussionID == discussionID {
			count++
		}
	}
	return count, nil
}

func (r *memOperationRepo) listWhere(keep func(models.Operation) bool) []models.Operation {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Operation
	for _, op := range r.rows {
		if keep(op) {
			out = append(out, op)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// corrupt rewrites an operation row in place, bypassing every creation
// check. Used to stage storage-corruption scenarios for the resolver.
func (r *memOperationRepo) corrupt(id string, mutate func(*models.Operation)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	op := r.rows[id]
	mutate(&op)
	r.rows[id] = op
}

type memTxManager struct{}

func (memTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"moneypulse/internal/database"
	"moneypulse/internal/models"
	"moneypulse/internal/report"
)

// GoalRepository handles savings goal database operations. It takes a full
// pool because contributions read and write under a row lock.
type GoalRepository struct {
	db database.Pool
}

var _ GoalStore = (*GoalRepository)(nil)

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(db database.Pool) *GoalRepository {
	return &GoalRepository{db: db}
}

const goalColumns = `id, name, target_amount, current_amount, deadline, priority, category, created_at, updated_at`

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var goal models.Goal
	err := row.Scan(&goal.ID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount,
		&goal.Deadline, &goal.Priority, &goal.Category, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// List retrieves all goals ordered by priority, then soonest deadline.
func (r *GoalRepository) List(ctx context.Context) ([]models.Goal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+goalColumns+` FROM goals ORDER BY priority ASC, deadline ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}

// GetByID retrieves a goal by ID.
func (r *GoalRepository) GetByID(ctx context.Context, id int) (*models.Goal, error) {
	goal, err := scanGoal(r.db.QueryRow(ctx, `
		SELECT `+goalColumns+` FROM goals WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

// Create adds a new goal.
func (r *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO goals (name, target_amount, current_amount, deadline, priority, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline, goal.Priority, goal.Category,
	).Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// Update replaces an existing goal record.
func (r *GoalRepository) Update(ctx context.Context, goal *models.Goal) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE goals SET
			name = $2,
			target_amount = $3,
			current_amount = $4,
			deadline = $5,
			priority = $6,
			category = $7,
			updated_at = NOW()
		WHERE id = $1
	`, goal.ID, goal.Name, goal.TargetAmount, goal.CurrentAmount,
		goal.Deadline, goal.Priority, goal.Category)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a goal by ID.
func (r *GoalRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// AddContribution adds to the goal's current amount under a row lock. The
// target cap is validated against the stored row before any write, so a
// contribution can never push current past target.
func (r *GoalRepository) AddContribution(ctx context.Context, id int, amount decimal.Decimal) (*models.Goal, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	goal, err := scanGoal(tx.QueryRow(ctx, `
		SELECT `+goalColumns+` FROM goals WHERE id = $1 FOR UPDATE
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal for contribution: %w", err)
	}

	updated, err := report.ApplyGoalContribution(*goal, amount)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		UPDATE goals SET current_amount = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, id, updated.CurrentAmount).Scan(&updated.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to apply contribution: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit contribution: %w", err)
	}
	return &updated, nil
}

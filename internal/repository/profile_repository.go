package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"moneypulse/internal/database"
	"moneypulse/internal/models"
)

// ProfileRepository handles the single user profile record.
type ProfileRepository struct {
	db database.PGXDB
}

var _ ProfileStore = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db database.PGXDB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get retrieves the user profile. The row is seeded at startup.
func (r *ProfileRepository) Get(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.QueryRow(ctx, `
		SELECT id, name, avatar_url, website, currency, created_at, updated_at
		FROM profiles ORDER BY id ASC LIMIT 1
	`).Scan(&profile.ID, &profile.Name, &profile.AvatarURL, &profile.Website,
		&profile.Currency, &profile.CreatedAt, &profile.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// Update replaces the profile record.
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE profiles SET
			name = $2,
			avatar_url = $3,
			website = $4,
			currency = $5,
			updated_at = NOW()
		WHERE id = $1
	`, profile.ID, profile.Name, profile.AvatarURL, profile.Website, profile.Currency)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"renthub/internal/domain"
	apperrors "renthub/pkg/errors"
	"renthub/pkg/logger"
)

type PropertyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
}

type propertyRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewPropertyRepository(db *pgxpool.Pool, log logger.Logger) PropertyRepository {
	return &propertyRepository{db: db, log: log}
}

func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	query := `
		SELECT id, owner_id, title, city, status, is_active, created_at
		FROM properties
		WHERE id = $1
	`

	property := &domain.Property{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&property.ID, &property.OwnerID, &property.Title, &property.City,
		&property.Status, &property.IsActive, &property.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get property", "error", err)
		return nil, err
	}

	return property, nil
}

// Package store persists job applications. Implementations share the same
// semantics so the in-memory store can stand in for PostgreSQL in tests.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"jobtrack/internal/application/models"
	"jobtrack/internal/application/query"
)

// ErrNotFound keeps absent-record failures consistent across
// implementations so services can map them to domain errors.
var ErrNotFound = errors.New("job application not found")

// Store is the record store contract. List and Count accept the same
// filter so totals always agree with the returned page.
type Store interface {
	Create(ctx context.Context, app models.JobApplication) error
	FindByID(ctx context.Context, id uuid.UUID) (models.JobApplication, error)
	Update(ctx context.Context, app models.JobApplication) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q query.Query) ([]models.JobApplication, error)
	Count(ctx context.Context, f query.Filter) (int, error)
}

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobtrack/internal/application/models"
	"jobtrack/internal/application/query"
)

// InMemory keeps records in a map behind an RWMutex. It backs unit tests
// and local development and intentionally favors clarity over performance.
type InMemory struct {
	mu   sync.RWMutex
	apps map[uuid.UUID]models.JobApplication
}

func NewInMemory() *InMemory {
	return &InMemory{apps: make(map[uuid.UUID]models.JobApplication)}
}

func (s *InMemory) Create(_ context.Context, app models.JobApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[app.ID] = app
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (models.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if app, ok := s.apps[id]; ok {
		return app, nil
	}
	return models.JobApplication{}, ErrNotFound
}

func (s *InMemory) Update(_ context.Context, app models.JobApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[app.ID]; !ok {
		return ErrNotFound
	}
	s.apps[app.ID] = app
	return nil
}

func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[id]; !ok {
		return ErrNotFound
	}
	delete(s.apps, id)
	return nil
}

func (s *InMemory) List(_ context.Context, q query.Query) ([]models.JobApplication, error) {
	s.mu.RLock()
	matched := make([]models.JobApplication, 0, len(s.apps))
	for _, app := range s.apps {
		if q.Filter.Matches(app) {
			matched = append(matched, app)
		}
	}
	s.mu.RUnlock()

	sortApplications(matched, q.SortBy, q.SortOrder)

	if q.Offset >= len(matched) {
		return []models.JobApplication{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], nil
}

func (s *InMemory) Count(_ context.Context, f query.Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, app := range s.apps {
		if f.Matches(app) {
			count++
		}
	}
	return count, nil
}

// sortApplications orders records by the allow-listed field. Records with
// no value for an optional field sort last regardless of direction, the
// same as NULLS LAST in the PostgreSQL store.
func sortApplications(apps []models.JobApplication, field query.SortField, order query.SortOrder) {
	sort.SliceStable(apps, func(i, j int) bool {
		ti, iok := sortValue(apps[i], field)
		tj, jok := sortValue(apps[j], field)
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		if order == query.SortAsc {
			return ti.Before(tj)
		}
		return tj.Before(ti)
	})
}

func sortValue(app models.JobApplication, field query.SortField) (time.Time, bool) {
	switch field {
	case query.SortDateApplied:
		return app.DateApplied, true
	case query.SortInterviewDate:
		if app.InterviewDate == nil {
			return time.Time{}, false
		}
		return *app.InterviewDate, true
	case query.SortDateCompleted:
		if app.DateCompleted == nil {
			return time.Time{}, false
		}
		return *app.DateCompleted, true
	default:
		return app.CreatedAt, true
	}
}

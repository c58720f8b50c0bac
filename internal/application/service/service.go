// Package service orchestrates the lifecycle validator and the record
// store. It is the only write path; nothing else may persist a job
// application without passing validation and normalization.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"jobtrack/internal/application/lifecycle"
	"jobtrack/internal/application/metrics"
	"jobtrack/internal/application/models"
	"jobtrack/internal/application/query"
	"jobtrack/internal/application/store"
	"jobtrack/internal/audit"
	dErrors "jobtrack/pkg/domain-errors"
)

// AuditPublisher emits audit events for mutating operations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Page is a list result: one page of records plus the total count of
// records matching the filter, independent of pagination.
type Page struct {
	Data  []models.JobApplication `json:"data"`
	Total int                     `json:"total"`
}

type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   AuditPublisher
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.audit = publisher
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the payload and persists a new record. New records
// always start in APPLIED.
func (s *Service) Create(ctx context.Context, req models.CreateRequest) (models.JobApplication, error) {
	app, err := lifecycle.ValidateCreate(req, s.now())
	if err != nil {
		return models.JobApplication{}, err
	}
	app.ID = uuid.New()

	if err := s.store.Create(ctx, app); err != nil {
		return models.JobApplication{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create job application")
	}

	s.logger.InfoContext(ctx, "job application created",
		"id", app.ID, "company", app.Company)
	s.metrics.IncCreated()
	s.emit(ctx, audit.Event{
		ApplicationID: app.ID,
		Action:        audit.ActionCreated,
		Detail:        app.Company + " / " + app.JobPosition,
	})
	return app, nil
}

// List runs the query builder and executes list and count under the same
// filter so total always reflects the full filtered set.
func (s *Service) List(ctx context.Context, params query.Params) (Page, error) {
	q, err := query.Build(params)
	if err != nil {
		return Page{}, err
	}

	apps, err := s.store.List(ctx, q)
	if err != nil {
		return Page{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list job applications")
	}
	total, err := s.store.Count(ctx, q.Filter)
	if err != nil {
		return Page{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count job applications")
	}
	return Page{Data: apps, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (models.JobApplication, error) {
	app, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.JobApplication{}, dErrors.New(dErrors.CodeNotFound, "Job application not found")
		}
		return models.JobApplication{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load job application")
	}
	return app, nil
}

// Update loads the current record, validates the merged result, and
// persists it. A record deleted between the read and the write surfaces
// as NotFound rather than being silently ignored.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.UpdateRequest) (models.JobApplication, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return models.JobApplication{}, err
	}

	updated, err := lifecycle.ValidateUpdate(current, req, s.now())
	if err != nil {
		return models.JobApplication{}, err
	}

	if err := s.store.Update(ctx, updated); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.JobApplication{}, dErrors.New(dErrors.CodeNotFound, "Job application not found")
		}
		return models.JobApplication{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update job application")
	}

	s.metrics.IncUpdated()
	if updated.Status != current.Status {
		s.metrics.ObserveTransition(string(current.Status), string(updated.Status))
		s.emit(ctx, audit.Event{
			ApplicationID: id,
			Action:        audit.ActionStatusChanged,
			Detail:        fmt.Sprintf("%s -> %s", current.Status, updated.Status),
		})
	}
	s.emit(ctx, audit.Event{ApplicationID: id, Action: audit.ActionUpdated})
	return updated, nil
}

// Delete removes a record. Repeating a delete yields NotFound.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Job application not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete job application")
	}

	s.logger.InfoContext(ctx, "job application deleted", "id", id)
	s.metrics.IncDeleted()
	s.emit(ctx, audit.Event{ApplicationID: id, Action: audit.ActionDeleted})
	return nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit != nil {
		s.audit.Emit(ctx, event)
	}
}

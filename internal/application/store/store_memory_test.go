package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"jobtrack/internal/application/models"
	"jobtrack/internal/application/query"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) newApplication(company string, createdAt time.Time) models.JobApplication {
	return models.JobApplication{
		ID:          uuid.New(),
		Company:     company,
		JobPosition: "SWE",
		JobLink:     "http://x.test",
		Status:      models.StatusApplied,
		DateApplied: createdAt,
		DateUpdated: createdAt,
		CreatedAt:   createdAt,
	}
}

func (s *MemoryStoreSuite) TestCreateAndFind() {
	app := s.newApplication("Acme", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, app))

	found, err := s.store.FindByID(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Equal(app.Company, found.Company)

	_, err = s.store.FindByID(s.ctx, uuid.New())
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *MemoryStoreSuite) TestUpdate() {
	app := s.newApplication("Acme", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, app))

	app.Company = "Acme Corp"
	s.Require().NoError(s.store.Update(s.ctx, app))

	found, err := s.store.FindByID(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Equal("Acme Corp", found.Company)

	missing := s.newApplication("Ghost", time.Now())
	s.Require().ErrorIs(s.store.Update(s.ctx, missing), ErrNotFound)
}

func (s *MemoryStoreSuite) TestDelete() {
	app := s.newApplication("Acme", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, app))

	s.Require().NoError(s.store.Delete(s.ctx, app.ID))
	_, err := s.store.FindByID(s.ctx, app.ID)
	s.Require().ErrorIs(err, ErrNotFound)

	// deleting again stays a clean not-found, not a crash
	s.Require().ErrorIs(s.store.Delete(s.ctx, app.ID), ErrNotFound)
}

func (s *MemoryStoreSuite) TestListPagination() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		app := s.newApplication("Company", base.Add(time.Duration(i)*time.Hour))
		s.Require().NoError(s.store.Create(s.ctx, app))
	}

	q := query.Query{Offset: 5, Limit: 5, SortBy: query.SortCreatedAt, SortOrder: query.SortDesc}
	page, err := s.store.List(s.ctx, q)
	s.Require().NoError(err)
	s.Len(page, 5)

	total, err := s.store.Count(s.ctx, q.Filter)
	s.Require().NoError(err)
	s.Equal(12, total)

	// newest first: offset 5 starts at the 6th newest
	s.Equal(base.Add(6*time.Hour), page[0].CreatedAt)

	// offset past the end yields an empty page, not an error
	far, err := s.store.List(s.ctx, query.Query{Offset: 50, Limit: 5, SortBy: query.SortCreatedAt, SortOrder: query.SortDesc})
	s.Require().NoError(err)
	s.Empty(far)
}

func (s *MemoryStoreSuite) TestListSortOrder() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	early := s.newApplication("Early", base)
	late := s.newApplication("Late", base.Add(48*time.Hour))
	s.Require().NoError(s.store.Create(s.ctx, early))
	s.Require().NoError(s.store.Create(s.ctx, late))

	asc, err := s.store.List(s.ctx, query.Query{Limit: 10, SortBy: query.SortCreatedAt, SortOrder: query.SortAsc})
	s.Require().NoError(err)
	s.Equal("Early", asc[0].Company)

	desc, err := s.store.List(s.ctx, query.Query{Limit: 10, SortBy: query.SortCreatedAt, SortOrder: query.SortDesc})
	s.Require().NoError(err)
	s.Equal("Late", desc[0].Company)
}

func (s *MemoryStoreSuite) TestListMissingSortValuesGoLast() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	withDate := s.newApplication("Scheduled", base)
	interview := base.Add(24 * time.Hour)
	withDate.InterviewDate = &interview

	without := s.newApplication("Unscheduled", base.Add(time.Hour))

	s.Require().NoError(s.store.Create(s.ctx, withDate))
	s.Require().NoError(s.store.Create(s.ctx, without))

	for _, order := range []query.SortOrder{query.SortAsc, query.SortDesc} {
		page, err := s.store.List(s.ctx, query.Query{Limit: 10, SortBy: query.SortInterviewDate, SortOrder: order})
		s.Require().NoError(err)
		s.Require().Len(page, 2)
		s.Equal("Scheduled", page[0].Company, "order %s", order)
		s.Equal("Unscheduled", page[1].Company, "order %s", order)
	}
}

func (s *MemoryStoreSuite) TestListFilters() {
	now := time.Now()
	google := s.newApplication("Google", now)
	amazon := s.newApplication("Amazon", now)
	amazon.Status = models.StatusRejected
	s.Require().NoError(s.store.Create(s.ctx, google))
	s.Require().NoError(s.store.Create(s.ctx, amazon))

	q := query.Query{
		Limit: 10, SortBy: query.SortCreatedAt, SortOrder: query.SortDesc,
		Filter: query.Filter{Company: "goo"},
	}
	page, err := s.store.List(s.ctx, q)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("Google", page[0].Company)

	total, err := s.store.Count(s.ctx, q.Filter)
	s.Require().NoError(err)
	s.Equal(1, total)

	rejected := models.StatusRejected
	byStatus, err := s.store.Count(s.ctx, query.Filter{Status: &rejected})
	s.Require().NoError(err)
	s.Equal(1, byStatus)
}

// Package query translates raw list parameters into bounded store queries.
// The sortable-field allow-list lives here, in one place, and is the only
// path from user input to an ORDER BY clause.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"jobtrack/internal/application/models"
	dErrors "jobtrack/pkg/domain-errors"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SortField is a member of the sortable-field allow-list. Anything outside
// the list falls back to createdAt; user input never reaches SQL directly.
type SortField string

const (
	SortCreatedAt     SortField = "createdAt"
	SortDateApplied   SortField = "dateApplied"
	SortInterviewDate SortField = "interviewDate"
	SortDateCompleted SortField = "dateCompleted"
)

var sortColumns = map[SortField]string{
	SortCreatedAt:     "created_at",
	SortDateApplied:   "date_applied",
	SortInterviewDate: "interview_date",
	SortDateCompleted: "date_completed",
}

// ParseSortField maps raw input onto the allow-list, falling back to
// createdAt for anything unrecognized.
func ParseSortField(raw string) SortField {
	f := SortField(raw)
	if _, ok := sortColumns[f]; ok {
		return f
	}
	return SortCreatedAt
}

// Column returns the SQL column for an allow-listed field.
func (f SortField) Column() string {
	if col, ok := sortColumns[f]; ok {
		return col
	}
	return sortColumns[SortCreatedAt]
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder returns asc for "asc" and desc for everything else.
func ParseSortOrder(raw string) SortOrder {
	if strings.EqualFold(raw, string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// Filter is the predicate applied to both the list and count queries so
// pagination metadata stays consistent with the returned page.
type Filter struct {
	Company     string
	JobPosition string
	Status      *models.ApplicationStatus
	Progress    *models.ApplicationProgress
}

// Matches implements the filter for in-memory evaluation: case-insensitive
// substring on text fields, exact match on enums.
func (f Filter) Matches(app models.JobApplication) bool {
	if f.Company != "" && !containsFold(app.Company, f.Company) {
		return false
	}
	if f.JobPosition != "" && !containsFold(app.JobPosition, f.JobPosition) {
		return false
	}
	if f.Status != nil && app.Status != *f.Status {
		return false
	}
	if f.Progress != nil && (app.Progress == nil || *app.Progress != *f.Progress) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Params are the raw, untrusted list parameters as received from the
// transport layer.
type Params struct {
	Page        string
	PageSize    string
	SortBy      string
	SortOrder   string
	Company     string
	JobPosition string
	Status      string
	Progress    string
}

// ParamsFromValues extracts list parameters from a URL query string.
func ParamsFromValues(values url.Values) Params {
	return Params{
		Page:        values.Get("page"),
		PageSize:    values.Get("pageSize"),
		SortBy:      values.Get("sortBy"),
		SortOrder:   values.Get("sortOrder"),
		Company:     values.Get("company"),
		JobPosition: values.Get("jobPosition"),
		Status:      values.Get("status"),
		Progress:    values.Get("progress"),
	}
}

// Query is a bounded, safe store query.
type Query struct {
	Offset    int
	Limit     int
	SortBy    SortField
	SortOrder SortOrder
	Filter    Filter
}

// Build validates and bounds raw parameters. Non-numeric, zero or negative
// page values fall back to defaults rather than erroring; enum filter
// values are validated strictly so bad input surfaces as a validation
// error instead of leaking into the store.
func Build(p Params) (Query, error) {
	page := parsePositive(p.Page, DefaultPage)
	pageSize := parsePositive(p.PageSize, DefaultPageSize)
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	filter := Filter{
		Company:     strings.TrimSpace(p.Company),
		JobPosition: strings.TrimSpace(p.JobPosition),
	}

	fields := dErrors.FieldErrors{}
	if raw := strings.TrimSpace(p.Status); raw != "" {
		status := models.ApplicationStatus(raw)
		if !status.IsValid() {
			fields.Add("status", "Invalid status filter")
		} else {
			filter.Status = &status
		}
	}
	if raw := strings.TrimSpace(p.Progress); raw != "" {
		progress := models.ApplicationProgress(raw)
		if !progress.IsValid() {
			fields.Add("progress", "Invalid progress filter")
		} else {
			filter.Progress = &progress
		}
	}
	if err := fields.Err(); err != nil {
		return Query{}, err
	}

	return Query{
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
		SortBy:    ParseSortField(p.SortBy),
		SortOrder: ParseSortOrder(p.SortOrder),
		Filter:    filter,
	}, nil
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

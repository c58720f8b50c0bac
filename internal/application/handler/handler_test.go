package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack/internal/application/models"
	"jobtrack/internal/application/service"
	"jobtrack/internal/application/store"
	"jobtrack/internal/platform/logger"
	"jobtrack/pkg/testutil"
)

func newRouter() chi.Router {
	log := logger.New()
	svc := service.New(store.NewInMemory(), service.WithLogger(log))
	r := chi.NewRouter()
	New(svc, log).Register(r)
	return r
}

func createBody() map[string]any {
	return map[string]any{
		"company":     "Acme",
		"jobPosition": "SWE",
		"jobLink":     "http://x.test",
		"dateApplied": "2024-01-01",
	}
}

func createApplication(t *testing.T, router http.Handler) models.JobApplication {
	t.Helper()
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/job-applications", createBody()))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	return *testutil.UnmarshalResponse[models.JobApplication](t, rr)
}

func TestCreateApplication(t *testing.T) {
	router := newRouter()

	t.Run("returns 201 with the new record", func(t *testing.T) {
		app := createApplication(t, router)
		assert.NotEqual(t, uuid.Nil, app.ID)
		assert.Equal(t, "Acme", app.Company)
		assert.Equal(t, models.StatusApplied, app.Status)
	})

	t.Run("validation errors come back per field", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/job-applications", map[string]any{}))
		envelope := testutil.AssertErrorCode(t, rr, http.StatusUnprocessableEntity, "validation_failed")
		assert.Equal(t, []string{"Company is required"}, envelope.Errors["company"])
		assert.Contains(t, envelope.Errors, "jobPosition")
		assert.Contains(t, envelope.Errors, "jobLink")
		assert.Contains(t, envelope.Errors, "dateApplied")
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/job-applications", nil)
		req.Body = http.NoBody
		rr := testutil.DoRequest(router, req)
		testutil.AssertErrorCode(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("unparseable date is a 400", func(t *testing.T) {
		body := createBody()
		body["dateApplied"] = "soonish"
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/job-applications", body))
		testutil.AssertErrorCode(t, rr, http.StatusBadRequest, "bad_request")
	})
}

func TestGetApplication(t *testing.T) {
	router := newRouter()
	app := createApplication(t, router)

	t.Run("returns the record", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/job-applications/"+app.ID.String(), nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
		fetched := testutil.UnmarshalResponse[models.JobApplication](t, rr)
		assert.Equal(t, app.ID, fetched.ID)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/job-applications/"+uuid.NewString(), nil))
		envelope := testutil.AssertErrorCode(t, rr, http.StatusNotFound, "not_found")
		assert.Equal(t, "Job application not found", envelope.Description)
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/job-applications/not-a-uuid", nil))
		testutil.AssertErrorCode(t, rr, http.StatusBadRequest, "bad_request")
	})
}

func TestUpdateApplication(t *testing.T) {
	router := newRouter()
	app := createApplication(t, router)
	path := "/api/job-applications/" + app.ID.String()

	t.Run("moves through the lifecycle", func(t *testing.T) {
		body := createBody()
		body["status"] = "IN_PROGRESS"
		body["progress"] = "TECHNICAL_INTERVIEW"
		body["interviewDate"] = "2024-02-01"

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPut, path, body))
		testutil.AssertStatus(t, rr, http.StatusOK)

		updated := testutil.UnmarshalResponse[models.JobApplication](t, rr)
		assert.Equal(t, models.StatusInProgress, updated.Status)
		require.NotNil(t, updated.Progress)
		assert.Equal(t, models.ProgressTechnicalInterview, *updated.Progress)
	})

	t.Run("rejects an illegal transition", func(t *testing.T) {
		body := createBody()
		body["status"] = "APPLIED"

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPut, path, body))
		envelope := testutil.AssertErrorCode(t, rr, http.StatusUnprocessableEntity, "validation_failed")
		assert.Equal(t, []string{"Cannot change status from In Progress to Applied"}, envelope.Errors["status"])
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPut, "/api/job-applications/"+uuid.NewString(), createBody()))
		testutil.AssertErrorCode(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPut, path, nil)
		req.Body = http.NoBody
		rr := testutil.DoRequest(router, req)
		testutil.AssertErrorCode(t, rr, http.StatusBadRequest, "bad_request")
	})
}

func TestDeleteApplication(t *testing.T) {
	router := newRouter()
	app := createApplication(t, router)
	path := "/api/job-applications/" + app.ID.String()

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodDelete, path, nil))
	testutil.AssertStatus(t, rr, http.StatusNoContent)
	assert.Empty(t, rr.Body.Bytes())

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, path, nil))
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodDelete, path, nil))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestListApplications(t *testing.T) {
	router := newRouter()
	for i := 0; i < 12; i++ {
		body := createBody()
		if i < 4 {
			body["company"] = fmt.Sprintf("Google %d", i)
		}
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/job-applications", body))
		testutil.AssertStatus(t, rr, http.StatusCreated)
	}

	type page struct {
		Data  []models.JobApplication `json:"data"`
		Total int                     `json:"total"`
	}

	list := func(t *testing.T, rawQuery string) page {
		t.Helper()
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/job-applications"+rawQuery, nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
		return *testutil.UnmarshalResponse[page](t, rr)
	}

	t.Run("default page size is ten", func(t *testing.T) {
		result := list(t, "")
		assert.Len(t, result.Data, 10)
		assert.Equal(t, 12, result.Total)
	})

	t.Run("pagination walks the collection", func(t *testing.T) {
		result := list(t, "?page=2&pageSize=10")
		assert.Len(t, result.Data, 2)
		assert.Equal(t, 12, result.Total)
	})

	t.Run("company filter narrows both data and total", func(t *testing.T) {
		result := list(t, "?company=goo")
		assert.Len(t, result.Data, 4)
		assert.Equal(t, 4, result.Total)
		for _, app := range result.Data {
			assert.True(t, strings.HasPrefix(app.Company, "Google"))
		}
	})

	t.Run("invalid filter enum is a 422", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/job-applications?status=WISHFUL", nil))
		envelope := testutil.AssertErrorCode(t, rr, http.StatusUnprocessableEntity, "validation_failed")
		assert.Contains(t, envelope.Errors, "status")
	})

	t.Run("bogus sort field falls back instead of erroring", func(t *testing.T) {
		result := list(t, "?sortBy=company")
		assert.Len(t, result.Data, 10)
	})
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"records_portal_backend/internal/search/domain"
	"records_portal_backend/internal/search/searcher"
	"records_portal_backend/internal/search/service"
	"records_portal_backend/internal/search/transport"
	"records_portal_backend/platform/httpkit"
	"records_portal_backend/platform/logger"
	"records_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	kind    domain.Kind
	results []domain.Result
	err     error
}

func (s stubSearcher) Kind() domain.Kind { return s.kind }

func (s stubSearcher) Search(context.Context, string, domain.Filters, domain.DateRange) ([]domain.Result, error) {
	return s.results, s.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T, roles []string, searchers ...searcher.Searcher) *gin.Engine {
	t.Helper()

	val := validator.New()
	require.NoError(t, transport.RegisterValidations(val))
	svc := service.New(searchers, service.NewRoleAuthorizer(), service.Options{}, logger.Discard())
	h := New(svc, val)

	r := gin.New()
	group := r.Group("/search")
	if roles != nil {
		group.Use(func(c *gin.Context) {
			c.Set(httpkit.ContextUserIDKey, uuid.New())
			c.Set(httpkit.ContextRolesKey, roles)
			c.Next()
		})
	}
	h.RegisterRoutes(group)
	return r
}

func towerSearchers() []searcher.Searcher {
	created := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return []searcher.Searcher{
		stubSearcher{kind: domain.KindProject, results: []domain.Result{{
			ID: "p1", Kind: domain.KindProject, Title: "Downtown Corporate Tower",
			Metadata:      &domain.ProjectMetadata{Status: "active", Stage: "design"},
			MatchedFields: []string{domain.FieldTitle}, CreatedAt: created,
		}}},
		stubSearcher{kind: domain.KindCompany, results: []domain.Result{{
			ID: "co1", Kind: domain.KindCompany, Title: "Tower Supply Co",
			Metadata:      &domain.CompanyMetadata{Type: "supplier_vendor"},
			MatchedFields: []string{domain.FieldName}, CreatedAt: created,
		}}},
	}
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearchPostReturnsResults(t *testing.T) {
	r := newEngine(t, []string{"staff"}, towerSearchers()...)

	w := doJSON(r, http.MethodPost, "/search", transport.SearchRequest{Query: "Tower"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp transport.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalCount)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "p1", resp.Results[0].ID)
	assert.Equal(t, 3, resp.Results[0].RelevanceScore)
	assert.Equal(t, []string{"name"}, resp.Results[1].MatchedFields)
}

func TestSearchGetParsesQueryString(t *testing.T) {
	r := newEngine(t, []string{"readonly"}, towerSearchers()...)

	w := doJSON(r, http.MethodGet, "/search?q=Tower&types=companies&limit=1", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp transport.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, "company", resp.Results[0].Type)
	assert.Equal(t, []string{"companies"}, resp.Filters.EntityTypes)
}

func TestSearchValidationErrors(t *testing.T) {
	r := newEngine(t, []string{"staff"}, towerSearchers()...)

	w := doJSON(r, http.MethodPost, "/search", transport.SearchRequest{Query: "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Search query is required")

	w = doJSON(r, http.MethodPost, "/search", transport.SearchRequest{
		Query:   "x",
		Filters: &transport.SearchFiltersRequest{DateFrom: "2024-06-01", DateTo: "2024-06-01"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Date 'to' must be after date 'from'")

	w = doJSON(r, http.MethodGet, "/search?q=x&types=users", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid entity type")

	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewBufferString("{"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), msgInvalidRequest)
}

func intPtr(v int) *int { return &v }

func TestSearchBindingErrorsUseDisplayMessages(t *testing.T) {
	r := newEngine(t, []string{"staff"}, towerSearchers()...)

	cases := []struct {
		name    string
		req     transport.SearchRequest
		message string
		details map[string]interface{}
	}{
		{
			name:    "sort order",
			req:     transport.SearchRequest{Query: "x", Options: &transport.SearchOptionsRequest{SortOrder: "up"}},
			message: "Sort order must be 'asc' or 'desc'",
			details: map[string]interface{}{"sortOrder": "up"},
		},
		{
			name:    "sort field",
			req:     transport.SearchRequest{Query: "x", Options: &transport.SearchOptionsRequest{SortBy: "size"}},
			message: "Invalid sort field",
			details: map[string]interface{}{"sortBy": "size"},
		},
		{
			name:    "limit too large",
			req:     transport.SearchRequest{Query: "x", Options: &transport.SearchOptionsRequest{Limit: intPtr(500)}},
			message: "Limit must be between 1 and 100",
		},
		{
			name:    "zero limit",
			req:     transport.SearchRequest{Query: "x", Options: &transport.SearchOptionsRequest{Limit: intPtr(0)}},
			message: "Limit must be between 1 and 100",
		},
		{
			name:    "negative offset",
			req:     transport.SearchRequest{Query: "x", Options: &transport.SearchOptionsRequest{Offset: intPtr(-1)}},
			message: "Offset must be 0 or greater",
		},
		{
			name:    "entity type",
			req:     transport.SearchRequest{Query: "x", Filters: &transport.SearchFiltersRequest{EntityTypes: []string{"people"}}},
			message: "Invalid entity type",
			details: map[string]interface{}{"entityTypes": "people"},
		},
		{
			name:    "filter value",
			req:     transport.SearchRequest{Query: "x", Filters: &transport.SearchFiltersRequest{ContactRoles: []string{"ceo"}}},
			message: "Invalid filter value",
			details: map[string]interface{}{"contactRoles": "ceo"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/search", tc.req)

			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			var body httpkit.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.message, body.Error)
			assert.NotContains(t, w.Body.String(), "Error:Field validation")
			if tc.details != nil {
				assert.Equal(t, tc.details, body.Details)
			}
		})
	}
}

func TestSearchRequiresIdentityAndRole(t *testing.T) {
	w := doJSON(newEngine(t, nil, towerSearchers()...), http.MethodPost, "/search", transport.SearchRequest{Query: "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(newEngine(t, []string{"guest"}, towerSearchers()...), http.MethodPost, "/search", transport.SearchRequest{Query: "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSearchUpstreamFailureMapsToBadGateway(t *testing.T) {
	r := newEngine(t, []string{"admin"}, stubSearcher{kind: domain.KindDocument, err: errors.New("db down")})

	w := doJSON(r, http.MethodPost, "/search", transport.SearchRequest{Query: "x"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "search failed for documents")
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestLoadMore(t *testing.T) {
	r := newEngine(t, []string{"staff"}, towerSearchers()...)
	offset := 1

	w := doJSON(r, http.MethodPost, "/search/more", transport.LoadMoreRequest{
		Request: transport.SearchRequest{Query: "Tower"},
		Offset:  &offset,
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp transport.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "co1", resp.Results[0].ID)
	assert.False(t, resp.HasMore)

	w = doJSON(r, http.MethodPost, "/search/more", transport.LoadMoreRequest{Request: transport.SearchRequest{Query: "Tower"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Offset is required")

	w = doJSON(r, http.MethodPost, "/search/more", transport.LoadMoreRequest{
		Request: transport.SearchRequest{Query: "Tower"},
		Offset:  intPtr(-5),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Offset must be 0 or greater")
}

func TestAvailableFilters(t *testing.T) {
	r := newEngine(t, []string{"readonly"})

	w := doJSON(r, http.MethodGet, "/search/filters", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var catalog transport.FilterCatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	assert.Equal(t, []string{"planning", "active", "on_hold", "completed"}, catalog.ProjectStatuses)
	assert.Equal(t, []string{"developer", "contractor", "architect_consultant", "supplier_vendor"}, catalog.CompanyTypes)
}

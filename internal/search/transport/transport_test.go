package transport

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"records_portal_backend/internal/search/domain"
	"records_portal_backend/platform/apperr"
	"records_portal_backend/platform/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validator {
	t.Helper()
	val := validator.New()
	require.NoError(t, RegisterValidations(val))
	return val
}

func intPtr(v int) *int { return &v }

func TestSearchRequestValidation(t *testing.T) {
	val := newValidator(t)

	ok := SearchRequest{
		Query:   "tower",
		Filters: &SearchFiltersRequest{EntityTypes: []string{"projects", "all"}, ProjectStatus: []string{"active"}},
		Options: &SearchOptionsRequest{SortBy: "updated_at", SortOrder: "asc", Limit: intPtr(100), Offset: intPtr(0)},
	}
	assert.NoError(t, val.Struct(ok))

	cases := map[string]SearchRequest{
		"unknown entity":  {Query: "x", Filters: &SearchFiltersRequest{EntityTypes: []string{"users"}}},
		"unknown status":  {Query: "x", Filters: &SearchFiltersRequest{ProjectStatus: []string{"archived"}}},
		"unknown role":    {Query: "x", Filters: &SearchFiltersRequest{ContactRoles: []string{"ceo"}}},
		"unknown sort":    {Query: "x", Options: &SearchOptionsRequest{SortBy: "size"}},
		"bad order":       {Query: "x", Options: &SearchOptionsRequest{SortOrder: "up"}},
		"zero limit":      {Query: "x", Options: &SearchOptionsRequest{Limit: intPtr(0)}},
		"limit too large": {Query: "x", Options: &SearchOptionsRequest{Limit: intPtr(101)}},
		"negative offset": {Query: "x", Options: &SearchOptionsRequest{Offset: intPtr(-1)}},
	}
	for name, req := range cases {
		assert.Error(t, val.Struct(req), name)
	}
}

func TestValidationErrorUsesDisplayMessages(t *testing.T) {
	val := newValidator(t)

	cases := []struct {
		req     interface{}
		message string
	}{
		{SearchRequest{Query: "x", Filters: &SearchFiltersRequest{EntityTypes: []string{"users"}}}, domain.MsgInvalidEntity},
		{SearchRequest{Query: "x", Filters: &SearchFiltersRequest{DocumentTypes: []string{"memo"}}}, domain.MsgInvalidFilter},
		{SearchRequest{Query: "x", Options: &SearchOptionsRequest{SortBy: "size"}}, domain.MsgInvalidSort},
		{SearchRequest{Query: "x", Options: &SearchOptionsRequest{SortOrder: "up"}}, domain.MsgInvalidOrder},
		{SearchRequest{Query: "x", Options: &SearchOptionsRequest{Limit: intPtr(101)}}, domain.MsgInvalidLimit},
		{SearchRequest{Query: "x", Options: &SearchOptionsRequest{Offset: intPtr(-1)}}, domain.MsgInvalidOffset},
		{LoadMoreRequest{Request: SearchRequest{Query: "x"}}, domain.MsgOffsetRequired},
	}
	for _, tc := range cases {
		err := ValidationError(val.Struct(tc.req))

		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperr.KindValidation, appErr.Kind)
		assert.Equal(t, tc.message, appErr.Message)
	}

	var appErr *apperr.Error
	require.ErrorAs(t, ValidationError(errors.New("boom")), &appErr)
	assert.Equal(t, domain.MsgInvalidRequest, appErr.Message)
}

func TestLoadMoreRequiresOffset(t *testing.T) {
	val := newValidator(t)

	assert.Error(t, val.Struct(LoadMoreRequest{Request: SearchRequest{Query: "x"}}))
	assert.NoError(t, val.Struct(LoadMoreRequest{Request: SearchRequest{Query: "x"}, Offset: intPtr(20)}))
}

func TestQueryParamsToSearchRequest(t *testing.T) {
	params := SearchQueryParams{
		Query:         "tower",
		Types:         "projects, companies,",
		SortBy:        "name",
		Limit:         intPtr(5),
		DateFrom:      "2024-01-01",
		CompanyTypes:  "developer",
		DocumentTypes: "",
	}

	req := params.ToSearchRequest()

	require.NotNil(t, req.Filters)
	assert.Equal(t, []string{"projects", "companies"}, req.Filters.EntityTypes)
	assert.Equal(t, []string{"developer"}, req.Filters.CompanyTypes)
	assert.Nil(t, req.Filters.DocumentTypes)
	require.NotNil(t, req.Options)
	assert.Equal(t, 5, *req.Options.Limit)

	bare := SearchQueryParams{Query: "x"}.ToSearchRequest()
	assert.Nil(t, bare.Filters)
	assert.Nil(t, bare.Options)
}

func TestToDomain(t *testing.T) {
	req := SearchRequest{
		Query:   "tower",
		Filters: &SearchFiltersRequest{EntityTypes: []string{"contacts"}, DateTo: "2024-02-01"},
		Options: &SearchOptionsRequest{SortBy: "title", Offset: intPtr(10)},
	}.ToDomain()

	assert.Equal(t, []domain.EntityType{domain.EntityContacts}, req.Filters.EntityTypes)
	assert.Equal(t, "2024-02-01", req.Filters.DateTo)
	assert.Equal(t, domain.SortTitle, req.Options.SortBy)
	assert.Equal(t, 10, *req.Options.Offset)
	assert.Nil(t, req.Options.Limit)
}

func TestFromDomainIncludesScoreAndMetadata(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	resp := FromDomain(domain.Response{
		Results: []domain.Result{{
			ID:            "p1",
			Kind:          domain.KindProject,
			Title:         "Downtown Corporate Tower",
			Subtitle:      "active • construction",
			Metadata:      &domain.ProjectMetadata{Status: "active", Stage: "construction"},
			MatchedFields: []string{domain.FieldTitle},
			CreatedAt:     created,
		}},
		TotalCount:     1,
		Query:          "Tower",
		AppliedFilters: domain.Filters{EntityTypes: []domain.EntityType{domain.EntityProjects}},
	})

	require.Len(t, resp.Results, 1)
	assert.Equal(t, 3, resp.Results[0].RelevanceScore)
	assert.Equal(t, "project", resp.Results[0].Type)
	assert.Equal(t, []string{"projects"}, resp.Filters.EntityTypes)

	raw, err := json.Marshal(resp.Results[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "p1",
		"type": "project",
		"title": "Downtown Corporate Tower",
		"subtitle": "active • construction",
		"metadata": {"status": "active", "stage": "construction", "budget": null, "address": null, "city": null, "createdBy": null},
		"matchedFields": ["title"],
		"relevanceScore": 3,
		"createdAt": "2024-05-01T09:00:00Z"
	}`, string(raw))
}

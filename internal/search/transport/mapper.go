package transport

import (
	"strings"

	"records_portal_backend/internal/search/domain"
)

// ToDomain converts the request body to a domain request.
func (r SearchRequest) ToDomain() domain.Request {
	req := domain.Request{Query: r.Query}
	if r.Filters != nil {
		f := r.Filters.toDomain()
		req.Filters = &f
	}
	if r.Options != nil {
		req.Options = &domain.Options{
			SortBy:    domain.SortField(r.Options.SortBy),
			SortOrder: domain.SortOrder(r.Options.SortOrder),
			Limit:     r.Options.Limit,
			Offset:    r.Options.Offset,
		}
	}
	return req
}

func (f SearchFiltersRequest) toDomain() domain.Filters {
	types := make([]domain.EntityType, 0, len(f.EntityTypes))
	for _, t := range f.EntityTypes {
		types = append(types, domain.EntityType(t))
	}
	if len(types) == 0 {
		types = nil
	}
	return domain.Filters{
		EntityTypes:   types,
		DateFrom:      f.DateFrom,
		DateTo:        f.DateTo,
		ProjectStatus: f.ProjectStatus,
		ProjectStage:  f.ProjectStage,
		CompanyTypes:  f.CompanyTypes,
		ContactRoles:  f.ContactRoles,
		DocumentTypes: f.DocumentTypes,
	}
}

// ToSearchRequest converts query-string parameters to a request body.
func (p SearchQueryParams) ToSearchRequest() SearchRequest {
	req := SearchRequest{Query: p.Query}

	filters := SearchFiltersRequest{
		EntityTypes:   SplitList(p.Types),
		DateFrom:      strings.TrimSpace(p.DateFrom),
		DateTo:        strings.TrimSpace(p.DateTo),
		ProjectStatus: SplitList(p.ProjectStatus),
		ProjectStage:  SplitList(p.ProjectStage),
		CompanyTypes:  SplitList(p.CompanyTypes),
		ContactRoles:  SplitList(p.ContactRoles),
		DocumentTypes: SplitList(p.DocumentTypes),
	}
	if !filters.empty() {
		req.Filters = &filters
	}

	if p.SortBy != "" || p.SortOrder != "" || p.Limit != nil || p.Offset != nil {
		req.Options = &SearchOptionsRequest{
			SortBy:    p.SortBy,
			SortOrder: p.SortOrder,
			Limit:     p.Limit,
			Offset:    p.Offset,
		}
	}
	return req
}

func (f SearchFiltersRequest) empty() bool {
	return len(f.EntityTypes) == 0 && f.DateFrom == "" && f.DateTo == "" &&
		len(f.ProjectStatus) == 0 && len(f.ProjectStage) == 0 && len(f.CompanyTypes) == 0 &&
		len(f.ContactRoles) == 0 && len(f.DocumentTypes) == 0
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// FromDomain converts a domain response.
func FromDomain(resp domain.Response) SearchResponse {
	results := make([]SearchResultResponse, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = SearchResultResponse{
			ID:             r.ID,
			Type:           string(r.Kind),
			Title:          r.Title,
			Description:    r.Description,
			Subtitle:       r.Subtitle,
			Metadata:       r.Metadata,
			MatchedFields:  r.MatchedFields,
			RelevanceScore: domain.Score(r),
			CreatedAt:      r.CreatedAt,
			UpdatedAt:      r.UpdatedAt,
		}
	}

	f := resp.AppliedFilters
	types := make([]string, len(f.EntityTypes))
	for i, t := range f.EntityTypes {
		types[i] = string(t)
	}
	if len(types) == 0 {
		types = nil
	}

	return SearchResponse{
		Results:    results,
		TotalCount: resp.TotalCount,
		HasMore:    resp.HasMore,
		Query:      resp.Query,
		Filters: SearchFiltersRequest{
			EntityTypes:   types,
			DateFrom:      f.DateFrom,
			DateTo:        f.DateTo,
			ProjectStatus: f.ProjectStatus,
			ProjectStage:  f.ProjectStage,
			CompanyTypes:  f.CompanyTypes,
			ContactRoles:  f.ContactRoles,
			DocumentTypes: f.DocumentTypes,
		},
		Warnings: resp.Warnings,
	}
}

// CatalogFromDomain converts the filter catalog.
func CatalogFromDomain(c domain.FilterCatalog) FilterCatalogResponse {
	return FilterCatalogResponse{
		ProjectStatuses: c.ProjectStatuses,
		ProjectStages:   c.ProjectStages,
		CompanyTypes:    c.CompanyTypes,
		ContactRoles:    c.ContactRoles,
		DocumentTypes:   c.DocumentTypes,
	}
}

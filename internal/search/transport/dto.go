package transport

import "time"

// SearchFiltersRequest carries the structured filters. Dates accept RFC 3339
// timestamps or YYYY-MM-DD.
type SearchFiltersRequest struct {
	EntityTypes   []string `json:"entityTypes,omitempty" validate:"omitempty,dive,entitytype"`
	DateFrom      string   `json:"dateFrom,omitempty"`
	DateTo        string   `json:"dateTo,omitempty"`
	ProjectStatus []string `json:"projectStatus,omitempty" validate:"omitempty,dive,projectstatus"`
	ProjectStage  []string `json:"projectStage,omitempty" validate:"omitempty,dive,projectstage"`
	CompanyTypes  []string `json:"companyTypes,omitempty" validate:"omitempty,dive,companytype"`
	ContactRoles  []string `json:"contactRoles,omitempty" validate:"omitempty,dive,contactrole"`
	DocumentTypes []string `json:"documentTypes,omitempty" validate:"omitempty,dive,documenttype"`
}

// SearchOptionsRequest controls ordering and paging.
type SearchOptionsRequest struct {
	SortBy    string `json:"sortBy,omitempty" validate:"omitempty,searchsort"`
	SortOrder string `json:"sortOrder,omitempty" validate:"omitempty,oneof=asc desc"`
	Limit     *int   `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
	Offset    *int   `json:"offset,omitempty" validate:"omitempty,min=0"`
}

// SearchRequest is the body of POST /search. The query itself is checked by
// the service so its messages reach the caller verbatim.
type SearchRequest struct {
	Query   string                `json:"query"`
	Filters *SearchFiltersRequest `json:"filters,omitempty"`
	Options *SearchOptionsRequest `json:"options,omitempty"`
}

// SearchQueryParams is the query-string form of SearchRequest. List values
// are comma-separated.
type SearchQueryParams struct {
	Query         string `form:"q"`
	Types         string `form:"types"`
	SortBy        string `form:"sortBy"`
	SortOrder     string `form:"sortOrder"`
	Limit         *int   `form:"limit"`
	Offset        *int   `form:"offset"`
	DateFrom      string `form:"dateFrom"`
	DateTo        string `form:"dateTo"`
	ProjectStatus string `form:"projectStatus"`
	ProjectStage  string `form:"projectStage"`
	CompanyTypes  string `form:"companyTypes"`
	ContactRoles  string `form:"contactRoles"`
	DocumentTypes string `form:"documentTypes"`
}

// LoadMoreRequest asks for another page of a previous search.
type LoadMoreRequest struct {
	Request SearchRequest `json:"request"`
	Offset  *int          `json:"offset" validate:"required,min=0"`
}

// SearchResultResponse is one search hit. Metadata is the kind-specific
// payload.
type SearchResultResponse struct {
	ID             string      `json:"id"`
	Type           string      `json:"type"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	Subtitle       string      `json:"subtitle,omitempty"`
	Metadata       interface{} `json:"metadata"`
	MatchedFields  []string    `json:"matchedFields"`
	RelevanceScore int         `json:"relevanceScore"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      *time.Time  `json:"updatedAt,omitempty"`
}

// SearchResponse is one page of results.
type SearchResponse struct {
	Results    []SearchResultResponse `json:"results"`
	TotalCount int                    `json:"totalCount"`
	HasMore    bool                   `json:"hasMore"`
	Query      string                 `json:"query"`
	Filters    SearchFiltersRequest   `json:"filters"`
	Warnings   []string               `json:"warnings,omitempty"`
}

// FilterCatalogResponse lists the legal filter values.
type FilterCatalogResponse struct {
	ProjectStatuses []string `json:"projectStatuses"`
	ProjectStages   []string `json:"projectStages"`
	CompanyTypes    []string `json:"companyTypes"`
	ContactRoles    []string `json:"contactRoles"`
	DocumentTypes   []string `json:"documentTypes"`
}

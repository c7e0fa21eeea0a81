package domain

import "time"

// Search limits and defaults.
const (
	MaxQueryLength = 500
	DefaultLimit   = 20
	MaxLimit       = 100
)

// SortField selects the comparator used by Sort.
type SortField string

const (
	SortRelevance SortField = "relevance"
	SortCreatedAt SortField = "created_at"
	SortUpdatedAt SortField = "updated_at"
	SortName      SortField = "name"
	SortTitle     SortField = "title"
)

// SortFields lists the accepted sort fields.
var SortFields = []SortField{SortRelevance, SortCreatedAt, SortUpdatedAt, SortName, SortTitle}

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filters is the caller's structured filter selection. Dates are kept as
// supplied so they can be echoed back verbatim; the coordinator parses them.
type Filters struct {
	EntityTypes   []EntityType
	DateFrom      string
	DateTo        string
	ProjectStatus []string
	ProjectStage  []string
	CompanyTypes  []string
	ContactRoles  []string
	DocumentTypes []string
}

// Options controls ordering and paging. Nil fields take defaults.
type Options struct {
	SortBy    SortField
	SortOrder SortOrder
	Limit     *int
	Offset    *int
}

// Request is one federated search call.
type Request struct {
	Query   string
	Filters *Filters
	Options *Options
}

// Response is one page of a federated search.
type Response struct {
	Results        []Result
	TotalCount     int
	HasMore        bool
	Query          string
	AppliedFilters Filters
	// Warnings names entity kinds dropped in partial-results mode.
	Warnings []string
}

// DateRange bounds createdAt inclusively. Nil bounds are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

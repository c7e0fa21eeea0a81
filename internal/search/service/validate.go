package service

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"records_portal_backend/internal/search/domain"
	"records_portal_backend/platform/apperr"
)

const (
	msgQueryRequired  = domain.MsgQueryRequired
	msgQueryTooLong   = domain.MsgQueryTooLong
	msgDateOrder      = domain.MsgDateOrder
	msgInvalidFrom    = domain.MsgInvalidFrom
	msgInvalidTo      = domain.MsgInvalidTo
	msgInvalidLimit   = domain.MsgInvalidLimit
	msgInvalidOffset  = domain.MsgInvalidOffset
	msgInvalidSort    = domain.MsgInvalidSort
	msgInvalidOrder   = domain.MsgInvalidOrder
	msgInvalidEntity  = domain.MsgInvalidEntity
	msgInvalidFilter  = domain.MsgInvalidFilter
	dateOnlyLayout    = "2006-01-02"
	opValidateRequest = "search.validate"
)

// plan is a validated request ready to execute.
type plan struct {
	query   string
	filters domain.Filters
	dates   domain.DateRange
	kinds   []domain.Kind
	sortBy  domain.SortField
	order   domain.SortOrder
	limit   int
	offset  int
}

func validate(req domain.Request) (plan, error) {
	var p plan

	p.query = strings.TrimSpace(req.Query)
	if p.query == "" {
		return p, invalid(msgQueryRequired)
	}
	if utf8.RuneCountInString(p.query) > domain.MaxQueryLength {
		return p, invalid(msgQueryTooLong)
	}

	if req.Filters != nil {
		p.filters = *req.Filters
	}
	if err := validateFilters(p.filters); err != nil {
		return p, err
	}

	dates, err := parseDateRange(p.filters.DateFrom, p.filters.DateTo)
	if err != nil {
		return p, err
	}
	p.dates = dates
	p.kinds = domain.ResolveKinds(p.filters.EntityTypes)

	p.sortBy, p.order, p.limit, p.offset = domain.SortRelevance, domain.SortDesc, domain.DefaultLimit, 0
	if opts := req.Options; opts != nil {
		if opts.SortBy != "" {
			if !slices.Contains(domain.SortFields, opts.SortBy) {
				return p, invalid(msgInvalidSort)
			}
			p.sortBy = opts.SortBy
		}
		if opts.SortOrder != "" {
			if opts.SortOrder != domain.SortAsc && opts.SortOrder != domain.SortDesc {
				return p, invalid(msgInvalidOrder)
			}
			p.order = opts.SortOrder
		}
		if opts.Limit != nil {
			if *opts.Limit < 1 || *opts.Limit > domain.MaxLimit {
				return p, invalid(msgInvalidLimit)
			}
			p.limit = *opts.Limit
		}
		if opts.Offset != nil {
			if *opts.Offset < 0 {
				return p, invalid(msgInvalidOffset)
			}
			p.offset = *opts.Offset
		}
	}

	return p, nil
}

func validateFilters(f domain.Filters) error {
	for _, t := range f.EntityTypes {
		if !t.Valid() {
			return invalid(msgInvalidEntity).WithDetails(map[string]string{"entityTypes": string(t)})
		}
	}

	checks := []struct {
		field   string
		values  []string
		allowed []string
	}{
		{"projectStatus", f.ProjectStatus, domain.ProjectStatuses},
		{"projectStage", f.ProjectStage, domain.ProjectStages},
		{"companyTypes", f.CompanyTypes, domain.CompanyTypes},
		{"contactRoles", f.ContactRoles, domain.ContactRoles},
		{"documentTypes", f.DocumentTypes, domain.DocumentTypes},
	}
	for _, c := range checks {
		for _, v := range c.values {
			if !slices.Contains(c.allowed, v) {
				return invalid(msgInvalidFilter).WithDetails(map[string]string{c.field: v})
			}
		}
	}
	return nil
}

// parseDateRange accepts RFC 3339 timestamps or calendar dates (midnight UTC).
// Both bounds together must be strictly ordered.
func parseDateRange(from, to string) (domain.DateRange, error) {
	var r domain.DateRange

	if from != "" {
		t, ok := parseDate(from)
		if !ok {
			return r, invalid(msgInvalidFrom)
		}
		r.From = &t
	}
	if to != "" {
		t, ok := parseDate(to)
		if !ok {
			return r, invalid(msgInvalidTo)
		}
		r.To = &t
	}
	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return r, invalid(msgDateOrder)
	}
	return r, nil
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

func invalid(message string) *apperr.Error {
	return apperr.Validation(message).WithOp(opValidateRequest)
}

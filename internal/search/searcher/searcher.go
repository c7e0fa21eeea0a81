// Package searcher adapts the per-kind record stores to normalized search
// results. Each searcher re-checks every predicate on what its store returns.
package searcher

import (
	"context"
	"strings"

	"records_portal_backend/internal/search/domain"
	"records_portal_backend/internal/search/repository"
	"records_portal_backend/platform/sanitize"
)

const subtitleSeparator = " • "

// Searcher finds the records of one entity kind matching a query.
type Searcher interface {
	Kind() domain.Kind
	Search(ctx context.Context, query string, filters domain.Filters, dates domain.DateRange) ([]domain.Result, error)
}

// Stores bundles the record stores backing the searchers.
type Stores struct {
	Projects  repository.ProjectStore
	Contacts  repository.ContactStore
	Companies repository.CompanyStore
	Documents repository.DocumentStore
}

// NewAll builds one searcher per kind, in merge order. phoneRegion is the
// default region used to normalize contact phone numbers.
func NewAll(stores Stores, phoneRegion string) []Searcher {
	return []Searcher{
		NewProjectSearcher(stores.Projects),
		NewContactSearcher(stores.Contacts, phoneRegion),
		NewCompanySearcher(stores.Companies),
		NewDocumentSearcher(stores.Documents),
	}
}

func subtitle(parts ...*string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != nil && *p != "" {
			kept = append(kept, *p)
		}
	}
	return strings.Join(kept, subtitleSeparator)
}

// displayText sanitizes free text for listings. Matching runs against the
// same text so a matched field is always visible in the result.
func displayText(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitize.Text(*s)
	if clean == "" {
		return nil
	}
	return &clean
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}

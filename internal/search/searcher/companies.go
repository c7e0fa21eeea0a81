package searcher

import (
	"context"
	"fmt"

	"records_portal_backend/internal/search/domain"
	"records_portal_backend/internal/search/repository"
)

// CompanySearcher searches companies.
type CompanySearcher struct {
	store repository.CompanyStore
}

// NewCompanySearcher creates a company searcher.
func NewCompanySearcher(store repository.CompanyStore) *CompanySearcher {
	return &CompanySearcher{store: store}
}

func (s *CompanySearcher) Kind() domain.Kind { return domain.KindCompany }

func (s *CompanySearcher) Search(ctx context.Context, query string, filters domain.Filters, dates domain.DateRange) ([]domain.Result, error) {
	records, err := s.store.FindMatching(ctx, query, repository.CompanyFilter{
		Types: filters.CompanyTypes,
		Dates: dates,
	})
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}

	results := make([]domain.Result, 0, len(records))
	for _, r := range records {
		if !domain.Allowed(filters.CompanyTypes, r.Type) || !dates.Contains(r.CreatedAt) {
			continue
		}
		description := displayText(r.Description)
		matched := domain.MatchFields(query,
			domain.Text(domain.FieldName, r.Name),
			domain.Optional(domain.FieldDescription, description),
			domain.Optional(domain.FieldWebsite, r.Website),
			domain.Optional(domain.FieldEmail, r.Email),
			domain.Optional(domain.FieldAddress, r.Address),
			domain.Optional(domain.FieldCity, r.City),
		)
		if len(matched) == 0 {
			continue
		}

		results = append(results, domain.Result{
			ID:          r.ID,
			Kind:        domain.KindCompany,
			Title:       r.Name,
			Description: deref(description),
			Subtitle:    subtitle(&r.Type, r.City),
			Metadata: &domain.CompanyMetadata{
				Type:    r.Type,
				Website: r.Website,
				Email:   r.Email,
				Phone:   r.Phone,
				Address: r.Address,
				City:    r.City,
				State:   r.State,
				Country: r.Country,
			},
			MatchedFields: matched,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
		})
	}
	return results, nil
}

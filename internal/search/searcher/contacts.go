package searcher

import (
	"context"
	"fmt"

	"records_portal_backend/internal/search/domain"
	"records_portal_backend/internal/search/repository"
	"records_portal_backend/platform/phone"
)

// ContactSearcher searches contacts, including their owning company's name.
type ContactSearcher struct {
	store  repository.ContactStore
	region string
}

// NewContactSearcher creates a contact searcher.
func NewContactSearcher(store repository.ContactStore, phoneRegion string) *ContactSearcher {
	return &ContactSearcher{store: store, region: phoneRegion}
}

func (s *ContactSearcher) Kind() domain.Kind { return domain.KindContact }

func (s *ContactSearcher) Search(ctx context.Context, query string, filters domain.Filters, dates domain.DateRange) ([]domain.Result, error) {
	records, err := s.store.FindMatching(ctx, query, repository.ContactFilter{
		Roles: filters.ContactRoles,
		Dates: dates,
	})
	if err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}

	results := make([]domain.Result, 0, len(records))
	for _, r := range records {
		if !domain.Allowed(filters.ContactRoles, r.Role) || !dates.Contains(r.CreatedAt) {
			continue
		}
		matched := domain.MatchFields(query,
			domain.Text(domain.FieldName, r.Name),
			domain.Text(domain.FieldEmail, r.Email),
			domain.Optional(domain.FieldPhone, r.Phone),
			domain.Optional(domain.FieldTitle, r.Title),
			domain.Optional(domain.FieldDepartment, r.Department),
			domain.Optional(domain.FieldCompany, r.CompanyName),
		)
		if len(matched) == 0 {
			continue
		}

		results = append(results, domain.Result{
			ID:          r.ID,
			Kind:        domain.KindContact,
			Title:       r.Name,
			Description: r.Email,
			Subtitle:    subtitle(&r.Role, r.Title, r.CompanyName),
			Metadata: &domain.ContactMetadata{
				Email:       r.Email,
				Phone:       r.Phone,
				PhoneE164:   s.normalizePhone(r.Phone),
				Role:        r.Role,
				Title:       r.Title,
				Department:  r.Department,
				CompanyID:   r.CompanyID,
				CompanyName: r.CompanyName,
				CompanyType: r.CompanyType,
			},
			MatchedFields: matched,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
		})
	}
	return results, nil
}

func (s *ContactSearcher) normalizePhone(raw *string) *string {
	if raw == nil {
		return nil
	}
	if e164 := phone.NormalizeE164(*raw, s.region); e164 != "" {
		return &e164
	}
	return nil
}

package searcher

import (
	"context"
	"fmt"

	"records_portal_backend/internal/search/domain"
	"records_portal_backend/internal/search/repository"
)

// ProjectSearcher searches projects.
type ProjectSearcher struct {
	store repository.ProjectStore
}

// NewProjectSearcher creates a project searcher.
func NewProjectSearcher(store repository.ProjectStore) *ProjectSearcher {
	return &ProjectSearcher{store: store}
}

func (s *ProjectSearcher) Kind() domain.Kind { return domain.KindProject }

func (s *ProjectSearcher) Search(ctx context.Context, query string, filters domain.Filters, dates domain.DateRange) ([]domain.Result, error) {
	records, err := s.store.FindMatching(ctx, query, repository.ProjectFilter{
		Statuses: filters.ProjectStatus,
		Stages:   filters.ProjectStage,
		Dates:    dates,
	})
	if err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}

	results := make([]domain.Result, 0, len(records))
	for _, r := range records {
		if !domain.Allowed(filters.ProjectStatus, r.Status) || !domain.Allowed(filters.ProjectStage, r.Stage) || !dates.Contains(r.CreatedAt) {
			continue
		}
		description := displayText(r.Description)
		matched := domain.MatchFields(query,
			domain.Text(domain.FieldTitle, r.Title),
			domain.Optional(domain.FieldDescription, description),
			domain.Optional(domain.FieldAddress, r.Address),
			domain.Optional(domain.FieldCity, r.City),
		)
		if len(matched) == 0 {
			continue
		}

		results = append(results, domain.Result{
			ID:          r.ID,
			Kind:        domain.KindProject,
			Title:       r.Title,
			Description: deref(description),
			Subtitle:    subtitle(&r.Status, &r.Stage, r.City),
			Metadata: &domain.ProjectMetadata{
				Status:    r.Status,
				Stage:     r.Stage,
				Budget:    r.Budget,
				Address:   r.Address,
				City:      r.City,
				CreatedBy: r.CreatedBy,
			},
			MatchedFields: matched,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
		})
	}
	return results, nil
}

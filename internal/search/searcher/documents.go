package searcher

import (
	"context"
	"fmt"

	"records_portal_backend/internal/search/domain"
	"records_portal_backend/internal/search/repository"
)

// DocumentSearcher searches project documents and their latest version.
type DocumentSearcher struct {
	store repository.DocumentStore
}

// NewDocumentSearcher creates a document searcher.
func NewDocumentSearcher(store repository.DocumentStore) *DocumentSearcher {
	return &DocumentSearcher{store: store}
}

func (s *DocumentSearcher) Kind() domain.Kind { return domain.KindDocument }

func (s *DocumentSearcher) Search(ctx context.Context, query string, filters domain.Filters, dates domain.DateRange) ([]domain.Result, error) {
	records, err := s.store.FindMatching(ctx, query, repository.DocumentFilter{
		Types: filters.DocumentTypes,
		Dates: dates,
	})
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	results := make([]domain.Result, 0, len(records))
	for _, r := range records {
		if !domain.Allowed(filters.DocumentTypes, r.Type) || !dates.Contains(r.CreatedAt) {
			continue
		}
		description := displayText(r.Description)
		matched := domain.MatchFields(query,
			domain.Text(domain.FieldName, r.Name),
			domain.Optional(domain.FieldDescription, description),
			domain.Optional(domain.FieldTags, r.Tags),
			domain.Optional(domain.FieldFileName, r.FileName),
			domain.Optional(domain.FieldVersionNotes, r.VersionNotes),
		)
		if len(matched) == 0 {
			continue
		}

		results = append(results, domain.Result{
			ID:          r.ID,
			Kind:        domain.KindDocument,
			Title:       r.Name,
			Description: deref(description),
			Subtitle:    subtitle(&r.Type, strPtr("v"+r.CurrentVersion), r.ProjectTitle),
			Metadata: &domain.DocumentMetadata{
				Type:           r.Type,
				CurrentVersion: r.CurrentVersion,
				Tags:           r.Tags,
				ProjectID:      r.ProjectID,
				ProjectTitle:   r.ProjectTitle,
				CreatedBy:      r.CreatedBy,
				FileName:       r.FileName,
				FileSize:       r.FileSize,
			},
			MatchedFields: matched,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
		})
	}
	return results, nil
}

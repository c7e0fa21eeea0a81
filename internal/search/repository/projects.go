package repository

import (
	"context"
	"fmt"
)

const projectSearchQuery = `
	SELECT
		p.id, p.title, p.description, p.status::text, p.stage::text, p.budget::text,
		p.address, p.city, u.name, p.created_at, p.updated_at
	FROM projects p
	LEFT JOIN users u ON u.id = p.created_by
	WHERE (
			p.title ILIKE $1
			OR p.description ILIKE $1
			OR p.address ILIKE $1
			OR p.city ILIKE $1
		)
		AND (coalesce(cardinality($2::text[]), 0) = 0 OR p.status::text = ANY($2::text[]))
		AND (coalesce(cardinality($3::text[]), 0) = 0 OR p.stage::text = ANY($3::text[]))
		AND ($4::timestamptz IS NULL OR p.created_at >= $4::timestamptz)
		AND ($5::timestamptz IS NULL OR p.created_at <= $5::timestamptz)
	ORDER BY p.created_at DESC, p.id
`

// ProjectRepository reads projects from PostgreSQL.
type ProjectRepository struct {
	db Querier
}

// NewProjectRepository creates a project store.
func NewProjectRepository(db Querier) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindMatching implements ProjectStore.
func (r *ProjectRepository) FindMatching(ctx context.Context, query string, filter ProjectFilter) ([]ProjectRecord, error) {
	rows, err := r.db.Query(ctx, projectSearchQuery,
		likePattern(query),
		nullable(filter.Statuses),
		nullable(filter.Stages),
		filter.Dates.From,
		filter.Dates.To,
	)
	if err != nil {
		return nil, fmt.Errorf("project search query failed: %w", err)
	}
	defer rows.Close()

	items := make([]ProjectRecord, 0)
	for rows.Next() {
		var item ProjectRecord
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.Status,
			&item.Stage,
			&item.Budget,
			&item.Address,
			&item.City,
			&item.CreatedBy,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return items, nil
}

package repository

import (
	"context"
	"fmt"
)

const documentSearchQuery = `
	SELECT
		d.id, d.name, d.description, d.type::text, d.current_version, d.tags,
		d.project_id, p.title, u.name, v.file_name, v.file_size, v.version_notes,
		d.created_at, d.updated_at
	FROM project_documents d
	LEFT JOIN projects p ON p.id = d.project_id
	LEFT JOIN users u ON u.id = d.created_by
	LEFT JOIN LATERAL (
		SELECT dv.file_name, dv.file_size, dv.version_notes
		FROM project_document_versions dv
		WHERE dv.document_id = d.id
		ORDER BY dv.created_at DESC
		LIMIT 1
	) v ON true
	WHERE (
			d.name ILIKE $1
			OR d.description ILIKE $1
			OR d.tags ILIKE $1
			OR v.file_name ILIKE $1
			OR v.version_notes ILIKE $1
		)
		AND (coalesce(cardinality($2::text[]), 0) = 0 OR d.type::text = ANY($2::text[]))
		AND ($3::timestamptz IS NULL OR d.created_at >= $3::timestamptz)
		AND ($4::timestamptz IS NULL OR d.created_at <= $4::timestamptz)
	ORDER BY d.created_at DESC, d.id
`

// DocumentRepository reads project documents from PostgreSQL.
type DocumentRepository struct {
	db Querier
}

// NewDocumentRepository creates a document store.
func NewDocumentRepository(db Querier) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// FindMatching implements DocumentStore.
func (r *DocumentRepository) FindMatching(ctx context.Context, query string, filter DocumentFilter) ([]DocumentRecord, error) {
	rows, err := r.db.Query(ctx, documentSearchQuery,
		likePattern(query),
		nullable(filter.Types),
		filter.Dates.From,
		filter.Dates.To,
	)
	if err != nil {
		return nil, fmt.Errorf("document search query failed: %w", err)
	}
	defer rows.Close()

	items := make([]DocumentRecord, 0)
	for rows.Next() {
		var item DocumentRecord
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Type,
			&item.CurrentVersion,
			&item.Tags,
			&item.ProjectID,
			&item.ProjectTitle,
			&item.CreatedBy,
			&item.FileName,
			&item.FileSize,
			&item.VersionNotes,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return items, nil
}

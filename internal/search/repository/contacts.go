package repository

import (
	"context"
	"fmt"
)

const contactSearchQuery = `
	SELECT
		c.id, c.name, c.email, c.phone, c.role::text, c.title, c.department,
		c.company_id, co.name, co.type::text, c.created_at, c.updated_at
	FROM contacts c
	LEFT JOIN companies co ON co.id = c.company_id
	WHERE (
			c.name ILIKE $1
			OR c.email ILIKE $1
			OR c.phone ILIKE $1
			OR c.title ILIKE $1
			OR c.department ILIKE $1
			OR co.name ILIKE $1
		)
		AND (coalesce(cardinality($2::text[]), 0) = 0 OR c.role::text = ANY($2::text[]))
		AND ($3::timestamptz IS NULL OR c.created_at >= $3::timestamptz)
		AND ($4::timestamptz IS NULL OR c.created_at <= $4::timestamptz)
	ORDER BY c.created_at DESC, c.id
`

// ContactRepository reads contacts from PostgreSQL.
type ContactRepository struct {
	db Querier
}

// NewContactRepository creates a contact store.
func NewContactRepository(db Querier) *ContactRepository {
	return &ContactRepository{db: db}
}

// FindMatching implements ContactStore.
func (r *ContactRepository) FindMatching(ctx context.Context, query string, filter ContactFilter) ([]ContactRecord, error) {
	rows, err := r.db.Query(ctx, contactSearchQuery,
		likePattern(query),
		nullable(filter.Roles),
		filter.Dates.From,
		filter.Dates.To,
	)
	if err != nil {
		return nil, fmt.Errorf("contact search query failed: %w", err)
	}
	defer rows.Close()

	items := make([]ContactRecord, 0)
	for rows.Next() {
		var item ContactRecord
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Email,
			&item.Phone,
			&item.Role,
			&item.Title,
			&item.Department,
			&item.CompanyID,
			&item.CompanyName,
			&item.CompanyType,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}

	return items, nil
}

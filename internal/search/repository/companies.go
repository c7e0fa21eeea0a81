package repository

import (
	"context"
	"fmt"
)

const companySearchQuery = `
	SELECT
		co.id, co.name, co.type::text, co.description, co.website, co.email, co.phone,
		co.address, co.city, co.state, co.country, co.created_at, co.updated_at
	FROM companies co
	WHERE (
			co.name ILIKE $1
			OR co.description ILIKE $1
			OR co.website ILIKE $1
			OR co.email ILIKE $1
			OR co.address ILIKE $1
			OR co.city ILIKE $1
		)
		AND (coalesce(cardinality($2::text[]), 0) = 0 OR co.type::text = ANY($2::text[]))
		AND ($3::timestamptz IS NULL OR co.created_at >= $3::timestamptz)
		AND ($4::timestamptz IS NULL OR co.created_at <= $4::timestamptz)
	ORDER BY co.created_at DESC, co.id
`

// CompanyRepository reads companies from PostgreSQL.
type CompanyRepository struct {
	db Querier
}

// NewCompanyRepository creates a company store.
func NewCompanyRepository(db Querier) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// FindMatching implements CompanyStore.
func (r *CompanyRepository) FindMatching(ctx context.Context, query string, filter CompanyFilter) ([]CompanyRecord, error) {
	rows, err := r.db.Query(ctx, companySearchQuery,
		likePattern(query),
		nullable(filter.Types),
		filter.Dates.From,
		filter.Dates.To,
	)
	if err != nil {
		return nil, fmt.Errorf("company search query failed: %w", err)
	}
	defer rows.Close()

	items := make([]CompanyRecord, 0)
	for rows.Next() {
		var item CompanyRecord
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Type,
			&item.Description,
			&item.Website,
			&item.Email,
			&item.Phone,
			&item.Address,
			&item.City,
			&item.State,
			&item.Country,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}

	return items, nil
}

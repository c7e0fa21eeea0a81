package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// =====================================
// Record Stores (one per entity kind)
// =====================================

// ProjectStore returns projects whose searchable fields contain the query.
type ProjectStore interface {
	FindMatching(ctx context.Context, query string, filter ProjectFilter) ([]ProjectRecord, error)
}

// ContactStore returns contacts whose searchable fields contain the query.
type ContactStore interface {
	FindMatching(ctx context.Context, query string, filter ContactFilter) ([]ContactRecord, error)
}

// CompanyStore returns companies whose searchable fields contain the query.
type CompanyStore interface {
	FindMatching(ctx context.Context, query string, filter CompanyFilter) ([]CompanyRecord, error)
}

// DocumentStore returns documents whose searchable fields, or those of their
// latest version, contain the query.
type DocumentStore interface {
	FindMatching(ctx context.Context, query string, filter DocumentFilter) ([]DocumentRecord, error)
}

// Querier is the subset of pgxpool.Pool the stores need.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Compile-time checks
var (
	_ ProjectStore  = (*ProjectRepository)(nil)
	_ ContactStore  = (*ContactRepository)(nil)
	_ CompanyStore  = (*CompanyRepository)(nil)
	_ DocumentStore = (*DocumentRepository)(nil)
)

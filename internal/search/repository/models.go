package repository

import (
	"time"

	"records_portal_backend/internal/search/domain"
)

// ProjectRecord is a project row with its creator's display name.
type ProjectRecord struct {
	ID          string
	Title       string
	Description *string
	Status      string
	Stage       string
	Budget      *string
	Address     *string
	City        *string
	CreatedBy   *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// ContactRecord is a contact row joined with its owning company.
type ContactRecord struct {
	ID          string
	Name        string
	Email       string
	Phone       *string
	Role        string
	Title       *string
	Department  *string
	CompanyID   string
	CompanyName *string
	CompanyType *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// CompanyRecord is a company row.
type CompanyRecord struct {
	ID          string
	Name        string
	Type        string
	Description *string
	Website     *string
	Email       *string
	Phone       *string
	Address     *string
	City        *string
	State       *string
	Country     *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// DocumentRecord is a document row joined with its project, its creator and
// its most recent version.
type DocumentRecord struct {
	ID             string
	Name           string
	Description    *string
	Type           string
	CurrentVersion string
	Tags           *string
	ProjectID      string
	ProjectTitle   *string
	CreatedBy      *string
	FileName       *string
	FileSize       *string
	VersionNotes   *string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// ProjectFilter narrows project matches. Empty lists do not restrict.
type ProjectFilter struct {
	Statuses []string
	Stages   []string
	Dates    domain.DateRange
}

// ContactFilter narrows contact matches.
type ContactFilter struct {
	Roles []string
	Dates domain.DateRange
}

// CompanyFilter narrows company matches.
type CompanyFilter struct {
	Types []string
	Dates domain.DateRange
}

// DocumentFilter narrows document matches.
type DocumentFilter struct {
	Types []string
	Dates domain.DateRange
}

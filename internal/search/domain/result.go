package domain

import "time"

// Matched field names used across the searchers. Entity kinds declare their
// searchable fields in a fixed order; matchedFields follows that order.
const (
	FieldTitle        = "title"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldAddress      = "address"
	FieldCity         = "city"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldDepartment   = "department"
	FieldCompany      = "company"
	FieldWebsite      = "website"
	FieldTags         = "tags"
	FieldFileName     = "fileName"
	FieldVersionNotes = "versionNotes"
)

// Result is one normalized search hit. Metadata holds exactly one
// kind-specific payload whose Kind matches Result.Kind.
type Result struct {
	ID            string
	Kind          Kind
	Title         string
	Description   string
	Subtitle      string
	Metadata      Metadata
	MatchedFields []string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// LastUpdated returns UpdatedAt, falling back to CreatedAt.
func (r Result) LastUpdated() time.Time {
	if r.UpdatedAt != nil {
		return *r.UpdatedAt
	}
	return r.CreatedAt
}

// Metadata is the closed set of per-kind display payloads.
type Metadata interface {
	EntityKind() Kind
}

// ProjectMetadata is the display payload of a project hit.
type ProjectMetadata struct {
	Status    string  `json:"status"`
	Stage     string  `json:"stage"`
	Budget    *string `json:"budget"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	CreatedBy *string `json:"createdBy"`
}

// ContactMetadata is the display payload of a contact hit.
type ContactMetadata struct {
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	PhoneE164   *string `json:"phoneE164,omitempty"`
	Role        string  `json:"role"`
	Title       *string `json:"title"`
	Department  *string `json:"department"`
	CompanyID   string  `json:"companyId"`
	CompanyName *string `json:"companyName"`
	CompanyType *string `json:"companyType"`
}

// CompanyMetadata is the display payload of a company hit.
type CompanyMetadata struct {
	Type    string  `json:"type"`
	Website *string `json:"website"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Country *string `json:"country"`
}

// DocumentMetadata is the display payload of a document hit.
type DocumentMetadata struct {
	Type           string  `json:"type"`
	CurrentVersion string  `json:"currentVersion"`
	Tags           *string `json:"tags"`
	ProjectID      string  `json:"projectId"`
	ProjectTitle   *string `json:"projectTitle"`
	CreatedBy      *string `json:"createdBy"`
	FileName       *string `json:"fileName"`
	FileSize       *string `json:"fileSize"`
}

func (*ProjectMetadata) EntityKind() Kind  { return KindProject }
func (*ContactMetadata) EntityKind() Kind  { return KindContact }
func (*CompanyMetadata) EntityKind() Kind  { return KindCompany }
func (*DocumentMetadata) EntityKind() Kind { return KindDocument }

package domain

// Enumerations accepted by the structured filters, in display order.
var (
	ProjectStatuses = []string{"planning", "active", "on_hold", "completed"}
	ProjectStages   = []string{"design", "construction", "hand_off"}
	CompanyTypes    = []string{"developer", "contractor", "architect_consultant", "supplier_vendor"}
	ContactRoles    = []string{
		"primary_contact", "project_manager", "technical_lead", "finance_contact",
		"sales_contact", "support_contact", "executive", "other",
	}
	DocumentTypes = []string{
		"drawings_plans", "contracts", "permits", "reports",
		"specifications", "correspondence", "photos", "other",
	}
)

// FilterCatalog lists the legal values for each structured filter.
type FilterCatalog struct {
	ProjectStatuses []string
	ProjectStages   []string
	CompanyTypes    []string
	ContactRoles    []string
	DocumentTypes   []string
}

// AvailableFilters returns a fresh copy of the catalog.
func AvailableFilters() FilterCatalog {
	return FilterCatalog{
		ProjectStatuses: clone(ProjectStatuses),
		ProjectStages:   clone(ProjectStages),
		CompanyTypes:    clone(CompanyTypes),
		ContactRoles:    clone(ContactRoles),
		DocumentTypes:   clone(DocumentTypes),
	}
}

func clone(values []string) []string {
	return append([]string(nil), values...)
}

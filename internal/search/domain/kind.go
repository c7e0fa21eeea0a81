// Package domain holds the federated search model and the pure pipeline
// stages (matching, scoring, sorting, pagination) shared by the searchers and
// the query coordinator.
package domain

// Kind identifies one of the searchable record types.
type Kind string

const (
	KindProject  Kind = "project"
	KindContact  Kind = "contact"
	KindCompany  Kind = "company"
	KindDocument Kind = "document"
)

// Kinds lists every entity kind in merge order.
var Kinds = []Kind{KindProject, KindContact, KindCompany, KindDocument}

// EntityType is the plural selector accepted in SearchFilters.EntityTypes.
type EntityType string

const (
	EntityProjects  EntityType = "projects"
	EntityContacts  EntityType = "contacts"
	EntityCompanies EntityType = "companies"
	EntityDocuments EntityType = "documents"
	EntityAll       EntityType = "all"
)

// EntityTypes lists the accepted selector values.
var EntityTypes = []EntityType{EntityProjects, EntityContacts, EntityCompanies, EntityDocuments, EntityAll}

// Plural returns the selector naming k.
func (k Kind) Plural() EntityType {
	switch k {
	case KindProject:
		return EntityProjects
	case KindContact:
		return EntityContacts
	case KindCompany:
		return EntityCompanies
	case KindDocument:
		return EntityDocuments
	default:
		return ""
	}
}

// Valid reports whether t is a known selector.
func (t EntityType) Valid() bool {
	for _, known := range EntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ResolveKinds maps the requested selectors to the kinds to search, in merge
// order. No selectors, or "all" anywhere in the list, selects every kind.
// Unknown selectors are ignored; callers validate beforehand.
func ResolveKinds(types []EntityType) []Kind {
	if len(types) == 0 {
		return append([]Kind(nil), Kinds...)
	}

	wanted := make(map[Kind]bool, len(Kinds))
	for _, t := range types {
		if t == EntityAll {
			return append([]Kind(nil), Kinds...)
		}
		for _, k := range Kinds {
			if k.Plural() == t {
				wanted[k] = true
			}
		}
	}

	kinds := make([]Kind, 0, len(wanted))
	for _, k := range Kinds {
		if wanted[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

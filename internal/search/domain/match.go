package domain

import "strings"

// Field is one searchable value of a record. A nil Value never matches.
type Field struct {
	Name  string
	Value *string
}

// Text builds a Field from a non-optional column.
func Text(name, value string) Field {
	return Field{Name: name, Value: &value}
}

// Optional builds a Field from a nullable column.
func Optional(name string, value *string) Field {
	return Field{Name: name, Value: value}
}

// MatchFields returns the names of fields whose value contains query,
// case-insensitively, in the order given. The comparison lower-cases both
// sides, matching PostgreSQL ILIKE for the stores' default collation.
func MatchFields(query string, fields ...Field) []string {
	needle := strings.ToLower(query)
	if needle == "" {
		return nil
	}

	var matched []string
	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		if strings.Contains(strings.ToLower(*f.Value), needle) {
			matched = append(matched, f.Name)
		}
	}
	return matched
}

// Allowed reports whether value passes a membership filter. An empty filter
// places no restriction.
func Allowed(filter []string, value string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if f == value {
			return true
		}
	}
	return false
}

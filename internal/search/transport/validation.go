package transport

import (
	"errors"
	"fmt"
	"strings"

	"records_portal_backend/internal/search/domain"
	"records_portal_backend/platform/apperr"
	"records_portal_backend/platform/validator"

	playground "github.com/go-playground/validator/v10"
)

var filterTags = []string{"projectstatus", "projectstage", "companytype", "contactrole", "documenttype"}

// RegisterValidations registers the enum tags used by the search DTOs.
func RegisterValidations(val *validator.Validator) error {
	entityTypes := make([]string, len(domain.EntityTypes))
	for i, t := range domain.EntityTypes {
		entityTypes[i] = string(t)
	}
	sortFields := make([]string, len(domain.SortFields))
	for i, f := range domain.SortFields {
		sortFields[i] = string(f)
	}

	tags := map[string][]string{
		"entitytype":    entityTypes,
		"projectstatus": domain.ProjectStatuses,
		"projectstage":  domain.ProjectStages,
		"companytype":   domain.CompanyTypes,
		"contactrole":   domain.ContactRoles,
		"documenttype":  domain.DocumentTypes,
		"searchsort":    sortFields,
	}
	for tag, allowed := range tags {
		if err := val.RegisterOneOf(tag, allowed); err != nil {
			return err
		}
	}
	return nil
}

// ValidationError turns a failed struct validation of a search DTO into the
// validation error the service would report for the same input. The first
// failing field decides the message.
func ValidationError(err error) error {
	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperr.Validation(domain.MsgInvalidRequest).WithDetails(map[string]string{"reason": err.Error()})
	}

	fe := fieldErrs[0]
	field, _, _ := strings.Cut(fe.Field(), "[")
	return apperr.Validation(fieldMessage(field, fe.Tag())).
		WithDetails(map[string]string{field: fmt.Sprint(fe.Value())})
}

func fieldMessage(field, tag string) string {
	switch {
	case tag == "entitytype":
		return domain.MsgInvalidEntity
	case tag == "searchsort":
		return domain.MsgInvalidSort
	case isFilterTag(tag):
		return domain.MsgInvalidFilter
	}

	switch field {
	case "sortOrder":
		return domain.MsgInvalidOrder
	case "limit":
		return domain.MsgInvalidLimit
	case "offset":
		if tag == "required" {
			return domain.MsgOffsetRequired
		}
		return domain.MsgInvalidOffset
	}
	return domain.MsgInvalidRequest
}

func isFilterTag(tag string) bool {
	for _, t := range filterTags {
		if t == tag {
			return true
		}
	}
	return false
}

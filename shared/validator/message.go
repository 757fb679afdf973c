package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":         "{field} is required",
	"required_without": "{field} is required when {param} is empty",
	"gte":              "{field} must be greater than or equal to {param}",
	"lte":              "{field} must be less than or equal to {param}",
	"gt":               "{field} must be greater than {param}",
	"oneof":            "{field} must be one of {param}",
	"max":              "{field} must be less than or equal to {param}",
	"min":              "{field} must be greater than or equal to {param}",
	"email":            "{field} must be a valid email address",
	"uuid":             "{field} must be a valid UUID",
	"url":              "{field} must be a valid URL",
	"datetime":         "{field} must match the layout {param}",
	"nefield":          "{field} must differ from {param}",
	"mimetypes":        "{field} must be one of {param}",
	"maxfilesize":      "{field} must not exceed {param} MB",
}

// lengthMessages replace min and max for strings and lists.
var lengthMessages = map[string]string{
	"max": "{field} must contain at most {param} {unit}",
	"min": "{field} must contain at least {param} {unit}",
}

// message renders the first failed rule; nested fields keep their path, for example items[0].quantity.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		text, unit := messages[valErr.Tag()], ""
		if text == "" {
			continue
		}

		if length, ok := lengthMessages[valErr.Tag()]; ok {
			switch valErr.Kind() {
			case reflect.String:
				text, unit = length, "characters"
			case reflect.Slice, reflect.Map, reflect.Array:
				text, unit = length, "items"
			}
		}

		return strings.NewReplacer(
			"{field}", fieldPath(valErr),
			"{param}", valErr.Param(),
			"{unit}", unit,
		).Replace(text)
	}

	return valErrors.Error()
}

func fieldPath(valErr val.FieldError) string {
	_, path, found := strings.Cut(valErr.Namespace(), ".")
	if !found {
		return valErr.Field()
	}

	return path
}

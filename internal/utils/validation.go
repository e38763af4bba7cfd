package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationDetails turns a gin binding error into per-field messages.
// Non-validator errors (malformed JSON and the like) yield a single
// body entry.
func ValidationDetails(err error) map[string]string {
	details := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		details["body"] = "invalid request body"
		return details
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			details[field] = "is required"
		case "min":
			details[field] = fmt.Sprintf("must be at least %s characters", fe.Param())
		case "max":
			details[field] = fmt.Sprintf("must be at most %s characters", fe.Param())
		default:
			details[field] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}

	return details
}

package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Violation codes surfaced in FieldError.Code.
const (
	CodeRequired            = "REQUIRED"
	CodeMissingTranslation  = "MISSING_TRANSLATION"
	CodeDuplicateName       = "DUPLICATE_NAME"
	CodeInvalidEmail        = "INVALID_EMAIL"
	CodeDuplicateEmail      = "DUPLICATE_EMAIL"
	CodeCircularReference   = "CIRCULAR_REFERENCE"
	CodeTenantMismatch      = "TENANT_MISMATCH"
	CodeDuplicatePermission = "DUPLICATE_PERMISSION"
	CodeNotFound            = "NOT_FOUND"
)

// FieldError describes a single field-level violation.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Errors collects every violation found while validating an entity. Services
// validate fully before persisting so the caller sees all violations at once.
type Errors []FieldError

// Error implements the error interface.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e))
	for i, fe := range e {
		messages[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// Add appends a violation.
func (e *Errors) Add(field, code, message string) {
	*e = append(*e, FieldError{Field: field, Code: code, Message: message})
}

// Has reports whether any violation was recorded for field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// ErrOrNil returns the collected violations as an error, or nil if none.
func (e Errors) ErrOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// IsValidEmail reports whether s looks like an RFC-shaped email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

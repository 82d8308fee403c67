package dispatch

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Failure is one validation failure: a field path, a human-readable message,
// and an optional machine-readable code. AttemptedValue carries the offending
// input, masked when the field name is recognized as sensitive.
type Failure struct {
	Field          string
	Message        string
	Code           string
	AttemptedValue string
}

func (f Failure) String() string {
	if f.Code != "" {
		return fmt.Sprintf("%s: %s (%s)", f.Field, f.Message, f.Code)
	}

	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// NewFailure creates a Failure with the attempted value rendered as a string.
// The value is masked here if the field name is sensitive, so it never
// reaches a log or error payload unmasked.
func NewFailure(field, message, code string, attemptedValue any) Failure {
	rendered := ""
	if attemptedValue != nil {
		rendered = fmt.Sprintf("%v", attemptedValue)
	}

	if IsSensitiveFieldName(field) {
		rendered = MaskedValue
	}

	return Failure{
		Field:          field,
		Message:        message,
		Code:           code,
		AttemptedValue: rendered,
	}
}

// Validator checks one request and reports zero or more failures.
// Validators must be pure with respect to each other: no shared mutable
// state, no side effects, so the ValidationBehavior may run them
// concurrently against the same request instance.
type Validator interface {
	Validate(ctx context.Context, request Request) []Failure
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(ctx context.Context, request Request) []Failure

// Validate implements the Validator interface.
func (f ValidatorFunc) Validate(ctx context.Context, request Request) []Failure {
	return f(ctx, request)
}

// MaskedValue replaces attempted values of sensitive fields in failures,
// logs, and payloads.
const MaskedValue = "*****"

// sensitiveFieldNames are matched as substrings of normalized field path
// segments, so "apiKey", "user_password" and "card.credit_card_number" are
// all recognized.
var sensitiveFieldNames = []string{
	"password",
	"token",
	"secret",
	"apikey",
	"creditcard",
	"ssn",
}

// IsSensitiveFieldName reports whether a field path names data that must be
// masked before inclusion in any log or error payload.
func IsSensitiveFieldName(field string) bool {
	for _, segment := range strings.Split(field, ".") {
		normalized := normalizeFieldName(segment)
		for _, sensitive := range sensitiveFieldNames {
			if strings.Contains(normalized, sensitive) {
				return true
			}
		}
	}

	return false
}

// normalizeFieldName lowercases a field name and strips separators so naming
// conventions (api-key, api_key, ApiKey) all match.
func normalizeFieldName(field string) string {
	normalized := strings.ToLower(field)
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, "_", "")

	return normalized
}

// sortFailures orders failures grouped by field path, preserving validator
// registration order within one field.
func sortFailures(failures []Failure) {
	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].Field < failures[j].Field
	})
}

package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
)

// ValidateRequired valida que un campo no esté vacío
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return common.NewValidationError(fieldName, "is required")
	}
	return nil
}

// ValidateMaxLength valida la longitud máxima de un string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return common.NewValidationError(fieldName, fmt.Sprintf("must be at most %d characters long", maxLength))
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD calendar date
func ValidateDate(value, fieldName string) error {
	if _, err := common.ParseDate(value); err != nil {
		return common.NewValidationError(fieldName, "must be a date in YYYY-MM-DD format")
	}
	return nil
}

// ValidateOptionalDate accepts an empty value or a valid date
func ValidateOptionalDate(value, fieldName string) error {
	if value == "" {
		return nil
	}
	return ValidateDate(value, fieldName)
}

// ValidateDateOrder checks that end is not before start when both are present
func ValidateDateOrder(start, end string) error {
	if start == "" || end == "" {
		return nil
	}
	s, err := common.ParseDate(start)
	if err != nil {
		return nil
	}
	e, err := common.ParseDate(end)
	if err != nil {
		return nil
	}
	if e.Before(s) {
		return common.NewValidationError("endDate", "must not be before startDate")
	}
	return nil
}

// ValidateOptionalEmail accepts an empty value or a parseable address
func ValidateOptionalEmail(value, fieldName string) error {
	if value == "" {
		return nil
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return common.NewValidationError(fieldName, "must be a valid email address")
	}
	return nil
}

// ValidateOptionalURL accepts an empty value or an absolute http(s) URL
func ValidateOptionalURL(value, fieldName string) error {
	if value == "" {
		return nil
	}
	return ValidateURL(value, fieldName)
}

// ValidateURL requires an absolute http(s) URL
func ValidateURL(value, fieldName string) error {
	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return common.NewValidationError(fieldName, "must be an absolute http(s) URL")
	}
	return nil
}

// ValidatePercentage checks a commission rate between 0 and 100
func ValidatePercentage(value float64, fieldName string) error {
	if value < 0 || value > 100 {
		return common.NewValidationError(fieldName, "must be between 0 and 100")
	}
	return nil
}

// ValidateSlug checks a lowercase, dash separated slug
func ValidateSlug(value string) error {
	if value == "" {
		return common.NewValidationError("slug", "is required")
	}
	for _, r := range value {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-' {
			return common.NewValidationError("slug", "may only contain lowercase letters, digits and dashes")
		}
	}
	return nil
}

// ValidateID checks an identifier that ends up in URLs and storage keys
func ValidateID(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return common.NewValidationError(fieldName, "is required")
	}
	if utf8.RuneCountInString(value) > 128 {
		return common.NewValidationError(fieldName, "must be at most 128 characters long")
	}
	if strings.ContainsAny(value, "/\\") || strings.Contains(value, "..") {
		return common.NewValidationError(fieldName, "must not contain path separators or '..'")
	}
	return nil
}

// first returns the first non-nil error
func first(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

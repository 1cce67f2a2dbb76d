package utils

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"

	"github.com/yavemu/bookadmin/internal/schema"
)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if email == "" {
		return NewValidationError("email", "email is required")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return NewValidationError("email", "invalid email format")
	}

	return nil
}

// ValidatePassword validates a password
func ValidatePassword(password string) error {
	if password == "" {
		return NewValidationError("password", "password is required")
	}

	if len(password) < 8 {
		return NewValidationError("password", "password must be at least 8 characters long")
	}

	return nil
}

// ValidateRequired validates that a string is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fieldName, fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidateFieldValue checks a raw input value against a field's declared
// rules: type shape, length bounds, pattern, and select options. It runs
// before any network submission.
func ValidateFieldValue(f schema.Field, value string) error {
	switch f.Type {
	case schema.TypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return NewValidationError(f.Key, fmt.Sprintf("'%s' must be a number", f.Label))
		}
	case schema.TypeEmail:
		if err := ValidateEmail(value); err != nil {
			return NewValidationError(f.Key, fmt.Sprintf("'%s' must be a valid email", f.Label))
		}
	case schema.TypeBoolean:
		if _, err := strconv.ParseBool(value); err != nil {
			return NewValidationError(f.Key, fmt.Sprintf("'%s' must be true or false", f.Label))
		}
	}

	if f.Search == nil {
		return nil
	}

	if len(f.Search.Options) > 0 {
		if !optionAllowed(f.Search.Options, value) {
			return NewValidationError(f.Key, fmt.Sprintf("'%s' is not a valid option for '%s'", value, f.Label))
		}
	}

	rules := f.Search.Validation
	if rules == nil {
		return nil
	}

	if rules.MinLength > 0 && len(value) < rules.MinLength {
		return NewValidationError(f.Key, fmt.Sprintf("'%s' must have at least %d characters", f.Label, rules.MinLength))
	}
	if rules.MaxLength > 0 && len(value) > rules.MaxLength {
		return NewValidationError(f.Key, fmt.Sprintf("'%s' must have at most %d characters", f.Label, rules.MaxLength))
	}
	if rules.Pattern != "" {
		re, err := regexp.Compile(rules.Pattern)
		if err != nil {
			return NewValidationError(f.Key, fmt.Sprintf("invalid pattern configured for '%s'", f.Label))
		}
		if !re.MatchString(value) {
			return NewValidationError(f.Key, fmt.Sprintf("'%s' has an invalid format", f.Label))
		}
	}

	return nil
}

func optionAllowed(options []schema.SelectOption, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

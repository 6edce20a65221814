package errors

import (
	"strings"
	"unicode"
)

// maxFieldLength bounds any single guest text field. The longest legitimate
// values are WhatsApp URL templates; anything past this cannot fit in a
// level-Q QR code anyway.
const maxFieldLength = 2048

// ValidateRequired checks that a required text field is present.
// Whitespace-only values count as missing.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return New(ErrCodeValidation, "%s is required", field)
	}
	return ValidateText(field, value)
}

// ValidateText checks a free-text field for length and control characters.
// Empty values pass; use [ValidateRequired] for mandatory fields.
func ValidateText(field, value string) error {
	if len(value) > maxFieldLength {
		return New(ErrCodeValidation, "%s too long (max %d bytes)", field, maxFieldLength)
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeValidation, "%s contains invalid control characters", field)
		}
	}
	return nil
}

// ValidatePlaceholder checks that a template contains the given placeholder.
func ValidatePlaceholder(field, template, placeholder string) error {
	if err := ValidateRequired(field, template); err != nil {
		return err
	}
	if !strings.Contains(template, placeholder) {
		return New(ErrCodeValidation, "%s must contain %s", field, placeholder)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeValidation, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeValidation, "URL must use http or https scheme")
	}

	return nil
}

// ValidateAssetRef validates a background image reference.
//
// Accepted forms:
//   - "" (use the built-in default background)
//   - http:// or https:// URLs
//   - data: URIs
//   - local file paths without null bytes or control characters
func ValidateAssetRef(ref string) error {
	if ref == "" {
		return nil
	}
	if strings.HasPrefix(ref, "data:") {
		if !strings.Contains(ref, ",") {
			return New(ErrCodeValidation, "background data URI is malformed")
		}
		return nil
	}
	if strings.Contains(ref, "://") {
		return ValidateURL(ref)
	}
	for _, r := range ref {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeValidation, "background path contains invalid characters")
		}
	}
	return nil
}

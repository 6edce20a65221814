package errors

import (
	"strings"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "208", false},
		{"unicode", "Familia Sánchez", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"too long", strings.Repeat("a", 3000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired("field", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeValidation) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeValidation)
			}
		})
	}
}

func TestValidatePlaceholder(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"present", "https://wa.me/51990411197?text=Pedido%20Bungalow%20{ROOM}", false},
		{"twice", "{ROOM}-{ROOM}", false},
		{"missing", "https://wa.me/51990411197", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlaceholder("venueWhatsApp", tt.input, "{ROOM}")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePlaceholder(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/bg.jpg", false},
		{"http", "http://example.com/bg.jpg", false},
		{"empty", "", true},
		{"ftp", "ftp://example.com/bg.jpg", true},
		{"file", "file:///etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAssetRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty uses default", "", false},
		{"relative path", "backgrounds/default-beach.jpg", false},
		{"absolute path", "/srv/backgrounds/beach.jpg", false},
		{"https", "https://cdn.example.com/beach.jpg", false},
		{"data uri", "data:image/png;base64,iVBORw0KGgo=", false},
		{"data uri without payload", "data:image/png", true},
		{"ftp scheme", "ftp://example.com/beach.jpg", true},
		{"control char", "beach\x01.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssetRef(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAssetRef(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

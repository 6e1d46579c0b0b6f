package errors

import (
	"testing"
)

func TestValidateStageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "input", false},
		{"valid with dash", "update-position", false},
		{"valid with underscore", "check_collisions", false},
		{"valid with digit", "render2", false},

		{"empty", "", true},
		{"too long", "a" + string(make([]byte, 70)), true},
		{"uppercase", "Input", true},
		{"leading digit", "1input", true},
		{"space", "check collisions", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantCode Code
	}{
		{"valid toml", "loop.toml", false, ""},
		{"valid yaml", "configs/loop.yaml", false, ""},
		{"valid yml upper", "LOOP.YML", false, ""},

		{"empty", "", true, ErrCodeInvalidInput},
		{"null byte", "loop\x00.toml", true, ErrCodeInvalidInput},
		{"json", "loop.json", false, ""},
		{"ini", "loop.ini", true, ErrCodeInvalidFormat},
		{"no extension", "loop", true, ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfigPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateConfigPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !Is(err, tt.wantCode) {
				t.Errorf("ValidateConfigPath(%q) code = %v, want %v", tt.input, GetCode(err), tt.wantCode)
			}
		})
	}
}

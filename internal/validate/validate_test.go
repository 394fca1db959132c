package validate

import (
	"errors"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantWarn bool
	}{
		{"valid", "feature-x", nil, false},
		{"empty", "", ErrEmptyName, false},
		{"only whitespace", "   ", ErrEmptyName, false},
		{"leading whitespace", " feature", ErrEmptyName, false},
		{"trailing whitespace", "feature ", ErrEmptyName, false},
		{"too long", string(make([]byte, 256)), ErrTooLong, false},
		{"reserved HEAD", "HEAD", ErrReservedName, false},
		{"reserved .git", ".git", ErrReservedName, false},
		{"hidden", ".config", ErrHiddenName, false},
		{"slash", "a/b", nil, false}, // caught as InvalidCharacterError below
		{"non-ascii accepted with warning", "機能", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warn, err := Name(tt.input)
			if tt.name == "slash" {
				var invalid *InvalidCharacterError
				if !errors.As(err, &invalid) {
					t.Fatalf("Name(%q) = %v, want InvalidCharacterError", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) && !(tt.wantErr == nil && err == nil) {
				t.Errorf("Name(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if warn != tt.wantWarn {
				t.Errorf("Name(%q) warn = %v, want %v", tt.input, warn, tt.wantWarn)
			}
		})
	}
}

func TestName_InvalidCharacters(t *testing.T) {
	for _, c := range []string{":", "*", "?", `"`, "<", ">", "|", `\`} {
		name := "feat" + c
		_, err := Name(name)
		var invalid *InvalidCharacterError
		if !errors.As(err, &invalid) {
			t.Errorf("Name(%q) error = %v, want InvalidCharacterError", name, err)
		}
	}
}

func TestCustomPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"relative simple", "feature/sub", nil},
		{"absolute", "/abs/path", ErrAbsolutePath},
		{"windows drive", `C:\abs`, ErrAbsolutePath},
		{"one leading dotdot ok", "../sibling", nil},
		{"two leading dotdot rejected", "../../escape", ErrPathTraversal},
		{"dotdot after component rejected", "feature/../escape", ErrPathTraversal},
		{"trailing separator", "feature/", ErrTrailingSeparator},
		{"reserved component", "feature/.git", ErrReservedName},
		{"hidden component", "feature/.env", ErrHiddenName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CustomPath(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CustomPath(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

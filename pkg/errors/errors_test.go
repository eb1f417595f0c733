package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidIdentifier, "identifier cannot be empty")
	want := "INVALID_IDENTIFIER: identifier cannot be empty"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	cause := stderrors.New("boom")
	wrapped := Wrap(ErrCodeStore, cause, "restore offset %q", "panel")
	want = `STORE_ERROR: restore offset "panel": boom`
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeUnsupportedPosition, "position mode %q", "static")

	if !Is(err, ErrCodeUnsupportedPosition) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeStore) {
		t.Error("Is should not match a different code")
	}
	if got := GetCode(err); got != ErrCodeUnsupportedPosition {
		t.Errorf("GetCode() = %q", got)
	}

	// Codes survive wrapping in plain errors.
	outer := fmt.Errorf("enable: %w", err)
	if !Is(outer, ErrCodeUnsupportedPosition) {
		t.Error("Is should unwrap the error chain")
	}

	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(ErrCodeStore, cause, "write")
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidTarget, "target element is required")
	if got := UserMessage(err); got != "target element is required" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "Simple", id: "sidebar"},
		{name: "WithColonNamespace", id: "app:panel:1"},
		{name: "WithDashes", id: "left-panel_2"},
		{name: "Empty", id: "", wantErr: true},
		{name: "PathSeparator", id: "a/b", wantErr: true},
		{name: "Backslash", id: `a\b`, wantErr: true},
		{name: "Traversal", id: "..secret", wantErr: true},
		{name: "ControlChar", id: "a\x01b", wantErr: true},
		{name: "NullByte", id: "a\x00b", wantErr: true},
		{name: "TooLong", id: string(make([]byte, 257)), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidIdentifier) {
				t.Errorf("error code = %q, want INVALID_IDENTIFIER", GetCode(err))
			}
		})
	}
}

package errors

import (
	"errors"
	"strings"
	"testing"
)

// TestErrorConstructors verifies code, status, and message formatting.
func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		wantCode   ErrorCode
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "invalid request",
			err:        NewInvalidRequest("bad input"),
			wantCode:   ErrInvalidRequest,
			wantStatus: 400,
			wantMsg:    "bad input",
		},
		{
			name:       "not found",
			err:        NewNotFound("rev-123"),
			wantCode:   ErrNotFound,
			wantStatus: 404,
			wantMsg:    "not found: rev-123",
		},
		{
			name:       "parse",
			err:        NewParse(errors.New("unexpected end of JSON input")),
			wantCode:   ErrParse,
			wantStatus: 422,
			wantMsg:    "invalid JSON: unexpected end of JSON input",
		},
		{
			name:       "internal",
			err:        NewInternal(errors.New("boom")),
			wantCode:   ErrInternal,
			wantStatus: 500,
			wantMsg:    "boom",
		},
		{
			name:       "internal with nil cause",
			err:        NewInternal(nil),
			wantCode:   ErrInternal,
			wantStatus: 500,
			wantMsg:    "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.Status, tt.wantStatus)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

// TestErrorString verifies the error interface output includes the code.
func TestErrorString(t *testing.T) {
	err := NewInvalidRequest("section must be one of: experience, education, projects")
	if !strings.HasPrefix(err.Error(), "INVALID_REQUEST: ") {
		t.Errorf("Error() = %q, want INVALID_REQUEST prefix", err.Error())
	}
}

// TestNotFoundDetails verifies the identifier lands in details.
func TestNotFoundDetails(t *testing.T) {
	err := NewNotFound("rev-1")
	if err.Details["identifier"] != "rev-1" {
		t.Errorf("details = %v, want identifier=rev-1", err.Details)
	}
}

// TestIs verifies code matching for wrapped and foreign errors.
func TestIs(t *testing.T) {
	if !Is(NewParse(errors.New("x")), ErrParse) {
		t.Error("expected Is to match parse error")
	}
	if Is(NewParse(errors.New("x")), ErrNotFound) {
		t.Error("expected code mismatch")
	}
	if Is(errors.New("plain"), ErrInternal) {
		t.Error("expected foreign error not to match")
	}
}

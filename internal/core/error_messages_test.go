package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "nil error returns empty", err: nil, wantCode: ""},
		{name: "index error", err: &IndexError{Index: 9, Len: 2}, wantCode: "IDX001"},
		{name: "wrapped record not found", err: fmt.Errorf("delete: %w", ErrRecordNotFound), wantCode: "REC001"},
		{name: "unknown field", err: fmt.Errorf("%w: %q", ErrUnknownField, "age"), wantCode: "FORM001"},
		{name: "invalid province", err: ErrInvalidProvince, wantCode: "FORM002"},
		{name: "session expired", err: ErrSessionNotFound, wantCode: "SES001"},
		{name: "navigation state", err: ErrNoNavigationState, wantCode: "NAV001"},
		{name: "country list", err: errors.New("country list request: timeout"), wantCode: "CTRY001"},
		{name: "file too large", err: errors.New("file too large: 9MB"), wantCode: "FILE001"},
		{name: "image not found", err: ErrImageNotFound, wantCode: "FILE003"},
		{name: "uploads saturated", err: ErrTooManyUploads, wantCode: "FILE004"},
		{name: "validation message", err: errors.New(MsgPhoneTooShort), wantCode: "VAL003"},
		{name: "context canceled", err: context.Canceled, wantCode: "REQ001"},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: "REQ002"},
		{name: "case insensitive", err: errors.New("RATE LIMIT exceeded"), wantCode: "RATE001"},
		{name: "unknown error returns default", err: errors.New("some random internal error"), wantCode: "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err); got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	if !IsUserFacing(ErrRecordNotFound) {
		t.Error("ErrRecordNotFound should be user facing")
	}
	if IsUserFacing(errors.New("boom")) {
		t.Error("unmatched error should not be user facing")
	}
	if IsUserFacing(nil) {
		t.Error("nil should not be user facing")
	}
}

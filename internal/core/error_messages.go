package core

// error_messages.go maps technical errors to user-facing messages.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Codes are grouped by category:
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Name required         Patterns: "name is required"
//	VAL002 - Invalid email         Patterns: "invalid email"
//	VAL003 - Phone too short       Patterns: "phone number must be"
//	VAL004 - Picture not PNG       Patterns: "must be in png format"
//
// # Form Errors (FORM001-FORM099)
//
//	FORM001 - Unknown field        Patterns: "unknown form field"
//	FORM002 - Invalid province     Patterns: "invalid province"
//
// # Record Errors (IDX001, REC001)
//
//	IDX001 - Index out of range    Patterns: "record index out of range"
//	REC001 - Record not found      Patterns: "record not found"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Image too large      Patterns: "file too large"
//	FILE002 - Unreadable form      Patterns: "invalid form"
//	FILE003 - Image not found      Patterns: "image not found"
//	FILE004 - Uploads saturated    Patterns: "too many concurrent uploads"
//
// # Session and Navigation (SES001, NAV001)
//
//	SES001 - Session expired       Patterns: "session not found"
//	NAV001 - No navigation state   Patterns: "no navigation state"
//
// # Country List (CTRY001)
//
//	CTRY001 - Country list failed  Patterns: "country list"
//
// # Requests (RATE001, REQ001-REQ002)
//
//	RATE001 - Rate limited         Patterns: "rate limit"
//	REQ001  - Request cancelled    Patterns: "context canceled"
//	REQ002  - Request timed out    Patterns: "context deadline exceeded"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the application log for the
// technical error, correlated by request_id.
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come before general ones.

import "strings"

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// Validation Errors (VAL001-VAL004)
	// =========================================================================
	{
		pattern: "name is required",
		msg: UserMessage{
			Message: MsgNameRequired,
			Action:  "Enter your name",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid email",
		msg: UserMessage{
			Message: MsgInvalidEmail,
			Action:  "Use an address like name@example.com",
			Code:    "VAL002",
		},
	},
	{
		pattern: "phone number must be",
		msg: UserMessage{
			Message: MsgPhoneTooShort,
			Action:  "Enter digits only, at least seven of them",
			Code:    "VAL003",
		},
	},
	{
		pattern: "must be in png format",
		msg: UserMessage{
			Message: MsgPictureNotPNG,
			Action:  "Choose a file ending in .png",
			Code:    "VAL004",
		},
	},

	// =========================================================================
	// Form Errors (FORM001-FORM002)
	// =========================================================================
	{
		pattern: "unknown form field",
		msg: UserMessage{
			Message: "The form sent a field it does not have",
			Action:  "Reload the page and try again",
			Code:    "FORM001",
		},
	},
	{
		pattern: "invalid province",
		msg: UserMessage{
			Message: "Province must be one of the listed options",
			Action:  "Select a province from the list",
			Code:    "FORM002",
		},
	},

	// =========================================================================
	// Record Errors (IDX001, REC001)
	// =========================================================================
	{
		pattern: "record index out of range",
		msg: UserMessage{
			Message: "That record no longer exists",
			Action:  "The table changed. Reload it and try again",
			Code:    "IDX001",
		},
	},
	{
		pattern: "record not found",
		msg: UserMessage{
			Message: "That record no longer exists",
			Action:  "It may have been deleted. Reload the table",
			Code:    "REC001",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE004)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "Profile picture exceeds the maximum size",
			Action:  "Choose a smaller image",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid form",
		msg: UserMessage{
			Message: "The submitted form could not be read",
			Action:  "Reload the page and submit again",
			Code:    "FILE002",
		},
	},
	{
		pattern: "image not found",
		msg: UserMessage{
			Message: "The picture is no longer available",
			Action:  "Reload the page",
			Code:    "FILE003",
		},
	},
	{
		pattern: "too many concurrent uploads",
		msg: UserMessage{
			Message: "The server is busy handling other uploads",
			Action:  "Please try again in a few seconds",
			Code:    "FILE004",
		},
	},

	// =========================================================================
	// Session and Navigation (SES001, NAV001)
	// =========================================================================
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "Your session has expired",
			Action:  "Reload the page to start over",
			Code:    "SES001",
		},
	},
	{
		pattern: "no navigation state",
		msg: UserMessage{
			Message: "No records available",
			Action:  "Open the profiles from the records table",
			Code:    "NAV001",
		},
	},

	// =========================================================================
	// Country List (CTRY001)
	// =========================================================================
	{
		pattern: "country list",
		msg: UserMessage{
			Message: "The country list could not be loaded",
			Action:  "You can still submit the form; reload later for the full list",
			Code:    "CTRY001",
		},
	},

	// =========================================================================
	// Requests (RATE001, REQ001-REQ002)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// A nil error maps to the zero UserMessage.
//
// Example:
//
//	msg := MapError(&IndexError{Index: 7, Len: 3})
//	// msg.Code == "IDX001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Errors returned by the service are matched against known patterns so the
// web layer can show a short message and the operator can quote the code.
//
// Error codes are grouped by category:
//
// # Table Errors (TBL001-TBL099)
//
//	TBL001 - Unknown table: The table does not exist
//	         Patterns: "unknown table"
//
//	TBL002 - Unknown column: The column does not exist
//	         Patterns: "unknown column"
//
//	TBL003 - Column fixed: The column cannot be hidden
//	         Patterns: "cannot be hidden"
//
//	TBL004 - Not sortable: The column cannot be sorted
//	         Patterns: "cannot be sorted"
//
//	TBL005 - Not filterable: The column cannot be filtered
//	         Patterns: "cannot be filtered", "global filter is disabled"
//
//	TBL006 - Unknown preset: The filter preset does not exist
//	         Patterns: "unknown preset"
//
//	TBL007 - Page size: The page size is invalid
//	         Patterns: "page size"
//
// # Row Errors (ROW001-ROW099)
//
//	ROW001 - Row not found: The row no longer exists
//	         Patterns: "row not found"
//
//	ROW002 - Row hidden: The row is filtered out
//	         Patterns: "row is not visible"
//
//	ROW003 - Out of range: The row position is out of range
//	         Patterns: "row index out of range"
//
//	ROW004 - Duplicate: Two rows share the same order number
//	         Patterns: "duplicate row identity"
//
//	ROW005 - Not editable: The field cannot be edited
//	         Patterns: "unknown field"
//
// # Action Errors (ACT001-ACT099)
//
//	ACT001 - Nothing marked: No rows are marked
//	         Patterns: "no rows marked"
//
//	ACT002 - Already sent: Some invoices were already sent
//	         Patterns: "invoice already sent"
//
// # Data Errors (DATA001-DATA099)
//
//	DATA001 - Fixture missing: An export file could not be opened
//	          Patterns: "open fixture"
//
//	DATA002 - Fixture unreadable: An export file could not be read
//	          Patterns: "read fixture"
//
//	DATA003 - Reload failed: The exports could not be reloaded
//	          Patterns: "reload fixtures", "load fixtures"
//
//	DATA004 - Request cancelled: The request was cancelled
//	          Patterns: "context canceled"
//
//	DATA005 - Request timeout: The request timed out
//	          Patterns: "context deadline exceeded"
//
// # Access Errors (AUTH001, RATE001)
//
//	AUTH001 - Unauthorized: The API key is missing or wrong
//	          Patterns: "api key"
//
//	RATE001 - Rate limited: Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches:
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or check the server log
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones. Multiple patterns can map to the same code.

package core

import (
	"fmt"
	"strings"
)

// UserMessage is an error message meant for the dashboard user.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is ordered; the first match wins.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Table Errors (TBL001-TBL007)
	// These errors occur when a request names a table, column or preset that does not fit.
	// =========================================================================
	{
		pattern: "unknown table",
		msg: UserMessage{
			Message: "Table not found",
			Action:  "Check the table name in the address",
			Code:    "TBL001",
		},
	},
	{
		pattern: "unknown column",
		msg: UserMessage{
			Message: "Column not found",
			Action:  "Reload the page to get the current columns",
			Code:    "TBL002",
		},
	},
	{
		pattern: "cannot be hidden",
		msg: UserMessage{
			Message: "This column cannot be hidden",
			Action:  "Hide a different column",
			Code:    "TBL003",
		},
	},
	{
		pattern: "cannot be sorted",
		msg: UserMessage{
			Message: "This column cannot be sorted",
			Action:  "Sort by a different column",
			Code:    "TBL004",
		},
	},
	{
		pattern: "cannot be filtered",
		msg: UserMessage{
			Message: "This column cannot be filtered",
			Action:  "Use the search field instead",
			Code:    "TBL005",
		},
	},
	{
		pattern: "global filter is disabled",
		msg: UserMessage{
			Message: "Search is not available for this table",
			Action:  "Use the column filters instead",
			Code:    "TBL005",
		},
	},
	{
		pattern: "unknown preset",
		msg: UserMessage{
			Message: "Filter preset not found",
			Action:  "Pick a preset from the list",
			Code:    "TBL006",
		},
	},
	{
		pattern: "page size",
		msg: UserMessage{
			Message: "Invalid page size",
			Action:  "Choose one of the offered page sizes",
			Code:    "TBL007",
		},
	},

	// =========================================================================
	// Row Errors (ROW001-ROW005)
	// These errors occur when a row changed or disappeared between requests.
	// =========================================================================
	{
		pattern: "row not found",
		msg: UserMessage{
			Message: "Row not found",
			Action:  "The row may have been deleted or reloaded. Refresh the table",
			Code:    "ROW001",
		},
	},
	{
		pattern: "row is not visible",
		msg: UserMessage{
			Message: "Row is filtered out",
			Action:  "Clear the filters and try again",
			Code:    "ROW002",
		},
	},
	{
		pattern: "row index out of range",
		msg: UserMessage{
			Message: "Row position is out of range",
			Action:  "Refresh the table and try again",
			Code:    "ROW003",
		},
	},
	{
		pattern: "duplicate row identity",
		msg: UserMessage{
			Message: "Two rows share the same order number",
			Action:  "Check the export for duplicate Nr values",
			Code:    "ROW004",
		},
	},
	{
		pattern: "unknown field",
		msg: UserMessage{
			Message: "This field cannot be edited",
			Action:  "Only shipping and contact fields can be edited",
			Code:    "ROW005",
		},
	},

	// =========================================================================
	// Action Errors (ACT001-ACT002)
	// These errors occur when a toolbar action is run on the marked rows.
	// =========================================================================
	{
		pattern: "no rows marked",
		msg: UserMessage{
			Message: "No rows are marked",
			Action:  "Mark at least one row in the table first",
			Code:    "ACT001",
		},
	},
	{
		pattern: "invoice already sent",
		msg: UserMessage{
			Message: "Some invoices were already sent",
			Action:  "Unmark those rows or confirm to send again",
			Code:    "ACT002",
		},
	},

	// =========================================================================
	// Data Errors (DATA001-DATA005)
	// These errors occur while reading the export files.
	// =========================================================================
	{
		pattern: "open fixture",
		msg: UserMessage{
			Message: "An export file could not be opened",
			Action:  "Check that all three export files are present",
			Code:    "DATA001",
		},
	},
	{
		pattern: "read fixture",
		msg: UserMessage{
			Message: "An export file could not be read",
			Action:  "Save the export as UTF-8 text and reload",
			Code:    "DATA002",
		},
	},
	{
		pattern: "reload fixtures",
		msg: UserMessage{
			Message: "The exports could not be reloaded",
			Action:  "The previous data is still shown. Check the server log",
			Code:    "DATA003",
		},
	},
	{
		pattern: "load fixtures",
		msg: UserMessage{
			Message: "The exports could not be loaded",
			Action:  "Check the server log",
			Code:    "DATA003",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "DATA004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "DATA005",
		},
	},

	// =========================================================================
	// Access Errors (AUTH001, RATE001)
	// These errors occur before a request reaches the dashboard.
	// =========================================================================
	{
		pattern: "api key",
		msg: UserMessage{
			Message: "Not authorized",
			Action:  "Provide a valid API key",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// This is the fallback for unexpected errors. Support staff should check
// application logs for the original technical error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the server log",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
//
// Example:
//
//	err := fmt.Errorf("%w: orders", ErrNoRowsMarked)
//	msg := MapError(err)
//	// msg.Code == "ACT001"
//	// msg.Message == "No rows are marked"
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

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
//
// Example output: "No rows are marked (Code: ACT001). Mark at least one row in the table first"
//
// This is the primary function for displaying errors to end users.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing checks if an error matches a known pattern and should be shown to users.
// Returns true if the error matches a specific pattern (not the generic ERR000 fallback).
// Use this to decide whether to show the raw error or the mapped user message.
//
// Example:
//
//	if IsUserFacing(err) {
//	    showToUser(FormatUserError(err))
//	} else {
//	    slog.Error("request failed", "error", err)
//	    showToUser("An error occurred. Please try again.")
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}

// WrapWithUserMessage wraps a technical error with a user-friendly message.
// The original error is preserved for logging while providing a clean message for users.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError creates a UserError by mapping a technical error to a user-friendly message.
// The returned UserError preserves the original technical error for logging via Unwrap(),
// while providing a clean user message via Error().
//
// Returns nil if err is nil.
//
// Example:
//
//	ue := NewUserError(err)
//	slog.Error("action failed", "error", ue.Technical)
//	fmt.Println(ue.Error())   // "Some invoices were already sent"
//	fmt.Println(ue.User.Code) // "ACT002"
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}

package web

// messages.go maps technical errors to user-facing messages with support
// codes:
//
//	COL001 - Invalid header label (a label that is not text)
//	COL002 - Invalid column configuration
//	REQ001 - Malformed request body
//	REQ002 - Too many headers
//	REQ003 - Request body too large
//	ERR000 - Anything else; check the server log for the request ID

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/tabular/internal/columns"
	"github.com/JonMunkholm/tabular/internal/headerio"
)

var (
	errMalformedBody  = errors.New("malformed request body")
	errTooManyHeaders = errors.New("too many headers")
	errNoHeaders      = errors.New("no headers provided")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
	Status  int    // HTTP status
}

type errorRule struct {
	target error
	msg    UserMessage
}

// errorRules are checked in order with errors.Is; the first match wins.
var errorRules = []errorRule{
	{columns.ErrInvalidLabel, UserMessage{
		Message: "A header label is not text",
		Action:  "Send header names as strings",
		Code:    "COL001",
		Status:  http.StatusBadRequest,
	}},
	{columns.ErrInvalidConfig, UserMessage{
		Message: "The column configuration is invalid",
		Action:  "Use a coercion tag or a {type, render} record per column, with unique names",
		Code:    "COL002",
		Status:  http.StatusBadRequest,
	}},
	{errMalformedBody, UserMessage{
		Message: "The request body could not be read",
		Action:  "Send a JSON object with a headers array",
		Code:    "REQ001",
		Status:  http.StatusBadRequest,
	}},
	{errNoHeaders, UserMessage{
		Message: "No headers were provided",
		Action:  "Send at least one header name",
		Code:    "REQ001",
		Status:  http.StatusBadRequest,
	}},
	{headerio.ErrNoHeader, UserMessage{
		Message: "No header line was found in the upload",
		Action:  "Check the file is not empty and the delimiter is right",
		Code:    "REQ001",
		Status:  http.StatusBadRequest,
	}},
	{errTooManyHeaders, UserMessage{
		Message: "Too many headers in one request",
		Action:  "Split the header into smaller requests",
		Code:    "REQ002",
		Status:  http.StatusRequestEntityTooLarge,
	}},
}

var unknownError = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
	Status:  http.StatusInternalServerError,
}

var bodyTooLarge = UserMessage{
	Message: "The request body is too large",
	Action:  "Send fewer headers or a smaller configuration",
	Code:    "REQ003",
	Status:  http.StatusRequestEntityTooLarge,
}

// MapError converts an error into a UserMessage.
// Returns an empty UserMessage for nil errors.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) || strings.Contains(err.Error(), "request body too large") {
		return bodyTooLarge
	}

	for _, rule := range errorRules {
		if errors.Is(err, rule.target) {
			return rule.msg
		}
	}
	return unknownError
}

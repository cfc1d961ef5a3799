/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize status API responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Room and Event Errors
	ErrRoomNotJoined:         {Code: ErrRoomNotJoined, Message: "Not connected to a room.", Status: http.StatusConflict},
	ErrMessageContentTooLong: {Code: ErrMessageContentTooLong, Message: "Message is too long.", Status: http.StatusBadRequest},
	ErrMessageContentEmpty:   {Code: ErrMessageContentEmpty, Message: "Message is empty.", Status: http.StatusBadRequest},
	ErrEventUnknown:          {Code: ErrEventUnknown, Message: "Unknown event: %s."},
	ErrEventMalformed:        {Code: ErrEventMalformed, Message: "Event payload could not be processed: %s."},

	// 3xxx: Session and Permission Errors
	ErrSessionExpired: {Code: ErrSessionExpired, Message: "Session has expired."},
	ErrNotAuthorized:  {Code: ErrNotAuthorized, Message: "You are not allowed to use this command."},

	// 4xxx: Command Dispatch Errors
	ErrCommandUnknown:   {Code: ErrCommandUnknown, Message: "Unknown command: %s."},
	ErrCommandThrottled: {Code: ErrCommandThrottled, Message: "Slow down and try again in a moment."},
	ErrCommandFailed:    {Code: ErrCommandFailed, Message: "Command failed. Please try again."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}

/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
and in responses from the bot's status API.
*/
package errs

// 1xxx: General Request Handling Errors (status API)
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Room and Event Errors
const (
	// ErrRoomNotJoined indicates that the bot is not currently connected to a room.
	ErrRoomNotJoined = 2101

	// ErrMessageContentTooLong indicates that an outbound message exceeded the maximum length limit.
	ErrMessageContentTooLong = 2201

	// ErrMessageContentEmpty indicates that an outbound message had no content.
	ErrMessageContentEmpty = 2202

	// ErrEventUnknown indicates that an incoming event name has no registered record type.
	ErrEventUnknown = 2301

	// ErrEventMalformed indicates that an incoming event payload failed hydration.
	ErrEventMalformed = 2302
)

// 3xxx: Session and Permission Errors
const (
	// ErrSessionExpired indicates that the bot's session token has expired.
	ErrSessionExpired = 3001

	// ErrNotAuthorized indicates that a user's role is below the minimum required for a command.
	ErrNotAuthorized = 3002
)

// 4xxx: Command Dispatch Errors
const (
	// ErrCommandUnknown indicates that no handler is registered for a command alias.
	ErrCommandUnknown = 4001

	// ErrCommandThrottled indicates that a user issued commands faster than allowed.
	ErrCommandThrottled = 4002

	// ErrCommandFailed indicates that a command handler returned an error.
	ErrCommandFailed = 4003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general internal error.
	ErrUnknown = 5000
)

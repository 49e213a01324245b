/*
Package errs provides custom error types and application-level error code constants.

These codes identify specific business or system errors both inside the server
and in communication with clients. The errorMap at the bottom holds the
template message and HTTP status attached to each code.
*/
package errs

import "net/http"

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates an unsupported Content-Type header.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates a malformed request body.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate exceeded the limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Room Business Logic Errors
const (
	// ErrRoomCodeExists indicates that the room code chosen at creation is taken.
	ErrRoomCodeExists = 2101

	// ErrRoomNotFound indicates that no room exists for the requested code.
	ErrRoomNotFound = 2102

	// ErrRoomIsFull indicates that the room reached its participant capacity.
	ErrRoomIsFull = 2103
)

// 3xxx: Participant and Content Errors
const (
	// ErrDuplicateClient indicates a connect attempt with a client id that is
	// already a participant. The existing session is kept, the new one refused.
	ErrDuplicateClient = 3101

	// ErrParticipantNotFound indicates a removal of a client id that is not a
	// participant. Disconnect paths treat this as "already gone", not fatal.
	ErrParticipantNotFound = 3102

	// ErrSenderNotParticipant indicates a message from a client that is not
	// (or no longer) a participant. Expected under disconnect races.
	ErrSenderNotParticipant = 3103

	// ErrInvalidClientID indicates an empty or over-long client identifier.
	ErrInvalidClientID = 3201

	// ErrInvalidContent indicates empty or over-long message content.
	ErrInvalidContent = 3202
)

// 4xxx: Delivery Errors
const (
	// ErrDeliveryUnknown indicates a delivery attempt to a client id with no
	// registered sink.
	ErrDeliveryUnknown = 4001

	// ErrDeliveryClosed indicates that the sink rejected the payload. The
	// sink is presumed dead and is evicted from the registry.
	ErrDeliveryClosed = 4002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000
)

// errorMap stores the CustomError template for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Room Business Logic Errors
	ErrRoomCodeExists: {Code: ErrRoomCodeExists, Message: "Room code already exists.", Status: http.StatusConflict},
	ErrRoomNotFound:   {Code: ErrRoomNotFound, Message: "Room not found.", Status: http.StatusNotFound},
	ErrRoomIsFull:     {Code: ErrRoomIsFull, Message: "This room is full.", Status: http.StatusServiceUnavailable},

	// 3xxx: Participant and Content Errors
	ErrDuplicateClient:      {Code: ErrDuplicateClient, Message: "Client '%s' is already connected.", Status: http.StatusConflict},
	ErrParticipantNotFound:  {Code: ErrParticipantNotFound, Message: "Client '%s' is not a participant.", Status: http.StatusNotFound},
	ErrSenderNotParticipant: {Code: ErrSenderNotParticipant, Message: "Sender '%s' is not a participant.", Status: http.StatusConflict},
	ErrInvalidClientID:      {Code: ErrInvalidClientID, Message: "Client id must be 1-%d characters.", Status: http.StatusBadRequest},
	ErrInvalidContent:       {Code: ErrInvalidContent, Message: "Message content must be 1-%d characters.", Status: http.StatusBadRequest},

	// 4xxx: Delivery Errors
	ErrDeliveryUnknown: {Code: ErrDeliveryUnknown, Message: "No delivery sink registered for '%s'.", Status: http.StatusNotFound},
	ErrDeliveryClosed:  {Code: ErrDeliveryClosed, Message: "Delivery sink for '%s' is closed.", Status: http.StatusGone},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}

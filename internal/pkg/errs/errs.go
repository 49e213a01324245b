/*
Package errs provides custom error types and application-level error code constants.

This file defines the CustomError struct, which implements the standard Go error
interface and carries a business code, a client-facing message, and the HTTP
status code used when the error surfaces through the API.
*/
package errs

import (
	"errors"
	"fmt"
	"strings"

	"parlor/internal/pkg/logx"
)

// CustomError is the error structure used throughout the application.
// It wraps the Go error interface, adding a business code and HTTP status code.
type CustomError struct {
	// Code is the business error code (see constants definition).
	Code int

	// Message is the client-facing error description.
	Message string

	// Status is the HTTP status code corresponding to this error.
	Status int
}

// Error implements the standard Go error interface.
func (e *CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError constructs a new *CustomError from a predefined error code.
// The optional details are applied printf-style when the template message
// contains formatting placeholders. An unknown code falls back to ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	template, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with a code missing from errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknown := errorMap[ErrUnknown]
		return &CustomError{
			Code:    unknown.Code,
			Message: unknown.Message,
			Status:  unknown.Status,
		}
	}

	err := template

	if len(details) > 0 && strings.Contains(err.Message, "%") {
		err.Message = fmt.Sprintf(err.Message, details...)
	}

	return &err
}

// Is reports whether err is (or wraps) a CustomError carrying the given code.
// Callers use it to branch on the taxonomy without unwrapping manually.
func Is(err error, code int) bool {
	var custom *CustomError
	return errors.As(err, &custom) && custom.Code == code
}

// CodeOf extracts the business code from err, or ErrUnknown when err does
// not carry a CustomError.
func CodeOf(err error) int {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom.Code
	}
	return ErrUnknown
}

package types

import (
	"errors"

	appErr "github.com/leadflow/server/pkg/errors"
)

// FromAppError converts an error into the wire representation. Only the
// user-safe message crosses the boundary; wrapped causes stay server-side.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var ae *appErr.AppError
	if errors.As(err, &ae) {
		return &APIError{Code: string(ae.Code), Message: ae.Message}
	}
	return &APIError{Code: string(appErr.CodeUnknown), Message: "Server error"}
}

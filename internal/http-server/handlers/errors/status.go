package errors

import (
	"VendorChat/impl/core"
	"VendorChat/internal/service/profile"
	"VendorChat/internal/service/schedule"
	"context"
	stderrors "errors"
	"net/http"
)

// Status maps a core error to the response code and the public message.
func Status(err error) (int, string) {
	switch {
	case stderrors.Is(err, core.ErrNotReady):
		return http.StatusBadRequest, "System is not ready"
	case stderrors.Is(err, core.ErrVendorNotFound):
		return http.StatusNotFound, "Vendor not found"
	case stderrors.Is(err, core.ErrUnknownTimezone):
		return http.StatusBadRequest, "Unknown timezone"
	case stderrors.Is(err, schedule.ErrInvalidDate):
		return http.StatusBadRequest, schedule.ErrInvalidDate.Error()
	case stderrors.Is(err, profile.ErrInvalidUser):
		return http.StatusBadRequest, err.Error()
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Request timed out"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

package errors

import (
	"VendorChat/impl/core"
	"VendorChat/internal/service/schedule"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		code int
		msg  string
	}{
		{core.ErrNotReady, http.StatusBadRequest, "System is not ready"},
		{fmt.Errorf("lookup: %w", core.ErrVendorNotFound), http.StatusNotFound, "Vendor not found"},
		{fmt.Errorf("%w: Mars/Olympus", core.ErrUnknownTimezone), http.StatusBadRequest, "Unknown timezone"},
		{schedule.ErrInvalidDate, http.StatusBadRequest, schedule.ErrInvalidDate.Error()},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "Internal error"},
	}
	for _, tt := range tests {
		code, msg := Status(tt.err)
		if code != tt.code || msg != tt.msg {
			t.Errorf("Status(%v) = %d %q, want %d %q", tt.err, code, msg, tt.code, tt.msg)
		}
	}
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(nil)(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

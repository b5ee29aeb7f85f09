package bot

import (
	"VendorChat/entity"
	"VendorChat/internal/service/directory"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"*bold* stays", "*bold* stays"},
		{"14:00-15:30.", "14:00\\-15:30\\."},
		{"+15551234567 (cell)", "\\+15551234567 \\(cell\\)"},
		{"a_b [x]!", "a\\_b \\[x\\]\\!"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitize(tt.in); got != tt.want {
			t.Errorf("sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatVendors(t *testing.T) {
	got := formatVendors([]directory.Entry{{"id_a", "Acme"}, {"id_b", "Bright"}})
	if got != "id_a: Acme\nid_b: Bright" {
		t.Errorf("unexpected %q", got)
	}
	if formatVendors(nil) != "No vendors" {
		t.Error("expected empty notice")
	}
}

func TestFormatBookings(t *testing.T) {
	got := formatBookings("id_a", []entity.Booking{
		{Date: "2026-10-20", Start: "14:00", End: "15:30", Service: "TV mounting", Name: "Ada"},
	})
	want := "Bookings for id_a:\n2026-10-20 14:00-15:30 TV mounting, Ada"
	if got != want {
		t.Errorf("unexpected %q", got)
	}
	if formatBookings("id_b", nil) != "No bookings for id_b" {
		t.Error("expected empty notice")
	}
}

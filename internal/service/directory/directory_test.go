package directory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validDirectory = `{
  "id_b": {
    "name": "Bright Plumbing",
    "serviceFee": "$60",
    "hourlyCharge": "$95",
    "services": [
      {"name": "Leak repair", "description": "Find and fix leaks", "durationMinutes": 90}
    ]
  },
  "id_a": {
    "name": "Acme Handyman",
    "serviceFee": "$80",
    "hourlyCharge": "$70",
    "services": []
  }
}`

func TestParseValid(t *testing.T) {
	dir, err := Parse([]byte(validDirectory))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(dir) != 2 {
		t.Fatalf("expected 2 vendors, got %d", len(dir))
	}
	v := dir["id_b"]
	if v.Services[0].DurationMinutes != 90 {
		t.Errorf("expected duration 90, got %d", v.Services[0].DurationMinutes)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad json", `{"id_a":`, "decode vendors"},
		{"null", `null`, "empty"},
		{"bad fee", `{"id_a":{"name":"A","serviceFee":"80","hourlyCharge":"$1","services":[]}}`, "currency"},
		{"missing services", `{"id_a":{"name":"A","serviceFee":"$80","hourlyCharge":"$1"}}`, "id_a"},
		{"negative duration", `{"id_a":{"name":"A","serviceFee":"$80","hourlyCharge":"$1","services":[{"name":"x","description":"y","durationMinutes":-5}]}}`, "id_a"},
		{"fractional duration", `{"id_a":{"name":"A","serviceFee":"$80","hourlyCharge":"$1","services":[{"name":"x","description":"y","durationMinutes":1.5}]}}`, "decode vendors"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendors.json")
	if err := os.WriteFile(path, []byte(validDirectory), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestList(t *testing.T) {
	dir, err := Parse([]byte(validDirectory))
	if err != nil {
		t.Fatal(err)
	}
	list := List(dir)
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0][0] != "id_a" || list[0][1] != "Acme Handyman" {
		t.Errorf("unexpected first entry %v", list[0])
	}
	if list[1][0] != "id_b" {
		t.Errorf("unexpected second entry %v", list[1])
	}
}

func TestShippedDirectory(t *testing.T) {
	if _, err := Load("../../../data/vendors.json"); err != nil {
		t.Fatalf("shipped vendors file invalid: %v", err)
	}
}

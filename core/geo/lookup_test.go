package geo

import "testing"

func TestLocate(t *testing.T) {
	tests := []struct {
		ip          string
		wantCountry string
		wantLabel   string
	}{
		{"127.0.0.1", "LOCAL", "localhost, Local Machine"},
		{"::1", "LOCAL", "localhost, Local Machine"},
		{"localhost", "LOCAL", "localhost, Local Machine"},
		{"203.0.113.7", "XX", "Unknown, Unknown Location"},
		{"", "XX", "Unknown, Unknown Location"},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			loc := Locate(tt.ip)
			if loc.Country != tt.wantCountry {
				t.Errorf("country: got %q, want %q", loc.Country, tt.wantCountry)
			}
			if got := loc.Label(); got != tt.wantLabel {
				t.Errorf("label: got %q, want %q", got, tt.wantLabel)
			}
		})
	}
}

func TestLabelEmpty(t *testing.T) {
	if got := (Location{}).Label(); got != "Unknown Location" {
		t.Errorf("got %q, want Unknown Location", got)
	}
}

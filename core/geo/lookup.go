package geo

import "strings"

// Location is the crude bucket a client address resolves to. This is a
// deliberate stub: real geolocation is out of scope, so everything that
// isn't localhost lands in the "XX" bucket.
type Location struct {
	Country     string
	CountryName string
	Region      string
	City        string
}

// Locate maps an IP address to a location bucket.
func Locate(ip string) Location {
	switch ip {
	case "127.0.0.1", "::1", "localhost":
		return Location{
			Country:     "LOCAL",
			CountryName: "Local Machine",
			City:        "localhost",
		}
	}
	return Location{
		Country:     "XX",
		CountryName: "Unknown Location",
		City:        "Unknown",
	}
}

// Label joins the non-empty location parts for display.
func (l Location) Label() string {
	var parts []string
	for _, part := range []string{l.City, l.Region, l.CountryName} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "Unknown Location"
	}
	return strings.Join(parts, ", ")
}

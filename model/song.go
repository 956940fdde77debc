package model

// Song is one entry in the on-disk catalog. Its key is the normalized
// identifier derived from the audio filename; the key is the map key in
// the persisted catalog file and is not repeated inside the entry.
type Song struct {
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Filename  string `json:"filename"`
	Duration  int    `json:"duration"` // seconds
	PlayCount int    `json:"playCount"`
	// TotalListenTime is persisted and reported but no endpoint increments
	// it. Kept as-is until an increment policy is decided.
	TotalListenTime int    `json:"totalListenTime"`
	CoverArt        string `json:"coverArt,omitempty"` // data URI
}

// Catalog is the full song catalog keyed by normalized song id.
type Catalog map[string]*Song

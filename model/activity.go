package model

// ActivityEntry is one play event in the in-memory activity feed. The
// feed is not persisted and resets when the process restarts.
type ActivityEntry struct {
	Timestamp int64  `json:"timestamp"` // epoch seconds
	SongKey   string `json:"songKey"`
	SongTitle string `json:"songTitle"`
	Location  string `json:"location"`
	Country   string `json:"country"`
	IPAddress string `json:"ipAddress"`
}

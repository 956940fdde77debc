package activity

import (
	"sync"
	"time"

	"javiradio/core/geo"
	"javiradio/model"
)

const (
	// capacity bounds the buffer; the oldest entry is dropped when full.
	capacity = 100
	// maxRecent is the most entries a consumer ever sees.
	maxRecent = 20
	// listenerWindow is how many of the newest entries count toward the
	// distinct-listener figure.
	listenerWindow = 10
)

// Locator resolves an IP address to a location bucket.
type Locator func(ip string) geo.Location

// Summary is the consumer view of the feed.
type Summary struct {
	Activities      []model.ActivityEntry `json:"activities"`
	ActiveListeners int                   `json:"activeListeners"`
	TotalCountries  int                   `json:"totalCountries"`
}

// Feed is a bounded, newest-first buffer of play events shared by all
// requests. It lives in process memory only and resets on restart.
type Feed struct {
	mu      sync.Mutex
	entries []model.ActivityEntry // index 0 is newest
	locate  Locator
}

// NewFeed creates an activity feed. A nil locate falls back to the
// built-in stub lookup.
func NewFeed(locate Locator) *Feed {
	if locate == nil {
		locate = geo.Locate
	}
	return &Feed{locate: locate}
}

// Record pushes a play event to the front of the buffer.
func (f *Feed) Record(songKey, songTitle, ip string) {
	location := f.locate(ip)

	entry := model.ActivityEntry{
		Timestamp: time.Now().Unix(),
		SongKey:   songKey,
		SongTitle: songTitle,
		Location:  location.Label(),
		Country:   location.Country,
		IPAddress: ip,
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.entries) >= capacity {
		f.entries = f.entries[:capacity-1]
	}
	f.entries = append([]model.ActivityEntry{entry}, f.entries...)
}

// Recent returns the newest entries and the derived listener and
// country figures.
func (f *Feed) Recent() Summary {
	f.mu.Lock()
	defer f.mu.Unlock()

	shown := len(f.entries)
	if shown > maxRecent {
		shown = maxRecent
	}
	activities := make([]model.ActivityEntry, shown)
	copy(activities, f.entries[:shown])

	window := len(f.entries)
	if window > listenerWindow {
		window = listenerWindow
	}
	listeners := map[string]struct{}{}
	for _, entry := range f.entries[:window] {
		listeners[entry.IPAddress] = struct{}{}
	}

	countries := map[string]struct{}{}
	for _, entry := range f.entries {
		countries[entry.Country] = struct{}{}
	}

	return Summary{
		Activities:      activities,
		ActiveListeners: len(listeners),
		TotalCountries:  len(countries),
	}
}

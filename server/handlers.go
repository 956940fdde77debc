package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/gorilla/mux"

	"javiradio/config"
	"javiradio/core/activity"
	"javiradio/core/auth"
	"javiradio/core/catalog"
	"javiradio/core/rating"
	"javiradio/logger"
	"javiradio/model"
	"javiradio/repository"
)

// APIHandler handles all API requests.
type APIHandler struct {
	cfg      *config.Config
	catalog  repository.CatalogRepository
	visitors repository.VisitorRepository
	builder  *catalog.Builder
	ratings  *rating.Aggregator
	feed     *activity.Feed
	auth     *auth.Manager
}

// NewAPIHandler creates the API handler with its collaborators.
func NewAPIHandler(
	cfg *config.Config,
	catalogRepo repository.CatalogRepository,
	visitorRepo repository.VisitorRepository,
	builder *catalog.Builder,
	ratings *rating.Aggregator,
	feed *activity.Feed,
	authManager *auth.Manager,
) *APIHandler {
	return &APIHandler{
		cfg:      cfg,
		catalog:  catalogRepo,
		visitors: visitorRepo,
		builder:  builder,
		ratings:  ratings,
		feed:     feed,
		auth:     authManager,
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

// clientIP returns the caller's network address without the port. It is
// also the default rating identity, so shared IPs collide and changing
// IPs allow re-rating.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// formatDuration renders seconds as m:ss with zero-padded seconds.
func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// formatListenTime renders total seconds as "Xh Ym", or "Ym" under an hour.
func formatListenTime(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// round1 rounds to one decimal for presentation. Stored averages keep
// full precision.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// sortedKeys gives the catalog a stable iteration order for responses.
func sortedKeys(songs model.Catalog) []string {
	keys := make([]string, 0, len(songs))
	for key := range songs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

const fallbackIndexPage = `<!DOCTYPE html>
<html><head><title>JaviRadio</title></head>
<body><h1>JaviRadio</h1><p>The UI bundle is missing; the API is up at /api/songs.</p></body></html>`

// IndexHandler serves the main page. Every load counts one visitor and
// refreshes the catalog from the audio directory.
func (h *APIHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	count := h.visitors.Increment()
	h.builder.Rebuild(h.cfg.AudioDir)

	logger.Debug("main page visit", logger.Int("visitorCount", count), logger.String("ip", clientIP(r)))

	indexPath := filepath.Join(h.cfg.WebAppDir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, fallbackIndexPage)
		return
	}
	http.ServeFile(w, r, indexPath)
}

type songView struct {
	Key               string  `json:"key"`
	Title             string  `json:"title"`
	Artist            string  `json:"artist"`
	Duration          int     `json:"duration"`
	PlayCount         int     `json:"playCount"`
	FormattedDuration string  `json:"formattedDuration"`
	URL               string  `json:"url"`
	AverageRating     float64 `json:"averageRating"`
	TotalRatings      int     `json:"totalRatings"`
	CoverArt          string  `json:"coverArt"`
}

// GetSongsHandler lists the catalog with per-song rating aggregates. An
// empty store is populated from the audio directory on first call.
func (h *APIHandler) GetSongsHandler(w http.ResponseWriter, r *http.Request) {
	songs := h.catalog.Load()
	if len(songs) == 0 {
		songs = h.builder.Rebuild(h.cfg.AudioDir)
	}

	book := h.ratings.Book()
	list := make([]songView, 0, len(songs))
	for _, key := range sortedKeys(songs) {
		song := songs[key]

		var average float64
		var total int
		if ledger, ok := book[key]; ok {
			average = ledger.AverageRating
			total = ledger.TotalRatings
		}

		list = append(list, songView{
			Key:               key,
			Title:             song.Title,
			Artist:            song.Artist,
			Duration:          song.Duration,
			PlayCount:         song.PlayCount,
			FormattedDuration: formatDuration(song.Duration),
			URL:               "/static/javiradio/" + song.Filename,
			AverageRating:     round1(average),
			TotalRatings:      total,
			CoverArt:          song.CoverArt,
		})
	}

	respondJSON(w, http.StatusOK, list)
}

// PlaySongHandler increments a song's play count and records the play
// in the activity feed.
func (h *APIHandler) PlaySongHandler(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["songKey"]

	var played *model.Song
	h.catalog.Replace(func(prev model.Catalog) model.Catalog {
		if song, ok := prev[key]; ok {
			song.PlayCount++
			played = song
		}
		return prev
	})

	if played == nil {
		respondJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"error":   "Song not found",
		})
		return
	}

	h.feed.Record(key, played.Title, clientIP(r))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"song":      played,
		"playCount": played.PlayCount,
	})
}

// GetStatsHandler aggregates play and rating statistics across the
// whole catalog.
func (h *APIHandler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	songs := h.catalog.Load()
	book := h.ratings.Book()

	totalPlays := 0
	totalListenTime := 0
	for _, song := range songs {
		totalPlays += song.PlayCount
		totalListenTime += song.TotalListenTime
	}

	totalRatings := 0
	ratingSum := 0.0
	ratedSongs := 0
	for key := range songs {
		ledger, ok := book[key]
		if !ok || ledger.TotalRatings == 0 {
			continue
		}
		totalRatings += ledger.TotalRatings
		ratingSum += ledger.AverageRating * float64(ledger.TotalRatings)
		ratedSongs++
	}
	overallAverage := 0.0
	if totalRatings > 0 {
		overallAverage = ratingSum / float64(totalRatings)
	}

	// Alphabetical pre-sort keeps ties deterministic before ranking by
	// play count.
	keys := sortedKeys(songs)
	sort.SliceStable(keys, func(i, j int) bool {
		return songs[keys[i]].PlayCount > songs[keys[j]].PlayCount
	})
	topSongs := []map[string]interface{}{}
	for _, key := range keys {
		if len(topSongs) == 5 {
			break
		}
		topSongs = append(topSongs, map[string]interface{}{
			"title": songs[key].Title,
			"plays": songs[key].PlayCount,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"totalSongs":           len(songs),
		"totalPlays":           totalPlays,
		"totalListenTime":      totalListenTime,
		"formattedListenTime":  formatListenTime(totalListenTime),
		"topSongs":             topSongs,
		"currentListeners":     1, // placeholder, no live listener tracking
		"totalRatings":         totalRatings,
		"ratedSongs":           ratedSongs,
		"overallAverageRating": round1(overallAverage),
	})
}

// GetVisitorCountHandler reports the counter without incrementing it.
func (h *APIHandler) GetVisitorCountHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": h.visitors.Count(),
	})
}

// GetRecentActivityHandler reports the activity feed summary.
func (h *APIHandler) GetRecentActivityHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.feed.Recent())
}

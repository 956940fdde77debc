package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"javiradio/core/rating"
	"javiradio/logger"
	"javiradio/model"
)

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{"error": message})
}

// RateSongHandler accepts a JSON body {"rating": n} and records the
// caller's rating. Check order is part of the contract: unknown song
// first (404), then content type, JSON shape, missing, non-numeric and
// range (all 400).
func (h *APIHandler) RateSongHandler(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["songKey"]

	songs := h.catalog.Load()
	song, ok := songs[key]
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Song %q not found", key))
		return
	}

	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		respondError(w, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}

	var body struct {
		Rating interface{} `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON data")
		return
	}

	ledger, stars, err := h.ratings.Submit(key, body.Rating, clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, rating.ErrRatingRequired):
			respondError(w, http.StatusBadRequest, "Rating is required")
		case errors.Is(err, rating.ErrRatingNotNumber):
			respondError(w, http.StatusBadRequest, "Rating must be a number")
		case errors.Is(err, rating.ErrRatingOutOfRange):
			respondError(w, http.StatusBadRequest, "Rating must be between 1 and 5 stars")
		case errors.Is(err, model.ErrNotFound):
			respondError(w, http.StatusNotFound, fmt.Sprintf("Song %q not found", key))
		default:
			logger.Error("rating submission failed", logger.String("songKey", key), logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Internal server error while submitting rating")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"ratingInfo": ledger,
		"message":    fmt.Sprintf("Rating of %d stars submitted successfully!", stars),
		"songTitle":  song.Title,
	})
}

// GetSongRatingHandler reports one song's aggregates plus the caller's
// own rating. Unknown songs answer 404 with zeroed fields.
func (h *APIHandler) GetSongRatingHandler(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["songKey"]

	songs := h.catalog.Load()
	song, ok := songs[key]
	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]interface{}{
			"songKey":       key,
			"averageRating": 0.0,
			"totalRatings":  0,
			"userRating":    0,
			"error":         "Song not found",
		})
		return
	}

	info := h.ratings.Info(key)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"songKey":       key,
		"averageRating": round1(info.AverageRating),
		"totalRatings":  info.TotalRatings,
		"userRating":    h.ratings.UserRating(key, clientIP(r)),
		"songTitle":     song.Title,
	})
}

// GetAllRatingsHandler reports aggregates for every cataloged song,
// zero-valued for songs nobody has rated yet.
func (h *APIHandler) GetAllRatingsHandler(w http.ResponseWriter, r *http.Request) {
	songs := h.catalog.Load()
	book := h.ratings.Book()

	result := map[string]interface{}{}
	ratedSongs := 0
	for key, song := range songs {
		var average float64
		var total int
		if ledger, ok := book[key]; ok {
			average = ledger.AverageRating
			total = ledger.TotalRatings
		}
		if total > 0 {
			ratedSongs++
		}
		result[key] = map[string]interface{}{
			"averageRating": round1(average),
			"totalRatings":  total,
			"songTitle":     song.Title,
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ratings":    result,
		"totalSongs": len(songs),
		"ratedSongs": ratedSongs,
	})
}

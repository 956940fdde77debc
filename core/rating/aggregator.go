package rating

import (
	"fmt"
	"time"

	"javiradio/model"
	"javiradio/repository"
)

// Validation errors for rating submissions, distinguishable with
// errors.Is so the API can report the exact problem.
var (
	ErrRatingRequired   = fmt.Errorf("rating is required: %w", model.ErrValidation)
	ErrRatingNotNumber  = fmt.Errorf("rating must be a number: %w", model.ErrValidation)
	ErrRatingOutOfRange = fmt.Errorf("rating must be between 1 and 5: %w", model.ErrValidation)
)

// Aggregator maintains per-song rating ledgers and keeps the running
// average current on every write.
type Aggregator struct {
	ratings repository.RatingRepository
	catalog repository.CatalogRepository
}

// NewAggregator creates a rating aggregator.
func NewAggregator(ratings repository.RatingRepository, catalog repository.CatalogRepository) *Aggregator {
	return &Aggregator{ratings: ratings, catalog: catalog}
}

// Submit records a rating for songKey by userID and returns the updated
// ledger plus the accepted star value. A fractional rating is truncated
// toward zero before range checking, so 5.9 is a valid 5 and 0.9 an
// invalid 0. An existing entry for userID is replaced in place; the
// ledger never holds two entries for the same user.
func (a *Aggregator) Submit(songKey string, value interface{}, userID string) (*model.RatingLedger, int, error) {
	if _, ok := a.catalog.Load()[songKey]; !ok {
		return nil, 0, fmt.Errorf("song %q: %w", songKey, model.ErrNotFound)
	}

	stars, err := truncateRating(value)
	if err != nil {
		return nil, 0, err
	}

	entry := model.RatingEntry{
		UserID:    userID,
		Rating:    stars,
		Timestamp: time.Now().Unix(),
	}

	var ledger *model.RatingLedger
	a.ratings.Update(func(book model.RatingBook) {
		current := book[songKey]
		if current == nil {
			current = &model.RatingLedger{}
			book[songKey] = current
		}

		replaced := false
		for i := range current.Ratings {
			if current.Ratings[i].UserID == userID {
				current.Ratings[i] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			current.Ratings = append(current.Ratings, entry)
		}

		recompute(current)
		ledger = current
	})

	return ledger, stars, nil
}

// Info returns the ledger for songKey. Unknown keys yield the zero
// ledger; this never fails.
func (a *Aggregator) Info(songKey string) *model.RatingLedger {
	if ledger, ok := a.ratings.Load()[songKey]; ok {
		return ledger
	}
	return &model.RatingLedger{Ratings: []model.RatingEntry{}}
}

// UserRating returns userID's rating for songKey, 0 when the user has
// no entry or the song is unknown.
func (a *Aggregator) UserRating(songKey, userID string) int {
	ledger, ok := a.ratings.Load()[songKey]
	if !ok {
		return 0
	}
	for _, entry := range ledger.Ratings {
		if entry.UserID == userID {
			return entry.Rating
		}
	}
	return 0
}

// Book returns the whole rating store for bulk views.
func (a *Aggregator) Book() model.RatingBook {
	return a.ratings.Load()
}

// truncateRating applies the truncate-then-validate rule. The order
// matters and is part of the observable contract.
func truncateRating(value interface{}) (int, error) {
	if value == nil {
		return 0, ErrRatingRequired
	}

	var stars int
	switch v := value.(type) {
	case float64: // what encoding/json produces for any JSON number
		stars = int(v)
	case int:
		stars = v
	default:
		return 0, ErrRatingNotNumber
	}

	if stars < 1 || stars > 5 {
		return 0, ErrRatingOutOfRange
	}
	return stars, nil
}

func recompute(ledger *model.RatingLedger) {
	ledger.TotalRatings = len(ledger.Ratings)
	if ledger.TotalRatings == 0 {
		ledger.AverageRating = 0.0
		return
	}
	sum := 0
	for _, entry := range ledger.Ratings {
		sum += entry.Rating
	}
	ledger.AverageRating = float64(sum) / float64(ledger.TotalRatings)
}

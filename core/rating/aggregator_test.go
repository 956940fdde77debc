package rating

import (
	"errors"
	"path/filepath"
	"testing"

	"javiradio/model"
	"javiradio/repository"
)

func newTestAggregator(t *testing.T, songs ...string) *Aggregator {
	t.Helper()
	tmp := t.TempDir()
	catalogRepo := repository.NewFileCatalogRepository(filepath.Join(tmp, "song_data.json"))
	ratingRepo := repository.NewFileRatingRepository(filepath.Join(tmp, "ratings_data.json"))

	catalogRepo.Replace(func(prev model.Catalog) model.Catalog {
		for _, key := range songs {
			prev[key] = &model.Song{Title: key, Filename: key + ".mp3", Duration: 180}
		}
		return prev
	})
	return NewAggregator(ratingRepo, catalogRepo)
}

func TestSubmit(t *testing.T) {
	t.Run("valid rating", func(t *testing.T) {
		agg := newTestAggregator(t, "sunset_drive")

		ledger, stars, err := agg.Submit("sunset_drive", float64(4), "10.0.0.1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stars != 4 {
			t.Errorf("stars: got %d, want 4", stars)
		}
		if ledger.TotalRatings != 1 || ledger.AverageRating != 4.0 {
			t.Errorf("unexpected ledger: %+v", ledger)
		}
	})

	t.Run("second rating from same user replaces in place", func(t *testing.T) {
		agg := newTestAggregator(t, "sunset_drive")

		if _, _, err := agg.Submit("sunset_drive", float64(4), "10.0.0.1"); err != nil {
			t.Fatal(err)
		}
		ledger, _, err := agg.Submit("sunset_drive", float64(2), "10.0.0.1")
		if err != nil {
			t.Fatal(err)
		}

		if ledger.TotalRatings != 1 {
			t.Errorf("totalRatings: got %d, want 1", ledger.TotalRatings)
		}
		if len(ledger.Ratings) != 1 {
			t.Fatalf("expected one entry, got %d", len(ledger.Ratings))
		}
		if ledger.Ratings[0].Rating != 2 {
			t.Errorf("rating: got %d, want 2", ledger.Ratings[0].Rating)
		}
		if ledger.AverageRating != 2.0 {
			t.Errorf("average: got %v, want 2.0", ledger.AverageRating)
		}
	})

	t.Run("average over several users", func(t *testing.T) {
		agg := newTestAggregator(t, "sunset_drive")

		agg.Submit("sunset_drive", float64(5), "10.0.0.1")
		agg.Submit("sunset_drive", float64(4), "10.0.0.2")
		ledger, _, err := agg.Submit("sunset_drive", float64(3), "10.0.0.3")
		if err != nil {
			t.Fatal(err)
		}
		if ledger.TotalRatings != 3 {
			t.Errorf("totalRatings: got %d, want 3", ledger.TotalRatings)
		}
		if ledger.AverageRating != 4.0 {
			t.Errorf("average: got %v, want 4.0", ledger.AverageRating)
		}
	})

	t.Run("fractional input truncates toward zero before validation", func(t *testing.T) {
		agg := newTestAggregator(t, "sunset_drive")

		// 5.9 truncates to a valid 5.
		_, stars, err := agg.Submit("sunset_drive", 5.9, "10.0.0.1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stars != 5 {
			t.Errorf("stars: got %d, want 5", stars)
		}

		// 0.9 truncates to an invalid 0.
		_, _, err = agg.Submit("sunset_drive", 0.9, "10.0.0.2")
		if !errors.Is(err, ErrRatingOutOfRange) {
			t.Errorf("expected out-of-range error, got %v", err)
		}
	})

	t.Run("invalid submissions leave the ledger untouched", func(t *testing.T) {
		agg := newTestAggregator(t, "sunset_drive")
		agg.Submit("sunset_drive", float64(4), "10.0.0.1")

		cases := []struct {
			name  string
			value interface{}
			want  error
		}{
			{"zero", float64(0), ErrRatingOutOfRange},
			{"six", float64(6), ErrRatingOutOfRange},
			{"string", "abc", ErrRatingNotNumber},
			{"missing", nil, ErrRatingRequired},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, _, err := agg.Submit("sunset_drive", tc.value, "10.0.0.9")
				if !errors.Is(err, tc.want) {
					t.Errorf("got %v, want %v", err, tc.want)
				}
				if !errors.Is(err, model.ErrValidation) {
					t.Errorf("expected a validation error, got %v", err)
				}
			})
		}

		ledger := agg.Info("sunset_drive")
		if ledger.TotalRatings != 1 {
			t.Errorf("ledger mutated by invalid submissions: %+v", ledger)
		}
	})

	t.Run("unknown song", func(t *testing.T) {
		agg := newTestAggregator(t, "sunset_drive")

		_, _, err := agg.Submit("nope", float64(3), "10.0.0.1")
		if !errors.Is(err, model.ErrNotFound) {
			t.Errorf("expected not-found error, got %v", err)
		}
		if len(agg.Book()) != 0 {
			t.Error("book mutated by unknown-song submission")
		}
	})
}

func TestInfo(t *testing.T) {
	agg := newTestAggregator(t, "sunset_drive")

	t.Run("unknown song yields zero ledger", func(t *testing.T) {
		ledger := agg.Info("nope")
		if ledger.TotalRatings != 0 || ledger.AverageRating != 0.0 || len(ledger.Ratings) != 0 {
			t.Errorf("expected zero ledger, got %+v", ledger)
		}
	})

	t.Run("known song", func(t *testing.T) {
		agg.Submit("sunset_drive", float64(3), "10.0.0.1")
		if got := agg.Info("sunset_drive").AverageRating; got != 3.0 {
			t.Errorf("average: got %v, want 3.0", got)
		}
	})
}

func TestUserRating(t *testing.T) {
	agg := newTestAggregator(t, "sunset_drive")
	agg.Submit("sunset_drive", float64(5), "10.0.0.1")

	tests := []struct {
		name    string
		songKey string
		userID  string
		want    int
	}{
		{"own rating", "sunset_drive", "10.0.0.1", 5},
		{"other user", "sunset_drive", "10.0.0.2", 0},
		{"unknown song", "nope", "10.0.0.1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agg.UserRating(tt.songKey, tt.userID); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

package model

// RatingEntry is a single user's rating of one song. UserID is the
// caller's network address unless another identity is supplied, so
// ratings are keyed by client IP in the default configuration.
type RatingEntry struct {
	UserID    string `json:"userId"`
	Rating    int    `json:"rating"` // 1..5
	Timestamp int64  `json:"timestamp"`
}

// RatingLedger holds all rating entries for one song plus the derived
// aggregates. AverageRating keeps full precision; rounding to one
// decimal happens only at the API boundary.
type RatingLedger struct {
	Ratings       []RatingEntry `json:"ratings"`
	TotalRatings  int           `json:"totalRatings"`
	AverageRating float64       `json:"averageRating"`
}

// RatingBook is the persisted rating store keyed by song id.
type RatingBook map[string]*RatingLedger

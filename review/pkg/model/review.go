package model

import (
	"github.com/jeisonBorba/reactive-app/pkg/validate"
)

// Review defines a single review for a movie info record. ID is assigned by
// the repository on first create and never changes afterwards. MovieInfoID is
// a pointer so a missing field can be told apart from zero.
type Review struct {
	ID          string  `json:"reviewId,omitempty"`
	MovieInfoID *int64  `json:"movieInfoId"`
	Comment     string  `json:"comment"`
	Rating      float64 `json:"rating"`
}

// Validate checks every field rule and reports all violations together,
// sorted and comma-joined.
func (r *Review) Validate() error {
	return validate.Check(
		validate.Rule{OK: r.MovieInfoID != nil, Message: "review.movieInfoId: must not be null"},
		validate.Rule{OK: r.Rating >= 0, Message: "review.rating: please pass a non-negative value"},
	)
}

// ReviewEvent defines an event carrying review information, consumed from the
// review events topic.
type ReviewEvent struct {
	Review
	ProviderID string          `json:"providerId"`
	EventType  ReviewEventType `json:"eventType"`
}

// ReviewEventType defines the type of review event.
type ReviewEventType string

// Existing review event types.
const (
	ReviewEventTypePut    = ReviewEventType("put")
	ReviewEventTypeDelete = ReviewEventType("delete")
)

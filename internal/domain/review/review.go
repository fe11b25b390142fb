// Package review holds product reviews keyed by product id.
package review

import (
	"github.com/google/uuid"
)

// DateLayout is the calendar format review dates are written in
const DateLayout = "2006-01-02"

// Review is a single customer review. Reviews are append-only.
type Review struct {
	ID       string `json:"id" yaml:"id"`
	UserID   string `json:"userId" yaml:"userId"`
	UserName string `json:"userName" yaml:"userName"`
	Rating   int    `json:"rating" yaml:"rating"`
	Comment  string `json:"comment" yaml:"comment"`
	Date     string `json:"date" yaml:"date"`
}

// Draft is the caller-supplied part of a review; ids are assigned on add.
type Draft struct {
	UserName string
	Rating   int
	Comment  string
	Date     string
}

// Book maps product id to its reviews in insertion order.
// Methods never mutate the receiver.
type Book map[string][]Review

// IDGenerator produces fresh identifiers for reviews and reviewers
type IDGenerator func() string

// NewID is the default IDGenerator
func NewID() string {
	return uuid.NewString()
}

// Add appends a review for productID and returns the new book and the stored review.
// The rating is not range-checked here.
func (b Book) Add(productID string, d Draft, newID IDGenerator) (Book, Review) {
	if newID == nil {
		newID = NewID
	}
	r := Review{
		ID:       newID(),
		UserID:   newID(),
		UserName: d.UserName,
		Rating:   d.Rating,
		Comment:  d.Comment,
		Date:     d.Date,
	}

	next := make(Book, len(b)+1)
	for id, list := range b {
		next[id] = list
	}
	existing := b[productID]
	list := make([]Review, len(existing), len(existing)+1)
	copy(list, existing)
	next[productID] = append(list, r)
	return next, r
}

// Get returns a copy of the reviews for productID, empty when there are none
func (b Book) Get(productID string) []Review {
	list := b[productID]
	out := make([]Review, len(list))
	copy(out, list)
	return out
}

// Count returns the number of reviews stored for productID
func (b Book) Count(productID string) int {
	return len(b[productID])
}

// AverageRating is the arithmetic mean of the ratings, 0 for an empty list.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

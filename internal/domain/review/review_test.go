package review

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestBook_Add(t *testing.T) {
	var book Book
	ids := sequentialIDs()

	next, r := book.Add("p1", Draft{UserName: "Ann", Rating: 4, Comment: "good", Date: "2024-03-01"}, ids)

	assert.Equal(t, "id-1", r.ID)
	assert.Equal(t, "id-2", r.UserID)
	assert.Equal(t, "Ann", r.UserName)
	assert.Empty(t, book.Get("p1"), "receiver must stay untouched")
	require.Len(t, next.Get("p1"), 1)
	assert.Equal(t, r, next.Get("p1")[0])
}

func TestBook_AddPreservesOrderAndOtherProducts(t *testing.T) {
	ids := sequentialIDs()
	book := Book{"p2": {{ID: "seed", Rating: 3}}}

	book, _ = book.Add("p1", Draft{UserName: "A", Rating: 5}, ids)
	book, _ = book.Add("p1", Draft{UserName: "B", Rating: 1}, ids)

	got := book.Get("p1")
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].UserName)
	assert.Equal(t, "B", got[1].UserName)
	assert.Equal(t, 1, book.Count("p2"))
}

func TestBook_AddDoesNotCheckRating(t *testing.T) {
	book, r := Book{}.Add("p1", Draft{UserName: "X", Rating: 9}, nil)
	assert.Equal(t, 9, r.Rating)
	assert.NotEmpty(t, r.ID)
	assert.NotEqual(t, r.ID, r.UserID)
	assert.Equal(t, 1, book.Count("p1"))
}

func TestBook_GetReturnsCopy(t *testing.T) {
	book := Book{"p1": {{ID: "r1", Rating: 5}}}
	got := book.Get("p1")
	got[0].Rating = 1
	assert.Equal(t, 5, book["p1"][0].Rating)

	assert.NotNil(t, book.Get("missing"))
	assert.Empty(t, book.Get("missing"))
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"empty", nil, 0},
		{"single", []int{3}, 3},
		{"four and five", []int{4, 5}, 4.5},
		{"mixed", []int{1, 2, 3, 4, 5}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := make([]Review, 0, len(tt.ratings))
			for _, r := range tt.ratings {
				reviews = append(reviews, Review{Rating: r})
			}
			assert.InDelta(t, tt.want, AverageRating(reviews), 1e-9)
		})
	}
}

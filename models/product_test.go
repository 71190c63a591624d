package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReviewRecomputesRating(t *testing.T) {
	p := &Product{}
	for _, r := range []int{5, 4, 3} {
		require.NoError(t, p.AddReview(Review{UserID: uuid.New(), Rating: r}))
	}
	assert.Equal(t, 4.0, p.Rating)

	require.NoError(t, p.AddReview(Review{UserID: uuid.New(), Rating: 2}))
	assert.Equal(t, 3.5, p.Rating)
	assert.Equal(t, 4, p.NumReviews)
}

func TestAddReviewRejectsDuplicateReviewer(t *testing.T) {
	p := &Product{}
	uid := uuid.New()
	require.NoError(t, p.AddReview(Review{UserID: uid, Rating: 5}))

	err := p.AddReview(Review{UserID: uid, Rating: 1})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, p.NumReviews)
	assert.Equal(t, 5.0, p.Rating)
}

func TestAddReviewRejectsOutOfRange(t *testing.T) {
	p := &Product{}
	assert.Error(t, p.AddReview(Review{UserID: uuid.New(), Rating: 0}))
	assert.Error(t, p.AddReview(Review{UserID: uuid.New(), Rating: 6}))
	assert.Zero(t, p.NumReviews)
}

func TestHasSize(t *testing.T) {
	p := &Product{Sizes: []string{"S", "M", " XL "}}
	assert.True(t, p.HasSize("m"))
	assert.True(t, p.HasSize("XL"))
	assert.False(t, p.HasSize("XXL"))
	assert.False(t, p.HasSize(""))
}

func TestParseProductSort(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseProductSort("PRICE_ASC"))
	assert.Equal(t, SortRating, ParseProductSort("rating"))
	assert.Equal(t, SortNewest, ParseProductSort("bogus"))
}

func TestPagination(t *testing.T) {
	page, limit := NormalizePage(0, 0, DefaultPageLimit)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageLimit, limit)

	_, limit = NormalizePage(1, 1000, DefaultPageLimit)
	assert.Equal(t, MaxPageLimit, limit)

	page, limit = NormalizePage(1<<62, MaxPageLimit, DefaultPageLimit)
	assert.Equal(t, MaxPage, page)
	assert.Equal(t, MaxPageLimit, limit)

	p := NewPagination(2, 12, 25)
	assert.Equal(t, Pagination{Current: 2, Pages: 3, Total: 25, HasNext: true, HasPrev: true}, p)
	assert.Equal(t, 0, NewPagination(1, 12, 0).Pages)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "19.99", FormatMinor(1999))
	assert.Equal(t, "0.05", FormatMinor(5))

	v, err := ParseMajor("19.99")
	require.NoError(t, err)
	assert.Equal(t, int64(1999), v)

	v, err = ParseMajor(" 599 ")
	require.NoError(t, err)
	assert.Equal(t, int64(59900), v)

	_, err = ParseMajor("1.999")
	assert.Error(t, err)
	_, err = ParseMajor("-1")
	assert.Error(t, err)
	_, err = ParseMajor("abc")
	assert.Error(t, err)
}

func TestErrorTaxonomy(t *testing.T) {
	assert.ErrorIs(t, NewNotFound("Order not found"), ErrNotFound)
	assert.Equal(t, "Order not found", NewNotFound("Order not found").Error())
	assert.ErrorIs(t, ErrCategoryInUse, ErrConflict)

	perr := &ProductError{Kind: ErrInsufficientStock, Name: "Hoodie"}
	assert.ErrorIs(t, perr, ErrInsufficientStock)
	assert.Equal(t, "Insufficient stock for Hoodie", perr.Error())
}

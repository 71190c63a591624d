package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxProductImages = 6
	MinReviewRating  = 1
	MaxReviewRating  = 5
)

type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"size:200;not null" json:"name"`
	Slug          string    `gorm:"size:220;not null;uniqueIndex" json:"slug"` // immutable once an order line references it
	Description   string    `gorm:"type:text" json:"description"`
	Images        []string  `gorm:"type:jsonb;serializer:json" json:"images"`
	Price         int64     `gorm:"not null;check:chk_products_price,price >= 0" json:"price"` // minor units
	CategoryID    uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId"`
	Category      *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Sizes         []string  `gorm:"type:jsonb;serializer:json" json:"sizes"`
	Rating        float64   `gorm:"not null;default:0" json:"rating"`
	NumReviews    int       `gorm:"not null;default:0" json:"numReviews"`
	Reviews       []Review  `gorm:"type:jsonb;serializer:json" json:"reviews"`
	StockQuantity int       `gorm:"not null;default:0;check:chk_products_stock,stock_quantity >= 0" json:"stockQuantity"`
	IsFeatured    bool      `gorm:"not null;index" json:"isFeatured"`
	IsActive      bool      `gorm:"not null;index" json:"isActive"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Review is stored inside its product document, never in a table of its own.
type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasSize reports whether size is one of the declared variants. Comparison
// ignores case and surrounding blanks.
func (p *Product) HasSize(size string) bool {
	size = strings.TrimSpace(size)
	for _, s := range p.Sizes {
		if strings.EqualFold(strings.TrimSpace(s), size) {
			return true
		}
	}
	return false
}

func (p *Product) ReviewedBy(userID uuid.UUID) bool {
	for _, r := range p.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// AddReview appends r and recomputes the derived rating fields over every
// review, including the new one.
func (p *Product) AddReview(r Review) error {
	if r.Rating < MinReviewRating || r.Rating > MaxReviewRating {
		return NewValidationError("Rating must be between 1 and 5", FieldError{Field: "rating", Message: "must be between 1 and 5"})
	}
	if p.ReviewedBy(r.UserID) {
		return ErrAlreadyReviewed
	}
	p.Reviews = append(p.Reviews, r)
	p.RecomputeRating()
	return nil
}

func (p *Product) RecomputeRating() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Rating = 0
		return
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = float64(sum) / float64(p.NumReviews)
}

type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortRating    ProductSort = "rating"
)

// ParseProductSort falls back to SortNewest for anything it does not know.
func ParseProductSort(s string) ProductSort {
	switch ProductSort(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	case SortRating:
		return SortRating
	default:
		return SortNewest
	}
}

type ProductFilter struct {
	CategoryIDs  []uuid.UUID
	Size         string
	MinPrice     *int64
	MaxPrice     *int64
	MinRating    *float64
	Search       string
	ActiveOnly   bool
	FeaturedOnly bool
	ExcludeID    uuid.UUID
	Sort         ProductSort
	Page         int
	Limit        int
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

type ReviewService struct {
	store models.Store
	now   func() time.Time
}

// AddReview attaches a review by reviewer to the product and refreshes its
// rating and review count.
func (s *ReviewService) AddReview(ctx context.Context, slug string, reviewer models.Identity, rating int, comment string) (*models.Product, error) {
	comment = strings.TrimSpace(comment)
	var fields []models.FieldError
	if rating < models.MinReviewRating || rating > models.MaxReviewRating {
		fields = append(fields, models.FieldError{Field: "rating", Message: "must be between 1 and 5"})
	}
	if comment == "" {
		fields = append(fields, models.FieldError{Field: "comment", Message: "comment is required"})
	}
	if len(fields) > 0 {
		return nil, models.NewValidationError("Please provide a rating and a comment", fields...)
	}

	name := reviewer.Name
	if u, err := s.store.Users.FindByID(ctx, reviewer.UserID); err == nil {
		name = u.Name
	}

	p, err := s.store.Products.MutateBySlug(ctx, slug, func(p *models.Product) error {
		if !p.IsActive {
			return models.ErrNotFound
		}
		return p.AddReview(models.Review{
			ID:        uuid.New(),
			UserID:    reviewer.UserID,
			Name:      name,
			Rating:    rating,
			Comment:   comment,
			CreatedAt: s.now(),
		})
	})
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewNotFound("Product not found")
	}
	if err != nil {
		return nil, err
	}
	log.Info().Str("product", p.Slug).Int("rating", rating).Float64("avg", p.Rating).Msg("review added")
	return p, nil
}

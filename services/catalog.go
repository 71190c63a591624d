package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

const (
	SearchResultLimit  = 4
	FeaturedLimit      = 8
	SimilarResultLimit = 4
)

// ProductQuery is the storefront listing request as it arrives in the query
// string. Prices are minor units.
type ProductQuery struct {
	Category string // comma-joined category ids
	Size     string
	MinPrice string
	MaxPrice string
	Rating   string
	Sort     string
	Search   string
	Page     int
	Limit    int
}

type CatalogService struct {
	store models.Store
}

func (q ProductQuery) filter() (models.ProductFilter, error) {
	var fields []models.FieldError
	f := models.ProductFilter{
		Size:       strings.TrimSpace(q.Size),
		Search:     strings.TrimSpace(q.Search),
		Sort:       models.ParseProductSort(q.Sort),
		ActiveOnly: true,
	}
	f.Page, f.Limit = models.NormalizePage(q.Page, q.Limit, models.DefaultPageLimit)

	for _, raw := range strings.Split(q.Category, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			fields = append(fields, models.FieldError{Field: "category", Message: "invalid category id " + raw})
			continue
		}
		f.CategoryIDs = append(f.CategoryIDs, id)
	}

	parsePrice := func(field, raw string) *int64 {
		if raw = strings.TrimSpace(raw); raw == "" {
			return nil
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			fields = append(fields, models.FieldError{Field: field, Message: "must be a non-negative integer amount"})
			return nil
		}
		return &v
	}
	f.MinPrice = parsePrice("minPrice", q.MinPrice)
	f.MaxPrice = parsePrice("maxPrice", q.MaxPrice)

	if raw := strings.TrimSpace(q.Rating); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > models.MaxReviewRating {
			fields = append(fields, models.FieldError{Field: "rating", Message: "must be a number between 0 and 5"})
		} else {
			f.MinRating = &v
		}
	}

	if len(fields) > 0 {
		return f, models.NewValidationError("Invalid product filters", fields...)
	}
	return f, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, models.Pagination, error) {
	f, err := q.filter()
	if err != nil {
		return nil, models.Pagination{}, err
	}
	list, total, err := s.store.Products.List(ctx, f)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return list, models.NewPagination(f.Page, f.Limit, total), nil
}

// SearchProducts backs the header search dropdown. An empty term yields no
// results rather than everything.
func (s *CatalogService) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Product{}, nil
	}
	list, _, err := s.store.Products.List(ctx, models.ProductFilter{
		Search:     term,
		ActiveOnly: true,
		Page:       1,
		Limit:      SearchResultLimit,
	})
	return list, err
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	p, err := s.store.Products.FindBySlug(ctx, slug)
	if errors.Is(err, models.ErrNotFound) || (err == nil && !p.IsActive) {
		return nil, models.NewNotFound("Product not found")
	}
	return p, err
}

func (s *CatalogService) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	list, _, err := s.store.Products.List(ctx, models.ProductFilter{
		ActiveOnly:   true,
		FeaturedOnly: true,
		Page:         1,
		Limit:        FeaturedLimit,
	})
	return list, err
}

func (s *CatalogService) SimilarProducts(ctx context.Context, slug string) ([]models.Product, error) {
	p, err := s.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	list, _, err := s.store.Products.List(ctx, models.ProductFilter{
		CategoryIDs: []uuid.UUID{p.CategoryID},
		ExcludeID:   p.ID,
		ActiveOnly:  true,
		Page:        1,
		Limit:       SimilarResultLimit,
	})
	return list, err
}

func (s *CatalogService) ActiveCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories.List(ctx, true)
}

func (s *CatalogService) ActiveBanners(ctx context.Context) ([]models.Banner, error) {
	return s.store.Banners.List(ctx, true)
}

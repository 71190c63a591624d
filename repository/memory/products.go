package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

type ProductRepo struct{ s *Store }

func (r *ProductRepo) withCategory(p models.Product) models.Product {
	p = copyProduct(p)
	if c, ok := r.s.categories[p.CategoryID]; ok {
		p.Category = &c
	}
	return p
}

func (r *ProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	var out *models.Product
	r.s.read(func() {
		if p, ok := r.s.products[id]; ok {
			cp := r.withCategory(p)
			out = &cp
		}
	})
	if out == nil {
		return nil, models.ErrNotFound
	}
	return out, nil
}

func (r *ProductRepo) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	var out *models.Product
	r.s.read(func() {
		for _, p := range r.s.products {
			if p.Slug == slug {
				cp := r.withCategory(p)
				out = &cp
				return
			}
		}
	})
	if out == nil {
		return nil, models.ErrNotFound
	}
	return out, nil
}

// FindByIDForUpdate relies on the caller's transaction holding txMu, which
// keeps every other writer out until it ends.
func (r *ProductRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*models.Product, error) {
	var out *models.Product
	r.s.read(func() {
		if p, ok := r.s.products[id]; ok {
			cp := copyProduct(p)
			out = &cp
		}
	})
	if out == nil {
		return nil, models.ErrNotFound
	}
	return out, nil
}

func (r *ProductRepo) List(_ context.Context, f models.ProductFilter) ([]models.Product, int64, error) {
	var list []models.Product
	r.s.read(func() {
		for _, p := range r.s.products {
			if matches(p, f) {
				list = append(list, r.withCategory(p))
			}
		}
	})
	sortProducts(list, f.Sort)
	return page(list, f.Page, f.Limit), int64(len(list)), nil
}

func matches(p models.Product, f models.ProductFilter) bool {
	switch {
	case f.ActiveOnly && !p.IsActive,
		f.FeaturedOnly && !p.IsFeatured,
		f.ExcludeID != uuid.Nil && p.ID == f.ExcludeID,
		f.MinPrice != nil && p.Price < *f.MinPrice,
		f.MaxPrice != nil && p.Price > *f.MaxPrice,
		f.MinRating != nil && p.Rating < *f.MinRating:
		return false
	}
	if len(f.CategoryIDs) > 0 {
		found := false
		for _, id := range f.CategoryIDs {
			if id == p.CategoryID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Size != "" {
		found := false
		for _, s := range p.Sizes {
			if s == f.Size {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

func sortProducts(list []models.Product, by models.ProductSort) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch by {
		case models.SortPriceAsc:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case models.SortPriceDesc:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		case models.SortRating:
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return idLess(a.ID, b.ID)
	})
}

func (r *ProductRepo) ListAll(_ context.Context) ([]models.Product, error) {
	var list []models.Product
	r.s.read(func() {
		for _, p := range r.s.products {
			list = append(list, r.withCategory(p))
		}
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *ProductRepo) slugTaken(slug string, except uuid.UUID) bool {
	for id, p := range r.s.products {
		if id != except && p.Slug == slug {
			return true
		}
	}
	return false
}

func (r *ProductRepo) Create(ctx context.Context, p *models.Product) error {
	return r.s.write(ctx, func() error {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if _, ok := r.s.products[p.ID]; ok || r.slugTaken(p.Slug, p.ID) {
			return models.ErrConflict
		}
		now := time.Now()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		r.s.products[p.ID] = copyProduct(*p)
		return nil
	})
}

func (r *ProductRepo) Update(ctx context.Context, p *models.Product) error {
	return r.s.write(ctx, func() error {
		cur, ok := r.s.products[p.ID]
		if !ok {
			return models.ErrNotFound
		}
		if r.slugTaken(p.Slug, p.ID) {
			return models.ErrConflict
		}
		p.UpdatedAt = time.Now()
		next := copyProduct(*p)
		next.Reviews = cur.Reviews
		next.Rating = cur.Rating
		next.NumReviews = cur.NumReviews
		next.CreatedAt = cur.CreatedAt
		r.s.products[p.ID] = next
		return nil
	})
}

func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.products[id]; !ok {
			return models.ErrNotFound
		}
		delete(r.s.products, id)
		return nil
	})
}

func (r *ProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	var ok bool
	err := r.s.write(ctx, func() error {
		p, found := r.s.products[id]
		if !found || p.StockQuantity < qty {
			return nil
		}
		p.StockQuantity -= qty
		r.s.products[id] = p
		ok = true
		return nil
	})
	return ok, err
}

func (r *ProductRepo) MutateBySlug(ctx context.Context, slug string, fn func(p *models.Product) error) (*models.Product, error) {
	var out *models.Product
	err := r.s.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := r.FindBySlug(ctx, slug)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		return r.s.write(ctx, func() error {
			cur := r.s.products[p.ID]
			cur.Reviews = append([]models.Review(nil), p.Reviews...)
			cur.Rating = p.Rating
			cur.NumReviews = p.NumReviews
			cur.UpdatedAt = time.Now()
			r.s.products[p.ID] = cur
			out = p
			return nil
		})
	})
	return out, err
}

func (r *ProductRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	r.s.read(func() {
		for _, p := range r.s.products {
			if p.CategoryID == categoryID {
				n++
			}
		}
	})
	return n, nil
}

func (r *ProductRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	r.s.read(func() {
		for _, p := range r.s.products {
			if p.IsActive {
				n++
			}
		}
	})
	return n, nil
}

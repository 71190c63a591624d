package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) List(_ context.Context, activeOnly bool) ([]models.Category, error) {
	var list []models.Category
	r.s.read(func() {
		for _, c := range r.s.categories {
			if !activeOnly || c.IsActive {
				list = append(list, c)
			}
		}
	})
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Priority != list[j].Priority {
			return list[i].Priority < list[j].Priority
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (r *CategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	var out *models.Category
	r.s.read(func() {
		if c, ok := r.s.categories[id]; ok {
			out = &c
		}
	})
	if out == nil {
		return nil, models.ErrNotFound
	}
	return out, nil
}

func (r *CategoryRepo) taken(c *models.Category) bool {
	for id, other := range r.s.categories {
		if id == c.ID {
			continue
		}
		if strings.EqualFold(other.Name, c.Name) || other.Slug == c.Slug {
			return true
		}
	}
	return false
}

func (r *CategoryRepo) Create(ctx context.Context, c *models.Category) error {
	return r.s.write(ctx, func() error {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		if _, ok := r.s.categories[c.ID]; ok || r.taken(c) {
			return models.ErrConflict
		}
		c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
		r.s.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) Update(ctx context.Context, c *models.Category) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.categories[c.ID]; !ok {
			return models.ErrNotFound
		}
		if r.taken(c) {
			return models.ErrConflict
		}
		c.UpdatedAt = time.Now()
		r.s.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.categories[id]; !ok {
			return models.ErrNotFound
		}
		delete(r.s.categories, id)
		return nil
	})
}

type BannerRepo struct{ s *Store }

func (r *BannerRepo) List(_ context.Context, activeOnly bool) ([]models.Banner, error) {
	var list []models.Banner
	r.s.read(func() {
		for _, b := range r.s.banners {
			if !activeOnly || b.IsActive {
				list = append(list, b)
			}
		}
	})
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Priority != list[j].Priority {
			return list[i].Priority < list[j].Priority
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *BannerRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Banner, error) {
	var out *models.Banner
	r.s.read(func() {
		if b, ok := r.s.banners[id]; ok {
			out = &b
		}
	})
	if out == nil {
		return nil, models.ErrNotFound
	}
	return out, nil
}

func (r *BannerRepo) Create(ctx context.Context, b *models.Banner) error {
	return r.s.write(ctx, func() error {
		if b.ID == uuid.Nil {
			b.ID = uuid.New()
		}
		if _, ok := r.s.banners[b.ID]; ok {
			return models.ErrConflict
		}
		b.CreatedAt, b.UpdatedAt = time.Now(), time.Now()
		r.s.banners[b.ID] = *b
		return nil
	})
}

func (r *BannerRepo) Update(ctx context.Context, b *models.Banner) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.banners[b.ID]; !ok {
			return models.ErrNotFound
		}
		b.UpdatedAt = time.Now()
		r.s.banners[b.ID] = *b
		return nil
	})
}

func (r *BannerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.banners[id]; !ok {
			return models.ErrNotFound
		}
		delete(r.s.banners, id)
		return nil
	})
}

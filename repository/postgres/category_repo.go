package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	q := conn(ctx, r.db)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var list []models.Category
	if err := q.Order("priority asc, name asc").Find(&list).Error; err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return list, nil
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	if err := conn(ctx, r.db).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find category")
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return translate(conn(ctx, r.db).Create(c).Error, "create category")
}

func (r *CategoryRepo) Update(ctx context.Context, c *models.Category) error {
	return translate(conn(ctx, r.db).Save(c).Error, "update category")
}

func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := conn(ctx, r.db).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete category")
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

type BannerRepo struct{ db *gorm.DB }

func NewBannerRepo(db *gorm.DB) *BannerRepo { return &BannerRepo{db: db} }

func (r *BannerRepo) List(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	q := conn(ctx, r.db)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var list []models.Banner
	if err := q.Order("priority asc, created_at desc").Find(&list).Error; err != nil {
		return nil, errors.Wrap(err, "list banners")
	}
	return list, nil
}

func (r *BannerRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	var b models.Banner
	if err := conn(ctx, r.db).First(&b, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find banner")
	}
	return &b, nil
}

func (r *BannerRepo) Create(ctx context.Context, b *models.Banner) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return translate(conn(ctx, r.db).Create(b).Error, "create banner")
}

func (r *BannerRepo) Update(ctx context.Context, b *models.Banner) error {
	return translate(conn(ctx, r.db).Save(b).Error, "update banner")
}

func (r *BannerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := conn(ctx, r.db).Delete(&models.Banner{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete banner")
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

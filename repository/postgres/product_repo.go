package postgres

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := conn(ctx, r.db).Preload("Category").First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find product")
	}
	return &p, nil
}

func (r *ProductRepo) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := conn(ctx, r.db).Preload("Category").First(&p, "slug = ?", slug).Error; err != nil {
		return nil, translate(err, "find product by slug")
	}
	return &p, nil
}

func (r *ProductRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err, "lock product")
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context, f models.ProductFilter) ([]models.Product, int64, error) {
	q := conn(ctx, r.db).Model(&models.Product{})
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.FeaturedOnly {
		q = q.Where("is_featured = ?", true)
	}
	if len(f.CategoryIDs) > 0 {
		q = q.Where("category_id IN ?", f.CategoryIDs)
	}
	if f.Size != "" {
		sizes, _ := json.Marshal([]string{f.Size})
		q = q.Where("sizes @> ?::jsonb", string(sizes))
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinRating != nil {
		q = q.Where("rating >= ?", *f.MinRating)
	}
	if f.Search != "" {
		q = q.Where("name ILIKE ?", "%"+escapeLike(f.Search)+"%")
	}
	if f.ExcludeID != uuid.Nil {
		q = q.Where("id <> ?", f.ExcludeID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}

	switch f.Sort {
	case models.SortPriceAsc:
		q = q.Order("price asc, id asc")
	case models.SortPriceDesc:
		q = q.Order("price desc, id asc")
	case models.SortRating:
		q = q.Order("rating desc, id asc")
	default:
		q = q.Order("created_at desc, id asc")
	}

	var list []models.Product
	if err := paginate(q, f.Page, f.Limit).Preload("Category").Find(&list).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list products")
	}
	return list, total, nil
}

func (r *ProductRepo) ListAll(ctx context.Context) ([]models.Product, error) {
	var list []models.Product
	if err := conn(ctx, r.db).Preload("Category").Order("created_at asc").Find(&list).Error; err != nil {
		return nil, errors.Wrap(err, "list all products")
	}
	return list, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *models.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return translate(conn(ctx, r.db).Omit(clause.Associations).Create(p).Error, "create product")
}

func (r *ProductRepo) Update(ctx context.Context, p *models.Product) error {
	res := conn(ctx, r.db).Model(p).Select(productColumns).Updates(p)
	if res.Error != nil {
		return translate(res.Error, "update product")
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

var productColumns = []string{
	"name", "slug", "description", "images", "price", "category_id",
	"sizes", "stock_quantity", "is_featured", "is_active", "updated_at",
}

func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := conn(ctx, r.db).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DecrementStock relies on the single-row UPDATE being atomic: the WHERE
// guard and the subtraction see the same row version.
func (r *ProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	res := conn(ctx, r.db).Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "decrement stock")
	}
	return res.RowsAffected == 1, nil
}

func (r *ProductRepo) MutateBySlug(ctx context.Context, slug string, fn func(p *models.Product) error) (*models.Product, error) {
	var out models.Product
	err := NewTransactor(r.db).WithinTransaction(ctx, func(ctx context.Context) error {
		tx := conn(ctx, r.db)
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&out, "slug = ?", slug).Error; err != nil {
			return translate(err, "lock product")
		}
		if err := fn(&out); err != nil {
			return err
		}
		return translate(
			tx.Model(&out).Select("reviews", "rating", "num_reviews", "updated_at").Updates(&out).Error,
			"save reviews",
		)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, errors.Wrap(err, "count products by category")
}

func (r *ProductRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&models.Product{}).Where("is_active = ?", true).Count(&n).Error
	return n, errors.Wrap(err, "count active products")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

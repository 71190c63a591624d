package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create inserts the order and its lines in one statement batch. A repeated
// idempotency key surfaces as models.ErrConflict.
func (r *OrderRepo) Create(ctx context.Context, o *models.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
	}
	return translate(conn(ctx, r.db).Create(o).Error, "create order")
}

func (r *OrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	if err := conn(ctx, r.db).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find order")
	}
	return &o, nil
}

func (r *OrderRepo) FindByIdempotencyKey(ctx context.Context, key string) (*models.Order, error) {
	var o models.Order
	if err := conn(ctx, r.db).Preload("Items").First(&o, "idempotency_key = ?", key).Error; err != nil {
		return nil, translate(err, "find order by idempotency key")
	}
	return &o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var list []models.Order
	err := conn(ctx, r.db).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "list user orders")
	}
	return list, nil
}

func (r *OrderRepo) List(ctx context.Context, f models.OrderFilter) ([]models.Order, int64, error) {
	q := conn(ctx, r.db).Model(&models.Order{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count orders")
	}
	var list []models.Order
	if err := paginate(q.Order("created_at desc, id asc"), f.Page, f.Limit).Preload("Items").Find(&list).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list orders")
	}
	return list, total, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	res := conn(ctx, r.db).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update order status")
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&models.Order{}).Count(&n).Error
	return n, errors.Wrap(err, "count orders")
}

func (r *OrderRepo) SumTotalByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	var sum int64
	err := conn(ctx, r.db).Model(&models.Order{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&sum).Error
	return sum, errors.Wrap(err, "sum order totals")
}

func (r *OrderRepo) ReferencesProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&models.OrderItem{}).Where("product_id = ?", productID).Limit(1).Count(&n).Error
	if err != nil {
		return false, errors.Wrap(err, "check order references")
	}
	return n > 0, nil
}

package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

type OrderRepo struct{ s *Store }

func (r *OrderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.s.write(ctx, func() error {
		if o.ID == uuid.Nil {
			o.ID = uuid.New()
		}
		for id, other := range r.s.orders {
			if id == o.ID || other.OrderNumber == o.OrderNumber {
				return models.ErrConflict
			}
			if o.IdempotencyKey != nil && other.IdempotencyKey != nil && *o.IdempotencyKey == *other.IdempotencyKey {
				return models.ErrConflict
			}
		}
		for i := range o.Items {
			if o.Items[i].ID == uuid.Nil {
				o.Items[i].ID = uuid.New()
			}
			o.Items[i].OrderID = o.ID
		}
		now := time.Now()
		if o.CreatedAt.IsZero() {
			o.CreatedAt = now
		}
		o.UpdatedAt = now
		r.s.orders[o.ID] = copyOrder(*o)
		return nil
	})
}

func (r *OrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	var out *models.Order
	r.s.read(func() {
		if o, ok := r.s.orders[id]; ok {
			cp := copyOrder(o)
			out = &cp
		}
	})
	if out == nil {
		return nil, models.ErrNotFound
	}
	return out, nil
}

func (r *OrderRepo) FindByIdempotencyKey(_ context.Context, key string) (*models.Order, error) {
	var out *models.Order
	r.s.read(func() {
		for _, o := range r.s.orders {
			if o.IdempotencyKey != nil && *o.IdempotencyKey == key {
				cp := copyOrder(o)
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

func (r *OrderRepo) collect(keep func(models.Order) bool) []models.Order {
	var list []models.Order
	r.s.read(func() {
		for _, o := range r.s.orders {
			if keep(o) {
				list = append(list, copyOrder(o))
			}
		}
	})
	sort.SliceStable(list, func(i, j int) bool {
		if a, b := list[i].CreatedAt, list[j].CreatedAt; !a.Equal(b) {
			return a.After(b)
		}
		return idLess(list[i].ID, list[j].ID)
	})
	return list
}

func (r *OrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	return r.collect(func(o models.Order) bool { return o.OwnedBy(userID) }), nil
}

func (r *OrderRepo) List(_ context.Context, f models.OrderFilter) ([]models.Order, int64, error) {
	list := r.collect(func(o models.Order) bool { return f.Status == "" || o.Status == f.Status })
	return page(list, f.Page, f.Limit), int64(len(list)), nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.s.write(ctx, func() error {
		o, ok := r.s.orders[id]
		if !ok {
			return models.ErrNotFound
		}
		o.Status = status
		o.UpdatedAt = time.Now()
		r.s.orders[id] = o
		return nil
	})
}

func (r *OrderRepo) Count(_ context.Context) (int64, error) {
	var n int64
	r.s.read(func() { n = int64(len(r.s.orders)) })
	return n, nil
}

func (r *OrderRepo) SumTotalByStatus(_ context.Context, status models.OrderStatus) (int64, error) {
	var sum int64
	r.s.read(func() {
		for _, o := range r.s.orders {
			if o.Status == status {
				sum += o.TotalAmount
			}
		}
	})
	return sum, nil
}

func (r *OrderRepo) ReferencesProduct(_ context.Context, productID uuid.UUID) (bool, error) {
	var found bool
	r.s.read(func() {
		for _, o := range r.s.orders {
			for _, it := range o.Items {
				if it.ProductID == productID {
					found = true
					return
				}
			}
		}
	})
	return found, nil
}

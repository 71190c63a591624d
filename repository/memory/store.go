// Package memory keeps every storefront repository in process memory. It
// backs the service tests and `serve --store=memory`.
package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

type Store struct {
	txMu sync.Mutex // held for the whole of a transaction and for every write outside one
	mu   sync.RWMutex

	products   map[uuid.UUID]models.Product
	categories map[uuid.UUID]models.Category
	banners    map[uuid.UUID]models.Banner
	users      map[uuid.UUID]models.User
	orders     map[uuid.UUID]models.Order
}

func New() *Store {
	return &Store{
		products:   map[uuid.UUID]models.Product{},
		categories: map[uuid.UUID]models.Category{},
		banners:    map[uuid.UUID]models.Banner{},
		users:      map[uuid.UUID]models.User{},
		orders:     map[uuid.UUID]models.Order{},
	}
}

// Repositories exposes s through the repository interfaces.
func (s *Store) Repositories() models.Store {
	return models.Store{
		Products:   &ProductRepo{s},
		Categories: &CategoryRepo{s},
		Banners:    &BannerRepo{s},
		Users:      &UserRepo{s},
		Orders:     &OrderRepo{s},
		Tx:         s,
	}
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*Store)
	return ok
}

// WithinTransaction snapshots every table and restores the snapshot when fn
// fails.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snap := s.snapshot()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

// write runs fn under the data lock. Outside a transaction it also waits for
// any running transaction to finish so a rollback never discards it.
func (s *Store) write(ctx context.Context, fn func() error) error {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) read(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

type snapshot struct {
	products   map[uuid.UUID]models.Product
	categories map[uuid.UUID]models.Category
	banners    map[uuid.UUID]models.Banner
	users      map[uuid.UUID]models.User
	orders     map[uuid.UUID]models.Order
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products:   make(map[uuid.UUID]models.Product, len(s.products)),
		categories: make(map[uuid.UUID]models.Category, len(s.categories)),
		banners:    make(map[uuid.UUID]models.Banner, len(s.banners)),
		users:      make(map[uuid.UUID]models.User, len(s.users)),
		orders:     make(map[uuid.UUID]models.Order, len(s.orders)),
	}
	for k, v := range s.products {
		snap.products[k] = copyProduct(v)
	}
	for k, v := range s.categories {
		snap.categories[k] = v
	}
	for k, v := range s.banners {
		snap.banners[k] = v
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.orders {
		snap.orders[k] = copyOrder(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.categories = snap.categories
	s.banners = snap.banners
	s.users = snap.users
	s.orders = snap.orders
}

func copyProduct(p models.Product) models.Product {
	p.Images = append([]string(nil), p.Images...)
	p.Sizes = append([]string(nil), p.Sizes...)
	p.Reviews = append([]models.Review(nil), p.Reviews...)
	p.Category = nil
	return p
}

func copyOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	if o.UserID != nil {
		id := *o.UserID
		o.UserID = &id
	}
	if o.IdempotencyKey != nil {
		k := *o.IdempotencyKey
		o.IdempotencyKey = &k
	}
	return o
}

// idLess orders uuids the way PostgreSQL compares the uuid type.
func idLess(a, b uuid.UUID) bool { return bytes.Compare(a[:], b[:]) < 0 }

func page[T any](list []T, p, limit int) []T {
	if limit <= 0 {
		return list
	}
	if p < 1 {
		p = 1
	}
	if p-1 >= (len(list)+limit-1)/limit {
		return []T{}
	}
	start := (p - 1) * limit
	end := start + limit
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

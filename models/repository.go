package models

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository is the catalog store's product side. FindByID and
// FindBySlug preload the category.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	// FindByIDForUpdate loads the product without its category and locks the
	// row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	Create(ctx context.Context, p *Product) error
	// Update writes the catalog fields. Reviews and the rating aggregate are
	// only ever written by MutateBySlug.
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DecrementStock subtracts qty only when at least qty units are left and
	// reports whether it did.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	// MutateBySlug loads the product under a row lock, applies fn and writes the
	// review fields back.
	MutateBySlug(ctx context.Context, slug string, fn func(p *Product) error) (*Product, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	ListAll(ctx context.Context) ([]Product, error)
}

type CategoryRepository interface {
	List(ctx context.Context, activeOnly bool) ([]Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BannerRepository interface {
	List(ctx context.Context, activeOnly bool) ([]Banner, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Banner, error)
	Create(ctx context.Context, b *Banner) error
	Update(ctx context.Context, b *Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context, role Role) (int64, error)
}

// OrderRepository is the order store. Orders are created once and afterwards
// only their status changes.
type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	List(ctx context.Context, f OrderFilter) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
	Count(ctx context.Context) (int64, error)
	SumTotalByStatus(ctx context.Context, status OrderStatus) (int64, error)
	ReferencesProduct(ctx context.Context, productID uuid.UUID) (bool, error)
}

// Transactor runs fn so that every repository call made with the context it
// receives commits or rolls back together. Nested calls join the outer
// transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Store struct {
	Products   ProductRepository
	Categories CategoryRepository
	Banners    BannerRepository
	Users      UserRepository
	Orders     OrderRepository
	Tx         Transactor
}

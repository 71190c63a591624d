package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/saqibam92/BlashBerry-nextjs/auth"
	"github.com/saqibam92/BlashBerry-nextjs/models"
	"github.com/saqibam92/BlashBerry-nextjs/repository/memory"
)

const testSecret = "test-secret"

// clock is a settable time source shared by the services under test.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	ctx      context.Context
	store    models.Store
	svc      *Services
	clock    *clock
	category *models.Category
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	clk := &clock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	opts.Now = clk.Now
	if opts.MasterAdminEmail == "" {
		opts.MasterAdminEmail = "admin@blashberry.com"
	}
	store := memory.New().Repositories()
	f := &fixture{
		ctx:   context.Background(),
		store: store,
		svc:   New(store, auth.NewTokens(testSecret, time.Hour), nil, opts),
		clock: clk,
	}
	cat, err := f.svc.Admin.CreateCategory(f.ctx, CategoryInput{Name: ptr("T-Shirts"), Image: ptr("/uploads/c.jpg")})
	require.NoError(t, err)
	f.category = cat
	return f
}

func (f *fixture) product(t *testing.T, name string, price int64, stock int, sizes ...string) *models.Product {
	t.Helper()
	p, err := f.svc.Admin.CreateProduct(f.ctx, ProductInput{
		Name:          ptr(name),
		Images:        []string{"/uploads/p.jpg"},
		Price:         &price,
		CategoryID:    ptr(f.category.ID.String()),
		Sizes:         sizes,
		StockQuantity: &stock,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) user(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.svc.Admin.CreateUser(f.ctx, UserInput{
		Name:     ptr("Test User"),
		Email:    ptr(email),
		Password: ptr("secret1"),
		Role:     ptr("user"),
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) stock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := f.store.Products.FindByID(f.ctx, id)
	require.NoError(t, err)
	return p.StockQuantity
}

func address() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:   "Jane Doe",
		Address:    "12 Lake Road",
		City:       "Dhaka",
		PostalCode: "1207",
		Phone:      "+880 1711-000000",
	}
}

func guestOrder(lines ...OrderLineInput) PlaceOrderInput {
	return PlaceOrderInput{Lines: lines, ShippingAddress: address(), GuestEmail: "guest@example.com"}
}

func ptr[T any](v T) *T { return &v }

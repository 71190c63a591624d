package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saqibam92/BlashBerry-nextjs/auth"
	"github.com/saqibam92/BlashBerry-nextjs/models"
)

func TestCategoryCRUD(t *testing.T) {
	f := newFixture(t, Options{})

	c, err := f.svc.Admin.CreateCategory(f.ctx, CategoryInput{Name: ptr("  Hoodies "), Image: ptr("h.jpg")})
	require.NoError(t, err)
	assert.Equal(t, "Hoodies", c.Name)
	assert.Equal(t, "hoodies", c.Slug)
	assert.Equal(t, models.DefaultPriority, c.Priority)
	assert.True(t, c.IsActive)

	_, err = f.svc.Admin.CreateCategory(f.ctx, CategoryInput{Name: ptr("hoodies"), Image: ptr("h.jpg")})
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = f.svc.Admin.CreateCategory(f.ctx, CategoryInput{Name: ptr("No Image")})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)

	c, err = f.svc.Admin.UpdateCategory(f.ctx, c.ID, CategoryInput{Name: ptr("Zip Hoodies"), Priority: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, "zip-hoodies", c.Slug)
	assert.Equal(t, 1, c.Priority)

	list, err := f.svc.Admin.ListCategories(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Zip Hoodies", list[0].Name)

	require.NoError(t, f.svc.Admin.DeleteCategory(f.ctx, c.ID))
	assert.ErrorIs(t, f.svc.Admin.DeleteCategory(f.ctx, c.ID), models.ErrNotFound)
	_, err = f.svc.Admin.UpdateCategory(f.ctx, uuid.New(), CategoryInput{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteCategoryInUse(t *testing.T) {
	f := newFixture(t, Options{})
	p := f.product(t, "Tee", 100, 1)

	err := f.svc.Admin.DeleteCategory(f.ctx, f.category.ID)
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Equal(t, models.ErrCategoryInUse.Error(), err.Error())

	require.NoError(t, f.svc.Admin.DeleteProduct(f.ctx, p.ID))
	assert.NoError(t, f.svc.Admin.DeleteCategory(f.ctx, f.category.ID))
}

func TestProductCRUD(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.svc.Admin.CreateProduct(f.ctx, ProductInput{Name: ptr("No Price")})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)

	_, err = f.svc.Admin.CreateProduct(f.ctx, ProductInput{
		Name:       ptr("Orphan"),
		Price:      ptr(int64(100)),
		CategoryID: ptr(uuid.NewString()),
		Images:     []string{"a.jpg"},
	})
	assert.ErrorAs(t, err, &verr)

	_, err = f.svc.Admin.CreateProduct(f.ctx, ProductInput{
		Name:       ptr("Too Many Pictures"),
		Price:      ptr(int64(100)),
		CategoryID: ptr(f.category.ID.String()),
		Images:     []string{"1", "2", "3", "4", "5", "6", "7"},
	})
	assert.ErrorAs(t, err, &verr)

	p := f.product(t, "Classic Tee", 100, 3, " S ", "", "M")
	assert.Equal(t, "classic-tee", p.Slug)
	assert.Equal(t, []string{"S", "M"}, p.Sizes)
	assert.True(t, p.IsActive)
	require.NotNil(t, p.Category)

	_, err = f.svc.Admin.CreateProduct(f.ctx, ProductInput{
		Name:       ptr("Classic Tee"),
		Price:      ptr(int64(100)),
		CategoryID: ptr(f.category.ID.String()),
		Images:     []string{"a.jpg"},
	})
	assert.ErrorIs(t, err, models.ErrConflict)

	updated, err := f.svc.Admin.UpdateProduct(f.ctx, p.ID, ProductInput{Name: ptr("Vintage Tee"), StockQuantity: ptr(9)})
	require.NoError(t, err)
	assert.Equal(t, "vintage-tee", updated.Slug)
	assert.Equal(t, 9, updated.StockQuantity)
	assert.Equal(t, int64(100), updated.Price)

	_, err = f.svc.Admin.UpdateProduct(f.ctx, p.ID, ProductInput{Price: ptr(int64(-1))})
	assert.ErrorAs(t, err, &verr)

	list, err := f.svc.Admin.ListProducts(f.ctx, AdminProductQuery{Search: "vintage"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.svc.Admin.DeleteProduct(f.ctx, p.ID))
	assert.ErrorIs(t, f.svc.Admin.DeleteProduct(f.ctx, p.ID), models.ErrNotFound)
	_, err = f.svc.Admin.GetProduct(f.ctx, p.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRenameKeepsSlugOnceOrdered(t *testing.T) {
	f := newFixture(t, Options{})
	p := f.product(t, "Classic Tee", 100, 3)
	_, _, err := f.svc.Orders.PlaceOrder(f.ctx, guestOrder(OrderLineInput{ProductID: p.ID.String(), Quantity: 1}))
	require.NoError(t, err)

	updated, err := f.svc.Admin.UpdateProduct(f.ctx, p.ID, ProductInput{Name: ptr("Renamed Tee")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Tee", updated.Name)
	assert.Equal(t, "classic-tee", updated.Slug)
}

// interleavedProducts runs before once, just ahead of the first product write.
type interleavedProducts struct {
	models.ProductRepository
	before func()
}

func (r *interleavedProducts) Update(ctx context.Context, p *models.Product) error {
	if r.before != nil {
		r.before()
		r.before = nil
	}
	return r.ProductRepository.Update(ctx, p)
}

func TestUpdateProductKeepsConcurrentStockChange(t *testing.T) {
	f := newFixture(t, Options{})
	p := f.product(t, "Last Tee", 500, 1)

	placed := make(chan error, 1)
	store := f.store
	store.Products = &interleavedProducts{
		ProductRepository: f.store.Products,
		before: func() {
			go func() {
				_, _, err := f.svc.Orders.PlaceOrder(f.ctx, guestOrder(OrderLineInput{ProductID: p.ID.String(), Quantity: 1}))
				placed <- err
			}()
		},
	}
	admin := New(store, auth.NewTokens(testSecret, time.Hour), nil, Options{Now: f.clock.Now}).Admin

	updated, err := admin.UpdateProduct(f.ctx, p.ID, ProductInput{Description: ptr("Soft cotton")})
	require.NoError(t, err)
	assert.Equal(t, "Soft cotton", updated.Description)
	require.NoError(t, <-placed)

	assert.Equal(t, 0, f.stock(t, p.ID))
	_, _, err = f.svc.Orders.PlaceOrder(f.ctx, guestOrder(OrderLineInput{ProductID: p.ID.String(), Quantity: 1}))
	var perr *models.ProductError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ErrInsufficientStock, perr.Kind)
}

func TestUpdateProductKeepsReviews(t *testing.T) {
	f := newFixture(t, Options{})
	p := f.product(t, "Reviewed Tee", 500, 4)
	u := f.user(t, "reviewer@example.com")
	_, err := f.svc.Reviews.AddReview(f.ctx, p.Slug, models.Identity{UserID: u.ID}, 4, "good fit")
	require.NoError(t, err)

	updated, err := f.svc.Admin.UpdateProduct(f.ctx, p.ID, ProductInput{Price: ptr(int64(650))})
	require.NoError(t, err)
	assert.Equal(t, int64(650), updated.Price)
	assert.Equal(t, 1, updated.NumReviews)
	assert.Equal(t, 4.0, updated.Rating)
	assert.Len(t, updated.Reviews, 1)
	assert.Equal(t, 4, updated.StockQuantity)

	_, err = f.svc.Admin.UpdateProduct(f.ctx, uuid.New(), ProductInput{Price: ptr(int64(1))})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserAdministration(t *testing.T) {
	f := newFixture(t, Options{})

	master, err := f.svc.Admin.CreateUser(f.ctx, UserInput{
		Name: ptr("Admin"), Email: ptr("Admin@BlashBerry.com"), Password: ptr("admin123"), Role: ptr("admin"),
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@blashberry.com", master.Email)
	assert.True(t, master.IsAdmin())

	_, err = f.svc.Admin.CreateUser(f.ctx, UserInput{Name: ptr("X"), Email: ptr("x@example.com"), Password: ptr("secret1"), Role: ptr("root")})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
	_, err = f.svc.Admin.CreateUser(f.ctx, UserInput{Name: ptr("X"), Email: ptr("x@example.com"), Password: ptr("123"), Role: ptr("user")})
	assert.ErrorAs(t, err, &verr)
	_, err = f.svc.Admin.CreateUser(f.ctx, UserInput{Name: ptr("X")})
	assert.ErrorAs(t, err, &verr)

	u := f.user(t, "shopper@example.com")
	_, err = f.svc.Admin.CreateUser(f.ctx, UserInput{Name: ptr("Dup"), Email: ptr("shopper@example.com"), Password: ptr("secret1"), Role: ptr("user")})
	assert.ErrorIs(t, err, models.ErrConflict)

	u, err = f.svc.Admin.UpdateUser(f.ctx, u.ID, UserInput{IsActive: ptr(false), Role: ptr("Admin")})
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.Equal(t, models.RoleAdmin, u.Role)

	_, err = f.svc.Admin.UpdateUser(f.ctx, u.ID, UserInput{Email: ptr("admin@blashberry.com")})
	assert.ErrorIs(t, err, models.ErrConflict)

	assert.ErrorIs(t, f.svc.Admin.DeleteUser(f.ctx, master.ID), models.ErrConflict)
	require.NoError(t, f.svc.Admin.DeleteUser(f.ctx, u.ID))
	assert.ErrorIs(t, f.svc.Admin.DeleteUser(f.ctx, u.ID), models.ErrNotFound)

	users, err := f.svc.Admin.ListUsers(f.ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestBannerCRUD(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.svc.Admin.CreateBanner(f.ctx, BannerInput{Title: ptr("No image")})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)

	b, err := f.svc.Admin.CreateBanner(f.ctx, BannerInput{Title: ptr("Summer"), Image: ptr("s.jpg"), Link: ptr(" /products ")})
	require.NoError(t, err)
	assert.Equal(t, "/products", b.Link)
	assert.True(t, b.IsActive)

	b, err = f.svc.Admin.UpdateBanner(f.ctx, b.ID, BannerInput{IsActive: ptr(false)})
	require.NoError(t, err)
	assert.False(t, b.IsActive)
	assert.Equal(t, "Summer", b.Title)

	list, err := f.svc.Admin.ListBanners(f.ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.svc.Admin.DeleteBanner(f.ctx, b.ID))
	assert.ErrorIs(t, f.svc.Admin.DeleteBanner(f.ctx, b.ID), models.ErrNotFound)
	_, err = f.svc.Admin.UpdateBanner(f.ctx, b.ID, BannerInput{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDashboardStats(t *testing.T) {
	f := newFixture(t, Options{})
	p := f.product(t, "Tee", 1000, 10)
	f.product(t, "Hidden", 1000, 10)
	f.user(t, "a@example.com")
	f.user(t, "b@example.com")
	_, err := f.svc.Admin.CreateUser(f.ctx, UserInput{Name: ptr("Admin"), Email: ptr("admin@blashberry.com"), Password: ptr("admin123"), Role: ptr("admin")})
	require.NoError(t, err)

	hidden, err := f.store.Products.FindBySlug(f.ctx, "hidden")
	require.NoError(t, err)
	_, err = f.svc.Admin.UpdateProduct(f.ctx, hidden.ID, ProductInput{IsActive: ptr(false)})
	require.NoError(t, err)

	var delivered *models.Order
	for i := 0; i < 3; i++ {
		o, _, err := f.svc.Orders.PlaceOrder(f.ctx, guestOrder(OrderLineInput{ProductID: p.ID.String(), Quantity: i + 1}))
		require.NoError(t, err)
		delivered = o
	}
	_, err = f.svc.Admin.UpdateOrderStatus(f.ctx, delivered.ID, "Delivered")
	require.NoError(t, err)

	st, err := f.svc.Admin.Stats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalProducts: 1, TotalUsers: 2, TotalOrders: 3, TotalSales: 3000}, *st)

	list, pg, err := f.svc.Admin.ListOrders(f.ctx, models.OrderFilter{Status: models.OrderStatusDelivered})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.EqualValues(t, 1, pg.Total)
}

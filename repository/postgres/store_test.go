package postgres

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

// openTestStore connects to TEST_DATABASE_URL and empties every table. The
// tests are skipped when it is unset.
func openTestStore(t *testing.T) (models.Store, uuid.UUID) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Open(dsn, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Exec("TRUNCATE order_items, orders, products, categories, banners, users CASCADE").Error)

	store := NewStore(db)
	cat := &models.Category{Name: "T-Shirts", Slug: "t-shirts", Image: "c.jpg", Priority: models.DefaultPriority, IsActive: true}
	require.NoError(t, store.Categories.Create(context.Background(), cat))
	return store, cat.ID
}

func newProduct(slug string, category uuid.UUID, price int64, stock int) *models.Product {
	return &models.Product{
		Name:          slug,
		Slug:          slug,
		Price:         price,
		CategoryID:    category,
		Images:        []string{"a.jpg"},
		Sizes:         []string{},
		Reviews:       []models.Review{},
		StockQuantity: stock,
		IsActive:      true,
	}
}

func TestDecrementStockNeverOversells(t *testing.T) {
	store, cat := openTestStore(t)
	ctx := context.Background()
	p := newProduct("last-units", cat, 1000, 3)
	require.NoError(t, store.Products.Create(ctx, p))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sold int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Products.DecrementStock(ctx, p.ID, 1)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, sold)
	got, err := store.Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.StockQuantity)
}

func TestUpdateLeavesReviewsAlone(t *testing.T) {
	store, cat := openTestStore(t)
	ctx := context.Background()
	p := newProduct("reviewed", cat, 1000, 5)
	require.NoError(t, store.Products.Create(ctx, p))

	stale, err := store.Products.FindByID(ctx, p.ID)
	require.NoError(t, err)

	_, err = store.Products.MutateBySlug(ctx, p.Slug, func(p *models.Product) error {
		p.Reviews = append(p.Reviews, models.Review{ID: uuid.New(), UserID: uuid.New(), Name: "Ann", Rating: 4, Comment: "ok"})
		p.Rating, p.NumReviews = 4, 1
		return nil
	})
	require.NoError(t, err)

	stale.Description = "edited"
	stale.Category = nil
	require.NoError(t, store.Products.Update(ctx, stale))

	got, err := store.Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Description)
	assert.Equal(t, 1, got.NumReviews)
	assert.Equal(t, 4.0, got.Rating)
	assert.Len(t, got.Reviews, 1)

	missing := newProduct("missing", cat, 1, 1)
	missing.ID = uuid.New()
	assert.ErrorIs(t, store.Products.Update(ctx, missing), models.ErrNotFound)
}

func TestListPagesEqualKeysOnce(t *testing.T) {
	store, cat := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Products.Create(ctx, newProduct(fmt.Sprintf("same-price-%d", i), cat, 1500, 1)))
	}

	seen := map[uuid.UUID]bool{}
	for page := 1; page <= 5; page++ {
		list, total, err := store.Products.List(ctx, models.ProductFilter{Sort: models.SortPriceAsc, Page: page, Limit: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		require.Len(t, list, 1)
		seen[list[0].ID] = true
	}
	assert.Len(t, seen, 5)

	list, _, err := store.Products.List(ctx, models.ProductFilter{Page: 1 << 62, Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, list)
}

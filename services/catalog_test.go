package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

func TestListProductsFilters(t *testing.T) {
	f := newFixture(t, Options{})
	f.product(t, "Cheap Tee", 500, 1, "S", "M")
	f.product(t, "Mid Tee", 1500, 1, "M")
	f.product(t, "Dear Tee", 4500, 1, "L")
	hidden := f.product(t, "Hidden Tee", 100, 1, "M")
	_, err := f.svc.Admin.UpdateProduct(f.ctx, hidden.ID, ProductInput{IsActive: ptr(false)})
	require.NoError(t, err)

	list, pg, err := f.svc.Catalog.ListProducts(f.ctx, ProductQuery{Size: "M", Sort: "price_desc"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Mid Tee", list[0].Name)
	assert.Equal(t, "Cheap Tee", list[1].Name)
	assert.EqualValues(t, 2, pg.Total)
	assert.Equal(t, 1, pg.Pages)

	list, _, err = f.svc.Catalog.ListProducts(f.ctx, ProductQuery{MinPrice: "1000", MaxPrice: "5000", Category: f.category.ID.String()})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, pg, err = f.svc.Catalog.ListProducts(f.ctx, ProductQuery{Limit: 1, Page: 2, Sort: "price_asc"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mid Tee", list[0].Name)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)
	require.NotNil(t, list[0].Category)
	assert.Equal(t, "T-Shirts", list[0].Category.Name)
}

func TestListProductsPastLastPage(t *testing.T) {
	f := newFixture(t, Options{})
	f.product(t, "Only Tee", 500, 1)

	list, pg, err := f.svc.Catalog.ListProducts(f.ctx, ProductQuery{Page: 1 << 62, Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, models.MaxPage, pg.Current)
	assert.False(t, pg.HasNext)
	assert.EqualValues(t, 1, pg.Total)
}

func TestListProductsRejectsBadFilters(t *testing.T) {
	f := newFixture(t, Options{})
	for _, q := range []ProductQuery{
		{Category: "not-a-uuid"},
		{MinPrice: "-3"},
		{MaxPrice: "ten"},
		{Rating: "9"},
	} {
		_, _, err := f.svc.Catalog.ListProducts(f.ctx, q)
		var verr *models.ValidationError
		assert.ErrorAs(t, err, &verr, "%+v", q)
	}
}

func TestSearchAndFeaturedAndSimilar(t *testing.T) {
	f := newFixture(t, Options{})
	tee := f.product(t, "Classic Tee", 500, 1)
	f.product(t, "Striped Tee", 500, 1)
	hoodie := f.product(t, "Hoodie", 500, 1)
	_, err := f.svc.Admin.UpdateProduct(f.ctx, hoodie.ID, ProductInput{IsFeatured: ptr(true)})
	require.NoError(t, err)

	found, err := f.svc.Catalog.SearchProducts(f.ctx, "tee")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = f.svc.Catalog.SearchProducts(f.ctx, "   ")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)

	featured, err := f.svc.Catalog.FeaturedProducts(f.ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, hoodie.ID, featured[0].ID)

	similar, err := f.svc.Catalog.SimilarProducts(f.ctx, tee.Slug)
	require.NoError(t, err)
	assert.Len(t, similar, 2)
	for _, p := range similar {
		assert.NotEqual(t, tee.ID, p.ID)
	}

	_, err = f.svc.Catalog.SimilarProducts(f.ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetProductBySlugHidesInactive(t *testing.T) {
	f := newFixture(t, Options{})
	p := f.product(t, "Classic Tee", 500, 1)

	got, err := f.svc.Catalog.GetProductBySlug(f.ctx, "classic-tee")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = f.svc.Admin.UpdateProduct(f.ctx, p.ID, ProductInput{IsActive: ptr(false)})
	require.NoError(t, err)
	_, err = f.svc.Catalog.GetProductBySlug(f.ctx, "classic-tee")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestActiveCategoriesAndBanners(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.svc.Admin.CreateCategory(f.ctx, CategoryInput{Name: ptr("Archive"), Image: ptr("x.jpg"), IsActive: ptr(false)})
	require.NoError(t, err)
	_, err = f.svc.Admin.CreateBanner(f.ctx, BannerInput{Title: ptr("Sale"), Image: ptr("b.jpg"), Priority: ptr(1)})
	require.NoError(t, err)
	_, err = f.svc.Admin.CreateBanner(f.ctx, BannerInput{Title: ptr("Old"), Image: ptr("o.jpg"), IsActive: ptr(false)})
	require.NoError(t, err)

	cats, err := f.svc.Catalog.ActiveCategories(f.ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "T-Shirts", cats[0].Name)

	banners, err := f.svc.Catalog.ActiveBanners(f.ctx)
	require.NoError(t, err)
	require.Len(t, banners, 1)
	assert.Equal(t, "Sale", banners[0].Title)
}

func TestAddReview(t *testing.T) {
	f := newFixture(t, Options{})
	p := f.product(t, "Classic Tee", 500, 1)

	var last *models.Product
	for _, rating := range []int{5, 4, 3, 2} {
		u := f.user(t, uuid.NewString()[:8]+"@example.com")
		var err error
		last, err = f.svc.Reviews.AddReview(f.ctx, p.Slug, models.Identity{UserID: u.ID, Name: "ignored"}, rating, "nice")
		require.NoError(t, err)
	}
	assert.Equal(t, 3.5, last.Rating)
	assert.Equal(t, 4, last.NumReviews)
	assert.Equal(t, "Test User", last.Reviews[0].Name)

	stored, err := f.store.Products.FindByID(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.5, stored.Rating)
	assert.Len(t, stored.Reviews, 4)
}

func TestAddReviewErrors(t *testing.T) {
	f := newFixture(t, Options{})
	p := f.product(t, "Classic Tee", 500, 1)
	u := f.user(t, "reviewer@example.com")
	who := models.Identity{UserID: u.ID}

	_, err := f.svc.Reviews.AddReview(f.ctx, p.Slug, who, 0, "meh")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
	_, err = f.svc.Reviews.AddReview(f.ctx, p.Slug, who, 4, "  ")
	assert.ErrorAs(t, err, &verr)
	_, err = f.svc.Reviews.AddReview(f.ctx, "missing", who, 4, "ok")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.svc.Reviews.AddReview(f.ctx, p.Slug, who, 4, "ok")
	require.NoError(t, err)
	_, err = f.svc.Reviews.AddReview(f.ctx, p.Slug, who, 1, "changed my mind")
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestConcurrentReviewsKeepEveryReview(t *testing.T) {
	f := newFixture(t, Options{})
	p := f.product(t, "Classic Tee", 500, 1)

	const n = 10
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = f.user(t, uuid.NewString()[:8]+"@example.com").ID
	}
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := f.svc.Reviews.AddReview(f.ctx, p.Slug, models.Identity{UserID: id}, 4, "good")
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	stored, err := f.store.Products.FindByID(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, n, stored.NumReviews)
	assert.Equal(t, 4.0, stored.Rating)
}

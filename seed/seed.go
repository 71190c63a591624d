// Package seed fills an empty store with a demo catalog and two accounts.
package seed

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/saqibam92/BlashBerry-nextjs/models"
	"github.com/saqibam92/BlashBerry-nextjs/services"
)

type product struct {
	name, description, category, price, image string
	sizes                                     []string
	stock                                     int
	featured                                  bool
}

var clothingSizes = []string{"S", "M", "L", "XL"}

var catalog = []product{
	{"Classic Cotton T-Shirt", "A comfortable and breathable cotton t-shirt perfect for everyday wear.", "T-Shirts", "599", "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400", clothingSizes, 50, true},
	{"Premium Hoodie", "Warm and cozy hoodie made from premium materials.", "Hoodies", "1299", "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=400", clothingSizes, 30, true},
	{"Denim Jeans", "Classic blue denim jeans with a comfortable fit.", "Jeans", "1899", "https://images.unsplash.com/photo-1542272604-787c3835535d?w=400", clothingSizes, 25, false},
	{"Summer Dress", "Light and airy summer dress perfect for warm weather.", "Dresses", "1599", "https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=400", clothingSizes, 20, true},
	{"Casual Sneakers", "Comfortable casual sneakers for everyday activities.", "Shoes", "2299", "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=400", []string{"38", "39", "40", "41", "42", "43"}, 40, false},
	{"Leather Jacket", "Stylish leather jacket for a classic look.", "Jackets", "4999", "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=400", clothingSizes, 15, true},
}

// Run is safe to repeat: records that already exist are left untouched.
func Run(ctx context.Context, svc *services.Services, adminEmail string) error {
	if err := seedUsers(ctx, svc.Admin, adminEmail); err != nil {
		return err
	}
	categories, err := seedCategories(ctx, svc.Admin)
	if err != nil {
		return err
	}
	if err := seedProducts(ctx, svc.Admin, categories); err != nil {
		return err
	}
	return seedBanner(ctx, svc.Admin)
}

func seedUsers(ctx context.Context, admin *services.AdminService, adminEmail string) error {
	users := []services.UserInput{
		{Name: str("Admin User"), Email: str(adminEmail), Password: str("admin123"), Role: str(string(models.RoleAdmin))},
		{Name: str("Test User"), Email: str("test@example.com"), Password: str("test123"), Role: str(string(models.RoleUser))},
	}
	for _, in := range users {
		_, err := admin.CreateUser(ctx, in)
		if err != nil && !errors.Is(err, models.ErrConflict) {
			return errors.Wrapf(err, "seed user %s", *in.Email)
		}
	}
	log.Info().Msg("users seeded")
	return nil
}

func seedCategories(ctx context.Context, admin *services.AdminService) (map[string]string, error) {
	for i, p := range catalog {
		prio := (i + 1) * 10
		_, err := admin.CreateCategory(ctx, services.CategoryInput{Name: str(p.category), Image: str(p.image), Priority: &prio})
		if err != nil && !errors.Is(err, models.ErrConflict) {
			return nil, errors.Wrapf(err, "seed category %s", p.category)
		}
	}
	list, err := admin.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]string, len(list))
	for _, c := range list {
		ids[c.Name] = c.ID.String()
	}
	log.Info().Int("categories", len(ids)).Msg("categories seeded")
	return ids, nil
}

func seedProducts(ctx context.Context, admin *services.AdminService, categories map[string]string) error {
	for _, p := range catalog {
		price, err := models.ParseMajor(p.price)
		if err != nil {
			return err
		}
		stock, featured, catID := p.stock, p.featured, categories[p.category]
		_, err = admin.CreateProduct(ctx, services.ProductInput{
			Name:          str(p.name),
			Description:   str(p.description),
			Images:        []string{p.image},
			Price:         &price,
			CategoryID:    &catID,
			Sizes:         p.sizes,
			StockQuantity: &stock,
			IsFeatured:    &featured,
		})
		if err != nil && !errors.Is(err, models.ErrConflict) {
			return errors.Wrapf(err, "seed product %s", p.name)
		}
	}
	log.Info().Int("products", len(catalog)).Msg("products seeded")
	return nil
}

func seedBanner(ctx context.Context, admin *services.AdminService) error {
	existing, err := admin.ListBanners(ctx)
	if err != nil || len(existing) > 0 {
		return err
	}
	_, err = admin.CreateBanner(ctx, services.BannerInput{
		Title: str("New Season Collection"),
		Image: str("https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=1600"),
		Link:  str("/products"),
	})
	return err
}

func str(s string) *string { return &s }

package services

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/saqibam92/BlashBerry-nextjs/auth"
	"github.com/saqibam92/BlashBerry-nextjs/models"
)

// AdminService is the back-office: catalog, user, banner and order
// management plus the dashboard figures.
type AdminService struct {
	store       models.Store
	orders      *OrderService
	masterEmail string
	validate    *validator.Validate
}

type Stats struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalUsers    int64 `json:"totalUsers"`
	TotalOrders   int64 `json:"totalOrders"`
	TotalSales    int64 `json:"totalSales"`
}

func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	var err error
	if st.TotalProducts, err = s.store.Products.CountActive(ctx); err != nil {
		return nil, err
	}
	if st.TotalUsers, err = s.store.Users.CountByRole(ctx, models.RoleUser); err != nil {
		return nil, err
	}
	if st.TotalOrders, err = s.store.Orders.Count(ctx); err != nil {
		return nil, err
	}
	if st.TotalSales, err = s.store.Orders.SumTotalByStatus(ctx, models.OrderStatusDelivered); err != nil {
		return nil, err
	}
	return &st, nil
}

// ---- categories ----

type CategoryInput struct {
	Name     *string `json:"name"`
	Image    *string `json:"image"`
	Priority *int    `json:"priority"`
	IsActive *bool   `json:"isActive"`
}

func (s *AdminService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories.List(ctx, false)
}

func (s *AdminService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name, image := trimmed(in.Name), trimmed(in.Image)
	if name == "" || image == "" {
		return nil, models.NewValidationError("Name and image URL are required.",
			models.FieldError{Field: "name", Message: "required"},
			models.FieldError{Field: "image", Message: "required"},
		)
	}
	c := &models.Category{
		ID:       uuid.New(),
		Name:     name,
		Slug:     slug.Make(name),
		Image:    image,
		Priority: models.DefaultPriority,
		IsActive: true,
	}
	if in.Priority != nil {
		c.Priority = *in.Priority
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := s.store.Categories.Create(ctx, c); err != nil {
		return nil, categoryConflict(err)
	}
	return c, nil
}

func (s *AdminService) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	c, err := s.store.Categories.FindByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewNotFound("Category not found")
	}
	if err != nil {
		return nil, err
	}
	if name := trimmed(in.Name); name != "" {
		c.Name = name
		c.Slug = slug.Make(name)
	}
	if image := trimmed(in.Image); image != "" {
		c.Image = image
	}
	if in.Priority != nil {
		c.Priority = *in.Priority
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := s.store.Categories.Update(ctx, c); err != nil {
		return nil, categoryConflict(err)
	}
	return c, nil
}

// DeleteCategory refuses while any product still points at the category.
func (s *AdminService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.store.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.store.Categories.FindByID(ctx, id); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return models.NewNotFound("Category not found")
			}
			return err
		}
		n, err := s.store.Products.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return models.ErrCategoryInUse
		}
		return s.store.Categories.Delete(ctx, id)
	})
}

func categoryConflict(err error) error {
	if errors.Is(err, models.ErrConflict) {
		return models.NewConflict("Category name already exists")
	}
	return err
}

// ---- products ----

// ProductInput is a create or partial update. Nil fields are left alone on
// update. Price is in minor units.
type ProductInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Images        []string `json:"images"`
	Price         *int64   `json:"price"`
	CategoryID    *string  `json:"categoryId"`
	Sizes         []string `json:"sizes"`
	StockQuantity *int     `json:"stockQuantity"`
	IsFeatured    *bool    `json:"isFeatured"`
	IsActive      *bool    `json:"isActive"`
}

type AdminProductQuery struct {
	CategoryID string
	Search     string
}

func (s *AdminService) ListProducts(ctx context.Context, q AdminProductQuery) ([]models.Product, error) {
	f := models.ProductFilter{Search: strings.TrimSpace(q.Search), Sort: models.SortNewest}
	if raw := strings.TrimSpace(q.CategoryID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, models.NewValidationError("Invalid category id", models.FieldError{Field: "category", Message: "invalid id"})
		}
		f.CategoryIDs = []uuid.UUID{id}
	}
	list, _, err := s.store.Products.List(ctx, f)
	return list, err
}

func (s *AdminService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.store.Products.FindByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewNotFound("Product not found")
	}
	return p, err
}

func (s *AdminService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	p := &models.Product{ID: uuid.New(), IsActive: true}
	var missing []models.FieldError
	if in.Name == nil {
		missing = append(missing, models.FieldError{Field: "name", Message: "required"})
	}
	if in.Price == nil {
		missing = append(missing, models.FieldError{Field: "price", Message: "required"})
	}
	if in.CategoryID == nil {
		missing = append(missing, models.FieldError{Field: "categoryId", Message: "required"})
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError("Validation failed", missing...)
	}
	if in.Images == nil {
		in.Images = []string{}
	}
	if err := s.applyProduct(ctx, p, in); err != nil {
		return nil, err
	}
	p.Slug = slug.Make(p.Name)
	if err := s.store.Products.Create(ctx, p); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.NewConflict("A product with this name already exists")
		}
		return nil, err
	}
	log.Info().Str("product", p.Slug).Msg("product created")
	return s.GetProduct(ctx, p.ID)
}

// UpdateProduct applies a partial update. A rename re-derives the slug
// unless an order line already references the product.
//
// The product row stays locked from read to write, so stock taken by a
// checkout in between is never written back.
func (s *AdminService) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*models.Product, error) {
	err := s.store.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.store.Products.FindByIDForUpdate(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			return models.NewNotFound("Product not found")
		}
		if err != nil {
			return err
		}
		oldName := p.Name
		if err := s.applyProduct(ctx, p, in); err != nil {
			return err
		}
		if p.Name != oldName {
			if next := slug.Make(p.Name); next != p.Slug {
				referenced, err := s.store.Orders.ReferencesProduct(ctx, p.ID)
				if err != nil {
					return err
				}
				if !referenced {
					p.Slug = next
				}
			}
		}
		err = s.store.Products.Update(ctx, p)
		if errors.Is(err, models.ErrConflict) {
			return models.NewConflict("A product with this name already exists")
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

func (s *AdminService) applyProduct(ctx context.Context, p *models.Product, in ProductInput) error {
	var fields []models.FieldError
	add := func(field, msg string) { fields = append(fields, models.FieldError{Field: field, Message: msg}) }

	if in.Name != nil {
		if p.Name = strings.TrimSpace(*in.Name); p.Name == "" {
			add("name", "required")
		}
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Images != nil {
		images := nonBlank(in.Images)
		if len(images) < 1 || len(images) > models.MaxProductImages {
			add("images", "between 1 and 6 images are required")
		}
		p.Images = images
	}
	if in.Price != nil {
		if *in.Price < 0 {
			add("price", "must not be negative")
		}
		p.Price = *in.Price
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			add("stockQuantity", "must not be negative")
		}
		p.StockQuantity = *in.StockQuantity
	}
	if in.Sizes != nil {
		p.Sizes = nonBlank(in.Sizes)
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.CategoryID != nil {
		id, err := uuid.Parse(strings.TrimSpace(*in.CategoryID))
		if err != nil {
			add("categoryId", "invalid id")
		} else if _, err := s.store.Categories.FindByID(ctx, id); err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				return err
			}
			add("categoryId", "category does not exist")
		} else {
			p.CategoryID = id
		}
	}
	if len(fields) > 0 {
		return models.NewValidationError("Validation failed", fields...)
	}
	return nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.store.Products.Delete(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.NewNotFound("Product not found")
	}
	return err
}

// ---- users ----

type UserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.Users.List(ctx)
}

func (s *AdminService) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	if trimmed(in.Name) == "" || trimmed(in.Email) == "" || in.Password == nil || *in.Password == "" || trimmed(in.Role) == "" {
		return nil, models.NewValidationError("Please provide name, email, password, and role.")
	}
	u := &models.User{ID: uuid.New(), IsActive: true, Provider: models.ProviderLocal}
	if err := s.applyUser(u, in); err != nil {
		return nil, err
	}
	if err := s.store.Users.Create(ctx, u); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.NewConflict("User with that email already exists.")
		}
		return nil, err
	}
	return u, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, id uuid.UUID, in UserInput) (*models.User, error) {
	u, err := s.store.Users.FindByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewNotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	if err := s.applyUser(u, in); err != nil {
		return nil, err
	}
	if err := s.store.Users.Update(ctx, u); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.NewConflict("User update failed. Email may already be in use.")
		}
		return nil, err
	}
	return u, nil
}

func (s *AdminService) applyUser(u *models.User, in UserInput) error {
	var fields []models.FieldError
	if name := trimmed(in.Name); name != "" {
		u.Name = name
	}
	if email := strings.ToLower(trimmed(in.Email)); email != "" {
		if s.validate.Var(email, "email") != nil {
			fields = append(fields, models.FieldError{Field: "email", Message: "Valid email is required"})
		}
		u.Email = email
	}
	if role := trimmed(in.Role); role != "" {
		r, err := models.ParseRole(strings.ToLower(role))
		if err != nil {
			fields = append(fields, models.FieldError{Field: "role", Message: "must be user or admin"})
		}
		u.Role = r
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < auth.MinPasswordLength {
			fields = append(fields, models.FieldError{Field: "password", Message: "must be at least 6 characters"})
		} else {
			hash, err := auth.HashPassword(*in.Password)
			if err != nil {
				return err
			}
			u.PasswordHash = hash
		}
	}
	if len(fields) > 0 {
		return models.NewValidationError("Validation failed", fields...)
	}
	return nil
}

// DeleteUser never removes the master admin account.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	u, err := s.store.Users.FindByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.NewNotFound("User not found")
	}
	if err != nil {
		return err
	}
	if s.masterEmail != "" && strings.EqualFold(u.Email, s.masterEmail) {
		return models.NewConflict("Cannot delete the master admin account.")
	}
	return s.store.Users.Delete(ctx, id)
}

// ---- banners ----

type BannerInput struct {
	Title    *string `json:"title"`
	Image    *string `json:"image"`
	Link     *string `json:"link"`
	IsActive *bool   `json:"isActive"`
	Priority *int    `json:"priority"`
}

func (s *AdminService) ListBanners(ctx context.Context) ([]models.Banner, error) {
	return s.store.Banners.List(ctx, false)
}

func (s *AdminService) CreateBanner(ctx context.Context, in BannerInput) (*models.Banner, error) {
	if trimmed(in.Title) == "" || trimmed(in.Image) == "" {
		return nil, models.NewValidationError("Title and image are required.",
			models.FieldError{Field: "title", Message: "required"},
			models.FieldError{Field: "image", Message: "required"},
		)
	}
	b := &models.Banner{ID: uuid.New(), IsActive: true, Priority: models.DefaultPriority}
	applyBanner(b, in)
	if err := s.store.Banners.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *AdminService) UpdateBanner(ctx context.Context, id uuid.UUID, in BannerInput) (*models.Banner, error) {
	b, err := s.store.Banners.FindByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewNotFound("Banner not found")
	}
	if err != nil {
		return nil, err
	}
	applyBanner(b, in)
	if err := s.store.Banners.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func applyBanner(b *models.Banner, in BannerInput) {
	if v := trimmed(in.Title); v != "" {
		b.Title = v
	}
	if v := trimmed(in.Image); v != "" {
		b.Image = v
	}
	if in.Link != nil {
		b.Link = strings.TrimSpace(*in.Link)
	}
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
	if in.Priority != nil {
		b.Priority = *in.Priority
	}
}

func (s *AdminService) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	err := s.store.Banners.Delete(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.NewNotFound("Banner not found")
	}
	return err
}

// ---- orders ----

func (s *AdminService) ListOrders(ctx context.Context, f models.OrderFilter) ([]models.Order, models.Pagination, error) {
	return s.orders.ListOrders(ctx, f)
}

func (s *AdminService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	return s.orders.UpdateStatus(ctx, id, status)
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

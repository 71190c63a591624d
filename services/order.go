package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

const DefaultOrderPageLimit = 10

type OrderLineInput struct {
	ProductID string
	Quantity  int
	Size      string
}

// PlaceOrderInput is a checkout request. Exactly one of UserID and GuestEmail
// identifies the buyer.
type PlaceOrderInput struct {
	Lines           []OrderLineInput
	ShippingAddress models.ShippingAddress
	UserID          *uuid.UUID
	GuestEmail      string
	IdempotencyKey  string
}

type OrderService struct {
	store    models.Store
	opts     Options
	validate *validator.Validate
}

type orderLine struct {
	productID uuid.UUID
	quantity  int
	size      string
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,}[0-9]$`)

// PlaceOrder turns a cart into a persisted Pending order. Either every line's
// stock is decremented and the order exists, or nothing changed. created is
// false when an earlier order with the same idempotency key is returned.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (order *models.Order, created bool, err error) {
	lines, addr, err := s.validateInput(&in)
	if err != nil {
		return nil, false, err
	}

	if in.IdempotencyKey != "" {
		prev, err := s.replay(ctx, in)
		if err != nil || prev != nil {
			return prev, false, err
		}
	}

	now := s.opts.Now()
	order = &models.Order{
		ID:              uuid.New(),
		OrderNumber:     models.NewOrderNumber(now),
		UserID:          in.UserID,
		GuestEmail:      in.GuestEmail,
		ShippingAddress: addr,
		Status:          models.OrderStatusPending,
		PaymentMethod:   models.PaymentMethodCOD,
		CreatedAt:       now,
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		order.IdempotencyKey = &key
	}

	err = s.store.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		items, err := s.checkLines(ctx, lines)
		if err != nil {
			return err
		}
		for i, l := range lines {
			ok, err := s.store.Products.DecrementStock(ctx, l.productID, l.quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &models.ProductError{Kind: models.ErrInsufficientStock, ProductID: l.productID, Name: items[i].Name}
			}
		}
		order.Items = items
		order.TotalAmount = order.ComputeTotal()
		if err := order.Validate(); err != nil {
			return err
		}
		return s.store.Orders.Create(ctx, order)
	})
	if err != nil {
		if in.IdempotencyKey != "" && errors.Is(err, models.ErrConflict) {
			if winner, ferr := s.replay(ctx, in); ferr != nil || winner != nil {
				return winner, false, ferr
			}
		}
		return nil, false, err
	}

	log.Info().
		Str("order", order.OrderNumber).
		Int64("total", order.TotalAmount).
		Int("lines", len(order.Items)).
		Bool("guest", order.UserID == nil).
		Msg("order placed")
	return order, true, nil
}

// checkLines loads each line's product in request order and stops at the
// first failed precondition.
func (s *OrderService) checkLines(ctx context.Context, lines []orderLine) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		p, err := s.store.Products.FindByID(ctx, l.productID)
		if errors.Is(err, models.ErrNotFound) {
			return nil, &models.ProductError{Kind: models.ErrProductNotFound, ProductID: l.productID}
		}
		if err != nil {
			return nil, err
		}
		switch {
		case !p.IsActive:
			return nil, &models.ProductError{Kind: models.ErrProductInactive, ProductID: p.ID, Name: p.Name}
		case p.StockQuantity < l.quantity:
			return nil, &models.ProductError{Kind: models.ErrInsufficientStock, ProductID: p.ID, Name: p.Name}
		}
		size := l.size
		if len(p.Sizes) > 0 {
			if !p.HasSize(size) {
				return nil, &models.ProductError{Kind: models.ErrInvalidSize, ProductID: p.ID, Name: p.Name}
			}
			size = canonicalSize(p, size)
		}
		items = append(items, models.OrderItem{
			ID:        uuid.New(),
			ProductID: p.ID,
			Name:      p.Name,
			Slug:      p.Slug,
			Quantity:  l.quantity,
			Price:     p.Price,
			Size:      size,
		})
	}
	return items, nil
}

func canonicalSize(p *models.Product, size string) string {
	for _, s := range p.Sizes {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(size)) {
			return s
		}
	}
	return size
}

// replay returns the order an idempotency key already produced, or nil when
// the key is new.
func (s *OrderService) replay(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	prev, err := s.store.Orders.FindByIdempotencyKey(ctx, in.IdempotencyKey)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkReplay(prev, in); err != nil {
		return nil, err
	}
	return prev, nil
}

// checkReplay admits prev as the answer to in only for the same buyer inside
// the replay window.
func (s *OrderService) checkReplay(prev *models.Order, in PlaceOrderInput) error {
	if s.opts.Now().Sub(prev.CreatedAt) > s.opts.IdempotencyWindow {
		return models.NewValidationError("Idempotency key has expired", models.FieldError{
			Field: "Idempotency-Key", Message: "already used outside the replay window",
		})
	}
	sameBuyer := (in.UserID != nil && prev.OwnedBy(*in.UserID)) ||
		(in.UserID == nil && prev.UserID == nil && strings.EqualFold(prev.GuestEmail, in.GuestEmail))
	if !sameBuyer {
		return models.NewConflict("Idempotency key was already used by another checkout")
	}
	return nil
}

func (s *OrderService) validateInput(in *PlaceOrderInput) ([]orderLine, models.ShippingAddress, error) {
	var fields []models.FieldError
	add := func(field, msg string) { fields = append(fields, models.FieldError{Field: field, Message: msg}) }

	if len(in.Lines) == 0 {
		add("products", "Products array is required and must not be empty")
	}
	lines := make([]orderLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		id, err := uuid.Parse(strings.TrimSpace(l.ProductID))
		if err != nil {
			add(fmt.Sprintf("products[%d].productId", i), "Valid product ID is required")
		}
		if l.Quantity < 1 {
			add(fmt.Sprintf("products[%d].quantity", i), "Quantity must be at least 1")
		}
		lines = append(lines, orderLine{productID: id, quantity: l.Quantity, size: strings.TrimSpace(l.Size)})
	}

	a := models.ShippingAddress{
		FullName:   strings.TrimSpace(in.ShippingAddress.FullName),
		Address:    strings.TrimSpace(in.ShippingAddress.Address),
		City:       strings.TrimSpace(in.ShippingAddress.City),
		PostalCode: strings.TrimSpace(in.ShippingAddress.PostalCode),
		Phone:      strings.TrimSpace(in.ShippingAddress.Phone),
	}
	if len([]rune(a.FullName)) < 2 {
		add("shippingAddress.fullName", "Full name is required")
	}
	if len([]rune(a.Address)) < 5 {
		add("shippingAddress.address", "Address is required")
	}
	if len([]rune(a.City)) < 2 {
		add("shippingAddress.city", "City is required")
	}
	if len([]rune(a.PostalCode)) < 4 {
		add("shippingAddress.postalCode", "Postal code is required")
	}
	if !phonePattern.MatchString(a.Phone) {
		add("shippingAddress.phone", "Valid phone number is required")
	}

	in.GuestEmail = strings.ToLower(strings.TrimSpace(in.GuestEmail))
	hasUser := in.UserID != nil && *in.UserID != uuid.Nil
	switch {
	case hasUser && in.GuestEmail != "":
		add("guestEmail", "Guest email must not be sent by a signed-in customer")
	case !hasUser && in.GuestEmail == "":
		add("guestEmail", "Guest email is required")
	case !hasUser && s.validate.Var(in.GuestEmail, "email") != nil:
		add("guestEmail", "Valid email is required")
	}
	if !hasUser {
		in.UserID = nil
	}

	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)
	if len(in.IdempotencyKey) > 100 {
		add("Idempotency-Key", "must be at most 100 characters")
	}

	if len(fields) > 0 {
		return nil, a, models.NewValidationError("Validation failed", fields...)
	}
	return lines, a, nil
}

// GetOrder returns the order to its owner or to an admin.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID, viewer models.Identity) (*models.Order, error) {
	o, err := s.store.Orders.FindByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewNotFound("Order not found")
	}
	if err != nil {
		return nil, err
	}
	if !viewer.IsAdmin() && !o.OwnedBy(viewer.UserID) {
		return nil, models.NewForbidden("Access denied")
	}
	return o, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.store.Orders.ListByUser(ctx, userID)
}

func (s *OrderService) ListOrders(ctx context.Context, f models.OrderFilter) ([]models.Order, models.Pagination, error) {
	f.Page, f.Limit = models.NormalizePage(f.Page, f.Limit, DefaultOrderPageLimit)
	list, total, err := s.store.Orders.List(ctx, f)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return list, models.NewPagination(f.Page, f.Limit, total), nil
}

// UpdateStatus moves an order to status. The status name is matched without
// regard to case.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	to, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	var out *models.Order
	err = s.store.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		o, err := s.store.Orders.FindByID(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			return models.NewNotFound("Order not found")
		}
		if err != nil {
			return err
		}
		if err := models.CheckTransition(o.Status, to, s.opts.StrictTransitions); err != nil {
			return err
		}
		from := o.Status
		if from != to {
			if err := s.store.Orders.UpdateStatus(ctx, id, to); err != nil {
				return err
			}
			o.Status = to
			log.Info().Str("order", o.OrderNumber).Str("from", string(from)).Str("to", string(to)).Msg("order status changed")
		}
		out = o
		return nil
	})
	return out, err
}

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"    // Order placed, awaiting confirmation
	OrderStatusProcessing OrderStatus = "Processing" // Being packed
	OrderStatusShipped    OrderStatus = "Shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "Delivered"  // Customer received the items
	OrderStatusCancelled  OrderStatus = "Cancelled"  // Cancelled by the shop or the customer
)

// PaymentMethodCOD is the only payment method: cash on delivery.
const PaymentMethodCOD = "COD"

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ParseOrderStatus maps a case-insensitive status name to its enum value.
func ParseOrderStatus(status string) (OrderStatus, error) {
	status = strings.TrimSpace(status)
	for _, s := range orderStatuses {
		if strings.EqualFold(string(s), status) {
			return s, nil
		}
	}
	return "", NewValidationError("Invalid order status", FieldError{
		Field:   "status",
		Message: "must be one of Pending, Processing, Shipped, Delivered, Cancelled",
	})
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CheckTransition validates moving an order from one status to another. In
// permissive mode any move is allowed, matching how admins have always been
// able to correct a status. In strict mode Delivered and Cancelled are final.
func CheckTransition(from, to OrderStatus, strict bool) error {
	if !strict || from == to {
		return nil
	}
	if from.IsTerminal() {
		return NewValidationError(
			fmt.Sprintf("Order is %s and can no longer change status", from),
			FieldError{Field: "status", Message: "transition not allowed"},
		)
	}
	return nil
}

type ShippingAddress struct {
	FullName   string `gorm:"size:140" json:"fullName"`
	Address    string `gorm:"size:255" json:"address"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:20" json:"postalCode"`
	Phone      string `gorm:"size:40" json:"phone"`
}

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber     string          `gorm:"size:40;not null;uniqueIndex" json:"orderNumber"`
	UserID          *uuid.UUID      `gorm:"type:uuid;index" json:"user,omitempty"`
	GuestEmail      string          `gorm:"size:160" json:"guestEmail,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products"`
	TotalAmount     int64           `gorm:"not null;check:chk_orders_total,total_amount >= 0" json:"totalAmount"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMethod   string          `gorm:"type:varchar(10);not null" json:"paymentMethod"`
	IdempotencyKey  *string         `gorm:"size:100;uniqueIndex" json:"-"`
	CreatedAt       time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem holds the product name, slug and unit price as they were when the
// order was placed. Later catalog edits never flow back into it.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product"`
	Name      string    `gorm:"size:200" json:"name"`
	Slug      string    `gorm:"size:220" json:"slug"`
	Quantity  int       `gorm:"not null;check:chk_order_items_quantity,quantity >= 1" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"`
	Size      string    `gorm:"size:40" json:"size,omitempty"`
}

func (i OrderItem) Subtotal() int64 { return i.Price * int64(i.Quantity) }

// ComputeTotal sums unit price snapshot times quantity over every line.
func (o *Order) ComputeTotal() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.Subtotal()
	}
	return total
}

// Validate checks the record-level invariants of an order: it has lines, and
// exactly one of user reference and guest email identifies the buyer.
func (o *Order) Validate() error {
	var fields []FieldError
	hasUser := o.UserID != nil && *o.UserID != uuid.Nil
	hasGuest := strings.TrimSpace(o.GuestEmail) != ""
	switch {
	case hasUser && hasGuest:
		fields = append(fields, FieldError{Field: "guestEmail", Message: "must not be set for a signed-in customer"})
	case !hasUser && !hasGuest:
		fields = append(fields, FieldError{Field: "guestEmail", Message: "guest email is required"})
	}
	if len(o.Items) == 0 {
		fields = append(fields, FieldError{Field: "products", Message: "at least one product is required"})
	}
	for i, it := range o.Items {
		if it.Quantity < 1 {
			fields = append(fields, FieldError{Field: fmt.Sprintf("products[%d].quantity", i), Message: "quantity must be at least 1"})
		}
	}
	if o.TotalAmount != o.ComputeTotal() {
		fields = append(fields, FieldError{Field: "totalAmount", Message: "does not match line items"})
	}
	if len(fields) > 0 {
		return NewValidationError("Validation failed", fields...)
	}
	return nil
}

func (o *Order) OwnedBy(userID uuid.UUID) bool {
	return o.UserID != nil && *o.UserID == userID
}

// NewOrderNumber renders BB-<unix millis>-<9 uppercase alphanumerics>.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:9]
	return fmt.Sprintf("BB-%d-%s", now.UnixMilli(), suffix)
}

type OrderFilter struct {
	Status OrderStatus
	Page   int
	Limit  int
}

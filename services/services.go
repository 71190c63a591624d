// Package services holds the storefront's business operations. Handlers call
// into it; it talks to storage only through the repository interfaces.
package services

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/saqibam92/BlashBerry-nextjs/auth"
	"github.com/saqibam92/BlashBerry-nextjs/models"
)

type Options struct {
	// StrictTransitions makes Delivered and Cancelled final.
	StrictTransitions bool
	IdempotencyWindow time.Duration
	MasterAdminEmail  string
	Now               func() time.Time
}

type Services struct {
	Orders      *OrderService
	Catalog     *CatalogService
	Reviews     *ReviewService
	Admin       *AdminService
	Auth        *AuthService
	Spreadsheet *SpreadsheetService
}

// New builds every service over store. google may be nil when Google sign-in
// is not configured.
func New(store models.Store, tokens *auth.Tokens, google auth.GoogleVerifier, opts Options) *Services {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.IdempotencyWindow <= 0 {
		opts.IdempotencyWindow = 24 * time.Hour
	}
	v := validator.New()
	orders := &OrderService{store: store, opts: opts, validate: v}
	admin := &AdminService{store: store, orders: orders, masterEmail: opts.MasterAdminEmail, validate: v}
	return &Services{
		Orders:      orders,
		Catalog:     &CatalogService{store: store},
		Reviews:     &ReviewService{store: store, now: opts.Now},
		Admin:       admin,
		Auth:        &AuthService{store: store, tokens: tokens, google: google, validate: v},
		Spreadsheet: &SpreadsheetService{store: store, admin: admin},
	}
}

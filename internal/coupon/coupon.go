package coupon

import (
	"context"

	"tasdrives/internal/model"
)

// Validator resolves coupon codes against the discount lookup table.
type Validator interface {
	// Lookup returns the coupon matching code, ignoring case and surrounding
	// whitespace. It returns model.ErrInvalidCoupon when no coupon matches.
	Lookup(ctx context.Context, code string) (*model.Coupon, error)

	// Size returns the number of coupons in the table.
	Size() int

	// Close releases resources held by the validator.
	Close() error
}

// CouponSet represents a set of coupons keyed by normalised code.
type CouponSet interface {
	// Get returns the coupon stored under an already normalised code.
	Get(code string) (model.Coupon, bool)

	// All returns every coupon in the set.
	All() []model.Coupon

	// Size returns the number of coupons in the set.
	Size() int
}

// Loader defines the interface for loading coupon table files.
type Loader interface {
	// Load reads a gzipped coupon table file and returns a CouponSet.
	Load(ctx context.Context, filePath string) (CouponSet, error)
}

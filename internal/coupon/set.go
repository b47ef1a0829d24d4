package coupon

import (
	"sort"
	"strings"

	"tasdrives/internal/model"
)

// DefaultCoupons is the built-in discount table.
var DefaultCoupons = []model.Coupon{
	{Code: "TASDRIVES10", Rate: 0.10, Message: "10% de descuento aplicado"},
	{Code: "VERANO2023", Rate: 0.15, Message: "15% de descuento aplicado"},
	{Code: "BIENVENIDO", Rate: 0.05, Message: "5% de descuento aplicado"},
}

// Normalize canonicalises a coupon code for lookups.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// mapCouponSet implements CouponSet using a map for O(1) lookups.
type mapCouponSet struct {
	coupons map[string]model.Coupon
}

// NewMapCouponSet creates a new map-based coupon set.
func NewMapCouponSet(capacity int) CouponSet {
	return &mapCouponSet{
		coupons: make(map[string]model.Coupon, capacity),
	}
}

// NewDefaultCouponSet returns a set holding DefaultCoupons.
func NewDefaultCouponSet() CouponSet {
	set := NewMapCouponSet(len(DefaultCoupons)).(*mapCouponSet)
	for _, c := range DefaultCoupons {
		set.Add(c)
	}
	return set
}

// Get returns the coupon stored under code.
func (s *mapCouponSet) Get(code string) (model.Coupon, bool) {
	c, exists := s.coupons[code]
	return c, exists
}

// All returns every coupon in the set, ordered by code.
func (s *mapCouponSet) All() []model.Coupon {
	all := make([]model.Coupon, 0, len(s.coupons))
	for _, c := range s.coupons {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return all
}

// Size returns the number of coupons in the set.
func (s *mapCouponSet) Size() int {
	return len(s.coupons)
}

// Add adds a coupon to the set, replacing any coupon with the same code.
func (s *mapCouponSet) Add(c model.Coupon) {
	c.Code = Normalize(c.Code)
	s.coupons[c.Code] = c
}

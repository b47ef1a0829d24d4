package coupon

import (
	"context"
	"fmt"

	"tasdrives/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// validator implements Validator over an immutable coupon table.
type validator struct {
	table  CouponSet
	logger zerolog.Logger
}

// ValidatorConfig holds configuration for the coupon validator.
type ValidatorConfig struct {
	// FilePaths is the list of coupon table files to load. Later files
	// override entries of earlier ones.
	FilePaths []string

	// IncludeDefaults seeds the table with DefaultCoupons before the files
	// are applied.
	IncludeDefaults bool
}

// DefaultValidatorConfig returns the default validator configuration:
// the built-in coupons and no table files.
func DefaultValidatorConfig() *ValidatorConfig {
	return &ValidatorConfig{
		FilePaths:       []string{},
		IncludeDefaults: true,
	}
}

// NewValidator creates a new coupon validator.
// It loads all coupon table files concurrently at initialization time.
func NewValidator(ctx context.Context, config *ValidatorConfig, loader Loader, logger zerolog.Logger) (Validator, error) {
	if config == nil {
		config = DefaultValidatorConfig()
	}

	logger = logger.With().Str("component", "coupon-validator").Logger()

	logger.Info().
		Int("file_count", len(config.FilePaths)).
		Bool("include_defaults", config.IncludeDefaults).
		Msg("initialising coupon validator")

	// Each goroutine owns one slot, so merging in index order lets later
	// files override earlier ones.
	sets := make([]CouponSet, len(config.FilePaths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range config.FilePaths {
		g.Go(func() error {
			set, err := loader.Load(gctx, path)
			if err != nil {
				logger.Error().Err(err).Str("file", path).Msg("failed to load coupon file")
				return fmt.Errorf("failed to load coupon file %s: %w", path, err)
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := NewMapCouponSet(len(DefaultCoupons)).(*mapCouponSet)
	if config.IncludeDefaults {
		for _, c := range DefaultCoupons {
			table.Add(c)
		}
	}
	for i, set := range sets {
		for _, c := range set.All() {
			table.Add(c)
		}
		logger.Debug().
			Str("file", config.FilePaths[i]).
			Int("size", set.Size()).
			Msg("coupon file merged")
	}

	logger.Info().
		Int("total_coupons", table.Size()).
		Msg("coupon validator ready")

	return &validator{
		table:  table,
		logger: logger,
	}, nil
}

// NewStaticValidator creates a validator over the given coupons only.
func NewStaticValidator(coupons []model.Coupon, logger zerolog.Logger) Validator {
	table := NewMapCouponSet(len(coupons)).(*mapCouponSet)
	for _, c := range coupons {
		table.Add(c)
	}
	return &validator{
		table:  table,
		logger: logger.With().Str("component", "coupon-validator").Logger(),
	}
}

// Lookup returns the coupon matching code.
func (v *validator) Lookup(ctx context.Context, code string) (*model.Coupon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized := Normalize(code)
	c, ok := v.table.Get(normalized)
	if !ok {
		v.logger.Debug().
			Str("coupon_code", normalized).
			Msg("coupon code not found")
		return nil, model.ErrInvalidCoupon
	}

	v.logger.Debug().
		Str("coupon_code", normalized).
		Float64("rate", c.Rate).
		Msg("coupon code matched")

	return &c, nil
}

// Size returns the number of coupons in the table.
func (v *validator) Size() int {
	return v.table.Size()
}

// Close releases resources held by the validator.
func (v *validator) Close() error {
	v.logger.Info().Msg("coupon validator closed")
	return nil
}

package coupon

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader reads coupon tables from the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a loader for gzip coupon tables on disk.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "coupon-file-loader").Logger(),
	}
}

func (l *fileLoader) Load(ctx context.Context, filePath string) (CouponSet, error) {
	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open coupon file")
		return nil, fmt.Errorf("failed to open coupon file %s: %w", filePath, err)
	}
	defer file.Close()

	set, err := decodeTable(ctx, file, filePath, l.logger)
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("coupons_loaded", set.Size()).
		Msg("coupon table loaded")

	return set, nil
}

// decodeTable reads a gzip-compressed CODE,RATE,MESSAGE table.
func decodeTable(ctx context.Context, r io.Reader, source string, logger zerolog.Logger) (CouponSet, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		logger.Error().Err(err).Str("source", source).Msg("coupon table is not gzip-compressed")
		return nil, fmt.Errorf("failed to open gzip stream for %s: %w", source, err)
	}
	defer zr.Close()

	return readCouponTable(ctx, zr, source, logger)
}

// chainLoader asks each loader in turn and returns the first table read.
type chainLoader struct {
	loaders []Loader
	logger  zerolog.Logger
}

// NewChainLoader creates a loader that tries loaders in order. Nil entries
// are skipped, so optional sources can be passed unconditionally.
func NewChainLoader(logger zerolog.Logger, loaders ...Loader) Loader {
	chain := make([]Loader, 0, len(loaders))
	for _, l := range loaders {
		if l != nil {
			chain = append(chain, l)
		}
	}
	return &chainLoader{
		loaders: chain,
		logger:  logger.With().Str("component", "coupon-chain-loader").Logger(),
	}
}

func (c *chainLoader) Load(ctx context.Context, name string) (CouponSet, error) {
	if len(c.loaders) == 0 {
		return nil, fmt.Errorf("no coupon loader configured for %s", name)
	}

	var errs []error
	for i, l := range c.loaders {
		set, err := l.Load(ctx, name)
		if err == nil {
			return set, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn().Err(err).Str("table", name).Int("source", i).Msg("coupon source failed, trying next")
		errs = append(errs, err)
	}

	return nil, errors.Join(errs...)
}

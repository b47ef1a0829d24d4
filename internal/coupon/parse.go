package coupon

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tasdrives/internal/model"

	"github.com/rs/zerolog"
)

// ParseLine parses one table line of the form CODE,RATE,MESSAGE.
// The message may itself contain commas.
func ParseLine(line string) (model.Coupon, error) {
	parts := strings.SplitN(line, ",", 3)
	if len(parts) != 3 {
		return model.Coupon{}, fmt.Errorf("expected CODE,RATE,MESSAGE, got %q", line)
	}

	code := Normalize(parts[0])
	if code == "" {
		return model.Coupon{}, fmt.Errorf("empty coupon code in %q", line)
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return model.Coupon{}, fmt.Errorf("invalid rate for %s: %w", code, err)
	}
	if rate <= 0 || rate >= 1 {
		return model.Coupon{}, fmt.Errorf("rate for %s must be between 0 and 1 exclusive, got %v", code, rate)
	}

	return model.Coupon{
		Code:    code,
		Rate:    rate,
		Message: strings.TrimSpace(parts[2]),
	}, nil
}

// readCouponTable reads table lines from r. Blank lines and lines starting
// with # are skipped; malformed lines are logged and skipped.
func readCouponTable(ctx context.Context, r io.Reader, source string, logger zerolog.Logger) (CouponSet, error) {
	set := NewMapCouponSet(64).(*mapCouponSet)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		// Check context cancellation periodically
		if lineNumber%10_000 == 0 {
			select {
			case <-ctx.Done():
				logger.Warn().Str("source", source).Msg("coupon loading cancelled")
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		c, err := ParseLine(line)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("source", source).
				Int("line", lineNumber).
				Msg("skipping invalid coupon line")
			continue
		}
		set.Add(c)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading coupon table %s: %w", source, err)
	}

	return set, nil
}

//go:build ignore

package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type sampleCoupon struct {
	code    string
	rate    float64
	message string
}

// Generates gzip coupon tables for local runs. Later files override earlier
// ones, so PROMO2024 ends up at 20% when both files are configured.
//
//	COUPON_FILES=data/coupons/base.gz,data/coupons/seasonal.gz
func main() {
	dataDir := "data/coupons"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	tables := map[string][]sampleCoupon{
		"base.gz": {
			{"TASDRIVES10", 0.10, "10% de descuento aplicado"},
			{"BIENVENIDO", 0.05, "5% de descuento aplicado"},
			{"PROMO2024", 0.12, "12% de descuento aplicado"},
		},
		"seasonal.gz": {
			{"VERANO2023", 0.15, "15% de descuento aplicado"},
			{"BUENFIN", 0.25, "25% de descuento por El Buen Fin"},
			{"PROMO2024", 0.20, "20% de descuento aplicado"},
		},
	}

	for filename, coupons := range tables {
		filePath := filepath.Join(dataDir, filename)

		if err := createCouponFile(filePath, coupons); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d coupons\n", filePath, len(coupons))
	}
}

func createCouponFile(filePath string, coupons []sampleCoupon) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	fmt.Fprintln(gzipWriter, "# code,rate,message")
	for _, c := range coupons {
		if _, err := fmt.Fprintf(gzipWriter, "%s,%.2f,%s\n", c.code, c.rate, c.message); err != nil {
			return fmt.Errorf("failed to write coupon: %w", err)
		}
	}

	return nil
}

package coupon

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectGetter is the subset of the S3 client used by the loader.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Loader reads coupon tables stored as objects under a bucket prefix.
type s3Loader struct {
	client objectGetter
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Loader creates a loader that resolves table names to
// s3://bucket/prefix+name using the default AWS credential chain.
func NewS3Loader(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Loader, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	l := newS3LoaderWithClient(s3.NewFromConfig(awsCfg), bucket, prefix, logger)
	l.logger.Info().Str("region", region).Msg("S3 coupon source ready")
	return l, nil
}

func newS3LoaderWithClient(client objectGetter, bucket, prefix string, logger zerolog.Logger) *s3Loader {
	return &s3Loader{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger.With().
			Str("component", "coupon-s3-loader").
			Str("bucket", bucket).
			Logger(),
	}
}

func (l *s3Loader) Load(ctx context.Context, name string) (CouponSet, error) {
	key := l.prefix + name
	source := "s3://" + l.bucket + "/" + key

	obj, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
	}
	defer obj.Body.Close()

	set, err := decodeTable(ctx, obj.Body, source, l.logger)
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("key", key).
		Int("coupons_loaded", set.Size()).
		Msg("coupon table loaded")

	return set, nil
}

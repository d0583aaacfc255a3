package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PortraitStore uploads character portraits to S3 and returns public URLs.
type PortraitStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewPortraitStore builds a store backed by the given bucket. An empty bucket
// disables uploads; Enabled reports false and Put is never called.
func NewPortraitStore(ctx context.Context, bucket, region, publicBaseURL string) (*PortraitStore, error) {
	ps := &PortraitStore{bucket: bucket, publicBaseURL: strings.TrimSuffix(publicBaseURL, "/")}
	if bucket == "" {
		return ps, nil
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	ps.client = s3.NewFromConfig(cfg)
	return ps, nil
}

func (ps *PortraitStore) Enabled() bool {
	return ps.client != nil && ps.bucket != ""
}

// Put uploads a PNG portrait for the character and returns its public URL.
func (ps *PortraitStore) Put(ctx context.Context, characterID string, png []byte) (string, error) {
	if !ps.Enabled() {
		return "", fmt.Errorf("portrait store not configured")
	}

	key := fmt.Sprintf("portraits/%s.png", characterID)
	contentType := "image/png"
	_, err := ps.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &ps.bucket,
		Key:         &key,
		Body:        bytes.NewReader(png),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload portrait: %w", err)
	}

	if ps.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", ps.publicBaseURL, key), nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", ps.bucket, key), nil
}

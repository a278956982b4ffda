// services/spaces.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// SpacesService stores card artwork in a DigitalOcean Spaces bucket. Cards
// keep only the resulting public URL; the bytes live in the bucket.
type SpacesService struct {
	client   *s3.Client
	bucket   string
	region   string
	CardRoot string
}

func NewSpacesService(spacesKey, spacesSecret, region, bucket, cardRoot string) (*SpacesService, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	return &SpacesService{
		client:   s3.NewFromConfig(cfg),
		bucket:   bucket,
		region:   region,
		CardRoot: strings.TrimPrefix(cardRoot, "/"),
	}, nil
}

// artworkKey is the object key for a card's artwork.
func (s *SpacesService) artworkKey(cardID int64) string {
	return fmt.Sprintf("%s/%d.jpg", s.CardRoot, cardID)
}

// ArtworkURL is the public CDN URL for a card's artwork.
func (s *SpacesService) ArtworkURL(cardID int64) string {
	return fmt.Sprintf("https://%s.%s.cdn.digitaloceanspaces.com/%s", s.bucket, s.region, s.artworkKey(cardID))
}

// UploadCardArtwork stores the artwork bytes and returns the public URL.
func (s *SpacesService) UploadCardArtwork(ctx context.Context, cardID int64, data []byte) (string, error) {
	key := s.artworkKey(cardID)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
		ACL:         "public-read",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload artwork for card %d: %w", cardID, err)
	}

	return s.ArtworkURL(cardID), nil
}

// VerifyArtwork reports whether a card's artwork object exists.
func (s *SpacesService) VerifyArtwork(ctx context.Context, cardID int64) bool {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.artworkKey(cardID)),
	})
	return err == nil
}

// DeleteCardArtwork removes a card's artwork object.
func (s *SpacesService) DeleteCardArtwork(ctx context.Context, cardID int64) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.artworkKey(cardID)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete artwork for card %d: %w", cardID, err)
	}
	return nil
}

func (s *SpacesService) GetBucket() string {
	return s.bucket
}

func (s *SpacesService) GetRegion() string {
	return s.region
}

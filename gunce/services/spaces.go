// services/spaces.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	lru "github.com/hashicorp/golang-lru"
)

const existenceCacheSize = 512

// SpacesService resolves avatar-frame artwork hosted on DigitalOcean
// Spaces. Frames are static assets uploaded by the design side; this
// service only builds CDN URLs and verifies the objects exist.
type SpacesService struct {
	client    *s3.Client
	bucket    string
	region    string
	FrameRoot string
	existence *lru.Cache
}

type existenceEntry struct {
	exists    bool
	timestamp time.Time
}

func NewSpacesService(spacesKey, spacesSecret, region, bucket, frameRoot string) *SpacesService {
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
		panic(fmt.Sprintf("Unable to load Spaces config: %v", err))
	}

	client := s3.NewFromConfig(cfg)
	cache, _ := lru.New(existenceCacheSize)

	return &SpacesService{
		client:    client,
		bucket:    bucket,
		region:    region,
		FrameRoot: strings.TrimPrefix(frameRoot, "/"),
		existence: cache,
	}
}

// FrameImageURL builds the public CDN URL for a frame by name.
func (s *SpacesService) FrameImageURL(frameName string) string {
	return fmt.Sprintf("https://%s.%s.cdn.digitaloceanspaces.com/%s/%s.png",
		s.bucket, s.region, s.FrameRoot, frameName)
}

// FrameExists checks whether the frame artwork is actually uploaded.
// Results are cached for an hour; a missing asset is a content problem,
// not something to re-check per request.
func (s *SpacesService) FrameExists(ctx context.Context, frameName string) bool {
	if cached, ok := s.existence.Get(frameName); ok {
		if e, ok := cached.(existenceEntry); ok {
			if time.Since(e.timestamp) < time.Hour {
				return e.exists
			}
		}
	}

	key := fmt.Sprintf("%s/%s.png", s.FrameRoot, frameName)
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})

	exists := err == nil
	s.existence.Add(frameName, existenceEntry{exists: exists, timestamp: time.Now()})
	return exists
}

func (s *SpacesService) GetBucket() string {
	return s.bucket
}

func (s *SpacesService) GetRegion() string {
	return s.region
}

func (s *SpacesService) GetFrameRoot() string {
	return s.FrameRoot
}

package photo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const DefaultURLTTL = 15 * time.Minute

type R2Parameters struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	// URLTTL is how long a signed URL stays valid
	URLTTL time.Duration
}

type signedURL struct {
	url     string
	expires time.Time
}

// R2Signer hands out presigned GET URLs for photos stored in a private Cloudflare R2 bucket.
// URLs are reused until half of their lifetime has passed so browsers can cache the images between polls.
type R2Signer struct {
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration

	lock  sync.Mutex
	cache map[string]signedURL
	now   func() time.Time
}

func NewR2Signer(ctx context.Context, params R2Parameters) (*R2Signer, error) {
	if params.AccountID == "" || params.Bucket == "" {
		return nil, errors.New("R2 account ID and bucket are required")
	}
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			params.AccessKeyID, params.AccessKeySecret, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", params.AccountID))
		o.UsePathStyle = true
	})
	ttl := params.URLTTL
	if ttl <= 0 {
		ttl = DefaultURLTTL
	}
	return &R2Signer{
		presign: s3.NewPresignClient(client),
		bucket:  params.Bucket,
		ttl:     ttl,
		cache:   make(map[string]signedURL),
		now:     time.Now,
	}, nil
}

// PhotoURL returns a signed URL for key; on failure the key itself is returned so the page still renders
func (r *R2Signer) PhotoURL(ctx context.Context, key string) string {
	if key == "" || isAbsolute(key) {
		return key
	}
	now := r.now()
	r.lock.Lock()
	cached, ok := r.cache[key]
	r.lock.Unlock()
	if ok && now.Before(cached.expires) {
		return cached.url
	}

	req, err := r.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(r.ttl))
	if err != nil {
		log.Printf("[Photo] failed to sign %s: %v\n", key, err)
		return key
	}

	r.lock.Lock()
	r.cache[key] = signedURL{url: req.URL, expires: now.Add(r.ttl / 2)}
	r.lock.Unlock()
	return req.URL
}

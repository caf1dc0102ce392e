// Package storage keeps platform snapshots in Cloudflare R2 through the S3 API.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"socialmedia/internal/config"
	"socialmedia/internal/snapshot"
)

const (
	contentTypeSnapshot = "application/json"
	latestObject        = "latest.snap"
	archiveFolder       = "archive"
)

// objectAPI is the subset of *s3.Client the store needs.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// R2Store writes every snapshot twice: to a fixed "latest" key that Load
// reads, and to a unique archive key that is never overwritten.
type R2Store struct {
	client objectAPI
	bucket string
	prefix string
}

// NewR2Store constructs an S3-compatible client for Cloudflare R2.
func NewR2Store(ctx context.Context, cfg *config.Config) (*R2Store, error) {
	if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" {
		return nil, fmt.Errorf("missing Cloudflare R2 configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for R2: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return newR2Store(s3Client, cfg.R2BucketName, cfg.R2Prefix), nil
}

func newR2Store(client objectAPI, bucket, prefix string) *R2Store {
	return &R2Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (s *R2Store) key(parts ...string) string {
	if s.prefix == "" {
		return strings.Join(parts, "/")
	}
	return s.prefix + "/" + strings.Join(parts, "/")
}

func (s *R2Store) latestKey() string {
	return s.key(latestObject)
}

func (s *R2Store) archiveKey(takenAt time.Time) string {
	name := fmt.Sprintf("%s-%s.snap", takenAt.UTC().Format("20060102T150405Z"), uuid.NewString())
	return s.key(archiveFolder, name)
}

func (s *R2Store) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	data, err := snapshot.Encode(snap)
	if err != nil {
		return err
	}

	archive := s.archiveKey(snap.TakenAt)
	if err := s.putObject(ctx, archive, data); err != nil {
		return err
	}
	if err := s.putObject(ctx, s.latestKey(), data); err != nil {
		return err
	}

	log.Printf("[R2Store] Save OK: bucket=%s archive=%s bytes=%d", s.bucket, archive, len(data))
	return nil
}

func (s *R2Store) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.latestKey()),
	})
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return nil, snapshot.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download from r2: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read r2 object: %w", err)
	}

	snap, err := snapshot.Decode(data)
	if err != nil {
		log.Printf("[R2Store] Load FAILED: key=%s err=%v", s.latestKey(), err)
		return nil, err
	}
	return snap, nil
}

// putObject uploads bytes to R2 with metadata.
func (s *R2Store) putObject(ctx context.Context, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentTypeSnapshot),
		CacheControl: aws.String("no-store"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to r2: %w", err)
	}
	return nil
}

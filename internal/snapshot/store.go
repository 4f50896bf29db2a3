// Package snapshot exports board trees as JSON objects to S3-compatible storage.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/rpggio/kanbee/internal/domain/board"
)

const requestTimeout = 10 * time.Second

// Config describes the bucket snapshots are written to. MinIO works with
// Endpoint set and UsePathStyle enabled.
type Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	Prefix       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// ObjectAPI is the subset of the S3 client the store uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Store saves and loads board trees under <prefix>/boards/<id>.json.
type Store struct {
	client ObjectAPI
	bucket string
	prefix string
	logger *slog.Logger
}

// NewClient builds an S3 client from static credentials and an optional custom endpoint.
func NewClient(ctx context.Context, cfg Config) (*s3.Client, error) {
	if cfg.Endpoint != "" {
		if _, err := url.Parse(cfg.Endpoint); err != nil {
			return nil, fmt.Errorf("invalid S3 endpoint: %w", err)
		}
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// NewStore wraps client for bucket.
func NewStore(client ObjectAPI, bucket, prefix string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// EnsureBucket fails when the bucket is missing or unreachable.
func (s *Store) EnsureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("bucket %s does not exist", s.bucket)
		}
		return fmt.Errorf("error checking bucket: %w", err)
	}
	return nil
}

// Key returns the object key for a board.
func (s *Store) Key(boardID string) string {
	return path.Join(s.prefix, "boards", boardID+".json")
}

// Save writes tree and returns its s3:// location.
func (s *Store) Save(ctx context.Context, tree *board.Tree) (string, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return "", fmt.Errorf("error encoding board json: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	key := s.Key(tree.ID)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("error saving board to S3: %w", err)
	}

	s.logger.Debug("snapshot saved", "bucket", s.bucket, "key", key, "bytes", len(data))
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// Load reads back a board's snapshot. A missing object is board.ErrSnapshotNotFound.
func (s *Store) Load(ctx context.Context, boardID string) (*board.Tree, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.Key(boardID)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, board.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("error loading board from S3: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading board data: %w", err)
	}
	var tree board.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("error decoding board json: %w", err)
	}
	return &tree, nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return true
		}
	}
	return false
}

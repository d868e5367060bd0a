// Package s3 keeps each slot as one object in an S3 compatible bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/MrJamesThe3rd/tpv/internal/persistence"
)

type Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, for MinIO and similar
	PathStyle bool
}

type Slot struct {
	client *s3.Client
	bucket string
}

// New builds a client from the default AWS credential chain. Extra options
// are applied after the ones derived from cfg.
func New(ctx context.Context, cfg Config, optFns ...func(*s3.Options)) (*Slot, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	fns := append([]func(*s3.Options){func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}}, optFns...)

	return &Slot{client: s3.NewFromConfig(awsCfg, fns...), bucket: cfg.Bucket}, nil
}

func objectKey(key string) string {
	return key + ".json"
}

func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(key)),
	})
	if isNotFound(err) {
		return nil, persistence.ErrSlotEmpty
	}

	if err != nil {
		return nil, fmt.Errorf("getting object: %w", err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading object: %w", err)
	}

	return data, nil
}

func (s *Slot) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("putting object: %w", err)
	}

	return nil
}

func (s *Slot) Close() error { return nil }

func isNotFound(err error) bool {
	if err == nil {
		return false
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}

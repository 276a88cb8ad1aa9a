package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	smithy "github.com/aws/smithy-go"

	"github.com/nickboucher/electionguard-verify/internal/verify"
	"github.com/nickboucher/electionguard-verify/log"
)

// S3Source reads an artifact from an S3-compatible bucket, one key per
// object, rooted at Prefix. Grounded on
// vocdoni-davinci-node/cmd/circuit-compile/s3.go's aws-sdk-go-v2 client
// construction (static credentials, custom endpoint, path-style addressing).
type S3Source struct {
	Bucket     string
	Prefix     string
	Endpoint   string
	Region     string
	AccessKey  string
	SecretKey  string
	Layout     Layout

	client *s3.Client
}

// NewS3Source returns an S3Source for the given bucket and key prefix. If
// accessKey/secretKey are empty the default AWS credential chain is used
// instead of static credentials.
func NewS3Source(ctx context.Context, bucket, prefix, endpoint, region, accessKey, secretKey string) (*S3Source, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
			o.UsePathStyle = true
		}
	})

	return &S3Source{
		Bucket: bucket, Prefix: prefix, Endpoint: endpoint, Region: region,
		AccessKey: accessKey, SecretKey: secretKey,
		Layout: DefaultLayout(), client: client,
	}, nil
}

// Load reads and decodes every artifact object into a verify.Bundle.
func (s *S3Source) Load(ctx context.Context) (*verify.Bundle, error) {
	return assemble(ctx, s, s.Layout)
}

func (s *S3Source) key(name string) string {
	return path.Join(s.Prefix, name)
}

func (s *S3Source) ReadFile(ctx context.Context, name string) ([]byte, error) {
	key := s.key(name)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.Bucket, Key: &key})
	if err != nil {
		return nil, fmt.Errorf("fetching s3://%s/%s: %w", s.Bucket, key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Source) ReadDir(ctx context.Context, dir, prefix string) ([][]byte, error) {
	listPrefix := s.key(path.Join(dir, prefix))

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: &s.Bucket,
		Prefix: &listPrefix,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			var apiErr smithy.APIError
			if errors.As(err, &apiErr) {
				return nil, fmt.Errorf("listing s3://%s/%s: %s: %w", s.Bucket, listPrefix, apiErr.ErrorCode(), err)
			}
			return nil, fmt.Errorf("listing s3://%s/%s: %w", s.Bucket, listPrefix, err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil && strings.HasSuffix(*obj.Key, jsonExt) {
				keys = append(keys, *obj.Key)
			}
		}
	}
	sort.Strings(keys)

	blobs := make([][]byte, 0, len(keys))
	for _, key := range keys {
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.Bucket, Key: &key})
		if err != nil {
			return nil, fmt.Errorf("fetching s3://%s/%s: %w", s.Bucket, key, err)
		}
		blob, err := io.ReadAll(out.Body)
		out.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading s3://%s/%s: %w", s.Bucket, key, err)
		}
		blobs = append(blobs, blob)
		log.Debugw("fetched artifact object from S3", "key", key)
	}
	return blobs, nil
}

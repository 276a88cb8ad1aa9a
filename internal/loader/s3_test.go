package loader

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	qt "github.com/frankban/quicktest"
	"github.com/testcontainers/testcontainers-go/modules/minio"
)

// TestS3SourceLoad runs a real MinIO container, uploads a minimal artifact
// into it, and verifies S3Source reads it back and decodes its constants,
// context and description. Skipped under `go test -short` since it needs a
// Docker daemon.
func TestS3SourceLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MinIO-backed S3Source test in short mode")
	}

	c := qt.New(t)
	ctx := context.Background()

	const rootUser = "minioadmin"
	const rootPassword = "minioadmin"

	container, err := minio.Run(ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z",
		minio.WithUsername(rootUser), minio.WithPassword(rootPassword))
	c.Assert(err, qt.IsNil)
	defer func() { _ = container.Terminate(ctx) }()

	endpoint, err := container.ConnectionString(ctx)
	c.Assert(err, qt.IsNil)
	endpointURL := "http://" + endpoint

	const bucket = "egverify-fixture"
	const prefix = "artifact"

	setupCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(rootUser, rootPassword, "")))
	c.Assert(err, qt.IsNil)

	setupClient := s3.NewFromConfig(setupCfg, func(o *s3.Options) {
		o.BaseEndpoint = &endpointURL
		o.UsePathStyle = true
	})

	_, err = setupClient.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: awsStr(bucket)})
	c.Assert(err, qt.IsNil)

	files := map[string]string{
		"constants.json":       `{"large_prime":"23","small_prime":"11","cofactor":"1","generator":"2"}`,
		"context.json":         `{"number_of_guardians":1,"quorum":1,"elgamal_public_key":"4","crypto_base_hash":"5","crypto_extended_base_hash":"6"}`,
		"description.json":     `{"contests":[{"object_id":"contest-1","votes_allowed":1,"ballot_selections":[{"object_id":"sel-1"}]}]}`,
		"encrypted_tally.json": `{"contests":{}}`,
		"tally.json":           `{"contests":{}}`,
	}
	for name, content := range files {
		key := fmt.Sprintf("%s/%s", prefix, name)
		_, err := setupClient.PutObject(ctx, &s3.PutObjectInput{
			Bucket: awsStr(bucket),
			Key:    awsStr(key),
			Body:   bytes.NewReader([]byte(content)),
		})
		c.Assert(err, qt.IsNil)
	}

	src, err := NewS3Source(ctx, bucket, prefix, endpointURL, "us-east-1", rootUser, rootPassword)
	c.Assert(err, qt.IsNil)

	bundle, err := src.Load(ctx)
	c.Assert(err, qt.IsNil)

	c.Assert(bundle.Constants.LargePrime.String(), qt.Equals, "23")
	c.Assert(bundle.Context.NumberOfGuardians, qt.Equals, 1)
	c.Assert(bundle.Description.Contests, qt.HasLen, 1)
	c.Assert(bundle.Description.Contests[0].ObjectID, qt.Equals, "contest-1")
}

func awsStr(s string) *string { return &s }

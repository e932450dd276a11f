package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/dmitrijs2005/collectkeeper/internal/server/config"
)

func stubPresign(t *testing.T, putURL, getURL string, putErr, getErr error) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if putErr != nil {
			return nil, putErr
		}
		return &v4.PresignedHTTPRequest{URL: putURL}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if getErr != nil {
			return nil, getErr
		}
		return &v4.PresignedHTTPRequest{URL: getURL}, nil
	}
}

func testMediaConfig() *sc.Config {
	return &sc.Config{
		S3RootUser:     "admin",
		S3RootPassword: "pw",
		S3Bucket:       "media",
		S3Region:       "us-east-1",
		S3BaseEndpoint: "http://127.0.0.1:9000/",
		PresignTTL:     15 * time.Minute,
	}
}

func TestRandomStorageKey(t *testing.T) {
	k1 := RandomStorageKey("owner-1")
	k2 := RandomStorageKey("owner-1")

	if !strings.HasPrefix(k1, "media/owner-1/") {
		t.Fatalf("unexpected key prefix: %q", k1)
	}
	if k1 == k2 {
		t.Fatalf("keys must be unique")
	}
}

func TestGetPresignedPutURL(t *testing.T) {
	stubPresign(t, "https://s3/put", "", nil, nil)

	s := NewMediaService(testMediaConfig())
	key, url, err := s.GetPresignedPutURL(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("GetPresignedPutURL error: %v", err)
	}
	if !strings.HasPrefix(key, "media/owner-1/") {
		t.Fatalf("unexpected key: %q", key)
	}
	if url != "https://s3/put" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestGetPresignedPutURL_Error(t *testing.T) {
	stubPresign(t, "", "", errors.New("presign failed"), nil)

	s := NewMediaService(testMediaConfig())
	if _, _, err := s.GetPresignedPutURL(context.Background(), "owner-1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGetPresignedGetURL(t *testing.T) {
	stubPresign(t, "", "https://s3/get", nil, nil)

	s := NewMediaService(testMediaConfig())
	url, err := s.GetPresignedGetURL(context.Background(), "media/owner-1/k")
	if err != nil {
		t.Fatalf("GetPresignedGetURL error: %v", err)
	}
	if url != "https://s3/get" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestGetPresignedGetURL_Error(t *testing.T) {
	stubPresign(t, "", "", nil, errors.New("presign failed"))

	s := NewMediaService(testMediaConfig())
	if _, err := s.GetPresignedGetURL(context.Background(), "k"); err == nil {
		t.Fatalf("expected error")
	}
}

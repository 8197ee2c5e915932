package storage

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/nicolagi/iddiff/internal/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const s3Scheme = "s3://"

var _ Store = (*s3Store)(nil)

type s3Store struct {
	profile string
	region  string

	// Both documents may be fetched at the same time.
	mu     sync.Mutex
	client *s3.S3
}

func newS3Store(c *config.C) *s3Store {
	return &s3Store{
		profile: c.S3Profile,
		region:  c.S3Region,
	}
}

// splitS3Key splits s3://bucket/path/to/object into bucket and object key.
func splitS3Key(k Key) (bucket string, object string, err error) {
	rest := strings.TrimPrefix(string(k), s3Scheme)
	i := strings.IndexByte(rest, '/')
	if i <= 0 || i == len(rest)-1 {
		return "", "", errorf("splitS3Key", "%q: want %sbucket/object", k, s3Scheme)
	}
	return rest[:i], rest[i+1:], nil
}

func (s *s3Store) Get(ctx context.Context, key Key) (contents Value, err error) {
	bucket, object, err := splitS3Key(key)
	if err != nil {
		return nil, err
	}
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	output, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(object),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, errors.Wrapf(ErrNotFound, "key=%q err=%+v", key, err)
		}
		return nil, err
	}
	defer func() {
		if err := output.Body.Close(); err != nil {
			log.WithFields(log.Fields{
				"op":  "get",
				"key": key,
			}).Warning("Could not close response body")
		}
	}()
	return io.ReadAll(output.Body)
}

func isNotFound(err error) bool {
	if rfErr, ok := err.(awserr.RequestFailure); ok && rfErr.StatusCode() == http.StatusNotFound {
		return true
	}
	if aErr, ok := err.(awserr.Error); ok {
		return aErr.Code() == s3.ErrCodeNoSuchKey || aErr.Code() == s3.ErrCodeNoSuchBucket
	}
	return false
}

func (s *s3Store) ensureClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return nil
	}
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(s.region),
		Credentials: credentials.NewSharedCredentials("", s.profile),
	})
	if err != nil {
		return err
	}
	s.client = s3.New(sess)
	return nil
}

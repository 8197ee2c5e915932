// Package storage reads the documents to compare. A document is addressed by
// a key: a path on disk, or an s3://bucket/object URL.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/nicolagi/iddiff/internal/config"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNotImplemented = errors.New("not implemented")
)

type Key string

// IsS3 tells whether the key names an object in an S3 bucket.
func (k Key) IsS3() bool {
	return strings.HasPrefix(string(k), s3Scheme)
}

type Value []byte

type Store interface {
	Get(context.Context, Key) (Value, error)
}

// NewStore returns a store that reads S3 keys from S3, per the region and
// profile configured, and all other keys from disk, relative to the configured
// root directory.
func NewStore(c *config.C) Store {
	return &Router{
		Disk: NewDiskStore(c.Root),
		S3:   newS3Store(c),
	}
}

// Router sends each key to the store that can serve it.
type Router struct {
	Disk Store
	S3   Store
}

var _ Store = (*Router)(nil)

func (r *Router) Get(ctx context.Context, k Key) (Value, error) {
	if k.IsS3() {
		if r.S3 == nil {
			return nil, errorf("Router.Get", "%q: %w", k, ErrNotImplemented)
		}
		return r.S3.Get(ctx, k)
	}
	return r.Disk.Get(ctx, k)
}

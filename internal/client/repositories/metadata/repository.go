// Package metadata is the desk client's durable key/value store. It holds the
// small amount of state that must survive a restart: the identity hint
// (last authenticated username) and the cookie jar that carries the refresh
// cookie. Access tokens are never written here.
package metadata

import "context"

// Repository stores opaque values by key. Get returns (nil, nil) when the
// key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

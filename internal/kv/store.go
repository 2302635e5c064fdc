// Package kv is the key-value persistence the cart snapshots live in. Values
// are opaque bytes; callers own the encoding.
package kv

import (
	"context"
	"time"
)

type Store interface {
	// Get reports ok=false for a missing key; that is not an error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

const (
	pingTimeout = 1 * time.Second
	opTimeout   = 2 * time.Second
)

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

// Package storage is the local persistence layer: a synchronous
// key/value store of JSON-encoded blobs. Writers overwrite whole
// values, last write wins.
package storage

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// GetJSON decodes the value under key into out. A missing key is
// reported as ErrNotFound with out untouched.
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func PutJSON(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, raw)
}

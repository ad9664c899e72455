// Package store persists whole entity collections under a fixed key in a durable
// key-value medium. Every write replaces the stored payload; there is no merge,
// no locking and no version check, so the last writer wins.
package store

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Fixed keys, one per collection.
const (
	KeyProperties = "properties"
	KeyViews      = "propertyViews"
	KeyUsers      = "users"
	KeyAgents     = "agents"
	KeyInquiries  = "inquiries"
)

var ErrNotFound = errors.New("store: key not found")

// Backend is the durable medium. Get returns ErrNotFound when nothing is stored under key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
}

// Seeder is implemented by backends that can coalesce concurrent first loads of a key.
// GetOrSeed stores the seed payload only if the key is still absent and returns whatever
// ends up stored.
type Seeder interface {
	GetOrSeed(ctx context.Context, key string, seed func(ctx context.Context) ([]byte, error)) ([]byte, error)
}

type prefixed struct {
	Backend
	prefix string
}

// Prefixed namespaces every key of b, e.g. "estate:" + "properties".
func Prefixed(b Backend, prefix string) Backend {
	if prefix == "" {
		return b
	}
	return &prefixed{Backend: b, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.Backend.Get(ctx, p.prefix+key)
}

func (p *prefixed) Put(ctx context.Context, key string, payload []byte) error {
	return p.Backend.Put(ctx, p.prefix+key, payload)
}

func (p *prefixed) GetOrSeed(ctx context.Context, key string, seed func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	s, ok := p.Backend.(Seeder)
	if !ok {
		return nil, errors.ErrUnsupported
	}
	return s.GetOrSeed(ctx, p.prefix+key, seed)
}

var storeOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "store_operations_total", Help: "Entity store operations by key"},
	[]string{"key", "op"},
)

func init() { prometheus.MustRegister(storeOps) }

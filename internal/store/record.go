package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Record is one JSON document stored under a fixed key. When the key is missing, or
// its payload no longer decodes, the seed value is persisted and returned instead.
//
// Dates travel as RFC 3339 strings and come back as time.Time; optional dates are
// pointers so an absent field decodes to nil.
type Record[V any] struct {
	backend Backend
	key     string
	seed    func() V
	log     *zap.Logger
}

// NewRecord binds key on backend. seed may be nil, in which case the zero value seeds.
func NewRecord[V any](backend Backend, key string, seed func() V, log *zap.Logger) *Record[V] {
	if log == nil {
		log = zap.NewNop()
	}
	if seed == nil {
		seed = func() V {
			var zero V
			return zero
		}
	}
	return &Record[V]{backend: backend, key: key, seed: seed, log: log}
}

func (r *Record[V]) Key() string { return r.key }

func (r *Record[V]) Load(ctx context.Context) (V, error) {
	var v V
	b, err := r.backend.Get(ctx, r.key)
	switch {
	case errors.Is(err, ErrNotFound):
		return r.seedAndSave(ctx)
	case err != nil:
		return v, fmt.Errorf("load %s: %w", r.key, err)
	}
	storeOps.WithLabelValues(r.key, "load").Inc()
	if err := json.Unmarshal(b, &v); err != nil {
		r.log.Warn("store payload corrupted, reseeding",
			zap.String("key", r.key), zap.Int("bytes", len(b)), zap.Error(err))
		storeOps.WithLabelValues(r.key, "recover").Inc()
		v = r.seed()
		if err := r.Save(ctx, v); err != nil {
			return v, err
		}
		return v, nil
	}
	return v, nil
}

// Save overwrites the stored document with v.
func (r *Record[V]) Save(ctx context.Context, v V) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	if err := r.backend.Put(ctx, r.key, b); err != nil {
		return fmt.Errorf("save %s: %w", r.key, err)
	}
	storeOps.WithLabelValues(r.key, "save").Inc()
	return nil
}

func (r *Record[V]) seedAndSave(ctx context.Context) (V, error) {
	storeOps.WithLabelValues(r.key, "seed").Inc()
	if s, ok := r.backend.(Seeder); ok {
		b, err := s.GetOrSeed(ctx, r.key, func(context.Context) ([]byte, error) {
			return json.Marshal(r.seed())
		})
		if err == nil {
			var v V
			if err := json.Unmarshal(b, &v); err != nil {
				return v, fmt.Errorf("decode seeded %s: %w", r.key, err)
			}
			r.log.Info("store seeded", zap.String("key", r.key))
			return v, nil
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			var zero V
			return zero, fmt.Errorf("seed %s: %w", r.key, err)
		}
	}
	v := r.seed()
	if err := r.Save(ctx, v); err != nil {
		return v, err
	}
	r.log.Info("store seeded", zap.String("key", r.key))
	return v, nil
}

// Collection is a Record holding a list of entities.
type Collection[T any] struct {
	*Record[[]T]
}

func NewCollection[T any](backend Backend, key string, seed func() []T, log *zap.Logger) *Collection[T] {
	return &Collection[T]{Record: NewRecord(backend, key, seed, log)}
}

// Load never returns a nil slice on success.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	items, err := c.Record.Load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

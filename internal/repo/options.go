package repo

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"estate-admin/internal/domain"
)

type Option func(*options)

type options struct {
	now    func() time.Time
	log    *zap.Logger
	noSeed bool
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, log: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

func WithLogger(l *zap.Logger) Option { return func(o *options) { o.log = l } }

// WithoutSeed starts an empty store with empty collections instead of the showcase data.
func WithoutSeed() Option { return func(o *options) { o.noSeed = true } }

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	return nil
}

// nextStamp returns now, or a millisecond past prev when the clock has not moved on,
// so mutation timestamps on one record strictly increase.
func nextStamp(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Millisecond)
}

func indexOf[T any](items []T, match func(*T) bool) int {
	for i := range items {
		if match(&items[i]) {
			return i
		}
	}
	return -1
}

func filter[T any](items []T, keep func(*T) bool) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if keep(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

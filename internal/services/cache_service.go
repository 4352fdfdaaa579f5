package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rates-bot/internal/metrics"

	"github.com/sirupsen/logrus"
)

// Publisher receives every value fetched from the origin. The kafka producer
// implements it.
type Publisher interface {
	PublishObjectAsync(key []byte, obj interface{})
}

// KeyFunc derives the cache key of one call.
type KeyFunc[A any] func(method string, args A) (string, error)

// ArgsKey encodes args as JSON after the method name. Struct fields keep
// their declaration order and nil pointers become null, so calls that differ
// only in an optional argument get different keys.
func ArgsKey[A any](method string, args A) (string, error) {
	data, err := json.Marshal(args)
	if err != nil {
		return "", err
	}
	return method + ":" + string(data), nil
}

type CacheOptions struct {
	TTL       time.Duration
	Prefix    string
	Publisher Publisher
	Metrics   *metrics.BotMetrics
	Logger    *logrus.Logger
}

// CacheService is a read-through cache in front of a Fetcher. There is no
// single-flight: concurrent misses on one key all reach the origin. With a
// zero TTL every call goes to the origin.
type CacheService[A, T any] struct {
	store     Store
	fetcher   Fetcher[A, T]
	key       KeyFunc[A]
	ttl       time.Duration
	prefix    string
	publisher Publisher
	metrics   *metrics.BotMetrics
	log       *logrus.Entry
}

func NewCacheService[A, T any](store Store, fetcher Fetcher[A, T], key KeyFunc[A], opts CacheOptions) *CacheService[A, T] {
	if key == nil {
		key = ArgsKey[A]
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CacheService[A, T]{
		store:     store,
		fetcher:   fetcher,
		key:       key,
		ttl:       opts.TTL,
		prefix:    opts.Prefix,
		publisher: opts.Publisher,
		metrics:   opts.Metrics,
		log:       log.WithField("method", fetcher.Method()),
	}
}

// ReadThrough wraps fetcher in a CacheService and returns its Get.
func ReadThrough[A, T any](store Store, fetcher Fetcher[A, T], key KeyFunc[A], opts CacheOptions) func(context.Context, A) (*T, error) {
	return NewCacheService(store, fetcher, key, opts).Get
}

func (s *CacheService[A, T]) Get(ctx context.Context, args A) (*T, error) {
	method := s.fetcher.Method()
	if s.ttl <= 0 || s.store == nil {
		return s.fetcher.Fetch(ctx, args)
	}

	suffix, err := s.key(method, args)
	if err != nil {
		return nil, fmt.Errorf("cache key for %s: %w", method, err)
	}
	key := s.prefix + suffix

	data, found, err := s.store.Get(ctx, key)
	switch {
	case err != nil:
		s.metrics.CacheLookup(method, "error")
		s.log.WithError(err).WithField("key", key).Warn("cache read failed")
	case found:
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			s.metrics.CacheLookup(method, "hit")
			s.log.WithField("key", key).Debug("cache hit")
			return &cached, nil
		}
		s.metrics.CacheLookup(method, "error")
		s.log.WithField("key", key).Warn("cache entry is not decodable, refetching")
	default:
		s.metrics.CacheLookup(method, "miss")
		s.log.WithField("key", key).Debug("cache miss")
	}

	result, err := s.fetcher.Fetch(ctx, args)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(result); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache encode failed")
	} else if err := s.store.Set(ctx, key, encoded, s.ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}

	if s.publisher != nil {
		s.publisher.PublishObjectAsync([]byte(key), result)
	}

	return result, nil
}

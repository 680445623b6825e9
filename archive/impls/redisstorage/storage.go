package redisstorage

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/librecorder/archive"
	"github.com/sgostarter/librecorder/recorder"
)

// NewRedisStorage keeps every recorder as one field of the hash <preKey>:recorders.
func NewRedisStorage(preKey string, redisCli *redis.Client, logger l.Wrapper, options ...archive.Option) archive.Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "redisStorage"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	return &redisStorageImpl{
		logger:   logger,
		preKey:   preKey,
		redisCli: redisCli,
		options:  options,
	}
}

type redisStorageImpl struct {
	logger   l.Wrapper
	preKey   string
	redisCli *redis.Client
	options  []archive.Option
}

func (impl *redisStorageImpl) recordersKey() string {
	return impl.preKey + ":recorders"
}

func (impl *redisStorageImpl) Load(key string) (ss []recorder.Sample, err error) {
	d, err := impl.redisCli.HGet(context.Background(), impl.recordersKey(), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = commerr.ErrNotFound
		}

		return
	}

	ss, err = archive.DecodeSamples(d)
	if err != nil {
		impl.logger.WithFields(l.StringField("key", key), l.ErrorField(err)).Error("decode failed")
	}

	return
}

func (impl *redisStorageImpl) Save(key string, ss []recorder.Sample) (err error) {
	if key == "" {
		err = archive.ErrBadKey

		return
	}

	d, err := archive.EncodeSamples(ss, impl.options...)
	if err != nil {
		return
	}

	err = impl.redisCli.HSet(context.Background(), impl.recordersKey(), key, d).Err()

	return
}

func (impl *redisStorageImpl) Remove(key string) error {
	return impl.redisCli.HDel(context.Background(), impl.recordersKey(), key).Err()
}

func (impl *redisStorageImpl) Keys() ([]string, error) {
	return impl.redisCli.HKeys(context.Background(), impl.recordersKey()).Result()
}

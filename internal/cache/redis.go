package cache

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"
	"github.com/rs/zerolog/log"

	"github.com/vsbench/scanpath-eval/internal/config"
)

const redisKeyPrefix = "vsbench:multimatch:human_mean:"

// RedisStore shares a dataset's baseline between machines. The value is the
// same JSON document FileStore writes.
type RedisStore struct {
	client rueidis.Client
	key    string
}

func NewRedisStore(cfg *config.RedisEnvConfig, dataset string) (*RedisStore, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort)},
		Password:    cfg.RedisPassword,
		SelectDB:    cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}

	return NewRedisStoreWithClient(client, dataset), nil
}

func NewRedisStoreWithClient(client rueidis.Client, dataset string) *RedisStore {
	return &RedisStore{client: client, key: redisKeyPrefix + dataset}
}

func (s *RedisStore) Load(ctx context.Context) (Baseline, bool, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(s.key).Build())
	if err := resp.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			log.Debug().Str("key", s.key).Msg("baseline cache not found")
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get baseline %s: %w", s.key, err)
	}

	data, err := resp.AsBytes()
	if err != nil {
		return nil, false, err
	}

	baseline, err := decode(data)
	if err != nil {
		return nil, false, err
	}

	log.Info().Str("key", s.key).Int("images", len(baseline)).Msg("loaded baseline cache")
	return baseline, true, nil
}

func (s *RedisStore) Save(ctx context.Context, baseline Baseline) error {
	data, err := encode(baseline)
	if err != nil {
		return err
	}

	cmd := s.client.B().Set().Key(s.key).Value(rueidis.BinaryString(data)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("set baseline %s: %w", s.key, err)
	}

	log.Info().Str("key", s.key).Int("images", len(baseline)).Msg("saved baseline cache")
	return nil
}

// Delete drops the stored baseline so the next run recomputes it.
func (s *RedisStore) Delete(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.key).Build()).Error()
}

func (s *RedisStore) Close() {
	s.client.Close()
}

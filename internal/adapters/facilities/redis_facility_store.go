package facilities

import (
	"accident-alert-service/internal/adapters/seed"
	"accident-alert-service/internal/domain"
	"accident-alert-service/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "hq"

// RedisFacilityStore reads headquarters documents from Redis.
//
// Each category is one hash at "<prefix>:<category>" mapping the document id
// to its JSON body (lat, long, headquarter_name, headquarter_location_name).
// A body that cannot be decoded is returned as a facility without coordinates
// so that resolution reports it instead of silently dropping it.
type RedisFacilityStore struct {
	client *redis.Client
	prefix string
}

func NewRedisFacilityStore(client *redis.Client, prefix string) *RedisFacilityStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisFacilityStore{client: client, prefix: prefix}
}

func (s *RedisFacilityStore) key(c domain.Category) string {
	return s.prefix + ":" + string(c)
}

func (s *RedisFacilityStore) ListFacilities(
	ctx context.Context,
	category domain.Category,
) (_ []domain.Facility, err error) {
	defer obs.Time(ctx, "redis.ListFacilities."+string(category))(&err)

	if s.client == nil {
		return nil, errors.New("redis facility store: client is nil")
	}

	docs, err := s.client.HGetAll(ctx, s.key(category)).Result()
	if err != nil {
		return nil, fmt.Errorf("list facilities: hgetall %q: %w", s.key(category), err)
	}

	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	// Hash iteration order is random; sort so repeated reads agree.
	sort.Strings(ids)

	out := make([]domain.Facility, 0, len(ids))
	for _, id := range ids {
		var h seed.Headquarter
		if err := json.Unmarshal([]byte(docs[id]), &h); err != nil {
			out = append(out, domain.Facility{ID: id})
			continue
		}
		h.ID = id
		out = append(out, h.Facility())
	}

	return out, nil
}

// PutHeadquarters writes documents into their category hashes in one pipeline.
func (s *RedisFacilityStore) PutHeadquarters(ctx context.Context, hqs []seed.Headquarter) error {
	if s.client == nil {
		return errors.New("redis facility store: client is nil")
	}

	if len(hqs) == 0 {
		return nil
	}

	pipe := s.client.TxPipeline()
	for _, h := range hqs {
		c, err := domain.ParseCategory(h.Category)
		if err != nil {
			return fmt.Errorf("put headquarters id=%q: %w", h.ID, err)
		}

		body := h
		body.ID = ""
		body.Category = ""
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("put headquarters id=%q: marshal: %w", h.ID, err)
		}
		pipe.HSet(ctx, s.key(c), h.ID, b)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("put headquarters: exec pipeline: %w", err)
	}

	return nil
}

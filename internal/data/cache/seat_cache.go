package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"movie-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SeatAvailabilityCache holds the available-seat list of a showtime. Entries
// are dropped whenever a booking for the showtime is created or removed.
//
// Every invalidation bumps a per-showtime generation. Get reports the
// generation it observed and Set only stores a list read under that same
// generation, so a read that raced a booking never overwrites the invalidation.
type SeatAvailabilityCache interface {
	// Get reports ok=false on a miss. generation must be handed to Set.
	Get(ctx context.Context, showtimeID uuid.UUID) (seats []*entity.Seat, generation int64, ok bool)
	// Set stores seats unless the showtime was invalidated after Get returned generation.
	Set(ctx context.Context, showtimeID uuid.UUID, generation int64, seats []*entity.Seat)
	Invalidate(ctx context.Context, showtimeID uuid.UUID)
}

// generationTTL outlives any database read a cache miss waits on.
const generationTTL = 24 * time.Hour

// noGeneration makes the following Set a no-op.
const noGeneration int64 = -1

// NewSeatAvailabilityCache returns a Redis backed cache, or a no-op cache
// when client is nil or ttl is not positive.
func NewSeatAvailabilityCache(client *redis.Client, ttl time.Duration, log *zap.Logger) SeatAvailabilityCache {
	if client == nil || ttl <= 0 {
		return noopSeatCache{}
	}
	return &redisSeatCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "seat_availability")),
	}
}

// setIfCurrent writes the seat list only while the generation key still
// holds the generation observed before the database read.
var setIfCurrent = redis.NewScript(`
	local listKey = KEYS[1]
	local generationKey = KEYS[2]
	local current = redis.call("GET", generationKey) or "0"

	if current ~= ARGV[1] then
		return 0
	end

	redis.call("SET", listKey, ARGV[2], "PX", ARGV[3])
	return 1
`)

type redisSeatCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

type cachedSeat struct {
	ID         uuid.UUID `json:"id"`
	ShowtimeID uuid.UUID `json:"showtime_id"`
	SeatNumber string    `json:"seat_number"`
	CreatedAt  time.Time `json:"created_at"`
}

// both keys share a hash tag so the script runs on one slot
func availableSeatsKey(showtimeID uuid.UUID) string {
	return fmt.Sprintf("showtime:{%s}:available_seats", showtimeID)
}

func generationKey(showtimeID uuid.UUID) string {
	return fmt.Sprintf("showtime:{%s}:seats_generation", showtimeID)
}

// Cache failures only cost a database round trip, so they are logged and
// treated as misses. A failed read returns noGeneration so nothing is written back.
func (c *redisSeatCache) Get(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Seat, int64, bool) {
	values, err := c.client.MGet(ctx, availableSeatsKey(showtimeID), generationKey(showtimeID)).Result()
	if err != nil {
		c.log.Warn("Failed to read seat cache", zap.Error(err), zap.String("showtime_id", showtimeID.String()))
		return nil, noGeneration, false
	}

	generation := int64(0)
	if raw, ok := values[1].(string); ok {
		generation, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.log.Warn("Corrupt seat cache generation", zap.Error(err), zap.String("showtime_id", showtimeID.String()))
			return nil, noGeneration, false
		}
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, generation, false
	}

	var cached []cachedSeat
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		c.log.Warn("Discarding corrupt seat cache entry", zap.Error(err), zap.String("showtime_id", showtimeID.String()))
		c.Invalidate(ctx, showtimeID)
		return nil, noGeneration, false
	}

	seats := make([]*entity.Seat, 0, len(cached))
	for _, s := range cached {
		seat := &entity.Seat{ShowtimeID: s.ShowtimeID, SeatNumber: s.SeatNumber}
		seat.ID = s.ID
		seat.CreatedAt = s.CreatedAt
		seats = append(seats, seat)
	}
	return seats, generation, true
}

func (c *redisSeatCache) Set(ctx context.Context, showtimeID uuid.UUID, generation int64, seats []*entity.Seat) {
	if generation < 0 {
		return
	}

	cached := make([]cachedSeat, 0, len(seats))
	for _, s := range seats {
		cached = append(cached, cachedSeat{
			ID:         s.ID,
			ShowtimeID: s.ShowtimeID,
			SeatNumber: s.SeatNumber,
			CreatedAt:  s.CreatedAt,
		})
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		c.log.Warn("Failed to encode seat cache entry", zap.Error(err))
		return
	}

	keys := []string{availableSeatsKey(showtimeID), generationKey(showtimeID)}
	written, err := setIfCurrent.Run(ctx, c.client, keys, strconv.FormatInt(generation, 10), raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		c.log.Warn("Failed to write seat cache", zap.Error(err), zap.String("showtime_id", showtimeID.String()))
		return
	}
	if written == 0 {
		c.log.Debug("Skipped seat cache write after invalidation", zap.String("showtime_id", showtimeID.String()))
	}
}

func (c *redisSeatCache) Invalidate(ctx context.Context, showtimeID uuid.UUID) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(showtimeID))
		pipe.Expire(ctx, generationKey(showtimeID), generationTTL)
		pipe.Del(ctx, availableSeatsKey(showtimeID))
		return nil
	})
	if err != nil {
		c.log.Warn("Failed to invalidate seat cache", zap.Error(err), zap.String("showtime_id", showtimeID.String()))
	}
}

type noopSeatCache struct{}

func (noopSeatCache) Get(context.Context, uuid.UUID) ([]*entity.Seat, int64, bool) {
	return nil, noGeneration, false
}
func (noopSeatCache) Set(context.Context, uuid.UUID, int64, []*entity.Seat) {}
func (noopSeatCache) Invalidate(context.Context, uuid.UUID)                 {}

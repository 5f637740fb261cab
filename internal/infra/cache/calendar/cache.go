package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const keyPrefix = "calendar"

// Key идентифицирует закэшированный месяц.
// Today входит в ключ: с наступлением нового дня прошедшие даты становятся closed.
type Key struct {
	ProviderID string
	Month      string // YYYY-MM
	Today      string // YYYY-MM-DD
}

type cachedDay struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// Cache кэш классификации дней в Redis.
// Инвалидация по провайдеру: инкремент версии делает все старые ключи недостижимыми,
// они удаляются по TTL.
type Cache struct {
	client   *redis.Client
	ttl      time.Duration
	location *time.Location
}

// New создает кэш календаря
func New(client *redis.Client, ttl time.Duration, location *time.Location) *Cache {
	if location == nil {
		location = time.UTC
	}
	return &Cache{client: client, ttl: ttl, location: location}
}

// Get возвращает закэшированный месяц. Второй результат false, если значения нет.
func (c *Cache) Get(ctx context.Context, key Key) ([]domain.DayAvailability, bool, error) {
	version, err := c.version(ctx, key.ProviderID)
	if err != nil {
		return nil, false, err
	}

	data, err := c.client.Get(ctx, dataKey(key, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get: %v", ErrCacheUnavailable, err)
	}

	days, err := decode(data, c.location)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return days, true, nil
}

// Set сохраняет месяц в кэш
func (c *Cache) Set(ctx context.Context, key Key, days []domain.DayAvailability) error {
	version, err := c.version(ctx, key.ProviderID)
	if err != nil {
		return err
	}

	data, err := encode(days)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if err := c.client.Set(ctx, dataKey(key, version), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCacheUnavailable, err)
	}

	return nil
}

// Invalidate сбрасывает кэш провайдера
func (c *Cache) Invalidate(ctx context.Context, providerID string) error {
	if err := c.client.Incr(ctx, versionKey(providerID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCacheUnavailable, err)
	}
	return nil
}

func (c *Cache) version(ctx context.Context, providerID string) (int64, error) {
	version, err := c.client.Get(ctx, versionKey(providerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: version: %v", ErrCacheUnavailable, err)
	}
	return version, nil
}

func versionKey(providerID string) string {
	return fmt.Sprintf("%s:%s:version", keyPrefix, providerID)
}

func dataKey(key Key, version int64) string {
	return fmt.Sprintf("%s:%s:v%d:%s:%s", keyPrefix, key.ProviderID, version, key.Month, key.Today)
}

func encode(days []domain.DayAvailability) ([]byte, error) {
	cached := make([]cachedDay, len(days))
	for i, day := range days {
		cached[i] = cachedDay{
			Date:   day.Date.Format(domain.DateFormat),
			Status: string(day.Status),
		}
	}
	return json.Marshal(cached)
}

func decode(data []byte, location *time.Location) ([]domain.DayAvailability, error) {
	var cached []cachedDay
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	days := make([]domain.DayAvailability, len(cached))
	for i, day := range cached {
		date, err := time.ParseInLocation(domain.DateFormat, day.Date, location)
		if err != nil {
			return nil, err
		}
		days[i] = domain.DayAvailability{Date: date, Status: domain.DayStatus(day.Status)}
	}
	return days, nil
}

// NopCache кэш-заглушка, когда Redis отключён
type NopCache struct{}

// Get всегда возвращает промах
func (NopCache) Get(context.Context, Key) ([]domain.DayAvailability, bool, error) {
	return nil, false, nil
}

// Set ничего не делает
func (NopCache) Set(context.Context, Key, []domain.DayAvailability) error {
	return nil
}

// Invalidate ничего не делает
func (NopCache) Invalidate(context.Context, string) error {
	return nil
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"trafficsim/pkg/domain"
)

// SimulationCache специализированный кэш для результатов симуляции.
// Симуляция детерминирована, поэтому кэширование по хешу коридора корректно.
type SimulationCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedSimulationResult кэшированный результат симуляции
type CachedSimulationResult struct {
	GreenTimes          []float64           `json:"green_times"`
	OptimizedGreenTimes []float64           `json:"optimized_green_times"`
	Flow                []float64           `json:"flow"`
	BadScenarios        []CachedBadScenario `json:"bad_scenarios,omitempty"`
	Rating              float64             `json:"rating"`
	Warnings            []string            `json:"warnings,omitempty"`
	ComputedAt          time.Time           `json:"computed_at"`
}

// CachedBadScenario кэшированный проблемный сигнал
type CachedBadScenario struct {
	Signal int     `json:"signal"`
	Reason string  `json:"reason"`
	Score  float64 `json:"score"`
}

// NewSimulationCache создаёт кэш для результатов симуляции
func NewSimulationCache(cache Cache, defaultTTL time.Duration) *SimulationCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &SimulationCache{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get получает кэшированный результат для коридора
func (sc *SimulationCache) Get(ctx context.Context, set domain.SignalSet, disruptions domain.Disruptions) (*CachedSimulationResult, bool, error) {
	key := BuildSimulationKey(CorridorHash(set, disruptions))

	data, err := sc.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var result CachedSimulationResult
	if err := json.Unmarshal(data, &result); err != nil {
		// Повреждённый кэш — удаляем, ошибку удаления игнорируем намеренно
		_ = sc.cache.Delete(ctx, key) //nolint:errcheck // best effort cleanup
		return nil, false, nil
	}

	return &result, true, nil
}

// Set сохраняет результат симуляции в кэш
func (sc *SimulationCache) Set(ctx context.Context, set domain.SignalSet, disruptions domain.Disruptions, result *domain.Result, warnings []string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = sc.defaultTTL
	}

	key := BuildSimulationKey(CorridorHash(set, disruptions))

	cached := &CachedSimulationResult{
		GreenTimes:          result.GreenTimes,
		OptimizedGreenTimes: result.OptimizedGreenTimes,
		Flow:                result.Flow,
		Rating:              result.Rating,
		Warnings:            warnings,
		ComputedAt:          time.Now(),
	}

	for _, b := range result.BadScenarios {
		cached.BadScenarios = append(cached.BadScenarios, CachedBadScenario{
			Signal: b.Signal,
			Reason: b.Reason.String(),
			Score:  b.Score,
		})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}

	return sc.cache.Set(ctx, key, data, ttl)
}

// Invalidate удаляет кэш для конкретного коридора
func (sc *SimulationCache) Invalidate(ctx context.Context, set domain.SignalSet, disruptions domain.Disruptions) error {
	key := BuildSimulationKey(CorridorHash(set, disruptions))
	return sc.cache.Delete(ctx, key)
}

// InvalidateAll удаляет весь кэш результатов симуляции
func (sc *SimulationCache) InvalidateAll(ctx context.Context) (int64, error) {
	return sc.cache.DeleteByPattern(ctx, "sim:*")
}

// services/simulator-svc/internal/service/simulate.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"trafficsim/pkg/cache"
	"trafficsim/pkg/domain"
	"trafficsim/pkg/logger"
	"trafficsim/pkg/metrics"
	"trafficsim/pkg/simulatorv1"
	"trafficsim/pkg/telemetry"
	"trafficsim/services/simulator-svc/internal/repository"
	"trafficsim/services/simulator-svc/internal/validators"
)

// CalculateGreenTimes рассчитывает зелёные времена для коридора без
// прохода симуляции
func (s *SimulatorService) CalculateGreenTimes(
	ctx context.Context,
	req *connect.Request[simulatorv1.CalculateGreenTimesRequest],
) (*connect.Response[simulatorv1.CalculateGreenTimesResponse], error) {
	ctx, span := telemetry.StartSpan(ctx, "SimulatorService.CalculateGreenTimes")
	defer span.End()

	corridor := req.Msg.Corridor
	if errs := validators.ValidateCorridor(corridorInput(corridor), s.cfg.Simulator.MaxSignals); len(errs) > 0 {
		return nil, validationError(errs)
	}

	set, _ := corridorToDomain(corridor)
	telemetry.SetAttributes(ctx, telemetry.CorridorAttributes(
		set.Len(), len(corridor.Emergencies), len(corridor.Accidents))...)

	var warnings []string
	warn := func(msg string, args ...any) {
		logger.Log.Warn(msg, args...)
		warnings = append(warnings, formatWarning(msg, args...))
	}

	greenTimes := domain.CalculateGreenTimes(set, warn)

	return connect.NewResponse(&simulatorv1.CalculateGreenTimesResponse{
		GreenTimes: greenTimes,
		Warnings:   warnings,
	}), nil
}

// Simulate выполняет полный проход: расчёт зелёных времён (если не заданы),
// оптимизация, классификация сигналов, агрегатный рейтинг. Результаты
// детерминированных проходов кэшируются, при включённой истории запуск
// сохраняется в БД.
func (s *SimulatorService) Simulate(
	ctx context.Context,
	req *connect.Request[simulatorv1.SimulateRequest],
) (*connect.Response[simulatorv1.SimulateResponse], error) {
	ctx, span := telemetry.StartSpan(ctx, "SimulatorService.Simulate")
	defer span.End()

	start := time.Now()

	corridor := req.Msg.Corridor
	if errs := validators.ValidateCorridor(corridorInput(corridor), s.cfg.Simulator.MaxSignals); len(errs) > 0 {
		return nil, validationError(errs)
	}

	set, disruptions := corridorToDomain(corridor)
	telemetry.SetAttributes(ctx, telemetry.CorridorAttributes(
		set.Len(), len(corridor.Emergencies), len(corridor.Accidents))...)

	// Кэш применим только когда зелёные времена выводятся из коридора:
	// внешние зелёные времена не участвуют в ключе.
	useCache := s.simCache != nil && !req.Msg.NoCache && len(req.Msg.GreenTimes) == 0

	if useCache {
		if cached, ok, err := s.simCache.Get(ctx, set, disruptions); err != nil {
			logger.Log.Warn("Cache lookup failed", "error", err)
		} else if ok {
			telemetry.AddEvent(ctx, "cache_hit")
			return connect.NewResponse(s.fromCached(cached, start)), nil
		}
	}

	var warnings []string
	warn := func(msg string, args ...any) {
		logger.Log.Warn(msg, args...)
		warnings = append(warnings, formatWarning(msg, args...))
	}

	greenTimes := req.Msg.GreenTimes
	if len(greenTimes) == 0 {
		greenTimes = domain.CalculateGreenTimes(set, warn)
	} else if errs := validators.ValidateGreenTimes(greenTimes, set.Len()); len(errs) > 0 {
		return nil, validationError(errs)
	}

	result := domain.NewSimulation(set, greenTimes, disruptions, warn).Run()

	elapsed := time.Since(start)
	m := metrics.Get()
	m.RecordSimulation(set.Len(), result.Rating, elapsed)
	for _, b := range result.BadScenarios {
		m.RecordBadScenario(b.Reason.String())
	}

	telemetry.AddEvent(ctx, "simulation_completed",
		telemetry.SimulationAttributes(result.Rating, len(result.BadScenarios), len(warnings))...)

	resp := &simulatorv1.SimulateResponse{
		GreenTimes:          greenTimes,
		OptimizedGreenTimes: result.OptimizedGreenTimes,
		Flow:                result.Flow,
		BadScenarios:        toBadScenarios(result.BadScenarios),
		Rating:              result.Rating,
		RatingDisplay:       fmt.Sprintf("%.2f", result.Rating),
		Warnings:            warnings,
		ComputationTimeMs:   float64(elapsed.Milliseconds()),
	}

	resp.RunID = s.persistRun(ctx, req.Msg, resp)

	if useCache {
		if err := s.simCache.Set(ctx, set, disruptions, result, warnings, 0); err != nil {
			logger.Log.Warn("Cache store failed", "error", err)
		}
	}

	return connect.NewResponse(resp), nil
}

// GetStatistics возвращает агрегаты по коридору и по результату симуляции
func (s *SimulatorService) GetStatistics(
	ctx context.Context,
	req *connect.Request[simulatorv1.GetStatisticsRequest],
) (*connect.Response[simulatorv1.GetStatisticsResponse], error) {
	ctx, span := telemetry.StartSpan(ctx, "SimulatorService.GetStatistics")
	defer span.End()

	corridor := req.Msg.Corridor
	if errs := validators.ValidateCorridor(corridorInput(corridor), s.cfg.Simulator.MaxSignals); len(errs) > 0 {
		return nil, validationError(errs)
	}

	set, disruptions := corridorToDomain(corridor)

	greenTimes := req.Msg.GreenTimes
	if len(greenTimes) == 0 {
		greenTimes = domain.CalculateGreenTimes(set, nil)
	} else if errs := validators.ValidateGreenTimes(greenTimes, set.Len()); len(errs) > 0 {
		return nil, validationError(errs)
	}

	result := domain.NewSimulation(set, greenTimes, disruptions, nil).Run()

	corridorStats := domain.CalculateCorridorStatistics(set, result.OptimizedGreenTimes)
	flowStats := domain.CalculateFlowStatistics(result)

	return connect.NewResponse(&simulatorv1.GetStatisticsResponse{
		Corridor: &simulatorv1.CorridorStats{
			SignalCount:    corridorStats.SignalCount,
			TotalDistance:  corridorStats.TotalDistance,
			TotalGreenTime: corridorStats.TotalGreenTime,
			AverageSpeed:   corridorStats.AverageSpeed,
			TotalVolume:    corridorStats.TotalVolume,
		},
		Flow: &simulatorv1.FlowStats{
			Rating:        flowStats.Rating,
			MinScore:      flowStats.MinScore,
			MaxScore:      flowStats.MaxScore,
			SmoothSignals: flowStats.SmoothSignals,
			BadSignals:    flowStats.BadSignals,
			ByReason:      flowStats.ByReason,
		},
	}), nil
}

// fromCached собирает ответ симуляции из кэшированного результата
func (s *SimulatorService) fromCached(cached *cache.CachedSimulationResult, start time.Time) *simulatorv1.SimulateResponse {
	resp := &simulatorv1.SimulateResponse{
		GreenTimes:          cached.GreenTimes,
		OptimizedGreenTimes: cached.OptimizedGreenTimes,
		Flow:                cached.Flow,
		Rating:              cached.Rating,
		RatingDisplay:       fmt.Sprintf("%.2f", cached.Rating),
		Warnings:            cached.Warnings,
		Cached:              true,
		ComputationTimeMs:   float64(time.Since(start).Milliseconds()),
	}
	for _, b := range cached.BadScenarios {
		resp.BadScenarios = append(resp.BadScenarios, simulatorv1.BadScenarioInfo{
			Signal: b.Signal,
			Reason: b.Reason,
			Label:  labelFromReason(b.Reason, b.Score),
			Score:  b.Score,
		})
	}
	return resp
}

// persistRun сохраняет запуск в историю. Ошибка сохранения не фатальна для
// самой симуляции: логируется и запуск остаётся без идентификатора.
func (s *SimulatorService) persistRun(ctx context.Context, req *simulatorv1.SimulateRequest, resp *simulatorv1.SimulateResponse) string {
	if s.repo == nil || !s.cfg.Simulator.PersistRuns {
		return ""
	}

	requestData, err := json.Marshal(req.Corridor)
	if err != nil {
		logger.Log.Warn("Failed to marshal run request", "error", err)
		return ""
	}

	payload := &runPayload{
		GreenTimes:          resp.GreenTimes,
		OptimizedGreenTimes: resp.OptimizedGreenTimes,
		Flow:                resp.Flow,
		BadScenarios:        resp.BadScenarios,
		Rating:              resp.Rating,
		Warnings:            resp.Warnings,
	}
	responseData, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Warn("Failed to marshal run response", "error", err)
		return ""
	}

	run := &repository.Run{
		ID:                uuid.New().String(),
		Name:              req.Name,
		SignalCount:       len(req.Corridor.Distances),
		Rating:            resp.Rating,
		BadScenarioCount:  len(resp.BadScenarios),
		WarningCount:      len(resp.Warnings),
		ComputationTimeMs: resp.ComputationTimeMs,
		RequestData:       requestData,
		ResponseData:      responseData,
	}

	if err := s.repo.Create(ctx, run); err != nil {
		telemetry.SetError(ctx, err)
		logger.Log.Error("Failed to persist run", "error", err)
		return ""
	}

	return run.ID
}

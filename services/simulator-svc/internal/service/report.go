// services/simulator-svc/internal/service/report.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"connectrpc.com/connect"

	pkgerrors "trafficsim/pkg/apperror"
	"trafficsim/pkg/domain"
	"trafficsim/pkg/simulatorv1"
	"trafficsim/pkg/telemetry"
	"trafficsim/services/simulator-svc/internal/generator"
	"trafficsim/services/simulator-svc/internal/repository"
	"trafficsim/services/simulator-svc/internal/validators"
)

// GenerateReport генерирует отчёт по сохранённому запуску (run_id) или по
// коридору, переданному в запросе. Во втором случае симуляция выполняется
// на месте.
func (s *SimulatorService) GenerateReport(
	ctx context.Context,
	req *connect.Request[simulatorv1.GenerateReportRequest],
) (*connect.Response[simulatorv1.GenerateReportResponse], error) {
	ctx, span := telemetry.StartSpan(ctx, "SimulatorService.GenerateReport")
	defer span.End()

	format, err := generator.ParseFormat(req.Msg.Format)
	if err != nil {
		return nil, pkgerrors.ToConnect(err)
	}

	var (
		corridor *simulatorv1.Corridor
		payload  *runPayload
		runID    string
		name     string
	)

	switch {
	case req.Msg.RunID != "":
		corridor, payload, name, err = s.loadRunForReport(ctx, req.Msg.RunID)
		if err != nil {
			return nil, pkgerrors.ToConnect(err)
		}
		runID = req.Msg.RunID

	case req.Msg.Corridor != nil:
		corridor = req.Msg.Corridor
		if errs := validators.ValidateCorridor(corridorInput(corridor), s.cfg.Simulator.MaxSignals); len(errs) > 0 {
			return nil, validationError(errs)
		}
		payload = s.simulateForReport(corridor)

	default:
		return nil, pkgerrors.ToConnect(
			pkgerrors.New(pkgerrors.CodeInvalidArgument, "either run_id or corridor is required"),
		)
	}

	data := s.buildReportData(corridor, payload, runID, req.Msg.Title, req.Msg.Author)
	if name != "" && data.Title == "" {
		data.Title = name
	}

	gen, err := generator.New(format)
	if err != nil {
		return nil, pkgerrors.ToConnect(err)
	}

	content, err := gen.Generate(ctx, data)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.ToConnect(
			pkgerrors.Wrap(err, pkgerrors.CodeReportFailed, "failed to generate report"),
		)
	}

	telemetry.AddEvent(ctx, "report_generated",
		telemetry.ReportAttributes(string(format), len(content))...)

	return connect.NewResponse(&simulatorv1.GenerateReportResponse{
		Format:    string(format),
		Filename:  reportFilename(runID, format),
		Content:   content,
		SizeBytes: len(content),
	}), nil
}

// loadRunForReport загружает сохранённый запуск и декодирует его блобы
func (s *SimulatorService) loadRunForReport(ctx context.Context, runID string) (*simulatorv1.Corridor, *runPayload, string, error) {
	if s.repo == nil {
		return nil, nil, "", pkgerrors.New(pkgerrors.CodeUnavailable, "run history is not enabled")
	}

	run, err := s.repo.GetByID(ctx, runID)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			return nil, nil, "", pkgerrors.New(pkgerrors.CodeNotFound, "run not found")
		}
		return nil, nil, "", pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to get run")
	}

	var corridor simulatorv1.Corridor
	if err := json.Unmarshal(run.RequestData, &corridor); err != nil {
		return nil, nil, "", pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to decode stored run")
	}
	var payload runPayload
	if err := json.Unmarshal(run.ResponseData, &payload); err != nil {
		return nil, nil, "", pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to decode stored run")
	}

	return &corridor, &payload, run.Name, nil
}

// simulateForReport выполняет проход симуляции для inline коридора
func (s *SimulatorService) simulateForReport(corridor *simulatorv1.Corridor) *runPayload {
	set, disruptions := corridorToDomain(corridor)

	var warnings []string
	warn := func(msg string, args ...any) {
		warnings = append(warnings, formatWarning(msg, args...))
	}

	greenTimes := domain.CalculateGreenTimes(set, warn)
	result := domain.NewSimulation(set, greenTimes, disruptions, warn).Run()

	return &runPayload{
		GreenTimes:          greenTimes,
		OptimizedGreenTimes: result.OptimizedGreenTimes,
		Flow:                result.Flow,
		BadScenarios:        toBadScenarios(result.BadScenarios),
		Rating:              result.Rating,
		Warnings:            warnings,
	}
}

// buildReportData собирает данные отчёта из коридора и результата симуляции
func (s *SimulatorService) buildReportData(corridor *simulatorv1.Corridor, payload *runPayload, runID, title, author string) *generator.ReportData {
	scenarioBySignal := make(map[int]simulatorv1.BadScenarioInfo, len(payload.BadScenarios))
	for _, b := range payload.BadScenarios {
		scenarioBySignal[b.Signal] = b
	}

	signals := make([]generator.SignalRow, 0, len(corridor.Distances))
	for i := range corridor.Distances {
		row := generator.SignalRow{
			Index:    i,
			Distance: corridor.Distances[i],
			Speed:    corridor.Speeds[i],
			Volume:   corridor.Volumes[i],
		}
		if i < len(payload.OptimizedGreenTimes) {
			row.GreenTime = payload.OptimizedGreenTimes[i]
		}
		if i < len(payload.Flow) {
			row.Score = payload.Flow[i]
		}
		if b, ok := scenarioBySignal[i]; ok {
			row.Scenario = b.Label
		}
		signals = append(signals, row)
	}

	scenarios := make([]generator.ScenarioRow, 0, len(payload.BadScenarios))
	byReason := make(map[string]int)
	for _, b := range payload.BadScenarios {
		scenarios = append(scenarios, generator.ScenarioRow{
			Signal: b.Signal,
			Label:  b.Label,
			Score:  b.Score,
		})
		byReason[b.Reason]++
	}

	set, _ := corridorToDomain(corridor)
	corridorStats := domain.CalculateCorridorStatistics(set, payload.OptimizedGreenTimes)

	data := &generator.ReportData{
		Title:       title,
		Author:      author,
		CompanyName: s.cfg.Simulator.CompanyName,
		GeneratedAt: time.Now(),
		RunID:       runID,
		Signals:     signals,
		Rating:      payload.Rating,
		Warnings:    payload.Warnings,
		MaxRows:     s.cfg.Simulator.ReportMaxRows,
		CorridorStats: &generator.CorridorStatsData{
			SignalCount:    corridorStats.SignalCount,
			TotalDistance:  corridorStats.TotalDistance,
			TotalGreenTime: corridorStats.TotalGreenTime,
			AverageSpeed:   corridorStats.AverageSpeed,
			TotalVolume:    corridorStats.TotalVolume,
		},
	}
	if len(scenarios) > 0 {
		data.BadScenarios = scenarios
	}

	if len(payload.Flow) > 0 {
		flowStats := &generator.FlowStatsData{
			MinScore:   payload.Flow[0],
			MaxScore:   payload.Flow[0],
			BadSignals: len(payload.BadScenarios),
			ByReason:   byReason,
		}
		for _, score := range payload.Flow {
			if score < flowStats.MinScore {
				flowStats.MinScore = score
			}
			if score > flowStats.MaxScore {
				flowStats.MaxScore = score
			}
			if score == domain.ScoreSmooth {
				flowStats.SmoothSignals++
			}
		}
		data.FlowStats = flowStats
	}

	return data
}

// reportFilename строит имя файла отчёта
func reportFilename(runID string, format generator.Format) string {
	stamp := time.Now().Format("20060102_150405")
	if len(runID) >= 8 {
		return fmt.Sprintf("traffic_report_%s_%s.%s", runID[:8], stamp, format.Extension())
	}
	return fmt.Sprintf("traffic_report_%s.%s", stamp, format.Extension())
}

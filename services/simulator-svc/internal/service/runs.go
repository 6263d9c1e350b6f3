// services/simulator-svc/internal/service/runs.go
package service

import (
	"context"
	"encoding/json"
	"errors"

	"connectrpc.com/connect"

	pkgerrors "trafficsim/pkg/apperror"
	"trafficsim/pkg/simulatorv1"
	"trafficsim/pkg/telemetry"
	"trafficsim/services/simulator-svc/internal/repository"
	"trafficsim/services/simulator-svc/internal/validators"
)

// runPayload — формат JSON ответа симуляции, сохраняемого в историю
type runPayload struct {
	GreenTimes          []float64                     `json:"green_times"`
	OptimizedGreenTimes []float64                     `json:"optimized_green_times"`
	Flow                []float64                     `json:"flow"`
	BadScenarios        []simulatorv1.BadScenarioInfo `json:"bad_scenarios,omitempty"`
	Rating              float64                       `json:"rating"`
	Warnings            []string                      `json:"warnings,omitempty"`
}

// GetRun возвращает сохранённый запуск симуляции
func (s *SimulatorService) GetRun(
	ctx context.Context,
	req *connect.Request[simulatorv1.GetRunRequest],
) (*connect.Response[simulatorv1.GetRunResponse], error) {
	ctx, span := telemetry.StartSpan(ctx, "SimulatorService.GetRun")
	defer span.End()

	if s.repo == nil {
		return nil, pkgerrors.ToConnect(
			pkgerrors.New(pkgerrors.CodeUnavailable, "run history is not enabled"),
		)
	}
	if req.Msg.RunID == "" {
		return nil, pkgerrors.ToConnect(
			pkgerrors.NewWithField(pkgerrors.CodeInvalidArgument, "run_id is required", "run_id"),
		)
	}

	run, err := s.repo.GetByID(ctx, req.Msg.RunID)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			return nil, pkgerrors.ToConnect(
				pkgerrors.New(pkgerrors.CodeNotFound, "run not found"),
			)
		}
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.ToConnect(
			pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to get run"),
		)
	}

	wireRun, err := toWireRun(run)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.ToConnect(
			pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to decode stored run"),
		)
	}

	return connect.NewResponse(&simulatorv1.GetRunResponse{Run: wireRun}), nil
}

// ListRuns возвращает страницу истории запусков
func (s *SimulatorService) ListRuns(
	ctx context.Context,
	req *connect.Request[simulatorv1.ListRunsRequest],
) (*connect.Response[simulatorv1.ListRunsResponse], error) {
	ctx, span := telemetry.StartSpan(ctx, "SimulatorService.ListRuns")
	defer span.End()

	if s.repo == nil {
		return nil, pkgerrors.ToConnect(
			pkgerrors.New(pkgerrors.CodeUnavailable, "run history is not enabled"),
		)
	}
	if errs := validators.ValidatePagination(req.Msg.Limit, req.Msg.Offset); len(errs) > 0 {
		return nil, validationError(errs)
	}

	sort, err := parseSortOrder(req.Msg.Sort)
	if err != nil {
		return nil, pkgerrors.ToConnect(err)
	}

	opts := &repository.ListOptions{
		Limit:  req.Msg.Limit,
		Offset: req.Msg.Offset,
		Sort:   sort,
	}
	if req.Msg.MinRating != nil || req.Msg.MaxRating != nil {
		opts.Filter = &repository.ListFilter{
			MinRating: req.Msg.MinRating,
			MaxRating: req.Msg.MaxRating,
		}
	}

	runs, total, err := s.repo.List(ctx, opts)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.ToConnect(
			pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to list runs"),
		)
	}

	summaries := make([]*simulatorv1.RunSummary, 0, len(runs))
	for _, r := range runs {
		summaries = append(summaries, &simulatorv1.RunSummary{
			ID:               r.ID,
			Name:             r.Name,
			SignalCount:      r.SignalCount,
			Rating:           r.Rating,
			BadScenarioCount: r.BadScenarioCount,
			CreatedAt:        r.CreatedAt,
		})
	}

	return connect.NewResponse(&simulatorv1.ListRunsResponse{
		Runs:  summaries,
		Total: total,
	}), nil
}

// toWireRun восстанавливает wire-представление запуска из сохранённых JSON блобов
func toWireRun(run *repository.Run) (*simulatorv1.Run, error) {
	var corridor simulatorv1.Corridor
	if len(run.RequestData) > 0 {
		if err := json.Unmarshal(run.RequestData, &corridor); err != nil {
			return nil, err
		}
	}

	var payload runPayload
	if len(run.ResponseData) > 0 {
		if err := json.Unmarshal(run.ResponseData, &payload); err != nil {
			return nil, err
		}
	}

	return &simulatorv1.Run{
		ID:                  run.ID,
		Name:                run.Name,
		Corridor:            &corridor,
		GreenTimes:          payload.GreenTimes,
		OptimizedGreenTimes: payload.OptimizedGreenTimes,
		Flow:                payload.Flow,
		BadScenarios:        payload.BadScenarios,
		Rating:              run.Rating,
		Warnings:            payload.Warnings,
		ComputationTimeMs:   run.ComputationTimeMs,
		CreatedAt:           run.CreatedAt,
	}, nil
}

// parseSortOrder проверяет и конвертирует порядок сортировки из запроса
func parseSortOrder(s string) (repository.SortOrder, error) {
	switch repository.SortOrder(s) {
	case "":
		return repository.SortByCreatedDesc, nil
	case repository.SortByCreatedDesc, repository.SortByCreatedAsc,
		repository.SortByRatingDesc, repository.SortByRatingAsc:
		return repository.SortOrder(s), nil
	default:
		return "", pkgerrors.NewWithField(pkgerrors.CodeInvalidArgument,
			"unknown sort order: "+s, "sort")
	}
}

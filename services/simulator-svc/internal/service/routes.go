// services/simulator-svc/internal/service/routes.go
package service

import (
	"net/http"

	"connectrpc.com/connect"

	"trafficsim/pkg/rpc"
	"trafficsim/pkg/simulatorv1"
)

// RegisterRoutes монтирует все процедуры сервиса на mux. Interceptors
// применяются ко всем процедурам в порядке передачи.
func (s *SimulatorService) RegisterRoutes(mux *http.ServeMux, interceptors ...connect.Interceptor) {
	opts := rpc.HandlerOptions(interceptors...)

	mux.Handle(simulatorv1.ProcedureCalculateGreenTimes, connect.NewUnaryHandler(
		simulatorv1.ProcedureCalculateGreenTimes, s.CalculateGreenTimes, opts...))
	mux.Handle(simulatorv1.ProcedureSimulate, connect.NewUnaryHandler(
		simulatorv1.ProcedureSimulate, s.Simulate, opts...))
	mux.Handle(simulatorv1.ProcedureGetStatistics, connect.NewUnaryHandler(
		simulatorv1.ProcedureGetStatistics, s.GetStatistics, opts...))
	mux.Handle(simulatorv1.ProcedureGetRun, connect.NewUnaryHandler(
		simulatorv1.ProcedureGetRun, s.GetRun, opts...))
	mux.Handle(simulatorv1.ProcedureListRuns, connect.NewUnaryHandler(
		simulatorv1.ProcedureListRuns, s.ListRuns, opts...))
	mux.Handle(simulatorv1.ProcedureGenerateReport, connect.NewUnaryHandler(
		simulatorv1.ProcedureGenerateReport, s.GenerateReport, opts...))
}

// PublicProcedures возвращает процедуры, доступные без аутентификации.
// Расчётные endpoint'ы открыты, история и отчёты требуют токен.
func PublicProcedures() map[string]bool {
	return map[string]bool{
		simulatorv1.ProcedureCalculateGreenTimes: true,
		simulatorv1.ProcedureSimulate:            true,
		simulatorv1.ProcedureGetStatistics:       true,
	}
}

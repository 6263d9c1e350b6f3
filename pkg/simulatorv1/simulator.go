// Package simulatorv1 определяет wire-типы ConnectRPC API симулятора
// (JSON codec поверх pkg/rpc). Используется и сервисом, и клиентами.
package simulatorv1

import "time"

// Процедуры сервиса в терминах Connect протокола
const (
	ProcedureCalculateGreenTimes = "/trafficsim.v1.SimulatorService/CalculateGreenTimes"
	ProcedureSimulate            = "/trafficsim.v1.SimulatorService/Simulate"
	ProcedureGetStatistics       = "/trafficsim.v1.SimulatorService/GetStatistics"
	ProcedureGetRun              = "/trafficsim.v1.SimulatorService/GetRun"
	ProcedureListRuns            = "/trafficsim.v1.SimulatorService/ListRuns"
	ProcedureGenerateReport      = "/trafficsim.v1.SimulatorService/GenerateReport"
)

// Corridor — входное описание коридора сигналов
type Corridor struct {
	Distances   []float64 `json:"distances"`
	Speeds      []float64 `json:"speeds"`
	Volumes     []float64 `json:"volumes"`
	Emergencies []int     `json:"emergencies,omitempty"`
	Accidents   []int     `json:"accidents,omitempty"`
}

// BadScenarioInfo — проблемный сигнал в ответе
type BadScenarioInfo struct {
	Signal int     `json:"signal"`
	Reason string  `json:"reason"`
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
}

// CalculateGreenTimesRequest запрос расчёта зелёных времён
type CalculateGreenTimesRequest struct {
	Corridor *Corridor `json:"corridor"`
}

// CalculateGreenTimesResponse ответ расчёта зелёных времён
type CalculateGreenTimesResponse struct {
	GreenTimes []float64 `json:"green_times"`
	Warnings   []string  `json:"warnings,omitempty"`
}

// SimulateRequest запрос полного прохода симуляции.
// GreenTimes необязательны: при их отсутствии рассчитываются из коридора.
type SimulateRequest struct {
	Corridor   *Corridor `json:"corridor"`
	GreenTimes []float64 `json:"green_times,omitempty"`
	Name       string    `json:"name,omitempty"`
	NoCache    bool      `json:"no_cache,omitempty"`
}

// SimulateResponse ответ симуляции
type SimulateResponse struct {
	RunID               string            `json:"run_id,omitempty"`
	GreenTimes          []float64         `json:"green_times"`
	OptimizedGreenTimes []float64         `json:"optimized_green_times"`
	Flow                []float64         `json:"flow"`
	BadScenarios        []BadScenarioInfo `json:"bad_scenarios,omitempty"`
	Rating              float64           `json:"rating"`
	RatingDisplay       string            `json:"rating_display"`
	Warnings            []string          `json:"warnings,omitempty"`
	Cached              bool              `json:"cached,omitempty"`
	ComputationTimeMs   float64           `json:"computation_time_ms"`
}

// GetStatisticsRequest запрос статистики коридора
type GetStatisticsRequest struct {
	Corridor   *Corridor `json:"corridor"`
	GreenTimes []float64 `json:"green_times,omitempty"`
}

// CorridorStats статистика входного коридора
type CorridorStats struct {
	SignalCount    int     `json:"signal_count"`
	TotalDistance  float64 `json:"total_distance"`
	TotalGreenTime float64 `json:"total_green_time"`
	AverageSpeed   float64 `json:"average_speed"`
	TotalVolume    float64 `json:"total_volume"`
}

// FlowStats статистика результата симуляции
type FlowStats struct {
	Rating        float64        `json:"rating"`
	MinScore      float64        `json:"min_score"`
	MaxScore      float64        `json:"max_score"`
	SmoothSignals int            `json:"smooth_signals"`
	BadSignals    int            `json:"bad_signals"`
	ByReason      map[string]int `json:"by_reason,omitempty"`
}

// GetStatisticsResponse ответ статистики
type GetStatisticsResponse struct {
	Corridor *CorridorStats `json:"corridor"`
	Flow     *FlowStats     `json:"flow"`
}

// RunSummary краткая информация о запуске симуляции
type RunSummary struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	SignalCount      int       `json:"signal_count"`
	Rating           float64   `json:"rating"`
	BadScenarioCount int       `json:"bad_scenario_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// Run полная информация о запуске симуляции
type Run struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Corridor            *Corridor         `json:"corridor"`
	GreenTimes          []float64         `json:"green_times"`
	OptimizedGreenTimes []float64         `json:"optimized_green_times"`
	Flow                []float64         `json:"flow"`
	BadScenarios        []BadScenarioInfo `json:"bad_scenarios,omitempty"`
	Rating              float64           `json:"rating"`
	Warnings            []string          `json:"warnings,omitempty"`
	ComputationTimeMs   float64           `json:"computation_time_ms"`
	CreatedAt           time.Time         `json:"created_at"`
}

// GetRunRequest запрос одного запуска
type GetRunRequest struct {
	RunID string `json:"run_id"`
}

// GetRunResponse ответ с запуском
type GetRunResponse struct {
	Run *Run `json:"run"`
}

// ListRunsRequest запрос списка запусков
type ListRunsRequest struct {
	Limit     int      `json:"limit,omitempty"`
	Offset    int      `json:"offset,omitempty"`
	Sort      string   `json:"sort,omitempty"` // created_desc, created_asc, rating_desc, rating_asc
	MinRating *float64 `json:"min_rating,omitempty"`
	MaxRating *float64 `json:"max_rating,omitempty"`
}

// ListRunsResponse ответ со списком запусков
type ListRunsResponse struct {
	Runs  []*RunSummary `json:"runs"`
	Total int64         `json:"total"`
}

// GenerateReportRequest запрос генерации отчёта: либо по сохранённому
// запуску (run_id), либо по коридору inline.
type GenerateReportRequest struct {
	RunID    string    `json:"run_id,omitempty"`
	Corridor *Corridor `json:"corridor,omitempty"`
	Format   string    `json:"format"` // json, csv, markdown, excel, pdf
	Title    string    `json:"title,omitempty"`
	Author   string    `json:"author,omitempty"`
}

// GenerateReportResponse ответ с готовым отчётом
type GenerateReportResponse struct {
	Format    string `json:"format"`
	Filename  string `json:"filename"`
	Content   []byte `json:"content"`
	SizeBytes int    `json:"size_bytes"`
}

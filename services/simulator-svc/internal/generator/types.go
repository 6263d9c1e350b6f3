// services/simulator-svc/internal/generator/types.go
package generator

import "time"

// ReportData данные для генерации отчёта по коридору
type ReportData struct {
	Title       string
	Author      string
	Description string
	CompanyName string
	GeneratedAt time.Time

	// Идентификатор сохранённого запуска, пустой для inline отчётов
	RunID string

	// Потабличные данные по сигналам
	Signals []SignalRow

	// Итоги симуляции
	Rating       float64
	BadScenarios []ScenarioRow
	Warnings     []string

	// Агрегаты
	CorridorStats *CorridorStatsData
	FlowStats     *FlowStatsData

	// Максимум строк в таблицах сигналов, 0 — без лимита
	MaxRows int
}

// SignalRow строка таблицы сигналов
type SignalRow struct {
	Index     int
	Distance  float64
	Speed     float64
	Volume    float64
	GreenTime float64
	Score     float64
	Scenario  string // пусто для беспроблемных сигналов
}

// ScenarioRow проблемный сигнал в отчёте
type ScenarioRow struct {
	Signal int
	Label  string
	Score  float64
}

// CorridorStatsData агрегаты входного коридора
type CorridorStatsData struct {
	SignalCount    int
	TotalDistance  float64
	TotalGreenTime float64
	AverageSpeed   float64
	TotalVolume    float64
}

// FlowStatsData агрегаты результата симуляции
type FlowStatsData struct {
	MinScore      float64
	MaxScore      float64
	SmoothSignals int
	BadSignals    int
	ByReason      map[string]int
}

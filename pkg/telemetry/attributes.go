package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Стандартные ключи атрибутов
const (
	// Коридор
	AttrCorridorSignals     = "corridor.signals"
	AttrCorridorDistance    = "corridor.total_distance"
	AttrCorridorVolume      = "corridor.total_volume"
	AttrCorridorEmergencies = "corridor.emergencies"
	AttrCorridorAccidents   = "corridor.accidents"

	// Симуляция
	AttrSimulationRating       = "simulation.rating"
	AttrSimulationBadScenarios = "simulation.bad_scenarios"
	AttrSimulationWarnings     = "simulation.warnings"
	AttrSimulationCacheHit     = "simulation.cache_hit"

	// Валидация
	AttrValidationErrors = "validation.errors"
	AttrValidationPassed = "validation.passed"

	// Отчёты
	AttrReportFormat = "report.format"
	AttrReportBytes  = "report.bytes"
)

// CorridorAttributes возвращает атрибуты коридора
func CorridorAttributes(signals, emergencies, accidents int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrCorridorSignals, signals),
		attribute.Int(AttrCorridorEmergencies, emergencies),
		attribute.Int(AttrCorridorAccidents, accidents),
	}
}

// SimulationAttributes возвращает атрибуты результата симуляции
func SimulationAttributes(rating float64, badScenarios, warnings int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Float64(AttrSimulationRating, rating),
		attribute.Int(AttrSimulationBadScenarios, badScenarios),
		attribute.Int(AttrSimulationWarnings, warnings),
	}
}

// ValidationAttributes возвращает атрибуты валидации
func ValidationAttributes(errorsCount int, passed bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrValidationErrors, errorsCount),
		attribute.Bool(AttrValidationPassed, passed),
	}
}

// ReportAttributes возвращает атрибуты генерации отчёта
func ReportAttributes(format string, size int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrReportFormat, format),
		attribute.Int(AttrReportBytes, size),
	}
}

// services/simulator-svc/internal/generator/json.go
package generator

import (
	"context"
	"encoding/json"
	"time"
)

// JSONGenerator генератор JSON отчётов
type JSONGenerator struct {
	BaseGenerator
}

// NewJSONGenerator создаёт новый генератор
func NewJSONGenerator() *JSONGenerator {
	return &JSONGenerator{}
}

// Format возвращает формат генератора
func (g *JSONGenerator) Format() Format {
	return FormatJSON
}

// JSONReport структура JSON отчёта
type JSONReport struct {
	Metadata JSONMetadata   `json:"metadata"`
	Corridor *JSONCorridor  `json:"corridor,omitempty"`
	Result   JSONResult     `json:"result"`
	Signals  []JSONSignal   `json:"signals,omitempty"`
	Flow     *JSONFlowStats `json:"flowStatistics,omitempty"`
}

type JSONMetadata struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description,omitempty"`
	GeneratedAt string `json:"generatedAt"`
	RunID       string `json:"runId,omitempty"`
	Version     string `json:"version"`
}

type JSONCorridor struct {
	SignalCount    int     `json:"signalCount"`
	TotalDistance  float64 `json:"totalDistance"`
	TotalGreenTime float64 `json:"totalGreenTime"`
	AverageSpeed   float64 `json:"averageSpeed"`
	TotalVolume    float64 `json:"totalVolume"`
}

type JSONResult struct {
	Rating        float64        `json:"rating"`
	RatingDisplay string         `json:"ratingDisplay"`
	BadScenarios  []JSONScenario `json:"badScenarios,omitempty"`
	Warnings      []string       `json:"warnings,omitempty"`
}

type JSONScenario struct {
	Signal int     `json:"signal"`
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
}

type JSONSignal struct {
	Index     int     `json:"index"`
	Distance  float64 `json:"distance"`
	Speed     float64 `json:"speed"`
	Volume    float64 `json:"volume"`
	GreenTime float64 `json:"greenTime"`
	Score     float64 `json:"score"`
	Scenario  string  `json:"scenario,omitempty"`
}

type JSONFlowStats struct {
	MinScore      float64        `json:"minScore"`
	MaxScore      float64        `json:"maxScore"`
	SmoothSignals int            `json:"smoothSignals"`
	BadSignals    int            `json:"badSignals"`
	ByReason      map[string]int `json:"byReason,omitempty"`
}

// Generate генерирует JSON отчёт
func (g *JSONGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	generatedAt := data.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	report := JSONReport{
		Metadata: JSONMetadata{
			Title:       g.GetTitle(data),
			Author:      g.GetAuthor(data),
			Description: data.Description,
			GeneratedAt: generatedAt.Format(time.RFC3339),
			RunID:       data.RunID,
			Version:     "1.0",
		},
		Result: JSONResult{
			Rating:        data.Rating,
			RatingDisplay: g.FormatRating(data.Rating),
			Warnings:      data.Warnings,
		},
	}

	if data.CorridorStats != nil {
		report.Corridor = &JSONCorridor{
			SignalCount:    data.CorridorStats.SignalCount,
			TotalDistance:  data.CorridorStats.TotalDistance,
			TotalGreenTime: data.CorridorStats.TotalGreenTime,
			AverageSpeed:   data.CorridorStats.AverageSpeed,
			TotalVolume:    data.CorridorStats.TotalVolume,
		}
	}

	for _, b := range data.BadScenarios {
		report.Result.BadScenarios = append(report.Result.BadScenarios, JSONScenario{
			Signal: b.Signal,
			Label:  b.Label,
			Score:  b.Score,
		})
	}

	signals, _ := g.LimitSignals(data)
	for _, s := range signals {
		report.Signals = append(report.Signals, JSONSignal{
			Index:     s.Index,
			Distance:  s.Distance,
			Speed:     s.Speed,
			Volume:    s.Volume,
			GreenTime: s.GreenTime,
			Score:     s.Score,
			Scenario:  s.Scenario,
		})
	}

	if data.FlowStats != nil {
		report.Flow = &JSONFlowStats{
			MinScore:      data.FlowStats.MinScore,
			MaxScore:      data.FlowStats.MaxScore,
			SmoothSignals: data.FlowStats.SmoothSignals,
			BadSignals:    data.FlowStats.BadSignals,
			ByReason:      data.FlowStats.ByReason,
		}
	}

	return json.MarshalIndent(report, "", "  ")
}

// services/simulator-svc/internal/generator/csv.go
package generator

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
)

// CSVGenerator генератор CSV отчётов
type CSVGenerator struct {
	BaseGenerator
}

// NewCSVGenerator создаёт новый генератор
func NewCSVGenerator() *CSVGenerator {
	return &CSVGenerator{}
}

// Format возвращает формат генератора
func (g *CSVGenerator) Format() Format {
	return FormatCSV
}

// csvWriter обёртка для отслеживания ошибок
type csvWriter struct {
	w   *csv.Writer
	err error
}

func (cw *csvWriter) Write(record []string) {
	if cw.err != nil {
		return
	}
	cw.err = cw.w.Write(record)
}

func (cw *csvWriter) Flush() {
	if cw.err != nil {
		return
	}
	cw.w.Flush()
	cw.err = cw.w.Error()
}

func (cw *csvWriter) Error() error {
	return cw.err
}

// Generate генерирует CSV отчёт
func (g *CSVGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	var buf bytes.Buffer
	cw := &csvWriter{w: csv.NewWriter(&buf)}

	cw.Write([]string{"# " + g.GetTitle(data)})
	cw.Write([]string{""})

	if data.CorridorStats != nil {
		cs := data.CorridorStats
		cw.Write([]string{"Corridor Info"})
		cw.Write([]string{"Signals", fmt.Sprintf("%d", cs.SignalCount)})
		cw.Write([]string{"Total Distance", g.FormatFloat(cs.TotalDistance, 2)})
		cw.Write([]string{"Total Green Time", g.FormatFloat(cs.TotalGreenTime, 2)})
		cw.Write([]string{"Average Speed", g.FormatFloat(cs.AverageSpeed, 2)})
		cw.Write([]string{"Total Volume", g.FormatFloat(cs.TotalVolume, 2)})
		cw.Write([]string{""})
	}

	cw.Write([]string{"Simulation Results"})
	cw.Write([]string{"Rating (1-10)", g.FormatRating(data.Rating)})
	if data.FlowStats != nil {
		cw.Write([]string{"Min Score", g.FormatFloat(data.FlowStats.MinScore, 2)})
		cw.Write([]string{"Max Score", g.FormatFloat(data.FlowStats.MaxScore, 2)})
		cw.Write([]string{"Smooth Signals", fmt.Sprintf("%d", data.FlowStats.SmoothSignals)})
		cw.Write([]string{"Bad Signals", fmt.Sprintf("%d", data.FlowStats.BadSignals)})
	}
	cw.Write([]string{""})

	signals, truncated := g.LimitSignals(data)
	if len(signals) > 0 {
		cw.Write([]string{"Signals"})
		cw.Write([]string{"Index", "Distance", "Speed", "Volume", "Green Time", "Score", "Scenario"})
		for _, s := range signals {
			cw.Write([]string{
				fmt.Sprintf("%d", s.Index),
				g.FormatFloat(s.Distance, 2),
				g.FormatFloat(s.Speed, 2),
				g.FormatFloat(s.Volume, 2),
				g.FormatFloat(s.GreenTime, 4),
				g.FormatFloat(s.Score, 2),
				s.Scenario,
			})
		}
		if truncated {
			cw.Write([]string{fmt.Sprintf("... %d more signals omitted", len(data.Signals)-len(signals))})
		}
		cw.Write([]string{""})
	}

	if len(data.BadScenarios) > 0 {
		cw.Write([]string{"Bad Scenarios"})
		cw.Write([]string{"Signal", "Scenario", "Score"})
		for _, b := range data.BadScenarios {
			cw.Write([]string{
				fmt.Sprintf("%d", b.Signal),
				b.Label,
				g.FormatFloat(b.Score, 2),
			})
		}
		cw.Write([]string{""})
	}

	if len(data.Warnings) > 0 {
		cw.Write([]string{"Warnings"})
		for _, w := range data.Warnings {
			cw.Write([]string{w})
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("csv write error: %w", err)
	}

	return buf.Bytes(), nil
}

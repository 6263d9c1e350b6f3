// services/simulator-svc/internal/generator/markdown.go
package generator

import (
	"bytes"
	"context"
	"fmt"
	"time"
)

// MarkdownGenerator генератор Markdown отчётов
type MarkdownGenerator struct {
	BaseGenerator
}

// NewMarkdownGenerator создаёт новый генератор
func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{}
}

// Format возвращает формат генератора
func (g *MarkdownGenerator) Format() Format {
	return FormatMarkdown
}

// Generate генерирует Markdown отчёт
func (g *MarkdownGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	var buf bytes.Buffer

	g.writeHeader(&buf, data)
	g.writeCorridor(&buf, data)
	g.writeResults(&buf, data)
	g.writeSignals(&buf, data)
	g.writeScenarios(&buf, data)
	g.writeFooter(&buf, data)

	return buf.Bytes(), nil
}

func (g *MarkdownGenerator) writeHeader(buf *bytes.Buffer, data *ReportData) {
	buf.WriteString(fmt.Sprintf("# %s\n\n", g.GetTitle(data)))

	buf.WriteString("## Report Information\n\n")
	buf.WriteString(fmt.Sprintf("- **Generated:** %s\n", time.Now().Format("2006-01-02 15:04:05")))
	buf.WriteString(fmt.Sprintf("- **Author:** %s\n", g.GetAuthor(data)))
	if data.RunID != "" {
		buf.WriteString(fmt.Sprintf("- **Run ID:** %s\n", data.RunID))
	}
	if data.Description != "" {
		buf.WriteString(fmt.Sprintf("- **Description:** %s\n", data.Description))
	}

	buf.WriteString("\n---\n\n")
}

func (g *MarkdownGenerator) writeCorridor(buf *bytes.Buffer, data *ReportData) {
	if data.CorridorStats == nil {
		return
	}

	cs := data.CorridorStats
	buf.WriteString("## Corridor Information\n\n")
	buf.WriteString(fmt.Sprintf("- **Signals:** %d\n", cs.SignalCount))
	buf.WriteString(fmt.Sprintf("- **Total Distance:** %.2f\n", cs.TotalDistance))
	buf.WriteString(fmt.Sprintf("- **Total Green Time:** %.2f\n", cs.TotalGreenTime))
	buf.WriteString(fmt.Sprintf("- **Average Speed:** %.2f\n", cs.AverageSpeed))
	buf.WriteString(fmt.Sprintf("- **Total Volume:** %.2f\n", cs.TotalVolume))
	buf.WriteString("\n")
}

func (g *MarkdownGenerator) writeResults(buf *bytes.Buffer, data *ReportData) {
	buf.WriteString("## Simulation Results\n\n")
	buf.WriteString(fmt.Sprintf("- **Rating (1-10):** %s\n", g.FormatRating(data.Rating)))

	if data.FlowStats != nil {
		fs := data.FlowStats
		buf.WriteString(fmt.Sprintf("- **Min Score:** %.2f\n", fs.MinScore))
		buf.WriteString(fmt.Sprintf("- **Max Score:** %.2f\n", fs.MaxScore))
		buf.WriteString(fmt.Sprintf("- **Smooth Signals:** %d\n", fs.SmoothSignals))
		buf.WriteString(fmt.Sprintf("- **Bad Signals:** %d\n", fs.BadSignals))
	}

	if len(data.Warnings) > 0 {
		buf.WriteString("\n### Warnings\n\n")
		for _, w := range data.Warnings {
			buf.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}
	buf.WriteString("\n")
}

func (g *MarkdownGenerator) writeSignals(buf *bytes.Buffer, data *ReportData) {
	signals, truncated := g.LimitSignals(data)
	if len(signals) == 0 {
		return
	}

	buf.WriteString("### Signals\n\n")
	buf.WriteString("| # | Distance | Speed | Volume | Green Time | Score | Scenario |\n")
	buf.WriteString("|---|----------|-------|--------|------------|-------|----------|\n")
	for _, s := range signals {
		scenario := s.Scenario
		if scenario == "" {
			scenario = "-"
		}
		buf.WriteString(fmt.Sprintf("| %d | %.2f | %.2f | %.2f | %.4f | %.2f | %s |\n",
			s.Index, s.Distance, s.Speed, s.Volume, s.GreenTime, s.Score, scenario))
	}
	if truncated {
		buf.WriteString(fmt.Sprintf("\n*%d more signals omitted*\n", len(data.Signals)-len(signals)))
	}
	buf.WriteString("\n")
}

func (g *MarkdownGenerator) writeScenarios(buf *bytes.Buffer, data *ReportData) {
	if len(data.BadScenarios) == 0 {
		return
	}

	buf.WriteString("### Bad Scenarios\n\n")
	buf.WriteString("| Signal | Scenario | Score |\n")
	buf.WriteString("|--------|----------|-------|\n")
	for _, b := range data.BadScenarios {
		buf.WriteString(fmt.Sprintf("| %d | %s | %.2f |\n", b.Signal, b.Label, b.Score))
	}
	buf.WriteString("\n")
}

func (g *MarkdownGenerator) writeFooter(buf *bytes.Buffer, data *ReportData) {
	buf.WriteString("---\n\n")
	buf.WriteString(fmt.Sprintf("*Generated by %s | %s*\n",
		g.GetAuthor(data), time.Now().Format("2006-01-02 15:04:05")))
}

// services/simulator-svc/internal/generator/pdf.go
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// PDFGenerator генератор PDF отчётов
type PDFGenerator struct {
	BaseGenerator
}

// NewPDFGenerator создаёт новый генератор
func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{}
}

// Format возвращает формат генератора
func (g *PDFGenerator) Format() Format {
	return FormatPDF
}

// Стили
var (
	// Цвета
	primaryColor   = &props.Color{Red: 52, Green: 152, Blue: 219}  // #3498db
	headerBgColor  = &props.Color{Red: 44, Green: 62, Blue: 80}    // #2c3e50
	dangerColor    = &props.Color{Red: 231, Green: 76, Blue: 60}   // #e74c3c
	lightGrayColor = &props.Color{Red: 236, Green: 240, Blue: 241} // #ecf0f1
	darkGrayColor  = &props.Color{Red: 127, Green: 140, Blue: 141} // #7f8c8d

	// Стили текста
	titleStyle = props.Text{
		Size:  24,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: headerBgColor,
	}

	h2Style = props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Color: headerBgColor,
		Top:   5,
	}

	smallStyle = props.Text{
		Size:  8,
		Color: darkGrayColor,
	}

	metricValueStyle = props.Text{
		Size:  20,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: primaryColor,
	}

	metricLabelStyle = props.Text{
		Size:  9,
		Align: align.Center,
		Color: darkGrayColor,
	}

	tableHeaderStyle = &props.Cell{
		BackgroundColor: primaryColor,
	}

	tableHeaderTextStyle = props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
		Align: align.Center,
	}

	tableCellStyle = &props.Cell{
		BorderType:  border.Bottom,
		BorderColor: lightGrayColor,
	}

	tableCellTextStyle = props.Text{
		Size:  9,
		Align: align.Center,
	}

	warningTextStyle = props.Text{
		Size:  9,
		Color: dangerColor,
	}
)

// Generate генерирует PDF отчёт
func (g *PDFGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	g.addHeader(m, data)
	g.addSummary(m, data)
	g.addSignalsTable(m, data)
	g.addScenariosTable(m, data)
	g.addWarnings(m, data)
	g.addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func (g *PDFGenerator) addHeader(m core.Maroto, data *ReportData) {
	m.AddRow(15,
		text.NewCol(12, g.GetTitle(data), titleStyle),
	)

	m.AddRow(5,
		line.NewCol(12),
	)

	m.AddRow(6,
		text.NewCol(6, fmt.Sprintf("Author: %s", g.GetAuthor(data)), smallStyle),
		text.NewCol(6, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")),
			props.Text{Size: 8, Color: darkGrayColor, Align: align.Right}),
	)

	if data.Description != "" {
		m.AddRow(5,
			text.NewCol(12, data.Description, smallStyle),
		)
	}

	m.AddRow(8) // Отступ
}

func (g *PDFGenerator) addSummary(m core.Maroto, data *ReportData) {
	g.addSection(m, "Simulation Results")

	cards := []metricCard{
		{Label: "Rating (1-10)", Value: g.FormatRating(data.Rating), Highlight: true},
	}
	if data.CorridorStats != nil {
		cards = append(cards,
			metricCard{Label: "Signals", Value: fmt.Sprintf("%d", data.CorridorStats.SignalCount)},
			metricCard{Label: "Total Distance", Value: g.FormatFloat(data.CorridorStats.TotalDistance, 2)},
			metricCard{Label: "Total Green Time", Value: g.FormatFloat(data.CorridorStats.TotalGreenTime, 2)},
		)
	}
	g.addMetricCards(m, cards)

	if data.FlowStats != nil {
		m.AddRow(5)
		g.addMetricCards(m, []metricCard{
			{Label: "Min Score", Value: g.FormatFloat(data.FlowStats.MinScore, 2)},
			{Label: "Max Score", Value: g.FormatFloat(data.FlowStats.MaxScore, 2)},
			{Label: "Smooth Signals", Value: fmt.Sprintf("%d", data.FlowStats.SmoothSignals)},
			{Label: "Bad Signals", Value: fmt.Sprintf("%d", data.FlowStats.BadSignals)},
		})
	}
}

func (g *PDFGenerator) addSignalsTable(m core.Maroto, data *ReportData) {
	signals, truncated := g.LimitSignals(data)
	if len(signals) == 0 {
		return
	}

	g.addSection(m, "Signals")

	m.AddRow(8,
		col.New(1).Add(text.New("#", tableHeaderTextStyle)).WithStyle(tableHeaderStyle),
		col.New(2).Add(text.New("Distance", tableHeaderTextStyle)).WithStyle(tableHeaderStyle),
		col.New(2).Add(text.New("Speed", tableHeaderTextStyle)).WithStyle(tableHeaderStyle),
		col.New(2).Add(text.New("Volume", tableHeaderTextStyle)).WithStyle(tableHeaderStyle),
		col.New(2).Add(text.New("Green Time", tableHeaderTextStyle)).WithStyle(tableHeaderStyle),
		col.New(1).Add(text.New("Score", tableHeaderTextStyle)).WithStyle(tableHeaderStyle),
		col.New(2).Add(text.New("Scenario", tableHeaderTextStyle)).WithStyle(tableHeaderStyle),
	)

	for _, s := range signals {
		scenario := s.Scenario
		if scenario == "" {
			scenario = "-"
		}
		m.AddRow(6,
			col.New(1).Add(text.New(fmt.Sprintf("%d", s.Index), tableCellTextStyle)).WithStyle(tableCellStyle),
			col.New(2).Add(text.New(g.FormatFloat(s.Distance, 2), tableCellTextStyle)).WithStyle(tableCellStyle),
			col.New(2).Add(text.New(g.FormatFloat(s.Speed, 2), tableCellTextStyle)).WithStyle(tableCellStyle),
			col.New(2).Add(text.New(g.FormatFloat(s.Volume, 2), tableCellTextStyle)).WithStyle(tableCellStyle),
			col.New(2).Add(text.New(g.FormatFloat(s.GreenTime, 4), tableCellTextStyle)).WithStyle(tableCellStyle),
			col.New(1).Add(text.New(g.FormatFloat(s.Score, 2), tableCellTextStyle)).WithStyle(tableCellStyle),
			col.New(2).Add(text.New(scenario, tableCellTextStyle)).WithStyle(tableCellStyle),
		)
	}

	if truncated {
		m.AddRow(6,
			text.NewCol(12,
				fmt.Sprintf("... %d more signals omitted", len(data.Signals)-len(signals)),
				smallStyle),
		)
	}
}

func (g *PDFGenerator) addScenariosTable(m core.Maroto, data *ReportData) {
	if len(data.BadScenarios) == 0 {
		return
	}

	g.addSection(m, "Bad Scenarios")

	m.AddRow(8,
		col.New(2).Add(text.New("Signal", tableHeaderTextStyle)).WithStyle(tableHeaderStyle),
		col.New(7).Add(text.New("Scenario", tableHeaderTextStyle)).WithStyle(tableHeaderStyle),
		col.New(3).Add(text.New("Score", tableHeaderTextStyle)).WithStyle(tableHeaderStyle),
	)

	for _, b := range data.BadScenarios {
		m.AddRow(6,
			col.New(2).Add(text.New(fmt.Sprintf("%d", b.Signal), tableCellTextStyle)).WithStyle(tableCellStyle),
			col.New(7).Add(text.New(b.Label, tableCellTextStyle)).WithStyle(tableCellStyle),
			col.New(3).Add(text.New(g.FormatFloat(b.Score, 2), tableCellTextStyle)).WithStyle(tableCellStyle),
		)
	}
}

func (g *PDFGenerator) addWarnings(m core.Maroto, data *ReportData) {
	if len(data.Warnings) == 0 {
		return
	}

	g.addSection(m, "Warnings")
	for _, w := range data.Warnings {
		m.AddRow(5,
			text.NewCol(12, w, warningTextStyle),
		)
	}
}

// metricCard карточка метрики
type metricCard struct {
	Label     string
	Value     string
	Highlight bool
}

func (g *PDFGenerator) addMetricCards(m core.Maroto, cards []metricCard) {
	if len(cards) == 0 {
		return
	}

	colSize := 12 / len(cards)
	if colSize < 2 {
		colSize = 2
	}

	var cols []core.Col
	for _, card := range cards {
		valueStyle := metricValueStyle
		if !card.Highlight {
			valueStyle.Size = 14
		}

		cols = append(cols,
			col.New(colSize).Add(
				text.New(card.Value, valueStyle),
				text.New(card.Label, metricLabelStyle),
			),
		)
	}

	m.AddRow(20, cols...)
}

func (g *PDFGenerator) addSection(m core.Maroto, title string) {
	m.AddRow(10,
		text.NewCol(12, title, h2Style),
	)
	m.AddRow(2,
		line.NewCol(12, props.Line{Color: primaryColor}),
	)
	m.AddRow(5)
}

func (g *PDFGenerator) addFooter(m core.Maroto, data *ReportData) {
	m.AddRow(10)
	m.AddRow(2,
		line.NewCol(12, props.Line{Color: lightGrayColor}),
	)
	m.AddRow(6,
		text.NewCol(12,
			fmt.Sprintf("Generated by %s | %s", g.GetAuthor(data), time.Now().Format("2006-01-02 15:04:05")),
			props.Text{Size: 8, Color: darkGrayColor, Align: align.Center},
		),
	)
}

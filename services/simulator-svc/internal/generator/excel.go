// services/simulator-svc/internal/generator/excel.go
package generator

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelGenerator генератор Excel отчётов
type ExcelGenerator struct {
	BaseGenerator
}

// NewExcelGenerator создаёт новый генератор
func NewExcelGenerator() *ExcelGenerator {
	return &ExcelGenerator{}
}

// Format возвращает формат генератора
func (g *ExcelGenerator) Format() Format {
	return FormatExcel
}

// Generate генерирует Excel отчёт
func (g *ExcelGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	g.writeSummarySheet(f, data)
	g.writeSignalsSheet(f, data)

	// Удаляем дефолтный лист после создания своих
	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (g *ExcelGenerator) headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func (g *ExcelGenerator) writeSummarySheet(f *excelize.File, data *ReportData) {
	sheetName := "Summary"
	f.NewSheet(sheetName)

	headerStyle := g.headerStyle(f)
	row := 1

	f.SetCellValue(sheetName, cellAddr("A", row), g.GetTitle(data))
	f.MergeCell(sheetName, cellAddr("A", row), cellAddr("D", row))
	row += 2

	if data.CorridorStats != nil {
		cs := data.CorridorStats

		f.SetCellValue(sheetName, cellAddr("A", row), "Corridor Information")
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("B", row), headerStyle)
		row++

		pairs := []struct {
			label string
			value any
		}{
			{"Signals", cs.SignalCount},
			{"Total Distance", cs.TotalDistance},
			{"Total Green Time", cs.TotalGreenTime},
			{"Average Speed", cs.AverageSpeed},
			{"Total Volume", cs.TotalVolume},
		}
		for _, p := range pairs {
			f.SetCellValue(sheetName, cellAddr("A", row), p.label)
			f.SetCellValue(sheetName, cellAddr("B", row), p.value)
			row++
		}
		row++
	}

	f.SetCellValue(sheetName, cellAddr("A", row), "Simulation Results")
	f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("B", row), headerStyle)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Rating (1-10)")
	f.SetCellValue(sheetName, cellAddr("B", row), data.Rating)
	row++

	if data.FlowStats != nil {
		fs := data.FlowStats
		f.SetCellValue(sheetName, cellAddr("A", row), "Min Score")
		f.SetCellValue(sheetName, cellAddr("B", row), fs.MinScore)
		row++
		f.SetCellValue(sheetName, cellAddr("A", row), "Max Score")
		f.SetCellValue(sheetName, cellAddr("B", row), fs.MaxScore)
		row++
		f.SetCellValue(sheetName, cellAddr("A", row), "Smooth Signals")
		f.SetCellValue(sheetName, cellAddr("B", row), fs.SmoothSignals)
		row++
		f.SetCellValue(sheetName, cellAddr("A", row), "Bad Signals")
		f.SetCellValue(sheetName, cellAddr("B", row), fs.BadSignals)
		row += 2
	}

	if len(data.BadScenarios) > 0 {
		f.SetCellValue(sheetName, cellAddr("A", row), "Bad Scenarios")
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("C", row), headerStyle)
		row++

		headers := []string{"Signal", "Scenario", "Score"}
		for i, h := range headers {
			f.SetCellValue(sheetName, cellAddr(string(rune('A'+i)), row), h)
		}
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("C", row), headerStyle)
		row++

		for _, b := range data.BadScenarios {
			f.SetCellValue(sheetName, cellAddr("A", row), b.Signal)
			f.SetCellValue(sheetName, cellAddr("B", row), b.Label)
			f.SetCellValue(sheetName, cellAddr("C", row), b.Score)
			row++
		}
		row++
	}

	if len(data.Warnings) > 0 {
		f.SetCellValue(sheetName, cellAddr("A", row), "Warnings")
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("A", row), headerStyle)
		row++
		for _, w := range data.Warnings {
			f.SetCellValue(sheetName, cellAddr("A", row), w)
			row++
		}
	}
}

func (g *ExcelGenerator) writeSignalsSheet(f *excelize.File, data *ReportData) {
	signals, truncated := g.LimitSignals(data)
	if len(signals) == 0 {
		return
	}

	sheetName := "Signals"
	f.NewSheet(sheetName)

	headerStyle := g.headerStyle(f)

	headers := []string{"Index", "Distance", "Speed", "Volume", "Green Time", "Score", "Scenario"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cellAddr(string(rune('A'+i)), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", "G1", headerStyle)

	for i, s := range signals {
		row := i + 2
		f.SetCellValue(sheetName, cellAddr("A", row), s.Index)
		f.SetCellValue(sheetName, cellAddr("B", row), s.Distance)
		f.SetCellValue(sheetName, cellAddr("C", row), s.Speed)
		f.SetCellValue(sheetName, cellAddr("D", row), s.Volume)
		f.SetCellValue(sheetName, cellAddr("E", row), s.GreenTime)
		f.SetCellValue(sheetName, cellAddr("F", row), s.Score)
		f.SetCellValue(sheetName, cellAddr("G", row), s.Scenario)
	}

	if truncated {
		row := len(signals) + 2
		f.SetCellValue(sheetName, cellAddr("A", row),
			fmt.Sprintf("... %d more signals omitted", len(data.Signals)-len(signals)))
	}
}

// cellAddr возвращает адрес ячейки
func cellAddr(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

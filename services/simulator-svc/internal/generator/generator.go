// services/simulator-svc/internal/generator/generator.go
package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgerrors "trafficsim/pkg/apperror"
)

// Format формат отчёта
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatExcel    Format = "excel"
	FormatPDF      Format = "pdf"
)

// Extension возвращает расширение файла для формата
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "md"
	case FormatExcel:
		return "xlsx"
	case FormatPDF:
		return "pdf"
	default:
		return "bin"
	}
}

// ParseFormat разбирает формат из строки запроса
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeInvalidFormat,
			fmt.Sprintf("unknown report format: %q", s))
	}
}

// Generator интерфейс генератора отчётов
type Generator interface {
	Generate(ctx context.Context, data *ReportData) ([]byte, error)
	Format() Format
}

// New возвращает генератор для формата
func New(format Format) (Generator, error) {
	switch format {
	case FormatJSON:
		return NewJSONGenerator(), nil
	case FormatCSV:
		return NewCSVGenerator(), nil
	case FormatMarkdown:
		return NewMarkdownGenerator(), nil
	case FormatExcel:
		return NewExcelGenerator(), nil
	case FormatPDF:
		return NewPDFGenerator(), nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeInvalidFormat,
			fmt.Sprintf("no generator for format: %q", format))
	}
}

// BaseGenerator базовые утилиты для генераторов
type BaseGenerator struct{}

// GetTitle возвращает заголовок отчёта
func (b *BaseGenerator) GetTitle(data *ReportData) string {
	if data.Title != "" {
		return data.Title
	}
	return "Traffic Corridor Report"
}

// GetAuthor возвращает автора отчёта
func (b *BaseGenerator) GetAuthor(data *ReportData) string {
	if data.Author != "" {
		return data.Author
	}
	if data.CompanyName != "" {
		return data.CompanyName
	}
	return "Traffic Simulation Platform"
}

// FormatFloat форматирует число с заданной точностью
func (b *BaseGenerator) FormatFloat(v float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, v)
}

// FormatRating форматирует рейтинг в отображаемом виде
func (b *BaseGenerator) FormatRating(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatTimestamp форматирует время
func (b *BaseGenerator) FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// LimitSignals обрезает таблицу сигналов до MaxRows (0 — без лимита)
func (b *BaseGenerator) LimitSignals(data *ReportData) ([]SignalRow, bool) {
	if data.MaxRows <= 0 || len(data.Signals) <= data.MaxRows {
		return data.Signals, false
	}
	return data.Signals[:data.MaxRows], true
}

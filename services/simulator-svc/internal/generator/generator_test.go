// services/simulator-svc/internal/generator/generator_test.go

package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func sampleData() *ReportData {
	return &ReportData{
		Title:       "Test Corridor Report",
		Author:      "Test Author",
		CompanyName: "Traffic Simulation Platform",
		RunID:       "run-123",
		Signals: []SignalRow{
			{Index: 0, Distance: 100, Speed: 10, Volume: 30, GreenTime: 10, Score: 10},
			{Index: 1, Distance: 200, Speed: 20, Volume: 60, GreenTime: 10, Score: 10},
			{Index: 2, Distance: 300, Speed: 0, Volume: 90, GreenTime: 3, Score: 0, Scenario: "Zero Speed"},
		},
		Rating: 6.67,
		BadScenarios: []ScenarioRow{
			{Signal: 2, Label: "Zero Speed", Score: 0},
		},
		Warnings: []string{"speed must be greater than zero, using zero green time"},
		CorridorStats: &CorridorStatsData{
			SignalCount:    3,
			TotalDistance:  600,
			TotalGreenTime: 23,
			AverageSpeed:   10,
			TotalVolume:    180,
		},
		FlowStats: &FlowStatsData{
			MinScore:      0,
			MaxScore:      10,
			SmoothSignals: 2,
			BadSignals:    1,
			ByReason:      map[string]int{"zero_speed": 1},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"", FormatJSON, false},
		{"CSV", FormatCSV, false},
		{"markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"excel", FormatExcel, false},
		{"xlsx", FormatExcel, false},
		{"pdf", FormatPDF, false},
		{"docx", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew_AllFormats(t *testing.T) {
	formats := []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatExcel, FormatPDF}

	for _, f := range formats {
		g, err := New(f)
		if err != nil {
			t.Fatalf("New(%v) error = %v", f, err)
		}
		if g.Format() != f {
			t.Errorf("generator format = %v, want %v", g.Format(), f)
		}
	}

	if _, err := New(Format("bogus")); err == nil {
		t.Error("New with unknown format should fail")
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "json"},
		{FormatCSV, "csv"},
		{FormatMarkdown, "md"},
		{FormatExcel, "xlsx"},
		{FormatPDF, "pdf"},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("%v.Extension() = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestJSONGenerator_Generate(t *testing.T) {
	g := NewJSONGenerator()

	result, err := g.Generate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var report JSONReport
	if err := json.Unmarshal(result, &report); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if report.Metadata.Title != "Test Corridor Report" {
		t.Errorf("Title = %v, want 'Test Corridor Report'", report.Metadata.Title)
	}
	if report.Metadata.RunID != "run-123" {
		t.Errorf("RunID = %v, want run-123", report.Metadata.RunID)
	}
	if report.Result.RatingDisplay != "6.67" {
		t.Errorf("RatingDisplay = %v, want 6.67", report.Result.RatingDisplay)
	}
	if len(report.Signals) != 3 {
		t.Errorf("Signals = %d, want 3", len(report.Signals))
	}
	if len(report.Result.BadScenarios) != 1 {
		t.Errorf("BadScenarios = %d, want 1", len(report.Result.BadScenarios))
	}
	if report.Corridor == nil || report.Corridor.SignalCount != 3 {
		t.Error("missing corridor statistics")
	}
}

func TestCSVGenerator_Generate(t *testing.T) {
	g := NewCSVGenerator()

	result, err := g.Generate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	content := string(result)
	for _, want := range []string{
		"# Test Corridor Report",
		"Rating (1-10),6.67",
		"Zero Speed",
		"Bad Scenarios",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("CSV missing %q:\n%s", want, content)
		}
	}
}

func TestMarkdownGenerator_Generate(t *testing.T) {
	g := NewMarkdownGenerator()

	result, err := g.Generate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	content := string(result)
	for _, want := range []string{
		"# Test Corridor Report",
		"**Rating (1-10):** 6.67",
		"| 2 | Zero Speed | 0.00 |",
		"### Bad Scenarios",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
}

func TestExcelGenerator_Generate(t *testing.T) {
	g := NewExcelGenerator()

	result, err := g.Generate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// XLSX — это zip архив
	if !bytes.HasPrefix(result, []byte("PK")) {
		t.Error("Excel output should be a zip archive")
	}
}

func TestPDFGenerator_Generate(t *testing.T) {
	g := NewPDFGenerator()

	result, err := g.Generate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !bytes.HasPrefix(result, []byte("%PDF")) {
		t.Error("PDF output should start with %PDF")
	}
}

func TestLimitSignals(t *testing.T) {
	data := sampleData()
	data.MaxRows = 2

	b := &BaseGenerator{}
	signals, truncated := b.LimitSignals(data)

	if len(signals) != 2 {
		t.Errorf("got %d signals, want 2", len(signals))
	}
	if !truncated {
		t.Error("expected truncation flag")
	}

	data.MaxRows = 0
	signals, truncated = b.LimitSignals(data)
	if len(signals) != 3 || truncated {
		t.Error("no limit expected when MaxRows is 0")
	}
}

func TestBaseGenerator_Defaults(t *testing.T) {
	b := &BaseGenerator{}

	if got := b.GetTitle(&ReportData{}); got != "Traffic Corridor Report" {
		t.Errorf("default title = %v", got)
	}
	if got := b.GetAuthor(&ReportData{CompanyName: "Acme"}); got != "Acme" {
		t.Errorf("author fallback to company = %v", got)
	}
	if got := b.GetAuthor(&ReportData{}); got != "Traffic Simulation Platform" {
		t.Errorf("default author = %v", got)
	}
	if got := b.FormatRating(7.333); got != "7.33" {
		t.Errorf("FormatRating = %v, want 7.33", got)
	}
}

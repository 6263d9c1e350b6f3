package input

import (
	"strings"
	"testing"
)

func TestConsolePrompter_FullCorridor(t *testing.T) {
	in := strings.NewReader("3\n100 200 300\n10 20 30\n30 60 90\n1\n2\n")
	var out strings.Builder

	set, disruptions, err := NewConsolePrompter(in, &out).Corridor()
	if err != nil {
		t.Fatalf("Corridor() error: %v", err)
	}

	if set.Len() != 3 {
		t.Errorf("expected 3 signals, got %d", set.Len())
	}
	if !set.Consistent() {
		t.Error("expected consistent signal set")
	}
	if set.Distances[1] != 200 || set.Speeds[2] != 30 || set.Volumes[0] != 30 {
		t.Errorf("unexpected values: %+v", set)
	}
	if !disruptions.HasEmergency(1) {
		t.Error("expected emergency at signal 1")
	}
	if !disruptions.HasAccident(2) {
		t.Error("expected accident at signal 2")
	}

	if !strings.Contains(out.String(), "Enter the number of signals: ") {
		t.Error("missing signal count prompt")
	}
	if !strings.Contains(out.String(), "Enter distances between 3 signals (space-separated):") {
		t.Error("missing distances prompt")
	}
}

func TestConsolePrompter_SkipDisruptions(t *testing.T) {
	in := strings.NewReader("2\n100 200\n10 20\n30 60\n\n\n")
	var out strings.Builder

	_, disruptions, err := NewConsolePrompter(in, &out).Corridor()
	if err != nil {
		t.Fatalf("Corridor() error: %v", err)
	}

	if disruptions.EmergencyCount() != 0 || disruptions.AccidentCount() != 0 {
		t.Errorf("expected no disruptions, got %d emergencies, %d accidents",
			disruptions.EmergencyCount(), disruptions.AccidentCount())
	}
}

func TestConsolePrompter_RetryOnBadCount(t *testing.T) {
	// нечисловое, затем неположительное, затем корректное значение
	in := strings.NewReader("abc\n0\n1\n100\n10\n30\n\n\n")
	var out strings.Builder

	set, _, err := NewConsolePrompter(in, &out).Corridor()
	if err != nil {
		t.Fatalf("Corridor() error: %v", err)
	}
	if set.Len() != 1 {
		t.Errorf("expected 1 signal, got %d", set.Len())
	}

	if strings.Count(out.String(), "Input error:") != 2 {
		t.Errorf("expected 2 retry messages, output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "must be positive") {
		t.Error("missing positivity error")
	}
}

func TestConsolePrompter_RetryOnLengthMismatch(t *testing.T) {
	in := strings.NewReader("3\n100 200\n100 200 300\n10 20 30\n30 60 90\n\n\n")
	var out strings.Builder

	set, _, err := NewConsolePrompter(in, &out).Corridor()
	if err != nil {
		t.Fatalf("Corridor() error: %v", err)
	}
	if set.Len() != 3 {
		t.Errorf("expected 3 signals, got %d", set.Len())
	}

	if !strings.Contains(out.String(), "expected 3 values, but got 2") {
		t.Errorf("missing length mismatch message, output:\n%s", out.String())
	}
}

func TestConsolePrompter_RetryOnBadIndex(t *testing.T) {
	in := strings.NewReader("2\n100 200\n10 20\n30 60\n5\n0\n\n")
	var out strings.Builder

	_, disruptions, err := NewConsolePrompter(in, &out).Corridor()
	if err != nil {
		t.Fatalf("Corridor() error: %v", err)
	}

	if !disruptions.HasEmergency(0) {
		t.Error("expected emergency at signal 0 after retry")
	}
	if !strings.Contains(out.String(), "indices must be within the range of signals") {
		t.Errorf("missing range error, output:\n%s", out.String())
	}
}

func TestConsolePrompter_EOF(t *testing.T) {
	in := strings.NewReader("3\n100 200 300\n")
	var out strings.Builder

	_, _, err := NewConsolePrompter(in, &out).Corridor()
	if err == nil {
		t.Fatal("expected error on truncated input")
	}
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		n       int
		want    []float64
		wantErr bool
	}{
		{"integers", "1 2 3", 3, []float64{1, 2, 3}, false},
		{"floats", "1.5 2.25", 2, []float64{1.5, 2.25}, false},
		{"too few", "1 2", 3, nil, true},
		{"too many", "1 2 3 4", 3, nil, true},
		{"not a number", "1 x 3", 3, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValues(tt.line, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseValues(%q, %d) error = %v, wantErr %v", tt.line, tt.n, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("value %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseIndexes(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		n       int
		wantLen int
		wantErr bool
	}{
		{"empty line", "", 5, 0, false},
		{"whitespace only", "   ", 5, 0, false},
		{"valid", "0 2 4", 5, 3, false},
		{"out of range", "5", 5, 0, true},
		{"negative", "-1", 5, 0, true},
		{"not an integer", "1.5", 5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIndexes(tt.line, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIndexes(%q, %d) error = %v, wantErr %v", tt.line, tt.n, err, tt.wantErr)
			}
			if err == nil && len(got) != tt.wantLen {
				t.Errorf("got %d indexes, want %d", len(got), tt.wantLen)
			}
		})
	}
}

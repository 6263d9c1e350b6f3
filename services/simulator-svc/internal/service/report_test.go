// services/simulator-svc/internal/service/report_test.go

package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"trafficsim/pkg/simulatorv1"
)

func TestGenerateReport_InlineCorridor(t *testing.T) {
	svc := NewSimulatorService(testConfig(), nil, nil)

	resp, err := svc.GenerateReport(context.Background(),
		connect.NewRequest(&simulatorv1.GenerateReportRequest{
			Corridor: testCorridor(),
			Format:   "json",
			Title:    "Inline Report",
		}))
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}

	if resp.Msg.Format != "json" {
		t.Errorf("format = %v, want json", resp.Msg.Format)
	}
	if !strings.HasSuffix(resp.Msg.Filename, ".json") {
		t.Errorf("filename = %v, want .json suffix", resp.Msg.Filename)
	}
	if resp.Msg.SizeBytes != len(resp.Msg.Content) {
		t.Errorf("size = %d, content = %d", resp.Msg.SizeBytes, len(resp.Msg.Content))
	}

	var report map[string]any
	if err := json.Unmarshal(resp.Msg.Content, &report); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
}

func TestGenerateReport_FromStoredRun(t *testing.T) {
	repo := newFakeRunRepository()
	svc := NewSimulatorService(testConfig(), repo, nil)

	simResp, err := svc.Simulate(context.Background(),
		connect.NewRequest(&simulatorv1.SimulateRequest{Corridor: testCorridor(), Name: "stored run"}))
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	resp, err := svc.GenerateReport(context.Background(),
		connect.NewRequest(&simulatorv1.GenerateReportRequest{
			RunID:  simResp.Msg.RunID,
			Format: "markdown",
		}))
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}

	content := string(resp.Msg.Content)
	if !strings.Contains(content, "stored run") {
		t.Errorf("report should use the run name as title:\n%s", content)
	}
	if !strings.HasSuffix(resp.Msg.Filename, ".md") {
		t.Errorf("filename = %v, want .md suffix", resp.Msg.Filename)
	}
}

func TestGenerateReport_RunNotFound(t *testing.T) {
	svc := NewSimulatorService(testConfig(), newFakeRunRepository(), nil)

	_, err := svc.GenerateReport(context.Background(),
		connect.NewRequest(&simulatorv1.GenerateReportRequest{RunID: "missing", Format: "csv"}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("code = %v, want %v", connect.CodeOf(err), connect.CodeNotFound)
	}
}

func TestGenerateReport_MissingSource(t *testing.T) {
	svc := NewSimulatorService(testConfig(), nil, nil)

	_, err := svc.GenerateReport(context.Background(),
		connect.NewRequest(&simulatorv1.GenerateReportRequest{Format: "csv"}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("code = %v, want %v", connect.CodeOf(err), connect.CodeInvalidArgument)
	}
}

func TestGenerateReport_BadFormat(t *testing.T) {
	svc := NewSimulatorService(testConfig(), nil, nil)

	_, err := svc.GenerateReport(context.Background(),
		connect.NewRequest(&simulatorv1.GenerateReportRequest{Corridor: testCorridor(), Format: "docx"}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("code = %v, want %v", connect.CodeOf(err), connect.CodeInvalidArgument)
	}
}

func TestReportFilename(t *testing.T) {
	name := reportFilename("", "pdf")
	if !strings.HasPrefix(name, "traffic_report_") || !strings.HasSuffix(name, ".pdf") {
		t.Errorf("filename = %v", name)
	}

	withRun := reportFilename("0123456789abcdef", "csv")
	if !strings.Contains(withRun, "01234567") {
		t.Errorf("filename should include run id prefix: %v", withRun)
	}
}

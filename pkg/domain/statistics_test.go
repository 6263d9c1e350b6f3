package domain

import (
	"testing"
)

func TestCalculateCorridorStatistics(t *testing.T) {
	set := SignalSet{
		Distances: []float64{100, 200, 300},
		Speeds:    []float64{10, 20, 30},
		Volumes:   []float64{30, 60, 90},
	}
	greenTimes := CalculateGreenTimes(set, nil)

	stats := CalculateCorridorStatistics(set, greenTimes)

	if stats.SignalCount != 3 {
		t.Errorf("SignalCount = %d, want 3", stats.SignalCount)
	}
	if !FloatEquals(stats.TotalDistance, 600) {
		t.Errorf("TotalDistance = %v, want 600", stats.TotalDistance)
	}
	if !FloatEquals(stats.AverageSpeed, 20) {
		t.Errorf("AverageSpeed = %v, want 20", stats.AverageSpeed)
	}
	if !FloatEquals(stats.TotalVolume, 180) {
		t.Errorf("TotalVolume = %v, want 180", stats.TotalVolume)
	}
	if stats.TotalGreenTime <= 0 {
		t.Errorf("TotalGreenTime = %v, want > 0", stats.TotalGreenTime)
	}
}

func TestCalculateFlowStatistics(t *testing.T) {
	set := SignalSet{
		Distances: []float64{100, 100, 100},
		Speeds:    []float64{10, 10, 10},
		Volumes:   []float64{30, 30, 30},
	}

	result := runSimulation(t, set, []int{1}, []int{2})

	stats := CalculateFlowStatistics(result)

	if !FloatEquals(stats.MinScore, 0) {
		t.Errorf("MinScore = %v, want 0", stats.MinScore)
	}
	if !FloatEquals(stats.MaxScore, 10) {
		t.Errorf("MaxScore = %v, want 10", stats.MaxScore)
	}
	if stats.SmoothSignals != 1 {
		t.Errorf("SmoothSignals = %d, want 1", stats.SmoothSignals)
	}
	if stats.BadSignals != 2 {
		t.Errorf("BadSignals = %d, want 2", stats.BadSignals)
	}
	if stats.ByReason["emergency"] != 1 || stats.ByReason["accident"] != 1 {
		t.Errorf("ByReason = %v", stats.ByReason)
	}
}

func TestCalculateFlowStatisticsEmpty(t *testing.T) {
	stats := CalculateFlowStatistics(&Result{})

	if stats.Rating != 0 || stats.BadSignals != 0 || stats.SmoothSignals != 0 {
		t.Errorf("unexpected stats for empty result: %+v", stats)
	}
}

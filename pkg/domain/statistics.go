package domain

// CorridorStatistics — сводная статистика по коридору сигналов
type CorridorStatistics struct {
	SignalCount    int
	TotalDistance  float64
	TotalGreenTime float64
	AverageSpeed   float64
	TotalVolume    float64
}

// FlowStatistics — сводная статистика по результату симуляции
type FlowStatistics struct {
	Rating        float64
	MinScore      float64
	MaxScore      float64
	SmoothSignals int
	BadSignals    int
	ByReason      map[string]int
}

// CalculateCorridorStatistics вычисляет статистику входного коридора
func CalculateCorridorStatistics(set SignalSet, greenTimes []float64) *CorridorStatistics {
	stats := &CorridorStatistics{
		SignalCount: set.Len(),
	}

	var speedSum float64
	for i := 0; i < set.Len(); i++ {
		stats.TotalDistance += set.Distances[i]
		stats.TotalVolume += set.Volumes[i]
		speedSum += set.Speeds[i]
	}
	for _, gt := range greenTimes {
		stats.TotalGreenTime += gt
	}

	if set.Len() > 0 {
		stats.AverageSpeed = speedSum / float64(set.Len())
	}
	return stats
}

// CalculateFlowStatistics вычисляет статистику результата симуляции
func CalculateFlowStatistics(result *Result) *FlowStatistics {
	stats := &FlowStatistics{
		Rating:   result.Rating,
		ByReason: make(map[string]int),
	}

	for i, score := range result.Flow {
		if i == 0 || score < stats.MinScore {
			stats.MinScore = score
		}
		if score > stats.MaxScore {
			stats.MaxScore = score
		}
		if FloatEquals(score, ScoreSmooth) {
			stats.SmoothSignals++
		}
	}

	stats.BadSignals = len(result.BadScenarios)
	for _, bad := range result.BadScenarios {
		stats.ByReason[bad.Reason.String()]++
	}
	return stats
}

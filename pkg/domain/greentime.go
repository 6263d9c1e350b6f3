package domain

// CalculateGreenTimes вычисляет зелёное время для каждого сигнала коридора.
// Для сигнала берётся максимум из времени проезда (расстояние/скорость) и
// минимального зелёного времени по интенсивности. Нулевая или отрицательная
// скорость — допустимый вырожденный случай: зелёное время 0 и предупреждение,
// без ошибки.
func CalculateGreenTimes(set SignalSet, warn WarnFunc) []float64 {
	if warn == nil {
		warn = nopWarn
	}

	greenTimes := make([]float64, set.Len())
	for i := range greenTimes {
		speed := set.Speeds[i]
		if speed <= 0 {
			warn("speed must be greater than zero, using zero green time",
				"signal", i,
				"distance", set.Distances[i],
			)
			greenTimes[i] = 0
			continue
		}

		travelTime := set.Distances[i] / speed
		volumeGreenTime := set.Volumes[i] * VolumeGreenTimeFactor
		greenTimes[i] = max(travelTime, volumeGreenTime)
	}
	return greenTimes
}

// OptimizeSignals повторно применяет нижнюю границу зелёного времени по
// текущей интенсивности. Гарантирует, что устаревшие зелёные времена не
// окажутся ниже того, что требует трафик. Чистая функция.
func OptimizeSignals(greenTimes, volumes []float64) []float64 {
	optimized := make([]float64, len(greenTimes))
	for i, gt := range greenTimes {
		optimized[i] = max(gt, volumes[i]*VolumeGreenTimeFactor)
	}
	return optimized
}

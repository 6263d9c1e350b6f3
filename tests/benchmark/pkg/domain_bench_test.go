package benchmark

import (
	"fmt"
	"testing"

	"trafficsim/pkg/domain"
)

func BenchmarkCalculateGreenTimes(b *testing.B) {
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("signals_%d", size), func(b *testing.B) {
			set := generateCorridor(size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				domain.CalculateGreenTimes(set, nil)
			}
		})
	}
}

func BenchmarkSimulation_Run(b *testing.B) {
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("signals_%d", size), func(b *testing.B) {
			set := generateCorridor(size)
			greenTimes := domain.CalculateGreenTimes(set, nil)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				domain.NewSimulation(set, greenTimes, domain.Disruptions{}, nil).Run()
			}
		})
	}
}

func BenchmarkSimulation_Run_WithDisruptions(b *testing.B) {
	set := generateCorridor(1000)
	greenTimes := domain.CalculateGreenTimes(set, nil)

	// каждый десятый сигнал с нарушением
	var emergencies, accidents []int
	for i := 0; i < 1000; i += 10 {
		if i%20 == 0 {
			accidents = append(accidents, i)
		} else {
			emergencies = append(emergencies, i)
		}
	}
	disruptions := domain.NewDisruptions(emergencies, accidents)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		domain.NewSimulation(set, greenTimes, disruptions, nil).Run()
	}
}

func BenchmarkOptimizeSignals(b *testing.B) {
	sizes := []int{100, 1000, 10000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("signals_%d", size), func(b *testing.B) {
			greenTimes := make([]float64, size)
			volumes := make([]float64, size)
			for i := range greenTimes {
				greenTimes[i] = float64(i%60) + 0.5
				volumes[i] = float64(10 + i%990)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				domain.OptimizeSignals(greenTimes, volumes)
			}
		})
	}
}

func BenchmarkCalculateFlowStatistics(b *testing.B) {
	set := generateCorridor(1000)
	greenTimes := domain.CalculateGreenTimes(set, nil)
	result := domain.NewSimulation(set, greenTimes, domain.Disruptions{}, nil).Run()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		domain.CalculateFlowStatistics(result)
	}
}

// generateCorridor строит коридор из n сигналов с детерминированными,
// но разнообразными параметрами
func generateCorridor(n int) domain.SignalSet {
	set := domain.SignalSet{
		Distances: make([]float64, n),
		Speeds:    make([]float64, n),
		Volumes:   make([]float64, n),
	}
	for i := 0; i < n; i++ {
		set.Distances[i] = float64(50 + i%450)
		set.Speeds[i] = float64(5 + i%55)
		set.Volumes[i] = float64(10 + i%990)
	}
	return set
}

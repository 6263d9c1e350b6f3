package benchmark

import (
	"fmt"
	"testing"

	"trafficsim/pkg/cache"
	"trafficsim/pkg/domain"
)

func BenchmarkCorridorHash(b *testing.B) {
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		set := generateCorridor(size)
		b.Run(fmt.Sprintf("signals_%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				cache.CorridorHash(set, domain.Disruptions{})
			}
		})
	}
}

func BenchmarkCorridorHash_WithDisruptions(b *testing.B) {
	set := generateCorridor(1000)

	var emergencies, accidents []int
	for i := 0; i < 1000; i += 20 {
		emergencies = append(emergencies, i)
		accidents = append(accidents, i+1)
	}
	disruptions := domain.NewDisruptions(emergencies, accidents)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.CorridorHash(set, disruptions)
	}
}

func BenchmarkQuickHash(b *testing.B) {
	sizes := []int{64, 256, 1024, 4096, 16384}

	for _, size := range sizes {
		data := make([]byte, size)
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				cache.QuickHash(data)
			}
		})
	}
}

func BenchmarkShortHash(b *testing.B) {
	data := make([]byte, 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.ShortHash(data)
	}
}

func BenchmarkBuildSimulationKey(b *testing.B) {
	corridorHash := "abc123def456"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.BuildSimulationKey(corridorHash)
	}
}

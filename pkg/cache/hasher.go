package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"trafficsim/pkg/domain"
)

// CorridorHash вычисляет хеш коридора для использования как ключ кэша.
// Хеш детерминирован: одинаковые коридоры с одинаковыми сбоями дают
// одинаковый ключ независимо от порядка индексов в списках сбоев.
func CorridorHash(set domain.SignalSet, disruptions domain.Disruptions) string {
	data := corridorToCanonical(set, disruptions)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

// corridorToCanonical создаёт детерминированное представление коридора
func corridorToCanonical(set domain.SignalSet, disruptions domain.Disruptions) []byte {
	var result []byte

	result = append(result, []byte(fmt.Sprintf("n:%d;", set.Len()))...)

	for i := 0; i < set.Len(); i++ {
		result = append(result, []byte(fmt.Sprintf("s:%d:%.6f:%.6f:%.6f;",
			i, set.Distances[i], set.Speeds[i], set.Volumes[i]))...)
	}

	// Индексы сбоев сортируются для детерминизма
	emergencies := disruptions.EmergencyIndexes()
	sort.Ints(emergencies)
	for _, idx := range emergencies {
		result = append(result, []byte(fmt.Sprintf("e:%d;", idx))...)
	}

	accidents := disruptions.AccidentIndexes()
	sort.Ints(accidents)
	for _, idx := range accidents {
		result = append(result, []byte(fmt.Sprintf("a:%d;", idx))...)
	}

	return result
}

// BuildSimulationKey строит ключ кэша для результата симуляции
func BuildSimulationKey(corridorHash string) string {
	return fmt.Sprintf("sim:%s", corridorHash)
}

// QuickHash быстрый хеш для произвольных данных
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash короткий хеш (16 символов)
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

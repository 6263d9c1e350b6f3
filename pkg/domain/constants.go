package domain

import "math"

// Математические константы
const (
	Epsilon = 1e-9
)

// VolumeGreenTimeFactor переводит интенсивность (машин/час) в минимальное
// зелёное время: 2 секунды на машину, нормированные к минутному окну
// (2/3600*60 = 1/30 секунды на единицу интенсивности).
const VolumeGreenTimeFactor = 2.0 / 3600.0 * 60.0

// Шкала оценки потока
const (
	// ScoreBlocked — поток полностью перекрыт (авария, нулевая скорость).
	ScoreBlocked = 0.0
	// ScoreReduced — поток снижен из-за спецтранспорта.
	ScoreReduced = 5.0
	// ScoreSmooth — время проезда укладывается в зелёное окно.
	ScoreSmooth = 10.0
	// ScoreFloor — нижняя граница оценки при штрафе.
	ScoreFloor = 1.0
	// MaxPenalty — максимальный штраф за превышение зелёного окна.
	MaxPenalty = 9.0
	// LowFlowThreshold — оценки ниже порога попадают в список проблемных.
	LowFlowThreshold = 5.0
)

// FloatEquals сравнивает два float64 с учётом Epsilon
func FloatEquals(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// IsZero проверяет, равно ли значение нулю
func IsZero(v float64) bool {
	return math.Abs(v) < Epsilon
}

// IsPositive проверяет, положительно ли значение
func IsPositive(v float64) bool {
	return v > Epsilon
}

package domain

// Simulation — один статический проход оценки качества потока по коридору.
// Никакого состояния между запусками не сохраняется; сигналы оцениваются
// независимо друг от друга.
type Simulation struct {
	set         SignalSet
	greenTimes  []float64
	disruptions Disruptions
	warn        WarnFunc
}

// NewSimulation создаёт проход симуляции. Входные массивы считаются
// провалидированными вызывающей стороной (одинаковая длина, индексы нарушений
// в диапазоне). warn может быть nil.
func NewSimulation(set SignalSet, greenTimes []float64, disruptions Disruptions, warn WarnFunc) *Simulation {
	if warn == nil {
		warn = nopWarn
	}
	return &Simulation{
		set:         set,
		greenTimes:  greenTimes,
		disruptions: disruptions,
		warn:        warn,
	}
}

// Result — результат прохода симуляции
type Result struct {
	// GreenTimes — исходные зелёные времена, с которыми запускался проход.
	GreenTimes []float64
	// OptimizedGreenTimes — зелёные времена после применения нижней границы
	// по интенсивности.
	OptimizedGreenTimes []float64
	// Flow — оценка потока каждого сигнала в диапазоне [0, 10].
	Flow []float64
	// BadScenarios — проблемные сигналы в порядке следования по коридору.
	BadScenarios []BadScenario
	// Rating — среднее арифметическое оценок, 0 для пустого коридора.
	Rating float64
}

// Run выполняет проход: оптимизация зелёных времён, пооценочная классификация
// сигналов, агрегатный рейтинг.
func (s *Simulation) Run() *Result {
	optimized := OptimizeSignals(s.greenTimes, s.set.Volumes)
	n := s.set.Len()

	result := &Result{
		GreenTimes:          s.greenTimes,
		OptimizedGreenTimes: optimized,
		Flow:                make([]float64, 0, n),
	}

	var total float64
	for i := 0; i < n; i++ {
		score, reason := s.classify(i, optimized[i])
		result.Flow = append(result.Flow, score)
		total += score

		if reason != ReasonNone {
			result.BadScenarios = append(result.BadScenarios, BadScenario{
				Signal: i,
				Reason: reason,
				Score:  score,
			})
		}
	}

	if n > 0 {
		result.Rating = total / float64(n)
	}
	return result
}

// classify применяет правило приоритетов к одному сигналу:
// авария > спецтранспорт > нулевая скорость > обычная оценка.
// Возвращает оценку потока и причину для списка проблемных сигналов
// (ReasonNone, если сигнал туда не попадает).
func (s *Simulation) classify(signal int, greenTime float64) (float64, Reason) {
	switch {
	case s.disruptions.HasAccident(signal):
		return ScoreBlocked, ReasonAccident
	case s.disruptions.HasEmergency(signal):
		return ScoreReduced, ReasonEmergency
	case s.set.Speeds[signal] == 0:
		s.warn("speed cannot be zero", "signal", signal)
		return ScoreBlocked, ReasonZeroSpeed
	}

	travelTime := s.set.Distances[signal] / s.set.Speeds[signal]
	if travelTime <= greenTime {
		return ScoreSmooth, ReasonNone
	}

	// Штраф пропорционален относительному превышению зелёного окна,
	// ограничен сверху так, что оценка не падает ниже 1.
	excess := travelTime - greenTime
	penalty := min(MaxPenalty, excess/greenTime*MaxPenalty)
	score := max(ScoreFloor, ScoreSmooth-penalty)

	if score < LowFlowThreshold {
		return score, ReasonLowFlow
	}
	return score, ReasonNone
}

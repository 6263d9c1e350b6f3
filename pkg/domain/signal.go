package domain

import "fmt"

// SignalSet описывает коридор из N сигналов: расстояния между сигналами,
// скорости транспорта и интенсивности движения. Все три последовательности
// имеют одинаковую длину; индекс сигнала — позиция в массивах.
type SignalSet struct {
	Distances []float64
	Speeds    []float64
	Volumes   []float64
}

// Len возвращает количество сигналов в коридоре
func (s SignalSet) Len() int {
	return len(s.Distances)
}

// Consistent проверяет, что все три последовательности одной длины
func (s SignalSet) Consistent() bool {
	return len(s.Distances) == len(s.Speeds) && len(s.Speeds) == len(s.Volumes)
}

// Disruptions — множества сигналов с нарушениями движения. Авария имеет
// приоритет над спецтранспортом, если сигнал попал в оба множества.
type Disruptions struct {
	emergencies map[int]struct{}
	accidents   map[int]struct{}
}

// NewDisruptions создаёт множества нарушений из списков индексов
func NewDisruptions(emergencies, accidents []int) Disruptions {
	d := Disruptions{
		emergencies: make(map[int]struct{}, len(emergencies)),
		accidents:   make(map[int]struct{}, len(accidents)),
	}
	for _, i := range emergencies {
		d.emergencies[i] = struct{}{}
	}
	for _, i := range accidents {
		d.accidents[i] = struct{}{}
	}
	return d
}

// HasAccident проверяет, есть ли авария на сигнале
func (d Disruptions) HasAccident(signal int) bool {
	_, ok := d.accidents[signal]
	return ok
}

// HasEmergency проверяет, есть ли спецтранспорт на сигнале
func (d Disruptions) HasEmergency(signal int) bool {
	_, ok := d.emergencies[signal]
	return ok
}

// AccidentCount возвращает количество сигналов с авариями
func (d Disruptions) AccidentCount() int {
	return len(d.accidents)
}

// EmergencyCount возвращает количество сигналов со спецтранспортом
func (d Disruptions) EmergencyCount() int {
	return len(d.emergencies)
}

// AccidentIndexes возвращает индексы сигналов с авариями (порядок не определён)
func (d Disruptions) AccidentIndexes() []int {
	indexes := make([]int, 0, len(d.accidents))
	for i := range d.accidents {
		indexes = append(indexes, i)
	}
	return indexes
}

// EmergencyIndexes возвращает индексы сигналов со спецтранспортом (порядок не определён)
func (d Disruptions) EmergencyIndexes() []int {
	indexes := make([]int, 0, len(d.emergencies))
	for i := range d.emergencies {
		indexes = append(indexes, i)
	}
	return indexes
}

// Reason — причина, по которой сигнал попал в список проблемных
type Reason int

const (
	ReasonNone Reason = iota
	ReasonAccident
	ReasonEmergency
	ReasonZeroSpeed
	ReasonLowFlow
)

// String возвращает строковое представление причины
func (r Reason) String() string {
	switch r {
	case ReasonAccident:
		return "accident"
	case ReasonEmergency:
		return "emergency"
	case ReasonZeroSpeed:
		return "zero_speed"
	case ReasonLowFlow:
		return "low_flow"
	default:
		return "none"
	}
}

// BadScenario — проблемный сигнал с причиной и итоговой оценкой
type BadScenario struct {
	Signal int
	Reason Reason
	Score  float64
}

// Label возвращает отображаемую метку сценария
func (b BadScenario) Label() string {
	switch b.Reason {
	case ReasonAccident:
		return "Accident"
	case ReasonEmergency:
		return "Emergency"
	case ReasonZeroSpeed:
		return "Zero Speed"
	case ReasonLowFlow:
		return fmt.Sprintf("Low flow (Rating: %.2f)", b.Score)
	default:
		return ""
	}
}

// WarnFunc — приёмник нефатальных предупреждений ядра (нулевая скорость).
// Ядро не пишет в лог напрямую; вызывающая сторона подставляет свой логгер.
type WarnFunc func(msg string, args ...any)

func nopWarn(string, ...any) {}

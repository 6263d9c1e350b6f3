// services/simulator-svc/internal/validators/corridor.go
package validators

import (
	"fmt"
	"math"

	pkgerrors "trafficsim/pkg/apperror"
)

// ValidationError — одна ошибка валидации входных данных
type ValidationError struct {
	Field   string
	Message string
	Code    string
}

// CorridorInput — проверяемые данные коридора. Ядро симуляции предполагает
// уже провалидированный вход, поэтому вся таксономия ошибок живёт здесь.
type CorridorInput struct {
	Distances   []float64
	Speeds      []float64
	Volumes     []float64
	Emergencies []int
	Accidents   []int
}

// ValidateCorridor проверяет структуру коридора: непустота, согласованность
// длин, конечность значений, неотрицательность расстояний и интенсивностей,
// диапазон индексов нарушений, лимит размера. Нулевая скорость ошибкой не
// считается — это вырожденный случай с предупреждением на уровне ядра.
func ValidateCorridor(in *CorridorInput, maxSignals int) []ValidationError {
	var errors []ValidationError

	if in == nil {
		return append(errors, ValidationError{
			Field:   "corridor",
			Message: "Коридор не может быть nil",
			Code:    string(pkgerrors.CodeNilInput),
		})
	}

	n := len(in.Distances)
	if n == 0 && len(in.Speeds) == 0 && len(in.Volumes) == 0 {
		return append(errors, ValidationError{
			Field:   "corridor",
			Message: "Коридор пуст",
			Code:    string(pkgerrors.CodeEmptyCorridor),
		})
	}

	if len(in.Speeds) != n {
		errors = append(errors, ValidationError{
			Field:   "speeds",
			Message: fmt.Sprintf("Ожидалось %d значений, получено %d", n, len(in.Speeds)),
			Code:    string(pkgerrors.CodeMismatchedLengths),
		})
	}
	if len(in.Volumes) != n {
		errors = append(errors, ValidationError{
			Field:   "volumes",
			Message: fmt.Sprintf("Ожидалось %d значений, получено %d", n, len(in.Volumes)),
			Code:    string(pkgerrors.CodeMismatchedLengths),
		})
	}

	// Дальнейшие проверки по индексам имеют смысл только при согласованных длинах
	if len(errors) > 0 {
		return errors
	}

	if maxSignals > 0 && n > maxSignals {
		errors = append(errors, ValidationError{
			Field:   "corridor",
			Message: fmt.Sprintf("Слишком большой коридор: %d сигналов (максимум %d)", n, maxSignals),
			Code:    string(pkgerrors.CodeCorridorTooLarge),
		})
	}

	errors = append(errors, validateValues("distances", in.Distances, true)...)
	errors = append(errors, validateValues("speeds", in.Speeds, false)...)
	errors = append(errors, validateValues("volumes", in.Volumes, true)...)

	errors = append(errors, validateIndexes("emergencies", in.Emergencies, n)...)
	errors = append(errors, validateIndexes("accidents", in.Accidents, n)...)

	return errors
}

// ValidateGreenTimes проверяет зелёные времена, переданные вызывающей
// стороной вместо расчётных.
func ValidateGreenTimes(greenTimes []float64, signalCount int) []ValidationError {
	var errors []ValidationError

	if len(greenTimes) != signalCount {
		return append(errors, ValidationError{
			Field:   "green_times",
			Message: fmt.Sprintf("Ожидалось %d значений, получено %d", signalCount, len(greenTimes)),
			Code:    string(pkgerrors.CodeMismatchedLengths),
		})
	}

	return validateValues("green_times", greenTimes, true)
}

// ValidatePagination проверяет параметры списочных запросов
func ValidatePagination(limit, offset int) []ValidationError {
	var errors []ValidationError

	if limit < 0 {
		errors = append(errors, ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("Лимит не может быть отрицательным: %d", limit),
			Code:    string(pkgerrors.CodeInvalidArgument),
		})
	}
	if offset < 0 {
		errors = append(errors, ValidationError{
			Field:   "offset",
			Message: fmt.Sprintf("Смещение не может быть отрицательным: %d", offset),
			Code:    string(pkgerrors.CodeInvalidArgument),
		})
	}

	return errors
}

// validateValues проверяет конечность значений и, опционально,
// неотрицательность. Скорости могут быть любыми конечными числами.
func validateValues(field string, values []float64, nonNegative bool) []ValidationError {
	var errors []ValidationError

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: fmt.Sprintf("Значение не является конечным числом: %v", v),
				Code:    string(pkgerrors.CodeNonNumeric),
			})
			continue
		}
		if nonNegative && v < 0 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: fmt.Sprintf("Значение не может быть отрицательным: %v", v),
				Code:    string(pkgerrors.CodeNegativeValue),
			})
		}
	}

	return errors
}

// validateIndexes проверяет, что индексы нарушений попадают в [0, n)
func validateIndexes(field string, indexes []int, n int) []ValidationError {
	var errors []ValidationError

	for i, idx := range indexes {
		if idx < 0 || idx >= n {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: fmt.Sprintf("Индекс сигнала вне диапазона [0, %d): %d", n, idx),
				Code:    string(pkgerrors.CodeIndexOutOfRange),
			})
		}
	}

	return errors
}

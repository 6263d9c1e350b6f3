// Package input собирает данные коридора из интерактивного источника.
// Ядро симуляции не зависит от канала ввода: Provider отдаёт уже
// провалидированные массивы и множества индексов.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"trafficsim/pkg/domain"
)

// Provider — источник данных коридора
type Provider interface {
	// Corridor возвращает провалидированный коридор и множества нарушений
	Corridor() (domain.SignalSet, domain.Disruptions, error)
}

// ConsolePrompter собирает данные коридора через текстовые подсказки
// с повтором при некорректном вводе.
type ConsolePrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewConsolePrompter создаёт prompter поверх произвольных потоков
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Corridor implements Provider
func (p *ConsolePrompter) Corridor() (domain.SignalSet, domain.Disruptions, error) {
	var set domain.SignalSet

	n, err := p.readSignalCount()
	if err != nil {
		return set, domain.Disruptions{}, err
	}

	set.Distances, err = p.readValueList(fmt.Sprintf("Enter distances between %d signals (space-separated):", n), n)
	if err != nil {
		return set, domain.Disruptions{}, err
	}

	set.Speeds, err = p.readValueList(fmt.Sprintf("Enter vehicle speeds for %d signals (space-separated):", n), n)
	if err != nil {
		return set, domain.Disruptions{}, err
	}

	set.Volumes, err = p.readValueList(fmt.Sprintf("Enter traffic volumes at %d signals (space-separated):", n), n)
	if err != nil {
		return set, domain.Disruptions{}, err
	}

	emergencies, err := p.readIndexList("Enter indices of signals with emergencies (space-separated) or press Enter to skip:", n)
	if err != nil {
		return set, domain.Disruptions{}, err
	}

	accidents, err := p.readIndexList("Enter indices of signals with accidents (space-separated) or press Enter to skip:", n)
	if err != nil {
		return set, domain.Disruptions{}, err
	}

	return set, domain.NewDisruptions(emergencies, accidents), nil
}

// readSignalCount запрашивает количество сигналов с повтором при ошибке
func (p *ConsolePrompter) readSignalCount() (int, error) {
	for {
		fmt.Fprint(p.out, "Enter the number of signals: ")

		line, err := p.readLine()
		if err != nil {
			return 0, err
		}

		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			p.retry(fmt.Errorf("number of signals must be an integer"))
			continue
		}
		if n <= 0 {
			p.retry(fmt.Errorf("number of signals must be positive"))
			continue
		}

		return n, nil
	}
}

// readValueList запрашивает список из n чисел с повтором при ошибке
func (p *ConsolePrompter) readValueList(prompt string, n int) ([]float64, error) {
	for {
		fmt.Fprintln(p.out, prompt)

		line, err := p.readLine()
		if err != nil {
			return nil, err
		}

		values, parseErr := parseValues(line, n)
		if parseErr != nil {
			p.retry(parseErr)
			continue
		}

		return values, nil
	}
}

// readIndexList запрашивает список индексов; пустая строка — пропуск
func (p *ConsolePrompter) readIndexList(prompt string, n int) ([]int, error) {
	for {
		fmt.Fprintln(p.out, prompt)

		line, err := p.readLine()
		if err != nil {
			return nil, err
		}

		indexes, parseErr := parseIndexes(line, n)
		if parseErr != nil {
			p.retry(parseErr)
			continue
		}

		return indexes, nil
	}
}

func (p *ConsolePrompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return p.scanner.Text(), nil
}

func (p *ConsolePrompter) retry(err error) {
	fmt.Fprintf(p.out, "Input error: %v. Please try again.\n", err)
}

// parseValues парсит ровно n чисел из строки
func parseValues(line string, n int) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d values, but got %d", n, len(fields))
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a number", f)
		}
		values[i] = v
	}
	return values, nil
}

// parseIndexes парсит индексы сигналов и проверяет диапазон [0, n)
func parseIndexes(line string, n int) ([]int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	fields := strings.Fields(line)
	indexes := make([]int, len(fields))
	for i, f := range fields {
		idx, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("index %q is not an integer", f)
		}
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("indices must be within the range of signals")
		}
		indexes[i] = idx
	}
	return indexes, nil
}

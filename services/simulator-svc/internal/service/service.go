// services/simulator-svc/internal/service/service.go
package service

import (
	"fmt"
	"strings"

	pkgerrors "trafficsim/pkg/apperror"
	"trafficsim/pkg/cache"
	"trafficsim/pkg/config"
	"trafficsim/pkg/domain"
	"trafficsim/pkg/simulatorv1"
	"trafficsim/services/simulator-svc/internal/repository"
	"trafficsim/services/simulator-svc/internal/validators"
)

// SimulatorService реализация ConnectRPC сервиса симуляции коридора.
// Репозиторий и кэш опциональны: при nil соответствующие возможности
// (история запусков, кэширование) отключены.
type SimulatorService struct {
	cfg      *config.Config
	repo     repository.RunRepository
	simCache *cache.SimulationCache
	version  string
}

// NewSimulatorService создаёт новый сервис
func NewSimulatorService(
	cfg *config.Config,
	repo repository.RunRepository,
	simCache *cache.SimulationCache,
) *SimulatorService {
	return &SimulatorService{
		cfg:      cfg,
		repo:     repo,
		simCache: simCache,
		version:  cfg.App.Version,
	}
}

// corridorToDomain конвертирует wire-представление коридора в доменные типы
func corridorToDomain(c *simulatorv1.Corridor) (domain.SignalSet, domain.Disruptions) {
	set := domain.SignalSet{
		Distances: c.Distances,
		Speeds:    c.Speeds,
		Volumes:   c.Volumes,
	}
	return set, domain.NewDisruptions(c.Emergencies, c.Accidents)
}

// corridorInput конвертирует wire-представление в проверяемый вход валидатора
func corridorInput(c *simulatorv1.Corridor) *validators.CorridorInput {
	if c == nil {
		return nil
	}
	return &validators.CorridorInput{
		Distances:   c.Distances,
		Speeds:      c.Speeds,
		Volumes:     c.Volumes,
		Emergencies: c.Emergencies,
		Accidents:   c.Accidents,
	}
}

// validationError конвертирует список ошибок валидации в connect ошибку.
// Первая ошибка задаёт код и сообщение, полный список уходит в details.
func validationError(errs []validators.ValidationError) error {
	first := errs[0]
	appErr := pkgerrors.NewWithField(pkgerrors.ErrorCode(first.Code), first.Message, first.Field)
	appErr.WithDetails("error_count", len(errs))
	return pkgerrors.ToConnect(appErr)
}

// formatWarning превращает slog-подобную пару msg+args в одну строку
// для wire-ответа
func formatWarning(msg string, args ...any) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	return b.String()
}

// toBadScenarios конвертирует доменные проблемные сигналы в wire-представление
func toBadScenarios(scenarios []domain.BadScenario) []simulatorv1.BadScenarioInfo {
	if len(scenarios) == 0 {
		return nil
	}
	infos := make([]simulatorv1.BadScenarioInfo, 0, len(scenarios))
	for _, b := range scenarios {
		infos = append(infos, simulatorv1.BadScenarioInfo{
			Signal: b.Signal,
			Reason: b.Reason.String(),
			Label:  b.Label(),
			Score:  b.Score,
		})
	}
	return infos
}

// labelFromReason восстанавливает отображаемую метку по строковой причине.
// Нужен для кэшированных результатов, где доменный тип Reason уже потерян.
func labelFromReason(reason string, score float64) string {
	switch reason {
	case "accident":
		return "Accident"
	case "emergency":
		return "Emergency"
	case "zero_speed":
		return "Zero Speed"
	case "low_flow":
		return fmt.Sprintf("Low flow (Rating: %.2f)", score)
	default:
		return ""
	}
}

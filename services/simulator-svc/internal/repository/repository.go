package repository

import (
	"context"
	"embed"
	"errors"
	"time"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations возвращает встроенные SQL миграции и их каталог
func Migrations() (embed.FS, string) {
	return migrationsFS, "migrations"
}

// Стандартные ошибки
var (
	ErrRunNotFound = errors.New("run not found")
)

// Run модель сохранённого запуска симуляции
type Run struct {
	ID                string
	Name              string
	SignalCount       int
	Rating            float64
	BadScenarioCount  int
	WarningCount      int
	ComputationTimeMs float64
	RequestData       []byte // JSON коридора
	ResponseData      []byte // JSON результата
	CreatedAt         time.Time
}

// RunSummary краткая информация о запуске
type RunSummary struct {
	ID               string
	Name             string
	SignalCount      int
	Rating           float64
	BadScenarioCount int
	CreatedAt        time.Time
}

// ListFilter фильтры для списка запусков
type ListFilter struct {
	MinRating *float64
	MaxRating *float64
	StartTime *time.Time
	EndTime   *time.Time
}

// SortOrder порядок сортировки
type SortOrder string

const (
	SortByCreatedDesc SortOrder = "created_desc"
	SortByCreatedAsc  SortOrder = "created_asc"
	SortByRatingDesc  SortOrder = "rating_desc"
	SortByRatingAsc   SortOrder = "rating_asc"
)

// ListOptions опции для списка
type ListOptions struct {
	Limit  int
	Offset int
	Filter *ListFilter
	Sort   SortOrder
}

// RunRepository интерфейс репозитория запусков симуляции
type RunRepository interface {
	Create(ctx context.Context, run *Run) error
	GetByID(ctx context.Context, id string) (*Run, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts *ListOptions) ([]*RunSummary, int64, error)
}

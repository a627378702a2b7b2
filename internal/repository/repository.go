package repository

import (
	"context"
	"errors"

	"evacsim/pkg/domain"
)

// Стандартные ошибки
var (
	ErrNoSegments = errors.New("no road segments loaded")
)

// NetworkRepository интерфейс доступа к дорожной сети
type NetworkRepository interface {
	// Сегменты дорог
	ListSegments(ctx context.Context) ([]domain.RoadSegment, error)
	CountSegments(ctx context.Context) (int64, error)
	ReplaceSegments(ctx context.Context, segments []domain.RoadSegment) error

	// Агломерации
	ListMetroAreas(ctx context.Context) ([]domain.MetroArea, error)
	UpsertMetroAreas(ctx context.Context, areas []domain.MetroArea) error
}

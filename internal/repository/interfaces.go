package repository

import (
	"context"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/domain"
)

type UserRepo interface {
	FindOrCreate(ctx context.Context, name string, createdAt time.Time) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type SessionRepo interface {
	Insert(ctx context.Context, s *domain.WorkSession) error
	GetByID(ctx context.Context, id string) (*domain.WorkSession, error)
	Active(ctx context.Context, userID string) (*domain.WorkSession, error)
	Finish(ctx context.Context, id string, end time.Time, minutes int) error
	ListFinished(ctx context.Context, userID string) ([]*domain.WorkSession, error)
}

type AdjustmentRepo interface {
	Insert(ctx context.Context, a *domain.Adjustment) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Adjustment, error)
}

type LogRepo interface {
	Append(ctx context.Context, e *domain.LogEntry) error
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.LogEntry, error)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/billing"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/clock"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/db"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/domain"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// detailTimeLayout renders timestamps inside human-readable log details.
const detailTimeLayout = "2006-01-02 15:04:05"

type trackerService struct {
	users    repository.UserRepo
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	clk      clock.Clock
	loc      *time.Location
	rev      *Revision
	allowed  []string
	logger   zerolog.Logger
}

// NewTrackerService creates the session controller. An empty allowed list
// admits any name.
func NewTrackerService(
	users repository.UserRepo,
	sessions repository.SessionRepo,
	uow db.UnitOfWork,
	clk clock.Clock,
	loc *time.Location,
	rev *Revision,
	allowed []string,
	logger zerolog.Logger,
) TrackerService {
	return &trackerService{
		users:    users,
		sessions: sessions,
		uow:      uow,
		clk:      clk,
		loc:      loc,
		rev:      rev,
		allowed:  allowed,
		logger:   logger,
	}
}

func (s *trackerService) Login(ctx context.Context, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("user name must not be empty: %w", ErrValidation)
	}
	if len(s.allowed) > 0 && !s.isAllowed(name) {
		return nil, fmt.Errorf("name %q: %w", name, ErrNotAllowed)
	}

	u, err := s.users.FindOrCreate(ctx, name, s.clk.Now())
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("user", u.Name).Str("user_id", u.ID).Msg("logged in")
	return u, nil
}

func (s *trackerService) Start(ctx context.Context, userID string) (*domain.WorkSession, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	now := s.clk.Now()
	session := &domain.WorkSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartedAt: now,
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txLogs := repository.NewSQLiteLogRepo(tx)

		if err := txSessions.Insert(ctx, session); err != nil {
			return err
		}
		return txLogs.Append(ctx, &domain.LogEntry{
			ID:        uuid.New().String(),
			UserID:    userID,
			Kind:      domain.LogStart,
			Timestamp: now,
			Details:   fmt.Sprintf("Started at %s", now.In(s.loc).Format(detailTimeLayout)),
		})
	})
	if err != nil {
		return nil, err
	}

	s.rev.Bump()
	s.logger.Info().Str("user_id", userID).Time("start", now).Msg("session started")
	return session, nil
}

func (s *trackerService) Stop(ctx context.Context, userID string) (*domain.WorkSession, error) {
	now := s.clk.Now()
	var finished *domain.WorkSession

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txLogs := repository.NewSQLiteLogRepo(tx)

		active, err := txSessions.Active(ctx, userID)
		if err != nil {
			return err
		}

		if now.Before(active.StartedAt) {
			// Clock skew: the stop instant precedes the recorded start.
			// Billed duration clamps rather than failing the stop.
			s.logger.Warn().
				Str("session_id", active.ID).
				Time("start", active.StartedAt).
				Time("end", now).
				Msg("session end precedes start, clamping duration")
		}

		minutes := billing.StopMinutes(active.StartedAt, now)
		if err := txSessions.Finish(ctx, active.ID, now, minutes); err != nil {
			return err
		}

		elapsed := billing.ElapsedSeconds(active.StartedAt, now)
		if err := txLogs.Append(ctx, &domain.LogEntry{
			ID:        uuid.New().String(),
			UserID:    userID,
			Kind:      domain.LogStop,
			Minutes:   &minutes,
			Timestamp: now,
			Details: fmt.Sprintf("Stopped at %s after %s",
				now.In(s.loc).Format(detailTimeLayout), billing.FormatHMS(elapsed)),
		}); err != nil {
			return err
		}

		end := now
		finished = &domain.WorkSession{
			ID:        active.ID,
			UserID:    active.UserID,
			StartedAt: active.StartedAt,
			EndedAt:   &end,
			Minutes:   &minutes,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.rev.Bump()
	s.logger.Info().
		Str("user_id", userID).
		Str("session_id", finished.ID).
		Int("minutes", *finished.Minutes).
		Msg("session stopped")
	return finished, nil
}

func (s *trackerService) Adjust(ctx context.Context, userID string, deltaMinutes int, reason string) (*domain.Adjustment, error) {
	if deltaMinutes == 0 {
		return nil, fmt.Errorf("adjustment minutes must not be zero: %w", ErrValidation)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	now := s.clk.Now()
	reason = strings.TrimSpace(reason)
	adjustment := &domain.Adjustment{
		ID:        uuid.New().String(),
		UserID:    userID,
		Minutes:   deltaMinutes,
		Reason:    reason,
		CreatedAt: now,
	}

	details := reason
	if details == "" {
		details = "Manual adjustment"
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAdjustments := repository.NewSQLiteAdjustmentRepo(tx)
		txLogs := repository.NewSQLiteLogRepo(tx)

		if err := txAdjustments.Insert(ctx, adjustment); err != nil {
			return err
		}
		return txLogs.Append(ctx, &domain.LogEntry{
			ID:        uuid.New().String(),
			UserID:    userID,
			Kind:      domain.LogAdjust,
			Minutes:   &adjustment.Minutes,
			Timestamp: now,
			Details:   details,
		})
	})
	if err != nil {
		return nil, err
	}

	s.rev.Bump()
	s.logger.Info().
		Str("user_id", userID).
		Int("minutes", deltaMinutes).
		Msg("adjustment booked")
	return adjustment, nil
}

func (s *trackerService) isAllowed(name string) bool {
	for _, a := range s.allowed {
		if a == name {
			return true
		}
	}
	return false
}

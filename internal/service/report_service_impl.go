package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/clock"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/domain"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/repository"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultLogLimit caps log queries that pass no explicit limit.
const DefaultLogLimit = 500

// monthCacheSize bounds the totals cache. Stale revisions age out on their
// own as new (user, revision) keys displace them.
const monthCacheSize = 256

type monthCacheKey struct {
	userID   string
	revision int64
}

type reportService struct {
	sessions    repository.SessionRepo
	adjustments repository.AdjustmentRepo
	logs        repository.LogRepo
	clk         clock.Clock
	loc         *time.Location
	rev         *Revision
	cache       *lru.Cache[monthCacheKey, []domain.MonthTotal]
}

// NewReportService creates the aggregator. Month totals are recomputed from
// finished sessions and adjustments on demand, cached per (user, revision).
func NewReportService(
	sessions repository.SessionRepo,
	adjustments repository.AdjustmentRepo,
	logs repository.LogRepo,
	clk clock.Clock,
	loc *time.Location,
	rev *Revision,
) (ReportService, error) {
	cache, err := lru.New[monthCacheKey, []domain.MonthTotal](monthCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating month totals cache: %w", err)
	}
	return &reportService{
		sessions:    sessions,
		adjustments: adjustments,
		logs:        logs,
		clk:         clk,
		loc:         loc,
		rev:         rev,
		cache:       cache,
	}, nil
}

func (s *reportService) ActiveSession(ctx context.Context, userID string) (*domain.WorkSession, error) {
	session, err := s.sessions.Active(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

// MonthTotals buckets finished sessions by their end instant and adjustments
// by their creation instant, both in the display timezone. A session spanning
// midnight on the last day of a month counts entirely toward the month it
// ended in.
func (s *reportService) MonthTotals(ctx context.Context, userID string) ([]domain.MonthTotal, error) {
	key := monthCacheKey{userID: userID, revision: s.rev.Current()}
	if totals, ok := s.cache.Get(key); ok {
		return totals, nil
	}

	sessions, err := s.sessions.ListFinished(ctx, userID)
	if err != nil {
		return nil, err
	}
	adjustments, err := s.adjustments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]int)
	for _, sess := range sessions {
		if sess.EndedAt == nil || sess.Minutes == nil {
			continue
		}
		byMonth[domain.MonthKey(*sess.EndedAt, s.loc)] += *sess.Minutes
	}
	for _, adj := range adjustments {
		byMonth[domain.MonthKey(adj.CreatedAt, s.loc)] += adj.Minutes
	}

	totals := make([]domain.MonthTotal, 0, len(byMonth))
	for month, minutes := range byMonth {
		totals = append(totals, domain.MonthTotal{Month: month, Minutes: minutes})
	}
	// YYYY-MM keys order lexicographically; newest month first.
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Month > totals[j].Month
	})

	s.cache.Add(key, totals)
	return totals, nil
}

func (s *reportService) CurrentMonthMinutes(ctx context.Context, userID string) (int, error) {
	totals, err := s.MonthTotals(ctx, userID)
	if err != nil {
		return 0, err
	}
	current := domain.MonthKey(s.clk.Now(), s.loc)
	for _, t := range totals {
		if t.Month == current {
			return t.Minutes, nil
		}
	}
	return 0, nil
}

func (s *reportService) RecentLogs(ctx context.Context, userID string, limit int) ([]*domain.LogEntry, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	return s.logs.ListRecent(ctx, userID, limit)
}

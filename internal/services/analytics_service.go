package services

import (
	"context"
	"errors"
	"time"

	"github.com/compassionai/compassion/internal/cache"
	"github.com/compassionai/compassion/internal/models"
	pgrepo "github.com/compassionai/compassion/internal/repositories/postgres"
	"github.com/compassionai/compassion/internal/utils"
)

// AnalyticsMode selects which roles feed the series projection.
type AnalyticsMode string

const (
	ModeAllRoles      AnalyticsMode = "all"
	ModeAssistantOnly AnalyticsMode = "assistant"
)

const (
	seriesTimestampLayout = "2006-01-02 15:04"
	seriesCacheTTL        = 30 * time.Second
)

// AnalyticsService computes per-session derived metrics. Queries on unknown
// or empty sessions degrade to empty results, never errors.
type AnalyticsService interface {
	// Latency returns the response_time of the most recent assistant reply,
	// or 0.0 when the session has none.
	Latency(ctx context.Context, sessionID string) (float64, error)
	Series(ctx context.Context, sessionID string, mode AnalyticsMode) (*models.AnalyticsSeries, error)
}

type analyticsService struct {
	interactions pgrepo.InteractionRepo
	cache        cache.Cache // optional
}

func NewAnalyticsService(interactions pgrepo.InteractionRepo, c cache.Cache) AnalyticsService {
	return &analyticsService{interactions: interactions, cache: c}
}

func (s *analyticsService) Latency(ctx context.Context, sessionID string) (float64, error) {
	const op = "AnalyticsService.Latency"

	row, err := s.interactions.LastByRole(ctx, sessionID, models.RoleAssistant)
	if errors.Is(err, utils.ErrNotFound) {
		return 0.0, nil
	}
	if err != nil {
		return 0.0, utils.E(utils.CodeInternal, op, "failed to load last assistant reply", err)
	}
	return row.Metrics.Data().Get(models.MetricResponseTime), nil
}

func (s *analyticsService) Series(ctx context.Context, sessionID string, mode AnalyticsMode) (*models.AnalyticsSeries, error) {
	const op = "AnalyticsService.Series"

	if mode != ModeAssistantOnly {
		mode = ModeAllRoles
	}
	key := seriesCacheKey(sessionID, mode)

	if s.cache != nil {
		var cached models.AnalyticsSeries
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	rows, err := s.interactions.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load session history", err)
	}

	series := models.EmptySeries()
	for _, row := range rows {
		if mode == ModeAssistantOnly && row.Role != models.RoleAssistant {
			continue
		}
		m := row.Metrics.Data()
		series.Timestamps = append(series.Timestamps, row.Timestamp.Format(seriesTimestampLayout))
		series.ResponseTimes = append(series.ResponseTimes, m.Get(models.MetricResponseTime))
		series.ClarityScores = append(series.ClarityScores, m.Get(models.MetricVoiceClarity))
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, series, seriesCacheTTL)
	}
	return series, nil
}

func seriesCacheKey(sessionID string, mode AnalyticsMode) string {
	return "analytics:series:" + sessionID + ":" + string(mode)
}

// seriesCacheKeys lists every cache key an append may invalidate.
func seriesCacheKeys(sessionID string) []string {
	return []string{
		seriesCacheKey(sessionID, ModeAllRoles),
		seriesCacheKey(sessionID, ModeAssistantOnly),
	}
}

package services

import (
	"context"
	"time"

	"github.com/compassionai/compassion/internal/cache"
	"github.com/compassionai/compassion/internal/models"
	"github.com/compassionai/compassion/internal/prompt"
	pgrepo "github.com/compassionai/compassion/internal/repositories/postgres"
	"github.com/compassionai/compassion/internal/utils"

	"gorm.io/datatypes"
)

// ConversationService is the append-only, session-scoped interaction log.
// Records are immutable; there is no update or delete.
type ConversationService interface {
	Append(ctx context.Context, sessionID, role, content string, metrics models.MetricSet) (*models.Interaction, error)
	// EnsureSystemPrompt seeds an empty session with exactly one system-role
	// record. Calling it on a non-empty session is a no-op.
	EnsureSystemPrompt(ctx context.Context, sessionID string) error
	ListBySession(ctx context.Context, sessionID string) ([]models.Interaction, error)
}

type conversationService struct {
	interactions pgrepo.InteractionRepo
	cache        cache.Cache // optional; nil disables analytics invalidation
	locale       string
}

func NewConversationService(interactions pgrepo.InteractionRepo, c cache.Cache, locale string) ConversationService {
	if locale == "" {
		locale = prompt.DefaultLocale
	}
	return &conversationService{interactions: interactions, cache: c, locale: locale}
}

func validRole(role string) bool {
	switch role {
	case models.RoleSystem, models.RoleUser, models.RoleAssistant:
		return true
	}
	return false
}

func (s *conversationService) Append(ctx context.Context, sessionID, role, content string, metrics models.MetricSet) (*models.Interaction, error) {
	const op = "ConversationService.Append"

	if !validRole(role) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "role must be system, user, or assistant", nil)
	}
	if content == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "content is required", nil)
	}

	row := &models.Interaction{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Metrics:   datatypes.NewJSONType(models.DefaultMetrics().Merge(metrics)),
		Timestamp: time.Now().UTC(),
	}

	if err := s.interactions.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist interaction", err)
	}

	s.invalidateAnalytics(ctx, sessionID)
	return row, nil
}

func (s *conversationService) EnsureSystemPrompt(ctx context.Context, sessionID string) error {
	const op = "ConversationService.EnsureSystemPrompt"

	now := time.Now().UTC()
	row := &models.Interaction{
		SessionID: sessionID,
		Role:      models.RoleSystem,
		Content:   prompt.System(now, s.locale),
		Metrics:   datatypes.NewJSONType(models.DefaultMetrics()),
		Timestamp: now,
	}

	inserted, err := s.interactions.InsertIfSessionEmpty(ctx, row)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to bootstrap session", err)
	}
	if inserted {
		s.invalidateAnalytics(ctx, sessionID)
	}
	return nil
}

func (s *conversationService) ListBySession(ctx context.Context, sessionID string) ([]models.Interaction, error) {
	const op = "ConversationService.ListBySession"

	rows, err := s.interactions.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list interactions", err)
	}
	return rows, nil
}

// invalidateAnalytics drops cached series for the session. Best effort: a
// stale entry only survives until its TTL.
func (s *conversationService) invalidateAnalytics(ctx context.Context, sessionID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, seriesCacheKeys(sessionID)...)
}

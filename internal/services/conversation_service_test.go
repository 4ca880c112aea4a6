package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/compassionai/compassion/internal/models"
	"github.com/compassionai/compassion/internal/utils"
)

func TestAppendFillsDefaultMetrics(t *testing.T) {
	svc := NewConversationService(newTestRepo(t), nil, "")
	ctx := context.Background()

	row, err := svc.Append(ctx, "s1", models.RoleUser, "hello", nil)
	require.NoError(t, err)

	m := row.Metrics.Data()
	require.Len(t, m, 3)
	require.Zero(t, m.Get(models.MetricResponseTime))
	require.Zero(t, m.Get(models.MetricVoiceClarity))
	require.Zero(t, m.Get(models.MetricEmotionalValue))
}

func TestAppendMergesCallerMetricsOverDefaults(t *testing.T) {
	svc := NewConversationService(newTestRepo(t), nil, "")
	ctx := context.Background()

	row, err := svc.Append(ctx, "s1", models.RoleAssistant, "hi", models.MetricSet{
		models.MetricResponseTime: 3.4,
	})
	require.NoError(t, err)

	m := row.Metrics.Data()
	require.InDelta(t, 3.4, m.Get(models.MetricResponseTime), 1e-9)
	require.Zero(t, m.Get(models.MetricVoiceClarity))
	require.Zero(t, m.Get(models.MetricEmotionalValue))
}

func TestAppendValidation(t *testing.T) {
	svc := NewConversationService(newTestRepo(t), nil, "")
	ctx := context.Background()

	_, err := svc.Append(ctx, "s1", "moderator", "hello", nil)
	require.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Append(ctx, "s1", models.RoleUser, "", nil)
	require.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestEnsureSystemPromptIdempotent(t *testing.T) {
	svc := NewConversationService(newTestRepo(t), nil, "")
	ctx := context.Background()

	require.NoError(t, svc.EnsureSystemPrompt(ctx, "s1"))
	require.NoError(t, svc.EnsureSystemPrompt(ctx, "s1"))

	rows, err := svc.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, models.RoleSystem, rows[0].Role)
	require.Contains(t, rows[0].Content, "CompassionateAI")
}

func TestEnsureSystemPromptSkipsSeededSession(t *testing.T) {
	svc := NewConversationService(newTestRepo(t), nil, "")
	ctx := context.Background()

	_, err := svc.Append(ctx, "s1", models.RoleUser, "already talking", nil)
	require.NoError(t, err)

	require.NoError(t, svc.EnsureSystemPrompt(ctx, "s1"))

	rows, err := svc.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, models.RoleUser, rows[0].Role)
}

func TestSystemPromptUsesConfiguredLocale(t *testing.T) {
	svc := NewConversationService(newTestRepo(t), nil, "Singapore")
	ctx := context.Background()

	require.NoError(t, svc.EnsureSystemPrompt(ctx, "s1"))

	rows, err := svc.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Contains(t, rows[0].Content, "Singapore")
}

func TestAppendInvalidatesAnalyticsCache(t *testing.T) {
	c := newStubCache()
	svc := NewConversationService(newTestRepo(t), c, "")
	ctx := context.Background()

	_, err := svc.Append(ctx, "s1", models.RoleUser, "hello", nil)
	require.NoError(t, err)

	require.NotEmpty(t, c.deleted)
	for _, key := range c.deleted {
		require.True(t, strings.HasPrefix(key, "analytics:series:s1:"))
	}
}

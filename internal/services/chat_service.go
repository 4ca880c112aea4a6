package services

import (
	"context"
	"strings"
	"time"

	"github.com/compassionai/compassion/internal/models"
	"github.com/compassionai/compassion/internal/providers/llm"
	"github.com/compassionai/compassion/internal/utils"

	"github.com/sirupsen/logrus"
)

// ChatService runs one conversation turn: bootstrap, persist the user
// message, replay history to the model endpoint, persist the reply.
type ChatService interface {
	Turn(ctx context.Context, sessionID, message string) (string, error)
}

type chatService struct {
	convos   ConversationService
	replayer ReplayService
	provider llm.Provider
	log      *logrus.Logger
}

func NewChatService(convos ConversationService, replayer ReplayService, provider llm.Provider, log *logrus.Logger) ChatService {
	if log == nil {
		log = logrus.New()
	}
	return &chatService{convos: convos, replayer: replayer, provider: provider, log: log}
}

func (s *chatService) Turn(ctx context.Context, sessionID, message string) (string, error) {
	const op = "ChatService.Turn"

	if strings.TrimSpace(message) == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}

	// The system record must exist before the first user message so the
	// session always starts with the behavioral directive.
	if err := s.convos.EnsureSystemPrompt(ctx, sessionID); err != nil {
		return "", err
	}

	userRec, err := s.convos.Append(ctx, sessionID, models.RoleUser, message, nil)
	if err != nil {
		return "", err
	}

	history, err := s.replayer.Build(ctx, sessionID)
	if err != nil {
		return "", err
	}

	reply, err := s.provider.Complete(ctx, history)
	if err != nil {
		// The user record stays persisted; the turn fails visibly and the
		// caller decides whether to resubmit.
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"records":    len(history),
		}).WithError(err).Error("model completion failed")
		return "", err
	}

	// Latency is measured against the record that triggered this turn, not
	// re-derived as "most recent user message".
	responseTime := time.Since(userRec.Timestamp).Seconds()

	if _, err := s.convos.Append(ctx, sessionID, models.RoleAssistant, reply, models.MetricSet{
		models.MetricResponseTime: responseTime,
	}); err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"session_id":    sessionID,
		"response_time": responseTime,
	}).Debug("turn completed")

	return reply, nil
}

package services

import (
	"context"
	"strings"

	"github.com/compassionai/compassion/internal/providers/llm"
	pgrepo "github.com/compassionai/compassion/internal/repositories/postgres"
	"github.com/compassionai/compassion/internal/utils"
)

// MaxTransmitRunes bounds the content length of each replayed message. The
// stored record keeps the full text; only the transmitted payload is cut.
const MaxTransmitRunes = 500

// ReplayService reconstructs a session's ordered message history for
// submission to the model endpoint.
type ReplayService interface {
	Build(ctx context.Context, sessionID string) ([]llm.Message, error)
}

type replayService struct {
	interactions pgrepo.InteractionRepo
}

func NewReplayService(interactions pgrepo.InteractionRepo) ReplayService {
	return &replayService{interactions: interactions}
}

func (s *replayService) Build(ctx context.Context, sessionID string) ([]llm.Message, error) {
	const op = "ReplayService.Build"

	rows, err := s.interactions.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load session history", err)
	}

	msgs := make([]llm.Message, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, llm.Message{
			Role:    row.Role,
			Content: sanitizeContent(row.Content),
		})
	}
	return msgs, nil
}

// sanitizeContent truncates to MaxTransmitRunes and strips characters that are
// structurally significant to the wire payload: quotes, backslashes, and
// control characters other than newline and tab.
func sanitizeContent(content string) string {
	runes := []rune(content)
	if len(runes) > MaxTransmitRunes {
		runes = runes[:MaxTransmitRunes]
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\':
			return -1
		case r < 0x20 && r != '\n' && r != '\t':
			return -1
		}
		return r
	}, string(runes))
}

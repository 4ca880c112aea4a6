package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/compassionai/compassion/internal/utils"
)

const (
	DefaultModel   = "@cf/meta/llama-3-8b-instruct"
	defaultTimeout = 15 * time.Second

	// The model occasionally emits this separator before the actual reply.
	separatorToken = "---\n"
)

// WorkersAIConfig carries the endpoint settings explicitly so credentials can
// be rotated and test doubles injected without touching package state.
type WorkersAIConfig struct {
	BaseURL  string // ex: https://api.cloudflare.com/client/v4/accounts/<acct>/ai/run/
	APIToken string
	Model    string
	Timeout  time.Duration
}

// WorkersAI calls the Cloudflare Workers AI text-completion endpoint.
type WorkersAI struct {
	cfg    WorkersAIConfig
	client *http.Client
}

func NewWorkersAI(cfg WorkersAIConfig) *WorkersAI {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	return &WorkersAI{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type completionRequest struct {
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Response string `json:"response"`
	} `json:"result"`
	Errors []string `json:"errors"`
}

func (w *WorkersAI) Complete(ctx context.Context, messages []Message) (string, error) {
	const op = "WorkersAI.Complete"

	body, err := json.Marshal(completionRequest{Messages: messages})
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to encode messages", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.BaseURL+w.cfg.Model, bytes.NewReader(body))
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", utils.E(utils.CodeTimeout, op, "model endpoint timed out", err)
		}
		return "", utils.E(utils.CodeUnavailable, op, "model endpoint unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", utils.E(utils.CodeBadGateway, op, "model endpoint returned status "+strconv.Itoa(resp.StatusCode), nil)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", utils.E(utils.CodeBadGateway, op, "failed to read response body", err)
	}

	var envelope completionResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", utils.E(utils.CodeBadGateway, op, "malformed response envelope", err)
	}
	if !envelope.Success {
		msg := "unknown error"
		if len(envelope.Errors) > 0 {
			msg = envelope.Errors[0]
		}
		return "", utils.E(utils.CodeBadGateway, op, "model endpoint reported failure: "+msg, nil)
	}

	reply := strings.ReplaceAll(envelope.Result.Response, separatorToken, "")
	return strings.TrimSpace(reply), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

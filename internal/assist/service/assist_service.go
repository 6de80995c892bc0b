package service

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/inkwellhq/inkwell/internal/common/constants"
	"github.com/inkwellhq/inkwell/internal/common/logger"
	"github.com/inkwellhq/inkwell/internal/observability/metrics"
)

// CompletionClient is the slice of the OpenAI client the adapter needs.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AssistService is a stateless request/response translator to the external
// completion API: one upstream call per request, no retries, no caching. It
// holds no store references, so it never blocks a store operation.
type AssistService struct {
	client  CompletionClient
	model   string
	timeout time.Duration
	log     *logger.Logger
}

func NewAssistService(client CompletionClient, model string, timeout time.Duration, log *logger.Logger) *AssistService {
	return &AssistService{
		client:  client,
		model:   model,
		timeout: timeout,
		log:     log,
	}
}

type Request struct {
	Content string
	Action  Action
	Tone    string
}

type Result struct {
	Suggestion string
	Action     Action
}

func (s *AssistService) Assist(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Content) == "" {
		metrics.AssistRequestsTotal.WithLabelValues(string(req.Action), "validation_failed").Inc()
		return Result{}, ErrEmptyContent
	}

	if len(req.Content) > constants.AssistContentMaxLength {
		metrics.AssistRequestsTotal.WithLabelValues(string(req.Action), "validation_failed").Inc()
		return Result{}, ErrContentTooLong
	}

	if !knownAction(req.Action) {
		metrics.AssistRequestsTotal.WithLabelValues(string(req.Action), "validation_failed").Inc()
		return Result{}, ErrUnknownAction
	}

	tone := req.Tone
	if tone == "" {
		tone = DefaultTone
	}

	systemPrompt, userPrompt := promptsFor(req.Action, tone, req.Content)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxCompletionTokens: constants.AssistMaxOutputTokens,
	})
	metrics.AssistRequestDurationSeconds.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AssistRequestsTotal.WithLabelValues(string(req.Action), "upstream_error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"action_kind": string(req.Action),
			"action":      "assist_upstream_failed",
		}).Errorf("assistance call failed: %v", err)
		return Result{}, ErrAssistanceFailed.WithCause(err)
	}

	if len(resp.Choices) == 0 {
		metrics.AssistRequestsTotal.WithLabelValues(string(req.Action), "upstream_error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"action_kind": string(req.Action),
			"action":      "assist_empty_response",
		}).Error("assistance call returned no choices")
		return Result{}, ErrAssistanceFailed
	}

	metrics.AssistRequestsTotal.WithLabelValues(string(req.Action), "success").Inc()

	return Result{
		Suggestion: resp.Choices[0].Message.Content,
		Action:     req.Action,
	}, nil
}

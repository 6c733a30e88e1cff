// internal/commands/handler.go
package commands

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	apperrors "idea-generator/internal/common/errors"
	"idea-generator/internal/common/logger"
	"idea-generator/internal/common/metrics"
	"idea-generator/internal/common/observability"
	"idea-generator/internal/extract"
	"idea-generator/internal/llm"
	"idea-generator/internal/models"
	"idea-generator/internal/prompt"
)

const (
	CommandGenerateIdea = "generate_idea"
	CommandTestAPIKey   = "test_api_key"
	CommandGetAPIKey    = "get_api_key"
	CommandSetAPIKey    = "set_api_key"
	CommandDeleteAPIKey = "delete_api_key"
)

type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

type LLMClient interface {
	Complete(ctx context.Context, messages []llm.Message, apiKey string, maxTokens int, model string) (*llm.CompletionResponse, error)
	Probe(ctx context.Context, apiKey string) (bool, error)
}

type CredentialStore interface {
	Get() (string, bool, error)
	Set(value string) error
	Delete() error
}

type IdeaDecoder interface {
	Decode(jsonText string) (*models.Idea, error)
}

// Handler exposes the commands a host shell invokes. It keeps no state
// between calls and may be used concurrently.
type Handler struct {
	config  *Config
	llm     LLMClient
	store   CredentialStore
	decoder IdeaDecoder
	obs     *observability.Observability
	errors  *apperrors.ErrorHandler
	logger  Logger
}

func NewHandler(config *Config, client LLMClient, store CredentialStore, decoder IdeaDecoder, obs *observability.Observability, log Logger) *Handler {
	return &Handler{
		config:  config,
		llm:     client,
		store:   store,
		decoder: decoder,
		obs:     obs,
		errors:  apperrors.NewErrorHandler(log),
		logger:  log,
	}
}

// GenerateIdea runs prompt, completion, extraction and decoding in order and
// stops at the first failure.
func (h *Handler) GenerateIdea(ctx context.Context, category, apiKey string) (*models.Idea, error) {
	var idea *models.Idea
	err := h.run(ctx, CommandGenerateIdea, func(ctx context.Context) error {
		h.logger.Info("generating idea", map[string]interface{}{"category": category})

		messages := []llm.Message{llm.UserMessage(prompt.BuildPrompt(category))}
		resp, err := h.llm.Complete(ctx, messages, apiKey, h.config.MaxTokens, h.config.Model)
		if err != nil {
			return err
		}
		if len(resp.Content) == 0 {
			return apperrors.NewEmptyResponseError()
		}

		idea, err = h.decoder.Decode(extract.JSON(resp.Content[0].Text))
		return err
	}, attribute.String("category", category))

	metrics.IdeasGeneratedTotal.WithLabelValues(generationOutcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	return idea, nil
}

// TestAPIKey reports whether the endpoint accepts apiKey.
func (h *Handler) TestAPIKey(ctx context.Context, apiKey string) (bool, error) {
	var valid bool
	err := h.run(ctx, CommandTestAPIKey, func(ctx context.Context) error {
		var err error
		valid, err = h.llm.Probe(ctx, apiKey)
		return err
	})
	if err != nil {
		return false, err
	}
	h.logger.Info("api key tested", map[string]interface{}{"valid": valid})
	return valid, nil
}

// GetAPIKey returns the stored key and whether one exists.
func (h *Handler) GetAPIKey(ctx context.Context) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := h.run(ctx, CommandGetAPIKey, func(context.Context) error {
		var err error
		value, ok, err = h.store.Get()
		return err
	})
	return value, ok, err
}

// SetAPIKey stores apiKey trimmed; a blank key deletes the stored one.
func (h *Handler) SetAPIKey(ctx context.Context, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return h.DeleteAPIKey(ctx)
	}
	return h.run(ctx, CommandSetAPIKey, func(context.Context) error {
		return h.store.Set(apiKey)
	})
}

// DeleteAPIKey removes the stored key. Removing an absent key succeeds.
func (h *Handler) DeleteAPIKey(ctx context.Context) error {
	return h.run(ctx, CommandDeleteAPIKey, func(context.Context) error {
		return h.store.Delete()
	})
}

// ResolveAPIKey picks the key a host should use: a non-blank explicit key,
// else the stored one, else MISSING_API_KEY.
func (h *Handler) ResolveAPIKey(ctx context.Context, explicit string) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	stored, ok, err := h.GetAPIKey(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperrors.NewMissingAPIKeyError()
	}
	h.logger.Debug("using stored api key", map[string]interface{}{"apiKey": logger.MaskSecret(stored)})
	return stored, nil
}

func (h *Handler) run(ctx context.Context, command string, fn func(context.Context) error, attrs ...attribute.KeyValue) error {
	start := time.Now()
	ctx, span := h.obs.StartSpan(ctx, "commands."+command, attrs...)

	err := fn(ctx)

	observability.EndSpan(span, err)
	status := observability.StatusOK
	if err != nil {
		status = observability.StatusError
		h.errors.Handle(command, err)
	}
	h.obs.RecordCommand(ctx, command, status, time.Since(start))
	return err
}

func generationOutcome(err error) string {
	switch apperrors.CodeOf(err) {
	case "":
		return metrics.OutcomeSuccess
	case apperrors.ErrCodeDecode, apperrors.ErrCodeEmptyResponse:
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeFailure
	}
}

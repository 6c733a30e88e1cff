// internal/llm/client.go
package llm

import (
	"context"
	"encoding/json"
	"time"

	apperrors "idea-generator/internal/common/errors"
	commonhttp "idea-generator/internal/common/http"
	"idea-generator/internal/common/metrics"
)

const (
	OperationComplete = "complete"
	OperationProbe    = "probe"

	headerAPIKey     = "x-api-key"
	headerAPIVersion = "anthropic-version"
)

type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// Client talks to the completion endpoint. It holds no per-call state and is
// safe for concurrent use. Nothing is retried.
type Client struct {
	config *Config
	http   *commonhttp.Client
	logger Logger
}

func NewClient(config *Config, log Logger) *Client {
	return &Client{
		config: config,
		http:   commonhttp.NewClient(config.Timeout),
		logger: log,
	}
}

// Complete sends one completion request and decodes the reply.
//
// Failures: TRANSPORT_ERROR when no response arrived, API_ERROR with the
// status and full body on non-2xx, DECODE_ERROR when a 2xx body is not a
// completion response.
func (c *Client) Complete(ctx context.Context, messages []Message, apiKey string, maxTokens int, model string) (*CompletionResponse, error) {
	resp, err := c.send(ctx, OperationComplete, apiKey, c.http.PostJSON, CompletionRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  messages,
	})
	if err != nil {
		return nil, err
	}

	if !resp.Success() {
		metrics.LLMRequestsTotal.WithLabelValues(OperationComplete, metrics.OutcomeFailure).Inc()
		c.logger.Warn("completion endpoint returned error status", map[string]interface{}{
			"statusCode": resp.StatusCode,
		})
		return nil, apperrors.NewAPIError(resp.StatusCode, string(resp.Body))
	}

	var completion CompletionResponse
	if err := json.Unmarshal(resp.Body, &completion); err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(OperationComplete, metrics.OutcomeInvalid).Inc()
		return nil, apperrors.NewDecodeError(err, string(resp.Body))
	}

	metrics.LLMRequestsTotal.WithLabelValues(OperationComplete, metrics.OutcomeSuccess).Inc()
	c.logger.Debug("completion received", map[string]interface{}{
		"contentBlocks": len(completion.Content),
	})
	return &completion, nil
}

// Probe sends a minimal request and reports only whether the status was 2xx.
// The body is never read into memory; only a request that got no response
// is an error.
func (c *Client) Probe(ctx context.Context, apiKey string) (bool, error) {
	resp, err := c.send(ctx, OperationProbe, apiKey, c.http.PostJSONStatus, CompletionRequest{
		Model:     c.config.ProbeModel,
		MaxTokens: c.config.ProbeMaxTokens,
		Messages:  []Message{UserMessage(c.config.ProbeMessage)},
	})
	if err != nil {
		return false, err
	}

	ok := resp.Success()
	outcome := metrics.OutcomeSuccess
	if !ok {
		outcome = metrics.OutcomeFailure
	}
	metrics.LLMRequestsTotal.WithLabelValues(OperationProbe, outcome).Inc()
	c.logger.Debug("probe finished", map[string]interface{}{
		"statusCode": resp.StatusCode,
	})
	return ok, nil
}

type postFunc func(ctx context.Context, url string, headers map[string]string, body []byte) (*commonhttp.Response, error)

func (c *Client) send(ctx context.Context, operation, apiKey string, post postFunc, request CompletionRequest) (*commonhttp.Response, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, apperrors.NewInvalidRequestError(err.Error())
	}

	headers := map[string]string{
		headerAPIKey:     apiKey,
		headerAPIVersion: c.config.APIVersion,
	}

	start := time.Now()
	resp, err := post(ctx, c.config.Endpoint, headers, body)
	metrics.LLMRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(operation, metrics.OutcomeFailure).Inc()
		c.logger.Warn("completion endpoint unreachable", map[string]interface{}{
			"operation": operation,
			"error":     err.Error(),
		})
		return nil, apperrors.NewTransportError(err)
	}
	return resp, nil
}

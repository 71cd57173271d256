package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/at-ishikawa/lessoner/internal/generator"
	"github.com/at-ishikawa/lessoner/internal/lessonplan"
	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const generatePath = "/generate"

type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

var _ generator.Client = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// ResponseError is returned for a non-2xx response
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("response error %d", e.StatusCode)
	}
	return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Message string `json:"message"`
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var responseErr *ResponseError
	if errors.As(err, &responseErr) {
		return responseErr.StatusCode >= http.StatusInternalServerError ||
			responseErr.StatusCode == http.StatusTooManyRequests
	}

	// connection refused, i/o timeout and similar transport failures
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Generate implements the generator.Client interface
func (client *Client) Generate(
	ctx context.Context,
	request lessonplan.GenerateRequest,
) (*lessonplan.LessonPlan, error) {
	var result *lessonplan.LessonPlan
	if err := retry.Do(
		func() error {
			plan, err := client.generate(ctx, request)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = plan
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("Retrying lesson plan generation",
				"attempt", n+1,
				"topic", request.Topic,
				"lastError", err)
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		slog.Default().Error("failed to generate a lesson plan",
			"subject", request.Subject,
			"gradelevel", request.GradeLevel,
			"topic", request.Topic,
			"error", err)
		return nil, fmt.Errorf("%w: %w", generator.ErrGenerationFailed, err)
	}
	return result, nil
}

func (client *Client) generate(ctx context.Context, request lessonplan.GenerateRequest) (*lessonplan.LessonPlan, error) {
	slog.Default().Debug("generate request", "request", request)

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&lessonplan.GenerateResponse{}).
		Post(generatePath)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}

	slog.Default().Debug("generate response",
		"status", response.StatusCode(),
		"body", response.String(),
	)
	if response.IsError() {
		return nil, &ResponseError{
			StatusCode: response.StatusCode(),
			Message:    errorMessage(response.String()),
		}
	}

	decoded, ok := response.Result().(*lessonplan.GenerateResponse)
	if !ok || decoded == nil || decoded.Data == nil {
		return nil, fmt.Errorf("response has no data: %s", response.String())
	}
	return decoded.Data, nil
}

// errorMessage extracts the "message" field that the server puts in error bodies
func errorMessage(body string) string {
	var decoded errorBody
	if err := json.Unmarshal([]byte(body), &decoded); err == nil && decoded.Message != "" {
		return decoded.Message
	}
	return strings.TrimSpace(body)
}

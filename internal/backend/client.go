// Package backend talks to the remote validation service. The Client speaks
// the live HTTP API; the Simulator replaces it with local fixtures and
// generated thread IDs when no real backend is configured.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/RayanBabar/validator-ai/internal/domain/interview"
	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const defaultTimeout = 30 * time.Second

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// Client is an HTTP client for the validation backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a backend client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitIdea starts the validation journey and returns the first question.
func (c *Client) SubmitIdea(ctx context.Context, ideaText string) (*interview.StartedInterview, error) {
	var resp submitResponse
	err := c.do(ctx, http.MethodPost, "/submit", submitRequest{DetailedDescription: ideaText}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Status == statusFailed {
		return nil, fmt.Errorf("backend rejected submission: %s", resp.Error)
	}
	if resp.Status != statusQuestionPending {
		return nil, fmt.Errorf("unexpected submit status %q", resp.Status)
	}
	return &interview.StartedInterview{
		ThreadID:           resp.ThreadID,
		Question:           resp.Question,
		QuestionNumber:     resp.QuestionNumber,
		QuestionsRemaining: resp.QuestionsRemaining,
	}, nil
}

// SubmitAnswer sends one answer and reports whether the interview continues.
func (c *Client) SubmitAnswer(ctx context.Context, threadID, answerText string, questionNumber int) (*interview.AnswerOutcome, error) {
	var resp answerResponse
	err := c.do(ctx, http.MethodPost, "/answer/"+threadID, answerRequest{Answer: answerText, QuestionNumber: questionNumber}, &resp)
	if err != nil {
		return nil, err
	}
	switch resp.Status {
	case statusQuestionPending:
		return &interview.AnswerOutcome{
			Question:           resp.Question,
			QuestionNumber:     resp.QuestionNumber,
			QuestionsRemaining: resp.QuestionsRemaining,
		}, nil
	case statusFreeReportReady, statusInterviewComplete:
		return &interview.AnswerOutcome{Done: true}, nil
	case statusFailed:
		return nil, fmt.Errorf("backend rejected answer: %s", resp.Error)
	}
	return nil, fmt.Errorf("unexpected answer status %q", resp.Status)
}

// FetchReport retrieves the report for (threadID, tier). A backend "not
// found" or still-processing response maps to repository.ErrNotFound so the
// caller can keep polling.
func (c *Client) FetchReport(ctx context.Context, threadID string, tier report.Tier) (*report.Record, error) {
	var resp reportResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/report/%s?tier=%s", threadID, tier), nil, &resp)
	if err != nil {
		return nil, err
	}
	switch resp.Status {
	case statusCompleted, statusFreeReportDone:
	case statusProcessing, statusPausedForUpgrade:
		return nil, fmt.Errorf("report still %s: %w", resp.Status, repository.ErrNotFound)
	case statusFailed:
		return nil, fmt.Errorf("report generation failed: %s", resp.Error)
	default:
		return nil, fmt.Errorf("unexpected report status %q", resp.Status)
	}

	gotTier, err := report.ParseTier(resp.Tier)
	if err != nil {
		return nil, err
	}
	if len(resp.ReportData) == 0 || string(resp.ReportData) == "null" {
		return nil, fmt.Errorf("report payload missing: %w", repository.ErrNotFound)
	}
	body, err := report.DecodeVariant(gotTier, resp.ReportData)
	if err != nil {
		return nil, err
	}
	return &report.Record{
		ThreadID:    resp.ThreadID,
		Tier:        gotTier,
		Body:        body,
		GeneratedAt: time.Now(),
	}, nil
}

// RequestUpgrade notifies the backend of a tier purchase.
func (c *Client) RequestUpgrade(ctx context.Context, threadID string, tier report.Tier, modules []string) error {
	var resp upgradeResponse
	err := c.do(ctx, http.MethodPost, "/upgrade/"+threadID, upgradeRequest{Tier: string(tier), CustomModules: modules}, &resp)
	if err != nil {
		return err
	}
	if resp.Status != statusUpgradeInitiated {
		return fmt.Errorf("unexpected upgrade status %q: %s", resp.Status, resp.Error)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, reqBody, respBody any) error {
	tracer := otel.Tracer("validator-ai/backend")
	ctx, span := tracer.Start(ctx, method+" "+path)
	defer span.End()
	span.SetAttributes(attribute.String("backend.path", path))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("backend has no such resource: %w", repository.ErrNotFound)
	case resp.StatusCode >= 400:
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.Unmarshal(data, respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

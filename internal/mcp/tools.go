package mcp

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/domain/thread"
	"github.com/RayanBabar/validator-ai/internal/domain/watch"
	"github.com/RayanBabar/validator-ai/internal/repository"
)

// defaultAwaitTimeout bounds await_completion when the caller gives none.
const defaultAwaitTimeout = 120 * time.Second

// toolset implements the tool logic. Handlers stay thin so the methods can
// be tested without a connected session.
type toolset struct {
	services      Services
	simulate      bool
	pollInterval  time.Duration
	simulateDelay time.Duration
	logger        *slog.Logger
}

func newToolset(cfg Config) *toolset {
	return &toolset{
		services:      cfg.Services,
		simulate:      cfg.Simulate,
		pollInterval:  cfg.PollInterval,
		simulateDelay: cfg.SimulateDelay,
		logger:        cfg.Logger,
	}
}

// SubmitIdeaInput is the payload for submit_idea.
type SubmitIdeaInput struct {
	DetailedDescription string `json:"detailed_description" jsonschema:"the business idea to validate, 50 to 8000 characters"`
}

// InterviewStateOutput describes the interview position after a transition.
type InterviewStateOutput struct {
	ThreadID           string `json:"thread_id"`
	Status             string `json:"status"`
	Question           string `json:"question,omitempty"`
	QuestionNumber     int    `json:"question_number,omitempty"`
	QuestionsRemaining int    `json:"questions_remaining"`
	AnsweredCount      int    `json:"answered_count"`
}

func stateOutput(state *thread.State) InterviewStateOutput {
	out := InterviewStateOutput{
		ThreadID:           state.ThreadID,
		Status:             "question_pending",
		Question:           state.CurrentQuestion,
		QuestionNumber:     state.QuestionNumber,
		QuestionsRemaining: state.QuestionsRemaining,
		AnsweredCount:      len(state.Answered),
	}
	if state.Completed {
		out.Status = "interview_complete"
		out.QuestionNumber = 0
	}
	return out
}

func (t *toolset) submitIdea(ctx context.Context, in SubmitIdeaInput) (InterviewStateOutput, error) {
	state, err := t.services.Interview.Start(ctx, in.DetailedDescription)
	if err != nil {
		return InterviewStateOutput{}, MapError(err)
	}
	return stateOutput(state), nil
}

// SubmitAnswerInput is the payload for submit_answer.
type SubmitAnswerInput struct {
	Answer string `json:"answer" jsonschema:"answer to the current interview question, at least 10 characters"`
}

func (t *toolset) submitAnswer(ctx context.Context, in SubmitAnswerInput) (InterviewStateOutput, error) {
	state, err := t.services.Threads.Current(ctx)
	if err != nil {
		return InterviewStateOutput{}, MapError(err)
	}
	next, err := t.services.Interview.SubmitAnswer(ctx, state, in.Answer)
	if err != nil {
		return InterviewStateOutput{}, MapError(err)
	}
	return stateOutput(next), nil
}

// SessionStatusInput is the payload for session_status.
type SessionStatusInput struct {
	ThreadID string `json:"thread_id,omitempty" jsonschema:"verify the stored session matches this thread (optional)"`
}

// SessionStatusOutput is the stored session snapshot.
type SessionStatusOutput struct {
	Active             bool                  `json:"active"`
	ThreadID           string                `json:"thread_id,omitempty"`
	Completed          bool                  `json:"completed,omitempty"`
	Question           string                `json:"question,omitempty"`
	QuestionNumber     int                   `json:"question_number,omitempty"`
	QuestionsRemaining int                   `json:"questions_remaining,omitempty"`
	Answered           []thread.AnsweredPair `json:"answered,omitempty"`
	UpdatedAt          time.Time             `json:"updated_at,omitempty"`
}

func (t *toolset) sessionStatus(ctx context.Context, in SessionStatusInput) (SessionStatusOutput, error) {
	var state *thread.State
	var err error
	if in.ThreadID != "" {
		state, err = t.services.Interview.Resume(ctx, in.ThreadID)
	} else {
		state, err = t.services.Threads.Current(ctx)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return SessionStatusOutput{Active: false}, nil
	}
	if err != nil {
		return SessionStatusOutput{}, MapError(err)
	}
	return SessionStatusOutput{
		Active:             true,
		ThreadID:           state.ThreadID,
		Completed:          state.Completed,
		Question:           state.CurrentQuestion,
		QuestionNumber:     state.QuestionNumber,
		QuestionsRemaining: state.QuestionsRemaining,
		Answered:           state.Answered,
		UpdatedAt:          state.UpdatedAt,
	}, nil
}

// ResetOutput confirms the slot was cleared.
type ResetOutput struct {
	Reset bool `json:"reset"`
}

func (t *toolset) resetSession(ctx context.Context) (ResetOutput, error) {
	if err := t.services.Interview.Reset(ctx); err != nil {
		return ResetOutput{}, MapError(err)
	}
	return ResetOutput{Reset: true}, nil
}

// GetReportInput is the payload for get_report.
type GetReportInput struct {
	Tier     string `json:"tier,omitempty" jsonschema:"report tier: free, basic, standard, or premium (default free)"`
	ThreadID string `json:"thread_id,omitempty" jsonschema:"thread to fetch for (defaults to the active session)"`
}

// ReportOutput carries a retrieved report.
type ReportOutput struct {
	ThreadID    string      `json:"thread_id"`
	Tier        string      `json:"tier"`
	Report      report.Body `json:"report"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// parseTierDefault treats an omitted tier as free.
func parseTierDefault(s string) (report.Tier, error) {
	if s == "" {
		return report.TierFree, nil
	}
	tier, err := report.ParseTier(s)
	if err != nil {
		return "", &APIError{Code: "INVALID_TIER", Message: err.Error(), RecoveryHint: "Use free, basic, standard, or premium"}
	}
	return tier, nil
}

func (t *toolset) resolveThreadID(ctx context.Context, threadID string) (string, error) {
	if threadID != "" {
		return threadID, nil
	}
	state, err := t.services.Threads.Current(ctx)
	if err != nil {
		return "", err
	}
	return state.ThreadID, nil
}

func (t *toolset) getReport(ctx context.Context, in GetReportInput) (ReportOutput, error) {
	tier, err := parseTierDefault(in.Tier)
	if err != nil {
		return ReportOutput{}, err
	}
	threadID, err := t.resolveThreadID(ctx, in.ThreadID)
	if err != nil {
		return ReportOutput{}, MapError(err)
	}
	rec, err := t.services.Reports.Fetch(ctx, threadID, tier)
	if err != nil {
		return ReportOutput{}, MapError(err)
	}
	return ReportOutput{
		ThreadID:    rec.ThreadID,
		Tier:        string(rec.Tier),
		Report:      rec.Body,
		GeneratedAt: rec.GeneratedAt,
	}, nil
}

// RequestUpgradeInput is the payload for request_upgrade.
type RequestUpgradeInput struct {
	Tier          string   `json:"tier" jsonschema:"paid tier: basic, standard, or premium"`
	CustomModules []string `json:"custom_modules,omitempty" jsonschema:"premium only: module identifiers to include"`
	ThreadID      string   `json:"thread_id,omitempty" jsonschema:"thread to upgrade (defaults to the active session)"`
}

// UpgradeOutput confirms the recorded upgrade intent.
type UpgradeOutput struct {
	IntentID string   `json:"intent_id"`
	ThreadID string   `json:"thread_id"`
	Tier     string   `json:"tier"`
	Modules  []string `json:"modules,omitempty"`
	Status   string   `json:"status"`
}

func (t *toolset) requestUpgrade(ctx context.Context, in RequestUpgradeInput) (UpgradeOutput, error) {
	tier, err := report.ParseTier(in.Tier)
	if err != nil {
		return UpgradeOutput{}, &APIError{Code: "INVALID_TIER", Message: err.Error(), RecoveryHint: "Use basic, standard, or premium"}
	}
	threadID, err := t.resolveThreadID(ctx, in.ThreadID)
	if err != nil {
		return UpgradeOutput{}, MapError(err)
	}
	intent, err := t.services.Upgrades.Request(ctx, threadID, tier, in.CustomModules)
	if err != nil {
		return UpgradeOutput{}, MapError(err)
	}
	return UpgradeOutput{
		IntentID: intent.ID,
		ThreadID: intent.ThreadID,
		Tier:     string(intent.Tier),
		Modules:  intent.Modules,
		Status:   "upgrade_initiated",
	}, nil
}

// AwaitCompletionInput is the payload for await_completion.
type AwaitCompletionInput struct {
	Tier           string `json:"tier,omitempty" jsonschema:"tier to wait for (defaults to the latest upgrade's tier, or free)"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" jsonschema:"give up after this many seconds (default 120)"`
	ThreadID       string `json:"thread_id,omitempty" jsonschema:"thread to watch (defaults to the active session)"`
}

// AwaitCompletionOutput reports the watch outcome.
type AwaitCompletionOutput struct {
	Completed bool         `json:"completed"`
	ThreadID  string       `json:"thread_id"`
	Tier      string       `json:"tier"`
	Report    *report.Body `json:"report,omitempty"`
}

// awaitTier picks the tier to watch: an explicit tier wins, otherwise the
// latest recorded upgrade intent for the thread, otherwise free.
func (t *toolset) awaitTier(ctx context.Context, requested, threadID string) (report.Tier, error) {
	if requested != "" {
		tier, err := report.ParseTier(requested)
		if err != nil {
			return "", &APIError{Code: "INVALID_TIER", Message: err.Error(), RecoveryHint: "Use free, basic, standard, or premium"}
		}
		return tier, nil
	}
	intent, err := t.services.Upgrades.IntentFor(ctx, threadID)
	if errors.Is(err, repository.ErrNotFound) {
		return report.TierFree, nil
	}
	if err != nil {
		return "", MapError(err)
	}
	return intent.Tier, nil
}

func (t *toolset) awaitCompletion(ctx context.Context, in AwaitCompletionInput) (AwaitCompletionOutput, error) {
	threadID, err := t.resolveThreadID(ctx, in.ThreadID)
	if err != nil {
		return AwaitCompletionOutput{}, MapError(err)
	}
	tier, err := t.awaitTier(ctx, in.Tier, threadID)
	if err != nil {
		return AwaitCompletionOutput{}, err
	}

	timeout := defaultAwaitTimeout
	if in.TimeoutSeconds > 0 {
		timeout = time.Duration(in.TimeoutSeconds) * time.Second
	}

	done := make(chan *report.Record, 1)
	watcher := watch.New(t.services.Records, t.services.Fetcher, t.services.Stream, watch.Config{
		ThreadID:      threadID,
		Tier:          tier,
		PollInterval:  t.pollInterval,
		Simulate:      t.simulate,
		SimulateDelay: t.simulateDelay,
	}, func(_ report.Tier, rec *report.Record) {
		done <- rec
	}, t.logger)

	if err := watcher.Start(ctx); err != nil {
		return AwaitCompletionOutput{}, MapError(err)
	}
	defer watcher.Stop()

	out := AwaitCompletionOutput{ThreadID: threadID, Tier: string(tier)}
	select {
	case rec := <-done:
		if rec == nil {
			// Timer or push completion without a payload; the gateway
			// resolves the actual report.
			fetched, err := t.services.Reports.Fetch(ctx, threadID, tier)
			if err != nil {
				return AwaitCompletionOutput{}, MapError(err)
			}
			rec = fetched
		}
		out.Completed = true
		out.Report = &rec.Body
		return out, nil
	case <-time.After(timeout):
		return out, nil
	case <-ctx.Done():
		return out, ctx.Err()
	}
}

// registerTools wires every tool into the server. Input and output schemas
// are inferred from the handler types.
func registerTools(server *sdkmcp.Server, t *toolset) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "submit_idea",
		Description: "Submit a business idea for validation and receive the first interview question",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in SubmitIdeaInput) (*sdkmcp.CallToolResult, InterviewStateOutput, error) {
		out, err := t.submitIdea(ctx, in)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "submit_answer",
		Description: "Answer the current interview question and receive the next one (10 questions total)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in SubmitAnswerInput) (*sdkmcp.CallToolResult, InterviewStateOutput, error) {
		out, err := t.submitAnswer(ctx, in)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "session_status",
		Description: "Inspect the stored validation session, optionally verifying it matches a thread ID",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in SessionStatusInput) (*sdkmcp.CallToolResult, SessionStatusOutput, error) {
		out, err := t.sessionStatus(ctx, in)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reset_session",
		Description: "Discard the stored session so a new idea can be submitted",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in struct{}) (*sdkmcp.CallToolResult, ResetOutput, error) {
		out, err := t.resetSession(ctx)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_report",
		Description: "Retrieve a validation report for a tier once it is ready",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in GetReportInput) (*sdkmcp.CallToolResult, ReportOutput, error) {
		out, err := t.getReport(ctx, in)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "request_upgrade",
		Description: "Record an upgrade to a paid report tier and notify the backend",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in RequestUpgradeInput) (*sdkmcp.CallToolResult, UpgradeOutput, error) {
		out, err := t.requestUpgrade(ctx, in)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "await_completion",
		Description: "Block until the report for a tier is complete, or until the timeout expires",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AwaitCompletionInput) (*sdkmcp.CallToolResult, AwaitCompletionOutput, error) {
		out, err := t.awaitCompletion(ctx, in)
		return nil, out, err
	})
}

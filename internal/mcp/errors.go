package mcp

import (
	"errors"
	"fmt"

	"github.com/RayanBabar/validator-ai/internal/domain/interview"
	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/domain/thread"
	"github.com/RayanBabar/validator-ai/internal/domain/upgrade"
	"github.com/RayanBabar/validator-ai/internal/repository"
)

// APIError is the tool-facing error shape.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to tool error codes. Unknown errors pass
// through as INTERNAL so the caller still gets a structured shape.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, interview.ErrIdeaLength):
		return &APIError{Code: "IDEA_LENGTH", Message: err.Error(), RecoveryHint: "Expand or trim the idea description and resubmit"}
	case errors.Is(err, interview.ErrAnswerTooShort):
		return &APIError{Code: "ANSWER_TOO_SHORT", Message: err.Error(), RecoveryHint: "Give a fuller answer to the current question"}
	case errors.Is(err, interview.ErrInterviewComplete):
		return &APIError{Code: "INTERVIEW_COMPLETE", Message: "the interview is already complete", RecoveryHint: "Call get_report to retrieve results"}
	case errors.Is(err, interview.ErrSubmission):
		return &APIError{Code: "SUBMISSION_FAILED", Message: err.Error(), RecoveryHint: "Retry the submission"}
	case errors.Is(err, interview.ErrAnswer):
		return &APIError{Code: "ANSWER_FAILED", Message: err.Error(), RecoveryHint: "Retry the same answer"}
	case errors.Is(err, thread.ErrMismatch):
		return &APIError{Code: "THREAD_MISMATCH", Message: "no stored session matches that thread", RecoveryHint: "Start a new session with submit_idea"}
	case errors.Is(err, report.ErrNotReady):
		return &APIError{Code: "REPORT_NOT_READY", Message: "the report is still being generated", RecoveryHint: "Use await_completion or retry later"}
	case errors.Is(err, report.ErrFetchFailed):
		return &APIError{Code: "REPORT_FETCH_FAILED", Message: err.Error(), RecoveryHint: "Retry the fetch"}
	case errors.Is(err, upgrade.ErrInvalidTier):
		return &APIError{Code: "INVALID_TIER", Message: err.Error(), RecoveryHint: "Use basic, standard, or premium"}
	case errors.Is(err, upgrade.ErrInvalidModules):
		return &APIError{Code: "INVALID_MODULES", Message: err.Error(), RecoveryHint: "Check the module identifiers"}
	case errors.Is(err, upgrade.ErrUpgradeFailed):
		return &APIError{Code: "UPGRADE_FAILED", Message: err.Error(), RecoveryHint: "Retry the upgrade request"}
	case errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "not found", RecoveryHint: "Check the thread ID or start a new session"}
	case errors.Is(err, repository.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}

package backend

import "encoding/json"

// Statuses the validation backend reports.
const (
	statusQuestionPending   = "question_pending"
	statusInterviewComplete = "interview_complete"
	statusFreeReportReady   = "free_report_ready"
	statusFreeReportDone    = "free_report_complete"
	statusCompleted         = "completed"
	statusProcessing        = "processing"
	statusPausedForUpgrade  = "paused_for_upgrade"
	statusUpgradeInitiated  = "upgrade_initiated"
	statusFailed            = "failed"
)

type submitRequest struct {
	DetailedDescription string `json:"detailed_description"`
}

type submitResponse struct {
	ThreadID           string `json:"thread_id"`
	Status             string `json:"status"`
	Question           string `json:"question"`
	QuestionNumber     int    `json:"question_number"`
	QuestionsRemaining int    `json:"questions_remaining"`
	Error              string `json:"error,omitempty"`
}

type answerRequest struct {
	Answer         string `json:"answer"`
	QuestionNumber int    `json:"question_number"`
}

type answerResponse struct {
	ThreadID           string `json:"thread_id"`
	Status             string `json:"status"`
	Question           string `json:"question"`
	QuestionNumber     int    `json:"question_number"`
	QuestionsRemaining int    `json:"questions_remaining"`
	Message            string `json:"message,omitempty"`
	Error              string `json:"error,omitempty"`
}

type reportResponse struct {
	ThreadID   string          `json:"thread_id"`
	Status     string          `json:"status"`
	Tier       string          `json:"tier"`
	ReportData json.RawMessage `json:"report_data"`
	Error      string          `json:"error,omitempty"`
}

type upgradeRequest struct {
	Tier          string   `json:"tier"`
	CustomModules []string `json:"custom_modules,omitempty"`
}

type upgradeResponse struct {
	ThreadID string `json:"thread_id"`
	Status   string `json:"status"`
	Tier     string `json:"tier"`
	Error    string `json:"error,omitempty"`
}

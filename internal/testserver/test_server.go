// Package testserver runs a fake validation backend over HTTP for client
// and integration tests.
package testserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
)

const maxQuestions = 10

var defaultQuestions = []string{
	"Who exactly is your first paying customer?",
	"How do they solve this problem today?",
	"What makes your approach different?",
	"How will you reach your first hundred customers?",
	"What will you charge?",
	"What does it cost to serve one customer?",
	"What unfair advantage does the team have?",
	"Which regulations apply to your market?",
	"What is your riskiest assumption?",
	"What does the business look like in three years?",
}

type threadState struct {
	questionNumber int
	complete       bool
	failNextAnswer bool
	upgrades       []UpgradeCall
}

// UpgradeCall records one POST /upgrade request for assertions.
type UpgradeCall struct {
	Tier          string
	CustomModules []string
}

// TestServer is a scripted validation backend. Reports start out absent;
// tests call CompleteReport to make an endpoint return one.
type TestServer struct {
	Server *httptest.Server

	mu      sync.Mutex
	threads map[string]*threadState
	reports map[string]json.RawMessage // key: threadID + "/" + tier
}

// New starts the fake backend and registers cleanup on t.
func New(t *testing.T) *TestServer {
	t.Helper()

	ts := &TestServer{
		threads: make(map[string]*threadState),
		reports: make(map[string]json.RawMessage),
	}

	r := chi.NewRouter()
	r.Post("/submit", ts.handleSubmit)
	r.Post("/answer/{threadID}", ts.handleAnswer)
	r.Get("/report/{threadID}", ts.handleReport)
	r.Post("/upgrade/{threadID}", ts.handleUpgrade)

	ts.Server = httptest.NewServer(r)
	t.Cleanup(ts.Server.Close)

	return ts
}

// URL returns the backend base URL.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}

// CompleteReport makes GET /report return the payload for (threadID, tier).
// The payload is the bare tier report object, as the real backend sends it.
func (ts *TestServer) CompleteReport(threadID string, tier report.Tier, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.reports[threadID+"/"+string(tier)] = data
	return nil
}

// FailNextAnswer makes the next answer submission for threadID fail.
func (ts *TestServer) FailNextAnswer(threadID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if th, ok := ts.threads[threadID]; ok {
		th.failNextAnswer = true
	}
}

// Upgrades returns the upgrade calls recorded for a thread.
func (ts *TestServer) Upgrades(threadID string) []UpgradeCall {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if th, ok := ts.threads[threadID]; ok {
		return append([]UpgradeCall(nil), th.upgrades...)
	}
	return nil
}

func (ts *TestServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DetailedDescription string `json:"detailed_description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DetailedDescription == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "failed",
			"error":  "detailed_description is required",
		})
		return
	}

	threadID := uuid.NewString()
	ts.mu.Lock()
	ts.threads[threadID] = &threadState{questionNumber: 1}
	ts.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"thread_id":           threadID,
		"status":              "question_pending",
		"question":            defaultQuestions[0],
		"question_number":     1,
		"questions_remaining": maxQuestions - 1,
	})
}

func (ts *TestServer) handleAnswer(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")

	ts.mu.Lock()
	th, ok := ts.threads[threadID]
	if !ok {
		ts.mu.Unlock()
		http.NotFound(w, r)
		return
	}
	if th.failNextAnswer {
		th.failNextAnswer = false
		ts.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{
			"thread_id": threadID,
			"status":    "failed",
			"error":     "scripted failure",
		})
		return
	}
	if th.complete {
		ts.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{
			"thread_id": threadID,
			"status":    "failed",
			"error":     "interview already complete",
		})
		return
	}

	if th.questionNumber >= maxQuestions {
		th.complete = true
		ts.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{
			"thread_id": threadID,
			"status":    "free_report_ready",
			"message":   "interview complete, free report is being generated",
		})
		return
	}

	th.questionNumber++
	next := th.questionNumber
	ts.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"thread_id":           threadID,
		"status":              "question_pending",
		"question":            defaultQuestions[next-1],
		"question_number":     next,
		"questions_remaining": maxQuestions - next,
	})
}

func (ts *TestServer) handleReport(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")
	tier := r.URL.Query().Get("tier")
	if tier == "" {
		tier = "free"
	}

	ts.mu.Lock()
	_, known := ts.threads[threadID]
	data, ready := ts.reports[threadID+"/"+tier]
	ts.mu.Unlock()

	if !known {
		http.NotFound(w, r)
		return
	}
	if !ready {
		writeJSON(w, http.StatusOK, map[string]any{
			"thread_id": threadID,
			"status":    "processing",
			"tier":      tier,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"thread_id":   threadID,
		"status":      "completed",
		"tier":        tier,
		"report_data": json.RawMessage(data),
	})
}

func (ts *TestServer) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")

	var req struct {
		Tier          string   `json:"tier"`
		CustomModules []string `json:"custom_modules"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	ts.mu.Lock()
	th, ok := ts.threads[threadID]
	if ok {
		th.upgrades = append(th.upgrades, UpgradeCall{Tier: req.Tier, CustomModules: req.CustomModules})
	}
	ts.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"thread_id": threadID,
		"status":    "upgrade_initiated",
		"tier":      req.Tier,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		panic(fmt.Sprintf("testserver: encode response: %v", err))
	}
}

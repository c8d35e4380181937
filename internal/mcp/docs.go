package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `validator-ai turns a business idea into a validation report through a guided interview.

Core concepts:
- Thread: one validation session, identified by thread_id. A single session slot is stored locally; submitting a new idea replaces it.
- Interview: exactly 10 questions. Each answer yields the next question, or completes the interview after the last one.
- Report tiers: free (instant snapshot), basic, standard, premium. Paid tiers require request_upgrade first.

Default workflow:
1) submit_idea with a 50-8000 character description. You get thread_id and question 1.
2) Answer each question with submit_answer (at least 10 characters per answer) until the interview completes.
3) get_report with tier "free" for the instant snapshot.
4) For deeper analysis, request_upgrade with a paid tier, then await_completion for that tier, then get_report.
5) session_status shows where you left off after a restart; reset_session discards the stored session.

Notes:
- get_report returns REPORT_NOT_READY while a paid report is still generating; await_completion blocks until it is ready or the timeout expires.
- Answers and questions are kept locally, so a conversation can resume mid-interview.

Docs:
- validator://docs/journey (the full journey with tier details)
- validator://docs/modules (analysis module identifiers for premium custom selection)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "validator://docs/journey",
		Name:        "docs_journey",
		Title:       "Validation journey",
		Description: "The idea-to-report journey and what each tier delivers.",
		Content: `# Validation journey

## Interview

Submit an idea (50-8000 characters). The interview asks 10 questions, one at
a time. Each ` + "`submit_answer`" + ` call returns the next question until the last
answer completes the interview. Progress is stored locally; use
` + "`session_status`" + ` to find your place after an interruption.

## Tiers

- **free**: instant viability snapshot with a score, gauge status, and a
  personalized next step. Available right after the interview completes.
- **basic**: go/no-go score, executive summary, and a business model canvas.
- **standard**: everything in basic plus a per-dimension score breakdown and
  the full set of analysis modules.
- **premium**: everything in standard plus an investor pitch deck outline,
  with optional custom module selection.

## Paid reports

Paid tiers are asynchronous. Call ` + "`request_upgrade`" + ` with the tier (and for
premium, optionally ` + "`custom_modules`" + `), then ` + "`await_completion`" + ` for that
tier. Once it reports completion, ` + "`get_report`" + ` returns the full payload.
Retrieved reports are cached locally, so repeat fetches are instant.
`,
	},
	{
		URI:         "validator://docs/modules",
		Name:        "docs_modules",
		Title:       "Analysis modules",
		Description: "Module identifiers accepted by premium custom selection.",
		Content: `# Analysis modules

Premium upgrades accept a ` + "`custom_modules`" + ` list. Recognized identifiers:

- ` + "`mod_bmc`" + ` — business model canvas
- ` + "`mod_market`" + ` — market analysis
- ` + "`mod_comp`" + ` — competitive landscape
- ` + "`mod_finance`" + ` — financial projections
- ` + "`mod_tech`" + ` — technical feasibility
- ` + "`mod_reg`" + ` — regulatory and compliance
- ` + "`mod_gtm`" + ` — go-to-market strategy
- ` + "`mod_risk`" + ` — risk assessment
- ` + "`mod_roadmap`" + ` — execution roadmap
- ` + "`mod_funding`" + ` — funding strategy
- ` + "`investor_pitch_deck`" + ` — pitch deck outline (premium extra)

Omit ` + "`custom_modules`" + ` to receive the standard set.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}

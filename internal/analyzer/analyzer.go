package analyzer

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	appErr "github.com/leadflow/server/pkg/errors"
	"github.com/leadflow/server/pkg/logger"
)

const promptTemplate = `You are an AI assistant for a contracting business. Analyze the project description below.

Project Description: "%s"

Provide your response in a valid JSON format with the following keys:
- "summary": A concise summary of the project.
- "category": A category for the project (e.g., "Kitchen Remodel", "Deck Construction", "Fencing").
- "costEstimate": A rough, non-binding, ballpark cost estimate as a string (e.g., "$5,000 - $8,000").
- "materialList": An array of strings, listing potential materials. This MUST be an array of strings.
- "laborBreakdown": An array of strings, listing the major labor tasks. This MUST be an array of strings.
- "permitRequired": A string: "Yes", "No", or "Possibly".
- "draftEmail": A polite, professional email to the client named "%s", confirming the project details and asking clarifying questions. Sign off as "LeadFlow AI Team".`

// Analyzer turns a project description into a structured analysis via an
// external completion service. Input sanitization guards the prompt against
// the user; the caller is responsible for tolerating malformed fields in the
// returned map, which guards the record against the service. The two trust
// boundaries are independent.
type Analyzer struct {
	client CompletionClient
}

func NewAnalyzer(client CompletionClient) *Analyzer {
	return &Analyzer{client: client}
}

// AnalyzeProject sanitizes both inputs, builds the instruction prompt, makes
// one synchronous completion call, and parses the response as JSON. The
// returned map is the decoded response as-is; no schema validation happens
// here.
func (a *Analyzer) AnalyzeProject(ctx context.Context, projectDescription, clientName string) (map[string]any, error) {
	desc := Sanitize(projectDescription)
	name := Sanitize(clientName)

	// Checked after sanitization: input consisting only of stripped
	// characters is rejected too.
	if desc == "" || name == "" {
		return nil, appErr.New(appErr.CodeInvalid, "Missing required project description or client name.")
	}

	prompt := fmt.Sprintf(promptTemplate, desc, name)

	text, err := a.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		logger.L().Warn("completion response was not valid json", zap.Int("len", len(text)), zap.Error(err))
		return nil, appErr.Wrap(err, appErr.CodeParse, "Failed to parse AI response.")
	}

	// Valid JSON that is not an object yields no usable fields; the record
	// builder defaults every field in that case.
	out, _ := decoded.(map[string]any)
	return out, nil
}

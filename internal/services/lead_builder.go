package services

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/leadflow/server/internal/models"
)

// Field defaults applied when the completion service omits or mangles a
// field.
const (
	defaultFieldValue = "N/A"
	defaultDraftEmail = "Could not generate email."
)

// AnalyzeLeadInput carries the raw request fields for a new lead. They are
// stored as submitted; only the copies embedded into the prompt get
// sanitized.
type AnalyzeLeadInput struct {
	ProjectDescription string
	ClientName         string
	ClientEmail        string
}

// BuildLead merges the decoded AI output with the original request fields
// into a persistable lead. The AI output is untrusted: every field is
// independently defaulted, and the list fields keep only string elements in
// their original order.
func BuildLead(raw map[string]any, input AnalyzeLeadInput, userID uuid.UUID) *models.Lead {
	return &models.Lead{
		UserID:             userID,
		ProjectDescription: input.ProjectDescription,
		ClientName:         input.ClientName,
		ClientEmail:        input.ClientEmail,
		AISummary:          stringOr(raw, "summary", defaultFieldValue),
		AICategory:         stringOr(raw, "category", defaultFieldValue),
		AICostEstimate:     stringOr(raw, "costEstimate", defaultFieldValue),
		AIMaterialList:     datatypes.NewJSONSlice(stringElements(raw, "materialList")),
		AILaborBreakdown:   datatypes.NewJSONSlice(stringElements(raw, "laborBreakdown")),
		AIPermitRequired:   stringOr(raw, "permitRequired", defaultFieldValue),
		AIDraftEmail:       stringOr(raw, "draftEmail", defaultDraftEmail),
		Status:             models.StatusNew,
		Notes:              datatypes.NewJSONSlice([]models.Note{}),
	}
}

// stringOr returns the field as a string when present and non-empty,
// otherwise the default.
func stringOr(raw map[string]any, key, def string) string {
	if s, ok := raw[key].(string); ok && s != "" {
		return s
	}
	return def
}

// stringElements keeps only the string elements of an array field,
// preserving order. A missing or non-array field yields an empty slice.
func stringElements(raw map[string]any, key string) []string {
	arr, ok := raw[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

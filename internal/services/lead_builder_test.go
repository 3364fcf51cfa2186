package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/leadflow/server/internal/models"
)

func TestBuildLeadDropsNonStringListElements(t *testing.T) {
	raw := map[string]any{
		"materialList":   []any{"a", float64(5), "b", map[string]any{"x": 1}, "c"},
		"laborBreakdown": []any{true, "demo", nil, "framing"},
	}
	lead := BuildLead(raw, AnalyzeLeadInput{}, uuid.New())

	require.Equal(t, []string{"a", "b", "c"}, []string(lead.AIMaterialList))
	require.Equal(t, []string{"demo", "framing"}, []string(lead.AILaborBreakdown))
}

func TestBuildLeadNonArrayListsBecomeEmpty(t *testing.T) {
	raw := map[string]any{
		"materialList":   "lumber, nails",
		"laborBreakdown": map[string]any{"day1": "demo"},
	}
	lead := BuildLead(raw, AnalyzeLeadInput{}, uuid.New())

	require.Empty(t, []string(lead.AIMaterialList))
	require.Empty(t, []string(lead.AILaborBreakdown))
}

func TestBuildLeadDefaultsMissingScalars(t *testing.T) {
	lead := BuildLead(map[string]any{}, AnalyzeLeadInput{}, uuid.New())

	require.Equal(t, "N/A", lead.AISummary)
	require.Equal(t, "N/A", lead.AICategory)
	require.Equal(t, "N/A", lead.AICostEstimate)
	require.Equal(t, "N/A", lead.AIPermitRequired)
	require.Equal(t, "Could not generate email.", lead.AIDraftEmail)
	require.Equal(t, models.StatusNew, lead.Status)
}

func TestBuildLeadDefaultsWrongTypedScalars(t *testing.T) {
	raw := map[string]any{
		"summary":      float64(42),
		"category":     []any{"Remodel"},
		"costEstimate": "",
		"draftEmail":   nil,
	}
	lead := BuildLead(raw, AnalyzeLeadInput{}, uuid.New())

	require.Equal(t, "N/A", lead.AISummary)
	require.Equal(t, "N/A", lead.AICategory)
	require.Equal(t, "N/A", lead.AICostEstimate)
	require.Equal(t, "Could not generate email.", lead.AIDraftEmail)
}

func TestBuildLeadKeepsRequestFieldsRaw(t *testing.T) {
	userID := uuid.New()
	input := AnalyzeLeadInput{
		ProjectDescription: "new ${deck} with `rails`",
		ClientName:         "Bob {Builder}",
		ClientEmail:        "bob@example.com",
	}
	raw := map[string]any{
		"summary":    "Deck build",
		"draftEmail": "Hi Bob",
	}
	lead := BuildLead(raw, input, userID)

	// Storage keeps the user's original text; only the prompt copies are
	// sanitized.
	require.Equal(t, input.ProjectDescription, lead.ProjectDescription)
	require.Equal(t, input.ClientName, lead.ClientName)
	require.Equal(t, input.ClientEmail, lead.ClientEmail)
	require.Equal(t, userID, lead.UserID)
	require.Equal(t, "Deck build", lead.AISummary)
	require.Equal(t, "Hi Bob", lead.AIDraftEmail)
}

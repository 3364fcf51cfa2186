package analyzer

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appErr "github.com/leadflow/server/pkg/errors"
	"github.com/leadflow/server/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type mockCompletionClient struct {
	mock.Mock
}

func (m *mockCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func TestAnalyzeProjectRejectsMissingInputs(t *testing.T) {
	client := &mockCompletionClient{}
	a := NewAnalyzer(client)

	cases := []struct{ desc, name string }{
		{"", "client"},
		{"proj", ""},
		{"", ""},
		// Only stripped characters: empty after sanitization.
		{"${`}", "client"},
		{"proj", "{}$"},
	}
	for _, c := range cases {
		_, err := a.AnalyzeProject(context.Background(), c.desc, c.name)
		require.Error(t, err)
		require.True(t, appErr.IsCode(err, appErr.CodeInvalid), "desc=%q name=%q", c.desc, c.name)
		require.Contains(t, err.Error(), "Missing required project description or client name.")
	}
	client.AssertNotCalled(t, "Complete")
}

func TestAnalyzeProjectSanitizesPromptInputs(t *testing.T) {
	client := &mockCompletionClient{}
	client.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, `Project Description: "fix deck"`) &&
			strings.Contains(prompt, `the client named "Bob"`)
	})).Return(`{"summary":"ok"}`, nil).Once()

	a := NewAnalyzer(client)
	out, err := a.AnalyzeProject(context.Background(), "fix ${deck}", "B`ob")
	require.NoError(t, err)
	require.Equal(t, "ok", out["summary"])
	client.AssertExpectations(t)
}

func TestAnalyzeProjectParseError(t *testing.T) {
	client := &mockCompletionClient{}
	client.On("Complete", mock.Anything, mock.Anything).Return("not json at all", nil).Once()

	a := NewAnalyzer(client)
	_, err := a.AnalyzeProject(context.Background(), "build a fence", "Alice")
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeParse))
	require.Contains(t, err.Error(), "Failed to parse AI response.")
}

func TestAnalyzeProjectUpstreamErrorPropagates(t *testing.T) {
	client := &mockCompletionClient{}
	client.On("Complete", mock.Anything, mock.Anything).
		Return("", appErr.New(appErr.CodeUpstream, "completion service unavailable")).Once()

	a := NewAnalyzer(client)
	_, err := a.AnalyzeProject(context.Background(), "build a fence", "Alice")
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeUpstream))
}

func TestAnalyzeProjectNonObjectJSONYieldsEmptyResult(t *testing.T) {
	client := &mockCompletionClient{}
	client.On("Complete", mock.Anything, mock.Anything).Return(`["a","b"]`, nil).Once()

	a := NewAnalyzer(client)
	out, err := a.AnalyzeProject(context.Background(), "build a fence", "Alice")
	require.NoError(t, err)
	require.Empty(t, out)
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/leadflow/server/internal/models"
	"github.com/leadflow/server/internal/proposal"
	"github.com/leadflow/server/internal/services"
	appErr "github.com/leadflow/server/pkg/errors"
)

type mockLeadService struct {
	mock.Mock
}

func (m *mockLeadService) Analyze(ctx context.Context, userID uuid.UUID, input services.AnalyzeLeadInput) (*models.Lead, error) {
	args := m.Called(ctx, userID, input)
	if v := args.Get(0); v != nil {
		return v.(*models.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLeadService) List(ctx context.Context, userID uuid.UUID) ([]models.Lead, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]models.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLeadService) GetOwned(ctx context.Context, leadID, userID uuid.UUID) (*models.Lead, error) {
	args := m.Called(ctx, leadID, userID)
	if v := args.Get(0); v != nil {
		return v.(*models.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLeadService) UpdateStatus(ctx context.Context, leadID, userID uuid.UUID, status string) (*models.Lead, error) {
	args := m.Called(ctx, leadID, userID, status)
	if v := args.Get(0); v != nil {
		return v.(*models.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLeadService) Delete(ctx context.Context, leadID, userID uuid.UUID) error {
	args := m.Called(ctx, leadID, userID)
	return args.Error(0)
}

func (m *mockLeadService) UpdateDraftEmail(ctx context.Context, leadID, userID uuid.UUID, email string) (*models.Lead, error) {
	args := m.Called(ctx, leadID, userID, email)
	if v := args.Get(0); v != nil {
		return v.(*models.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLeadService) AddNote(ctx context.Context, leadID, userID uuid.UUID, text string) ([]models.Note, error) {
	args := m.Called(ctx, leadID, userID, text)
	if v := args.Get(0); v != nil {
		return v.([]models.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLeadService) SetReminder(ctx context.Context, leadID, userID uuid.UUID, date *string, note string) (*models.Reminder, error) {
	args := m.Called(ctx, leadID, userID, date, note)
	if v := args.Get(0); v != nil {
		return v.(*models.Reminder), args.Error(1)
	}
	return nil, args.Error(1)
}

func withLeadID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUpdateStatusNotFoundMapsTo404(t *testing.T) {
	leadID := uuid.New()
	svc := &mockLeadService{}
	svc.On("UpdateStatus", mock.Anything, leadID, mock.Anything, "Won").
		Return(nil, appErr.New(appErr.CodeNotFound, "Lead not found or you do not have permission to edit it.")).Once()

	h := NewLeadsHandler(svc, proposal.NewRenderer())
	req := withLeadID(httptest.NewRequest(http.MethodPut, "/leads/"+leadID.String()+"/status", strings.NewReader(`{"status":"Won"}`)), leadID.String())
	rr := httptest.NewRecorder()
	h.UpdateStatus(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateStatusMalformedIDMapsTo404(t *testing.T) {
	svc := &mockLeadService{}
	h := NewLeadsHandler(svc, proposal.NewRenderer())
	req := withLeadID(httptest.NewRequest(http.MethodPut, "/leads/oops/status", strings.NewReader(`{"status":"Won"}`)), "oops")
	rr := httptest.NewRecorder()
	h.UpdateStatus(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	svc.AssertNotCalled(t, "UpdateStatus")
}

func TestProposalReturnsPDF(t *testing.T) {
	leadID := uuid.New()
	lead := &models.Lead{
		ID:               leadID,
		ClientName:       "Test Client",
		AISummary:        "Summary",
		AICostEstimate:   "$1,000",
		AIMaterialList:   datatypes.NewJSONSlice([]string{"wood"}),
		AILaborBreakdown: datatypes.NewJSONSlice([]string{"build"}),
	}

	svc := &mockLeadService{}
	svc.On("GetOwned", mock.Anything, leadID, mock.Anything).Return(lead, nil).Once()

	h := NewLeadsHandler(svc, proposal.NewRenderer())
	req := withLeadID(httptest.NewRequest(http.MethodGet, "/leads/"+leadID.String()+"/proposal", nil), leadID.String())
	rr := httptest.NewRecorder()
	h.Proposal(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	require.Contains(t, rr.Header().Get("Content-Disposition"), "Test Client")
	require.True(t, strings.HasPrefix(rr.Body.String(), "%PDF"))
}

func TestAnalyzeCreated(t *testing.T) {
	svc := &mockLeadService{}
	svc.On("Analyze", mock.Anything, mock.Anything, services.AnalyzeLeadInput{
		ProjectDescription: "new deck",
		ClientName:         "Bob",
		ClientEmail:        "bob@example.com",
	}).Return(&models.Lead{ID: uuid.New(), AISummary: "Deck build"}, nil).Once()

	h := NewLeadsHandler(svc, proposal.NewRenderer())
	body := `{"project_description":"new deck","client_name":"Bob","client_email":"bob@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/leads/analyze", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Analyze(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	svc.AssertExpectations(t)
}

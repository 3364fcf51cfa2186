package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/leadflow/server/internal/analyzer"
	"github.com/leadflow/server/internal/models"
	"github.com/leadflow/server/internal/repository"
	appErr "github.com/leadflow/server/pkg/errors"
	"github.com/leadflow/server/pkg/logger"
)

var validStatuses = map[string]bool{
	models.StatusNew:       true,
	models.StatusContacted: true,
	models.StatusQuoted:    true,
	models.StatusWon:       true,
	models.StatusLost:      true,
}

// LeadService implements every owner-scoped lead operation. The owning user
// id always comes from a verified token, never from the request body, and
// each mutation runs as a single owner-scoped statement against the store.
type LeadService interface {
	Analyze(ctx context.Context, userID uuid.UUID, input AnalyzeLeadInput) (*models.Lead, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Lead, error)
	GetOwned(ctx context.Context, leadID, userID uuid.UUID) (*models.Lead, error)
	UpdateStatus(ctx context.Context, leadID, userID uuid.UUID, status string) (*models.Lead, error)
	Delete(ctx context.Context, leadID, userID uuid.UUID) error
	UpdateDraftEmail(ctx context.Context, leadID, userID uuid.UUID, email string) (*models.Lead, error)
	AddNote(ctx context.Context, leadID, userID uuid.UUID, text string) ([]models.Note, error)
	SetReminder(ctx context.Context, leadID, userID uuid.UUID, date *string, note string) (*models.Reminder, error)
}

type leadService struct {
	leads    repository.LeadRepository
	analyzer *analyzer.Analyzer
	now      func() time.Time
}

func NewLeadService(leads repository.LeadRepository, a *analyzer.Analyzer) LeadService {
	return &leadService{leads: leads, analyzer: a, now: time.Now}
}

var _ LeadService = (*leadService)(nil)

// Analyze runs the AI analysis and persists the merged record in one create.
// Nothing is written when the analysis or the parse fails.
func (s *leadService) Analyze(ctx context.Context, userID uuid.UUID, input AnalyzeLeadInput) (*models.Lead, error) {
	raw, err := s.analyzer.AnalyzeProject(ctx, input.ProjectDescription, input.ClientName)
	if err != nil {
		return nil, err
	}

	lead := BuildLead(raw, input, userID)
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	logger.L().Info("lead analyzed",
		zap.String("lead_id", lead.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("category", lead.AICategory),
	)
	return lead, nil
}

func (s *leadService) List(ctx context.Context, userID uuid.UUID) ([]models.Lead, error) {
	return s.leads.ListByUser(ctx, userID)
}

func (s *leadService) GetOwned(ctx context.Context, leadID, userID uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := s.leads.FindOwned(ctx, leadID, userID, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *leadService) UpdateStatus(ctx context.Context, leadID, userID uuid.UUID, status string) (*models.Lead, error) {
	if !validStatuses[status] {
		return nil, appErr.New(appErr.CodeInvalid, "Invalid lead status.")
	}
	if err := s.leads.UpdateOwned(ctx, leadID, userID, map[string]any{"status": status}); err != nil {
		return nil, err
	}
	return s.GetOwned(ctx, leadID, userID)
}

func (s *leadService) Delete(ctx context.Context, leadID, userID uuid.UUID) error {
	return s.leads.DeleteOwned(ctx, leadID, userID)
}

func (s *leadService) UpdateDraftEmail(ctx context.Context, leadID, userID uuid.UUID, email string) (*models.Lead, error) {
	if err := s.leads.UpdateOwned(ctx, leadID, userID, map[string]any{"ai_draft_email": email}); err != nil {
		return nil, err
	}
	return s.GetOwned(ctx, leadID, userID)
}

// AddNote trims the note and inserts it at the front of the sequence, so the
// stored order is newest first. Returns the full updated sequence.
func (s *leadService) AddNote(ctx context.Context, leadID, userID uuid.UUID, text string) ([]models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, appErr.New(appErr.CodeInvalid, "Note text is required.")
	}

	var lead models.Lead
	if err := s.leads.FindOwned(ctx, leadID, userID, &lead); err != nil {
		return nil, err
	}

	note := models.Note{Text: strings.TrimSpace(text), CreatedAt: s.now()}
	notes := append([]models.Note{note}, lead.Notes...)

	if err := s.leads.UpdateOwned(ctx, leadID, userID, map[string]any{
		"notes": datatypes.NewJSONSlice(notes),
	}); err != nil {
		return nil, err
	}
	return notes, nil
}

// SetReminder sets or clears the lead's reminder. A nil date clears the
// reminder's date; a provided date must parse to a valid calendar date.
func (s *leadService) SetReminder(ctx context.Context, leadID, userID uuid.UUID, date *string, note string) (*models.Reminder, error) {
	var due *time.Time
	if date != nil && *date != "" {
		parsed, err := parseReminderDate(*date)
		if err != nil {
			return nil, appErr.New(appErr.CodeInvalid, "Invalid reminder date.")
		}
		due = &parsed
	}

	if err := s.leads.FindOwned(ctx, leadID, userID, &models.Lead{}); err != nil {
		return nil, err
	}

	reminder := &models.Reminder{Date: due, Note: strings.TrimSpace(note)}
	if err := s.leads.UpdateOwned(ctx, leadID, userID, map[string]any{
		"reminder": datatypes.NewJSONType(reminder),
	}); err != nil {
		return nil, err
	}
	return reminder, nil
}

func parseReminderDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

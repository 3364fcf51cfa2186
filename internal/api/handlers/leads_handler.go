package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/leadflow/server/internal/api/middleware"
	"github.com/leadflow/server/internal/api/types"
	"github.com/leadflow/server/internal/proposal"
	"github.com/leadflow/server/internal/services"
	appErr "github.com/leadflow/server/pkg/errors"
)

type LeadsHandler struct {
	leads    services.LeadService
	renderer *proposal.Renderer
}

func NewLeadsHandler(leads services.LeadService, renderer *proposal.Renderer) *LeadsHandler {
	return &LeadsHandler{leads: leads, renderer: renderer}
}

// leadID parses the path parameter. An unparseable id gets the same
// not-found error as a foreign lead so nothing about other users' leads
// leaks.
func leadID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, appErr.New(appErr.CodeNotFound, "Lead not found or you do not have permission to edit it.")
	}
	return id, nil
}

func (h *LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	leads, err := h.leads.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: leads})
}

func (h *LeadsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}

	userID := middleware.GetUserID(r.Context())
	lead, err := h.leads.Analyze(r.Context(), userID, services.AnalyzeLeadInput{
		ProjectDescription: req.ProjectDescription,
		ClientName:         req.ClientName,
		ClientEmail:        req.ClientEmail,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: lead})
}

func (h *LeadsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := leadID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}

	lead, err := h.leads.UpdateStatus(r.Context(), id, middleware.GetUserID(r.Context()), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: lead})
}

func (h *LeadsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := leadID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.leads.Delete(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]string{"message": "Lead deleted successfully."}})
}

func (h *LeadsHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	id, err := leadID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.UpdateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}

	lead, err := h.leads.UpdateDraftEmail(r.Context(), id, middleware.GetUserID(r.Context()), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: lead})
}

func (h *LeadsHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, err := leadID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.AddNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}

	notes, err := h.leads.AddNote(r.Context(), id, middleware.GetUserID(r.Context()), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: map[string]any{"notes": notes}})
}

func (h *LeadsHandler) SetReminder(w http.ResponseWriter, r *http.Request) {
	id, err := leadID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.SetReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}

	reminder, err := h.leads.SetReminder(r.Context(), id, middleware.GetUserID(r.Context()), req.Date, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]any{"reminder": reminder}})
}

func (h *LeadsHandler) Proposal(w http.ResponseWriter, r *http.Request) {
	id, err := leadID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	lead, err := h.leads.GetOwned(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	pdf, err := h.renderer.Render(lead)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "Proposal - "+lead.ClientName+".pdf"))
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

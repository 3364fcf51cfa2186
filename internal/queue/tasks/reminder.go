package tasks

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/leadflow/server/internal/repository"
	"github.com/leadflow/server/pkg/logger"
)

// TypeReminderScan is the periodic task that surfaces due reminders. The
// request path never enqueues work; the worker polls the store on its own
// schedule.
const TypeReminderScan = "reminder:scan"

// NewReminderScanTask builds the periodic scan task (no payload).
func NewReminderScanTask() *asynq.Task {
	return asynq.NewTask(TypeReminderScan, nil)
}

// ReminderTaskHandler reports leads whose reminder date has come due.
type ReminderTaskHandler struct {
	leads repository.LeadRepository
	now   func() time.Time
}

func NewReminderTaskHandler(leads repository.LeadRepository) *ReminderTaskHandler {
	return &ReminderTaskHandler{leads: leads, now: time.Now}
}

// HandleScan logs a structured notification for every lead with a due
// reminder. Reminders stay untouched; clearing them is the owner's call.
func (h *ReminderTaskHandler) HandleScan(ctx context.Context, t *asynq.Task) error {
	now := h.now()
	due, err := h.leads.ListDueReminders(ctx, now)
	if err != nil {
		return err
	}

	for _, lead := range due {
		reminder := lead.Reminder.Data()
		if reminder == nil || reminder.Date == nil {
			continue
		}
		logger.L().Info("reminder due",
			zap.String("lead_id", lead.ID.String()),
			zap.String("user_id", lead.UserID.String()),
			zap.String("client_name", lead.ClientName),
			zap.Time("due", *reminder.Date),
			zap.String("note", reminder.Note),
		)
	}

	logger.L().Debug("reminder scan completed", zap.Int("due", len(due)), zap.Time("at", now))
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lead statuses. A lead always starts as StatusNew.
const (
	StatusNew       = "New"
	StatusContacted = "Contacted"
	StatusQuoted    = "Quoted"
	StatusWon       = "Won"
	StatusLost      = "Lost"
)

// Note is a single dated note on a lead. Notes are stored newest first.
type Note struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Reminder is an optional follow-up marker on a lead. A nil Date means the
// reminder carries no due date.
type Reminder struct {
	Date *time.Time `json:"date"`
	Note string     `json:"note"`
}

// Lead is a client's project inquiry together with its AI analysis and
// follow-up state. A lead is visible and mutable only by its owner.
type Lead struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id" validate:"required"`

	ProjectDescription string `gorm:"type:text" json:"project_description"`
	ClientName         string `json:"client_name"`
	ClientEmail        string `json:"client_email"`

	AISummary        string                        `gorm:"type:text" json:"ai_summary"`
	AICategory       string                        `json:"ai_category"`
	AICostEstimate   string                        `json:"ai_cost_estimate"`
	AIMaterialList   datatypes.JSONSlice[string]   `gorm:"type:jsonb" json:"ai_material_list"`
	AILaborBreakdown datatypes.JSONSlice[string]   `gorm:"type:jsonb" json:"ai_labor_breakdown"`
	AIPermitRequired string                        `json:"ai_permit_required"`
	AIDraftEmail     string                        `gorm:"type:text" json:"ai_draft_email"`
	Status           string                        `gorm:"type:varchar(32);index;not null;default:'New'" json:"status"`
	Notes            datatypes.JSONSlice[Note]     `gorm:"type:jsonb" json:"notes"`
	Reminder         datatypes.JSONType[*Reminder] `gorm:"type:jsonb" json:"reminder"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
}

package models

import (
	"tbs/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is an append-only trail of outbound provider calls. Never
// mutated or deleted by the application.
type AuditLog struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid" json:"id"`

	Provider   types.AuditProvider `json:"provider"`
	Action     string              `json:"action"`
	Method     string              `json:"method,omitempty"`
	URL        string              `json:"url,omitempty"`
	Request    types.JSONB         `gorm:"type:jsonb" json:"request,omitempty"`
	Response   types.JSONB         `gorm:"type:jsonb" json:"response,omitempty"`
	StatusCode int                 `json:"status_code,omitempty"`
	Error      string              `json:"error,omitempty"`
	DurationMs int64               `json:"duration_ms"`

	types.Timestamps
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

package models

import (
	"tbs/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction is a payment-gateway event record. Status moves only via
// webhook events, never by direct user action.
type Transaction struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid" json:"id"`

	Amount    float64                 `json:"amount"`
	Currency  string                  `json:"currency"`
	Status    types.TransactionStatus `gorm:"default:pending" json:"status"`
	Reference string                  `gorm:"uniqueIndex;not null" json:"reference"`
	Gateway   string                  `json:"gateway"`
	Metadata  types.JSONB             `gorm:"type:jsonb" json:"metadata,omitempty"`

	types.Timestamps
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

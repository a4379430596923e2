package models

import "tbs/src/types"

// User is an administrative identity. Created by the one-time seed
// operation and not mutated afterwards.
type User struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	Name         string          `json:"name,omitempty"`
	Email        string          `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string          `json:"-"`
	Role         types.AdminRole `gorm:"default:ADMIN" json:"role"`
	Founder      bool            `json:"founder,omitempty"`
	Metadata     *types.Metadata `gorm:"type:jsonb" json:"metadata,omitempty"`

	types.Timestamps
}

package models

import "tbs/src/types"

// Booking is a confirmed or on-hold flight reservation. BookingRef is
// the traveler-facing confirmation code (PNR) and is unique across the
// table whether it came from the GDS or the fallback allocator.
type Booking struct {
	ID         uint              `gorm:"primarykey" json:"id"`
	BookingRef string            `gorm:"uniqueIndex;not null" json:"booking_ref"`
	Airline    string            `json:"airline,omitempty"`
	Passengers types.JSONBArray  `gorm:"type:jsonb" json:"passengers"`
	TotalFare  float64           `json:"total_fare"`
	Currency   string            `gorm:"default:NGN" json:"currency"`
	Status     string            `json:"status,omitempty"`
	MerchantID *uint             `json:"merchant_id,omitempty"`
	Source     string            `json:"source,omitempty"`
	OrderID    string            `json:"order_id,omitempty"`
	Metadata   types.JSONB       `gorm:"type:jsonb" json:"metadata,omitempty"`

	Merchant *Merchant `gorm:"foreignKey:merchant_id" json:"merchant,omitempty"`

	types.Timestamps
}

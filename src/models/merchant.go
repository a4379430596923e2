package models

import "tbs/src/types"

// Merchant is an onboarded travel agent reselling through the
// platform. TotalSales and BookingCount are maintained by callers, not
// recomputed from Booking/Order records.
type Merchant struct {
	ID           uint                 `gorm:"primarykey" json:"id"`
	Name         string               `json:"name"`
	Email        string               `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string               `json:"-"`
	CompanyName  string               `json:"company_name,omitempty"`
	Status       types.MerchantStatus `gorm:"default:Pending" json:"status"`
	TotalSales   float64              `json:"total_sales"`
	BookingCount uint                 `json:"booking_count"`
	Avatar       string               `json:"avatar,omitempty"`
	Phone        string               `json:"phone,omitempty"`
	Address      string               `json:"address,omitempty"`

	Bookings []Booking `gorm:"foreignKey:merchant_id" json:"bookings,omitempty"`
	Orders   []Order   `gorm:"foreignKey:merchant_id" json:"orders,omitempty"`

	types.Timestamps
}

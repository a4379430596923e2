package models

import "tbs/src/types"

// Order is a generic purchase record for non-flight products (hotel,
// car, shortlet). OrderData and CustomerInfo are schemaless bags; no
// shared shape is assumed across products.
type Order struct {
	ID            uint                `gorm:"primarykey" json:"id"`
	Product       types.OrderProduct  `json:"product"`
	OrderData     types.JSONB         `gorm:"type:jsonb" json:"order_data"`
	CustomerInfo  types.JSONB         `gorm:"type:jsonb" json:"customer_info"`
	TotalPrice    float64             `json:"total_price"`
	Amount        float64             `json:"amount"`
	Status        string              `gorm:"default:Pending" json:"status"`
	PaymentStatus types.PaymentStatus `gorm:"default:pending" json:"payment_status"`
	BookingRef    string              `json:"booking_ref,omitempty"`
	Source        string              `json:"source,omitempty"`
	MerchantID    *uint               `json:"merchant_id,omitempty"`

	Merchant *Merchant `gorm:"foreignKey:merchant_id" json:"merchant,omitempty"`

	types.Timestamps
}

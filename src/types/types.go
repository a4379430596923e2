package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

// JSONB is a schemaless payload bag. No fixed schema is assumed across
// products; Scan accepts both []byte and string so the same column type
// works on postgres and the sqlite driver used in tests.
type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		return nil
	default:
		return errors.New("unsupported driver value for JSONB")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		return nil
	default:
		return errors.New("unsupported driver value for JSONBArray")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata map[string]any

type BookingStatus string

const (
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_ON_HOLD   BookingStatus = "on-hold"
)

type OrderProduct string

const (
	ORDER_HOTEL    OrderProduct = "hotel"
	ORDER_CAR      OrderProduct = "car"
	ORDER_SHORTLET OrderProduct = "shortlet"
)

type PaymentStatus string

const (
	PAYMENT_PENDING PaymentStatus = "pending"
	PAYMENT_PAID    PaymentStatus = "paid"
)

type MerchantStatus string

const (
	MERCHANT_PENDING   MerchantStatus = "Pending"
	MERCHANT_VERIFIED  MerchantStatus = "Verified"
	MERCHANT_SUSPENDED MerchantStatus = "Suspended"
)

type TransactionStatus string

const (
	TRANSACTION_PENDING TransactionStatus = "pending"
	TRANSACTION_SUCCESS TransactionStatus = "success"
	TRANSACTION_FAILED  TransactionStatus = "failed"
)

type AuditProvider string

const (
	PROVIDER_AMADEUS  AuditProvider = "amadeus"
	PROVIDER_PAYSTACK AuditProvider = "paystack"
)

type AdminRole string

const (
	ROLE_SUPER_ADMIN AdminRole = "SUPER_ADMIN"
	ROLE_ADMIN       AdminRole = "ADMIN"
)

type Passenger struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	DateOfBirth    string `json:"date_of_birth" binding:"required,traveldate"`
	Gender         string `json:"gender,omitempty"`
	PassportNumber string `json:"passport_number,omitempty"`
	PassportExpiry string `json:"passport_expiry,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
	IssuanceValid  bool   `json:"issuance_valid,omitempty"`
}

type ContactInfo struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
}

type BookFlightRequestBody struct {
	Offer      JSONB       `json:"offer" binding:"required"`
	Passengers []Passenger `json:"passengers" binding:"required,min=1,dive"`
	Contacts   ContactInfo `json:"contacts" binding:"required"`
	MerchantID *uint       `json:"merchant_id,omitempty"`
	Source     string      `json:"source,omitempty"`
}

type CreateOrderRequestBody struct {
	Product      OrderProduct `json:"product" binding:"required,oneof=hotel car shortlet"`
	OrderData    JSONB        `json:"order_data" binding:"required"`
	CustomerInfo JSONB        `json:"customer_info" binding:"required"`
	TotalPrice   float64      `json:"total_price" binding:"required,gt=0"`
	BookingRef   string       `json:"booking_ref,omitempty"`
	Source       string       `json:"source,omitempty"`
	MerchantID   *uint        `json:"merchant_id,omitempty"`
}

type RegisterMerchantRequestBody struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	CompanyName string `json:"company_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateMerchantStatusRequestBody struct {
	Status MerchantStatus `json:"status" binding:"required,oneof=Verified Suspended Pending"`
}

type SeedAdminRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type Claims struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	MerchantID *uint  `json:"merchant_id,omitempty"`
	jwt.RegisteredClaims
}

// APIResponse is the uniform envelope returned by every endpoint.
// success=false is always paired with a non-2xx status code.
type APIResponse struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

func Ok(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

func Fail(msg string) APIResponse {
	return APIResponse{Success: false, Error: &msg}
}

type RevenueSummary struct {
	TotalRevenue       float64 `json:"total_revenue"`
	TotalServiceFees   float64 `json:"total_service_fees"`
	TotalCommission    float64 `json:"total_commission"`
	MerchantPayouts    float64 `json:"merchant_payouts"`
	OrderCount         int64   `json:"order_count"`
	TotalRevenueFmt    string  `json:"total_revenue_formatted"`
	TotalServiceFeeFmt string  `json:"total_service_fees_formatted"`
	TotalCommissionFmt string  `json:"total_commission_formatted"`
	MerchantPayoutsFmt string  `json:"merchant_payouts_formatted"`
}

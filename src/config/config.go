package config

import (
	"fmt"
	"os"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const DATE_PARSE_FORMAT = "2006-01-02"

const (
	DEFAULT_CURRENCY    = "NGN"
	DEFAULT_COUNTRY     = "NG"
	DEFAULT_GENDER      = "MALE"
	PAYMENT_GATEWAY     = "paystack"
	FALLBACK_PNR_PREFIX = "BK"
	FALLBACK_REF_PREFIX = "ORD-"
)

// Platform pricing. The service fee is a flat per-booking charge in
// DEFAULT_CURRENCY deducted before commission is computed.
const (
	SERVICE_FEE     float64 = 25000
	COMMISSION_RATE float64 = 0.05
	PRICE_TOLERANCE float64 = 0.01
)

// Ticketing policy sent with every GDS order.
const (
	TICKETING_OPTION     = "DELAY_TO_CANCEL"
	TICKETING_DELAY_DAYS = 6
)

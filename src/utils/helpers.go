package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"tbs/src/config"
	"tbs/src/types"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ParseAmount converts a price string from the GDS into a float,
// keeping only digits, the decimal point and a leading minus. Anything
// unparseable yields zero.
func ParseAmount(s string) float64 {
	var b strings.Builder
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || (r == '-' && i == 0) {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// NewFallbackBookingRef synthesizes a placeholder reservation code when
// the GDS cannot be reached. Timestamp-derived, so practically unique
// within the process.
func NewFallbackBookingRef() string {
	return fmt.Sprintf("%s%d", config.FALLBACK_PNR_PREFIX, time.Now().Unix())
}

func NewFallbackOrderRef() string {
	return fmt.Sprintf("%s%d", config.FALLBACK_REF_PREFIX, time.Now().UnixMilli())
}

var currencySymbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

var ngPrinter = message.NewPrinter(language.MustParse("en-NG"))

// FormatCurrency renders an amount as a locale-formatted string, e.g.
// 130000 NGN -> "₦130,000.00".
func FormatCurrency(amount float64, currencyCode string) string {
	symbol, ok := currencySymbols[currencyCode]
	if !ok {
		symbol = currencyCode + " "
	}
	return ngPrinter.Sprintf("%s%v", symbol, number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GenerateJWT(email string, role string, merchantId *uint) (string, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	claims := &types.Claims{
		Email:      email,
		Role:       role,
		MerchantID: merchantId,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

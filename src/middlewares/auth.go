package middlewares

import (
	"log"
	"net/http"
	"os"
	"strings"
	"tbs/src/db"
	"tbs/src/models"
	"tbs/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func jwtKey() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func AuthMiddleware(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer") {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Fail("Unauthorized"))
		return
	}
	parts := strings.Split(bearerToken, " ")
	if len(parts) < 2 || parts[1] == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Fail("Unauthorized"))
		return
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
		return jwtKey(), nil
	})
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Fail("Unauthorized"))
		return
	}
	if !tkn.Valid {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Fail("Unauthorized"))
		return
	}
	ctx.Set("email", claims.Email)
	ctx.Set("role", claims.Role)
	if claims.MerchantID != nil {
		ctx.Set("merchant_id", *claims.MerchantID)
	}
}

// AdminOnly gates admin routes. The caller must hold an ADMIN or
// SUPER_ADMIN token backed by an existing User row.
func AdminOnly(ctx *gin.Context) {
	role := ctx.GetString("role")
	if role != string(types.ROLE_ADMIN) && role != string(types.ROLE_SUPER_ADMIN) {
		ctx.AbortWithStatusJSON(http.StatusForbidden, types.Fail("Access denied"))
		return
	}
	email := ctx.GetString("email")
	d := db.GetDb()
	var user models.User
	if err := d.
		Model(&models.User{}).
		Where(&models.User{Email: email}).
		First(&user).
		Error; err != nil {
		ctx.AbortWithStatusJSON(http.StatusForbidden, types.Fail("Access denied"))
		return
	}
	ctx.Set("user_id", user.ID)
}

// VerifiedMerchant gates the merchant dashboard. Only a merchant whose
// status is exactly Verified may pass.
func VerifiedMerchant(ctx *gin.Context) {
	mid, exists := ctx.Get("merchant_id")
	if !exists {
		ctx.AbortWithStatusJSON(http.StatusForbidden, types.Fail("Access denied"))
		return
	}
	merchantId, ok := mid.(uint)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusForbidden, types.Fail("Access denied"))
		return
	}
	d := db.GetDb()
	var merchant models.Merchant
	if err := d.
		Model(&models.Merchant{}).
		Where("id = ?", merchantId).
		First(&merchant).
		Error; err != nil {
		log.Printf("Error retrieving merchant [%d]: %s\n", merchantId, err.Error())
		ctx.AbortWithStatusJSON(http.StatusForbidden, types.Fail("Access denied"))
		return
	}
	if merchant.Status != types.MERCHANT_VERIFIED {
		ctx.AbortWithStatusJSON(http.StatusForbidden, types.Fail("Merchant account is not verified"))
		return
	}
}

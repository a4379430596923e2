package main

import (
	"log"
	"net/http"
	"tbs/src/db"
	"tbs/src/models"
	"tbs/src/types"
	"tbs/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func merchantPublicRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/merchants", func(ctx *gin.Context) {
		var body types.RegisterMerchantRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
			return
		}
		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, types.Fail(err.Error()))
			return
		}
		merchant := models.Merchant{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: hash,
			CompanyName:  body.CompanyName,
			Phone:        body.Phone,
			Address:      body.Address,
			Status:       types.MERCHANT_PENDING,
		}
		db := db.GetDb()
		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&merchant).Error; err != nil {
				return err
			}
			return nil
		}); err != nil {
			log.Printf("Error registering merchant [%s]: %s\n", body.Email, err.Error())
			ctx.JSON(http.StatusBadRequest, types.Fail("Could not register merchant"))
			return
		}
		ctx.JSON(http.StatusOK, types.Ok(gin.H{
			"id":     merchant.ID,
			"status": merchant.Status,
		}))
	})
	return apiv1
}

// merchantDashboardHandlers serves the agent dashboard. The group is
// gated by VerifiedMerchant, so only a merchant with status Verified
// ever reaches these routes.
func merchantDashboardHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.GET("/dashboard", func(ctx *gin.Context) {
		mid := ctx.GetUint("merchant_id")
		db := db.GetDb()
		var merchant models.Merchant
		if err := db.
			Model(&models.Merchant{}).
			Where("id = ?", mid).
			First(&merchant).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, types.Fail("Merchant not found"))
			return
		}
		var recentBookings []models.Booking
		if err := db.
			Model(&models.Booking{}).
			Where("merchant_id = ?", mid).
			Order("created_at desc").
			Limit(10).
			Find(&recentBookings).
			Error; err != nil {
			log.Printf("Error loading bookings for merchant [%d]: %s\n", mid, err.Error())
		}
		var recentOrders []models.Order
		if err := db.
			Model(&models.Order{}).
			Where("merchant_id = ?", mid).
			Order("created_at desc").
			Limit(10).
			Find(&recentOrders).
			Error; err != nil {
			log.Printf("Error loading orders for merchant [%d]: %s\n", mid, err.Error())
		}
		ctx.JSON(http.StatusOK, types.Ok(gin.H{
			"merchant":        merchant,
			"total_sales":     merchant.TotalSales,
			"booking_count":   merchant.BookingCount,
			"recent_bookings": recentBookings,
			"recent_orders":   recentOrders,
		}))
	})
	return g
}

func merchantHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/merchants/verify", func(ctx *gin.Context) {
			mid, exists := ctx.Get("merchant_id")
			if !exists {
				ctx.JSON(http.StatusForbidden, types.Fail("Access denied"))
				return
			}
			db := db.GetDb()
			var merchant models.Merchant
			if err := db.
				Model(&models.Merchant{}).
				Where("id = ?", mid).
				First(&merchant).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, types.Fail("Merchant not found"))
				return
			}
			verified := merchant.Status == types.MERCHANT_VERIFIED
			if !verified {
				// Unverified merchants only learn their status; the full
				// profile stays behind the verification gate.
				ctx.JSON(http.StatusOK, types.Ok(gin.H{
					"verified": false,
					"status":   merchant.Status,
				}))
				return
			}
			ctx.JSON(http.StatusOK, types.Ok(gin.H{
				"verified": true,
				"status":   merchant.Status,
				"merchant": merchant,
			}))
		})
	return g
}

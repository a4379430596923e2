package main

import (
	"net/http"
	"tbs/src/db"
	"tbs/src/models"
	"tbs/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func orderHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/orders", func(ctx *gin.Context) {
			var body types.CreateOrderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
				return
			}
			order := models.Order{
				Product:       body.Product,
				OrderData:     body.OrderData,
				CustomerInfo:  body.CustomerInfo,
				TotalPrice:    body.TotalPrice,
				Amount:        body.TotalPrice,
				Status:        "Pending",
				PaymentStatus: types.PAYMENT_PENDING,
				BookingRef:    body.BookingRef,
				Source:        body.Source,
				MerchantID:    body.MerchantID,
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&order).Error; err != nil {
					return err
				}
				return nil
			}); err != nil {
				ctx.JSON(http.StatusInternalServerError, types.Fail(err.Error()))
				return
			}
			ctx.JSON(http.StatusOK, types.Ok(order))
		}).
		GET("/orders", func(ctx *gin.Context) {
			db := db.GetDb()
			var orders []models.Order
			query := db.Model(&models.Order{}).Order("created_at desc").Limit(100)
			if mid, exists := ctx.Get("merchant_id"); exists {
				query = query.Where("merchant_id = ?", mid)
			}
			if product := ctx.Query("product"); product != "" {
				query = query.Where("product = ?", product)
			}
			if err := query.Find(&orders).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, types.Fail(err.Error()))
				return
			}
			ctx.JSON(http.StatusOK, types.Ok(gin.H{"orders": orders, "count": len(orders)}))
		}).
		GET("/orders/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
				return
			}
			db := db.GetDb()
			var order models.Order
			if err := db.
				Model(&models.Order{}).
				Where("id = ?", params.ID).
				First(&order).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, types.Fail("Order not found"))
				return
			}
			ctx.JSON(http.StatusOK, types.Ok(order))
		}).
		PUT("/orders/:id/pay", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
				return
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				var order models.Order
				if err := tx.
					Model(&models.Order{}).
					Where("id = ?", params.ID).
					First(&order).
					Error; err != nil {
					return err
				}
				return tx.
					Model(&models.Order{}).
					Where("id = ?", params.ID).
					Updates(map[string]any{
						"status":         "Paid",
						"payment_status": types.PAYMENT_PAID,
					}).
					Error
			}); err != nil {
				ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
				return
			}
			ctx.JSON(http.StatusOK, types.Ok(nil))
		}).
		PUT("/orders/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
				return
			}
			db := db.GetDb()
			if err := db.
				Model(&models.Order{}).
				Where("id = ?", params.ID).
				Update("status", "Cancelled").
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
				return
			}
			ctx.JSON(http.StatusOK, types.Ok(nil))
		})
	return g
}

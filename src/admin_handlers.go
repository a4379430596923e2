package main

import (
	"errors"
	"log"
	"net/http"
	"tbs/src/boot"
	"tbs/src/common"
	"tbs/src/db"
	"tbs/src/models"
	"tbs/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/admin/revenue", func(ctx *gin.Context) {
			summary, err := common.AggregateRevenue()
			if err != nil {
				log.Printf("Error aggregating revenue: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, types.Fail(err.Error()))
				return
			}
			ctx.JSON(http.StatusOK, types.Ok(summary))
		}).
		GET("/admin/merchants", func(ctx *gin.Context) {
			db := db.GetDb()
			var merchants []models.Merchant
			query := db.Model(&models.Merchant{}).Order("created_at desc").Limit(100)
			if status := ctx.Query("status"); status != "" {
				query = query.Where("status = ?", status)
			}
			if err := query.Find(&merchants).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, types.Fail(err.Error()))
				return
			}
			ctx.JSON(http.StatusOK, types.Ok(gin.H{"merchants": merchants, "count": len(merchants)}))
		}).
		PUT("/admin/merchants/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
				return
			}
			var body types.UpdateMerchantStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
				return
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				var merchant models.Merchant
				if err := tx.
					Model(&models.Merchant{}).
					Where("id = ?", params.ID).
					First(&merchant).
					Error; err != nil {
					return err
				}
				return tx.
					Model(&models.Merchant{}).
					Where("id = ?", params.ID).
					Update("status", body.Status).
					Error
			}); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, types.Fail("Merchant not found"))
					return
				}
				ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
				return
			}
			ctx.JSON(http.StatusOK, types.Ok(nil))
		}).
		GET("/admin/audit", func(ctx *gin.Context) {
			db := db.GetDb()
			var logs []models.AuditLog
			query := db.Model(&models.AuditLog{}).Order("created_at desc").Limit(100)
			if provider := ctx.Query("provider"); provider != "" {
				query = query.Where("provider = ?", provider)
			}
			if err := query.Find(&logs).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, types.Fail(err.Error()))
				return
			}
			ctx.JSON(http.StatusOK, types.Ok(gin.H{"logs": logs, "count": len(logs)}))
		})
	return g
}

func adminSeedRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/admin/seed", func(ctx *gin.Context) {
		var body types.SeedAdminRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
			return
		}
		user, err := boot.SeedSuperAdmin(body.Name, body.Email, body.Password)
		if err != nil {
			if errors.Is(err, boot.ErrAlreadySeeded) {
				ctx.JSON(http.StatusConflict, types.Fail(err.Error()))
				return
			}
			ctx.JSON(http.StatusInternalServerError, types.Fail(err.Error()))
			return
		}
		ctx.JSON(http.StatusOK, types.Ok(gin.H{"id": user.ID, "email": user.Email, "role": user.Role}))
	})
	return apiv1
}

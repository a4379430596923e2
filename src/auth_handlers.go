package main

import (
	"errors"
	"log"
	"net/http"
	"tbs/src/db"
	"tbs/src/models"
	"tbs/src/types"
	"tbs/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func guestAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/auth/login", func(ctx *gin.Context) {
		var body types.LoginRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
			return
		}
		d := db.GetDb()

		var user models.User
		err := d.
			Model(&models.User{}).
			Where(&models.User{Email: body.Email}).
			First(&user).
			Error
		if err == nil {
			if !utils.CheckPassword(user.PasswordHash, body.Password) {
				ctx.JSON(http.StatusUnauthorized, types.Fail("Invalid credentials"))
				return
			}
			token, err := utils.GenerateJWT(user.Email, string(user.Role), nil)
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, types.Fail(err.Error()))
				return
			}
			ctx.JSON(http.StatusOK, types.Ok(gin.H{
				"token": token,
				"role":  user.Role,
			}))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error on admin login [%s]: %s\n", body.Email, err.Error())
			ctx.JSON(http.StatusInternalServerError, types.Fail("Could not process login"))
			return
		}

		var merchant models.Merchant
		if err := d.
			Model(&models.Merchant{}).
			Where(&models.Merchant{Email: body.Email}).
			First(&merchant).
			Error; err != nil {
			ctx.JSON(http.StatusUnauthorized, types.Fail("Invalid credentials"))
			return
		}
		if !utils.CheckPassword(merchant.PasswordHash, body.Password) {
			ctx.JSON(http.StatusUnauthorized, types.Fail("Invalid credentials"))
			return
		}
		token, err := utils.GenerateJWT(merchant.Email, "MERCHANT", &merchant.ID)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, types.Fail(err.Error()))
			return
		}
		ctx.JSON(http.StatusOK, types.Ok(gin.H{
			"token":       token,
			"role":        "MERCHANT",
			"merchant_id": merchant.ID,
			"status":      merchant.Status,
		}))
	})
	return apiv1
}

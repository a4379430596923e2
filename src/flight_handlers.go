package main

import (
	"errors"
	"log"
	"net/http"
	"tbs/src/common"
	"tbs/src/db"
	"tbs/src/lib/mailer"
	"tbs/src/models"
	"tbs/src/types"

	"github.com/gin-gonic/gin"
)

func flightHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/flights/book", func(ctx *gin.Context) {
			var body types.BookFlightRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
				return
			}
			input := &common.BookingInput{
				Offer:      body.Offer,
				Passengers: body.Passengers,
				Contacts:   body.Contacts,
				MerchantID: body.MerchantID,
				Source:     body.Source,
			}
			outcome, err := common.CreateBooking(ctx.Request.Context(), input)
			if err != nil {
				if errors.Is(err, common.ErrPriceChanged) || errors.Is(err, common.ErrPriceVerification) {
					ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
					return
				}
				log.Printf("Error creating booking: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, types.Fail(err.Error()))
				return
			}
			mailer.SendBookingConfirmation(
				body.Contacts.Email,
				outcome.BookingRef,
				outcome.Booking.TotalFare,
				outcome.Booking.Currency,
			)
			ctx.JSON(http.StatusOK, types.Ok(gin.H{
				"gds":               outcome.GDSData,
				"booking_reference": outcome.BookingRef,
				"order_id":          outcome.OrderID,
				"booking_id":        outcome.Booking.ID,
				"meta": gin.H{
					"source":            outcome.Booking.Source,
					"merchant_id":       outcome.Booking.MerchantID,
					"booking_reference": outcome.BookingRef,
					"order_id":          outcome.OrderID,
				},
			}))
		}).
		GET("/flights/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, types.Fail(err.Error()))
				return
			}
			db := db.GetDb()
			var booking models.Booking
			if err := db.
				Model(&models.Booking{}).
				Where("id = ?", params.ID).
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, types.Fail("Booking not found"))
				return
			}
			ctx.JSON(http.StatusOK, types.Ok(booking))
		})
	return g
}

// bookingListHandlers lives behind AuthMiddleware: a merchant token
// carries merchant_id and sees only its own bookings, an admin token
// carries none and sees all.
func bookingListHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.GET("/flights/bookings", func(ctx *gin.Context) {
		db := db.GetDb()
		var bookings []models.Booking
		query := db.Model(&models.Booking{}).Order("created_at desc").Limit(100)
		if mid, exists := ctx.Get("merchant_id"); exists {
			query = query.Where("merchant_id = ?", mid)
		}
		if err := query.Find(&bookings).Error; err != nil {
			ctx.JSON(http.StatusUnprocessableEntity, types.Fail(err.Error()))
			return
		}
		ctx.JSON(http.StatusOK, types.Ok(gin.H{"bookings": bookings, "count": len(bookings)}))
	})
	return g
}

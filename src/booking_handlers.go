package main

import (
	"castbook/src/common"
	"castbook/src/db"
	"castbook/src/middlewares"
	"castbook/src/models"
	"castbook/src/types"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			var filters types.BookingQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			q := db.Model(&models.Booking{})
			if filters.Status != "" {
				q = q.Where("status = ?", filters.Status)
			}
			if filters.Category != "" {
				q = q.Where("category = ?", filters.Category)
			}
			if filters.ClientID != 0 {
				q = q.Where("client_id = ?", filters.ClientID)
			}
			// Clients only ever see their own bookings.
			if ctx.GetString("role") == string(types.ROLE_CLIENT) {
				q = q.Where("client_id = ?", ctx.GetUint("id"))
			}
			var bookings []models.Booking
			if err := q.
				Preload("Client").
				Order("created_at DESC").
				Offset(filters.Offset()).
				Limit(filters.PerPage).
				Find(&bookings).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var booking models.Booking
			if err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				Preload("Client").
				Preload("Talents").
				Preload("Talents.Talent").
				Preload("Contracts").
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			if ctx.GetString("role") == string(types.ROLE_CLIENT) && booking.ClientID != ctx.GetUint("id") {
				ctx.Status(http.StatusForbidden)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			clientId := body.ClientID
			// A client submitting an inquiry is always booking for themselves.
			if ctx.GetString("role") == string(types.ROLE_CLIENT) {
				clientId = userId
			}
			booking, err := common.CreateBooking(&body, userId, clientId)
			if err != nil {
				log.Printf("Could not create booking: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		PATCH("/bookings/:id", middlewares.RequireRoles(string(types.ROLE_ADMIN)), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.UpdateBooking(params.ID, &body)
			if err != nil {
				respondBookingError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/cancel", middlewares.RequireRoles(string(types.ROLE_ADMIN)), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if _, err := common.UpdateBookingStatus(params.ID, types.BOOKING_CANCELLED); err != nil {
				respondBookingError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/bookings/:id/send-requests", middlewares.RequireRoles(string(types.ROLE_ADMIN)), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.SendRequestsRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			created, skipped, err := common.SendTalentRequests(params.ID, body.TalentIDs)
			if err != nil {
				respondBookingError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"created": created, "skipped": skipped})
		})
	return g
}

func respondBookingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.Is(err, common.ErrInvalidTransition),
		errors.Is(err, common.ErrBookingTerminal),
		errors.Is(err, common.ErrStaleStatus):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("Could not complete request: %s\n", err.Error())
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	}
}

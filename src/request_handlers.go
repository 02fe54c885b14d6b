package main

import (
	"castbook/src/common"
	"castbook/src/db"
	"castbook/src/middlewares"
	"castbook/src/models"
	"castbook/src/types"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func requestHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/booking-requests", middlewares.RequireRoles(string(types.ROLE_TALENT)), func(ctx *gin.Context) {
			talentId := ctx.GetUint("id")
			db := db.GetDb()
			var requests []models.BookingTalent
			if err := db.
				Model(&models.BookingTalent{}).
				Where(&models.BookingTalent{TalentID: talentId}).
				Preload("Booking").
				Order("created_at DESC").
				Find(&requests).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": requests, "count": len(requests)})
		}).
		POST("/booking-requests/:id/respond", middlewares.RequireRoles(string(types.ROLE_TALENT)), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.RespondToRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			talentId := ctx.GetUint("id")
			link, err := common.RespondToRequest(params.ID, talentId, types.RequestStatus(body.Status), body.Message)
			if err != nil {
				switch {
				case errors.Is(err, gorm.ErrRecordNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"error": "booking request not found"})
				case errors.Is(err, common.ErrForbidden):
					ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
				case errors.Is(err, common.ErrRequestNotPending):
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				default:
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				}
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": link})
		})
	return g
}

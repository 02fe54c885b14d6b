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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func contractHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/contracts", middlewares.RequireRoles(string(types.ROLE_ADMIN)), func(ctx *gin.Context) {
			var filters types.ContractQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			q := db.Model(&models.Contract{})
			if filters.BookingID != 0 {
				q = q.Where("booking_id = ?", filters.BookingID)
			}
			if filters.Status != "" {
				q = q.Where("status = ?", filters.Status)
			}
			var contracts []models.Contract
			if err := q.
				Preload("Booking").
				Preload("Signatures").
				Order("created_at DESC").
				Offset(filters.Offset()).
				Limit(filters.PerPage).
				Find(&contracts).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": contracts, "count": len(contracts)})
		}).
		GET("/contracts/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			id, _ := uuid.Parse(params.ID)
			db := db.GetDb()
			var contract models.Contract
			if err := db.
				Model(&models.Contract{}).
				Where("id = ?", id).
				Preload("Booking").
				Preload("BookingTalent").
				Preload("Signatures").
				First(&contract).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			// Talents may only read their own contracts.
			if ctx.GetString("role") == string(types.ROLE_TALENT) {
				if contract.BookingTalent == nil || contract.BookingTalent.TalentID != ctx.GetUint("id") {
					ctx.Status(http.StatusForbidden)
					return
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": contract})
		}).
		POST("/contracts", middlewares.RequireRoles(string(types.ROLE_ADMIN)), func(ctx *gin.Context) {
			var body types.CreateContractRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			contract, err := common.CreateContract(&body, userId)
			if err != nil {
				respondContractError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": contract})
		}).
		POST("/contracts/:id/send", middlewares.RequireRoles(string(types.ROLE_ADMIN)), func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			id, _ := uuid.Parse(params.ID)
			contract, err := common.SendContract(id)
			if err != nil {
				respondContractError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": contract})
		}).
		POST("/contracts/:id/sign", middlewares.RequireRoles(string(types.ROLE_TALENT)), func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.SignContractRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			id, _ := uuid.Parse(params.ID)
			signerId := ctx.GetUint("id")
			contract, err := common.SignContract(id, signerId, body.SignatureImageURL, ctx.ClientIP(), ctx.Request.UserAgent())
			if err != nil {
				respondContractError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": contract})
		})
	return g
}

func respondContractError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "contract not found"})
	case errors.Is(err, common.ErrTalentNotAccepted),
		errors.Is(err, common.ErrAlreadySigned),
		errors.Is(err, common.ErrStaleStatus):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNotSigner), errors.Is(err, common.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("Could not complete request: %s\n", err.Error())
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	}
}

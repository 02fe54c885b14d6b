package main

import (
	"castbook/src/db"
	"castbook/src/lib"
	awslib "castbook/src/lib/aws"
	"castbook/src/middlewares"
	"castbook/src/models"
	"castbook/src/types"
	"castbook/src/utils"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func talentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/talents", func(ctx *gin.Context) {
			var filters types.TalentQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			cacheKey := fmt.Sprintf("talents:%s:%d:%d", filters.Category, filters.Page, filters.PerPage)
			if cached := lib.GetCachedJSON(cacheKey); cached != "" {
				var payload []models.User
				if err := json.Unmarshal([]byte(cached), &payload); err == nil {
					ctx.JSON(http.StatusOK, gin.H{"data": payload, "count": len(payload)})
					return
				}
			}
			db := db.GetDb()
			q := db.
				Model(&models.User{}).
				Where("role = ?", string(types.ROLE_TALENT))
			if filters.Category != "" {
				q = q.
					Joins("JOIN talent_profiles ON talent_profiles.user_id = users.id").
					Where("talent_profiles.category = ?", filters.Category)
			}
			var talents []models.User
			if err := q.
				Preload("TalentProfile").
				Order("users.created_at DESC").
				Offset(filters.Offset()).
				Limit(filters.PerPage).
				Find(&talents).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			go func() {
				payload, err := json.Marshal(&talents)
				if err != nil {
					return
				}
				lib.CacheJSON(cacheKey, string(payload), time.Minute)
			}()
			ctx.JSON(http.StatusOK, gin.H{"data": talents, "count": len(talents)})
		}).
		GET("/talents/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var talent models.User
			if err := db.
				Model(&models.User{}).
				Where("id = ? AND role = ?", params.ID, string(types.ROLE_TALENT)).
				Preload("TalentProfile").
				First(&talent).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": talent})
		}).
		PUT("/talents/profile", middlewares.RequireRoles(string(types.ROLE_TALENT)), func(ctx *gin.Context) {
			var body types.UpsertTalentProfileRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			dayRate, err := utils.ParseRate(body.DayRate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			profile := models.TalentProfile{
				UserID:    userId,
				StageName: body.StageName,
				Category:  body.Category,
				Bio:       body.Bio,
				DayRate:   dayRate,
				Location:  body.Location,
			}
			db := db.GetDb()
			err = db.Transaction(func(tx *gorm.DB) error {
				return tx.
					Clauses(clause.OnConflict{
						Columns:   []clause.Column{{Name: "user_id"}},
						UpdateAll: true,
					}).
					Create(&profile).
					Error
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": profile})
		}).
		POST("/talents/media", middlewares.RequireRoles(string(types.ROLE_TALENT)), func(ctx *gin.Context) {
			file, err := ctx.FormFile("file")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			src, err := file.Open()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			defer src.Close()
			body, err := io.ReadAll(src)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			ext := path.Ext(file.Filename)
			key := fmt.Sprintf("portfolio/%d/%s-%s%s", userId, slug.Make(file.Filename[:len(file.Filename)-len(ext)]), uuid.NewString(), ext)
			contentType := file.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			url, err := awslib.S3UploadDocument(key, body, contentType)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			err = db.Transaction(func(tx *gorm.DB) error {
				var profile models.TalentProfile
				if err := tx.
					Where(&models.TalentProfile{UserID: userId}).
					First(&profile).
					Error; err != nil {
					return err
				}
				profile.MediaKeys = append(profile.MediaKeys, key)
				return tx.
					Model(&models.TalentProfile{}).
					Where("id = ?", profile.ID).
					Update("media_keys", profile.MediaKeys).
					Error
			})
			if err != nil {
				log.Printf("Error saving media key for user [%d]: %s\n", userId, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"key": key, "url": url})
		})
	return g
}

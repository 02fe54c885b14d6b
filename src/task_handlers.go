package main

import (
	"castbook/src/db"
	"castbook/src/middlewares"
	"castbook/src/models"
	"castbook/src/types"
	"castbook/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func taskHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/tasks", func(ctx *gin.Context) {
			var filters types.TaskQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			q := db.Model(&models.Task{})
			if filters.Scope != "" {
				q = q.Where("scope = ?", filters.Scope)
			}
			if filters.Status != "" {
				q = q.Where("status = ?", filters.Status)
			}
			if filters.AssigneeID != 0 {
				q = q.Where("assignee_id = ?", filters.AssigneeID)
			}
			if filters.BookingID != 0 {
				q = q.Where("booking_id = ?", filters.BookingID)
			}
			// Talents only see the board slice assigned to them.
			if ctx.GetString("role") == string(types.ROLE_TALENT) {
				q = q.Where("assignee_id = ?", ctx.GetUint("id"))
			}
			var tasks []models.Task
			if err := q.
				Order("created_at DESC").
				Offset(filters.Offset()).
				Limit(filters.PerPage).
				Find(&tasks).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tasks, "count": len(tasks)})
		}).
		POST("/tasks", middlewares.RequireRoles(string(types.ROLE_ADMIN)), func(ctx *gin.Context) {
			var body types.CreateTaskRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			scope := body.Scope
			if scope == "" {
				scope = "general"
			}
			priority := body.Priority
			if priority == "" {
				priority = "medium"
			}
			task := models.Task{
				Scope:       scope,
				BookingID:   body.BookingID,
				TalentID:    body.TalentID,
				AssigneeID:  body.AssigneeID,
				Title:       body.Title,
				Description: body.Description,
				Status:      types.TASK_TODO,
				Priority:    priority,
				CreatedBy:   ctx.GetUint("id"),
			}
			if body.DueAt != nil {
				dueAt, err := utils.ParseDateTime(*body.DueAt)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				task.DueAt = &dueAt
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&task).Error
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": task})
		}).
		PATCH("/tasks/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateTaskRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var task models.Task
			if err := db.
				Model(&models.Task{}).
				Where(&models.Task{ID: params.ID}).
				First(&task).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			role := ctx.GetString("role")
			userId := ctx.GetUint("id")
			isAssignee := task.AssigneeID != nil && *task.AssigneeID == userId
			if role != string(types.ROLE_ADMIN) && !isAssignee {
				ctx.Status(http.StatusForbidden)
				return
			}
			updates := map[string]any{}
			if body.Status != nil {
				updates["status"] = types.TaskStatus(*body.Status)
			}
			// Assignees may only drag their card across the board; field edits stay admin-only.
			if role == string(types.ROLE_ADMIN) {
				if body.Title != nil {
					updates["title"] = *body.Title
				}
				if body.Description != nil {
					updates["description"] = *body.Description
				}
				if body.Priority != nil {
					updates["priority"] = *body.Priority
				}
				if body.AssigneeID != nil {
					updates["assignee_id"] = *body.AssigneeID
				}
				if body.DueAt != nil {
					dueAt, err := utils.ParseDateTime(*body.DueAt)
					if err != nil {
						ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
						return
					}
					updates["due_at"] = dueAt
				}
			}
			if len(updates) == 0 {
				ctx.JSON(http.StatusOK, gin.H{"data": task})
				return
			}
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Model(&models.Task{}).
					Where(&models.Task{ID: params.ID}).
					Updates(updates).
					Error; err != nil {
					return err
				}
				return tx.
					Model(&models.Task{}).
					Where(&models.Task{ID: params.ID}).
					First(&task).
					Error
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": task})
		}).
		DELETE("/tasks/:id", middlewares.RequireRoles(string(types.ROLE_ADMIN)), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			res := db.Delete(&models.Task{}, params.ID)
			if res.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

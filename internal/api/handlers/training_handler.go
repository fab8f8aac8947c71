// server/internal/api/handlers/training_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"healthcare-waste-api-server/internal/models"
	"healthcare-waste-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrainingHandler struct {
	Training store.TrainingStore
	Env      string
}

type CompleteModulePayload struct {
	Score          *float64 `json:"score" binding:"required"`
	CertificateURL string   `json:"certificateUrl"`
}

// GetModules lists the training modules visible to the caller's role.
func (h *TrainingHandler) GetModules(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	modules, err := h.Training.ListModulesForRole(ctx, c.GetString("user_type"))
	if err != nil {
		serverError(c, h.Env, "Failed to query training modules", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(modules),
		"modules": modules,
	})
}

// GetModuleByID returns one module if the caller's role may see it.
func (h *TrainingHandler) GetModuleByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Training module not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	module, err := h.Training.GetModuleByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Training module not found"})
			return
		}
		serverError(c, h.Env, "Failed to retrieve training module", err)
		return
	}

	if !module.VisibleTo(c.GetString("user_type")) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "This module is not available for your role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "module": module})
}

// CompleteModule records a quiz result for the caller. Repeating a
// module overwrites the earlier score.
func (h *TrainingHandler) CompleteModule(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var payload CompleteModulePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide a score"})
		return
	}
	if *payload.Score < 0 || *payload.Score > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Score must be between 0 and 100"})
		return
	}

	moduleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Training module not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	module, err := h.Training.GetModuleByID(ctx, moduleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Training module not found"})
			return
		}
		serverError(c, h.Env, "Failed to retrieve training module", err)
		return
	}
	if !module.VisibleTo(c.GetString("user_type")) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "This module is not available for your role"})
		return
	}

	now := time.Now()
	progress := &models.UserProgress{
		UserID:         userID,
		ModuleID:       moduleID,
		CompletedAt:    &now,
		Score:          *payload.Score,
		CertificateURL: payload.CertificateURL,
		CreatedAt:      now,
	}

	if err := h.Training.UpsertProgress(ctx, progress); err != nil {
		serverError(c, h.Env, "Failed to save training progress", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Module completed successfully",
		"progress": progress,
	})
}

// GetProgress lists the caller's completion records.
func (h *TrainingHandler) GetProgress(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	records, err := h.Training.ListProgressByUser(ctx, userID)
	if err != nil {
		serverError(c, h.Env, "Failed to query training progress", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(records),
		"progress": records,
	})
}

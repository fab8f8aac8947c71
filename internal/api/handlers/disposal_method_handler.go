// server/internal/api/handlers/disposal_method_handler.go
package handlers

import (
	"context"
	"net/http"

	"healthcare-waste-api-server/internal/models"
	"healthcare-waste-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type DisposalMethodHandler struct {
	Methods store.DisposalMethodStore
	Env     string
}

// GetAllMethods returns the whole disposal-method catalog.
func (h *DisposalMethodHandler) GetAllMethods(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	methods, err := h.Methods.ListMethods(ctx)
	if err != nil {
		serverError(c, h.Env, "Failed to query disposal methods", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(methods),
		"methods": methods,
	})
}

// GetMethodsByWasteType returns the catalog entries for one waste type.
func (h *DisposalMethodHandler) GetMethodsByWasteType(c *gin.Context) {
	wasteType := c.Param("wasteType")
	if !models.ValidWasteType(wasteType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid waste type"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	methods, err := h.Methods.ListMethodsByWasteType(ctx, wasteType)
	if err != nil {
		serverError(c, h.Env, "Failed to query disposal methods", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(methods),
		"methods": methods,
	})
}

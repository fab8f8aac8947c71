// server/internal/api/handlers/request_handler.go
package handlers

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"healthcare-waste-api-server/internal/models"
	"healthcare-waste-api-server/internal/socket"
	"healthcare-waste-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestHandler struct {
	Requests store.WasteRequestStore
	Hub      *socket.Hub
	Env      string
}

type CreateWasteRequestPayload struct {
	WasteType    string  `json:"wasteType" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	Unit         string  `json:"unit" binding:"required"`
	Department   string  `json:"department"`
	Urgency      string  `json:"urgency" binding:"required"`
	Instructions string  `json:"instructions"`
}

type CompleteWasteRequestPayload struct {
	DisposalMethod   string `json:"disposalMethod" binding:"required"`
	DisposalLocation string `json:"disposalLocation" binding:"required"`
}

// CreateRequest creates a new waste request for the calling medical
// staff user. The request id is assigned by the store's atomic counter.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	creator, ok := callerID(c)
	if !ok {
		return
	}

	var payload CreateWasteRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
		return
	}

	if !models.ValidWasteType(payload.WasteType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid waste type"})
		return
	}
	if !models.ValidUrgency(payload.Urgency) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid urgency level"})
		return
	}

	newRequest := &models.WasteRequest{
		CreatedBy:    creator,
		WasteType:    payload.WasteType,
		Quantity:     payload.Quantity,
		Unit:         payload.Unit,
		Department:   payload.Department,
		Urgency:      payload.Urgency,
		Instructions: payload.Instructions,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	if err := h.Requests.CreateRequest(ctx, newRequest); err != nil {
		serverError(c, h.Env, "Failed to create waste request", err)
		return
	}

	if h.Hub != nil {
		h.Hub.BroadcastToRole(models.RoleDisposalStaff, socket.Event{
			Type:    socket.EventRequestCreated,
			Payload: newRequest,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Request created successfully",
		"requestId": newRequest.RequestID,
		"request":   newRequest,
	})
}

// GetMyRequests returns the caller's requests, newest first.
func (h *RequestHandler) GetMyRequests(c *gin.Context) {
	creator, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	requests, err := h.Requests.ListByCreator(ctx, creator)
	if err != nil {
		serverError(c, h.Env, "Failed to query waste requests", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(requests),
		"requests": requests,
	})
}

// GetPendingRequests returns the disposal staff work feed. Despite the
// route name it includes processing requests, so one endpoint serves
// both the open queue and the in-progress list.
func (h *RequestHandler) GetPendingRequests(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	requests, err := h.Requests.ListOpen(ctx)
	if err != nil {
		serverError(c, h.Env, "Failed to query waste requests", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(requests),
		"requests": requests,
	})
}

// GetRequestByID returns one request to its creator or assignee.
func (h *RequestHandler) GetRequestByID(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Waste request not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	request, err := h.Requests.GetRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Waste request not found"})
			return
		}
		serverError(c, h.Env, "Failed to retrieve waste request", err)
		return
	}

	if request.CreatedBy != caller && (request.AssignedTo == nil || *request.AssignedTo != caller) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to access this request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "request": request})
}

// AssignRequest moves a pending request to processing and assigns it to
// the caller. A request that is no longer pending is a conflict: the
// first assignee keeps it.
func (h *RequestHandler) AssignRequest(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Waste request not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	request, err := h.Requests.Assign(ctx, id, caller)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Waste request not found"})
		case errors.Is(err, store.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Request has already been assigned"})
		default:
			serverError(c, h.Env, "Failed to assign waste request", err)
		}
		return
	}

	if h.Hub != nil {
		h.Hub.SendToUser(request.CreatedBy.Hex(), socket.Event{
			Type:    socket.EventRequestAssigned,
			Payload: request,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Request assigned successfully",
		"request": request,
	})
}

// CompleteRequest records the disposal outcome and computes the
// environmental impact summary. Only the assignee may complete an
// assigned request; an unassigned one may be completed directly.
func (h *RequestHandler) CompleteRequest(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var payload CompleteWasteRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide disposal method and location"})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Waste request not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	request, err := h.Requests.GetRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Waste request not found"})
			return
		}
		serverError(c, h.Env, "Failed to retrieve waste request", err)
		return
	}

	if request.AssignedTo != nil && *request.AssignedTo != caller {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to complete this request"})
		return
	}

	completed, err := h.Requests.Complete(ctx, id, store.CompleteUpdate{
		DisposalMethod:      payload.DisposalMethod,
		DisposalLocation:    payload.DisposalLocation,
		CompletedAt:         time.Now(),
		EnvironmentalImpact: environmentalImpact(request),
	})
	if err != nil {
		serverError(c, h.Env, "Failed to complete waste request", err)
		return
	}

	if h.Hub != nil {
		h.Hub.SendToUser(completed.CreatedBy.Hex(), socket.Event{
			Type:    socket.EventRequestCompleted,
			Payload: completed,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Request completed successfully",
		"request": completed,
	})
}

// environmentalImpact is a placeholder estimate: the carbon figure is
// random, cost is a flat $5 per unit, and recycling potential is higher
// for general waste than for the hazardous streams.
func environmentalImpact(request *models.WasteRequest) models.EnvironmentalImpact {
	recycling := 0.3
	if request.WasteType == models.WasteGeneral {
		recycling = 0.7
	}
	return models.EnvironmentalImpact{
		CarbonFootprint:    rand.Float64() * 10,
		CostEstimate:       request.Quantity * 5,
		RecyclingPotential: recycling,
	}
}

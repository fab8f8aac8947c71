// server/internal/api/handlers/user_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"healthcare-waste-api-server/internal/auth"
	"healthcare-waste-api-server/internal/models"
	"healthcare-waste-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Users store.UserStore
	Env   string
}

type RegisterRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	UserType   string `json:"userType" binding:"required"`
	Department string `json:"department"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account for one of the two staff roles and
// returns a token so the client is logged in immediately.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
		return
	}

	if !models.ValidUserType(req.UserType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "userType must be medical_staff or disposal_staff"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		serverError(c, h.Env, "Server error", err)
		return
	}

	user := &models.User{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Password:   hashedPassword,
		UserType:   req.UserType,
		Department: req.Department,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	if err := h.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "User with this email already exists"})
			return
		}
		serverError(c, h.Env, "Failed to create user", err)
		return
	}

	token, err := auth.GenerateJWT(user.ID.Hex(), user.Email, user.UserType)
	if err != nil {
		serverError(c, h.Env, "Failed to generate token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

// Login checks credentials and issues a token.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide email and password"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	user, err := h.Users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		serverError(c, h.Env, "Failed to retrieve user", err)
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateJWT(user.ID.Hex(), user.Email, user.UserType)
	if err != nil {
		serverError(c, h.Env, "Failed to generate token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Profile returns the authenticated user's account.
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	user, err := h.Users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		serverError(c, h.Env, "Failed to retrieve user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

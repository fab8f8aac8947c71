package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timeouts for outbound calls made from handlers.
const (
	dbTimeout     = 5 * time.Second
	uploadTimeout = 15 * time.Second
	modelTimeout  = 30 * time.Second
)

// serverError logs the cause and returns a 500. The error detail is
// included in the body only outside production.
func serverError(c *gin.Context, env, message string, err error) {
	log.Printf("%s: %v", message, err)
	body := gin.H{"success": false, "message": message}
	if env != "production" && err != nil {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// callerID reads the authenticated user's id from the context set by
// the Authenticate middleware.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid user identity in token"})
		return primitive.NilObjectID, false
	}
	return id, true
}

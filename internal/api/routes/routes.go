// server/internal/api/routes/routes.go
package routes

import (
	"healthcare-waste-api-server/config"
	"healthcare-waste-api-server/internal/api/handlers"
	"healthcare-waste-api-server/internal/api/middleware"
	"healthcare-waste-api-server/internal/models"
	"healthcare-waste-api-server/internal/socket"
	"healthcare-waste-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the handlers to their routes and middleware.
func SetupRouter(
	cfg config.Config,
	st *store.Store,
	uploader handlers.ObjectUploader,
	classifier handlers.WasteClassifier,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	env := cfg.Server.Env

	userHandler := &handlers.UserHandler{Users: st.Users, Env: env}
	requestHandler := &handlers.RequestHandler{Requests: st.Requests, Hub: wsHub, Env: env}
	classifyHandler := &handlers.ClassifyHandler{Uploader: uploader, Classifier: classifier, Env: env}
	methodHandler := &handlers.DisposalMethodHandler{Methods: st.DisposalMethods, Env: env}
	trainingHandler := &handlers.TrainingHandler{Training: st.Training, Env: env}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	api := router.Group("/api")
	{
		// WebSocket route; authenticates from the query token itself.
		api.GET("/ws", webSocketHandler.ServeWs)

		auth := api.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.GET("/profile", middleware.Authenticate(), userHandler.Profile)
		}

		requests := api.Group("/requests")
		requests.Use(middleware.Authenticate())
		{
			// Routes for medical staff
			medicalRoutes := requests.Group("/")
			medicalRoutes.Use(middleware.Authorize(models.RoleMedicalStaff))
			{
				medicalRoutes.POST("/create", requestHandler.CreateRequest)
				medicalRoutes.GET("/my-requests", requestHandler.GetMyRequests)
			}

			// Routes for disposal staff
			disposalRoutes := requests.Group("/")
			disposalRoutes.Use(middleware.Authorize(models.RoleDisposalStaff))
			{
				disposalRoutes.GET("/pending", requestHandler.GetPendingRequests)
				disposalRoutes.PUT("/:id/assign", requestHandler.AssignRequest)
				disposalRoutes.PUT("/:id/complete", requestHandler.CompleteRequest)
			}

			// Creator-or-assignee check happens in the handler.
			requests.GET("/:id", requestHandler.GetRequestByID)
		}

		classify := api.Group("/")
		classify.Use(middleware.Authenticate())
		{
			classify.POST("/classify", classifyHandler.Classify)
		}

		methods := api.Group("/disposal-methods")
		methods.Use(middleware.Authenticate())
		{
			methods.GET("/", methodHandler.GetAllMethods)
			methods.GET("/:wasteType", methodHandler.GetMethodsByWasteType)
		}

		training := api.Group("/training")
		training.Use(middleware.Authenticate())
		{
			training.GET("/modules", trainingHandler.GetModules)
			training.GET("/modules/:id", trainingHandler.GetModuleByID)
			training.POST("/modules/:id/complete", trainingHandler.CompleteModule)
			training.GET("/progress", trainingHandler.GetProgress)
		}
	}

	return router
}

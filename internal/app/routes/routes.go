package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dstcrm/dstcrm/internal/app/controllers"
	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	paymentController *controllers.PaymentController,
	importController *controllers.ImportController,
	statsController *controllers.StatsController,
	mailController *controllers.MailController,
	userController *controllers.UserController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh-token", authController.RefreshToken)
	}

	// Public access request submission for emails the whitelist rejects
	v1.POST("/access-requests", userController.SubmitAccessRequest)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.GetProfile)

		// Self-service membership profile, available to every signed-in user
		authenticated.GET("/students/me", studentController.GetOwnProfile)

		// Staff routes, restricted to admin and team roles
		staff := authenticated.Group("")
		staff.Use(authMiddleware.RoleRequired(string(models.RoleAdmin), string(models.RoleTeam)))
		{
			students := staff.Group("/students")
			{
				students.GET("", studentController.ListStudents)
				students.POST("", studentController.CreateStudent)
				students.GET("/:id", studentController.GetStudent)
				students.PUT("/:id", studentController.UpdateStudent)
				students.PATCH("/:id/amount", studentController.UpdateAmount)
				students.DELETE("/:id", studentController.DeleteStudent)
			}

			payments := staff.Group("/payments")
			{
				payments.GET("", paymentController.ListPayments)
				payments.GET("/installments", paymentController.InstallmentsReport)
				payments.POST("/auto-pair", paymentController.AutoPair)
				payments.GET("/:id", paymentController.GetPayment)
				payments.DELETE("/:id", paymentController.DeletePayment)
				payments.POST("/:id/assign", paymentController.AssignPayment)
				payments.DELETE("/:id/assign", paymentController.UnassignPayment)
			}

			imports := staff.Group("/import")
			{
				imports.POST("/students", importController.ImportStudents)
				imports.POST("/payments", importController.ImportPayments)
			}

			stats := staff.Group("/stats")
			{
				stats.GET("/finance", statsController.Finance)
				stats.GET("/overview", statsController.Overview)
				stats.GET("/tiers", statsController.Tiers)
			}

			staff.POST("/mail/send", mailController.SendMail)
		}

		// Administration routes, restricted to the admin role
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			users := admin.Group("/users")
			{
				users.GET("", userController.ListUsers)
				users.GET("/:id", userController.GetUser)
				users.PATCH("/:id/role", userController.UpdateRole)
				users.DELETE("/:id", userController.DeleteUser)
			}

			whitelist := admin.Group("/whitelist")
			{
				whitelist.GET("", userController.ListAllowedEmails)
				whitelist.POST("", userController.AddAllowedEmail)
				whitelist.DELETE("/:id", userController.RemoveAllowedEmail)
			}

			accessRequests := admin.Group("/access-requests")
			{
				accessRequests.GET("", userController.ListAccessRequests)
				accessRequests.POST("/:id/approve", userController.ApproveAccessRequest)
				accessRequests.DELETE("/:id", userController.RejectAccessRequest)
			}
		}
	}

	// Legacy mail endpoint kept at its historical path
	legacy := router.Group("/api")
	legacy.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleAdmin), string(models.RoleTeam)))
	{
		legacy.POST("/send-mail", mailController.SendMailLegacy)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}

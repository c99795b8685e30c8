package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stayops/housekeeping-app/controllers"
	"github.com/stayops/housekeeping-app/middlewares"
	"github.com/stayops/housekeeping-app/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Services shared by the controllers
	notifier := services.NewNotificationService(db)
	generator := services.NewTaskGenerator(db)
	lifecycle := services.NewTaskLifecycle(db)
	reports := services.NewReportService(db, notifier)
	settlements := services.NewSettlementService(db, notifier)

	userCtrl := controllers.NewUserController(db)
	tenantCtrl := controllers.NewTenantController(db)
	propertyCtrl := controllers.NewPropertyController(db)
	rateCtrl := controllers.NewRateController(db)
	reservationCtrl := controllers.NewReservationController(db, generator, reports)
	taskCtrl := controllers.NewCleaningTaskController(db, lifecycle)
	settlementCtrl := controllers.NewSettlementController(db, settlements)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/tenants", tenantCtrl.CreateTenant)
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)
		auth.GET("/tenant", tenantCtrl.GetTenant)
		auth.GET("/notifications", notificationCtrl.GetAllNotifications)
		auth.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)
		auth.GET("/events/ws", controllers.EventsHandler)

		// -- MANAGER (and admin) --
		manager := auth.Group("/")
		manager.Use(middlewares.RoleCheck("manager"))
		{
			manager.PATCH("/tenant/settings", tenantCtrl.UpdateSettings)

			manager.POST("/property-types", propertyCtrl.CreatePropertyType)
			manager.GET("/property-types", propertyCtrl.GetPropertyTypes)
			manager.POST("/properties", propertyCtrl.CreateProperty)
			manager.GET("/properties", propertyCtrl.GetProperties)
			manager.GET("/properties/:property_id", propertyCtrl.GetPropertyByID)

			manager.GET("/rates", rateCtrl.GetRates)
			manager.PUT("/rates", rateCtrl.UpsertRate)

			manager.POST("/reservations", reservationCtrl.CreateReservation)
			manager.GET("/reservations", reservationCtrl.GetAllReservations)
			manager.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
			manager.PATCH("/reservations/:reservation_id/checkout-report", reservationCtrl.ReportCheckout)
			manager.PATCH("/reservations/:reservation_id/checkout-clear", reservationCtrl.ClearCheckout)
			manager.PATCH("/reservations/:reservation_id/checkin-report", reservationCtrl.ReportCheckin)

			manager.GET("/tasks", taskCtrl.GetAllTasks)
			manager.POST("/tasks", taskCtrl.CreateTask)

			manager.POST("/settlements/:settlement_id/approve", settlementCtrl.ApproveSettlement)
			manager.POST("/settlements/:settlement_id/reject", settlementCtrl.RejectSettlement)
		}

		// -- CLEANER (and admin) --
		cleaner := auth.Group("/")
		cleaner.Use(middlewares.RoleCheck("cleaner"))
		{
			cleaner.GET("/tasks/available", taskCtrl.GetAvailableTasks)
			cleaner.GET("/tasks/mine", taskCtrl.GetMyTasks)
			cleaner.POST("/tasks/:task_id/take", taskCtrl.TakeTask)
			cleaner.POST("/tasks/:task_id/start", taskCtrl.StartTask)
			cleaner.POST("/tasks/:task_id/complete", taskCtrl.CompleteTask)

			cleaner.POST("/settlements", settlementCtrl.BuildSettlement)
		}

		// Settlement reads are shared; the controller narrows cleaners
		// to their own rows.
		auth.GET("/settlements", settlementCtrl.GetAllSettlements)
		auth.GET("/settlements/:settlement_id", settlementCtrl.GetSettlementByID)

		// -- ADMIN --
		admin := auth.Group("/")
		admin.Use(middlewares.RoleCheck())
		{
			admin.GET("/users", userCtrl.GetAllUsers)
			admin.POST("/tasks/:task_id/cancel", taskCtrl.CancelTask)
			admin.POST("/settlements/:settlement_id/payments", settlementCtrl.RecordPayment)
			admin.GET("/settlements/:settlement_id/payments", settlementCtrl.GetPayments)
		}
	}

	return r
}

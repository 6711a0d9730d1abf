package routes

import (
	"studio-backend/config"
	"studio-backend/controllers"
	"studio-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, deps *controllers.Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(cfg.App.SlowRequest))

	sessionController := controllers.SessionController{Deps: deps}
	catalogController := controllers.CatalogController{Deps: deps}
	employeeController := controllers.EmployeeController{Deps: deps}
	serviceController := controllers.ServiceController{Deps: deps}
	transactionController := controllers.TransactionController{Deps: deps}
	expenseController := controllers.ExpenseController{Deps: deps}
	bookingController := controllers.BookingController{Deps: deps}
	financeController := controllers.FinanceController{Deps: deps}
	reportController := controllers.ReportController{Deps: deps}
	dashboardController := controllers.DashboardController{Deps: deps}
	settingsController := controllers.SettingsController{Deps: deps}
	reminderController := controllers.ReminderController{Deps: deps}
	streamController := controllers.StreamController{Deps: deps}

	sessions := r.Group("/session")
	{
		sessions.POST("", sessionController.CreateSession)
		sessions.GET("/:id", sessionController.GetSession)
		sessions.POST("/:id/events", sessionController.ApplyEvent)
		sessions.POST("/:id/pin", sessionController.SubmitPin)
	}

	catalog := r.Group("/catalog")
	{
		catalog.GET("/services", catalogController.GetServices)
		catalog.GET("/employees", catalogController.GetProfessionals)
	}
	r.POST("/bookings", bookingController.CreateBooking)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(cfg.JWT.Secret), sessionController.RequireAdmin)
	{
		employees := api.Group("/employees")
		{
			employees.GET("", employeeController.GetEmployees)
			employees.POST("", employeeController.AddEmployee)
			employees.PATCH("/:id/commission", employeeController.UpdateCommission)
			employees.DELETE("/:id", employeeController.DeleteEmployee)
		}

		services := api.Group("/services")
		{
			services.GET("", serviceController.GetServices)
			services.POST("", serviceController.CreateService)
			services.DELETE("/:id", serviceController.DeleteService)
		}

		api.GET("/transactions", transactionController.GetTransactions)
		api.POST("/checkout", transactionController.Checkout)
		api.DELETE("/transactions/:id", transactionController.DeleteTransaction)

		expenses := api.Group("/expenses")
		{
			expenses.GET("", expenseController.GetExpenses)
			expenses.POST("", expenseController.CreateExpense)
			expenses.DELETE("/:id", expenseController.DeleteExpense)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bookingController.GetBookings)
			bookings.POST("", bookingController.CreateBooking)
			bookings.DELETE("/:id", bookingController.DeleteBooking)
			bookings.GET("/:id/confirmation-link", bookingController.GetConfirmationLink)
		}

		finance := api.Group("/finance")
		{
			finance.GET("/summary", financeController.GetSummary)
			finance.POST("/reset", financeController.ResetLedger)
		}

		reports := api.Group("/reports")
		{
			reports.GET("", reportController.GetReport)
			reports.GET("/whatsapp/:id", reportController.GetWhatsAppReport)
			reports.POST("/whatsapp/:id/send", reportController.SendWhatsAppReport)
			reports.GET("/print", reportController.GetPrintableReport)
		}

		api.GET("/dashboard", dashboardController.GetDashboardOverview)

		api.GET("/settings", settingsController.GetProfile)
		api.PUT("/settings/pin", settingsController.UpdatePin)
		api.POST("/seed", settingsController.Seed)

		api.POST("/reminders/run", reminderController.RunReminders)
		api.GET("/messages", reminderController.GetMessages)

		api.GET("/stream/:collection", streamController.Stream)
	}

	return r
}

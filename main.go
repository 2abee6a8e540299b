package main

import (
	"log"
	"net/http"
	"time"

	"hexaboard-service/internal/config"
	"hexaboard-service/internal/db"
	"hexaboard-service/internal/email"
	"hexaboard-service/internal/event"
	"hexaboard-service/internal/gemini"
	"hexaboard-service/internal/handlers"
	"hexaboard-service/internal/repository"
	"hexaboard-service/internal/service"
	"hexaboard-service/pkg/discovery"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()

	db.InitMongo(cfg.MongoDB.URI)
	database := db.Client.Database(cfg.MongoDB.Database)

	// RabbitMQ event publisher
	var publisher *event.Publisher
	if cfg.RabbitMQ.URI != "" {
		var err error
		publisher, err = event.NewPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.LogFile)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, domain events will not be published")
	}

	// Redis dashboard cache
	var cache *redis.Client
	if cfg.Redis.Address != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	} else {
		log.Println("Redis not configured, dashboard caching disabled")
	}

	// Consul registration
	if cfg.Consul.Address != "" {
		registry, err := discovery.NewServiceRegistry(cfg)
		if err != nil {
			log.Fatalf("Failed to create Consul client: %v", err)
		}
		if err := registry.Register(); err != nil {
			log.Fatalf("Failed to register with Consul: %v", err)
		}
		defer registry.Deregister()
	}

	var mailer email.Mailer
	if cfg.SendGrid.APIKey != "" {
		mailer = email.NewSendgridMailer(cfg.SendGrid.APIKey, cfg.SendGrid.FromName, cfg.SendGrid.FromEmail, cfg.SendGrid.LoginURL)
	} else {
		log.Println("SendGrid not configured, welcome emails will be logged only")
		mailer = email.ConsoleMailer{}
	}

	geminiClient := gemini.NewClient(cfg.Gemini.BaseURL, cfg.Gemini.APIKey, cfg.Gemini.Models, cfg.Gemini.MaxAttempts, cfg.Gemini.BaseBackoff)

	// Repositories
	userRepo := repository.NewUserRepository(database)
	departmentRepo := repository.NewDepartmentRepository(database)
	courseRepo := repository.NewCourseRepository(database)
	assignmentRepo := repository.NewAssignmentRepository(database)
	certificationRepo := repository.NewCertificationRepository(database)
	attemptRepo := repository.NewAttemptRepository(database)
	assessmentRepo := repository.NewAssessmentRepository(database)
	dailyQuizRepo := repository.NewDailyQuizRepository(database)

	// Services
	authService := service.NewAuthService(userRepo)
	departmentService := service.NewDepartmentService(departmentRepo, userRepo, publisher)
	provisionService := service.NewProvisionService(userRepo, departmentService, mailer, publisher)
	courseService := service.NewCourseService(courseRepo, userRepo, assignmentRepo, publisher)
	problemService := service.NewDailyProblemService(userRepo, attemptRepo, geminiClient, publisher)
	quizService := service.NewDailyQuizService(userRepo, dailyQuizRepo, attemptRepo, assessmentRepo, geminiClient, publisher)
	assessmentService := service.NewAssessmentService(assessmentRepo, assignmentRepo, certificationRepo, courseRepo, geminiClient, publisher)
	dashboardService := service.NewDashboardService(userRepo, courseRepo, assignmentRepo, certificationRepo, attemptRepo, cache)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	dailyHandler := handlers.NewDailyHandler(problemService, quizService, dashboardService)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService, dashboardService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	courseHandler := handlers.NewCourseHandler(courseService, dashboardService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	adminHandler := handlers.NewAdminHandler(provisionService, userRepo)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
	}

	protected := r.Group("/api/v1", handlers.AuthRequired())
	{
		protected.GET("/me", authHandler.Me)
		protected.GET("/dashboard", dashboardHandler.Summary)

		protected.GET("/daily/problem", dailyHandler.TodayProblem)
		protected.POST("/daily/problem", dailyHandler.SubmitProblem)
		protected.GET("/daily/problem/history", dailyHandler.ProblemHistory)
		protected.GET("/daily/quiz", dailyHandler.TodayQuiz)
		protected.POST("/daily/quiz", dailyHandler.SubmitQuiz)
		protected.GET("/daily/quiz/history", dailyHandler.QuizHistory)

		protected.GET("/courses", courseHandler.List)
		protected.POST("/courses", courseHandler.Enroll)
		protected.GET("/courses/:id", courseHandler.Get)
		protected.PUT("/courses/:id/progress", courseHandler.UpdateProgress)
		protected.DELETE("/courses/:id", courseHandler.Delete)

		protected.GET("/assessments", assessmentHandler.List)
		protected.POST("/assessments/start/:courseId", assessmentHandler.Start)
		protected.POST("/assessments/submit/:attemptId", assessmentHandler.Submit)
		protected.GET("/certifications", assessmentHandler.Certificates)

		protected.GET("/departments", departmentHandler.List)
		protected.GET("/departments/:id", departmentHandler.Get)
	}

	admin := r.Group("/api/v1/admin", handlers.AuthRequired(), handlers.AdminRequired())
	{
		admin.GET("/freshers", adminHandler.ListFreshers)
		admin.POST("/freshers", adminHandler.ProvisionOne)
		admin.POST("/freshers/bulk", adminHandler.ProvisionBulk)
		admin.POST("/freshers/csv", adminHandler.ProvisionCSV)

		admin.POST("/assessments", assessmentHandler.Create)
		admin.POST("/courses/assign", courseHandler.AssignToUser)
		admin.POST("/courses/bulk-assign", courseHandler.BulkAssign)
		admin.GET("/courses/statistics", courseHandler.Statistics)

		admin.POST("/departments", departmentHandler.Create)
		admin.GET("/departments/:id/members", departmentHandler.Members)
		admin.POST("/departments/:id/members", departmentHandler.AssignUser)
		admin.DELETE("/departments/:id/members/:userId", departmentHandler.RemoveUser)
		admin.POST("/departments/:id/recount", departmentHandler.Recount)
	}

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Printf("HexaBoard service listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

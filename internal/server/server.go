package server

import (
	"context"
	"net/http"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/account"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/bookingtype"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/config"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/discount"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/email"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/message"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/session"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/storage"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/timeslot"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service, files storage.FileStorage) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	accountRepo := account.NewRepository(db)
	accountService := account.NewService(accountRepo, files, cfg.JWTSecret)
	accountHandler := account.NewHandler(accountService)

	slotRepo := timeslot.NewRepository(db)
	slotService := timeslot.NewService(slotRepo)
	slotHandler := timeslot.NewHandler(slotService)

	typeRepo := bookingtype.NewRepository(db)
	typeService := bookingtype.NewService(typeRepo)
	typeHandler := bookingtype.NewHandler(typeService)

	discountRepo := discount.NewRepository(db)
	discountService := discount.NewService(discountRepo, typeRepo)
	discountHandler := discount.NewHandler(discountService)

	sessionRepo := session.NewRepository(db)
	sessionService := session.NewService(sessionRepo, typeRepo, discountService, accountRepo, emailService)
	sessionHandler := session.NewHandler(sessionService)

	messageRepo := message.NewRepository(db)
	messageService := message.NewService(messageRepo, sessionRepo)
	messageHandler := message.NewHandler(messageService)

	public := router.Group("/auth")
	{
		public.POST("/register", accountHandler.Register)
		public.POST("/login", accountHandler.Login)
		public.POST("/refresh", accountHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.POST("/auth/logout", accountHandler.Logout)

		protected.GET("/me", accountHandler.GetMe)
		protected.PATCH("/me", accountHandler.UpdateMe)
		protected.POST("/me/profile-image-upload-url", accountHandler.ProfileImageUploadURL)
		protected.GET("/accounts/:accountID", accountHandler.GetAccount)
		protected.DELETE("/accounts/:accountID", accountHandler.DeleteAccount)
		protected.GET("/accounts/:accountID/profile-image", accountHandler.ProfileImageDownloadURL)

		protected.GET("/time-slots", slotHandler.ListAvailable)
		protected.GET("/time-slots/:slotID", slotHandler.Get)

		protected.GET("/booking-types", typeHandler.ListActive)
		protected.GET("/booking-types/:typeID", typeHandler.Get)

		protected.POST("/discounts/preview", discountHandler.Preview)

		protected.POST("/sessions", sessionHandler.Create)
		protected.GET("/sessions", sessionHandler.List)
		protected.GET("/sessions/:sessionID", sessionHandler.Get)
		protected.PATCH("/sessions/:sessionID", sessionHandler.Update)
		protected.PUT("/sessions/:sessionID/cancel", sessionHandler.Cancel)

		protected.POST("/conversations", messageHandler.StartConversation)
		protected.GET("/conversations", messageHandler.ListConversations)
		protected.GET("/conversations/:conversationID/messages", messageHandler.ListMessages)
		protected.POST("/conversations/:conversationID/messages", messageHandler.Send)
	}

	coachMiddleware := auth.RequireRole(auth.RoleCoach, auth.RoleAdmin)
	coachOnly := router.Group("/")
	coachOnly.Use(authMiddleware, coachMiddleware)
	{
		coachOnly.POST("/time-slots", slotHandler.Create)
		coachOnly.PATCH("/time-slots/:slotID", slotHandler.Update)
		coachOnly.DELETE("/time-slots/:slotID", slotHandler.Delete)
		coachOnly.GET("/coach/time-slots", slotHandler.ListMine)

		coachOnly.POST("/booking-types", typeHandler.Create)
		coachOnly.PATCH("/booking-types/:typeID", typeHandler.Update)
		coachOnly.DELETE("/booking-types/:typeID", typeHandler.Deactivate)
		coachOnly.GET("/coach/booking-types", typeHandler.ListMine)

		coachOnly.GET("/coach/discounts", discountHandler.ListMine)
		coachOnly.POST("/coach/discounts", discountHandler.Create)
		coachOnly.PATCH("/coach/discounts/:discountID", discountHandler.Update)
		coachOnly.DELETE("/coach/discounts/:discountID", discountHandler.Deactivate)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.PATCH("/accounts/:accountID/role", accountHandler.ChangeRole)
		admin.GET("/analytics/sessions", sessionHandler.Stats)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

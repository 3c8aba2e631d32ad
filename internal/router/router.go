package router

import (
	"net/http"
	"time"

	"github.com/musama5293/NPI-Portal-sub003/internal/config"
	"github.com/musama5293/NPI-Portal-sub003/internal/handlers"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
}

func Setup(log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("npi_session", store))
	router.Use(UserLoaderMiddleware())

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	authHandler := handlers.NewAuthHandler(log)
	adminHandler := handlers.NewAdminHandler(log)
	assignmentHandler := handlers.NewAssignmentHandler(log)
	activityHandler := handlers.NewActivityHandler(log)
	resultsHandler := handlers.NewResultsHandler(log)
	linkHandler := handlers.NewLinkHandler(log)

	// Event ingestion is the chattiest endpoint; give it its own budget.
	eventStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 60,
	})
	eventLimiter := ratelimit.RateLimiter(eventStore, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      keyFunc,
	})

	loginStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	loginLimiter := ratelimit.RateLimiter(loginStore, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      keyFunc,
	})

	router.POST("/api/login", loginLimiter, authHandler.Login)
	router.POST("/api/logout", authHandler.Logout)

	// Candidate entry point: redeem a signed assignment link.
	router.GET("/t/:token", linkHandler.Redeem)

	api := router.Group("/api/assignments")
	{
		api.GET("/:id/availability", assignmentHandler.Availability)
		api.POST("/:id/start", assignmentHandler.Start)
		api.POST("/:id/answers", assignmentHandler.SubmitAnswer)
		api.POST("/:id/events", eventLimiter, activityHandler.IngestEvents)
		api.POST("/:id/complete", assignmentHandler.Complete)
	}

	admin := router.Group("/")
	admin.Use(AdminRequired())
	{
		admin.POST("/api/assignments", adminHandler.CreateAssignment)
		admin.POST("/api/assignments/:id/link", loginLimiter, linkHandler.Issue)
		admin.GET("/api/assignments/:id/results", resultsHandler.Results)
		admin.GET("/api/assignments/:id/analytics", activityHandler.Analytics)

		dashboard := admin.Group("/dashboard")
		{
			dashboard.GET("/assignments/:id/domains", resultsHandler.DomainChart)
			dashboard.GET("/timeline", resultsHandler.TimelineChart)
		}
	}

	return router
}

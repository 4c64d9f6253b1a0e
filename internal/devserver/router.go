package devserver

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"hostel-client/config"
	"hostel-client/internal/mw"
)

// NewRouter creates and configures the stub backend's Gin router.
func NewRouter(cfg *config.Config, state *State, logger *logrus.Logger) *gin.Engine {
	r := gin.Default()
	handler := NewHandler(state, logger)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.DevServer.RateLimitPerSec), cfg.DevServer.RateBurst)

	// Only the admin list is cached: everything else must stay fresh for
	// the client's fetch-on-focus model.
	cacheTTL := time.Duration(cfg.DevServer.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/user/signin", handler.SignIn)
		api.POST("/users/signup", handler.SignUp)

		api.GET("/hostels/all", handler.Hostels)
		api.GET("/hostels/all-applications", handler.Applications)
		api.POST("/user/apply-hostel", handler.ApplyHostel)

		api.GET("/room/all", handler.Rooms)
		api.POST("/user/apply-room", handler.ApplyRoom)

		api.GET("/complaint/:user_id", handler.Complaints)
		api.POST("/user/submit-maintenance", handler.SubmitMaintenance)

		api.GET("/admin/all-admins", caching, handler.Admins)
		api.POST("/messaging/conversation/start", handler.StartConversation)
		api.GET("/messaging/messages/:conversation_id", handler.Messages)
		api.POST("/messaging/message/send", handler.SendMessage)

		api.GET("/user/notifications/:user_id", handler.Notifications)
		api.POST("/user/update-notification/:id", handler.MarkNotificationRead)

		api.PUT("/admin/update-fee-status", handler.UpdateFeeStatus)
	}

	return r
}

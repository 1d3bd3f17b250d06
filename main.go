package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/controllers"
	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/middlewares"
	"github.com/PrayerWall/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()

	store := services.NewStore(initializers.DB)
	services.InitPushNotificationService(store)
	services.InitEmailService()
	services.InitEngagementService(store)
	controllers.Engagement = services.GetEngagementService()
}

func main() {
	router := gin.Default()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.POST("/register", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.UserSignup)
	router.POST("/login", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.UserLogin)
	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.Ping)
	router.GET("/metrics", gin.WrapH(services.MetricsHandler()))

	// public reads, and writes that may be made anonymously
	public := router.Group("/")
	public.Use(middlewares.OptionalAuth)
	public.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		public.GET("/prayers", controllers.GetPrayers)
		public.GET("/prayers/public", controllers.GetPublicPrayers)
		public.GET("/prayers/:prayer_id", controllers.GetPrayer)
		public.POST("/prayers", controllers.CreatePrayer)

		public.GET("/prayer-requests", controllers.GetPrayerRequests)
		public.GET("/prayer-requests/:prayer_request_id", controllers.GetPrayerRequest)
		public.GET("/prayer-requests/:prayer_request_id/prayers", controllers.GetPrayerRequestPrayers)
		public.GET("/prayer-requests/:prayer_request_id/comments", controllers.GetPrayerRequestComments)
		public.POST("/prayer-requests", controllers.CreatePrayerRequest)

		public.GET("/badges", controllers.GetBadges)
		public.GET("/badges/:user_id", controllers.GetUserBadges)

		public.GET("/users/leaderboard", controllers.GetLeaderboard)
	}

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		auth.GET("/users/me", controllers.GetUserProfile)
		auth.POST("/users/push-token", controllers.StorePushToken)
		auth.PUT("/users/profile", controllers.UpdateUserProfile)
		auth.PUT("/profile-image", controllers.UpdateProfileImage)

		auth.DELETE("/prayers/:prayer_id", controllers.DeletePrayer)

		auth.PUT("/prayer-requests/:prayer_request_id", controllers.UpdatePrayerRequest)
		auth.DELETE("/prayer-requests/:prayer_request_id", controllers.DeletePrayerRequest)

		auth.POST("/comments", controllers.CreateComment)
		auth.PUT("/comments/:comment_id", controllers.UpdateComment)
		auth.DELETE("/comments/:comment_id", controllers.DeleteComment)

		auth.GET("/badges/my", controllers.GetMyBadges)

		auth.GET("/notifications", controllers.GetNotifications)
		auth.GET("/notifications/unread-count", controllers.GetUnreadNotificationCount)
		auth.PUT("/notifications/:notification_id/read", controllers.MarkNotificationRead)

		//admin only routes
		admin := auth.Group("/")
		admin.Use(middlewares.CheckAdmin)
		admin.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			admin.GET("/comments", controllers.GetAllComments)
			admin.POST("/notifications/send", controllers.SendPushNotification)
		}
	}

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}

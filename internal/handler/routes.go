package handler

import (
	"github.com/Negp05/twittor-listas/internal/auth"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the full API surface under the given group. The
// server and the test harness share this wiring.
func RegisterRoutes(apiV1 *gin.RouterGroup) {
	// Auth routes
	authRoutes := apiV1.Group("/auth")
	{
		authRoutes.POST("/register", RegisterUser)
		authRoutes.POST("/login", LoginUser)
	}

	// User and follow-graph routes (protected)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(auth.AuthMiddleware())
	{
		userRoutes.GET("", SearchUsers) // Must be before /:id
		userRoutes.GET("/me", GetMe)
		userRoutes.PUT("/me/profile", UpdateProfile)
		userRoutes.GET("/:id", GetUserByID)
		userRoutes.POST("/:id/follow", FollowUser)
		userRoutes.POST("/:id/unfollow", UnfollowUser)
		userRoutes.GET("/:id/relation", GetRelation)
		userRoutes.GET("/:id/followers", GetFollowers)
		userRoutes.GET("/:id/following", GetFollowing)
	}

	// Tweet routes (protected)
	tweetRoutes := apiV1.Group("/tweets")
	tweetRoutes.Use(auth.AuthMiddleware())
	{
		tweetRoutes.POST("", CreateTweet)
		tweetRoutes.GET("/timeline", GetTimeline)
		tweetRoutes.DELETE("/:id", DeleteTweet)
		tweetRoutes.POST("/:id/like", ToggleLike)
		tweetRoutes.POST("/:id/retweet", Retweet)
		tweetRoutes.POST("/:id/quote", Quote)
		tweetRoutes.POST("/:id/comments", CreateComment)
	}

	// Public tweet reads. A token is honored when present so liked_by_me is
	// filled in, but none is required.
	publicTweetRoutes := apiV1.Group("/tweets")
	publicTweetRoutes.Use(auth.OptionalAuthMiddleware())
	{
		publicTweetRoutes.GET("/explore", Explore)
		publicTweetRoutes.GET("/:id", GetTweetByID)
		publicTweetRoutes.GET("/:id/comments", GetComments)
	}

	// Search routes (protected)
	searchRoutes := apiV1.Group("")
	searchRoutes.Use(auth.AuthMiddleware())
	{
		searchRoutes.GET("/search", Search)
	}

	// Tag lookup is a public read like the tweet detail pages.
	tagRoutes := apiV1.Group("/tags")
	tagRoutes.Use(auth.OptionalAuthMiddleware())
	{
		tagRoutes.GET("/:tag", TweetsByTag)
	}

	// Notification routes (protected)
	notificationRoutes := apiV1.Group("/notifications")
	notificationRoutes.Use(auth.AuthMiddleware())
	{
		notificationRoutes.GET("", ListNotifications)
		notificationRoutes.GET("/unread_count", GetUnreadCount)
		notificationRoutes.POST("/read", MarkAllRead)
		notificationRoutes.GET("/stream", StreamNotifications)
	}

	// List routes (protected)
	listRoutes := apiV1.Group("/lists")
	listRoutes.Use(auth.AuthMiddleware())
	{
		listRoutes.POST("", CreateList)
		listRoutes.GET("/mine", GetMyLists)
		listRoutes.GET("/:id/feed", GetListFeed)
		listRoutes.GET("/:id/members", GetListMembers)
		listRoutes.POST("/:id/members", AddListMember)
		listRoutes.DELETE("/:id/members/:userID", RemoveListMember)
	}

	// Collection routes (protected)
	collectionRoutes := apiV1.Group("/collections")
	collectionRoutes.Use(auth.AuthMiddleware())
	{
		collectionRoutes.POST("", CreateCollection)
		collectionRoutes.GET("", GetCollections)
		collectionRoutes.GET("/:id", GetCollectionByID)
		collectionRoutes.DELETE("/:id", DeleteCollection)
		collectionRoutes.POST("/:id/tweets", AddTweetToCollection)
	}

	// Draft routes (protected)
	draftRoutes := apiV1.Group("/drafts")
	draftRoutes.Use(auth.AuthMiddleware())
	{
		draftRoutes.POST("", CreateDraft)
		draftRoutes.GET("", GetDrafts)
		draftRoutes.POST("/:id/publish", PublishDraft)
	}
}

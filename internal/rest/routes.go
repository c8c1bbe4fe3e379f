package rest

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every handler; auth guards the routes that act as the caller.
func RegisterRoutes(route gin.IRouter, auth gin.HandlerFunc, users *UserHandler, posts *PostHandler, feeds *FeedHandler, notifications *NotificationHandler) {
	route.POST("/users", users.Register)
	route.GET("/users/:id", users.GetByID)
	route.GET("/profile/:username", users.GetByUsername)
	route.GET("/posts/:id", posts.GetByID)

	authorized := route.Group("/")
	authorized.Use(auth)
	{
		authorized.PUT("/users/:id/follow", users.Follow)
		authorized.PUT("/users/:id/block", users.Block)
		authorized.GET("/users/:id/posts", feeds.UserPosts)
		authorized.GET("/users/:id/likes", feeds.UserLikes)

		authorized.GET("/feed", feeds.Timeline)
		authorized.GET("/feed/following", feeds.Following)

		authorized.POST("/posts", posts.Store)
		authorized.PUT("/posts/:id/like", posts.Like)
		authorized.PUT("/posts/:id/replies", posts.Reply)
		authorized.DELETE("/posts/:id", posts.Delete)

		authorized.GET("/notifications", notifications.Fetch)
		authorized.PUT("/notifications/:id/read", notifications.MarkRead)
	}
}

package routes

import (
	"net/http"

	"github.com/DeshmukhRuturaj/BROKER-FREE/handlers"
	"github.com/DeshmukhRuturaj/BROKER-FREE/middleware"
	"github.com/DeshmukhRuturaj/BROKER-FREE/models"
	"github.com/labstack/echo/v4"
)

type Controllers struct {
	Users      *handlers.UserController
	Favorites  *handlers.FavoriteController
	Properties *handlers.PropertyController
	Uploads    *handlers.UploadController
}

func RegisterRoutes(e *echo.Echo, c Controllers) {
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	auth := middleware.JWTMiddleware()

	// Accounts and favorites
	api.POST("/auth/register", c.Users.Register)
	api.POST("/auth/login", c.Users.Login)
	api.GET("/auth/me", c.Users.GetMe, auth)
	api.PUT("/auth/profile", c.Users.UpdateProfile, auth)
	api.GET("/auth/favorites", c.Favorites.GetFavorites, auth)
	api.POST("/auth/favorites/:propertyId", c.Favorites.AddFavorite, auth)
	api.DELETE("/auth/favorites/:propertyId", c.Favorites.RemoveFavorite, auth)

	// Listings
	api.GET("/properties", c.Properties.ListProperties)
	api.GET("/properties/search/nearby", c.Properties.SearchNearby)
	api.GET("/properties/user/my-properties", c.Properties.GetMyProperties, auth)
	api.GET("/properties/:id", c.Properties.GetProperty)
	api.POST("/properties", c.Properties.CreateProperty, auth, middleware.RequireRole(models.RoleSeller))
	api.PUT("/properties/:id", c.Properties.UpdateProperty, auth)
	api.DELETE("/properties/:id", c.Properties.DeleteProperty, auth)
	api.POST("/properties/:id/images", c.Properties.AddImages, auth)

	// Uploads
	api.POST("/upload/image", c.Uploads.UploadImage, auth)
	api.POST("/upload/images", c.Uploads.UploadImages, auth)
	api.DELETE("/upload/image/:key", c.Uploads.DeleteImage, auth)
}

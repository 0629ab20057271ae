package handlers

import (
	"net/http"

	"github.com/DeshmukhRuturaj/BROKER-FREE/store"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FavoriteController struct {
	users      store.UserStore
	properties store.PropertyStore
}

func NewFavoriteController(users store.UserStore, properties store.PropertyStore) *FavoriteController {
	return &FavoriteController{users: users, properties: properties}
}

func (fc *FavoriteController) AddFavorite(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	propertyID, err := primitive.ObjectIDFromHex(c.Param("propertyId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid property ID"})
	}

	if _, err := fc.properties.FindByID(c.Request().Context(), propertyID); err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	err = fc.users.AddFavorite(c.Request().Context(), userID, propertyID)
	if err == store.ErrAlreadyFavorited {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Property already in favorites"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Property added to favorites"})
}

// RemoveFavorite is a no-op success when the property is not favorited.
func (fc *FavoriteController) RemoveFavorite(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	propertyID, err := primitive.ObjectIDFromHex(c.Param("propertyId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid property ID"})
	}

	if err := fc.users.RemoveFavorite(c.Request().Context(), userID, propertyID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Property removed from favorites"})
}

func (fc *FavoriteController) GetFavorites(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	user, err := fc.users.FindByID(c.Request().Context(), userID)
	if err == store.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	favorites, err := fc.properties.FindByIDs(c.Request().Context(), user.Favorites)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, favorites)
}

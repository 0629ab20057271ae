package handlers

import (
	"net/http"

	"github.com/DeshmukhRuturaj/BROKER-FREE/models"
	"github.com/DeshmukhRuturaj/BROKER-FREE/store"
	"github.com/DeshmukhRuturaj/BROKER-FREE/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserController struct {
	users store.UserStore
}

func NewUserController(users store.UserStore) *UserController {
	return &UserController{users: users}
}

func (uc *UserController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Missing or invalid required fields"})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	role := req.Role
	if role == "" {
		role = models.RoleBuyer
	}

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashedPassword,
		Phone:     req.Phone,
		Role:      role,
		Favorites: []primitive.ObjectID{},
	}

	if err := uc.users.Create(c.Request().Context(), &user); err != nil {
		if err == store.ErrDuplicateEmail {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "User already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusCreated, models.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user.Public(),
	})
}

func (uc *UserController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	// Unknown email and wrong password produce an identical response so the
	// endpoint cannot be used for account enumeration.
	user, err := uc.users.FindByEmail(c.Request().Context(), req.Email)
	if err == store.ErrNotFound {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}
	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, models.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Public(),
	})
}

func (uc *UserController) GetMe(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	user, err := uc.users.FindByID(c.Request().Context(), userID)
	if err == store.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, user.Public())
}

func (uc *UserController) UpdateProfile(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid profile fields"})
	}

	user, err := uc.users.UpdateProfile(c.Request().Context(), userID, req)
	if err == store.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    user.Public(),
	})
}

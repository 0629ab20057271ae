// Package store persists users and property listings in MongoDB. Handlers
// depend on the interfaces so request logic can be exercised against
// in-memory fakes.
package store

import (
	"context"
	"errors"

	"github.com/DeshmukhRuturaj/BROKER-FREE/models"
	"github.com/DeshmukhRuturaj/BROKER-FREE/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrAlreadyFavorited = errors.New("property already in favorites")
)

// UserStore is the credential store: user records with hashed passwords,
// roles and favorite-property references.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, req models.UpdateProfileRequest) (*models.User, error)
	AddFavorite(ctx context.Context, userID, propertyID primitive.ObjectID) error
	RemoveFavorite(ctx context.Context, userID, propertyID primitive.ObjectID) error
}

// PropertyStore persists listings and answers the filtered, paginated and
// geospatial queries built by the query package.
type PropertyStore interface {
	Create(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	Update(ctx context.Context, id primitive.ObjectID, upd models.PropertyUpdate) (*models.Property, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, f query.Filters) ([]models.Property, int64, error)
	Near(ctx context.Context, longitude, latitude, maxDistance float64) ([]models.Property, error)
	FindBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]models.Property, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error)
	AddImages(ctx context.Context, id primitive.ObjectID, images []models.Image) (*models.Property, error)
}

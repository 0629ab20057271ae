package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var PropertyTypes = []string{"house", "apartment", "condo", "villa", "studio", "townhouse", "duplex", "other"}

var PropertyStatuses = []string{"for-sale", "for-rent", "sold", "rented"}

type Address struct {
	Street  string `json:"street" bson:"street" validate:"required"`
	City    string `json:"city" bson:"city" validate:"required"`
	State   string `json:"state" bson:"state" validate:"required"`
	ZipCode string `json:"zipCode" bson:"zipCode" validate:"required"`
	Country string `json:"country" bson:"country"`
}

// GeoPoint is a GeoJSON point, coordinates ordered [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates" validate:"required,len=2"`
}

type Image struct {
	URL       string `json:"url" bson:"url" validate:"required"`
	Key       string `json:"key,omitempty" bson:"key,omitempty"`
	Caption   string `json:"caption,omitempty" bson:"caption,omitempty"`
	IsPrimary bool   `json:"isPrimary" bson:"isPrimary"`
}

type Features struct {
	Parking         bool `json:"parking" bson:"parking"`
	Garage          bool `json:"garage" bson:"garage"`
	Pool            bool `json:"pool" bson:"pool"`
	Garden          bool `json:"garden" bson:"garden"`
	Fireplace       bool `json:"fireplace" bson:"fireplace"`
	AirConditioning bool `json:"airConditioning" bson:"airConditioning"`
	Heating         bool `json:"heating" bson:"heating"`
}

type ContactInfo struct {
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

type Property struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title" validate:"required"`
	Description  string             `json:"description" bson:"description" validate:"required"`
	Price        float64            `json:"price" bson:"price" validate:"gte=0"`
	PropertyType string             `json:"propertyType" bson:"propertyType" validate:"required,oneof=house apartment condo villa studio townhouse duplex other"`
	Status       string             `json:"status" bson:"status" validate:"omitempty,oneof=for-sale for-rent sold rented"`
	Bedrooms     int                `json:"bedrooms" bson:"bedrooms" validate:"gte=0"`
	Bathrooms    int                `json:"bathrooms" bson:"bathrooms" validate:"gte=0"`
	SquareFeet   float64            `json:"squareFeet" bson:"squareFeet" validate:"gte=0"`
	YearBuilt    int                `json:"yearBuilt,omitempty" bson:"yearBuilt,omitempty"`
	Address      Address            `json:"address" bson:"address" validate:"required"`
	Location     GeoPoint           `json:"location" bson:"location" validate:"required"`
	Images       []Image            `json:"images" bson:"images"`
	Amenities    []string           `json:"amenities" bson:"amenities"`
	Features     Features           `json:"features" bson:"features"`
	Seller       primitive.ObjectID `json:"seller" bson:"seller"`
	ContactInfo  ContactInfo        `json:"contactInfo" bson:"contactInfo"`
	Views        int64              `json:"views" bson:"views"`
	IsActive     bool               `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PropertyUpdate carries the allow-listed fields a seller may change.
// Nil pointers leave the stored value untouched; the seller reference is
// deliberately absent and cannot be reassigned through the API.
type PropertyUpdate struct {
	Title        *string      `json:"title"`
	Description  *string      `json:"description"`
	Price        *float64     `json:"price" validate:"omitempty,gte=0"`
	PropertyType *string      `json:"propertyType" validate:"omitempty,oneof=house apartment condo villa studio townhouse duplex other"`
	Status       *string      `json:"status" validate:"omitempty,oneof=for-sale for-rent sold rented"`
	Bedrooms     *int         `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms    *int         `json:"bathrooms" validate:"omitempty,gte=0"`
	SquareFeet   *float64     `json:"squareFeet" validate:"omitempty,gte=0"`
	YearBuilt    *int         `json:"yearBuilt"`
	Address      *Address     `json:"address"`
	Location     *GeoPoint    `json:"location" validate:"omitempty"`
	Images       []Image      `json:"images"`
	Amenities    []string     `json:"amenities"`
	Features     *Features    `json:"features"`
	ContactInfo  *ContactInfo `json:"contactInfo"`
	IsActive     *bool        `json:"isActive"`
}

type PropertyPage struct {
	Properties  []Property `json:"properties"`
	Total       int64      `json:"total"`
	CurrentPage int64      `json:"currentPage"`
	TotalPages  int64      `json:"totalPages"`
}

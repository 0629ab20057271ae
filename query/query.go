// Package query translates flat listing-filter parameters into MongoDB
// selectors and find options. Construction is pure: the same Filters value
// always yields the same query shape.
package query

import (
	"net/url"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type Filters struct {
	Search       string
	PropertyType string
	Status       string
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     *int
	Bathrooms    *int
	City         string
	State        string
	SortBy       string
	SortOrder    string
	Page         int64
	Limit        int64
}

// ParseFilters reads listing filters from request query parameters.
// Unparseable numeric values are ignored, matching absent parameters.
func ParseFilters(values url.Values) Filters {
	f := Filters{
		Search:       values.Get("search"),
		PropertyType: values.Get("propertyType"),
		Status:       values.Get("status"),
		City:         values.Get("city"),
		State:        values.Get("state"),
		SortBy:       values.Get("sortBy"),
		SortOrder:    values.Get("sortOrder"),
		Page:         1,
		Limit:        DefaultLimit,
	}
	if v := values.Get("minPrice"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &n
		}
	}
	if v := values.Get("maxPrice"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &n
		}
	}
	if v := values.Get("bedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Bedrooms = &n
		}
	}
	if v := values.Get("bathrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Bathrooms = &n
		}
	}
	if v := values.Get("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			f.Page = n
		}
	}
	if v := values.Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			f.Limit = n
		}
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

// Selector builds the Mongo filter document. Every present parameter narrows
// the query by conjunction; listings are always restricted to active ones.
func (f Filters) Selector() bson.M {
	sel := bson.M{"isActive": true}

	if f.Search != "" {
		sel["$text"] = bson.M{"$search": f.Search}
	}
	if f.PropertyType != "" {
		sel["propertyType"] = f.PropertyType
	}
	if f.Status != "" {
		sel["status"] = f.Status
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		sel["price"] = price
	}
	if f.Bedrooms != nil {
		sel["bedrooms"] = bson.M{"$gte": *f.Bedrooms}
	}
	if f.Bathrooms != nil {
		sel["bathrooms"] = bson.M{"$gte": *f.Bathrooms}
	}
	if f.City != "" {
		sel["address.city"] = primitive.Regex{Pattern: f.City, Options: "i"}
	}
	if f.State != "" {
		sel["address.state"] = primitive.Regex{Pattern: f.State, Options: "i"}
	}
	return sel
}

// FindOptions builds sort and pagination options. Sorting defaults to
// newest-first; offset is (page-1)*limit.
func (f Filters) FindOptions() *options.FindOptions {
	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	order := -1
	if f.SortOrder == "asc" {
		order = 1
	}
	return options.Find().
		SetSort(bson.D{{Key: sortBy, Value: order}}).
		SetSkip((f.Page - 1) * f.Limit).
		SetLimit(f.Limit)
}

// NearSelector builds the geospatial selector for active properties within
// maxDistance meters of the given coordinate, ordered by increasing distance.
func NearSelector(longitude, latitude, maxDistance float64) bson.M {
	return bson.M{
		"isActive": true,
		"location": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{longitude, latitude},
				},
				"$maxDistance": maxDistance,
			},
		},
	}
}

// TotalPages returns ceil(total/limit).
func TotalPages(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

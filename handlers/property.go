package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/DeshmukhRuturaj/BROKER-FREE/models"
	"github.com/DeshmukhRuturaj/BROKER-FREE/query"
	"github.com/DeshmukhRuturaj/BROKER-FREE/storage"
	"github.com/DeshmukhRuturaj/BROKER-FREE/store"
	"github.com/DeshmukhRuturaj/BROKER-FREE/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const listCacheTTL = 30 * time.Second

type PropertyController struct {
	properties store.PropertyStore
	storage    storage.ObjectStorage
}

func NewPropertyController(properties store.PropertyStore, objectStorage storage.ObjectStorage) *PropertyController {
	return &PropertyController{properties: properties, storage: objectStorage}
}

func (pc *PropertyController) ListProperties(c echo.Context) error {
	ctx := c.Request().Context()
	filters := query.ParseFilters(c.QueryParams())

	params := map[string]string{}
	for k, v := range c.QueryParams() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	cacheKey := utils.GenerateQueryCacheKey("properties:list", params)

	var cached models.PropertyPage
	if ok, err := utils.GetCached(ctx, cacheKey, &cached); err == nil && ok {
		return c.JSON(http.StatusOK, cached)
	}

	properties, total, err := pc.properties.List(ctx, filters)
	if err != nil {
		log.Printf("List properties error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	page := models.PropertyPage{
		Properties:  properties,
		Total:       total,
		CurrentPage: filters.Page,
		TotalPages:  query.TotalPages(total, filters.Limit),
	}

	if err := utils.SetCached(ctx, cacheKey, page, listCacheTTL); err != nil {
		log.Printf("Failed to cache property listing: %v", err)
	}

	return c.JSON(http.StatusOK, page)
}

// GetProperty increments the view counter on every read, including repeated
// loads by the same viewer.
func (pc *PropertyController) GetProperty(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid property ID"})
	}

	ctx := c.Request().Context()
	property, err := pc.properties.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	if err := pc.properties.IncrementViews(ctx, id); err != nil {
		log.Printf("Failed to increment views for %s: %v", id.Hex(), err)
	} else {
		property.Views++
	}

	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) CreateProperty(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	var property models.Property
	if err := c.Bind(&property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	property.Location.Type = "Point"
	if property.Status == "" {
		property.Status = "for-sale"
	}
	if err := utils.ValidateStruct(property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Missing or invalid required fields"})
	}

	property.ID = primitive.NilObjectID
	property.Seller = userID
	property.Views = 0
	property.IsActive = true

	if err := pc.properties.Create(c.Request().Context(), &property); err != nil {
		log.Printf("Create property error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Property created successfully",
		"property": property,
	})
}

func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid property ID"})
	}

	ctx := c.Request().Context()
	property, err := pc.properties.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	if property.Seller != userID {
		return c.JSON(http.StatusForbidden, map[string]string{"message": "Not authorized"})
	}

	var upd models.PropertyUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := utils.ValidateStruct(upd); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid property fields"})
	}
	if upd.Location != nil {
		upd.Location.Type = "Point"
	}

	updated, err := pc.properties.Update(ctx, id, upd)
	if err == store.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Property updated successfully",
		"property": updated,
	})
}

// DeleteProperty removes the stored image blobs before the record so a failed
// record delete never strands descriptors without objects. Blob delete
// failures are logged and tolerated.
func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid property ID"})
	}

	ctx := c.Request().Context()
	property, err := pc.properties.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	if property.Seller != userID {
		return c.JSON(http.StatusForbidden, map[string]string{"message": "Not authorized"})
	}

	for _, image := range property.Images {
		if image.Key == "" {
			continue
		}
		if !pc.storage.Delete(ctx, image.Key) {
			log.Printf("Failed to delete image blob %s for property %s", image.Key, id.Hex())
		}
	}

	if err := pc.properties.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}

func (pc *PropertyController) GetMyProperties(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	properties, err := pc.properties.FindBySeller(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) SearchNearby(c echo.Context) error {
	lngParam := c.QueryParam("longitude")
	latParam := c.QueryParam("latitude")
	if lngParam == "" || latParam == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Longitude and latitude are required"})
	}

	longitude, err := strconv.ParseFloat(lngParam, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid longitude"})
	}
	latitude, err := strconv.ParseFloat(latParam, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid latitude"})
	}

	maxDistance := 10000.0
	if v := c.QueryParam("maxDistance"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			maxDistance = n
		}
	}

	properties, err := pc.properties.Near(c.Request().Context(), longitude, latitude, maxDistance)
	if err != nil {
		log.Printf("Nearby search error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) AddImages(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid property ID"})
	}

	ctx := c.Request().Context()
	property, err := pc.properties.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	if property.Seller != userID {
		return c.JSON(http.StatusForbidden, map[string]string{"message": "Not authorized"})
	}

	var req struct {
		Images []models.Image `json:"images" validate:"required,min=1,dive"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Images are required"})
	}

	updated, err := pc.properties.AddImages(ctx, id, req.Images)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Images added successfully",
		"property": updated,
	})
}

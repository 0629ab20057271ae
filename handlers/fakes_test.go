package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/DeshmukhRuturaj/BROKER-FREE/models"
	"github.com/DeshmukhRuturaj/BROKER-FREE/query"
	"github.com/DeshmukhRuturaj/BROKER-FREE/store"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stores mirroring the Mongo implementations' behavior closely
// enough to exercise the request handlers.

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, req models.UpdateProfileRequest) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	user.UpdatedAt = time.Now()
	clone := *user
	return &clone, nil
}

func (s *fakeUserStore) AddFavorite(_ context.Context, userID, propertyID primitive.ObjectID) error {
	user, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	for _, id := range user.Favorites {
		if id == propertyID {
			return store.ErrAlreadyFavorited
		}
	}
	user.Favorites = append(user.Favorites, propertyID)
	return nil
}

func (s *fakeUserStore) RemoveFavorite(_ context.Context, userID, propertyID primitive.ObjectID) error {
	user, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	kept := user.Favorites[:0]
	for _, id := range user.Favorites {
		if id != propertyID {
			kept = append(kept, id)
		}
	}
	user.Favorites = kept
	return nil
}

type fakePropertyStore struct {
	properties map[primitive.ObjectID]*models.Property
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{properties: map[primitive.ObjectID]*models.Property{}}
}

func (s *fakePropertyStore) Create(_ context.Context, property *models.Property) error {
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now
	clone := *property
	s.properties[property.ID] = &clone
	return nil
}

func (s *fakePropertyStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Property, error) {
	property, ok := s.properties[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *property
	return &clone, nil
}

func (s *fakePropertyStore) IncrementViews(_ context.Context, id primitive.ObjectID) error {
	property, ok := s.properties[id]
	if !ok {
		return store.ErrNotFound
	}
	property.Views++
	return nil
}

func (s *fakePropertyStore) Update(_ context.Context, id primitive.ObjectID, upd models.PropertyUpdate) (*models.Property, error) {
	property, ok := s.properties[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if upd.Title != nil {
		property.Title = *upd.Title
	}
	if upd.Description != nil {
		property.Description = *upd.Description
	}
	if upd.Price != nil {
		property.Price = *upd.Price
	}
	if upd.PropertyType != nil {
		property.PropertyType = *upd.PropertyType
	}
	if upd.Status != nil {
		property.Status = *upd.Status
	}
	if upd.Bedrooms != nil {
		property.Bedrooms = *upd.Bedrooms
	}
	if upd.Bathrooms != nil {
		property.Bathrooms = *upd.Bathrooms
	}
	if upd.IsActive != nil {
		property.IsActive = *upd.IsActive
	}
	property.UpdatedAt = time.Now()
	clone := *property
	return &clone, nil
}

func (s *fakePropertyStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.properties[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.properties, id)
	return nil
}

func (s *fakePropertyStore) List(_ context.Context, f query.Filters) ([]models.Property, int64, error) {
	matched := []models.Property{}
	for _, p := range s.properties {
		if s.matches(*p, f) {
			matched = append(matched, *p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if f.SortBy == "price" {
			if f.SortOrder == "asc" {
				return matched[i].Price < matched[j].Price
			}
			return matched[i].Price > matched[j].Price
		}
		if f.SortOrder == "asc" {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start >= total {
		return []models.Property{}, total, nil
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *fakePropertyStore) matches(p models.Property, f query.Filters) bool {
	if !p.IsActive {
		return false
	}
	if f.PropertyType != "" && p.PropertyType != f.PropertyType {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Bedrooms != nil && p.Bedrooms < *f.Bedrooms {
		return false
	}
	if f.Bathrooms != nil && p.Bathrooms < *f.Bathrooms {
		return false
	}
	if f.City != "" && !strings.Contains(strings.ToLower(p.Address.City), strings.ToLower(f.City)) {
		return false
	}
	if f.State != "" && !strings.Contains(strings.ToLower(p.Address.State), strings.ToLower(f.State)) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		haystack := strings.ToLower(p.Title + " " + p.Description + " " + p.Address.City + " " + p.Address.State)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func (s *fakePropertyStore) Near(_ context.Context, _, _, _ float64) ([]models.Property, error) {
	active := []models.Property{}
	for _, p := range s.properties {
		if p.IsActive {
			active = append(active, *p)
		}
	}
	return active, nil
}

func (s *fakePropertyStore) FindBySeller(_ context.Context, sellerID primitive.ObjectID) ([]models.Property, error) {
	owned := []models.Property{}
	for _, p := range s.properties {
		if p.Seller == sellerID {
			owned = append(owned, *p)
		}
	}
	return owned, nil
}

func (s *fakePropertyStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Property, error) {
	found := []models.Property{}
	for _, id := range ids {
		if p, ok := s.properties[id]; ok {
			found = append(found, *p)
		}
	}
	return found, nil
}

func (s *fakePropertyStore) AddImages(_ context.Context, id primitive.ObjectID, images []models.Image) (*models.Property, error) {
	property, ok := s.properties[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	property.Images = append(property.Images, images...)
	clone := *property
	return &clone, nil
}

type fakeStorage struct {
	available bool
	objects   map[string][]byte
	deleted   []string
	failPut   bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{available: true, objects: map[string][]byte{}}
}

func (s *fakeStorage) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	if !s.available || s.failPut {
		return "", context.DeadlineExceeded
	}
	s.objects[key] = body
	return "https://bucket.s3.test.amazonaws.com/" + key, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) bool {
	if !s.available {
		return true
	}
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return true
}

func (s *fakeStorage) SignedReadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if !s.available {
		return "", context.DeadlineExceeded
	}
	return "https://bucket.s3.test.amazonaws.com/" + key + "?signed", nil
}

func (s *fakeStorage) Available() bool {
	return s.available
}

// jsonRequest builds an echo context around a JSON request body.
func jsonRequest(t *testing.T, method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func seedSeller(t *testing.T, users *fakeUserStore) *models.User {
	t.Helper()
	user := &models.User{
		Name:      "Sam Seller",
		Email:     "sam@example.com",
		Password:  "$2a$10$fakehash",
		Role:      models.RoleSeller,
		Favorites: []primitive.ObjectID{},
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed seller: %v", err)
	}
	return user
}

func seedProperty(t *testing.T, properties *fakePropertyStore, seller primitive.ObjectID, mutate func(*models.Property)) *models.Property {
	t.Helper()
	property := &models.Property{
		Title:        "Sunny family house",
		Description:  "Three bedrooms near the park",
		Price:        450000,
		PropertyType: "house",
		Status:       "for-sale",
		Bedrooms:     3,
		Bathrooms:    2,
		SquareFeet:   1800,
		Address: models.Address{
			Street:  "12 Elm St",
			City:    "Austin",
			State:   "TX",
			ZipCode: "78701",
			Country: "USA",
		},
		Location: models.GeoPoint{Type: "Point", Coordinates: []float64{-97.74, 30.27}},
		Seller:   seller,
		IsActive: true,
	}
	if mutate != nil {
		mutate(property)
	}
	if err := properties.Create(context.Background(), property); err != nil {
		t.Fatalf("seed property: %v", err)
	}
	return property
}
